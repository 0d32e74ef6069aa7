package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Loading is process-global, so one test exercises load, tier lookup
// and rule resolution together.
func TestLoadGameConfig(t *testing.T) {
	raw := `{
		"tax_rate": 0.05,
		"default_tier": "bronze",
		"tiers": [
			{"id": "bronze", "base_bet": 100},
			{"id": "gold", "base_bet": 1000}
		],
		"turn_duration_seconds": 20,
		"bot_auto_fill_delay_seconds": 10,
		"bot_turn_delay_seconds": 2,
		"rules": {
			"extra_turn_on_capture": false,
			"max_consecutive_sixes": 0
		}
	}`
	path := filepath.Join(t.TempDir(), "game_config.json")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	require.NoError(t, LoadGameConfig(path))
	c := GetGameConfig()
	require.NotNil(t, c)
	require.Equal(t, 20, c.TurnDurationSeconds)
	require.Equal(t, 2, c.BotTurnDelaySeconds)

	require.Equal(t, int64(1000), GetBaseBet("gold"))
	require.Equal(t, int64(100), GetBaseBet(""))
	require.Equal(t, int64(100), GetBaseBet("no-such-tier"))

	rules := GameRules()
	require.True(t, rules.ExtraTurnOnSix)
	require.False(t, rules.ExtraTurnOnCapture)
	require.Equal(t, 4, rules.TokensToWin)
	require.Equal(t, 0, rules.MaxConsecutiveSixes)
}
