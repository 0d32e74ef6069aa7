package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"ludo/internal/app"
	"ludo/internal/bot"
	"ludo/internal/config"
	"ludo/internal/domain"
	"ludo/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// noopLogger implements runtime.Logger for tests that only need to satisfy the interface.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

// mockDispatcher records match dispatcher calls for assertions.
type mockDispatcher struct {
	broadcastCount int
	labelUpdates   int
	lastOpCode     int64
	lastData       []byte
}

func (md *mockDispatcher) BroadcastMessage(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	md.broadcastCount++
	md.lastOpCode = opCode
	md.lastData = append([]byte(nil), data...)
	return nil
}

func (md *mockDispatcher) BroadcastMessageDeferred(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	return nil
}

func (md *mockDispatcher) MatchKick(presences []runtime.Presence) error {
	return nil
}

func (md *mockDispatcher) MatchLabelUpdate(label string) error {
	md.labelUpdates++
	return nil
}

type mockEconomy struct {
	balances map[string]int64
	calls    map[string]int
}

func (me *mockEconomy) GetBalance(ctx context.Context, userID string) (int64, error) {
	if me.calls == nil {
		me.calls = make(map[string]int)
	}
	me.calls[userID]++
	if balance, ok := me.balances[userID]; ok {
		return balance, nil
	}
	return 0, errors.New("balance not found")
}

func (me *mockEconomy) UpdateBalances(ctx context.Context, updates []ports.WalletUpdate) error {
	return nil
}

func init() {
	// Load bot identities for testing.
	if err := bot.LoadIdentities("test_bot_identities.json"); err != nil {
		panic("Failed to load bot identities for tests: " + err.Error())
	}
}

func TestFindFirstHumanSeat(t *testing.T) {
	bot1 := bot.GetBotIdentity(0).UserID
	bot2 := bot.GetBotIdentity(1).UserID

	tests := []struct {
		name  string
		seats []string
		want  int
	}{
		{
			name:  "FirstHumanAfterBot",
			seats: []string{bot1, "user-1", "", ""},
			want:  1,
		},
		{
			name:  "AllBots",
			seats: []string{bot1, bot2, "", ""},
			want:  -1,
		},
		{
			name:  "AllEmpty",
			seats: []string{"", "", "", ""},
			want:  -1,
		},
		{
			name:  "FirstHumanIsSeatZero",
			seats: []string{"user-1", bot1, "user-2", ""},
			want:  0,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if got := findFirstHumanSeat(test.seats); got != test.want {
				t.Fatalf("findFirstHumanSeat() = %d, want %d", got, test.want)
			}
		})
	}
}

func TestShouldTerminateNoHumans(t *testing.T) {
	bot1 := bot.GetBotIdentity(0).UserID
	bot2 := bot.GetBotIdentity(1).UserID
	bot3 := bot.GetBotIdentity(2).UserID
	bot4 := bot.GetBotIdentity(3).UserID

	tests := []struct {
		name  string
		seats []string
		want  bool
	}{
		{
			name:  "BotsOnly",
			seats: []string{bot1, bot2, bot3, bot4},
			want:  true,
		},
		{
			name:  "BotsAndEmpty",
			seats: []string{bot1, "", bot3, ""},
			want:  true,
		},
		{
			name:  "HumansPresent",
			seats: []string{bot1, "user-1", "", ""},
			want:  false,
		},
		{
			name:  "AllEmpty",
			seats: []string{"", "", "", ""},
			want:  true,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if got := shouldTerminateNoHumans(test.seats); got != test.want {
				t.Fatalf("shouldTerminateNoHumans() = %t, want %t", got, test.want)
			}
		})
	}
}

func TestMatchLabelMarshal(t *testing.T) {
	tests := []struct {
		name     string
		label    MatchLabel
		expected string
	}{
		{
			name:     "LobbyState",
			label:    MatchLabel{Open: 3, Game: "ludo", Phase: "lobby"},
			expected: `{"open":3,"game":"ludo","phase":"lobby"}`,
		},
		{
			name:     "PlayingState",
			label:    MatchLabel{Open: 0, Game: "ludo", Phase: "playing"},
			expected: `{"open":0,"game":"ludo","phase":"playing"}`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			payload, err := json.Marshal(test.label)
			if err != nil {
				t.Fatalf("Failed to marshal label: %v", err)
			}
			if string(payload) != test.expected {
				t.Errorf("Got %s, want %s", payload, test.expected)
			}
		})
	}
}

func TestResetTurnSecondsRemainingWithBonus(t *testing.T) {
	handler := &matchHandler{}
	state := &MatchState{}

	duration := defaultTurnDurationSeconds
	if cfg := config.GetGameConfig(); cfg != nil && cfg.TurnDurationSeconds > 0 {
		duration = cfg.TurnDurationSeconds
	}

	handler.resetTurnSecondsRemainingWithBonus(state, noopLogger{}, gameStartTurnTimerBonusSeconds)

	want := int64(duration + gameStartTurnTimerBonusSeconds)
	if state.TurnSecondsRemaining != want {
		t.Fatalf("TurnSecondsRemaining = %d, want %d", state.TurnSecondsRemaining, want)
	}
}

func TestApplyBotTimingDefaults(t *testing.T) {
	tests := []struct {
		name        string
		state       MatchState
		cfg         *config.GameConfig
		wantMin     int
		wantMax     int
		wantAutoTck int
	}{
		{
			name:        "BuiltInsWithoutConfig",
			wantMin:     1,
			wantMax:     3,
			wantAutoTck: 5,
		},
		{
			name:        "ConfigPacesBotTurns",
			cfg:         &config.GameConfig{BotTurnDelaySeconds: 2, BotAutoFillDelaySeconds: 10},
			wantMin:     2,
			wantMax:     4,
			wantAutoTck: 10,
		},
		{
			name:        "EnvOverridesWin",
			state:       MatchState{BotMinDelay: 4, BotMaxDelay: 6, BotAutoFillDelay: 8},
			cfg:         &config.GameConfig{BotTurnDelaySeconds: 2, BotAutoFillDelaySeconds: 10},
			wantMin:     4,
			wantMax:     6,
			wantAutoTck: 8,
		},
		{
			name:        "MaxNeverBelowMin",
			state:       MatchState{BotMinDelay: 5, BotMaxDelay: 2},
			wantMin:     5,
			wantMax:     5,
			wantAutoTck: 5,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			state := test.state
			applyBotTimingDefaults(&state, test.cfg)
			if state.BotMinDelay != test.wantMin {
				t.Fatalf("BotMinDelay = %d, want %d", state.BotMinDelay, test.wantMin)
			}
			if state.BotMaxDelay != test.wantMax {
				t.Fatalf("BotMaxDelay = %d, want %d", state.BotMaxDelay, test.wantMax)
			}
			if state.BotAutoFillDelay != test.wantAutoTck {
				t.Fatalf("BotAutoFillDelay = %d, want %d", state.BotAutoFillDelay, test.wantAutoTck)
			}
		})
	}
}

func TestProcessBotsAddsTwoBotsForSoloHuman(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := &MatchState{
		Seats:                [4]string{"user-1", "", "", ""},
		Presences:            make(map[string]runtime.Presence),
		Bots:                 make(map[string]*bot.Agent),
		BotAutoFillDelay:     2,
		LastSinglePlayerTick: 8,
		Tick:                 10,
	}

	handler.processBots(context.Background(), state, dispatcher, noopLogger{})

	botCount := 0
	for _, seat := range state.Seats {
		if isBotUserId(seat) {
			botCount++
		}
	}

	if botCount != 2 {
		t.Fatalf("Expected 2 bots, got %d", botCount)
	}
	if state.GetOpenSeatsCount() != 1 {
		t.Fatalf("Expected 1 open seat after auto-fill, got %d", state.GetOpenSeatsCount())
	}
	if state.LastSinglePlayerTick != 0 {
		t.Fatalf("Expected auto-fill timer reset, got %d", state.LastSinglePlayerTick)
	}
	if dispatcher.broadcastCount == 0 || dispatcher.labelUpdates == 0 {
		t.Fatalf("Expected match state broadcast and label update after auto-fill")
	}
}

func TestBotTurnRollsAndMoves(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}

	botID := bot.GetBotIdentity(0).UserID
	svc := app.NewService(domain.DefaultRules(), func() int { return 6 })
	game, _, err := svc.StartGame([4]string{botID, "user-1", "", ""}, 100)
	if err != nil {
		t.Fatalf("StartGame failed: %v", err)
	}

	state := &MatchState{
		Seats:       [4]string{botID, "user-1", "", ""},
		Presences:   make(map[string]runtime.Presence),
		Bots:        make(map[string]*bot.Agent),
		App:         svc,
		Game:        game,
		BotMinDelay: 1,
		BotMaxDelay: 1,
		Tick:        100,
	}

	// First call arms the delay, second call acts.
	handler.processBots(context.Background(), state, dispatcher, noopLogger{})
	if state.BotWaitUntil == 0 {
		t.Fatal("Expected bot delay to be armed")
	}
	state.Tick = state.BotWaitUntil

	handler.processBots(context.Background(), state, dispatcher, noopLogger{})

	if state.Game.Seq.Phase() != domain.PhaseAwaitingRoll {
		t.Fatalf("Expected bot to complete roll and move, phase = %v", state.Game.Seq.Phase())
	}
	if dispatcher.broadcastCount < 2 {
		t.Fatalf("Expected roll and move broadcasts, got %d", dispatcher.broadcastCount)
	}
	snapshot := state.Game.Seq.Snapshot()
	moved := 0
	for tokenID := 0; tokenID < domain.TokensPerColor; tokenID++ {
		if snapshot.Tokens[domain.Red][tokenID] != 0 {
			moved++
		}
	}
	if moved != 1 {
		t.Fatalf("Expected exactly one red token to have left the yard, got %d", moved)
	}
}

func TestBroadcastMatchStateIncludesBalances(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	botID := bot.GetBotIdentity(0).UserID
	economy := &mockEconomy{
		balances: map[string]int64{
			"user-1": 1200,
			botID:    5000,
		},
	}
	state := &MatchState{
		Seats:     [4]string{"user-1", botID, "", ""},
		OwnerSeat: 0,
		Tick:      42,
		Presences: make(map[string]runtime.Presence),
		Economy:   economy,
	}

	handler.broadcastMatchState(context.Background(), state, dispatcher, noopLogger{})

	if dispatcher.lastOpCode != OpPlayerJoined {
		t.Fatalf("Expected opcode %d, got %d", OpPlayerJoined, dispatcher.lastOpCode)
	}
	if len(dispatcher.lastData) == 0 {
		t.Fatalf("Expected snapshot payload to be broadcast")
	}

	snapshot := MatchStateSnapshot{}
	if err := json.Unmarshal(dispatcher.lastData, &snapshot); err != nil {
		t.Fatalf("Failed to unmarshal snapshot: %v", err)
	}

	balances := make(map[string]int64)
	for _, player := range snapshot.Players {
		balances[player.UserID] = player.Balance
	}

	if got := balances["user-1"]; got != 1200 {
		t.Fatalf("Expected human balance 1200, got %d", got)
	}
	if got := balances[botID]; got != 5000 {
		t.Fatalf("Expected bot balance 5000, got %d", got)
	}
	if economy.calls["user-1"] != 1 {
		t.Fatalf("Expected balance lookup for human, got %d", economy.calls["user-1"])
	}
	if economy.calls[botID] != 1 {
		t.Fatalf("Expected balance lookup for bot, got %d", economy.calls[botID])
	}
}
