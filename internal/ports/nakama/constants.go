package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"

	// MatchNameLudo is the authoritative match handler name registered with Nakama.
	MatchNameLudo = "ludo_match"

	// MatchLabelKey_OpenSeats is the label key quick match filters on.
	MatchLabelKey_OpenSeats = "open"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame int64 = 1
	OpRollDice  int64 = 2
	OpMoveToken int64 = 3

	// Server -> Client events
	OpPlayerJoined  int64 = 101
	OpPlayerLeft    int64 = 102
	OpGameStarted   int64 = 103
	OpDiceRolled    int64 = 104
	OpTurnSkipped   int64 = 105
	OpTokenMoved    int64 = 106
	OpTokenCaptured int64 = 107
	OpTokenFinished int64 = 108
	OpTurnChanged   int64 = 109
	OpGameEnded     int64 = 110
	OpGameError     int64 = 120
)
