package app

import "ludo/internal/domain"

// EventKind identifies emitted domain events for Nakama dispatch.
type EventKind string

const (
	EventPlayerJoined  EventKind = "player_joined"
	EventPlayerLeft    EventKind = "player_left"
	EventGameStarted   EventKind = "game_started"
	EventDiceRolled    EventKind = "dice_rolled"
	EventTurnSkipped   EventKind = "turn_skipped"
	EventTokenMoved    EventKind = "token_moved"
	EventTokenCaptured EventKind = "token_captured"
	EventTokenFinished EventKind = "token_finished"
	EventTurnChanged   EventKind = "turn_changed"
	EventGameEnded     EventKind = "game_ended"
)

// Event is a domain/app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

type PlayerJoinedPayload struct {
	UserID string
	Seat   int
	Owner  bool
}

type PlayerLeftPayload struct {
	UserID string
}

type GameStartedPayload struct {
	Phase         domain.Phase
	FirstTurnSeat int
	SeatColors    map[int]string // seat -> color name
}

type DiceRolledPayload struct {
	Seat        int
	Die         int
	LegalTokens []int
}

// TurnSkippedPayload reports a roll that committed no move: either no
// token had a legal move, or the consecutive-six limit forfeited the
// turn.
type TurnSkippedPayload struct {
	Seat      int
	Die       int
	Forfeited bool
}

type TokenMovedPayload struct {
	Seat    int
	TokenID int
	Die     int
	From    int
	To      int
	// Path is the projected step sequence for client-side animation and
	// highlighting; its last step always matches To.
	Path []domain.PathStep
}

type TokenCapturedPayload struct {
	Seat         int // victim's seat
	TokenID      int
	AbsoluteCell int
	BySeat       int // mover's seat
}

type TokenFinishedPayload struct {
	Seat    int
	TokenID int
}

type TurnChangedPayload struct {
	NextTurnSeat int
}

type GameEndedPayload struct {
	WinnerSeat     int
	WinnerUserID   string
	BalanceChanges map[string]int64
}
