package nakama

import (
	"ludo/internal/app"
	"ludo/internal/domain"
)

// Wire types for the JSON payloads exchanged with clients. Opcode
// constants in constants.go pair each message with its type.

// MatchLabel is indexed by Nakama for match listing queries.
type MatchLabel struct {
	Open  int    `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
}

// PlayerState describes one occupied seat in a match snapshot.
type PlayerState struct {
	UserID         string `json:"user_id"`
	Seat           int    `json:"seat"`
	IsOwner        bool   `json:"is_owner"`
	Color          string `json:"color"`
	FinishedTokens int    `json:"finished_tokens"`
	DisplayName    string `json:"display_name"`
	Balance        int64  `json:"balance"`
}

// MatchStateSnapshot is broadcast whenever seating changes.
type MatchStateSnapshot struct {
	Seats     []string      `json:"seats"`
	OwnerSeat int           `json:"owner_seat"`
	Tick      int64         `json:"tick"`
	Phase     string        `json:"phase"`
	Players   []PlayerState `json:"players"`
}

type StartGameRequest struct {
	Tier string `json:"tier"`
}

type MoveTokenRequest struct {
	TokenID int `json:"token_id"`
}

type PathStepWire struct {
	Position     int    `json:"position"`
	Regime       string `json:"regime"`
	AbsoluteCell int    `json:"absolute_cell"`
}

type GameStartedEvent struct {
	Phase         string         `json:"phase"`
	FirstTurnSeat int            `json:"first_turn_seat"`
	SeatColors    map[int]string `json:"seat_colors"`
}

type DiceRolledEvent struct {
	Seat        int   `json:"seat"`
	Die         int   `json:"die"`
	LegalTokens []int `json:"legal_tokens"`
}

type TurnSkippedEvent struct {
	Seat      int  `json:"seat"`
	Die       int  `json:"die"`
	Forfeited bool `json:"forfeited"`
}

type TokenMovedEvent struct {
	Seat    int            `json:"seat"`
	TokenID int            `json:"token_id"`
	Die     int            `json:"die"`
	From    int            `json:"from"`
	To      int            `json:"to"`
	Path    []PathStepWire `json:"path"`
}

type TokenCapturedEvent struct {
	Seat         int `json:"seat"`
	TokenID      int `json:"token_id"`
	AbsoluteCell int `json:"absolute_cell"`
	BySeat       int `json:"by_seat"`
}

type TokenFinishedEvent struct {
	Seat    int `json:"seat"`
	TokenID int `json:"token_id"`
}

type TurnChangedEvent struct {
	NextTurnSeat         int   `json:"next_turn_seat"`
	TurnSecondsRemaining int64 `json:"turn_seconds_remaining"`
}

type GameEndedEvent struct {
	WinnerSeat     int              `json:"winner_seat"`
	WinnerUserID   string           `json:"winner_user_id"`
	BalanceChanges map[string]int64 `json:"balance_changes"`
}

type GameErrorEvent struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func toWirePath(path []domain.PathStep) []PathStepWire {
	wire := make([]PathStepWire, len(path))
	for i, step := range path {
		wire[i] = PathStepWire{
			Position:     step.Position,
			Regime:       step.Regime.String(),
			AbsoluteCell: step.AbsoluteCell,
		}
	}
	return wire
}

func toWireTokenMoved(p app.TokenMovedPayload) TokenMovedEvent {
	return TokenMovedEvent{
		Seat:    p.Seat,
		TokenID: p.TokenID,
		Die:     p.Die,
		From:    p.From,
		To:      p.To,
		Path:    toWirePath(p.Path),
	}
}
