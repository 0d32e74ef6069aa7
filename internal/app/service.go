package app

import (
	"errors"

	"ludo/internal/domain"
)

// DieRoller produces die values for the authoritative server roll.
type DieRoller func() int

// Service contains Ludo use-cases operating on domain state.
type Service struct {
	rules domain.Rules
	roll  DieRoller
}

// NewService constructs a Service with the given rule set and die
// roller. A nil roller falls back to the secure default.
func NewService(rules domain.Rules, roll DieRoller) *Service {
	if roll == nil {
		roll = domain.RollDie
	}
	return &Service{rules: rules, roll: roll}
}

var (
	ErrNotPlaying    = errors.New("match not in playing phase")
	ErrNotYourTurn   = errors.New("not this player's turn")
	ErrUnknownSeat   = errors.New("seat is not part of this game")
	ErrTooFewPlayers = errors.New("not enough players to start")
	ErrRollPending   = errors.New("a roll is already awaiting token selection")
	ErrNoRoll        = errors.New("roll the die before selecting a token")
)

// StartGame initializes a new Game with the provided seat assignments.
// seats holds userIDs in seat order; empty strings mark empty seats.
func (s *Service) StartGame(seats [domain.NumColors]string, baseBet int64) (*domain.Game, []Event, error) {
	players := make(map[string]*domain.Player)
	for i, userID := range seats {
		if userID == "" {
			continue
		}
		players[userID] = &domain.Player{
			UserID: userID,
			Seat:   i,
			Color:  domain.SeatColor(i),
		}
	}
	if len(players) < MinPlayersToStartGame {
		return nil, nil, ErrTooFewPlayers
	}

	seq, err := domain.NewSequencer(s.rules, domain.ActiveColors(&seats))
	if err != nil {
		return nil, nil, err
	}

	game := &domain.Game{
		Phase:   domain.PhasePlaying,
		Players: players,
		Seq:     seq,
		BaseBet: baseBet,
	}

	first := game.CurrentPlayer()
	seatColors := make(map[int]string, len(players))
	for _, p := range players {
		seatColors[p.Seat] = p.Color.String()
	}

	events := []Event{{
		Kind: EventGameStarted,
		Payload: GameStartedPayload{
			Phase:         game.Phase,
			FirstTurnSeat: first.Seat,
			SeatColors:    seatColors,
		},
	}}
	return game, events, nil
}

// RollDice rolls for the player in the given seat and either opens a
// token selection or resolves the turn immediately when no move exists.
func (s *Service) RollDice(game *domain.Game, seat int) ([]Event, error) {
	player, err := s.actingPlayer(game, seat)
	if err != nil {
		return nil, err
	}
	if game.Seq.Phase() == domain.PhaseTokenSelectable {
		return nil, ErrRollPending
	}

	res, err := game.Seq.Roll(s.roll())
	if err != nil {
		return nil, err
	}

	events := []Event{{
		Kind:    EventDiceRolled,
		Payload: DiceRolledPayload{Seat: player.Seat, Die: res.Die, LegalTokens: res.LegalTokens},
	}}

	if res.TurnSkipped || res.TurnForfeited {
		events = append(events,
			Event{Kind: EventTurnSkipped, Payload: TurnSkippedPayload{Seat: player.Seat, Die: res.Die, Forfeited: res.TurnForfeited}},
			Event{Kind: EventTurnChanged, Payload: TurnChangedPayload{NextTurnSeat: s.seatOf(game, res.NextTurn)}},
		)
	}
	return events, nil
}

// MoveToken commits the selected token for the pending roll, emitting
// movement, capture, finish and turn events in commit order.
func (s *Service) MoveToken(game *domain.Game, seat, tokenID int) ([]Event, error) {
	player, err := s.actingPlayer(game, seat)
	if err != nil {
		return nil, err
	}
	if game.Seq.Phase() == domain.PhaseAwaitingRoll {
		return nil, ErrNoRoll
	}
	die := game.Seq.PendingDie()

	move, err := game.Seq.Select(tokenID)
	if err != nil {
		return nil, err
	}

	events := []Event{{
		Kind: EventTokenMoved,
		Payload: TokenMovedPayload{
			Seat:    player.Seat,
			TokenID: move.TokenID,
			Die:     die,
			From:    move.From,
			To:      move.To,
			Path:    move.Path,
		},
	}}

	for _, effect := range move.Effects {
		switch effect.Kind {
		case domain.EffectCapture:
			events = append(events, Event{
				Kind: EventTokenCaptured,
				Payload: TokenCapturedPayload{
					Seat:         s.seatOf(game, effect.Color),
					TokenID:      effect.TokenID,
					AbsoluteCell: effect.AbsoluteCell,
					BySeat:       player.Seat,
				},
			})
		case domain.EffectFinish:
			events = append(events, Event{
				Kind:    EventTokenFinished,
				Payload: TokenFinishedPayload{Seat: player.Seat, TokenID: effect.TokenID},
			})
		}
	}

	if move.MatchOver {
		game.Phase = domain.PhaseEnded
		game.Winner = player.UserID
		settlement := game.CalculateSettlement()
		events = append(events, Event{
			Kind: EventGameEnded,
			Payload: GameEndedPayload{
				WinnerSeat:     player.Seat,
				WinnerUserID:   player.UserID,
				BalanceChanges: settlement.BalanceChanges,
			},
		})
		return events, nil
	}

	events = append(events, Event{
		Kind:    EventTurnChanged,
		Payload: TurnChangedPayload{NextTurnSeat: s.seatOf(game, move.NextTurn)},
	})
	return events, nil
}

// actingPlayer validates phase and turn ownership for a seat's action.
func (s *Service) actingPlayer(game *domain.Game, seat int) (*domain.Player, error) {
	if game.Phase != domain.PhasePlaying {
		return nil, ErrNotPlaying
	}
	player := game.PlayerBySeat(seat)
	if player == nil {
		return nil, ErrUnknownSeat
	}
	if current := game.CurrentPlayer(); current == nil || current.Seat != seat {
		return nil, ErrNotYourTurn
	}
	return player, nil
}

// seatOf resolves the seat playing a color; -1 if the color has no seat.
func (s *Service) seatOf(game *domain.Game, c domain.Color) int {
	if p := game.PlayerByColor(c); p != nil {
		return p.Seat
	}
	return -1
}
