package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"
	"strconv"
	"time"

	"ludo/internal/app"
	"ludo/internal/bot"
	"ludo/internal/config"
	"ludo/internal/domain"
	"ludo/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

const (
	defaultTurnDurationSeconds = 16
	// gameStartTurnTimerBonusSeconds pads the first turn so clients can
	// finish the game-start presentation before the countdown matters.
	gameStartTurnTimerBonusSeconds = 4
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats                [4]string                   `json:"seats"`            // User IDs by seat, "" means empty
	OwnerSeat            int                         `json:"owner_seat"`       // Seat index of the match owner
	Tick                 int64                       `json:"tick"`             // Current tick for turn-based logic
	TurnSecondsRemaining int64                       `json:"turn_seconds"`     // Countdown before the turn is forced
	Presences            map[string]runtime.Presence `json:"-"`                // UserID -> presence for targeted messaging
	App                  *app.Service                `json:"-"`                // Ludo app service with game logic
	Game                 *domain.Game                `json:"-"`                // Active game state (nil in lobby)
	BotsEnabled          bool                        `json:"bots_enabled"`     // Whether AI players are allowed
	BotMinDelay          int                         `json:"bot_min_delay"`    // Min seconds a bot waits before acting
	BotMaxDelay          int                         `json:"bot_max_delay"`    // Max seconds a bot waits before acting
	BotAutoFillDelay     int                         `json:"bot_fill_delay"`   // Seconds before filling a solo lobby with bots
	BotWaitUntil         int64                       `json:"bot_wait_until"`   // Tick when the acting bot should move
	LastSinglePlayerTick int64                       `json:"solo_since_tick"`  // Tick when a lone human started waiting
	Bots                 map[string]*bot.Agent       `json:"-"`                // Active bot agents by user ID
	Economy              ports.EconomyPort           `json:"-"`                // Interface to Nakama wallet
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetOccupiedSeatCount() int {
	return len(ms.Seats) - ms.GetOpenSeatsCount()
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !isBotUserId(seat) {
			count++
		}
	}
	return count
}

// isBotUserId reports whether the given user id represents a bot seat.
func isBotUserId(userId string) bool {
	return bot.IsBot(userId)
}

// isHumanSeat reports whether the seat index belongs to a human player.
func isHumanSeat(seats []string, seatIndex int) bool {
	if seatIndex < 0 || seatIndex >= len(seats) {
		return false
	}
	userId := seats[seatIndex]
	return userId != "" && !isBotUserId(userId)
}

// findFirstHumanSeat returns the first seat index with a human occupant or -1 if none exist.
func findFirstHumanSeat(seats []string) int {
	for i, userId := range seats {
		if userId != "" && !isBotUserId(userId) {
			return i
		}
	}
	return -1
}

// shouldTerminateNoHumans returns true when there are no humans in the match.
func shouldTerminateNoHumans(seats []string) bool {
	return findFirstHumanSeat(seats) == -1
}

func newMatchHandler() runtime.Match {
	return &matchHandler{}
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("MatchInit: Could not load bot identities: %v", err)
	}
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}

	state := &MatchState{
		Tick:      time.Now().Unix(),
		Presences: make(map[string]runtime.Presence),
		App:       app.NewService(config.GameRules(), nil),
		OwnerSeat: -1,
		Bots:      make(map[string]*bot.Agent),
		Economy:   NewNakamaEconomyAdapter(nk),
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["ludo_bots_enabled"]; ok {
		state.BotsEnabled = val == "true"
	}
	if val, ok := env["ludo_bot_min_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMinDelay = i
		}
	}
	if val, ok := env["ludo_bot_max_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMaxDelay = i
		}
	}
	if val, ok := env["ludo_bot_auto_fill_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotAutoFillDelay = i
		}
	}

	applyBotTimingDefaults(state, config.GetGameConfig())

	labelBytes, err := json.Marshal(&MatchLabel{
		Open:  state.GetOpenSeatsCount(),
		Game:  "ludo",
		Phase: "lobby",
	})
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, string(labelBytes)
}

// applyBotTimingDefaults fills bot timing knobs the environment left
// unset from the game config, then from built-in defaults.
func applyBotTimingDefaults(state *MatchState, cfg *config.GameConfig) {
	if state.BotMinDelay == 0 {
		state.BotMinDelay = 1
		if cfg != nil && cfg.BotTurnDelaySeconds > 0 {
			state.BotMinDelay = cfg.BotTurnDelaySeconds
		}
	}
	if state.BotMaxDelay == 0 {
		state.BotMaxDelay = state.BotMinDelay + 2
	}
	if state.BotMaxDelay < state.BotMinDelay {
		state.BotMaxDelay = state.BotMinDelay
	}
	if state.BotAutoFillDelay == 0 {
		state.BotAutoFillDelay = 5
		if cfg != nil && cfg.BotAutoFillDelaySeconds > 0 {
			state.BotAutoFillDelay = cfg.BotAutoFillDelaySeconds
		}
	}
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Allow join if there is an empty seat OR a bot to replace before the game starts.
	if matchState.GetOpenSeatsCount() <= 0 {
		hasBot := false
		if matchState.Game == nil {
			for _, seat := range matchState.Seats {
				if isBotUserId(seat) {
					hasBot = true
					break
				}
			}
		}
		if !hasBot {
			return state, false, "Match full"
		}
	}

	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		// Assign seat: empty seats first, then bots while still in lobby.
		assigned := false
		for i, seatUserId := range matchState.Seats {
			if seatUserId == "" {
				matchState.Seats[i] = p.GetUserId()
				assigned = true
				break
			}
		}

		if !assigned && matchState.Game == nil {
			for i, seatUserId := range matchState.Seats {
				if isBotUserId(seatUserId) {
					logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", seatUserId, p.GetUserId(), i)
					delete(matchState.Bots, seatUserId)
					matchState.Seats[i] = p.GetUserId()
					assigned = true
					break
				}
			}
		}

		if !assigned {
			logger.Warn("MatchJoin: User %s joined but no seat (empty or bot) was available.", p.GetUserId())
		}
	}

	// Owner must be a human player.
	if !isHumanSeat(matchState.Seats[:], matchState.OwnerSeat) {
		matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats[:])
		if matchState.OwnerSeat >= 0 {
			logger.Debug("MatchJoin: Owner set to human seat %d.", matchState.OwnerSeat)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(ctx, matchState, dispatcher, logger)

	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		for i, seatUserId := range matchState.Seats {
			if seatUserId == p.GetUserId() {
				matchState.Seats[i] = ""
				logger.Debug("MatchLeave: User %s left, seat %d freed.", p.GetUserId(), i)
				break
			}
		}
	}

	if newOwnerSeat := findFirstHumanSeat(matchState.Seats[:]); newOwnerSeat != matchState.OwnerSeat {
		matchState.OwnerSeat = newOwnerSeat
		if newOwnerSeat >= 0 {
			logger.Debug("MatchLeave: Owner set to human seat %d.", newOwnerSeat)
		}
	}

	if shouldTerminateNoHumans(matchState.Seats[:]) {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleStartGame(ctx, matchState, dispatcher, logger, msg)
		case OpRollDice:
			mh.handleRollDice(ctx, matchState, dispatcher, logger, msg)
		case OpMoveToken:
			mh.handleMoveToken(ctx, matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	mh.tickTurnTimer(ctx, matchState, dispatcher, logger)

	if matchState.BotsEnabled {
		mh.processBots(ctx, matchState, dispatcher, logger)
	}

	return matchState
}

// tickTurnTimer counts the active turn down and forces a play when a
// human lets the clock run out, so one absent player cannot stall the
// table.
func (mh *matchHandler) tickTurnTimer(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Game == nil || state.Game.Phase != domain.PhasePlaying {
		return
	}

	current := state.Game.CurrentPlayer()
	if current == nil || isBotUserId(current.UserID) {
		return
	}

	if state.TurnSecondsRemaining > 0 {
		state.TurnSecondsRemaining--
		return
	}

	logger.Info("tickTurnTimer: Forcing turn for seat %d after timeout.", current.Seat)
	switch state.Game.Seq.Phase() {
	case domain.PhaseAwaitingRoll:
		if events, err := state.App.RollDice(state.Game, current.Seat); err == nil {
			for _, ev := range events {
				mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
			}
		}
	case domain.PhaseTokenSelectable:
		legal := state.Game.Seq.PendingLegalTokens()
		if len(legal) > 0 {
			if events, err := state.App.MoveToken(state.Game, current.Seat, legal[0]); err == nil {
				for _, ev := range events {
					mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
				}
			}
		}
	}
	mh.resetTurnSecondsRemainingWithBonus(state, logger, 0)
}

// resetTurnSecondsRemainingWithBonus rearms the turn countdown from
// configuration plus an optional bonus.
func (mh *matchHandler) resetTurnSecondsRemainingWithBonus(state *MatchState, logger runtime.Logger, bonusSeconds int) {
	duration := defaultTurnDurationSeconds
	if cfg := config.GetGameConfig(); cfg != nil && cfg.TurnDurationSeconds > 0 {
		duration = cfg.TurnDurationSeconds
	}
	state.TurnSecondsRemaining = int64(duration + bonusSeconds)
}

func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	// 1. Auto-fill the lobby with bots when a single human has waited long enough.
	if state.Game == nil {
		humanCount := state.GetHumanPlayerCount()
		if humanCount == 1 {
			if state.LastSinglePlayerTick == 0 {
				state.LastSinglePlayerTick = state.Tick
				logger.Debug("processBots: Single player detected, starting auto-fill timer.")
			}

			if state.Tick-state.LastSinglePlayerTick >= int64(state.BotAutoFillDelay) {
				added := false
				// Leave one seat open so a second human can still join.
				for i, seat := range state.Seats {
					if seat != "" {
						continue
					}
					if state.GetOccupiedSeatCount() >= len(state.Seats)-1 {
						break
					}
					identity := bot.GetBotIdentity(i)
					botID := identity.UserID
					state.Seats[i] = botID

					agent, err := bot.NewAgent(botID)
					if err != nil {
						logger.Error("processBots: Failed to create bot agent for %s: %v", botID, err)
					} else {
						state.Bots[botID] = agent
					}

					logger.Info("processBots: Added bot %s (%s) to seat %d", identity.Username, botID, i)
					added = true
				}
				if added {
					mh.updateLabel(state, dispatcher, logger)
					mh.broadcastMatchState(ctx, state, dispatcher, logger)
				}
				state.LastSinglePlayerTick = 0
			}
		} else {
			state.LastSinglePlayerTick = 0
		}
	}

	// 2. Act for bots whose turn it is, after a small human-like delay.
	if state.Game != nil && state.Game.Phase == domain.PhasePlaying {
		current := state.Game.CurrentPlayer()
		if current == nil {
			return
		}

		if isBotUserId(current.UserID) {
			if state.BotWaitUntil == 0 {
				delay := rand.Intn(state.BotMaxDelay-state.BotMinDelay+1) + state.BotMinDelay
				state.BotWaitUntil = state.Tick + int64(delay)
				logger.Debug("processBots: Bot %s (seat %d) will act at tick %d (current %d)", current.UserID, current.Seat, state.BotWaitUntil, state.Tick)
			}

			if state.Tick >= state.BotWaitUntil {
				state.BotWaitUntil = 0
				mh.playBotTurn(ctx, state, dispatcher, logger, current)
			}
		} else {
			state.BotWaitUntil = 0
		}
	}
}

// playBotTurn rolls for the bot and, when the roll opens a selection,
// immediately commits the agent's chosen token.
func (mh *matchHandler) playBotTurn(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, current *domain.Player) {
	agent, exists := state.Bots[current.UserID]
	if !exists {
		var err error
		agent, err = bot.NewAgent(current.UserID)
		if err != nil {
			logger.Error("processBots: Failed to create fallback agent: %v", err)
			return
		}
		state.Bots[current.UserID] = agent
	}

	events, err := state.App.RollDice(state.Game, current.Seat)
	if err != nil {
		logger.Error("processBots: Bot %s roll failed: %v", current.UserID, err)
		return
	}
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}

	if state.Game == nil || state.Game.Seq.Phase() != domain.PhaseTokenSelectable {
		return
	}

	tokenID, err := agent.ChooseToken(state.Game)
	if err != nil {
		logger.Error("processBots: Bot %s failed to choose a token: %v", current.UserID, err)
		return
	}

	events, err = state.App.MoveToken(state.Game, current.Seat, tokenID)
	if err != nil {
		logger.Error("processBots: Bot %s move failed: %v", current.UserID, err)
		return
	}
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) broadcastMatchState(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	var playerStates []PlayerState
	for i, userId := range state.Seats {
		if userId == "" {
			continue
		}

		displayName := userId
		if p, exists := state.Presences[userId]; exists {
			displayName = p.GetUsername()
		} else if name := bot.GetBotDisplayName(userId); name != "" {
			displayName = name
		}

		var balance int64
		if state.Economy != nil {
			if b, err := state.Economy.GetBalance(ctx, userId); err == nil {
				balance = b
			}
		}

		color := domain.SeatColor(i)
		finished := 0
		if state.Game != nil {
			finished = state.Game.Seq.Snapshot().FinishedCount(color)
		}

		playerStates = append(playerStates, PlayerState{
			UserID:         userId,
			Seat:           i,
			IsOwner:        i == state.OwnerSeat,
			Color:          color.String(),
			FinishedTokens: finished,
			DisplayName:    displayName,
			Balance:        balance,
		})
	}

	phase := "lobby"
	if state.Game != nil {
		phase = string(state.Game.Phase)
	}

	snapshot := MatchStateSnapshot{
		Seats:     state.Seats[:],
		OwnerSeat: state.OwnerSeat,
		Tick:      state.Tick,
		Phase:     phase,
		Players:   playerStates,
	}
	bytes, _ := json.Marshal(snapshot)
	dispatcher.BroadcastMessage(OpPlayerJoined, bytes, nil, nil, true)
}

// seatOfSender resolves the seat index for the message sender, -1 if not seated.
func (mh *matchHandler) seatOfSender(state *MatchState, userID string) int {
	for i, seatUserId := range state.Seats {
		if seatUserId == userID {
			return i
		}
	}
	return -1
}

func (mh *matchHandler) handleStartGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := mh.seatOfSender(state, senderID)

	logger.Info("StartGame: Request received from %s (seat=%d, owner_seat=%d, occupied=%d)", senderID, senderSeat, state.OwnerSeat, state.GetOccupiedSeatCount())

	request := StartGameRequest{}
	if len(msg.GetData()) > 0 {
		if err := json.Unmarshal(msg.GetData(), &request); err != nil {
			logger.Warn("StartGame: Invalid StartGameRequest from %s: %v", senderID, err)
			return
		}
	}

	if senderSeat != state.OwnerSeat {
		logger.Warn("StartGame: User %s tried to start game but is not owner (owner_seat=%d)", senderID, state.OwnerSeat)
		return
	}

	activeCount := state.GetOccupiedSeatCount()
	if activeCount < app.MinPlayersToStartGame {
		logger.Warn("StartGame: Cannot start with %d players. Need at least %d.", activeCount, app.MinPlayersToStartGame)
		return
	}

	baseBet := config.GetBaseBet(request.Tier)

	game, events, err := state.App.StartGame(state.Seats, baseBet)
	if err != nil {
		logger.Error("StartGame: Failed to start game: %v", err)
		return
	}

	state.Game = game
	mh.updateLabel(state, dispatcher, logger)
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
	mh.resetTurnSecondsRemainingWithBonus(state, logger, gameStartTurnTimerBonusSeconds)

	logger.Info("StartGame: Game started with %d players.", activeCount)
}

func (mh *matchHandler) handleRollDice(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := mh.seatOfSender(state, senderID)

	if state.Game == nil {
		logger.Warn("handleRollDice: Game not started.")
		return
	}

	events, err := state.App.RollDice(state.Game, senderSeat)
	if err != nil {
		logger.Warn("handleRollDice: User %s (seat %d) failed to roll: %v", senderID, senderSeat, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) handleMoveToken(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := mh.seatOfSender(state, senderID)

	if state.Game == nil {
		logger.Warn("handleMoveToken: Game not started.")
		return
	}

	request := MoveTokenRequest{}
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Error("handleMoveToken: Failed to unmarshal MoveTokenRequest: %v", err)
		return
	}

	events, err := state.App.MoveToken(state.Game, senderSeat, request.TokenID)
	if err != nil {
		logger.Warn("handleMoveToken: User %s (seat %d) failed to move token %d: %v", senderID, senderSeat, request.TokenID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

// broadcastEvent handles the conversion and dispatching of app events to Nakama.
func (mh *matchHandler) broadcastEvent(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	var opCode int64
	var payload interface{}

	switch ev.Kind {
	case app.EventGameStarted:
		opCode = OpGameStarted
		p := ev.Payload.(app.GameStartedPayload)
		payload = GameStartedEvent{
			Phase:         string(p.Phase),
			FirstTurnSeat: p.FirstTurnSeat,
			SeatColors:    p.SeatColors,
		}
	case app.EventDiceRolled:
		opCode = OpDiceRolled
		p := ev.Payload.(app.DiceRolledPayload)
		payload = DiceRolledEvent{Seat: p.Seat, Die: p.Die, LegalTokens: p.LegalTokens}
	case app.EventTurnSkipped:
		opCode = OpTurnSkipped
		p := ev.Payload.(app.TurnSkippedPayload)
		payload = TurnSkippedEvent{Seat: p.Seat, Die: p.Die, Forfeited: p.Forfeited}
	case app.EventTokenMoved:
		opCode = OpTokenMoved
		payload = toWireTokenMoved(ev.Payload.(app.TokenMovedPayload))
	case app.EventTokenCaptured:
		opCode = OpTokenCaptured
		p := ev.Payload.(app.TokenCapturedPayload)
		payload = TokenCapturedEvent{Seat: p.Seat, TokenID: p.TokenID, AbsoluteCell: p.AbsoluteCell, BySeat: p.BySeat}
	case app.EventTokenFinished:
		opCode = OpTokenFinished
		p := ev.Payload.(app.TokenFinishedPayload)
		payload = TokenFinishedEvent{Seat: p.Seat, TokenID: p.TokenID}
	case app.EventTurnChanged:
		opCode = OpTurnChanged
		p := ev.Payload.(app.TurnChangedPayload)
		mh.resetTurnSecondsRemainingWithBonus(state, logger, 0)
		payload = TurnChangedEvent{NextTurnSeat: p.NextTurnSeat, TurnSecondsRemaining: state.TurnSecondsRemaining}
	case app.EventGameEnded:
		opCode = OpGameEnded
		p := ev.Payload.(app.GameEndedPayload)
		payload = GameEndedEvent{
			WinnerSeat:     p.WinnerSeat,
			WinnerUserID:   p.WinnerUserID,
			BalanceChanges: p.BalanceChanges,
		}

		// Apply balance changes to Nakama wallets.
		if state.Economy != nil {
			updates := make([]ports.WalletUpdate, 0, len(p.BalanceChanges))
			for userID, amount := range p.BalanceChanges {
				if isBotUserId(userID) {
					continue
				}
				updates = append(updates, ports.WalletUpdate{
					UserID: userID,
					Amount: amount,
					Metadata: map[string]interface{}{
						"match_id": ctx.Value(runtime.RUNTIME_CTX_MATCH_ID),
						"reason":   "game_settlement",
					},
				})
			}
			if err := state.Economy.UpdateBalances(ctx, updates); err != nil {
				logger.Error("Failed to update balances: %v", err)
			}
		}

		// Game over, return to lobby.
		state.Game = nil
		mh.updateLabel(state, dispatcher, logger)
	default:
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}

	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	// Determine recipients (default to broadcast).
	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}

		// If the intended recipients are not connected (e.g. bots),
		// we MUST NOT broadcast to everyone else.
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true)
}

// sendError sends a GameErrorEvent to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	bytes, err := json.Marshal(GameErrorEvent{Code: code, Message: message})
	if err != nil {
		logger.Error("Failed to marshal GameErrorEvent: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	dispatcher.BroadcastMessage(OpGameError, bytes, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	phase := "lobby"
	if state.Game != nil {
		phase = "playing"
	}

	labelBytes, err := json.Marshal(&MatchLabel{
		Open:  state.GetOpenSeatsCount(),
		Game:  "ludo",
		Phase: phase,
	})
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
