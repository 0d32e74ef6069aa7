package domain

// Settlement holds the per-user balance changes produced by a finished
// game. Payout math stays in the domain so the wallet adapter only
// applies numbers it is handed.
type Settlement struct {
	BalanceChanges map[string]int64 // userID -> signed amount
}

// CalculateSettlement computes the pot distribution for an ended game:
// the winner collects one BaseBet from every other player. A game with
// no winner (abandoned lobby) settles to nothing.
func (g *Game) CalculateSettlement() Settlement {
	settlement := Settlement{BalanceChanges: make(map[string]int64, len(g.Players))}
	if g.Winner == "" {
		return settlement
	}
	for uid := range g.Players {
		if uid == g.Winner {
			settlement.BalanceChanges[uid] = g.BaseBet * int64(len(g.Players)-1)
		} else {
			settlement.BalanceChanges[uid] = -g.BaseBet
		}
	}
	return settlement
}
