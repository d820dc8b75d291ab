package engine

// finishRound applies payouts to the player's chips, updates the session
// statistics, and clears the round wagers. Called exactly once per round,
// at the end of the dealer turn.
func (g *Game) finishRound() {
	g.Phase = PhaseFinished
	g.resolveBets()
	g.CurrentBet = 0
	g.InsuranceBet = 0
}

// resolveBets compares every player hand against the dealer's final hand
// and credits winnings. Bets were deducted when staked, so a loss credits
// nothing, a push returns the stake, and a win returns the stake plus the
// payout.
func (g *Game) resolveBets() {
	dealerValue := g.DealerHand.Value()
	dealerBlackjack := g.DealerHand.IsBlackjack()
	dealerBust := g.DealerHand.IsBust()

	// Insurance pays 2:1 on dealer blackjack, independent of the main hand.
	if g.InsuranceBet > 0 && dealerBlackjack {
		g.Chips += g.InsuranceBet * 3
	}

	for _, h := range g.PlayerHands {
		g.Stats.HandsPlayed++
		switch {
		case h.Surrendered:
			g.Chips += h.Bet / 2
			g.Stats.HandsLost++
		case h.IsBust():
			g.Stats.HandsLost++
		case h.IsBlackjack() && !dealerBlackjack:
			// Blackjack pays 3:2.
			g.Chips += h.Bet + h.Bet*3/2
			g.Stats.HandsWon++
		case dealerBust || h.Value() > dealerValue:
			g.Chips += h.Bet * 2
			g.Stats.HandsWon++
		case h.Value() == dealerValue:
			// Push.
			g.Chips += h.Bet
		default:
			g.Stats.HandsLost++
		}
	}
}

// Profit returns chips won or lost relative to the session's starting stack.
func (g *Game) Profit() int {
	return g.Chips - g.Stats.StartingChips
}
