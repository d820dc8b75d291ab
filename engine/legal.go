package engine

// Action-legality predicates. These are recomputed on demand from
// authoritative state; the serialized per-hand flags are the results of
// these predicates, never stored fields.

// CanHit reports whether the current hand may take another card.
func (g *Game) CanHit() bool {
	if g.Phase != PhasePlaying {
		return false
	}
	h := g.currentHand()
	return h != nil && !h.IsBust() && !h.IsBlackjack()
}

// CanStand reports whether standing is legal.
func (g *Game) CanStand() bool {
	return g.Phase == PhasePlaying && g.currentHand() != nil
}

// CanDouble reports whether the given hand may double down: exactly two
// cards and enough chips to match the bet. Chip sufficiency is checked
// here, engine-side, as the single source of truth.
func (g *Game) CanDouble(h *Hand) bool {
	return len(h.Cards) == 2 && !h.Doubled && g.Chips >= h.Bet
}

// CanSplit reports whether the given hand may be split: a pair, enough
// chips for the additional bet, and the split limit not yet reached.
func (g *Game) CanSplit(h *Hand) bool {
	return h.IsPair() && g.Chips >= h.Bet && g.splitCount() < g.Rules.MaxSplits
}

// CanSurrender reports whether the given hand may surrender: only the
// original hand, as its first action.
func (g *Game) CanSurrender(h *Hand) bool {
	return g.Phase == PhasePlaying &&
		g.CurrentHand == 0 &&
		len(h.Cards) == 2 &&
		!h.FromSplit &&
		!h.Doubled
}

// CanInsure reports whether insurance is available: dealer shows an Ace,
// no insurance placed yet, and chips cover half the round wager.
func (g *Game) CanInsure() bool {
	if g.Phase != PhasePlaying || len(g.PlayerHands) == 0 || g.InsuranceBet != 0 {
		return false
	}
	up, ok := g.DealerUpcard()
	if !ok || up.Rank != RankAce {
		return false
	}
	cost := g.CurrentBet / 2
	return cost > 0 && g.Chips >= cost
}

// splitCount returns the number of splits performed this round.
func (g *Game) splitCount() int {
	if len(g.PlayerHands) == 0 {
		return 0
	}
	return len(g.PlayerHands) - 1
}
