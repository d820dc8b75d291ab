package engine

// Strategy selects the autopilot decision function.
type Strategy string

const (
	StrategySimple       Strategy = "simple"
	StrategyBasic        Strategy = "basic"
	StrategyConservative Strategy = "conservative"
)

// ParseStrategy validates a strategy name from the wire.
func ParseStrategy(s string) (Strategy, bool) {
	switch Strategy(s) {
	case StrategySimple, StrategyBasic, StrategyConservative:
		return Strategy(s), true
	}
	return "", false
}

// Move is a player decision produced by a strategy.
type Move string

const (
	MoveHit    Move = "hit"
	MoveStand  Move = "stand"
	MoveDouble Move = "double"
	MoveSplit  Move = "split"
)

// Decide returns the strategy's move for the given hand against the dealer
// upcard. It is a pure function; normal action-legality checks still apply
// when the move is executed. No strategy surrenders or insures.
func Decide(strategy Strategy, h *Hand, up Card, canDouble, canSplit bool) Move {
	switch strategy {
	case StrategySimple:
		return simpleStrategy(h)
	case StrategyBasic:
		return basicStrategy(h, up, canDouble, canSplit)
	case StrategyConservative:
		return conservativeStrategy(h)
	}
	return MoveStand
}

// simpleStrategy hits below 17, stands on 17 and up.
func simpleStrategy(h *Hand) Move {
	if h.Value() < 17 {
		return MoveHit
	}
	return MoveStand
}

// conservativeStrategy favors not busting over expected value: it hits only
// below 12 and never doubles or splits.
func conservativeStrategy(h *Hand) Move {
	if h.Value() < 12 {
		return MoveHit
	}
	return MoveStand
}

// basicStrategy plays the canonical basic-strategy table keyed by the
// player's total (or pair) and the dealer's upcard.
func basicStrategy(h *Hand, up Card, canDouble, canSplit bool) Move {
	value := h.Value()
	dealer := up.Value() // Ace counts as 11

	if canSplit && h.IsPair() {
		if mv, ok := pairStrategy(h.Cards[0].Rank, dealer); ok {
			return mv
		}
	}

	if h.IsSoft() {
		switch {
		case value >= 19:
			return MoveStand
		case value == 18:
			if dealer >= 9 {
				return MoveHit
			}
			if canDouble && dealer >= 3 && dealer <= 6 {
				return MoveDouble
			}
			return MoveStand
		case value == 17:
			if canDouble && dealer >= 3 && dealer <= 6 {
				return MoveDouble
			}
			return MoveHit
		case value >= 13:
			if canDouble && dealer >= 5 && dealer <= 6 {
				return MoveDouble
			}
			return MoveHit
		default:
			return MoveHit
		}
	}

	switch {
	case value >= 17:
		return MoveStand
	case value >= 13:
		if dealer >= 2 && dealer <= 6 {
			return MoveStand
		}
		return MoveHit
	case value == 12:
		if dealer >= 4 && dealer <= 6 {
			return MoveStand
		}
		return MoveHit
	case value == 11:
		if canDouble {
			return MoveDouble
		}
		return MoveHit
	case value == 10:
		if canDouble && dealer >= 2 && dealer <= 9 {
			return MoveDouble
		}
		return MoveHit
	case value == 9:
		if canDouble && dealer >= 3 && dealer <= 6 {
			return MoveDouble
		}
		return MoveHit
	default:
		return MoveHit
	}
}

// pairStrategy returns the split decision for a pair, or ok=false to fall
// through to the total-based table.
func pairStrategy(rank Rank, dealer int) (Move, bool) {
	switch rank {
	case RankAce, RankEight:
		// Always split Aces and 8s.
		return MoveSplit, true
	case RankFive, RankTen, RankJack, RankQueen, RankKing:
		// Never split 5s and 10-value pairs.
		return "", false
	case RankTwo, RankThree, RankSix, RankSeven:
		if dealer >= 2 && dealer <= 7 {
			return MoveSplit, true
		}
	case RankFour:
		if dealer >= 5 && dealer <= 6 {
			return MoveSplit, true
		}
	case RankNine:
		if (dealer >= 2 && dealer <= 6) || (dealer >= 8 && dealer <= 9) {
			return MoveSplit, true
		}
	}
	return "", false
}

// BetSize returns the autopilot wager: a flat unit, clamped to the chips
// available.
func BetSize(strategy Strategy, unit, chips int) int {
	if unit > chips {
		return chips
	}
	return unit
}

// StrategyDescription returns a short human-readable summary of a strategy.
func StrategyDescription(strategy Strategy) string {
	switch strategy {
	case StrategySimple:
		return "Simple strategy: Hit on <17, stand on 17+. Good for learning."
	case StrategyBasic:
		return "Basic strategy: Mathematically optimal play based on probability. Best for winning."
	case StrategyConservative:
		return "Conservative strategy: Risk-averse, focuses on not busting. Safest play."
	}
	return "Unknown strategy"
}
