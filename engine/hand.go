package engine

// Hand is an ordered sequence of cards with its wager and round-scoped
// status flags. Derived properties (value, softness, bust, blackjack) are
// always recomputed from the cards, never stored.
type Hand struct {
	Cards []Card
	Bet   int

	Stood       bool
	Doubled     bool
	FromSplit   bool
	Surrendered bool
	Insured     bool
}

// NewHand returns an empty hand carrying the given bet.
func NewHand(bet int) *Hand {
	return &Hand{Cards: make([]Card, 0, 8), Bet: bet}
}

// Add appends a drawn card to the hand.
func (h *Hand) Add(c Card) {
	h.Cards = append(h.Cards, c)
}

// Value returns the best total for the hand: each Ace counts as 11 first,
// then Aces are re-counted as 1 while the total exceeds 21.
func (h *Hand) Value() int {
	total, _ := h.evaluate()
	return total
}

// IsSoft reports whether at least one Ace is still counted as 11 in the
// hand's best total.
func (h *Hand) IsSoft() bool {
	_, soft := h.evaluate()
	return soft
}

func (h *Hand) evaluate() (total int, soft bool) {
	aces := 0
	for _, c := range h.Cards {
		total += c.Value()
		if c.Rank == RankAce {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total, aces > 0
}

// IsBust reports whether the hand's best total exceeds 21.
func (h *Hand) IsBust() bool {
	return h.Value() > 21
}

// IsBlackjack reports whether the hand is a natural: exactly two cards
// totaling 21. A two-card 21 assembled after a split is just 21.
func (h *Hand) IsBlackjack() bool {
	return !h.FromSplit && len(h.Cards) == 2 && h.Value() == 21
}

// IsPair reports whether the hand is exactly two cards of equal rank-value.
func (h *Hand) IsPair() bool {
	return len(h.Cards) == 2 && h.Cards[0].Value() == h.Cards[1].Value()
}

// Finished reports whether no further player decision applies to this hand.
func (h *Hand) Finished() bool {
	return h.Stood || h.Doubled || h.Surrendered || h.Value() >= 21
}

// Live reports whether the hand still contends against the dealer at
// resolution: not bust and not surrendered.
func (h *Hand) Live() bool {
	return !h.IsBust() && !h.Surrendered
}
