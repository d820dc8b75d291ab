package engine

import "testing"

// mkHand builds a hand from cards. Suits are irrelevant to evaluation, so
// hearts is used throughout.
func mkHand(ranks ...Rank) *Hand {
	h := NewHand(0)
	for _, r := range ranks {
		h.Add(NewCard(SuitHearts, r))
	}
	return h
}

func TestHandValueAceSoft(t *testing.T) {
	h := mkHand(RankAce, RankSix)
	if v := h.Value(); v != 17 {
		t.Errorf("A+6: expected 17, got %d", v)
	}
	if !h.IsSoft() {
		t.Error("A+6 should be soft")
	}
}

func TestHandValueAceHardened(t *testing.T) {
	h := mkHand(RankAce, RankSix, RankTen)
	if v := h.Value(); v != 17 {
		t.Errorf("A+6+10: expected 17, got %d", v)
	}
	if h.IsSoft() {
		t.Error("A+6+10 should be hard")
	}
}

func TestHandValueMultipleAces(t *testing.T) {
	cases := []struct {
		ranks []Rank
		value int
		soft  bool
	}{
		{[]Rank{RankAce, RankAce}, 12, true},
		{[]Rank{RankAce, RankAce, RankNine}, 21, true},
		{[]Rank{RankAce, RankAce, RankAce, RankEight}, 21, true},
		{[]Rank{RankAce, RankKing, RankQueen}, 21, false},
		{[]Rank{RankAce, RankAce, RankTen, RankTen}, 22, false},
	}
	for _, tc := range cases {
		h := mkHand(tc.ranks...)
		if v := h.Value(); v != tc.value {
			t.Errorf("%v: expected value %d, got %d", tc.ranks, tc.value, v)
		}
		if s := h.IsSoft(); s != tc.soft {
			t.Errorf("%v: expected soft=%v, got %v", tc.ranks, tc.soft, s)
		}
	}
}

func TestHandBustIsLowestTotal(t *testing.T) {
	// With no reducible Aces the lowest possible total stands.
	h := mkHand(RankKing, RankQueen, RankFive)
	if v := h.Value(); v != 25 {
		t.Errorf("K+Q+5: expected 25, got %d", v)
	}
	if !h.IsBust() {
		t.Error("K+Q+5 should be bust")
	}
}

func TestBlackjackIsTwoCardTwentyOne(t *testing.T) {
	if !mkHand(RankAce, RankKing).IsBlackjack() {
		t.Error("A+K should be blackjack")
	}
	if mkHand(RankSeven, RankSeven, RankSeven).IsBlackjack() {
		t.Error("7+7+7 totals 21 but is not blackjack")
	}
}

func TestSplitHandTwentyOneIsNotBlackjack(t *testing.T) {
	h := mkHand(RankAce, RankKing)
	h.FromSplit = true
	if h.IsBlackjack() {
		t.Error("two-card 21 after a split is not blackjack")
	}
	if v := h.Value(); v != 21 {
		t.Errorf("expected 21, got %d", v)
	}
}

func TestIsPairComparesRankValue(t *testing.T) {
	if !mkHand(RankEight, RankEight).IsPair() {
		t.Error("8+8 should be a pair")
	}
	if !mkHand(RankKing, RankTen).IsPair() {
		t.Error("K+10 share rank-value 10 and should be splittable as a pair")
	}
	if mkHand(RankNine, RankTen).IsPair() {
		t.Error("9+10 should not be a pair")
	}
	if mkHand(RankEight, RankEight, RankEight).IsPair() {
		t.Error("three cards are never a pair")
	}
}

func TestHandFinished(t *testing.T) {
	h := mkHand(RankTen, RankSix)
	if h.Finished() {
		t.Error("16 with no flags should not be finished")
	}
	h.Stood = true
	if !h.Finished() {
		t.Error("stood hand should be finished")
	}

	if !mkHand(RankKing, RankQueen, RankFive).Finished() {
		t.Error("busted hand should be finished")
	}
	if !mkHand(RankAce, RankKing).Finished() {
		t.Error("21 should be finished")
	}
}
