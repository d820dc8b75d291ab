package engine

import (
	"math/rand"
	"testing"
)

func playingGame(player *Hand, dealer *Hand) *Game {
	g := NewGame(DefaultRules(), rand.New(rand.NewSource(1)))
	player.Bet = 100
	g.Chips = 900
	g.CurrentBet = 100
	g.PlayerHands = []*Hand{player}
	g.DealerHand = dealer
	g.Phase = PhasePlaying
	return g
}

func TestCanHit(t *testing.T) {
	g := playingGame(mkHand(RankTen, RankSix), mkHand(RankNine, RankFive))
	if !g.CanHit() {
		t.Error("16 should be able to hit")
	}

	g.PlayerHands[0] = mkHand(RankTen, RankKing, RankFive)
	if g.CanHit() {
		t.Error("busted hand cannot hit")
	}

	g.PlayerHands[0] = mkHand(RankAce, RankKing)
	if g.CanHit() {
		t.Error("blackjack cannot hit")
	}

	g.Phase = PhaseBetting
	if g.CanHit() {
		t.Error("cannot hit outside the playing phase")
	}
}

func TestCanDouble(t *testing.T) {
	g := playingGame(mkHand(RankFive, RankSix), mkHand(RankNine, RankFive))
	if !g.CanDouble(g.PlayerHands[0]) {
		t.Error("two-card hand with chip cover should double")
	}

	g.PlayerHands[0] = mkHand(RankFive, RankSix, RankTwo)
	if g.CanDouble(g.PlayerHands[0]) {
		t.Error("three-card hand cannot double")
	}

	g.PlayerHands[0] = mkHand(RankFive, RankSix)
	g.PlayerHands[0].Bet = 100
	g.Chips = 99
	if g.CanDouble(g.PlayerHands[0]) {
		t.Error("cannot double without chips to match the bet")
	}
}

func TestCanSplit(t *testing.T) {
	pair := mkHand(RankEight, RankEight)
	g := playingGame(pair, mkHand(RankNine, RankFive))
	if !g.CanSplit(pair) {
		t.Error("pair of eights should split")
	}

	// Ten-value cards of different ranks still count as a pair.
	tens := mkHand(RankKing, RankTen)
	tens.Bet = 100
	g.PlayerHands[0] = tens
	if !g.CanSplit(tens) {
		t.Error("K+10 is a splittable pair by value")
	}

	g.Chips = 50
	if g.CanSplit(tens) {
		t.Error("cannot split without chips for the second stake")
	}
}

func TestCanSurrender(t *testing.T) {
	g := playingGame(mkHand(RankTen, RankSix), mkHand(RankNine, RankFive))
	if !g.CanSurrender(g.PlayerHands[0]) {
		t.Error("fresh two-card original hand should surrender")
	}

	split := mkHand(RankEight, RankTwo)
	split.FromSplit = true
	g.PlayerHands[0] = split
	if g.CanSurrender(split) {
		t.Error("split hands cannot surrender")
	}

	g.PlayerHands[0] = mkHand(RankTen, RankSix)
	g.CurrentHand = 1
	if g.CanSurrender(g.PlayerHands[0]) {
		t.Error("only the first hand may surrender")
	}
}

func TestCanInsure(t *testing.T) {
	g := playingGame(mkHand(RankTen, RankSix), mkHand(RankAce, RankFive))
	if !g.CanInsure() {
		t.Error("dealer Ace should open insurance")
	}

	g.InsuranceBet = 50
	if g.CanInsure() {
		t.Error("insurance cannot be placed twice")
	}

	g.InsuranceBet = 0
	g.Chips = 10
	if g.CanInsure() {
		t.Error("cannot insure without chips for half the wager")
	}

	g.Chips = 900
	g.DealerHand = mkHand(RankNine, RankFive)
	if g.CanInsure() {
		t.Error("insurance requires a dealer Ace showing")
	}
}
