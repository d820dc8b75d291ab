// Package engine implements the blackjack rules: shoe management, hand
// evaluation, action legality, the round state machine, payout resolution,
// and the autopilot decision strategies.
//
// The package is self-contained and free of side effects; the service layer
// wraps a Game in a Session that serializes access and broadcasts state.
package engine

import (
	"fmt"
	"math/rand"
)

// Phase is the round state-machine phase.
type Phase string

const (
	PhaseBetting    Phase = "betting"
	PhasePlaying    Phase = "playing"
	PhaseDealerTurn Phase = "dealer_turn"
	PhaseFinished   Phase = "finished"
)

// Stats accumulates per-session outcomes. Updated only at the transition
// into PhaseFinished; derived, not authoritative.
type Stats struct {
	HandsPlayed   int
	HandsWon      int
	HandsLost     int
	StartingChips int
}

// Game owns one blackjack session's mutable state. Fields are exported so
// tests can stage positions directly; external callers mutate only through
// the action methods, each of which either applies fully or returns an
// error leaving state untouched.
type Game struct {
	Shoe         *Shoe
	PlayerHands  []*Hand
	DealerHand   *Hand
	CurrentHand  int
	Phase        Phase
	Chips        int
	CurrentBet   int
	InsuranceBet int
	Rules        Rules
	Stats        Stats
}

// NewGame creates a session in the betting phase with a fresh shoe.
// A nil rng seeds from the wall clock.
func NewGame(rules Rules, rng *rand.Rand) *Game {
	return &Game{
		Shoe:       NewShoe(rules.NumDecks, rng),
		DealerHand: NewHand(0),
		Phase:      PhaseBetting,
		Chips:      rules.StartingChips,
		Rules:      rules,
		Stats:      Stats{StartingChips: rules.StartingChips},
	}
}

// DealerUpcard returns the dealer's visible card, or false before the deal.
// The second dealer card is the hole card, hidden until the dealer turn.
func (g *Game) DealerUpcard() (Card, bool) {
	if len(g.DealerHand.Cards) == 0 {
		return Card{}, false
	}
	return g.DealerHand.Cards[0], true
}

// currentHand returns the hand at CurrentHand, or nil if out of range.
func (g *Game) currentHand() *Hand {
	if g.CurrentHand < 0 || g.CurrentHand >= len(g.PlayerHands) {
		return nil
	}
	return g.PlayerHands[g.CurrentHand]
}

// PlaceBet stakes the round wager. Legal in the betting phase and in the
// finished phase (which starts the next round first). A repeat bet during
// the betting phase replaces the previous wager.
func (g *Game) PlaceBet(amount int) error {
	if g.Phase != PhaseBetting && g.Phase != PhaseFinished {
		return fmt.Errorf("%w: cannot bet in %s phase", ErrIllegalAction, g.Phase)
	}
	// Previous wager is refundable, so it counts toward the limit. In the
	// finished phase the wager is already zero. Validate before touching
	// state so a rejected bet never clears the finished round.
	if amount <= 0 || amount > g.Chips+g.CurrentBet {
		return ErrInvalidBetAmount
	}
	if g.Phase == PhaseFinished {
		g.resetRound()
	}
	g.Chips += g.CurrentBet - amount
	g.CurrentBet = amount
	return nil
}

// Deal starts the round: reshuffles the shoe if it has run low, deals two
// cards to the player and two to the dealer (second one hidden), and moves
// to the playing phase. A natural player blackjack with no dealer Ace
// showing resolves the round immediately.
func (g *Game) Deal() error {
	if g.Phase != PhaseBetting {
		return fmt.Errorf("%w: cannot deal in %s phase", ErrIllegalAction, g.Phase)
	}
	if g.CurrentBet <= 0 {
		return fmt.Errorf("%w: no bet placed", ErrIllegalAction)
	}
	if g.Shoe.Remaining() < g.Rules.ReshuffleBelow {
		g.Shoe.Reshuffle()
	}

	hand := NewHand(g.CurrentBet)
	g.PlayerHands = []*Hand{hand}
	g.DealerHand = NewHand(0)
	g.CurrentHand = 0

	for i := 0; i < 2; i++ {
		if err := g.drawTo(hand); err != nil {
			return err
		}
		if err := g.drawTo(g.DealerHand); err != nil {
			return err
		}
	}
	g.Phase = PhasePlaying

	// A natural ends the hand at once unless the dealer shows an Ace, in
	// which case the insurance window stays open until the player stands.
	if hand.IsBlackjack() {
		if up, ok := g.DealerUpcard(); ok && up.Rank != RankAce {
			g.beginDealerTurn()
		}
	}
	return nil
}

// Hit draws one card to the current hand. Busting or reaching 21 advances
// play automatically.
func (g *Game) Hit() error {
	hand, err := g.playableHand()
	if err != nil {
		return err
	}
	if hand.IsBust() || hand.IsBlackjack() {
		return fmt.Errorf("%w: hand cannot hit", ErrIllegalAction)
	}
	if err := g.drawTo(hand); err != nil {
		return err
	}
	if hand.Value() >= 21 {
		g.advance()
	}
	return nil
}

// Stand finishes the current hand and advances play.
func (g *Game) Stand() error {
	hand, err := g.playableHand()
	if err != nil {
		return err
	}
	hand.Stood = true
	g.advance()
	return nil
}

// Double doubles the wager on a two-card hand, draws exactly one card, and
// advances regardless of the result.
func (g *Game) Double() error {
	hand, err := g.playableHand()
	if err != nil {
		return err
	}
	if !g.CanDouble(hand) {
		return fmt.Errorf("%w: cannot double down", ErrIllegalAction)
	}
	// Draw before mutating so an exhausted shoe leaves the hand untouched.
	c, err := g.Shoe.Draw()
	if err != nil {
		return err
	}
	g.Chips -= hand.Bet
	g.CurrentBet += hand.Bet
	hand.Bet *= 2
	hand.Doubled = true
	hand.Add(c)
	g.advance()
	return nil
}

// Split divides a pair into two hands, each keeping one original card and
// drawing a fresh second card, with an equal additional bet deducted from
// chips. Play stays on the first of the two hands.
func (g *Game) Split() error {
	hand, err := g.playableHand()
	if err != nil {
		return err
	}
	if !g.CanSplit(hand) {
		return fmt.Errorf("%w: cannot split", ErrIllegalAction)
	}
	// Both hands draw, so check the shoe up front rather than unwinding a
	// half-built split.
	if g.Shoe.Remaining() < 2 {
		return ErrShoeExhausted
	}

	moved := hand.Cards[len(hand.Cards)-1]
	hand.Cards = hand.Cards[:len(hand.Cards)-1]
	hand.FromSplit = true

	next := NewHand(hand.Bet)
	next.FromSplit = true
	next.Add(moved)

	if err := g.drawTo(hand); err != nil {
		return err
	}
	if err := g.drawTo(next); err != nil {
		return err
	}

	g.PlayerHands = append(g.PlayerHands, nil)
	copy(g.PlayerHands[g.CurrentHand+2:], g.PlayerHands[g.CurrentHand+1:])
	g.PlayerHands[g.CurrentHand+1] = next

	g.Chips -= hand.Bet
	g.CurrentBet += hand.Bet
	return nil
}

// Surrender gives up the original hand as the first action of the round;
// half the bet comes back at resolution.
func (g *Game) Surrender() error {
	hand, err := g.playableHand()
	if err != nil {
		return err
	}
	if !g.CanSurrender(hand) {
		return fmt.Errorf("%w: cannot surrender", ErrIllegalAction)
	}
	hand.Surrendered = true
	g.advance()
	return nil
}

// Insurance places a side bet of half the round wager when the dealer
// shows an Ace. It pays 2:1 if the dealer has blackjack.
func (g *Game) Insurance() error {
	if g.Phase != PhasePlaying {
		return fmt.Errorf("%w: cannot insure in %s phase", ErrIllegalAction, g.Phase)
	}
	if !g.CanInsure() {
		return fmt.Errorf("%w: insurance not available", ErrIllegalAction)
	}
	cost := g.CurrentBet / 2
	g.InsuranceBet = cost
	g.Chips -= cost
	g.PlayerHands[0].Insured = true
	return nil
}

// Reset clears the finished round and returns to the betting phase.
func (g *Game) Reset() error {
	if g.Phase != PhaseFinished {
		return fmt.Errorf("%w: cannot reset in %s phase", ErrIllegalAction, g.Phase)
	}
	g.resetRound()
	return nil
}

// playableHand validates the phase and returns the hand awaiting a decision.
func (g *Game) playableHand() (*Hand, error) {
	if g.Phase != PhasePlaying {
		return nil, fmt.Errorf("%w: no hand in play during %s phase", ErrIllegalAction, g.Phase)
	}
	hand := g.currentHand()
	if hand == nil {
		return nil, fmt.Errorf("%w: no current hand", ErrIllegalAction)
	}
	return hand, nil
}

func (g *Game) drawTo(h *Hand) error {
	c, err := g.Shoe.Draw()
	if err != nil {
		return err
	}
	h.Add(c)
	return nil
}

// advance moves play to the next unfinished hand, or to the dealer turn
// when none remain.
func (g *Game) advance() {
	g.CurrentHand++
	for g.CurrentHand < len(g.PlayerHands) && g.PlayerHands[g.CurrentHand].Finished() {
		g.CurrentHand++
	}
	if g.CurrentHand >= len(g.PlayerHands) {
		g.beginDealerTurn()
	}
}

// beginDealerTurn reveals the hole card, plays out the dealer's fixed
// drawing rule, and resolves the round. The dealer does not draw once every
// player hand is already resolved as a loss, though the hole card is still
// revealed.
func (g *Game) beginDealerTurn() {
	g.Phase = PhaseDealerTurn

	anyLive := false
	for _, h := range g.PlayerHands {
		if h.Live() {
			anyLive = true
			break
		}
	}
	if anyLive {
		for g.dealerShouldDraw() {
			if err := g.drawTo(g.DealerHand); err != nil {
				break
			}
		}
	}
	g.finishRound()
}

// dealerShouldDraw applies the fixed dealer rule: hit below 17, and on
// soft 17 when configured.
func (g *Game) dealerShouldDraw() bool {
	v := g.DealerHand.Value()
	if v < 17 {
		return true
	}
	return v == 17 && g.DealerHand.IsSoft() && g.Rules.DealerHitsSoft17
}

func (g *Game) resetRound() {
	g.PlayerHands = nil
	g.DealerHand = NewHand(0)
	g.CurrentHand = 0
	g.Phase = PhaseBetting
	g.CurrentBet = 0
	g.InsuranceBet = 0
}
