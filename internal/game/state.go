package game

import (
	"github.com/cardhouse/blackjackd/engine"
	"github.com/cardhouse/blackjackd/internal/models"
)

// buildState serializes the round for the wire. During betting and playing
// the dealer's hole card is masked and the dealer value covers only the
// visible cards, so clients never learn the hole card early. Assumes lock
// is held.
func (s *Session) buildState() *models.GameState {
	g := s.game
	playing := g.Phase == engine.PhasePlaying
	maskHole := g.Phase == engine.PhaseBetting || playing

	hands := make([]models.Hand, 0, len(g.PlayerHands))
	for _, h := range g.PlayerHands {
		hands = append(hands, models.Hand{
			Cards:         serializeCards(h.Cards),
			Value:         h.Value(),
			Bet:           h.Bet,
			IsBlackjack:   h.IsBlackjack(),
			IsBust:        h.IsBust(),
			IsSoft:        h.IsSoft(),
			CanSplit:      playing && g.CanSplit(h),
			CanDouble:     playing && g.CanDouble(h),
			IsSurrendered: h.Surrendered,
			IsInsured:     h.Insured,
		})
	}

	var canSurrender bool
	if playing && g.CurrentHand < len(g.PlayerHands) {
		canSurrender = g.CanSurrender(g.PlayerHands[g.CurrentHand])
	}

	return &models.GameState{
		PlayerHands:      hands,
		DealerHand:       s.serializeDealer(maskHole),
		CurrentHandIndex: g.CurrentHand,
		GamePhase:        string(g.Phase),
		PlayerChips:      g.Chips,
		CurrentBet:       g.CurrentBet,
		InsuranceBet:     g.InsuranceBet,
		DeckRemaining:    g.Shoe.Remaining(),
		CanInsure:        g.CanInsure(),
		CanSurrender:     canSurrender,
	}
}

// serializeDealer masks the hole card (the dealer's second card) when asked
// and reports the value of the visible cards only.
func (s *Session) serializeDealer(maskHole bool) models.Hand {
	d := s.game.DealerHand

	cards := make([]models.Card, 0, len(d.Cards))
	visible := engine.NewHand(0)
	for i, c := range d.Cards {
		if maskHole && i == 1 {
			cards = append(cards, models.Card{Suit: "?", Rank: "?", Hidden: true})
			continue
		}
		cards = append(cards, serializeCard(c))
		visible.Add(c)
	}

	return models.Hand{
		Cards:       cards,
		Value:       visible.Value(),
		IsBlackjack: !maskHole && d.IsBlackjack(),
		IsBust:      d.IsBust(),
		IsSoft:      visible.IsSoft(),
	}
}

func serializeCard(c engine.Card) models.Card {
	return models.Card{
		Suit:  string(c.Suit),
		Rank:  string(c.Rank),
		Value: c.Value(),
	}
}

func serializeCards(cards []engine.Card) []models.Card {
	out := make([]models.Card, 0, len(cards))
	for _, c := range cards {
		out = append(out, serializeCard(c))
	}
	return out
}
