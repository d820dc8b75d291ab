package engine

import (
	"math/rand"
	"time"
)

// DeckSize is the number of cards in a single standard deck.
const DeckSize = 52

// Shoe is the combined, shuffled set of decks a game draws from.
// Cards are drawn from the end of the slice. A Shoe is owned exclusively
// by one Game and is mutated only by Draw and Reshuffle.
type Shoe struct {
	Cards    []Card
	NumDecks int

	rng *rand.Rand
}

// NewShoe builds a shoe of numDecks standard 52-card decks and shuffles it.
// A nil rng seeds from the wall clock.
func NewShoe(numDecks int, rng *rand.Rand) *Shoe {
	if numDecks <= 0 {
		numDecks = 1
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &Shoe{NumDecks: numDecks, rng: rng}
	s.Reshuffle()
	return s
}

// Reshuffle rebuilds the full shoe from fresh decks and shuffles it.
func (s *Shoe) Reshuffle() {
	s.Cards = make([]Card, 0, DeckSize*s.NumDecks)
	for d := 0; d < s.NumDecks; d++ {
		for _, suit := range Suits {
			for _, rank := range Ranks {
				s.Cards = append(s.Cards, NewCard(suit, rank))
			}
		}
	}
	s.shuffle()
}

// shuffle applies a uniform Fisher-Yates shuffle.
func (s *Shoe) shuffle() {
	s.rng.Shuffle(len(s.Cards), func(i, j int) {
		s.Cards[i], s.Cards[j] = s.Cards[j], s.Cards[i]
	})
}

// Draw removes and returns the next card. The Game reshuffles at deal time,
// so ErrShoeExhausted never surfaces in normal operation.
func (s *Shoe) Draw() (Card, error) {
	if len(s.Cards) == 0 {
		return Card{}, ErrShoeExhausted
	}
	c := s.Cards[len(s.Cards)-1]
	s.Cards = s.Cards[:len(s.Cards)-1]
	return c, nil
}

// Remaining returns the number of cards left in the shoe.
func (s *Shoe) Remaining() int {
	return len(s.Cards)
}

// Penetration returns the fraction of the shoe consumed since the last
// reshuffle, in [0, 1].
func (s *Shoe) Penetration() float64 {
	total := DeckSize * s.NumDecks
	if total == 0 {
		return 0
	}
	return float64(total-len(s.Cards)) / float64(total)
}
