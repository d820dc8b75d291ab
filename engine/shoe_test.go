package engine

import (
	"errors"
	"math/rand"
	"testing"
)

func TestNewShoeSize(t *testing.T) {
	s := NewShoe(6, rand.New(rand.NewSource(1)))
	if s.Remaining() != 312 {
		t.Errorf("6-deck shoe: expected 312 cards, got %d", s.Remaining())
	}
}

func TestNewShoeComposition(t *testing.T) {
	s := NewShoe(2, rand.New(rand.NewSource(1)))
	counts := make(map[Card]int)
	for _, c := range s.Cards {
		counts[c]++
	}
	if len(counts) != 52 {
		t.Fatalf("expected 52 distinct cards, got %d", len(counts))
	}
	for c, n := range counts {
		if n != 2 {
			t.Errorf("card %s: expected 2 copies, got %d", c, n)
		}
	}
}

func TestShoeDraw(t *testing.T) {
	s := NewShoe(1, rand.New(rand.NewSource(7)))
	before := s.Remaining()
	if _, err := s.Draw(); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if s.Remaining() != before-1 {
		t.Errorf("expected %d remaining, got %d", before-1, s.Remaining())
	}
}

func TestShoeExhausted(t *testing.T) {
	s := NewShoe(1, rand.New(rand.NewSource(7)))
	for i := 0; i < DeckSize; i++ {
		if _, err := s.Draw(); err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
	}
	if _, err := s.Draw(); !errors.Is(err, ErrShoeExhausted) {
		t.Errorf("expected ErrShoeExhausted, got %v", err)
	}
}

func TestShoePenetration(t *testing.T) {
	s := NewShoe(1, rand.New(rand.NewSource(7)))
	if p := s.Penetration(); p != 0 {
		t.Errorf("fresh shoe: expected penetration 0, got %f", p)
	}
	for i := 0; i < 13; i++ {
		s.Draw()
	}
	if p := s.Penetration(); p != 0.25 {
		t.Errorf("after 13 of 52: expected penetration 0.25, got %f", p)
	}
}

func TestShoeReshuffleRestoresFullShoe(t *testing.T) {
	s := NewShoe(6, rand.New(rand.NewSource(7)))
	for i := 0; i < 100; i++ {
		s.Draw()
	}
	s.Reshuffle()
	if s.Remaining() != 312 {
		t.Errorf("reshuffled shoe: expected 312, got %d", s.Remaining())
	}
	if p := s.Penetration(); p != 0 {
		t.Errorf("reshuffled shoe: expected penetration 0, got %f", p)
	}
}

func TestShoeShuffleDeterministicBySeed(t *testing.T) {
	a := NewShoe(2, rand.New(rand.NewSource(99)))
	b := NewShoe(2, rand.New(rand.NewSource(99)))
	for i := range a.Cards {
		if a.Cards[i] != b.Cards[i] {
			t.Fatalf("same seed should produce identical order, diverged at %d", i)
		}
	}
}
