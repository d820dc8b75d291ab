package engine

// Suit is one of the four standard card suits, represented by its symbol.
type Suit string

const (
	SuitHearts   Suit = "♥"
	SuitDiamonds Suit = "♦"
	SuitClubs    Suit = "♣"
	SuitSpades   Suit = "♠"
)

// Suits lists every suit in deck-construction order.
var Suits = [4]Suit{SuitHearts, SuitDiamonds, SuitClubs, SuitSpades}

// Rank is a card rank, represented by its face string.
type Rank string

const (
	RankAce   Rank = "A"
	RankTwo   Rank = "2"
	RankThree Rank = "3"
	RankFour  Rank = "4"
	RankFive  Rank = "5"
	RankSix   Rank = "6"
	RankSeven Rank = "7"
	RankEight Rank = "8"
	RankNine  Rank = "9"
	RankTen   Rank = "10"
	RankJack  Rank = "J"
	RankQueen Rank = "Q"
	RankKing  Rank = "K"
)

// Ranks lists every rank in deck-construction order.
var Ranks = [13]Rank{
	RankAce, RankTwo, RankThree, RankFour, RankFive, RankSix, RankSeven,
	RankEight, RankNine, RankTen, RankJack, RankQueen, RankKing,
}

var rankValues = map[Rank]int{
	RankAce: 11,
	RankTwo: 2, RankThree: 3, RankFour: 4, RankFive: 5, RankSix: 6,
	RankSeven: 7, RankEight: 8, RankNine: 9, RankTen: 10,
	RankJack: 10, RankQueen: 10, RankKing: 10,
}

// Card is a playing card. Cards are immutable once drawn from the shoe.
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard constructs a Card from suit and rank.
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// Value returns the point value of the card. Aces count as 11 here; hand
// evaluation downgrades them to 1 as needed.
func (c Card) Value() int {
	return rankValues[c.Rank]
}

func (c Card) String() string {
	return string(c.Rank) + string(c.Suit)
}
