package engine

// Rules holds configurable table rule settings.
type Rules struct {
	NumDecks         int  // decks in the shoe
	StartingChips    int  // chips a fresh session begins with
	MaxSplits        int  // maximum number of splits per round
	ReshuffleBelow   int  // reshuffle at deal time when fewer cards remain
	DealerHitsSoft17 bool // dealer draws on soft 17 when true
}

// DefaultRules returns the standard table rules.
func DefaultRules() Rules {
	return Rules{
		NumDecks:         6,
		StartingChips:    1000,
		MaxSplits:        3,
		ReshuffleBelow:   20,
		DealerHitsSoft17: false,
	}
}
