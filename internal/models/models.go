// Package models defines the websocket wire types shared by the session
// layer and its clients: inbound actions and outbound state snapshots.
package models

// ActionType identifies a client action.
type ActionType string

const (
	ActionBet           ActionType = "bet"
	ActionDeal          ActionType = "deal"
	ActionHit           ActionType = "hit"
	ActionStand         ActionType = "stand"
	ActionDouble        ActionType = "double"
	ActionSplit         ActionType = "split"
	ActionSurrender     ActionType = "surrender"
	ActionInsurance     ActionType = "insurance"
	ActionReset         ActionType = "reset"
	ActionToggleAI      ActionType = "toggle_ai"
	ActionSetAIStrategy ActionType = "set_ai_strategy"
)

// Action is one inbound client message.
type Action struct {
	Action   ActionType `json:"action"`
	Amount   int        `json:"amount,omitempty"`
	Strategy string     `json:"strategy,omitempty"`
}

// Card is one serialized card. A hidden card carries placeholder suit and
// rank so clients never learn the hole card early.
type Card struct {
	Suit   string `json:"suit"`
	Rank   string `json:"rank"`
	Value  int    `json:"value"`
	Hidden bool   `json:"hidden,omitempty"`
}

// Hand is one serialized hand with its derived flags. The can_* fields are
// recomputed from engine state on every snapshot.
type Hand struct {
	Cards         []Card `json:"cards"`
	Value         int    `json:"value"`
	Bet           int    `json:"bet"`
	IsBlackjack   bool   `json:"is_blackjack"`
	IsBust        bool   `json:"is_bust"`
	IsSoft        bool   `json:"is_soft"`
	CanSplit      bool   `json:"can_split"`
	CanDouble     bool   `json:"can_double"`
	IsSurrendered bool   `json:"is_surrendered"`
	IsInsured     bool   `json:"is_insured"`
}

// GameState is the full round snapshot broadcast after every action.
type GameState struct {
	PlayerHands      []Hand `json:"player_hands"`
	DealerHand       Hand   `json:"dealer_hand"`
	CurrentHandIndex int    `json:"current_hand_index"`
	GamePhase        string `json:"game_phase"`
	PlayerChips      int    `json:"player_chips"`
	CurrentBet       int    `json:"current_bet"`
	InsuranceBet     int    `json:"insurance_bet"`
	DeckRemaining    int    `json:"deck_remaining"`
	CanInsure        bool   `json:"can_insure"`
	CanSurrender     bool   `json:"can_surrender"`
}

// Message types sent to clients.
const (
	MessageGameState = "game_state"
	MessageError     = "error"
	MessageInfo      = "info"
	MessageAIStatus  = "ai_status"
)

// Message is one outbound websocket frame.
type Message struct {
	Type        string     `json:"type"`
	State       *GameState `json:"state,omitempty"`
	AIMode      *bool      `json:"ai_mode,omitempty"`
	AIStrategy  string     `json:"ai_strategy,omitempty"`
	Error       string     `json:"error,omitempty"`
	Message     string     `json:"message,omitempty"`
	Strategy    string     `json:"strategy,omitempty"`
	Description string     `json:"description,omitempty"`
}
