// Package game hosts blackjack sessions: each Session wraps one engine.Game,
// serializes access behind a mutex, fans state out to websocket subscribers,
// and drives the autopilot when enabled.
package game

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cardhouse/blackjackd/engine"
	"github.com/cardhouse/blackjackd/internal/cache"
	"github.com/cardhouse/blackjackd/internal/database"
	"github.com/cardhouse/blackjackd/internal/models"
)

// AIConfig is the session's autopilot state.
type AIConfig struct {
	Enabled  bool
	Strategy engine.Strategy
}

// Session is one player's blackjack table. All mutation happens under mu;
// unexported methods assume the lock is held by the caller.
type Session struct {
	ID string

	mu          sync.Mutex
	game        *engine.Game
	ai          AIConfig
	subscribers map[uuid.UUID]chan models.Message
	actionIndex int
	chipsAtDeal int
	// insuranceBet mirrors the engine's side bet, which is zeroed at
	// resolution before persistRound can read it.
	insuranceBet int
	betUnit      int
	lastActive   time.Time
	log          *logrus.Entry
}

// NewSession creates a session in the betting phase. A nil rng seeds the
// shoe from the wall clock.
func NewSession(id string, rules engine.Rules, betUnit int, rng *rand.Rand) *Session {
	return &Session{
		ID:          id,
		game:        engine.NewGame(rules, rng),
		ai:          AIConfig{Strategy: engine.StrategyBasic},
		subscribers: make(map[uuid.UUID]chan models.Message),
		betUnit:     betUnit,
		lastActive:  time.Now(),
		log:         logrus.WithField("session_id", id),
	}
}

// Subscribe registers a new outbound message channel and returns its handle.
// The channel is buffered; a subscriber that falls behind loses frames
// rather than blocking the session.
func (s *Session) Subscribe() (uuid.UUID, <-chan models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	ch := make(chan models.Message, 32)
	s.subscribers[id] = ch
	return id, ch
}

// Unsubscribe removes and closes a subscriber channel.
func (s *Session) Unsubscribe(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ch, ok := s.subscribers[id]; ok {
		delete(s.subscribers, id)
		close(ch)
	}
}

// SubscriberCount returns the number of attached clients.
func (s *Session) SubscriberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscribers)
}

// LastActive returns the time of the most recent client action.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// StateMessage returns the current snapshot, for the initial push when a
// client attaches.
func (s *Session) StateMessage() models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateMessage()
}

// HandleAction applies one client action, broadcasting the resulting state
// or an error message to every subscriber.
func (s *Session) HandleAction(act models.Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	phaseBefore := s.game.Phase

	switch act.Action {
	case models.ActionToggleAI:
		s.ai.Enabled = !s.ai.Enabled
		s.broadcast(s.aiStatusMessage())
		s.logAction(act, 0)
		if s.ai.Enabled && s.game.Phase == engine.PhaseBetting {
			s.runAutopilot()
		}

	case models.ActionSetAIStrategy:
		if strategy, ok := engine.ParseStrategy(act.Strategy); ok {
			s.ai.Strategy = strategy
			s.broadcast(s.aiStatusMessage())
			s.logAction(act, 0)
		}

	default:
		s.handleGameAction(act)
	}

	if phaseBefore != engine.PhaseFinished && s.game.Phase == engine.PhaseFinished {
		s.persistRound()
	}
}

// handleGameAction dispatches the table actions. Assumes lock is held.
func (s *Session) handleGameAction(act models.Action) {
	// Manual decisions are blocked mid-hand while the autopilot owns the
	// table; betting-phase actions stay available.
	if s.ai.Enabled && s.game.Phase == engine.PhasePlaying {
		switch act.Action {
		case models.ActionReset:
		default:
			s.broadcastError("AI is active - disable AI to play manually")
			return
		}
	}

	switch act.Action {
	case models.ActionBet:
		if err := s.game.PlaceBet(act.Amount); err != nil {
			s.broadcastError("Invalid bet amount!")
			return
		}
		s.logAction(act, act.Amount)
		s.broadcastState()

	case models.ActionDeal:
		// Capture the pre-round baseline first: a natural can resolve the
		// round inside Deal, zeroing the wager.
		chipsBefore := s.game.Chips + s.game.CurrentBet
		if err := s.game.Deal(); err != nil {
			s.broadcastError("Cannot deal - place bet first!")
			return
		}
		s.logAction(act, 0)
		s.chipsAtDeal = chipsBefore
		s.insuranceBet = 0
		s.broadcastState()
		if s.ai.Enabled {
			s.autopilotPlay()
		}

	case models.ActionHit:
		if err := s.game.Hit(); err != nil {
			s.broadcastError("Cannot hit now!")
			return
		}
		s.logAction(act, 0)
		s.broadcastState()

	case models.ActionStand:
		if err := s.game.Stand(); err != nil {
			s.broadcastError("Cannot stand now!")
			return
		}
		s.logAction(act, 0)
		s.broadcastState()

	case models.ActionDouble:
		if err := s.game.Double(); err != nil {
			s.broadcastError("Cannot double down - Insufficient chips or invalid hand!")
			return
		}
		s.logAction(act, 0)
		s.broadcastState()

	case models.ActionSplit:
		if err := s.game.Split(); err != nil {
			s.broadcastError("Cannot split - Insufficient chips or invalid hand!")
			return
		}
		s.logAction(act, 0)
		s.broadcastState()

	case models.ActionSurrender:
		if err := s.game.Surrender(); err != nil {
			s.broadcastError("Cannot surrender now!")
			return
		}
		s.logAction(act, 0)
		s.broadcastState()

	case models.ActionInsurance:
		if err := s.game.Insurance(); err != nil {
			s.broadcastError("Cannot buy insurance - Insufficient chips or dealer doesn't show Ace!")
			return
		}
		s.insuranceBet = s.game.InsuranceBet
		s.logAction(act, 0)
		s.broadcastState()

	case models.ActionReset:
		if err := s.game.Reset(); err != nil {
			s.broadcastError("Cannot reset now!")
			return
		}
		s.logAction(act, 0)
		s.broadcastState()
		if s.ai.Enabled {
			s.runAutopilot()
		}

	default:
		s.broadcastError(fmt.Sprintf("Unknown action: %s", act.Action))
	}
}

// runAutopilot plays a full round from the betting phase: wager, deal, then
// every hand decision. It stops at the finished phase; the next client
// reset or bet starts the following round. Assumes lock is held.
func (s *Session) runAutopilot() {
	g := s.game
	if g.Phase != engine.PhaseBetting {
		return
	}
	if g.CurrentBet == 0 {
		amount := engine.BetSize(s.ai.Strategy, s.betUnit, g.Chips)
		if amount <= 0 {
			s.broadcastError("Out of chips!")
			return
		}
		if err := g.PlaceBet(amount); err != nil {
			return
		}
		s.logAction(models.Action{Action: models.ActionBet}, amount)
		s.broadcastInfo(fmt.Sprintf("AI bet $%d", amount))
		s.broadcastState()
	}
	chipsBefore := g.Chips + g.CurrentBet
	if err := g.Deal(); err != nil {
		return
	}
	s.logAction(models.Action{Action: models.ActionDeal}, 0)
	s.chipsAtDeal = chipsBefore
	s.insuranceBet = 0
	s.broadcastState()
	s.autopilotPlay()
}

// autopilotPlay drives the playing phase to completion. Every branch either
// draws a card or finishes a hand, so the loop terminates. Assumes lock is
// held.
func (s *Session) autopilotPlay() {
	g := s.game
	for g.Phase == engine.PhasePlaying {
		if g.CurrentHand >= len(g.PlayerHands) {
			return
		}
		hand := g.PlayerHands[g.CurrentHand]
		up, ok := g.DealerUpcard()
		if !ok {
			return
		}

		move := engine.Decide(s.ai.Strategy, hand, up, g.CanDouble(hand), g.CanSplit(hand))
		switch move {
		case engine.MoveHit:
			if err := g.Hit(); err != nil {
				g.Stand()
				s.broadcastInfo("AI stands")
			} else {
				s.broadcastInfo("AI hits")
			}
		case engine.MoveStand:
			g.Stand()
			s.broadcastInfo("AI stands")
		case engine.MoveDouble:
			if err := g.Double(); err != nil {
				if err := g.Hit(); err != nil {
					g.Stand()
				}
				s.broadcastInfo("AI hits (couldn't double down)")
			} else {
				s.broadcastInfo("AI doubles down")
			}
		case engine.MoveSplit:
			if err := g.Split(); err != nil {
				if err := g.Hit(); err != nil {
					g.Stand()
				}
				s.broadcastInfo("AI hits (couldn't split)")
			} else {
				s.broadcastInfo("AI splits")
			}
		default:
			g.Stand()
			s.broadcastInfo("AI stands")
		}
		s.logAction(models.Action{Action: models.ActionType(move)}, 0)
		s.broadcastState()
	}
}

// broadcast sends a message to every subscriber, dropping frames for any
// that has fallen behind. Assumes lock is held.
func (s *Session) broadcast(msg models.Message) {
	for id, ch := range s.subscribers {
		select {
		case ch <- msg:
		default:
			s.log.WithField("subscriber_id", id).Warn("dropping frame for slow subscriber")
		}
	}
}

func (s *Session) broadcastState() {
	s.broadcast(s.stateMessage())
}

func (s *Session) broadcastError(text string) {
	s.broadcast(models.Message{Type: models.MessageError, Error: text})
}

func (s *Session) broadcastInfo(text string) {
	s.broadcast(models.Message{Type: models.MessageInfo, Message: text})
}

func (s *Session) stateMessage() models.Message {
	aiMode := s.ai.Enabled
	return models.Message{
		Type:       models.MessageGameState,
		State:      s.buildState(),
		AIMode:     &aiMode,
		AIStrategy: string(s.ai.Strategy),
	}
}

func (s *Session) aiStatusMessage() models.Message {
	aiMode := s.ai.Enabled
	return models.Message{
		Type:        models.MessageAIStatus,
		AIMode:      &aiMode,
		Strategy:    string(s.ai.Strategy),
		Description: engine.StrategyDescription(s.ai.Strategy),
	}
}

// logAction publishes the action to the Redis history stream, if configured.
// Assumes lock is held.
func (s *Session) logAction(act models.Action, amount int) {
	s.actionIndex++
	record := cache.ActionRecord{
		SessionID:   s.ID,
		ActionIndex: s.actionIndex,
		Action:      string(act.Action),
		Amount:      amount,
		Phase:       string(s.game.Phase),
		Chips:       s.game.Chips,
		Timestamp:   time.Now().UnixMilli(),
	}
	go func(rec cache.ActionRecord) {
		if cache.Rdb == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := cache.PublishActionRecord(ctx, rec); err != nil {
			s.log.WithError(err).Warnf("failed publishing action %d", rec.ActionIndex)
		}
	}(record)
}

// persistRound stores the finished round and the session aggregates.
// Assumes lock is held.
func (s *Session) persistRound() {
	g := s.game

	outcome := "push"
	switch net := g.Chips - s.chipsAtDeal; {
	case net > 0:
		outcome = "win"
	case net < 0:
		outcome = "loss"
	}

	playerHands := make([]string, 0, len(g.PlayerHands))
	for _, h := range g.PlayerHands {
		playerHands = append(playerHands, handString(h))
	}

	result := database.RoundResult{
		SessionID:    s.ID,
		Bet:          roundWager(g),
		InsuranceBet: s.insuranceBet,
		Outcome:      outcome,
		ChipsAfter:   g.Chips,
		PlayerHands:  playerHands,
		DealerHand:   []string{handString(g.DealerHand)},
	}
	stats := database.SessionStats{
		SessionID:   s.ID,
		HandsPlayed: g.Stats.HandsPlayed,
		HandsWon:    g.Stats.HandsWon,
		HandsLost:   g.Stats.HandsLost,
		Chips:       g.Chips,
	}

	go func() {
		if database.Pool == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), database.PersistTimeout)
		defer cancel()
		if err := database.InsertRoundResult(ctx, result); err != nil {
			s.log.WithError(err).Warn("failed persisting round result")
		}
		if err := database.UpsertSessionStats(ctx, stats); err != nil {
			s.log.WithError(err).Warn("failed persisting session stats")
		}
	}()
}

// roundWager sums the final per-hand bets, covering doubles and splits.
func roundWager(g *engine.Game) int {
	total := 0
	for _, h := range g.PlayerHands {
		total += h.Bet
	}
	return total
}

func handString(h *engine.Hand) string {
	out := ""
	for i, c := range h.Cards {
		if i > 0 {
			out += " "
		}
		out += c.String()
	}
	return out
}
