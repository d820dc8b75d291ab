// Package database manages the Postgres pool and round-result persistence.
// The server runs without a database when none is configured; callers must
// nil-check Pool before persisting.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// Pool is the shared connection pool. Nil when Postgres is not configured.
var Pool *pgxpool.Pool

// Connect opens the pool and applies the schema.
func Connect(ctx context.Context, dsn string) error {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("ping postgres: %w", err)
	}
	if err := migrate(ctx, pool); err != nil {
		pool.Close()
		return fmt.Errorf("migrate: %w", err)
	}
	Pool = pool
	logrus.Info("connected to postgres")
	return nil
}

// Close releases the pool. Safe to call when never connected.
func Close() {
	if Pool != nil {
		Pool.Close()
		Pool = nil
	}
}

func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS rounds (
			id BIGSERIAL PRIMARY KEY,
			session_id TEXT NOT NULL,
			bet INT NOT NULL,
			insurance_bet INT NOT NULL,
			outcome TEXT NOT NULL,
			chips_after INT NOT NULL,
			player_hands JSONB NOT NULL,
			dealer_hand JSONB NOT NULL,
			finished_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS rounds_session_idx ON rounds (session_id, finished_at)`,
		`CREATE TABLE IF NOT EXISTS session_stats (
			session_id TEXT PRIMARY KEY,
			hands_played INT NOT NULL,
			hands_won INT NOT NULL,
			hands_lost INT NOT NULL,
			chips INT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}
	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// RoundResult is one finished round as persisted.
type RoundResult struct {
	SessionID    string
	Bet          int
	InsuranceBet int
	Outcome      string
	ChipsAfter   int
	PlayerHands  []string
	DealerHand   []string
}

// InsertRoundResult stores one finished round.
func InsertRoundResult(ctx context.Context, r RoundResult) error {
	if Pool == nil {
		return fmt.Errorf("database pool not initialized")
	}
	_, err := Pool.Exec(ctx,
		`INSERT INTO rounds (session_id, bet, insurance_bet, outcome, chips_after, player_hands, dealer_hand)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		r.SessionID, r.Bet, r.InsuranceBet, r.Outcome, r.ChipsAfter, r.PlayerHands, r.DealerHand)
	if err != nil {
		return fmt.Errorf("insert round result: %w", err)
	}
	return nil
}

// SessionStats is the aggregate row for one session.
type SessionStats struct {
	SessionID   string
	HandsPlayed int
	HandsWon    int
	HandsLost   int
	Chips       int
}

// UpsertSessionStats replaces the session's aggregate row.
func UpsertSessionStats(ctx context.Context, s SessionStats) error {
	if Pool == nil {
		return fmt.Errorf("database pool not initialized")
	}
	_, err := Pool.Exec(ctx,
		`INSERT INTO session_stats (session_id, hands_played, hands_won, hands_lost, chips, updated_at)
		 VALUES ($1, $2, $3, $4, $5, now())
		 ON CONFLICT (session_id) DO UPDATE SET
			hands_played = EXCLUDED.hands_played,
			hands_won = EXCLUDED.hands_won,
			hands_lost = EXCLUDED.hands_lost,
			chips = EXCLUDED.chips,
			updated_at = now()`,
		s.SessionID, s.HandsPlayed, s.HandsWon, s.HandsLost, s.Chips)
	if err != nil {
		return fmt.Errorf("upsert session stats: %w", err)
	}
	return nil
}

// PersistTimeout bounds async persistence calls fired from the session loop.
const PersistTimeout = 5 * time.Second
