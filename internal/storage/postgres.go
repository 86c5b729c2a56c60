package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresLedger persists completed games with a single *sql.DB opened on
// the lib/pq driver, the way the teacher's db package opens its player
// database — one connection pool, one INSERT per call, errors wrapped with
// %w rather than swallowed.
type PostgresLedger struct {
	db *sql.DB
}

func NewPostgresLedger(db *sql.DB) *PostgresLedger {
	return &PostgresLedger{db: db}
}

func (l *PostgresLedger) RecordGame(ctx context.Context, g CompletedGame) error {
	const query = `INSERT INTO completed_games (id, result, final_fen, ended_at) VALUES ($1, $2, $3, $4)`
	if _, err := l.db.ExecContext(ctx, query, g.ID, g.Result, g.FinalFEN, g.EndedAt); err != nil {
		return fmt.Errorf("recording completed game %s: %w", g.ID, err)
	}
	return nil
}

// OpenPostgres opens and pings a connection pool against cfg.
func OpenPostgres(cfg Config) (*sql.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening ledger database: %w", err)
	}
	if err := db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("pinging ledger database: %w", err)
	}
	return db, nil
}
