// Package storage audits finished games to Postgres. No game is ever read
// back from it: the server keeps no state across restarts, per the
// project's non-goals, and the ledger exists purely for after-the-fact
// inspection.
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CompletedGame is one row of the completed-game ledger.
type CompletedGame struct {
	ID       uuid.UUID
	Result   string // "checkmate", "stalemate", or "resignation"
	FinalFEN string
	EndedAt  time.Time
}

// Ledger records finished games. A nil Ledger is valid: callers check for
// it and skip recording rather than treating it as an error, so the
// server can run with no database configured at all.
type Ledger interface {
	RecordGame(ctx context.Context, g CompletedGame) error
}
