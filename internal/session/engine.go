package session

import "uqchessserver/internal/engine"

// Engine is the slice of *engine.Driver a Session actually drives. Defined
// here, at the point of use, rather than in the engine package, so tests
// can substitute a fake without touching a real subprocess or pipe.
type Engine interface {
	BestMove(fen string) (string, error)
	AllMoves(fen string) ([]string, error)
	BoardAndFen(fen string) (engine.Board, error)
	ApplyMove(fen, move string) (*engine.Board, error)
}
