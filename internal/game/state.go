// Package game holds the per-game record shared between at most two
// connected sessions (or one session and a virtual computer opponent).
package game

import (
	"sync"

	"github.com/google/uuid"
)

// Seat identifies whoever occupies a colour slot in a State: almost always
// a *session.Session, but game never needs to know that — it only ever
// compares seats for identity and hands them back to callers that do.
type Seat any

// initialFEN is the FEN for the standard chess starting position.
const initialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// State is a single in-progress (or not-yet-started) game. The zero value
// is not usable; construct with New.
//
// Lock ordering (see internal/engine): callers that also hold an
// engine.Driver lock must acquire it before locking a State, never after.
type State struct {
	mu sync.Mutex

	id      uuid.UUID
	white   Seat
	black   Seat
	started bool
	fen     string
}

// New creates a fresh game with the initial position, no seats filled.
func New() *State {
	return &State{id: uuid.New(), fen: initialFEN}
}

func (s *State) ID() uuid.UUID {
	return s.id
}

// Lock and Unlock expose the state's mutex directly so callers that must
// read or change several fields together (a session reading the FEN and
// both seats, or resolving a disconnect) can hold it across several
// operations rather than one accessor call at a time. The matchmaker sets
// seats while pairing without taking it.
func (s *State) Lock()   { s.mu.Lock() }
func (s *State) Unlock() { s.mu.Unlock() }

func (s *State) White() Seat { return s.white }
func (s *State) Black() Seat { return s.black }

func (s *State) SetWhite(seat Seat) { s.white = seat }
func (s *State) SetBlack(seat Seat) { s.black = seat }

func (s *State) Started() bool { return s.started }

func (s *State) MarkStarted() { s.started = true }
func (s *State) MarkEnded()   { s.started = false }

func (s *State) FEN() string { return s.fen }

func (s *State) SetFEN(fen string) { s.fen = fen }

// WhoseTurn returns 'w' or 'b', read off the side-to-move field of the
// current FEN (the second space-separated field).
func (s *State) WhoseTurn() byte {
	return sideToMove(s.fen)
}

// Winner returns the colour that did NOT have the move when fen was
// reached, win or resignation alike: every game-ending event's winner is
// read off the FEN's side-to-move field, independent of which client
// actually triggered the ending.
func Winner(fen string) string {
	if sideToMove(fen) == 'w' {
		return "black"
	}
	return "white"
}

// sideToMove extracts the side-to-move character from a FEN string. It
// assumes fen is well-formed, which holds for every FEN this server ever
// stores: either the literal initial position or one just echoed back by
// the engine.
func sideToMove(fen string) byte {
	inField := 0
	for i := 0; i < len(fen); i++ {
		if fen[i] == ' ' {
			inField++
			continue
		}
		if inField == 1 {
			return fen[i]
		}
	}
	return 'w'
}
