// Package matchmaker pairs human clients seeking a colour-compatible
// opponent. The pairing rules are ported line-for-line from the original
// server's clients_are_compatible()/find_opponent(), which are not
// mutually exclusive by accident: the colour defaults set when a waiter's
// provisional game.State was created make the redundant branches
// idempotent rather than contradictory.
package matchmaker

import (
	"sync"

	"uqchessserver/internal/game"
)

// Waiter is the surface the matchmaker needs from a waiting or arriving
// client. Implemented by *session.Session.
type Waiter interface {
	IsWhite() bool
	SetWhite(white bool)
	IsEither() bool
	Game() *game.State
	SetGame(*game.State)
	Seat() game.Seat
	SendStarted()
}

// WaitList is the process-lifetime singleton queue of human clients
// waiting for a colour-compatible opponent.
type WaitList struct {
	mu      sync.Mutex
	waiting []Waiter
}

func New() *WaitList {
	return &WaitList{}
}

// Pair tries to find a colour-compatible opponent for looking among the
// clients already waiting. If one is found, both clients' games are
// merged into the waiting client's GameState, the waiting client is
// removed from the list, both receive "started", and Pair returns true.
// Otherwise looking is appended to the wait list and Pair returns false.
func (wl *WaitList) Pair(looking Waiter) bool {
	wl.mu.Lock()
	defer wl.mu.Unlock()

	for i, waiting := range wl.waiting {
		if !colourCompatible(waiting, looking) {
			continue
		}
		if !resolveColours(waiting, looking) {
			continue
		}

		looking.SetGame(waiting.Game())
		waiting.Game().MarkStarted()
		wl.waiting = append(wl.waiting[:i], wl.waiting[i+1:]...)

		waiting.SendStarted()
		looking.SendStarted()
		return true
	}

	wl.waiting = append(wl.waiting, looking)
	return false
}

// Remove drops w from the wait list, e.g. because it disconnected before
// finding an opponent. It is a no-op if w is not present.
func (wl *WaitList) Remove(w Waiter) {
	wl.mu.Lock()
	defer wl.mu.Unlock()
	for i, candidate := range wl.waiting {
		if candidate == w {
			wl.waiting = append(wl.waiting[:i], wl.waiting[i+1:]...)
			return
		}
	}
}

func (wl *WaitList) Len() int {
	wl.mu.Lock()
	defer wl.mu.Unlock()
	return len(wl.waiting)
}

// colourCompatible mirrors find_opponent()'s outer guard: the two clients
// can be paired if their wishes are strictly opposite colours, or either
// one is flexible.
func colourCompatible(waiting, looking Waiter) bool {
	return waiting.IsWhite() == !looking.IsWhite() || waiting.IsEither() || looking.IsEither()
}

// resolveColours assigns concrete colours to waiting and looking and
// populates waiting's GameState slots accordingly, following every case
// of the original clients_are_compatible(). The branches are evaluated in
// sequence, not short-circuited, to match the original's fall-through
// behaviour exactly.
func resolveColours(waiting, looking Waiter) bool {
	g := waiting.Game()
	compatible := false

	if waiting.IsEither() && looking.IsEither() {
		waiting.SetWhite(true)
		looking.SetWhite(false)
		g.SetBlack(looking.Seat())
		compatible = true
	}
	if waiting.IsEither() && !looking.IsWhite() {
		g.SetBlack(looking.Seat())
		waiting.SetWhite(true)
		compatible = true
	}
	if waiting.IsEither() && looking.IsWhite() {
		g.SetWhite(looking.Seat())
		g.SetBlack(waiting.Seat())
		compatible = true
	}
	if looking.IsEither() && !waiting.IsWhite() {
		looking.SetWhite(true)
		g.SetBlack(waiting.Seat())
		g.SetWhite(looking.Seat())
		compatible = true
	}
	if looking.IsEither() && waiting.IsWhite() {
		looking.SetWhite(false)
		g.SetWhite(waiting.Seat())
		g.SetBlack(looking.Seat())
		compatible = true
	}
	if looking.IsWhite() == !waiting.IsWhite() {
		if waiting.IsWhite() {
			g.SetWhite(waiting.Seat())
			g.SetBlack(looking.Seat())
		} else {
			g.SetBlack(waiting.Seat())
			g.SetWhite(looking.Seat())
		}
		compatible = true
	}
	return compatible
}
