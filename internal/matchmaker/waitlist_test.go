package matchmaker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uqchessserver/internal/game"
)

type fakeWaiter struct {
	white   bool
	either  bool
	game    *game.State
	started int
}

func newWaiter(white, either bool) *fakeWaiter {
	w := &fakeWaiter{white: white, either: either}
	g := game.New()
	if white || either {
		g.SetWhite(w)
	} else {
		g.SetBlack(w)
	}
	w.game = g
	return w
}

func (w *fakeWaiter) IsWhite() bool          { return w.white }
func (w *fakeWaiter) SetWhite(white bool)    { w.white = white }
func (w *fakeWaiter) IsEither() bool         { return w.either }
func (w *fakeWaiter) Game() *game.State      { return w.game }
func (w *fakeWaiter) SetGame(g *game.State)  { w.game = g }
func (w *fakeWaiter) Seat() game.Seat        { return w }
func (w *fakeWaiter) SendStarted()           { w.started++ }

func TestPairOppositeColoursMatchImmediately(t *testing.T) {
	wl := New()
	white := newWaiter(true, false)
	black := newWaiter(false, false)

	assert.False(t, wl.Pair(white))
	assert.True(t, wl.Pair(black))

	require.Same(t, white.game, black.game)
	assert.Equal(t, game.Seat(white), white.game.White())
	assert.Equal(t, game.Seat(black), white.game.Black())
	assert.True(t, white.game.Started())
	assert.Equal(t, 1, white.started)
	assert.Equal(t, 1, black.started)
	assert.Equal(t, 0, wl.Len())
}

func TestPairSameColourNeverMatches(t *testing.T) {
	wl := New()
	firstWhite := newWaiter(true, false)
	secondWhite := newWaiter(true, false)

	assert.False(t, wl.Pair(firstWhite))
	assert.False(t, wl.Pair(secondWhite))
	assert.Equal(t, 2, wl.Len())
}

func TestPairBothEitherResolvesToWhiteBlack(t *testing.T) {
	wl := New()
	a := newWaiter(false, true)
	b := newWaiter(false, true)

	wl.Pair(a)
	assert.True(t, wl.Pair(b))

	assert.True(t, a.IsWhite())
	assert.False(t, b.IsWhite())
	assert.Equal(t, game.Seat(a), a.game.White())
	assert.Equal(t, game.Seat(b), a.game.Black())
}

func TestPairEitherWaiterTakesOppositeOfSpecificLooker(t *testing.T) {
	wl := New()
	either := newWaiter(false, true)
	white := newWaiter(true, false)

	wl.Pair(either)
	assert.True(t, wl.Pair(white))

	// either waiter yields white to the specific-coloured newcomer.
	assert.False(t, either.IsWhite())
	assert.Equal(t, game.Seat(white), either.game.White())
	assert.Equal(t, game.Seat(either), either.game.Black())
}

func TestRemoveDropsOnlyGivenWaiter(t *testing.T) {
	wl := New()
	a := newWaiter(true, false)
	b := newWaiter(true, false)
	wl.Pair(a)
	wl.Pair(b)

	wl.Remove(a)
	assert.Equal(t, 1, wl.Len())
}
