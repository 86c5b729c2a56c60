package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStateStartsAtInitialPosition(t *testing.T) {
	s := New()

	assert.Equal(t, initialFEN, s.FEN())
	assert.False(t, s.Started())
	assert.Nil(t, s.White())
	assert.Nil(t, s.Black())
}

func TestWhoseTurnReadsFENSideToMove(t *testing.T) {
	s := New()
	assert.Equal(t, byte('w'), s.WhoseTurn())

	s.SetFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	assert.Equal(t, byte('b'), s.WhoseTurn())
}

func TestSeatsAndLifecycle(t *testing.T) {
	s := New()
	s.SetWhite("alice")
	s.SetBlack("bob")
	assert.Equal(t, Seat("alice"), s.White())
	assert.Equal(t, Seat("bob"), s.Black())

	s.MarkStarted()
	assert.True(t, s.Started())
	s.MarkEnded()
	assert.False(t, s.Started())
}
