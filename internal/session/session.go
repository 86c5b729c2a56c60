// Package session implements the per-connection client state machine:
// PREGAME, WAITING, and PLAYING, and the five commands a client may
// issue. It is the one package that depends on game,
// registry, engine, and matchmaker together, and the one that satisfies
// their respective interfaces (Waiter, Notifiable) without any of them
// importing it back.
package session

import (
	"bufio"
	"context"
	"io"
	"log"
	"net"
	"strings"
	"sync"
	"time"

	"uqchessserver/internal/engine"
	"uqchessserver/internal/game"
	"uqchessserver/internal/matchmaker"
	"uqchessserver/internal/registry"
	"uqchessserver/internal/storage"
)

type state int

const (
	pregame state = iota
	waiting
	playing
)

// Session is one connected client, from accept to disconnect. Everything
// under mu is the client's own bookkeeping (what it asked for, what state
// it's in); the GameState it points at has its own, separate lock.
type Session struct {
	conn   net.Conn
	reader *bufio.Reader

	engine   Engine
	waitList *matchmaker.WaitList
	registry *registry.Registry
	ledger   storage.Ledger

	mu        sync.Mutex
	state     state
	game      *game.State
	hasPlayed bool
	white     bool
	either    bool
	human     bool
}

// New wires up a Session for conn and registers it for engine-death
// notification. Call Run to start serving it.
func New(conn net.Conn, eng Engine, waitList *matchmaker.WaitList, reg *registry.Registry, ledger storage.Ledger) *Session {
	s := &Session{
		conn:     conn,
		reader:   bufio.NewReader(conn),
		engine:   eng,
		waitList: waitList,
		registry: reg,
		ledger:   ledger,
		state:    pregame,
	}
	reg.Add(s)
	return s
}

// Run reads newline-terminated commands until the client disconnects, then
// cleans up. It does not return until the connection closes.
func (s *Session) Run() {
	defer s.cleanup()
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return
		}
		s.handleLine(strings.TrimRight(line, "\n"))
	}
}

func (s *Session) handleLine(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		s.send("error command")
		return
	}

	s.mu.Lock()
	st := s.state
	s.mu.Unlock()

	switch fields[0] {
	case "start":
		s.handleStart(fields[1:])
	case "board":
		if st != playing {
			s.send("error game")
			return
		}
		s.handleBoard()
	case "move":
		if st != playing {
			s.send("error game")
			return
		}
		if len(fields) < 2 {
			s.send("error command")
			return
		}
		s.handleMove(fields[1])
	case "hint":
		if st != playing {
			s.send("error game")
			return
		}
		if len(fields) < 2 {
			s.send("error command")
			return
		}
		s.handleHint(fields[1])
	case "resign":
		if st != playing {
			s.send("error game")
			return
		}
		s.handleResign()
	default:
		s.send("error command")
	}
}

func (s *Session) handleStart(args []string) {
	if len(args) != 2 {
		s.send("error command")
		return
	}

	human := args[0] == "human"
	if !human && args[0] != "computer" {
		s.send("error command")
		return
	}

	white, either, ok := parseColour(args[1], human)
	if !ok {
		s.send("error command")
		return
	}

	// Resign-equivalent cleanup of a stale GameState before this client is
	// allowed to start a new one.
	s.leaveGame()

	s.mu.Lock()
	s.human = human
	s.white = white
	s.either = either
	s.mu.Unlock()

	if human {
		s.startHuman()
	} else {
		s.startComputer()
	}
}

func parseColour(arg string, human bool) (white, either, ok bool) {
	switch arg {
	case "white":
		return true, false, true
	case "black":
		return false, false, true
	case "either":
		if human {
			return false, true, true
		}
		// A computer-opponent client that doesn't care becomes white.
		return true, false, true
	default:
		return false, false, false
	}
}

func (s *Session) startHuman() {
	g := game.New()
	s.mu.Lock()
	white := s.white || s.either
	s.mu.Unlock()

	if white {
		g.SetWhite(s)
	} else {
		g.SetBlack(s)
	}

	s.mu.Lock()
	s.game = g
	s.state = waiting
	s.mu.Unlock()

	s.waitList.Pair(s)
}

func (s *Session) startComputer() {
	g := game.New()
	s.mu.Lock()
	white := s.white
	s.mu.Unlock()

	if white {
		g.SetWhite(s)
	} else {
		g.SetBlack(s)
	}
	g.MarkStarted()

	s.mu.Lock()
	s.game = g
	s.mu.Unlock()

	s.SendStarted()

	if !white {
		s.playComputerMove(g.FEN(), g)
	}
}

func (s *Session) handleBoard() {
	s.mu.Lock()
	g := s.game
	s.mu.Unlock()

	g.Lock()
	fen := g.FEN()
	g.Unlock()

	board, err := s.engine.BoardAndFen(fen)
	if err != nil {
		return
	}
	s.send("startboard")
	s.sendRaw(board.Board)
	s.send("endboard")
}

func (s *Session) handleMove(arg string) {
	if !validMoveSyntax(arg) {
		s.send("error command")
		return
	}

	s.mu.Lock()
	g := s.game
	white := s.white
	human := s.human
	s.mu.Unlock()

	g.Lock()
	fen := g.FEN()
	myTurn := g.WhoseTurn() == turnByte(white)
	g.Unlock()

	if !myTurn {
		s.send("error turn")
		return
	}

	board, err := s.engine.ApplyMove(fen, arg)
	if err != nil {
		return
	}
	if board == nil {
		s.send("error move")
		return
	}

	g.Lock()
	g.SetFEN(board.FEN)
	whiteSeat, blackSeat := g.White(), g.Black()
	g.Unlock()

	s.send("ok")
	if human {
		if o, ok := otherSeat(white, whiteSeat, blackSeat).(*Session); ok && o != nil {
			o.send("moved " + arg)
		}
	}

	if s.evaluate(*board, g) {
		return
	}
	if !human {
		s.playComputerMove(board.FEN, g)
	}
}

func (s *Session) handleHint(option string) {
	s.mu.Lock()
	g := s.game
	white := s.white
	s.mu.Unlock()

	g.Lock()
	fen := g.FEN()
	myTurn := g.WhoseTurn() == turnByte(white)
	g.Unlock()

	if !myTurn {
		s.send("error turn")
		return
	}

	switch option {
	case "best":
		best, err := s.engine.BestMove(fen)
		if err != nil {
			return
		}
		s.send("moves " + best)
	case "all":
		moves, err := s.engine.AllMoves(fen)
		if err != nil {
			return
		}
		var sb strings.Builder
		sb.WriteString("moves")
		for _, m := range moves {
			sb.WriteByte(' ')
			sb.WriteString(m)
		}
		s.send(sb.String())
	default:
		s.send("error command")
	}
}

func (s *Session) handleResign() {
	s.mu.Lock()
	g := s.game
	s.mu.Unlock()

	g.Lock()
	started := g.Started()
	if started {
		g.MarkEnded()
	}
	fen := g.FEN()
	white, black := g.White(), g.Black()
	g.Unlock()

	if !started {
		s.send("error game")
		return
	}

	msg := "gameover resignation " + game.Winner(fen)
	// The resigning client is told first, then its human opponent (if any).
	first, second := white, black
	if black == s.Seat() {
		first, second = black, white
	}
	broadcastGameOverSeats(first, second, msg)
	s.recordGameEnd(g, "resignation")
}

// evaluate checks the position reached by board and, if the game has
// ended, announces it and marks the GameState accordingly. It reports
// whether the game ended.
func (s *Session) evaluate(board engine.Board, g *game.State) bool {
	moves, err := s.engine.AllMoves(board.FEN)
	if err != nil {
		return true
	}

	switch {
	case len(moves) == 0 && board.InCheck():
		g.Lock()
		g.MarkEnded()
		white, black := g.White(), g.Black()
		g.Unlock()
		s.recordGameEnd(g, "checkmate")
		broadcastGameOverSeats(white, black, "gameover checkmate "+game.Winner(board.FEN))
		return true
	case len(moves) == 0:
		g.Lock()
		g.MarkEnded()
		white, black := g.White(), g.Black()
		g.Unlock()
		broadcastGameOverSeats(white, black, "gameover stalemate")
		s.recordGameEnd(g, "stalemate")
		return true
	case board.InCheck():
		g.Lock()
		white, black := g.White(), g.Black()
		g.Unlock()
		broadcastCheckSeats(white, black, "check")
		return false
	default:
		return false
	}
}

func (s *Session) playComputerMove(fen string, g *game.State) {
	best, err := s.engine.BestMove(fen)
	if err != nil {
		return
	}
	board, err := s.engine.ApplyMove(fen, best)
	if err != nil {
		return
	}
	if board == nil {
		return
	}

	g.Lock()
	g.SetFEN(board.FEN)
	g.Unlock()

	s.send("moved " + best)
	s.evaluate(*board, g)
}

// leaveGame ends whatever game s currently holds, as a resignation:
// notifies a human opponent if one is present, releases s's claim on the
// shared GameState, and drops s from the wait list if it was still
// waiting. Used for an EOF disconnect and defensively before a new
// "start" (the resign-equivalent cleanup a stale GameState needs before it
// can be replaced); an explicit "resign" is handled by handleResign.
func (s *Session) leaveGame() {
	s.mu.Lock()
	g := s.game
	wasWaiting := s.state == waiting
	white := s.white
	played := s.hasPlayed
	s.game = nil
	s.state = pregame
	s.mu.Unlock()

	if g == nil {
		return
	}
	if wasWaiting {
		s.waitList.Remove(s)
		return
	}
	if !played {
		return
	}

	g.Lock()
	started := g.Started()
	if started {
		g.MarkEnded()
	}
	fen := g.FEN()
	var opponent *Session
	if white {
		if o, ok := g.Black().(*Session); ok && o != nil {
			opponent = o
		}
		g.SetWhite(nil)
	} else {
		if o, ok := g.White().(*Session); ok && o != nil {
			opponent = o
		}
		g.SetBlack(nil)
	}
	g.Unlock()

	if !started {
		return
	}
	msg := "gameover resignation " + game.Winner(fen)
	s.send(msg)
	if opponent != nil {
		opponent.send(msg)
		opponent.backToPregame()
	}
	s.recordGameEnd(g, "resignation")
}

func (s *Session) cleanup() {
	s.registry.Remove(s)
	s.leaveGame()
	_ = s.conn.Close()
}

func (s *Session) backToPregame() {
	s.mu.Lock()
	s.game = nil
	s.state = pregame
	s.mu.Unlock()
}

func (s *Session) recordGameEnd(g *game.State, reason string) {
	if s.ledger == nil {
		return
	}
	g.Lock()
	id, fen := g.ID(), g.FEN()
	g.Unlock()

	err := s.ledger.RecordGame(context.Background(), storage.CompletedGame{
		ID:       id,
		Result:   reason,
		FinalFEN: fen,
		EndedAt:  time.Now(),
	})
	if err != nil {
		log.Printf("uqchessserver: failed to record completed game %s: %v", id, err)
	}
}

// NotifyEngineFailure satisfies registry.Notifiable: told the shared
// engine is gone, a session just reports it to its own client. The engine
// driver exits the process once every session has been notified.
func (s *Session) NotifyEngineFailure() {
	s.send("error engine")
}

// The methods below satisfy matchmaker.Waiter.

func (s *Session) IsWhite() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.white
}

func (s *Session) SetWhite(white bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.white = white
}

func (s *Session) IsEither() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.either
}

func (s *Session) Game() *game.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game
}

func (s *Session) SetGame(g *game.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game = g
}

func (s *Session) Seat() game.Seat { return s }

func (s *Session) SendStarted() {
	s.mu.Lock()
	s.hasPlayed = true
	white := s.white
	s.state = playing
	s.mu.Unlock()

	if white {
		s.send("started white")
	} else {
		s.send("started black")
	}
}

func (s *Session) send(line string) {
	_, _ = io.WriteString(s.conn, line+"\n")
}

func (s *Session) sendRaw(block string) {
	_, _ = io.WriteString(s.conn, block)
}

func turnByte(white bool) byte {
	if white {
		return 'w'
	}
	return 'b'
}

func otherSeat(amWhite bool, white, black game.Seat) game.Seat {
	if amWhite {
		return black
	}
	return white
}

func broadcastGameOverSeats(white, black game.Seat, msg string) {
	for _, seat := range []game.Seat{white, black} {
		if o, ok := seat.(*Session); ok && o != nil {
			o.backToPregame()
			o.send(msg)
		}
	}
}

func broadcastCheckSeats(white, black game.Seat, msg string) {
	for _, seat := range []game.Seat{white, black} {
		if o, ok := seat.(*Session); ok && o != nil {
			o.send(msg)
		}
	}
}
