package engine

import (
	"fmt"
	"strings"
)

// Board is the parsed result of sending the engine's "d" command: its
// rendered board diagram, the FEN it reports for the position, the
// checkers line (empty when the side to move is not in check), and the
// side to move.
type Board struct {
	Board      string
	FEN        string
	Checkers   string
	SideToMove byte
}

// InCheck reports whether the position the Board describes has the side
// to move in check.
func (b Board) InCheck() bool {
	return b.Checkers != ""
}

func parseBestMoveLine(line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", fmt.Errorf("malformed bestmove line %q", line)
	}
	return fields[1], nil
}

// parsePerftMoveLine extracts the move token from one line of "go perft 1"
// output (formatted "<move>: <count>"), or reports ok=false for any line
// that isn't a move line (the leading position summary, if present, or the
// trailing "Nodes searched: N" line).
func parsePerftMoveLine(line string) (move string, ok bool) {
	colon := strings.IndexByte(line, ':')
	if colon <= 0 {
		return "", false
	}
	candidate := line[:colon]
	if !isMoveSyntax(candidate) {
		return "", false
	}
	return candidate, true
}

func isMoveSyntax(s string) bool {
	if len(s) != 4 && len(s) != 5 {
		return false
	}
	for _, c := range s {
		if c >= 'a' && c <= 'z' {
			continue
		}
		if c >= '0' && c <= '9' {
			continue
		}
		return false
	}
	return true
}

const (
	fenLinePrefix      = "Fen: "
	checkersLinePrefix = "Checkers:"
	keyLinePrefix      = "Key:"
)

// sideToMoveFromFEN returns the side-to-move field (the second
// space-separated field) of a FEN string.
func sideToMoveFromFEN(fen string) byte {
	fields := strings.Fields(fen)
	if len(fields) < 2 || len(fields[1]) == 0 {
		return 'w'
	}
	return fields[1][0]
}
