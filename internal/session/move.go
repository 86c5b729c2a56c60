package session

// validMoveSyntax checks only the shape of a move string — 4 or 5
// alphanumeric characters, e.g. "e2e4" or "a7a8q" — never whether it is
// legal in the current position; that is the engine's job.
func validMoveSyntax(move string) bool {
	if len(move) != 4 && len(move) != 5 {
		return false
	}
	for _, c := range move {
		if !isAlnum(c) {
			return false
		}
	}
	return true
}

func isAlnum(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
