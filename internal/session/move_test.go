package session

import "testing"

func TestValidMoveSyntax(t *testing.T) {
	cases := map[string]bool{
		"e2e4":  true,
		"a7a8q": true,
		"e2":     false,
		"e2e":    false,
		"e2e4e5": false,
		"e2-e4":  false,
		"":       false,
	}
	for move, want := range cases {
		if got := validMoveSyntax(move); got != want {
			t.Errorf("validMoveSyntax(%q) = %v, want %v", move, got, want)
		}
	}
}
