package directive

import (
	"strings"

	"github.com/rikushoney/abc-cmake/internal/token"
)

// ScanComments filters a file's token stream down to the comment tokens
// carrying the magic prefix, in source order. It is a pure function of the
// stream: no other filtering, no state.
func ScanComments(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, 8)
	for _, tok := range tokens {
		if tok.Kind == token.Comment && strings.HasPrefix(tok.Text, Magic) {
			out = append(out, tok)
		}
	}
	return out
}
