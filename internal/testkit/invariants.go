package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/rikushoney/abc-cmake/internal/source"
	"github.com/rikushoney/abc-cmake/internal/token"
)

// CheckTokenInvariants runs a minimal set of span invariants on a lexed file:
// 1) every token span stays within the file content bounds
// 2) token spans are ordered and non-overlapping
// 3) the stream ends with exactly one EOF token
func CheckTokenInvariants(tokens []token.Token, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	if len(tokens) == 0 {
		return fmt.Errorf("empty token stream")
	}

	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var prevEnd uint32
	for i, tok := range tokens {
		sp := tok.Span
		if sp.File != sf.ID {
			return fmt.Errorf("token %d span file mismatch: got=%d want=%d", i, sp.File, sf.ID)
		}
		if sp.End < sp.Start {
			return fmt.Errorf("token %d span inverted: %v", i, sp)
		}
		if sp.End > lenContent {
			return fmt.Errorf("token %d span end beyond content: %d > %d", i, sp.End, lenContent)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("token %d span %v overlaps previous end %d", i, sp, prevEnd)
		}
		prevEnd = sp.End

		if tok.Kind == token.EOF && i != len(tokens)-1 {
			return fmt.Errorf("EOF token at position %d before end of stream", i)
		}
	}

	last := tokens[len(tokens)-1]
	if last.Kind != token.EOF {
		return fmt.Errorf("stream does not end with EOF, got %s", last.Kind)
	}
	return nil
}
