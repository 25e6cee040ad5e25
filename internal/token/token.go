package token

import (
	"github.com/rikushoney/abc-cmake/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsComment reports whether the token is a comment.
func (t Token) IsComment() bool { return t.Kind == Comment }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsKeyword reports whether the token is a recognized C keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwStruct, KwUnion, KwEnum, KwTypedef, KwConst, KwVolatile,
		KwUnsigned, KwSigned, KwStatic, KwExtern, KwInline, KwVoid, KwReturn:
		return true
	default:
		return false
	}
}

// IsTypeWord reports whether the token can start or continue a type
// spelling (identifier or a type-ish keyword).
func (t Token) IsTypeWord() bool {
	switch t.Kind {
	case Ident, KwStruct, KwUnion, KwEnum, KwConst, KwVolatile,
		KwUnsigned, KwSigned, KwVoid:
		return true
	default:
		return false
	}
}
