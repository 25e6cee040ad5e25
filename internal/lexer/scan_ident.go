package lexer

import (
	"github.com/rikushoney/abc-cmake/internal/token"
)

// scanIdentOrKeyword сканирует [Ident] и проверяет через LookupKeyword.
// Token.Text — ровно исходный срез. C-идентификаторы чисто ASCII.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for {
		b := lx.cursor.Peek()
		if !isIdentContinueByte(b) {
			break
		}
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])

	return token.Token{Kind: token.LookupKeyword(text), Span: sp, Text: text}
}
