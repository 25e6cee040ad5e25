package lexer

import (
	"github.com/rikushoney/abc-cmake/internal/token"
)

// scanNumber сканирует числовой литерал. Деление на int/float не нужно:
// deptool никогда не интерпретирует значения, только пропускает их.
// Хватает жадного прохода по [0-9a-fA-FxX.uUlLfFeE+-], где +/- съедается
// только после экспоненты.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	prev := byte(0)
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case isDec(b) || isHex(b) || b == '.' || b == 'x' || b == 'X':
		case b == 'u' || b == 'U' || b == 'l' || b == 'L':
		case (b == '+' || b == '-') && (prev == 'e' || prev == 'E' || prev == 'p' || prev == 'P'):
		default:
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.Number, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		prev = b
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Number, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
