package lexer

import (
	"github.com/rikushoney/abc-cmake/internal/diag"
	"github.com/rikushoney/abc-cmake/internal/token"
)

// scanComment сканирует //-комментарий до конца строки или /*...*/ блок.
// C-комментарии не вкладываются: первый "*/" закрывает блок.
func (lx *Lexer) scanComment() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'
	b := lx.cursor.Bump()

	switch b {
	case '/':
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		return token.Token{
			Kind: token.Comment,
			Span: sp,
			Text: string(lx.file.Content[sp.Start:sp.End]),
		}

	case '*':
		closed := false
		for !lx.cursor.EOF() {
			if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '*' && b1 == '/' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				closed = true
				break
			}
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		if !closed {
			// дочитали до EOF без "*/"
			lx.errLex(diag.LexUnterminatedBlockComment, sp, "unterminated block comment")
		}
		return token.Token{
			Kind: token.Comment,
			Span: sp,
			Text: string(lx.file.Content[sp.Start:sp.End]),
		}

	default:
		// caller guarantees isCommentStart
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}
}

// scanPreprocLine сканирует всю препроцессорную строку одним токеном:
// от '#' до неэкранированного конца строки ('\' + '\n' продолжает строку).
func (lx *Lexer) scanPreprocLine() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '#'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\\' {
			if _, b1, ok := lx.cursor.Peek2(); ok && b1 == '\n' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				continue
			}
		}
		if b == '\n' {
			break
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: token.Preproc,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}
