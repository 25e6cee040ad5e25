package cdecl

import (
	"strings"

	"github.com/rikushoney/abc-cmake/internal/token"
)

// Extractor is the built-in Resolver. It recognizes the declaration subset
// the abc-mini annotations sit next to: struct declarations ('struct X
// {...};' and 'typedef struct [X] {...} Y;') and function declarations or
// definitions ('ret name(params);' / 'ret name(params) {...}'). Everything
// else is skipped token by token.
//
// Type strings use clang-style display spelling: base words separated by
// single spaces, each pointer level a trailing " *" (e.g. "Abc_Ntk_t *",
// "char * *"). The rewrite engine depends on that shape.
type Extractor struct{}

// NewExtractor creates the built-in declaration extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Resolve scans tokens at brace depth zero and returns the declarations
// found, in source order. Function bodies are skipped wholesale.
func (e *Extractor) Resolve(tokens []token.Token) ([]Declaration, error) {
	s := declScanner{tokens: filterSignificant(tokens)}
	decls := make([]Declaration, 0, 4)
	for !s.eof() {
		if record, ok := s.scanRecord(); ok {
			decls = append(decls, record)
			continue
		}
		if fn, ok := s.scanFunction(); ok {
			decls = append(decls, fn)
			continue
		}
		s.bump()
	}
	return decls, nil
}

// filterSignificant drops comments and preprocessor lines; the declaration
// grammar never looks at them.
func filterSignificant(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))
	for _, tok := range tokens {
		switch tok.Kind {
		case token.Comment, token.Preproc, token.EOF:
			continue
		}
		out = append(out, tok)
	}
	return out
}

type declScanner struct {
	tokens []token.Token
	pos    int
}

func (s *declScanner) eof() bool { return s.pos >= len(s.tokens) }

func (s *declScanner) peek() token.Token {
	if s.eof() {
		return token.Token{Kind: token.EOF}
	}
	return s.tokens[s.pos]
}

func (s *declScanner) at(offset int) token.Token {
	if s.pos+offset >= len(s.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return s.tokens[s.pos+offset]
}

func (s *declScanner) bump() token.Token {
	tok := s.peek()
	if !s.eof() {
		s.pos++
	}
	return tok
}

// skipBalanced consumes from an opening bracket kind to its matching
// closing kind, inclusive. The cursor must be on the opener.
func (s *declScanner) skipBalanced(open, close token.Kind) {
	depth := 0
	for !s.eof() {
		switch s.bump().Kind {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return
			}
		}
	}
}

// scanRecord parses 'struct X { fields };' and
// 'typedef struct [X] { fields } Y;'. The cursor is only advanced on a
// successful parse.
func (s *declScanner) scanRecord() (*RecordDecl, bool) {
	start := s.pos
	isTypedef := false
	if s.peek().Kind == token.KwTypedef {
		isTypedef = true
		s.bump()
	}
	if s.peek().Kind != token.KwStruct {
		s.pos = start
		return nil, false
	}
	s.bump()

	tag := ""
	if s.peek().Kind == token.Ident {
		tag = s.bump().Text
	}
	if s.peek().Kind != token.LBrace {
		// forward declaration or 'struct X' used as a type; not a record
		s.pos = start
		return nil, false
	}
	fields := s.scanFieldList()

	name := tag
	if isTypedef {
		// 'typedef struct {...} Name;' — the typedef name wins
		if s.peek().Kind == token.Ident {
			name = s.bump().Text
		}
	}
	if s.peek().Kind == token.Semicolon {
		s.bump()
	}
	if name == "" {
		s.pos = start
		return nil, false
	}
	return &RecordDecl{Name: name, Fields: fields}, true
}

// scanFieldList consumes '{ ... }' and extracts 'type name;' members.
// Nested braces (unions, nested structs) are skipped without recursing.
func (s *declScanner) scanFieldList() []Field {
	s.bump() // '{'
	fields := make([]Field, 0, 8)
	var words []string
	flush := func() {
		if len(words) >= 2 {
			name := words[len(words)-1]
			fields = append(fields, Field{
				Name: name,
				Type: strings.Join(words[:len(words)-1], " "),
			})
		}
		words = words[:0]
	}
	for !s.eof() {
		tok := s.peek()
		switch tok.Kind {
		case token.RBrace:
			s.bump()
			return fields
		case token.LBrace:
			s.skipBalanced(token.LBrace, token.RBrace)
			words = words[:0]
		case token.Semicolon:
			s.bump()
			flush()
		case token.Star:
			s.bump()
			words = append(words, "*")
		case token.LBracket:
			// array suffix belongs to the field, not the type string
			s.skipBalanced(token.LBracket, token.RBracket)
		case token.Colon:
			// bitfield width: drop ': N'
			s.bump()
			if s.peek().Kind == token.Number {
				s.bump()
			}
		case token.Comma:
			// 'int a, b;' — emit the first, reuse the type words
			s.bump()
			if len(words) >= 2 {
				typeWords := append([]string(nil), words[:len(words)-1]...)
				flush()
				words = append(words, typeWords...)
			}
		default:
			if tok.IsTypeWord() {
				s.bump()
				words = append(words, tok.Text)
			} else {
				s.bump()
			}
		}
	}
	return fields
}

// scanFunction parses 'ret-type name(params)' followed by ';' or a body.
// Storage-class and inline keywords are dropped from the return type, the
// way clang reports result types. The cursor is only advanced on success.
func (s *declScanner) scanFunction() (*FuncDecl, bool) {
	start := s.pos

	for {
		kind := s.peek().Kind
		if kind != token.KwStatic && kind != token.KwExtern && kind != token.KwInline {
			break
		}
		s.bump()
	}

	var retWords []string
	for s.peek().IsTypeWord() {
		// the last type word before '(' is the function name, not the type
		if s.peek().Kind == token.Ident && s.at(1).Kind == token.LParen {
			break
		}
		retWords = append(retWords, s.bump().Text)
	}
	for s.peek().Kind == token.Star {
		s.bump()
		retWords = append(retWords, "*")
	}
	if len(retWords) == 0 || s.peek().Kind != token.Ident || s.at(1).Kind != token.LParen {
		s.pos = start
		return nil, false
	}
	name := s.bump().Text
	params, ok := s.scanParamList()
	if !ok {
		s.pos = start
		return nil, false
	}

	switch s.peek().Kind {
	case token.Semicolon:
		s.bump()
	case token.LBrace:
		s.skipBalanced(token.LBrace, token.RBrace)
	default:
		// 'name(tokens)' that is neither declared nor defined — a macro
		// invocation or an initializer; not a function
		s.pos = start
		return nil, false
	}

	return &FuncDecl{
		Name:   name,
		Return: strings.Join(retWords, " "),
		Params: params,
	}, true
}

// scanParamList consumes '(...)' and extracts 'type name' parameters.
// '(void)' and '()' mean no parameters; a trailing '...' vararg is dropped.
func (s *declScanner) scanParamList() ([]Param, bool) {
	if s.peek().Kind != token.LParen {
		return nil, false
	}
	s.bump()
	params := make([]Param, 0, 4)
	var words []string
	flush := func() bool {
		if len(words) == 0 {
			return true
		}
		if len(words) == 1 && words[0] == "void" {
			return true
		}
		if len(words) < 2 {
			return false
		}
		params = append(params, Param{
			Name: words[len(words)-1],
			Type: strings.Join(words[:len(words)-1], " "),
		})
		words = words[:0]
		return true
	}
	for !s.eof() {
		tok := s.peek()
		switch tok.Kind {
		case token.RParen:
			s.bump()
			if !flush() {
				return nil, false
			}
			return params, true
		case token.Comma:
			s.bump()
			if !flush() {
				return nil, false
			}
		case token.Star:
			s.bump()
			words = append(words, "*")
		case token.Ellipsis:
			s.bump()
			words = words[:0]
		case token.LBracket:
			s.skipBalanced(token.LBracket, token.RBracket)
		case token.LParen:
			// function-pointer parameters are out of the supported subset
			return nil, false
		default:
			if tok.IsTypeWord() {
				s.bump()
				words = append(words, tok.Text)
			} else {
				return nil, false
			}
		}
	}
	return nil, false
}
