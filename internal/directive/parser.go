package directive

import (
	"fmt"
	"strings"

	"github.com/rikushoney/abc-cmake/internal/cdecl"
	"github.com/rikushoney/abc-cmake/internal/diag"
	"github.com/rikushoney/abc-cmake/internal/source"
	"github.com/rikushoney/abc-cmake/internal/token"
)

// Keyword identifies the directive keyword before payload parsing.
type Keyword uint8

const (
	KeywordInvalid Keyword = iota
	KeywordAliasOf
	KeywordBasedOn
	KeywordDefinedIn
	KeywordDefinedInStart
	KeywordDefinedInEnd
)

var keywordNames = map[string]Keyword{
	"Alias-of":         KeywordAliasOf,
	"Based-on":         KeywordBasedOn,
	"Defined-in":       KeywordDefinedIn,
	"Defined-in-start": KeywordDefinedInStart,
	"Defined-in-end":   KeywordDefinedInEnd,
}

// Parser turns the magic comments of one file into an ordered Directive
// list. It owns the file's full token stream so it can collect next-line
// and region token sets, and delegates declaration resolution to the
// injected cdecl.Resolver. All state is per file.
type Parser struct {
	fs       *source.FileSet
	file     *source.File
	tokens   []token.Token
	resolver cdecl.Resolver
	reporter diag.Reporter
}

// NewParser creates a parser over one file's complete token stream.
func NewParser(fs *source.FileSet, file *source.File, tokens []token.Token, resolver cdecl.Resolver, reporter diag.Reporter) *Parser {
	return &Parser{
		fs:       fs,
		file:     file,
		tokens:   tokens,
		resolver: resolver,
		reporter: reporter,
	}
}

// ParseAll scans the stream for magic comments and parses each one in
// source order. It returns false after reporting the first failure:
// directive errors are fail-fast per file.
func (p *Parser) ParseAll() ([]Directive, bool) {
	raw := ScanComments(p.tokens)
	directives := make([]Directive, 0, len(raw))
	for _, tok := range raw {
		d, ok := p.parseOne(tok)
		if !ok {
			return nil, false
		}
		directives = append(directives, d)
	}
	return directives, true
}

func (p *Parser) parseOne(tok token.Token) (Directive, bool) {
	keyword, trivia, ok := p.parseKeyword(tok)
	if !ok {
		return nil, false
	}
	org := origin{span: tok.Span, raw: tok.Text}

	switch keyword {
	case KeywordAliasOf:
		typename, ok := p.requireTrivia(tok, trivia, "alias typename")
		if !ok {
			return nil, false
		}
		return p.parseAliasOf(tok, org, typename)

	case KeywordBasedOn:
		field, ok := p.requireTrivia(tok, trivia, "based on file")
		if !ok {
			return nil, false
		}
		filename, sha, found := strings.Cut(field, ",")
		if !found {
			p.fail(diag.DirBadBasedOn, tok, "expected (<filename>,<commit_sha>)")
			return nil, false
		}
		return &BasedOn{origin: org, Filename: filename, CommitSHA: sha}, true

	case KeywordDefinedIn:
		filename, ok := p.requireTrivia(tok, trivia, "defined in filename")
		if !ok {
			return nil, false
		}
		return p.parseDefinedIn(tok, org, filename)

	case KeywordDefinedInStart:
		filename, ok := p.requireTrivia(tok, trivia, "defined in filename")
		if !ok {
			return nil, false
		}
		return p.parseDefinedInList(tok, org, filename)

	case KeywordDefinedInEnd:
		return &DefinedInEnd{origin: org}, true

	default:
		panic(fmt.Sprintf("unhandled directive keyword %d", keyword))
	}
}

// parseKeyword splits the comment text on ':', trims every segment, checks
// the magic, and maps the keyword. Remaining segments are the trivia,
// order-preserved.
func (p *Parser) parseKeyword(tok token.Token) (Keyword, []string, bool) {
	parts := strings.Split(tok.Text, ":")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	if parts[0] != Magic {
		p.fail(diag.DirMissingMagic, tok, "malformed directive magic")
		return KeywordInvalid, nil, false
	}
	if len(parts) < 2 {
		p.fail(diag.DirMissingKeyword, tok, "missing directive keyword")
		return KeywordInvalid, nil, false
	}
	keyword, ok := keywordNames[parts[1]]
	if !ok {
		p.fail(diag.DirUnknownKeyword, tok, fmt.Sprintf("unknown directive %q", parts[1]))
		return KeywordInvalid, nil, false
	}
	return keyword, parts[2:], true
}

func (p *Parser) requireTrivia(tok token.Token, trivia []string, what string) (string, bool) {
	if len(trivia) == 0 || trivia[0] == "" {
		p.fail(diag.DirMissingTrivia, tok, "missing "+what)
		return "", false
	}
	return trivia[0], true
}

// parseAliasOf resolves the tokens on the line following the directive and
// takes the first record declaration found.
func (p *Parser) parseAliasOf(tok token.Token, org origin, typename string) (Directive, bool) {
	decls, ok := p.resolveTokens(tok, p.nextLineTokens(tok))
	if !ok {
		return nil, false
	}
	for _, decl := range decls {
		if record, isRecord := decl.(*cdecl.RecordDecl); isRecord {
			return &AliasOf{origin: org, Typename: typename, Alias: record}, true
		}
	}
	p.fail(diag.ResExpectedStruct, tok, "expected struct declaration")
	return nil, false
}

// parseDefinedIn resolves the tokens on the line following the directive
// and takes the first function declaration found.
func (p *Parser) parseDefinedIn(tok token.Token, org origin, filename string) (Directive, bool) {
	decls, ok := p.resolveTokens(tok, p.nextLineTokens(tok))
	if !ok {
		return nil, false
	}
	for _, decl := range decls {
		if fn, isFunc := decl.(*cdecl.FuncDecl); isFunc {
			return &DefinedIn{origin: org, Filename: filename, Signature: fn}, true
		}
	}
	p.fail(diag.ResExpectedFunction, tok, "expected function declaration")
	return nil, false
}

// parseDefinedInList finds the first Defined-in-end after the directive,
// resolves every token in [start, end), and keeps all function
// declarations in source order.
func (p *Parser) parseDefinedInList(tok token.Token, org origin, filename string) (Directive, bool) {
	endTok, found := p.findRegionEnd(tok)
	if !found {
		p.fail(diag.ResUnmatchedStart, tok, "unmatched Defined-in-start")
		return nil, false
	}
	region := p.regionTokens(tok, endTok)
	decls, ok := p.resolveTokens(tok, region)
	if !ok {
		return nil, false
	}
	signatures := make([]*cdecl.FuncDecl, 0, len(decls))
	for _, decl := range decls {
		if fn, isFunc := decl.(*cdecl.FuncDecl); isFunc {
			signatures = append(signatures, fn)
		}
	}
	return &DefinedInList{origin: org, Filename: filename, Signatures: signatures}, true
}

// findRegionEnd looks for the first subsequent magic comment whose keyword
// is Defined-in-end. Comments that do not parse are skipped here; they
// fail on their own turn in ParseAll.
func (p *Parser) findRegionEnd(start token.Token) (token.Token, bool) {
	for _, tok := range p.tokens {
		if tok.Span.Start <= start.Span.Start {
			continue
		}
		if tok.Kind != token.Comment || !strings.HasPrefix(tok.Text, Magic) {
			continue
		}
		parts := strings.Split(tok.Text, ":")
		if len(parts) < 2 {
			continue
		}
		if strings.TrimSpace(parts[1]) == "Defined-in-end" {
			return tok, true
		}
	}
	return token.Token{}, false
}

// regionTokens returns every token in [start, end), start exclusive of the
// directive comment itself.
func (p *Parser) regionTokens(start, end token.Token) []token.Token {
	out := make([]token.Token, 0, 32)
	for _, tok := range p.tokens {
		if tok.Span.Start < start.Span.End {
			continue
		}
		if tok.Span.Start >= end.Span.Start {
			break
		}
		out = append(out, tok)
	}
	return out
}

// nextLineTokens collects every token on the line immediately following
// the directive's line, restricted to the directive's file.
func (p *Parser) nextLineTokens(tok token.Token) []token.Token {
	startPos, _ := p.fs.Resolve(tok.Span)
	wantLine := startPos.Line + 1
	out := make([]token.Token, 0, 16)
	for _, candidate := range p.tokens {
		if candidate.Span.File != tok.Span.File {
			continue
		}
		if candidate.Span.Start < tok.Span.End {
			continue
		}
		pos, _ := p.fs.Resolve(candidate.Span)
		if pos.Line < wantLine {
			continue
		}
		if pos.Line > wantLine {
			break
		}
		out = append(out, candidate)
	}
	return out
}

func (p *Parser) resolveTokens(tok token.Token, tokens []token.Token) ([]cdecl.Declaration, bool) {
	decls, err := p.resolver.Resolve(tokens)
	if err != nil {
		p.fail(diag.ResInfo, tok, fmt.Sprintf("declaration resolution failed: %v", err))
		return nil, false
	}
	return decls, true
}

func (p *Parser) fail(code diag.Code, tok token.Token, msg string) {
	if p.reporter == nil {
		return
	}
	notes := []diag.Note{{Span: tok.Span, Msg: fmt.Sprintf("while parsing directive %q", tok.Text)}}
	p.reporter.Report(code, diag.SevError, tok.Span, msg, notes)
}
