package driver

import (
	"github.com/rikushoney/abc-cmake/internal/cdecl"
	"github.com/rikushoney/abc-cmake/internal/diag"
	"github.com/rikushoney/abc-cmake/internal/directive"
	"github.com/rikushoney/abc-cmake/internal/lexer"
	"github.com/rikushoney/abc-cmake/internal/source"
)

// parseDirectives runs the read-only half of the per-file pipeline:
// tokenize, parse the magic comments, validate list pairing. The returned
// list is the accepted directives; ok=false means the file failed and the
// bag holds the reason.
func parseDirectives(fs *source.FileSet, file *source.File, resolver cdecl.Resolver, bag *diag.Bag) ([]directive.Directive, bool) {
	reporter := diag.BagReporter{Bag: bag}

	tokens := lexer.Tokenize(file, lexer.Options{Reporter: reporter})
	if bag.HasErrors() {
		return nil, false
	}

	parser := directive.NewParser(fs, file, tokens, resolver, reporter)
	parsed, ok := parser.ParseAll()
	if !ok {
		return nil, false
	}

	return directive.Validate(parsed, reporter)
}

func resolverOrDefault(r cdecl.Resolver) cdecl.Resolver {
	if r != nil {
		return r
	}
	return cdecl.NewExtractor()
}
