// Package directive implements the ABC_MINI annotation pipeline: scanning
// comment tokens for the magic prefix, parsing the colon-separated grammar,
// resolving adjacent declarations, and validating list pairing.
package directive

import (
	"github.com/rikushoney/abc-cmake/internal/cdecl"
	"github.com/rikushoney/abc-cmake/internal/source"
)

// Magic is the prefix a comment must carry to be treated as a directive.
const Magic = "// ABC_MINI"

// Directive is one parsed ABC_MINI annotation. The set of variants is
// closed: *AliasOf, *BasedOn, *DefinedIn, *DefinedInList, *DefinedInEnd.
// Consumers type-switch over all five and panic on anything else, so a new
// variant cannot slip through a silent default branch.
type Directive interface {
	isDirective()
	// Span is the location of the originating comment token.
	Span() source.Span
	// Raw is the comment text the directive was parsed from.
	Raw() string
}

type origin struct {
	span source.Span
	raw  string
}

func (o origin) Span() source.Span { return o.span }
func (o origin) Raw() string       { return o.raw }

// AliasOf declares that the record on the next source line is referred to
// as Typename in rewritten type strings.
type AliasOf struct {
	origin
	Typename string
	Alias    *cdecl.RecordDecl
}

func (*AliasOf) isDirective() {}

// BasedOn is provenance metadata: the upstream file and commit the
// annotated code was ported from. It is carried through scan output but
// consumed by no generation step.
type BasedOn struct {
	origin
	Filename  string
	CommitSHA string
}

func (*BasedOn) isDirective() {}

// DefinedIn declares that the single function on the next source line
// logically lives in Filename.
type DefinedIn struct {
	origin
	Filename  string
	Signature *cdecl.FuncDecl
}

func (*DefinedIn) isDirective() {}

// DefinedInList opens a region: every function declared between it and the
// next Defined-in-end belongs to Filename.
type DefinedInList struct {
	origin
	Filename   string
	Signatures []*cdecl.FuncDecl
}

func (*DefinedInList) isDirective() {}

// DefinedInEnd closes a DefinedInList region. It carries no payload and is
// dropped by the validator once consumed.
type DefinedInEnd struct {
	origin
}

func (*DefinedInEnd) isDirective() {}

// The Make constructors build directives without a source position. They
// serve the disk cache, which restores directives with zero spans, and
// tests that need canned directives.

func MakeAliasOf(raw, typename string, alias *cdecl.RecordDecl) *AliasOf {
	return &AliasOf{origin: origin{raw: raw}, Typename: typename, Alias: alias}
}

func MakeBasedOn(raw, filename, commitSHA string) *BasedOn {
	return &BasedOn{origin: origin{raw: raw}, Filename: filename, CommitSHA: commitSHA}
}

func MakeDefinedIn(raw, filename string, sig *cdecl.FuncDecl) *DefinedIn {
	return &DefinedIn{origin: origin{raw: raw}, Filename: filename, Signature: sig}
}

func MakeDefinedInList(raw, filename string, sigs []*cdecl.FuncDecl) *DefinedInList {
	return &DefinedInList{origin: origin{raw: raw}, Filename: filename, Signatures: sigs}
}

func MakeDefinedInEnd(raw string) *DefinedInEnd {
	return &DefinedInEnd{origin: origin{raw: raw}}
}
