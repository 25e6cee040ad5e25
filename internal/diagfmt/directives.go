package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rikushoney/abc-cmake/internal/directive"
	"github.com/rikushoney/abc-cmake/internal/source"
)

// DirectiveOutput is one directive in the scan dump.
type DirectiveOutput struct {
	Kind      string        `json:"kind"`
	Typename  string        `json:"typename,omitempty"`
	Filename  string        `json:"filename,omitempty"`
	CommitSHA string        `json:"commit_sha,omitempty"`
	Decl      string        `json:"decl,omitempty"`
	Functions []string      `json:"functions,omitempty"`
	Location  *LocationJSON `json:"location,omitempty"`
}

// FormatDirectivesPretty выводит директивы одного файла в человекочитаемом
// формате: по строке на директиву с позицией и полезной нагрузкой.
func FormatDirectivesPretty(w io.Writer, directives []directive.Directive, fs *source.FileSet, pathMode PathMode) {
	for _, d := range directives {
		prefix := describeLocation(d.Span(), fs, pathMode)
		switch d := d.(type) {
		case *directive.AliasOf:
			fmt.Fprintf(w, "%sAlias-of %s -> %s\n", prefix, d.Typename, d.Alias)
		case *directive.BasedOn:
			fmt.Fprintf(w, "%sBased-on %s @ %s\n", prefix, d.Filename, d.CommitSHA)
		case *directive.DefinedIn:
			fmt.Fprintf(w, "%sDefined-in %s: %s\n", prefix, d.Filename, d.Signature)
		case *directive.DefinedInList:
			fmt.Fprintf(w, "%sDefined-in-start %s (%d functions)\n", prefix, d.Filename, len(d.Signatures))
			for _, sig := range d.Signatures {
				fmt.Fprintf(w, "  %s\n", sig)
			}
		case *directive.DefinedInEnd:
			fmt.Fprintf(w, "%sDefined-in-end\n", prefix)
		default:
			panic(fmt.Sprintf("unhandled directive %T", d))
		}
	}
}

// FormatDirectivesJSON выводит директивы в JSON формате
func FormatDirectivesJSON(w io.Writer, directives []directive.Directive, fs *source.FileSet, opts JSONOpts) error {
	output := BuildDirectiveOutputs(directives, fs, opts)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// BuildDirectiveOutputs формирует JSON-представление без сериализации.
func BuildDirectiveOutputs(directives []directive.Directive, fs *source.FileSet, opts JSONOpts) []DirectiveOutput {
	output := make([]DirectiveOutput, 0, len(directives))
	for _, d := range directives {
		out := DirectiveOutput{}
		if d.Span() != (source.Span{}) {
			loc := makeLocation(d.Span(), fs, opts.PathMode, opts.IncludePositions)
			out.Location = &loc
		}
		switch d := d.(type) {
		case *directive.AliasOf:
			out.Kind = "alias_of"
			out.Typename = d.Typename
			out.Decl = d.Alias.String()
		case *directive.BasedOn:
			out.Kind = "based_on"
			out.Filename = d.Filename
			out.CommitSHA = d.CommitSHA
		case *directive.DefinedIn:
			out.Kind = "defined_in"
			out.Filename = d.Filename
			out.Functions = []string{d.Signature.String()}
		case *directive.DefinedInList:
			out.Kind = "defined_in_list"
			out.Filename = d.Filename
			for _, sig := range d.Signatures {
				out.Functions = append(out.Functions, sig.String())
			}
		case *directive.DefinedInEnd:
			out.Kind = "defined_in_end"
		default:
			panic(fmt.Sprintf("unhandled directive %T", d))
		}
		output = append(output, out)
	}
	return output
}

// describeLocation возвращает "path:line: " или пустую строку для
// синтетических директив (например, из кэша).
func describeLocation(span source.Span, fs *source.FileSet, pathMode PathMode) string {
	if span == (source.Span{}) {
		return ""
	}
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d: ", formatPath(fs, span.File, pathMode), start.Line)
}
