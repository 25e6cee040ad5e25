// Package hooks turns provenance directives into rendered hook stubs and
// splices the generated include into the annotated source file.
package hooks

import (
	"fmt"
	"strings"

	"github.com/rikushoney/abc-cmake/internal/cdecl"
	"github.com/rikushoney/abc-cmake/internal/directive"
)

// Prefix marks hook-eligible function names. Stripping it recovers the
// real target symbol name.
const Prefix = "AbcMini__"

// Group collects the hook functions declared for one target filename, in
// first-seen order. Groups are non-empty by construction.
type Group struct {
	TargetFilename string
	Functions      []*cdecl.FuncDecl
}

// Collect walks the accepted directives, keeps every hook-prefixed
// function from Defined-in and Defined-in-start payloads, and groups them
// by target filename. Group order follows first appearance; groups that
// would be empty are discarded.
func Collect(directives []directive.Directive) []*Group {
	order := make([]string, 0, 4)
	byFile := make(map[string]*Group)

	add := func(filename string, fn *cdecl.FuncDecl) {
		if !strings.HasPrefix(fn.Name, Prefix) {
			return
		}
		group, ok := byFile[filename]
		if !ok {
			group = &Group{TargetFilename: filename}
			byFile[filename] = group
			order = append(order, filename)
		}
		group.Functions = append(group.Functions, fn)
	}

	for _, d := range directives {
		switch d := d.(type) {
		case *directive.DefinedIn:
			add(d.Filename, d.Signature)
		case *directive.DefinedInList:
			for _, fn := range d.Signatures {
				add(d.Filename, fn)
			}
		case *directive.AliasOf, *directive.BasedOn:
			// no functions to collect
		case *directive.DefinedInEnd:
			// the validator drops these before collection
		default:
			panic(fmt.Sprintf("unhandled directive %T", d))
		}
	}

	groups := make([]*Group, 0, len(order))
	for _, filename := range order {
		if group := byFile[filename]; len(group.Functions) > 0 {
			groups = append(groups, group)
		}
	}
	return groups
}
