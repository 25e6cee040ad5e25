// Package rewrite maps real record names to their display aliases when
// rendering type strings.
package rewrite

import (
	"strings"

	"github.com/rikushoney/abc-cmake/internal/directive"
)

// Table maps a record's literal name (as extracted, never a previously
// rewritten form) to its display alias. Built once per file from all
// Alias-of directives; read-only afterward.
type Table struct {
	aliases map[string]string
}

// Build collects every AliasOf directive into a fresh table.
func Build(directives []directive.Directive) *Table {
	t := &Table{aliases: make(map[string]string)}
	for _, d := range directives {
		if alias, ok := d.(*directive.AliasOf); ok {
			t.aliases[alias.Alias.Name] = alias.Typename
		}
	}
	return t
}

// Len returns the number of alias entries.
func (t *Table) Len() int {
	return len(t.aliases)
}

// Rewrite replaces each whole whitespace-delimited word present as a key
// with its alias and rejoins with single spaces. Non-aliased words and
// word order are preserved exactly. A pointer suffix glued to a word
// ("Type*") is part of that word and will not match a bare-name key; that
// is deliberate.
func (t *Table) Rewrite(typeString string) string {
	words := strings.Fields(typeString)
	for i, word := range words {
		if alias, ok := t.aliases[word]; ok {
			words[i] = alias
		}
	}
	return strings.Join(words, " ")
}
