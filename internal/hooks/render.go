package hooks

import (
	"strings"

	"github.com/rikushoney/abc-cmake/internal/cdecl"
	"github.com/rikushoney/abc-cmake/internal/rewrite"
)

// Marker lines bracketing generated content, both in the payload file and
// in the patched target. Byte-exact; the patcher matches them literally.
const (
	HeaderMarker = "// AUTO-GENERATED BY ABC-MINI DEPTOOL -- DO NOT MODIFY"
	FooterMarker = "// END AUTO-GENERATED BY ABC-MINI DEPTOOL"
)

// RenderDeclaration renders the stub's first line: rewritten return type,
// the hook's literal name, and the parameter list. The space before a name
// is elided when the rewritten type already ends in '*', matching the
// pointer adjacency the downstream compiler expects.
func RenderDeclaration(fn *cdecl.FuncDecl, table *rewrite.Table) string {
	var b strings.Builder
	writeTyped(&b, table.Rewrite(fn.Return), fn.Name)
	b.WriteByte('(')
	for i, param := range fn.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		writeTyped(&b, table.Rewrite(param.Type), param.Name)
	}
	b.WriteByte(')')
	return b.String()
}

// RenderInvocation renders the forwarding call: the real target name (hook
// prefix stripped) applied to the parameter names in order. The result is
// returned unless the un-rewritten return type is exactly void.
func RenderInvocation(fn *cdecl.FuncDecl) string {
	var b strings.Builder
	if fn.Return != "void" {
		b.WriteString("return ")
	}
	b.WriteString(strings.TrimPrefix(fn.Name, Prefix))
	b.WriteByte('(')
	for i, param := range fn.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(param.Name)
	}
	b.WriteByte(')')
	return b.String()
}

// RenderGroup renders the full payload for one group: header marker, one
// three-line stub per function in order, footer marker. Every line is
// newline-terminated.
func RenderGroup(group *Group, table *rewrite.Table) string {
	var b strings.Builder
	b.WriteString(HeaderMarker)
	b.WriteByte('\n')
	for _, fn := range group.Functions {
		b.WriteString(RenderDeclaration(fn, table))
		b.WriteString(" {\n  ")
		b.WriteString(RenderInvocation(fn))
		b.WriteString(";\n}\n")
	}
	b.WriteString(FooterMarker)
	b.WriteByte('\n')
	return b.String()
}

func writeTyped(b *strings.Builder, typeString, name string) {
	b.WriteString(typeString)
	if !strings.HasSuffix(typeString, "*") {
		b.WriteByte(' ')
	}
	b.WriteString(name)
}
