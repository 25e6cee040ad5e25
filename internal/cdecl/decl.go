package cdecl

import (
	"strconv"
	"strings"

	"github.com/rikushoney/abc-cmake/internal/token"
)

// Declaration is a resolved C declaration: either a *RecordDecl or a
// *FuncDecl. The set is closed; consumers type-switch exhaustively.
type Declaration interface {
	isDeclaration()
}

// Field is a single record field with its display-form type string.
type Field struct {
	Name string
	Type string
}

// RecordDecl is a struct declaration with its fields in source order.
type RecordDecl struct {
	Name   string
	Fields []Field
}

func (*RecordDecl) isDeclaration() {}

// Param is a single function parameter with its display-form type string.
type Param struct {
	Name string
	Type string
}

// FuncDecl is a function declaration. Param order is call-significant and
// preserved.
type FuncDecl struct {
	Name   string
	Return string
	Params []Param
}

func (*FuncDecl) isDeclaration() {}

// Clone returns a deep copy of the declaration.
func (f *FuncDecl) Clone() *FuncDecl {
	out := &FuncDecl{
		Name:   f.Name,
		Return: f.Return,
		Params: make([]Param, len(f.Params)),
	}
	copy(out.Params, f.Params)
	return out
}

// String renders the declaration in its C display form, e.g.
// "struct Abc_Ntk_t_ { 3 fields }".
func (r *RecordDecl) String() string {
	var b strings.Builder
	b.WriteString("struct ")
	b.WriteString(r.Name)
	if len(r.Fields) == 1 {
		b.WriteString(" { 1 field }")
	} else {
		b.WriteString(" { ")
		b.WriteString(strconv.Itoa(len(r.Fields)))
		b.WriteString(" fields }")
	}
	return b.String()
}

// String renders the signature in its C display form, e.g.
// "int AbcMini__open(Abc_Frame_t * pAbc, char * name)".
func (f *FuncDecl) String() string {
	var b strings.Builder
	b.WriteString(f.Return)
	b.WriteByte(' ')
	b.WriteString(f.Name)
	b.WriteByte('(')
	for i, p := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Type)
		if p.Name != "" {
			b.WriteByte(' ')
			b.WriteString(p.Name)
		}
	}
	b.WriteByte(')')
	return b.String()
}

// Resolver resolves raw source tokens into structured declarations,
// preserving source order. Implementations never receive comment tokens
// they need to interpret; deptool's directive layer has already consumed
// those.
type Resolver interface {
	Resolve(tokens []token.Token) ([]Declaration, error)
}
