package rewrite_test

import (
	"testing"

	"github.com/rikushoney/abc-cmake/internal/cdecl"
	"github.com/rikushoney/abc-cmake/internal/directive"
	"github.com/rikushoney/abc-cmake/internal/rewrite"
)

func buildTable(aliases map[string]string) *rewrite.Table {
	directives := make([]directive.Directive, 0, len(aliases))
	for realName, alias := range aliases {
		directives = append(directives, directive.MakeAliasOf("", alias,
			&cdecl.RecordDecl{Name: realName}))
	}
	return rewrite.Build(directives)
}

func TestRewrite_WholeWordReplacement(t *testing.T) {
	table := buildTable(map[string]string{"Abc_Ntk_t_": "Abc_Ntk_t"})

	tests := []struct {
		in   string
		want string
	}{
		{"Abc_Ntk_t_", "Abc_Ntk_t"},
		{"Abc_Ntk_t_ *", "Abc_Ntk_t *"},
		{"const Abc_Ntk_t_ *", "const Abc_Ntk_t *"},
		{"int", "int"},
		{"", ""},
		// замена только целых слов: приклеенная звёздочка — другое слово
		{"Abc_Ntk_t_*", "Abc_Ntk_t_*"},
		// и подстроки не трогаем
		{"My_Abc_Ntk_t_x", "My_Abc_Ntk_t_x"},
	}
	for _, tt := range tests {
		if got := table.Rewrite(tt.in); got != tt.want {
			t.Errorf("Rewrite(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRewrite_Idempotent(t *testing.T) {
	table := buildTable(map[string]string{
		"Abc_Ntk_t_": "Abc_Ntk_t",
		"Abc_Obj_t_": "Abc_Obj_t",
	})
	inputs := []string{
		"Abc_Ntk_t_ *",
		"Abc_Obj_t_",
		"const Abc_Ntk_t_ * *",
		"unsigned int",
	}
	for _, in := range inputs {
		once := table.Rewrite(in)
		twice := table.Rewrite(once)
		if once != twice {
			t.Errorf("Rewrite not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestRewrite_NormalizesSpacing(t *testing.T) {
	table := buildTable(nil)
	if got := table.Rewrite("  unsigned   int  "); got != "unsigned int" {
		t.Errorf("got %q", got)
	}
}

func TestBuild_OnlyAliasOfContributes(t *testing.T) {
	directives := []directive.Directive{
		directive.MakeBasedOn("", "foo.c", "deadbeef"),
		directive.MakeDefinedIn("", "a.c", &cdecl.FuncDecl{Name: "AbcMini__x", Return: "void"}),
		directive.MakeAliasOf("", "Abc_Ntk_t", &cdecl.RecordDecl{Name: "Abc_Ntk_t_"}),
	}
	table := rewrite.Build(directives)
	if table.Len() != 1 {
		t.Fatalf("Len = %d, want 1", table.Len())
	}
}
