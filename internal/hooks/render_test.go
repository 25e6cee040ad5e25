package hooks_test

import (
	"testing"

	"github.com/rikushoney/abc-cmake/internal/cdecl"
	"github.com/rikushoney/abc-cmake/internal/directive"
	"github.com/rikushoney/abc-cmake/internal/hooks"
	"github.com/rikushoney/abc-cmake/internal/rewrite"
)

func emptyTable() *rewrite.Table {
	return rewrite.Build(nil)
}

func TestRenderDeclaration(t *testing.T) {
	tests := []struct {
		name string
		fn   *cdecl.FuncDecl
		want string
	}{
		{
			name: "simple",
			fn:   hookFn("AbcMini__open", cdecl.Param{Name: "fd", Type: "int"}),
			want: "int AbcMini__open(int fd)",
		},
		{
			name: "no params",
			fn:   &cdecl.FuncDecl{Name: "AbcMini__stop", Return: "void"},
			want: "void AbcMini__stop()",
		},
		{
			name: "pointer return glues to name",
			fn: &cdecl.FuncDecl{
				Name:   "AbcMini__ntk",
				Return: "Abc_Ntk_t *",
				Params: []cdecl.Param{{Name: "p", Type: "void *"}},
			},
			want: "Abc_Ntk_t *AbcMini__ntk(void *p)",
		},
		{
			name: "multiple params",
			fn: hookFn("AbcMini__copy",
				cdecl.Param{Name: "dst", Type: "char *"},
				cdecl.Param{Name: "src", Type: "const char *"},
				cdecl.Param{Name: "n", Type: "unsigned int"}),
			want: "int AbcMini__copy(char *dst, const char *src, unsigned int n)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hooks.RenderDeclaration(tt.fn, emptyTable()); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderDeclaration_AppliesRewriteTable(t *testing.T) {
	table := rewrite.Build([]directive.Directive{
		directive.MakeAliasOf("", "Abc_Ntk_t", &cdecl.RecordDecl{Name: "Abc_Ntk_t_"}),
	})
	fn := &cdecl.FuncDecl{
		Name:   "AbcMini__dup",
		Return: "Abc_Ntk_t_ *",
		Params: []cdecl.Param{{Name: "pNtk", Type: "Abc_Ntk_t_ *"}},
	}
	want := "Abc_Ntk_t *AbcMini__dup(Abc_Ntk_t *pNtk)"
	if got := hooks.RenderDeclaration(fn, table); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderInvocation(t *testing.T) {
	tests := []struct {
		name string
		fn   *cdecl.FuncDecl
		want string
	}{
		{
			name: "returns value",
			fn:   hookFn("AbcMini__open", cdecl.Param{Name: "fd", Type: "int"}),
			want: "return open(fd)",
		},
		{
			name: "void drops return",
			fn: &cdecl.FuncDecl{
				Name:   "AbcMini__free",
				Return: "void",
				Params: []cdecl.Param{{Name: "p", Type: "void *"}},
			},
			want: "free(p)",
		},
		{
			name: "void pointer still returns",
			fn: &cdecl.FuncDecl{
				Name:   "AbcMini__alloc",
				Return: "void *",
				Params: []cdecl.Param{{Name: "n", Type: "int"}},
			},
			want: "return alloc(n)",
		},
		{
			name: "params forwarded in order",
			fn: hookFn("AbcMini__copy",
				cdecl.Param{Name: "dst", Type: "char *"},
				cdecl.Param{Name: "src", Type: "const char *"}),
			want: "return copy(dst, src)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hooks.RenderInvocation(tt.fn); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderGroup(t *testing.T) {
	group := &hooks.Group{
		TargetFilename: "abc.c",
		Functions: []*cdecl.FuncDecl{
			hookFn("AbcMini__open", cdecl.Param{Name: "fd", Type: "int"}),
			{Name: "AbcMini__close", Return: "void", Params: []cdecl.Param{{Name: "fd", Type: "int"}}},
		},
	}
	want := hooks.HeaderMarker + "\n" +
		"int AbcMini__open(int fd) {\n" +
		"  return open(fd);\n" +
		"}\n" +
		"void AbcMini__close(int fd) {\n" +
		"  close(fd);\n" +
		"}\n" +
		hooks.FooterMarker + "\n"
	if got := hooks.RenderGroup(group, emptyTable()); got != want {
		t.Errorf("payload mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}
