package diagfmt_test

import (
	"strings"
	"testing"

	"github.com/rikushoney/abc-cmake/internal/cdecl"
	"github.com/rikushoney/abc-cmake/internal/diag"
	"github.com/rikushoney/abc-cmake/internal/diagfmt"
	"github.com/rikushoney/abc-cmake/internal/directive"
	"github.com/rikushoney/abc-cmake/internal/source"
)

func makeBag(t *testing.T) (*diag.Bag, *source.FileSet, source.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("abc.c", []byte("int bad_token;\nint ok;\n"))

	bag := diag.NewBag(8)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.LexUnknownChar,
		Message:  "unknown character",
		// подчёркиваем "bad_token" на первой строке
		Primary: source.Span{File: id, Start: 4, End: 13},
		Notes:   []diag.Note{{Msg: "see the token above"}},
	})
	return bag, fs, id
}

func TestPretty_Heading(t *testing.T) {
	bag, fs, _ := makeBag(t)

	var buf strings.Builder
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{PathMode: diagfmt.PathModeBasename})
	out := buf.String()

	if !strings.Contains(out, "abc.c:1:5: ERROR DT1001: unknown character") {
		t.Errorf("missing heading:\n%s", out)
	}
	if !strings.Contains(out, "int bad_token;") {
		t.Errorf("missing source context:\n%s", out)
	}
}

func TestPretty_CaretUnderSpan(t *testing.T) {
	bag, fs, _ := makeBag(t)

	var buf strings.Builder
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{PathMode: diagfmt.PathModeBasename})

	// колонка 5, ширина 9: ^ плюс восемь тильд
	want := "\n      ^~~~~~~~~\n"
	if !strings.Contains(buf.String(), want) {
		t.Errorf("caret line mismatch:\n%q", buf.String())
	}
}

func TestPretty_Notes(t *testing.T) {
	bag, fs, _ := makeBag(t)

	var withNotes, withoutNotes strings.Builder
	diagfmt.Pretty(&withNotes, bag, fs, diagfmt.PrettyOpts{ShowNotes: true})
	diagfmt.Pretty(&withoutNotes, bag, fs, diagfmt.PrettyOpts{})

	if !strings.Contains(withNotes.String(), "note: see the token above") {
		t.Errorf("note missing:\n%s", withNotes.String())
	}
	if strings.Contains(withoutNotes.String(), "note:") {
		t.Errorf("note printed without ShowNotes:\n%s", withoutNotes.String())
	}
}

func TestPretty_NoLocation(t *testing.T) {
	fs := source.NewFileSet()
	bag := diag.NewBag(8)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.IOLoadFileError,
		Message:  "failed to load file",
	})

	var buf strings.Builder
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{})
	if got := buf.String(); got != "ERROR DT2001: failed to load file\n" {
		t.Errorf("got %q", got)
	}
}

func TestBuildDiagnosticsOutput(t *testing.T) {
	bag, fs, _ := makeBag(t)

	out := diagfmt.BuildDiagnosticsOutput(bag, fs, diagfmt.JSONOpts{
		IncludePositions: true,
		IncludeNotes:     true,
		PathMode:         diagfmt.PathModeBasename,
	})
	if out.Count != 1 {
		t.Fatalf("count = %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "DT1001" {
		t.Errorf("severity=%q code=%q", d.Severity, d.Code)
	}
	if d.Location.File != "abc.c" || d.Location.StartLine != 1 || d.Location.StartCol != 5 {
		t.Errorf("location = %+v", d.Location)
	}
	if d.Location.StartByte != 4 || d.Location.EndByte != 13 {
		t.Errorf("bytes = %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "see the token above" {
		t.Errorf("notes = %+v", d.Notes)
	}
}

func TestBuildDiagnosticsOutput_Max(t *testing.T) {
	fs := source.NewFileSet()
	bag := diag.NewBag(8)
	for i := 0; i < 5; i++ {
		bag.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.LexUnknownChar, Message: "x"})
	}

	out := diagfmt.BuildDiagnosticsOutput(bag, fs, diagfmt.JSONOpts{Max: 2})
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Errorf("count = %d, diagnostics = %d", out.Count, len(out.Diagnostics))
	}
}

func TestFormatDirectivesPretty(t *testing.T) {
	fs := source.NewFileSet()
	directives := []directive.Directive{
		directive.MakeBasedOn("", "abc.c", "deadbeef"),
		directive.MakeAliasOf("", "Abc_Ntk_t", &cdecl.RecordDecl{
			Name:   "Abc_Ntk_t_",
			Fields: []cdecl.Field{{Name: "nObjs", Type: "int"}},
		}),
		directive.MakeDefinedInList("", "abc.c", []*cdecl.FuncDecl{
			{Name: "AbcMini__open", Return: "int", Params: []cdecl.Param{{Name: "fd", Type: "int"}}},
		}),
	}

	var buf strings.Builder
	diagfmt.FormatDirectivesPretty(&buf, directives, fs, diagfmt.PathModeBasename)
	out := buf.String()

	for _, want := range []string{
		"Based-on abc.c @ deadbeef",
		"Alias-of Abc_Ntk_t -> struct Abc_Ntk_t_ { 1 field }",
		"Defined-in-start abc.c (1 functions)",
		"  int AbcMini__open(int fd)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q:\n%s", want, out)
		}
	}
}

func TestBuildDirectiveOutputs(t *testing.T) {
	fs := source.NewFileSet()
	directives := []directive.Directive{
		directive.MakeBasedOn("", "abc.c", "deadbeef"),
		directive.MakeDefinedIn("", "abc.c", &cdecl.FuncDecl{
			Name: "AbcMini__open", Return: "int",
			Params: []cdecl.Param{{Name: "fd", Type: "int"}},
		}),
	}

	out := diagfmt.BuildDirectiveOutputs(directives, fs, diagfmt.JSONOpts{})
	if len(out) != 2 {
		t.Fatalf("outputs = %d", len(out))
	}
	if out[0].Kind != "based_on" || out[0].CommitSHA != "deadbeef" {
		t.Errorf("out[0] = %+v", out[0])
	}
	if out[0].Location != nil {
		t.Error("synthetic directive must not carry a location")
	}
	if out[1].Kind != "defined_in" || len(out[1].Functions) != 1 ||
		out[1].Functions[0] != "int AbcMini__open(int fd)" {
		t.Errorf("out[1] = %+v", out[1])
	}
}
