package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()

	// "a\nb\n" — LineIdx хранит позиции '\n'
	id := fs.AddVirtual("abc.c", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3}
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("LineIdx = %v, want %v", file.LineIdx, expected)
	}
	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("LineIdx[%d] = %d, want %d", i, file.LineIdx[i], val)
		}
	}
}

func TestLineIdx_NoNewlines(t *testing.T) {
	fs := NewFileSet()
	if file := fs.Get(fs.AddVirtual("empty.c", nil)); len(file.LineIdx) != 0 {
		t.Errorf("empty file LineIdx = %v", file.LineIdx)
	}
	if file := fs.Get(fs.AddVirtual("one.c", []byte("int x;"))); len(file.LineIdx) != 0 {
		t.Errorf("single line LineIdx = %v", file.LineIdx)
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	// строки: "ab" (0-2), "cd" (3-5), "ef" (6-7)
	id := fs.AddVirtual("abc.c", []byte("ab\ncd\nef"))

	tests := []struct {
		name string
		off  uint32
		want LineCol
	}{
		{"first byte", 0, LineCol{Line: 1, Col: 1}},
		{"middle of first line", 1, LineCol{Line: 1, Col: 2}},
		{"newline belongs to its line", 2, LineCol{Line: 1, Col: 3}},
		{"start of second line", 3, LineCol{Line: 2, Col: 1}},
		{"middle of second line", 4, LineCol{Line: 2, Col: 2}},
		{"start of third line", 6, LineCol{Line: 3, Col: 1}},
		{"end of content", 8, LineCol{Line: 3, Col: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
			if start != tt.want {
				t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, start, tt.want)
			}
		})
	}
}

func TestResolveUTF8(t *testing.T) {
	fs := NewFileSet()

	// позиции байтовые: α занимает 2 байта
	id := fs.AddVirtual("abc.c", []byte("α\n"))
	start, end := fs.Resolve(Span{File: id, Start: 0, End: 1})

	if want := (LineCol{Line: 1, Col: 1}); start != want {
		t.Errorf("start = %+v, want %+v", start, want)
	}
	if want := (LineCol{Line: 1, Col: 2}); end != want {
		t.Errorf("end = %+v, want %+v", end, want)
	}
}

func TestLoad_NormalizesCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abc.c")
	if err := os.WriteFile(path, []byte("int x;\r\nint y;\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	file := fs.Get(id)

	if string(file.Content) != "int x;\nint y;\n" {
		t.Errorf("content = %q", string(file.Content))
	}
	if file.Flags&FileNormalizedCRLF == 0 {
		t.Error("FileNormalizedCRLF not set")
	}
}

func TestLoad_StripsBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abc.c")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFint x;\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	file := fs.Get(id)

	if string(file.Content) != "int x;\n" {
		t.Errorf("content = %q", string(file.Content))
	}
	if file.Flags&FileHadBOM == 0 {
		t.Error("FileHadBOM not set")
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("abc.c", []byte("first\nsecond\nthird"))
	file := fs.Get(id)

	tests := []struct {
		line uint32
		want string
	}{
		{0, ""},
		{1, "first"},
		{2, "second"},
		{3, "third"},
		{4, ""},
	}
	for _, tt := range tests {
		if got := file.GetLine(tt.line); got != tt.want {
			t.Errorf("GetLine(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestAdd_ReloadUpdatesIndex(t *testing.T) {
	fs := NewFileSet()
	first := fs.AddVirtual("abc.c", []byte("one"))
	second := fs.AddVirtual("abc.c", []byte("two"))

	if first == second {
		t.Fatal("reload must mint a fresh FileID")
	}
	file, ok := fs.GetByPath("abc.c")
	if !ok {
		t.Fatal("path not indexed")
	}
	if file.ID != second {
		t.Error("index not updated to the latest version")
	}
	// старая версия остаётся доступной по ID
	if string(fs.Get(first).Content) != "one" {
		t.Error("old version lost")
	}
}

func TestSetBaseDir(t *testing.T) {
	fs := NewFileSet()
	fs.SetBaseDir("/workspace")
	if got := fs.BaseDir(); got != "/workspace" {
		t.Errorf("BaseDir() = %q", got)
	}

	f := fs.Get(fs.AddVirtual("/workspace/src/abc.c", []byte("int x;\n")))
	if got := f.FormatPath("relative", fs.BaseDir()); got != "src/abc.c" {
		t.Errorf("relative path = %q", got)
	}
}

func TestHashDiffersPerContent(t *testing.T) {
	fs := NewFileSet()
	a := fs.Get(fs.AddVirtual("a.c", []byte("one")))
	b := fs.Get(fs.AddVirtual("b.c", []byte("two")))
	c := fs.Get(fs.AddVirtual("c.c", []byte("one")))

	if a.Hash == b.Hash {
		t.Error("different content, same hash")
	}
	if a.Hash != c.Hash {
		t.Error("same content, different hash")
	}
}
