package project_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rikushoney/abc-cmake/internal/project"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestParseModuleMake(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "single line",
			content: "SRC += src/base/abc/abc.c src/base/abc/abcUtil.c\n",
			want:    []string{"src/base/abc/abc.c", "src/base/abc/abcUtil.c"},
		},
		{
			name: "backslash continuation",
			content: "SRC += src/base/abc/abc.c \\\n" +
				"\tsrc/base/abc/abcUtil.c \\\n" +
				"\tsrc/base/abc/abcNames.c\n",
			want: []string{"src/base/abc/abc.c", "src/base/abc/abcUtil.c", "src/base/abc/abcNames.c"},
		},
		{
			name: "multiple SRC blocks",
			content: "SRC += a.c\n" +
				"\n" +
				"# comment\n" +
				"SRC += b.c\n",
			want: []string{"a.c", "b.c"},
		},
		{
			name:    "no SRC lines",
			content: "OBJ += a.o\n",
			want:    nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "module.make")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			got, err := project.ParseModuleMake(path)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("sources = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("sources = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestParseModuleMake_MalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "module.make")
	if err := os.WriteFile(path, []byte("SRC  a.c\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := project.ParseModuleMake(path)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "cannot parse line 1") {
		t.Errorf("err = %v", err)
	}
}

func TestWalkModules(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"base/abc/module.make": "SRC += src/base/abc/abc.c\n",
		"base/io/module.make":  "SRC += src/base/io/io.c\n",
		"base/abc/abc.c":       "",
	})
	modules, err := project.WalkModules(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(modules) != 2 {
		t.Fatalf("modules = %d, want 2", len(modules))
	}
	names := []string{modules[0].Name, modules[1].Name}
	if names[0] != "base/abc" || names[1] != "base/io" {
		t.Errorf("names = %v", names)
	}
}

func TestWalkModules_Blacklists(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		// весь модуль в чёрном списке
		"map/fpga/module.make": "SRC += src/map/fpga/fpga.c\n",
		// отдельный источник в чёрном списке, модуль остаётся
		"base/main/module.make": "SRC += src/base/main/main.c src/base/main/mainFrame.c\n",
		// после фильтра пусто — модуль выбрасывается
		"base/stub/module.make": "SRC += src/base/main/main.c\n",
	})
	modules, err := project.WalkModules(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(modules) != 1 {
		t.Fatalf("modules = %v, want only base/main", modules)
	}
	mod := modules[0]
	if mod.Name != "base/main" {
		t.Fatalf("name = %q", mod.Name)
	}
	if len(mod.Sources) != 1 || mod.Sources[0] != "src/base/main/mainFrame.c" {
		t.Errorf("sources = %v", mod.Sources)
	}
}

func TestGenerateManifests(t *testing.T) {
	srcRoot := t.TempDir()
	outRoot := t.TempDir()
	writeTree(t, srcRoot, map[string]string{
		"base/abc/module.make": "SRC += src/base/abc/b.c src/base/abc/a.c\n",
		"sat/xsat/module.make": "SRC += src/sat/xsat/solver.cpp src/sat/xsat/notes.txt\n",
	})

	result, err := project.GenerateManifests(outRoot, srcRoot)
	if err != nil {
		t.Fatal(err)
	}
	if result.CSources != 2 || result.CppSources != 1 {
		t.Fatalf("counts = %d c, %d cpp", result.CSources, result.CppSources)
	}
	if !result.UpdatedC || !result.UpdatedCpp {
		t.Error("first run must write both manifests")
	}
	if len(result.UnknownSources) != 1 || result.UnknownSources[0] != "src/sat/xsat/notes.txt" {
		t.Errorf("unknown = %v", result.UnknownSources)
	}

	content, err := os.ReadFile(filepath.Join(outRoot, "abc_c_sources.txt"))
	if err != nil {
		t.Fatal(err)
	}
	// сортировка даёт детерминированный список
	want := "src/base/abc/a.c;src/base/abc/b.c"
	if string(content) != want {
		t.Errorf("manifest = %q, want %q", string(content), want)
	}
}

func TestGenerateManifests_NoRewriteWhenUnchanged(t *testing.T) {
	srcRoot := t.TempDir()
	outRoot := t.TempDir()
	writeTree(t, srcRoot, map[string]string{
		"base/abc/module.make": "SRC += src/base/abc/a.c\n",
	})

	if _, err := project.GenerateManifests(outRoot, srcRoot); err != nil {
		t.Fatal(err)
	}
	result, err := project.GenerateManifests(outRoot, srcRoot)
	if err != nil {
		t.Fatal(err)
	}
	if result.UpdatedC || result.UpdatedCpp {
		t.Error("second run must leave the manifests alone")
	}
}

func TestGenerateManifests_EmptyManifestStable(t *testing.T) {
	srcRoot := t.TempDir()
	outRoot := t.TempDir()
	// ни одного источника: оба манифеста пустые, но стабильные
	writeTree(t, srcRoot, map[string]string{
		"base/abc/module.make": "OBJ += a.o\n",
	})

	if _, err := project.GenerateManifests(outRoot, srcRoot); err != nil {
		t.Fatal(err)
	}
	result, err := project.GenerateManifests(outRoot, srcRoot)
	if err != nil {
		t.Fatal(err)
	}
	if result.UpdatedC || result.UpdatedCpp {
		t.Error("second run rewrote an unchanged empty manifest")
	}
}

func TestGenerateManifests_TouchesCMakeLists(t *testing.T) {
	srcRoot := t.TempDir()
	outRoot := t.TempDir()
	writeTree(t, srcRoot, map[string]string{
		"base/abc/module.make": "SRC += src/base/abc/a.c\n",
	})
	cmakePath := filepath.Join(outRoot, "CMakeLists.txt")
	if err := os.WriteFile(cmakePath, []byte("project(abc)\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := os.Chtimes(cmakePath, old, old); err != nil {
		t.Fatal(err)
	}

	if _, err := project.GenerateManifests(outRoot, srcRoot); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(cmakePath)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().After(old) {
		t.Error("CMakeLists.txt timestamp not bumped")
	}
}
