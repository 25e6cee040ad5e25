package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rikushoney/abc-cmake/internal/directive"
	"github.com/rikushoney/abc-cmake/internal/driver"
)

const annotatedSource = `// ABC_MINI: Based-on: abc.c,deadbeef

// ABC_MINI: Alias-of: Abc_Ntk_t
struct Abc_Ntk_t_ { int nObjs; };

// ABC_MINI: Defined-in: abc.c
int AbcMini__open(int fd);
`

func writeSourceTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func scanOpts() driver.ScanOptions {
	return driver.ScanOptions{MaxDiagnostics: 16}
}

func TestScan_CollectsDirectives(t *testing.T) {
	root := writeSourceTree(t, map[string]string{
		"abcFrames.c": annotatedSource,
		"plain.c":     "int main(void) { return 0; }\n",
	})

	result, err := driver.Scan(context.Background(), root, scanOpts())
	if err != nil {
		t.Fatal(err)
	}
	if !result.OK {
		t.Fatalf("scan failed: %+v", result.Files)
	}
	if len(result.Files) != 2 {
		t.Fatalf("files = %d, want 2", len(result.Files))
	}

	// listSourceFiles сортирует пути
	annotated := result.Files[0]
	if filepath.Base(annotated.Path) != "abcFrames.c" {
		t.Fatalf("first file = %q", annotated.Path)
	}
	if len(annotated.Directives) != 3 {
		t.Fatalf("directives = %d, want 3", len(annotated.Directives))
	}
	if _, ok := annotated.Directives[0].(*directive.BasedOn); !ok {
		t.Errorf("directives[0] = %T", annotated.Directives[0])
	}
	if _, ok := annotated.Directives[1].(*directive.AliasOf); !ok {
		t.Errorf("directives[1] = %T", annotated.Directives[1])
	}
	if _, ok := annotated.Directives[2].(*directive.DefinedIn); !ok {
		t.Errorf("directives[2] = %T", annotated.Directives[2])
	}

	plain := result.Files[1]
	if !plain.OK || len(plain.Directives) != 0 {
		t.Errorf("plain file: ok=%v directives=%d", plain.OK, len(plain.Directives))
	}
}

func TestScan_ReportsAllFailures(t *testing.T) {
	root := writeSourceTree(t, map[string]string{
		"bad1.c": "// ABC_MINI: Frobnicate: x\n",
		"bad2.c": "// ABC_MINI\n",
		"good.c": "int x;\n",
	})

	result, err := driver.Scan(context.Background(), root, scanOpts())
	if err != nil {
		t.Fatal(err)
	}
	if result.OK {
		t.Fatal("scan reported OK over broken files")
	}
	if len(result.Files) != 3 {
		t.Fatalf("files = %d, want 3: a failing file must not stop the scan", len(result.Files))
	}

	var failed, succeeded int
	for _, f := range result.Files {
		if f.OK {
			succeeded++
		} else {
			failed++
			if !f.Bag.HasErrors() {
				t.Errorf("%s failed without diagnostics", f.Path)
			}
		}
	}
	if failed != 2 || succeeded != 1 {
		t.Errorf("failed=%d succeeded=%d", failed, succeeded)
	}
}

func TestScan_EmptyTree(t *testing.T) {
	result, err := driver.Scan(context.Background(), t.TempDir(), scanOpts())
	if err != nil {
		t.Fatal(err)
	}
	if !result.OK || len(result.Files) != 0 {
		t.Errorf("ok=%v files=%d", result.OK, len(result.Files))
	}
}

func TestScan_SingleFileRoot(t *testing.T) {
	root := writeSourceTree(t, map[string]string{"abcFrames.c": annotatedSource})
	path := filepath.Join(root, "abcFrames.c")

	result, err := driver.Scan(context.Background(), path, scanOpts())
	if err != nil {
		t.Fatal(err)
	}
	if !result.OK || len(result.Files) != 1 {
		t.Fatalf("ok=%v files=%d", result.OK, len(result.Files))
	}
}

func TestScan_RespectsSourceExts(t *testing.T) {
	root := writeSourceTree(t, map[string]string{
		"a.c":   "int x;\n",
		"b.cpp": "int y;\n",
		"c.h":   "int z;\n",
	})

	opts := scanOpts()
	opts.SourceExts = []string{"c"}
	result, err := driver.Scan(context.Background(), root, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Files) != 1 || filepath.Base(result.Files[0].Path) != "a.c" {
		t.Errorf("files = %+v", result.Files)
	}
}

func TestScan_CanceledContext(t *testing.T) {
	root := writeSourceTree(t, map[string]string{"a.c": "int x;\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := driver.Scan(ctx, root, scanOpts()); err == nil {
		t.Fatal("expected context error")
	}
}
