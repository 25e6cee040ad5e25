package driver

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultSourceExts are the extensions scanned when the manifest does not
// override them.
var DefaultSourceExts = []string{"c", "cpp"}

// listSourceFiles возвращает отсортированный список исходников под root.
// root может быть и одиночным файлом — тогда он возвращается как есть.
func listSourceFiles(root string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = DefaultSourceExts
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && hasSourceExt(path, exts) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

func hasSourceExt(path string, exts []string) bool {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	for _, want := range exts {
		if ext == strings.TrimPrefix(want, ".") {
			return true
		}
	}
	return false
}
