package project

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Module is one ABC source module: the directory of a module.make file and
// the source entries it lists.
type Module struct {
	Name    string // POSIX-style path relative to the source root
	Sources []string
}

// Modules that never build under the trimmed-down fork.
var blacklistedModules = map[string]bool{
	"map/fpga":      true,
	"misc/espresso": true,
	"opt/fsim":      true,
	"phys/place":    true,
	"proof/int2":    true,
	"sat/bsat2":     true,
}

// Individual sources dropped even when their module survives.
var blacklistedSources = map[string]bool{
	"src/base/main/main.c": true,
}

// ParseModuleMake extracts the `SRC +=` entries from one module.make,
// honoring backslash line continuations.
func ParseModuleMake(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")

	var sources []string
	appendEntries := func(line string) {
		for _, entry := range strings.Fields(line) {
			entry = strings.TrimSpace(strings.TrimSuffix(entry, "\\"))
			if entry != "" {
				sources = append(sources, entry)
			}
		}
	}

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(line, "SRC") {
			continue
		}
		jump := strings.Index(line, "+=")
		if jump < 0 {
			return nil, fmt.Errorf("%s: cannot parse line %d: %q", path, i+1, line)
		}
		line = strings.TrimSpace(line[jump+2:])
		appendEntries(line)
		for strings.HasSuffix(line, "\\") && i+1 < len(lines) {
			i++
			line = strings.TrimSpace(lines[i])
			appendEntries(line)
		}
	}
	return sources, nil
}

// WalkModules collects every non-blacklisted module under srcRoot in
// directory walk order.
func WalkModules(srcRoot string) ([]Module, error) {
	var modules []Module
	err := filepath.WalkDir(srcRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != "module.make" {
			return nil
		}
		dir := filepath.Dir(path)
		rel, err := filepath.Rel(srcRoot, dir)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if blacklistedModules[name] {
			return nil
		}
		sources, err := ParseModuleMake(path)
		if err != nil {
			return err
		}
		kept := sources[:0]
		for _, src := range sources {
			if !blacklistedSources[src] {
				kept = append(kept, src)
			}
		}
		if len(kept) > 0 {
			modules = append(modules, Module{Name: name, Sources: kept})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return modules, nil
}

// ManifestResult reports what GenerateManifests changed.
type ManifestResult struct {
	CSources       int
	CppSources     int
	UpdatedC       bool
	UpdatedCpp     bool
	UnknownSources []string
}

// GenerateManifests partitions the module sources by extension and
// rewrites abc_c_sources.txt / abc_cpp_sources.txt under outRoot when
// their content changed, bumping the CMakeLists.txt timestamp so the next
// CMake run reconfigures.
func GenerateManifests(outRoot, srcRoot string) (ManifestResult, error) {
	modules, err := WalkModules(srcRoot)
	if err != nil {
		return ManifestResult{}, err
	}

	var result ManifestResult
	var cSources, cppSources []string
	for _, mod := range modules {
		for _, src := range mod.Sources {
			switch filepath.Ext(src) {
			case ".c":
				cSources = append(cSources, src)
			case ".cpp":
				cppSources = append(cppSources, src)
			default:
				result.UnknownSources = append(result.UnknownSources, src)
			}
		}
	}
	sort.Strings(cSources)
	sort.Strings(cppSources)
	result.CSources = len(cSources)
	result.CppSources = len(cppSources)

	result.UpdatedC, err = updateManifest(filepath.Join(outRoot, "abc_c_sources.txt"), cSources)
	if err != nil {
		return result, err
	}
	result.UpdatedCpp, err = updateManifest(filepath.Join(outRoot, "abc_cpp_sources.txt"), cppSources)
	if err != nil {
		return result, err
	}

	if result.UpdatedC || result.UpdatedCpp {
		if err := touch(filepath.Join(outRoot, "CMakeLists.txt")); err != nil {
			return result, err
		}
	}
	return result, nil
}

// updateManifest rewrites path as a semicolon-separated list only when the
// joined list differs from what is already on disk. Comparing the joined
// strings keeps an empty list stable: splitting "" yields [""] and would
// never match an empty slice.
func updateManifest(path string, sources []string) (bool, error) {
	joined := strings.Join(sources, ";")
	if existing, err := os.ReadFile(path); err == nil && string(existing) == joined {
		return false, nil
	}
	if err := os.WriteFile(path, []byte(joined), 0o644); err != nil {
		return false, err
	}
	return true, nil
}

func touch(path string) error {
	now := time.Now()
	if err := os.Chtimes(path, now, now); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return nil
}
