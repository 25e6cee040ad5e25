package driver

import (
	"github.com/rikushoney/abc-cmake/internal/cdecl"
	"github.com/rikushoney/abc-cmake/internal/diag"
	"github.com/rikushoney/abc-cmake/internal/hooks"
	"github.com/rikushoney/abc-cmake/internal/observ"
	"github.com/rikushoney/abc-cmake/internal/rewrite"
	"github.com/rikushoney/abc-cmake/internal/source"
)

// GenerateOptions configures a patching run.
type GenerateOptions struct {
	PayloadDir     string
	SourceExts     []string
	MaxDiagnostics int
	DryRun         bool
	Timings        bool
	Resolver       cdecl.Resolver // nil: built-in extractor
}

// FileGenerateResult содержит результат обработки одного файла
type FileGenerateResult struct {
	Path       string
	FileID     source.FileID
	Directives int
	Patches    []hooks.Result
	OK         bool
}

// GenerateResult aggregates a patching run. Bag is shared across files;
// spans resolve through FileSet.
type GenerateResult struct {
	FileSet *source.FileSet
	Bag     *diag.Bag
	Files   []FileGenerateResult
	OK      bool
}

// Generate runs the full pipeline over every source file under root:
// parse and validate directives, build the rewrite table, collect hook
// groups, render payloads, and patch targets. Files are processed strictly
// sequentially with fresh directive state per file, because patching
// mutates the tree. The run stops at the first failing file.
func Generate(root string, opts GenerateOptions) (*GenerateResult, error) {
	files, err := listSourceFiles(root, opts.SourceExts)
	if err != nil {
		return nil, err
	}

	fileSet := source.NewFileSetWithBase(root)
	bag := diag.NewBag(opts.MaxDiagnostics)
	result := &GenerateResult{FileSet: fileSet, Bag: bag, OK: true}
	resolver := resolverOrDefault(opts.Resolver)

	timer := observ.NewTimer()
	for _, path := range files {
		phase := timer.Begin(path)
		out := generateFile(fileSet, path, resolver, bag, opts)
		timer.End(phase, "")
		result.Files = append(result.Files, out)
		if !out.OK {
			result.OK = false
			break
		}
	}

	if opts.Timings {
		appendTimingDiagnostic(bag, timingPayload{
			Kind:    "generate",
			Path:    root,
			TotalMS: timer.Report().TotalMS,
			Phases:  timer.Report().Phases,
		})
	}
	return result, nil
}

// generateFile обрабатывает один файл: состояние директив не переживает
// границу файла.
func generateFile(fileSet *source.FileSet, path string, resolver cdecl.Resolver, bag *diag.Bag, opts GenerateOptions) FileGenerateResult {
	out := FileGenerateResult{Path: path}

	fileID, err := fileSet.Load(path)
	if err != nil {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.IOLoadFileError,
			Message:  "failed to load file: " + err.Error(),
			Primary:  source.Span{},
		})
		return out
	}
	out.FileID = fileID
	file := fileSet.Get(fileID)

	directives, ok := parseDirectives(fileSet, file, resolver, bag)
	if !ok {
		return out
	}
	out.Directives = len(directives)

	table := rewrite.Build(directives)
	groups := hooks.Collect(directives)
	if len(groups) == 0 {
		out.OK = true
		return out
	}

	patcher := hooks.NewPatcher(fileSet, diag.BagReporter{Bag: bag}, opts.PayloadDir, opts.DryRun)
	for _, group := range groups {
		patchResult, ok := patcher.Apply(file, group, table)
		out.Patches = append(out.Patches, patchResult)
		if !ok {
			return out
		}
	}

	out.OK = true
	return out
}
