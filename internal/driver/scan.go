package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/rikushoney/abc-cmake/internal/cdecl"
	"github.com/rikushoney/abc-cmake/internal/diag"
	"github.com/rikushoney/abc-cmake/internal/directive"
	"github.com/rikushoney/abc-cmake/internal/source"
)

// ScanOptions configures a read-only directive scan.
type ScanOptions struct {
	SourceExts     []string
	MaxDiagnostics int
	Jobs           int            // <=0: GOMAXPROCS
	Resolver       cdecl.Resolver // nil: built-in extractor
	Cache          *DiskCache     // nil: no caching
}

// FileScanResult содержит результат сканирования одного файла
type FileScanResult struct {
	Path       string
	FileID     source.FileID
	Directives []directive.Directive
	Bag        *diag.Bag
	FromCache  bool
	OK         bool
}

// ScanResult aggregates the per-file scans. OK is false if any file failed.
type ScanResult struct {
	FileSet *source.FileSet
	Files   []FileScanResult
	OK      bool
}

// Scan parses and validates directives in every source file under root
// without touching anything on disk. Files run concurrently: the scan never
// mutates the tree, so the sequential-patching rule does not apply here.
// All files are reported even when some fail.
func Scan(ctx context.Context, root string, opts ScanOptions) (*ScanResult, error) {
	files, err := listSourceFiles(root, opts.SourceExts)
	if err != nil {
		return nil, err
	}

	fileSet := source.NewFileSetWithBase(root)
	if len(files) == 0 {
		return &ScanResult{FileSet: fileSet, OK: true}, nil
	}

	// Предзагружаем все файлы: FileSet не потокобезопасен
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	resolver := resolverOrDefault(opts.Resolver)

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]FileScanResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			bag := diag.NewBag(opts.MaxDiagnostics)

			if loadErr, hadError := loadErrors[path]; hadError {
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFileError,
					Message:  "failed to load file: " + loadErr.Error(),
					Primary:  source.Span{},
				})
				results[i] = FileScanResult{Path: path, Bag: bag}
				return nil
			}

			fileID := fileIDs[path]
			file := fileSet.Get(fileID)

			if cached, ok := opts.Cache.Lookup(file.Hash); ok {
				results[i] = FileScanResult{
					Path:       path,
					FileID:     fileID,
					Directives: cached,
					Bag:        bag,
					FromCache:  true,
					OK:         true,
				}
				return nil
			}

			directives, ok := parseDirectives(fileSet, file, resolver, bag)
			if ok {
				opts.Cache.Store(file.Hash, path, directives)
			}
			results[i] = FileScanResult{
				Path:       path,
				FileID:     fileID,
				Directives: directives,
				Bag:        bag,
				OK:         ok,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &ScanResult{FileSet: fileSet, Files: results, OK: true}
	for i := range results {
		if !results[i].OK {
			result.OK = false
		}
	}
	return result, nil
}
