package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rikushoney/abc-cmake/internal/diagfmt"
	"github.com/rikushoney/abc-cmake/internal/driver"
)

var scanCmd = &cobra.Command{
	Use:   "scan [flags] <dir|file>",
	Short: "Parse and print ABC_MINI directives without writing anything",
	Long: `Scan parses and validates every directive under the given path and
prints what it found. The tree is never modified, so files are scanned
concurrently and results are cached by content hash.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	scanCmd.Flags().Int("jobs", 0, "maximum concurrent files (0 = all CPUs)")
	scanCmd.Flags().Bool("no-cache", false, "bypass the on-disk directive cache")
	scanCmd.Flags().Bool("drop-cache", false, "discard the on-disk directive cache before scanning")
}

type scanFileJSON struct {
	Path       string                    `json:"path"`
	OK         bool                      `json:"ok"`
	FromCache  bool                      `json:"from_cache,omitempty"`
	Directives []diagfmt.DirectiveOutput `json:"directives"`
}

func runScan(cmd *cobra.Command, args []string) error {
	root := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	jobs, _ := cmd.Flags().GetInt("jobs")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	var cache *driver.DiskCache
	if !noCache {
		// кэш — только оптимизация: при ошибке просто работаем без него
		cache, _ = driver.OpenDiskCache("deptool")
	}
	if dropCache, _ := cmd.Flags().GetBool("drop-cache"); dropCache {
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("failed to drop cache: %w", err)
		}
	}

	_, exts, err := resolveProjectSettings(root, "")
	if err != nil {
		return err
	}

	result, err := driver.Scan(context.Background(), root, driver.ScanOptions{
		SourceExts:     exts,
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
		Cache:          cache,
	})
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	for _, file := range result.Files {
		printDiagnostics(cmd, file.Bag, result.FileSet)
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		for _, file := range result.Files {
			if len(file.Directives) == 0 {
				continue
			}
			if !quiet {
				cached := ""
				if file.FromCache {
					cached = " (cached)"
				}
				display := file.Path
				if f, ok := result.FileSet.GetByPath(file.Path); ok {
					display = f.FormatPath("relative", result.FileSet.BaseDir())
				}
				fmt.Fprintf(out, "%s%s:\n", display, cached)
			}
			diagfmt.FormatDirectivesPretty(out, file.Directives, result.FileSet, diagfmt.PathModeRelative)
		}
	case "json":
		files := make([]scanFileJSON, 0, len(result.Files))
		jsonOpts := diagfmt.JSONOpts{
			PathMode:         diagfmt.PathModeRelative,
			IncludePositions: true,
		}
		for _, file := range result.Files {
			files = append(files, scanFileJSON{
				Path:       file.Path,
				OK:         file.OK,
				FromCache:  file.FromCache,
				Directives: diagfmt.BuildDirectiveOutputs(file.Directives, result.FileSet, jsonOpts),
			})
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(files); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if !result.OK {
		return errors.New("scan found errors, see diagnostics above")
	}
	return nil
}
