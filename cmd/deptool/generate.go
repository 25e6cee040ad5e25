package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rikushoney/abc-cmake/internal/driver"
	"github.com/rikushoney/abc-cmake/internal/project"
)

var generateCmd = &cobra.Command{
	Use:   "generate [flags] <dir|file>",
	Short: "Generate hook payloads and patch target files",
	Long: `Generate runs the full pipeline: parse and validate ABC_MINI directives,
render the hook payload for every target, and splice the payload include
into each target file. Files are processed sequentially; the run stops at
the first failing file.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("payload-dir", "", "directory for generated payloads (default from deptool.toml)")
	generateCmd.Flags().Bool("dry-run", false, "verify targets without writing anything")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	root := args[0]

	payloadDirFlag, err := cmd.Flags().GetString("payload-dir")
	if err != nil {
		return fmt.Errorf("failed to get payload-dir flag: %w", err)
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to get dry-run flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	timings, _ := cmd.Root().PersistentFlags().GetBool("timings")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	payloadDir, exts, err := resolveProjectSettings(root, payloadDirFlag)
	if err != nil {
		return err
	}

	result, err := driver.Generate(root, driver.GenerateOptions{
		PayloadDir:     payloadDir,
		SourceExts:     exts,
		MaxDiagnostics: maxDiagnostics,
		DryRun:         dryRun,
		Timings:        timings,
	})
	if err != nil {
		return fmt.Errorf("generate failed: %w", err)
	}

	printDiagnostics(cmd, result.Bag, result.FileSet)

	if !quiet {
		patched := 0
		for _, f := range result.Files {
			for _, p := range f.Patches {
				if p.Patched {
					patched++
				}
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "processed %d files, patched %d targets\n",
			len(result.Files), patched)
	}

	if !result.OK {
		return errors.New("generate failed, see diagnostics above")
	}
	return nil
}

// resolveProjectSettings объединяет deptool.toml с флагами: флаг
// --payload-dir всегда побеждает манифест.
func resolveProjectSettings(root, payloadDirFlag string) (payloadDir string, exts []string, err error) {
	startDir := root
	if info, statErr := os.Stat(root); statErr == nil && !info.IsDir() {
		startDir = filepath.Dir(root)
	}

	cfg, found, err := project.LoadConfigFrom(startDir)
	if err != nil {
		return "", nil, err
	}

	payloadDir = payloadDirFlag
	if payloadDir == "" {
		if found {
			payloadDir = cfg.PayloadDir
		} else {
			payloadDir = "generated"
		}
	}
	if found {
		exts = cfg.SourceExts
	}
	return payloadDir, exts, nil
}
