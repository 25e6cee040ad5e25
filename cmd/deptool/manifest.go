package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rikushoney/abc-cmake/internal/project"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest [dir]",
	Short: "Regenerate the CMake source manifests from module.make files",
	Long: `Manifest walks the ABC source tree for module.make files, collects their
SRC entries, and rewrites abc_c_sources.txt / abc_cpp_sources.txt when the
lists changed. A change also bumps the CMakeLists.txt timestamp so the
next CMake run reconfigures.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runManifest,
}

func init() {
	manifestCmd.Flags().String("src", "", "ABC source root (default <dir>/../src)")
}

func runManifest(cmd *cobra.Command, args []string) error {
	outRoot := "."
	if len(args) == 1 {
		outRoot = args[0]
	}
	outRoot, err := filepath.Abs(outRoot)
	if err != nil {
		return err
	}

	srcRoot, err := cmd.Flags().GetString("src")
	if err != nil {
		return fmt.Errorf("failed to get src flag: %w", err)
	}
	if srcRoot == "" {
		srcRoot = filepath.Join(filepath.Dir(outRoot), "src")
	}

	result, err := project.GenerateManifests(outRoot, srcRoot)
	if err != nil {
		return fmt.Errorf("manifest generation failed: %w", err)
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if quiet {
		return nil
	}

	out := cmd.OutOrStdout()
	for _, src := range result.UnknownSources {
		fmt.Fprintf(out, "unknown source %q\n", src)
	}
	if result.UpdatedC {
		fmt.Fprintf(out, "updating abc_c_sources.txt (%d sources)\n", result.CSources)
	}
	if result.UpdatedCpp {
		fmt.Fprintf(out, "updating abc_cpp_sources.txt (%d sources)\n", result.CppSources)
	}
	if result.UpdatedC || result.UpdatedCpp {
		fmt.Fprintln(out, "bumping CMakeLists.txt timestamp")
	} else {
		fmt.Fprintln(out, "manifests up to date")
	}
	return nil
}
