package project

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the parsed [deptool] section of deptool.toml.
type Config struct {
	PayloadDir  string
	SourceExts  []string
	IncludeDirs []string
}

var (
	// ErrDeptoolSectionMissing indicates that [deptool] is missing in the manifest.
	ErrDeptoolSectionMissing = errors.New("missing [deptool]")
	// ErrPayloadDirMissing indicates that [deptool].payload_dir is missing or empty.
	ErrPayloadDirMissing = errors.New("missing [deptool].payload_dir")
)

type configFile struct {
	Deptool struct {
		PayloadDir  string   `toml:"payload_dir"`
		SourceExts  []string `toml:"source_exts"`
		IncludeDirs []string `toml:"include_dirs"`
	} `toml:"deptool"`
}

// LoadConfig parses a deptool.toml manifest.
func LoadConfig(path string) (Config, error) {
	var cfg configFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("deptool") {
		return Config{}, fmt.Errorf("%s: %w", path, ErrDeptoolSectionMissing)
	}
	payloadDir := strings.TrimSpace(cfg.Deptool.PayloadDir)
	if !meta.IsDefined("deptool", "payload_dir") || payloadDir == "" {
		return Config{}, fmt.Errorf("%s: %w", path, ErrPayloadDirMissing)
	}

	out := Config{
		PayloadDir:  payloadDir,
		SourceExts:  cfg.Deptool.SourceExts,
		IncludeDirs: cfg.Deptool.IncludeDirs,
	}
	if len(out.SourceExts) == 0 {
		out.SourceExts = []string{"c", "cpp"}
	}
	return out, nil
}

// LoadConfigFrom discovers and parses the nearest deptool.toml above
// startDir. ok=false means no manifest was found, which is not an error.
func LoadConfigFrom(startDir string) (Config, bool, error) {
	path, ok, err := FindDeptoolToml(startDir)
	if err != nil || !ok {
		return Config{}, ok, err
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return Config{}, true, err
	}
	return cfg, true, nil
}
