package hooks

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rikushoney/abc-cmake/internal/diag"
	"github.com/rikushoney/abc-cmake/internal/rewrite"
	"github.com/rikushoney/abc-cmake/internal/source"
)

// Patcher ensures a target file contains the include of its generated
// payload, bracketed by the marker lines, without duplicating or
// corrupting hand-written content. Payload files are regenerated
// unconditionally; the target is only appended to when the block is
// absent, and both writes are atomic (temp file + rename) so a crash
// leaves the target either without the block or with the complete block.
type Patcher struct {
	fs         *source.FileSet
	reporter   diag.Reporter
	payloadDir string
	dryRun     bool
}

// NewPatcher creates a patcher writing payloads under payloadDir/hooks.
// With dryRun set it verifies targets but writes nothing.
func NewPatcher(fs *source.FileSet, reporter diag.Reporter, payloadDir string, dryRun bool) *Patcher {
	return &Patcher{
		fs:         fs,
		reporter:   reporter,
		payloadDir: payloadDir,
		dryRun:     dryRun,
	}
}

// Result describes what Apply did to one target.
type Result struct {
	TargetPath  string
	PayloadPath string
	Patched     bool // false: block already present and correct
}

// Apply renders and writes the group's payload, then inserts or verifies
// the include block in the target file. The target filename from the
// directive is resolved relative to the scanned file's directory. Returns
// ok=false after reporting a diagnostic.
func (p *Patcher) Apply(scanned *source.File, group *Group, table *rewrite.Table) (Result, bool) {
	base := filepath.Base(group.TargetFilename)
	payloadPath := filepath.Join(p.payloadDir, "hooks", base)
	targetPath := filepath.Join(filepath.Dir(scanned.Path), group.TargetFilename)
	result := Result{TargetPath: targetPath, PayloadPath: payloadPath}

	payload := RenderGroup(group, table)
	if !p.dryRun {
		if err := writeAtomic(payloadPath, []byte(payload), 0o644); err != nil {
			p.failAt(scanned.ID, 0, diag.PatchInternal, fmt.Sprintf("write payload %s: %v", payloadPath, err))
			return result, false
		}
	}

	targetID, err := p.fs.Load(targetPath)
	if err != nil {
		p.failAt(scanned.ID, 0, diag.PatchInternal, fmt.Sprintf("read target %s: %v", targetPath, err))
		return result, false
	}
	target := p.fs.Get(targetID)

	include := fmt.Sprintf("#include %q", "hooks/"+base)
	scan, ok := p.scanTarget(target, include)
	if !ok {
		return result, false
	}

	switch {
	case scan.headerLine == 0 && scan.footerLine == 0:
		// block absent: append it
		if !p.dryRun {
			if err := appendBlock(target, include); err != nil {
				p.failAt(target.ID, 0, diag.PatchInternal, fmt.Sprintf("patch target %s: %v", targetPath, err))
				return result, false
			}
		}
		result.Patched = true
		return result, true

	case scan.footerLine == 0:
		p.failAt(target.ID, scan.headerLine, diag.PatchUnmatchedHeader, "unmatched hooks header")
		return result, false

	case !scan.includeFound:
		// markers present but the include is missing: the block holds
		// unexpected content, refuse to guess
		p.failAt(target.ID, scan.headerLine, diag.PatchMissingInclude,
			fmt.Sprintf("hooks block does not contain %s", include))
		return result, false

	default:
		// header, footer, and matching include: already correct
		return result, true
	}
}

type targetScan struct {
	headerLine   int // 1-based, 0 = not seen
	footerLine   int
	includeFound bool
}

// scanTarget walks the target line by line, recording marker positions and
// whether the matching include sits inside the bracketed region. Marker
// lines must match byte-exactly. Every other line strictly between the
// markers must be an #include line.
func (p *Patcher) scanTarget(target *source.File, include string) (targetScan, bool) {
	var scan targetScan
	inBlock := false

	lines := strings.Split(string(target.Content), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		// артефакт Split на содержимом с завершающим '\n', не строка файла
		lines = lines[:n-1]
	}
	for i, line := range lines {
		lineNum := i + 1
		switch line {
		case HeaderMarker:
			if scan.headerLine != 0 {
				p.failAt(target.ID, lineNum, diag.PatchDuplicateHeader, "duplicate hooks header")
				return scan, false
			}
			scan.headerLine = lineNum
			inBlock = true

		case FooterMarker:
			switch {
			case scan.headerLine == 0:
				p.failAt(target.ID, lineNum, diag.PatchUnmatchedFooter, "unmatched hooks footer")
				return scan, false
			case scan.footerLine != 0:
				p.failAt(target.ID, lineNum, diag.PatchDuplicateFooter, "duplicate hooks footer")
				return scan, false
			}
			scan.footerLine = lineNum
			inBlock = false

		default:
			if !inBlock {
				continue
			}
			trimmed := strings.TrimSpace(line)
			if !strings.HasPrefix(trimmed, `#include "`) || !strings.HasSuffix(trimmed, `"`) {
				p.failAt(target.ID, lineNum, diag.PatchExpectedInclude,
					fmt.Sprintf("expected #include inside hooks block, found %q", line))
				return scan, false
			}
			if trimmed == include {
				scan.includeFound = true
			}
		}
	}
	return scan, true
}

// appendBlock appends the marker pair and include line, separated from the
// existing content by exactly one newline. The rewrite starts from the raw
// bytes on disk: Load normalizes CRLF/BOM for scanning and diagnostics
// only, and that normalization must never leak into the target file.
func appendBlock(target *source.File, include string) error {
	raw, err := os.ReadFile(target.Path)
	if err != nil {
		return err
	}
	var b strings.Builder
	b.Write(raw)
	if len(raw) > 0 && raw[len(raw)-1] != '\n' {
		b.WriteByte('\n')
	}
	b.WriteString(HeaderMarker)
	b.WriteByte('\n')
	b.WriteString(include)
	b.WriteByte('\n')
	b.WriteString(FooterMarker)
	b.WriteByte('\n')

	mode := os.FileMode(0o644)
	if info, err := os.Stat(target.Path); err == nil {
		mode = info.Mode()
	}
	return writeAtomic(target.Path, []byte(b.String()), mode)
}

// writeAtomic writes via a temp file in the destination directory and an
// atomic rename, creating parent directories as needed.
func writeAtomic(path string, content []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	tmpName := f.Name()
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	// Атомарная замена
	return os.Rename(tmpName, path)
}

// failAt reports a patch diagnostic at the given 1-based line of file.
// Line 0 addresses the whole file.
func (p *Patcher) failAt(file source.FileID, line int, code diag.Code, msg string) {
	if p.reporter == nil {
		return
	}
	span := source.Span{File: file}
	if line > 0 {
		span = lineSpan(p.fs.Get(file), uint32(line))
	}
	p.reporter.Report(code, diag.SevError, span, msg, nil)
}

// lineSpan returns the span covering one 1-based line, excluding the
// newline.
func lineSpan(f *source.File, lineNum uint32) source.Span {
	var start uint32
	if lineNum >= 2 && int(lineNum-2) < len(f.LineIdx) {
		start = f.LineIdx[lineNum-2] + 1
	}
	end := uint32(len(f.Content))
	if int(lineNum-1) < len(f.LineIdx) {
		end = f.LineIdx[lineNum-1]
	}
	if start > end {
		start = end
	}
	return source.Span{File: f.ID, Start: start, End: end}
}
