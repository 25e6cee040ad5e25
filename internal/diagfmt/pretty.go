package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/rikushoney/abc-cmake/internal/diag"
	"github.com/rikushoney/abc-cmake/internal/source"
)

var (
	errorColor = color.New(color.FgRed, color.Bold)
	warnColor  = color.New(color.FgYellow, color.Bold)
	infoColor  = color.New(color.FgCyan)
	caretColor = color.New(color.FgGreen, color.Bold)
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
// Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeHeading(w, fs, d.Severity, d.Code, d.Message, d.Primary, opts)
		writeContext(w, fs, d.Primary, opts)
		if opts.ShowNotes {
			for _, note := range d.Notes {
				writeNote(w, fs, note, opts)
			}
		}
	}
}

func writeHeading(w io.Writer, fs *source.FileSet, sev diag.Severity, code diag.Code, msg string, span source.Span, opts PrettyOpts) {
	sevText := sev.String()
	if opts.Color {
		sevText = severityColor(sev).Sprint(sevText)
	}
	if span == (source.Span{}) {
		fmt.Fprintf(w, "%s %s: %s\n", sevText, code.ID(), msg)
		return
	}
	start, _ := fs.Resolve(span)
	path := formatPath(fs, span.File, opts.PathMode)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, start.Line, start.Col, sevText, code.ID(), msg)
}

// writeContext печатает строку исходника и подчёркивание ^~~~ по span.
func writeContext(w io.Writer, fs *source.FileSet, span source.Span, opts PrettyOpts) {
	if span == (source.Span{}) {
		return
	}
	start, _ := fs.Resolve(span)
	line := fs.Get(span.File).GetLine(start.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "  %s\n", line)

	width := int(span.Len())
	remaining := len(line) - int(start.Col) + 1
	if width > remaining {
		width = remaining
	}
	if width < 1 {
		width = 1
	}
	caret := "^" + strings.Repeat("~", width-1)
	if opts.Color {
		caret = caretColor.Sprint(caret)
	}
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", int(start.Col)-1), caret)
}

func writeNote(w io.Writer, fs *source.FileSet, note diag.Note, opts PrettyOpts) {
	if note.Span == (source.Span{}) {
		fmt.Fprintf(w, "  note: %s\n", note.Msg)
		return
	}
	start, _ := fs.Resolve(note.Span)
	path := formatPath(fs, note.Span.File, opts.PathMode)
	fmt.Fprintf(w, "  note: %s:%d:%d: %s\n", path, start.Line, start.Col, note.Msg)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warnColor
	default:
		return infoColor
	}
}

func formatPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	f := fs.Get(id)
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}
