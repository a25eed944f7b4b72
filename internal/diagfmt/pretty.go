// Package diagfmt renders diagnostics and tool dumps for human and
// machine consumers. Pretty output targets terminals, JSON targets
// editors and scripts.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"htmlcheck/internal/diag"
	"htmlcheck/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	codeColor    = color.New(color.Bold)
	gutterColor  = color.New(color.FgBlue)
)

// Pretty renders the bag in a human-readable form. Call bag.Sort()
// first for a stable order. Each diagnostic prints as
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the source line with a ^~~~ underline for the primary
// span, then each note in the same shape.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeHeading(w, fs, opts, d)
		writeSnippet(w, fs, opts, d.Primary, severityColor(d.Severity))
		if opts.ShowNotes {
			for _, note := range d.Notes {
				fmt.Fprintf(w, "  note: %s\n", note.Msg)
				writeSnippet(w, fs, opts, note.Span, infoColor)
			}
		}
	}
}

func writeHeading(w io.Writer, fs *source.FileSet, opts PrettyOpts, d diag.Diagnostic) {
	f := fs.Get(d.Primary.File)
	pos := f.Pos(d.Primary.Start)
	sev := paint(severityColor(d.Severity), opts.Color, d.Severity.String())
	code := paint(codeColor, opts.Color, d.Code.ID())
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		formatPath(f, fs, opts.PathMode), pos.Line, pos.Col, sev, code, d.Message)
}

// writeSnippet prints the span's first source line with a gutter and a
// caret underline, plus opts.Context plain lines on each side.
func writeSnippet(w io.Writer, fs *source.FileSet, opts PrettyOpts, span source.Span, c *color.Color) {
	f := fs.Get(span.File)
	start, end := fs.Resolve(span)
	first, last := start.Line, start.Line
	if ctx := uint32(max(opts.Context, 0)); ctx > 0 {
		if first > ctx {
			first -= ctx
		} else {
			first = 1
		}
		last += ctx
	}

	width := len(fmt.Sprint(last))
	for ln := first; ln <= last; ln++ {
		text := f.GetLine(ln)
		if text == "" && ln != start.Line {
			continue
		}
		gutter := paint(gutterColor, opts.Color, fmt.Sprintf("%*d |", width, ln))
		fmt.Fprintf(w, "%s %s\n", gutter, text)
		if ln != start.Line {
			continue
		}

		// Underline from the start column to the span end, clipped to
		// this line. Underline width is measured in display cells so
		// wide runes stay covered.
		col := int(start.Col) - 1
		if col > len(text) {
			col = len(text)
		}
		spanEnd := len(text)
		if end.Line == start.Line {
			spanEnd = int(end.Col) - 1
			if spanEnd > len(text) {
				spanEnd = len(text)
			}
		}
		pad := runewidth.StringWidth(text[:col])
		cells := runewidth.StringWidth(text[col:max(spanEnd, col)])
		marker := "^"
		if cells > 1 {
			marker += strings.Repeat("~", cells-1)
		}
		empty := paint(gutterColor, opts.Color, fmt.Sprintf("%*s |", width, ""))
		fmt.Fprintf(w, "%s %s%s\n", empty, strings.Repeat(" ", pad), paint(c, opts.Color, marker))
	}
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

func paint(c *color.Color, enabled bool, s string) string {
	if !enabled {
		return s
	}
	c.EnableColor()
	return c.Sprint(s)
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
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
