// Package diag renders user-facing error reports: a path:line header
// followed by the offending source line and a caret underline of the
// reported span. Output is best-effort; a file that cannot be read
// degrades to the header alone.
package diag

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// placeholderPath substitutes for an absent file path in the header.
const placeholderPath = "<file>"

// Span is a half-open region of source text in 1-based line/column
// coordinates. Spans crossing multiple lines are underlined only on the
// first line.
type Span struct {
	FirstLine int
	FirstCol  int
	LastLine  int
	LastCol   int
}

// Reporter writes diagnostics to Out, coloring the header and underline
// when Color is set. A zero Reporter writes plain text to stderr.
type Reporter struct {
	Out   io.Writer
	Color bool
}

// Report prints a "path:line: message" header, then re-opens the file and
// reproduces the source line spanning span.FirstLine with a caret
// underline from FirstCol to LastCol. Missing or unreadable files emit
// the header only; an empty path substitutes a placeholder.
func (r *Reporter) Report(msg, path string, span Span) {
	out := r.Out
	if out == nil {
		out = os.Stderr
	}

	if path == "" {
		r.writeHeader(out, placeholderPath, span.FirstLine, msg)

		return
	}

	r.writeHeader(out, path, span.FirstLine, msg)

	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	line, ok := sourceLine(data, span.FirstLine)
	if !ok {
		return
	}

	fmt.Fprintln(out, line)
	r.writeUnderline(out, underline(line, span))
}

func (r *Reporter) writeHeader(out io.Writer, path string, line int, msg string) {
	header := fmt.Sprintf("%s:%d: %s", path, line, msg)
	if r.Color {
		header = color.New(color.Bold).Sprint(header)
	}

	fmt.Fprintln(out, header)
}

func (r *Reporter) writeUnderline(out io.Writer, marks string) {
	if r.Color {
		marks = color.New(color.FgRed).Sprint(marks)
	}

	fmt.Fprintln(out, marks)
}

// sourceLine extracts the 1-based line from raw file contents.
func sourceLine(data []byte, line int) (string, bool) {
	if line < 1 {
		return "", false
	}

	lines := strings.Split(string(data), "\n")
	if line > len(lines) {
		return "", false
	}

	return lines[line-1], true
}

// underline builds the caret line for the span over the given source
// line. Tabs in the source are reproduced as tabs so the marks line up
// regardless of tab width. A span that continues past the first line is
// clamped to that line's end.
func underline(line string, span Span) string {
	firstCol := span.FirstCol
	if firstCol < 1 {
		firstCol = 1
	}

	lastCol := span.LastCol
	if span.LastLine > span.FirstLine || lastCol > len(line) {
		lastCol = len(line) - 1
	}

	var buf strings.Builder

	for col := 1; col < firstCol; col++ {
		buf.WriteByte(padByte(line, col, ' '))
	}

	for col := firstCol; col <= lastCol; col++ {
		buf.WriteByte(padByte(line, col, '^'))
	}

	return buf.String()
}

// padByte keeps source tabs, substituting mark for any other character.
func padByte(line string, col int, mark byte) byte {
	if col-1 < len(line) && line[col-1] == '\t' {
		return '\t'
	}

	return mark
}
