package loaders

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/multierr"
)

// maxAnnotatedLineLength is the longest source line quoted in an annotated error
const maxAnnotatedLineLength = 60

// Location is a position in scene source. Line and Col start at 1.
type Location struct {
	Line   int
	Col    int
	Offset int // Byte offset into the source
}

// locate converts a byte offset into a line and column
func locate(source string, offset int) Location {
	if offset > len(source) {
		offset = len(source)
	}
	loc := Location{Line: 1, Col: 1, Offset: offset}
	for _, r := range source[:offset] {
		if r == '\n' {
			loc.Line++
			loc.Col = 1
		} else {
			loc.Col++
		}
	}
	return loc
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Col)
}

// ParseError is a scene error tied to a source location
type ParseError struct {
	Start   Location
	End     *Location // Optional end of the offending span
	Message string
	Line    string // Source text of the start line, empty if unavailable
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Start, e.Message)
}

// Annotated renders the error with the offending source line and a caret marker
func (e *ParseError) Annotated() string {
	if e.Line == "" || len(e.Line) > maxAnnotatedLineLength {
		return fmt.Sprintf("error: %s\nLine: %d, column: %d\n", e.Message, e.Start.Line, e.Start.Col)
	}

	lineNum := fmt.Sprint(e.Start.Line)
	gutter := strings.Repeat(" ", len(lineNum))

	width := 1
	if e.End != nil && e.End.Line == e.Start.Line && e.End.Col > e.Start.Col {
		width = e.End.Col - e.Start.Col
	}
	maxWidth := utf8.RuneCountInString(e.Line) - e.Start.Col + 1
	if width > maxWidth && maxWidth > 0 {
		width = maxWidth
	}

	var b strings.Builder
	fmt.Fprintf(&b, "error: %s\n", e.Message)
	fmt.Fprintf(&b, "%s |\n", gutter)
	fmt.Fprintf(&b, "%s | %s\n", lineNum, e.Line)
	fmt.Fprintf(&b, "%s |%s%s\n", gutter, strings.Repeat(" ", e.Start.Col), strings.Repeat("^", width))
	return b.String()
}

// newParseError builds a located error for the span [start, end) of source.
// end < 0 marks a point error.
func newParseError(source string, start, end int, format string, args ...any) *ParseError {
	e := &ParseError{
		Start:   locate(source, start),
		Message: fmt.Sprintf(format, args...),
	}
	if end >= 0 {
		endLoc := locate(source, end)
		e.End = &endLoc
	}
	e.Line = sourceLine(source, e.Start.Line)
	return e
}

func sourceLine(source string, line int) string {
	lines := strings.Split(source, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[line-1], "\r")
}

// FormatError renders every error combined in err, annotating located ones
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var b strings.Builder
	for _, e := range multierr.Errors(err) {
		var pe *ParseError
		if errors.As(e, &pe) {
			b.WriteString(pe.Annotated())
		} else {
			fmt.Fprintf(&b, "error: %v\n", e)
		}
	}
	return b.String()
}

// ParseErrors returns the located errors combined in err
func ParseErrors(err error) []*ParseError {
	var out []*ParseError
	for _, e := range multierr.Errors(err) {
		var pe *ParseError
		if errors.As(e, &pe) {
			out = append(out, pe)
		}
	}
	return out
}
