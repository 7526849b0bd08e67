package gqlerrors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/sprucehealth/gqlast/language/location"
	"github.com/sprucehealth/gqlast/language/source"
)

// printCharCode here is slightly different from lexer.printCharCode()
func printCharCode(code rune) string {
	// print as ASCII for printable range
	if code >= 0x0020 {
		return string(code)
	}
	// Otherwise print the escaped form. e.g. `"\\u0007"`
	return fmt.Sprintf(`\u%04X`, code)
}

func printLine(str string) string {
	var b strings.Builder
	for _, r := range str {
		b.WriteString(printCharCode(r))
	}
	return b.String()
}

// NewSyntaxError returns an error for malformed input at the byte offset
// position, with an excerpt of the surrounding lines.
func NewSyntaxError(s *source.Source, position int, description string) *Error {
	l := location.GetLocation(s, position)
	return NewError(
		ErrorTypeSyntax,
		fmt.Sprintf("Syntax Error %s (%d:%d) %s\n\n%s", s.Name(), l.Line, l.Column, description, highlightSourceAtLocation(s, l)),
		nil,
		s,
		[]int{position},
		nil,
	)
}

func highlightSourceAtLocation(s *source.Source, l location.SourceLocation) string {
	line := l.Line
	prevLineNum := strconv.Itoa(line - 1)
	lineNum := strconv.Itoa(line)
	nextLineNum := strconv.Itoa(line + 1)
	padLen := len(nextLineNum)
	var highlight strings.Builder
	if line >= 2 {
		fmt.Fprintf(&highlight, "%s: %s\n", lpad(padLen, prevLineNum), printLine(s.Line(line-1)))
	}
	current := s.Line(line)
	fmt.Fprintf(&highlight, "%s: %s\n", lpad(padLen, lineNum), printLine(current))
	highlight.WriteString(strings.Repeat(" ", padLen+2+caretOffset(current, l.Column)))
	highlight.WriteString("^\n")
	if line < s.LineCount() {
		fmt.Fprintf(&highlight, "%s: %s\n", lpad(padLen, nextLineNum), printLine(s.Line(line+1)))
	}
	return highlight.String()
}

// caretOffset is the display width of the printed line before column.
func caretOffset(line string, column int) int {
	prefix := line
	n := 0
	for i := range line {
		if n == column-1 {
			prefix = line[:i]
			break
		}
		n++
	}
	return uniseg.StringWidth(printLine(prefix))
}

func lpad(l int, s string) string {
	if len(s) >= l {
		return s
	}
	return strings.Repeat(" ", l-len(s)) + s
}
