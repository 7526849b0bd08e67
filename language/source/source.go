package source

import (
	"sort"
	"unicode/utf8"
)

// DefaultName is used for sources created from bare strings.
const DefaultName = "GraphQL"

// Source is a named document body handed to the lexer.
type Source struct {
	body       string
	name       string
	linesIndex []int // byte offset of the start of each line, line n starts at linesIndex[n-1]
}

// Position is a resolved location in the source.
type Position struct {
	Offset int // byte offset, starting at 0
	Line   int // line number, starting at 1
	Column int // column number, starting at 1 (rune count)
}

// New initializes a new source with the provided name and body.
func New(name, body string) *Source {
	if name == "" {
		name = DefaultName
	}
	return &Source{
		name: name,
		body: body,
	}
}

// Name returns the name of the source
func (s *Source) Name() string {
	return s.name
}

// Body returns the body of the source
func (s *Source) Body() string {
	return s.body
}

// Line returns the text of the 1-based line without its terminator.
func (s *Source) Line(line int) string {
	s.index()
	if line < 1 || line > len(s.linesIndex) {
		return ""
	}
	start := s.linesIndex[line-1]
	end := len(s.body)
	if line < len(s.linesIndex) {
		end = s.linesIndex[line] - 1
	}
	if end > start && s.body[end-1] == '\r' {
		end--
	}
	return s.body[start:end]
}

// LineCount returns the number of lines in the body.
func (s *Source) LineCount() int {
	s.index()
	return len(s.linesIndex)
}

// Position returns the line:column position for the provided byte offset.
func (s *Source) Position(offset int) Position {
	s.index()
	if offset > len(s.body) {
		offset = len(s.body)
	}
	if offset < 0 {
		offset = 0
	}
	line := sort.SearchInts(s.linesIndex, offset+1)
	lineStart := s.linesIndex[line-1]
	return Position{
		Offset: offset,
		Line:   line,
		Column: utf8.RuneCountInString(s.body[lineStart:offset]) + 1,
	}
}

func (s *Source) index() {
	// Lazily generate line index
	if len(s.linesIndex) == 0 {
		s.linesIndex = stringToLineIndex(s.body)
	}
}

func stringToLineIndex(s string) []int {
	index := []int{0}
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			// Record start of next line
			index = append(index, i+1)
		}
	}
	return index
}
