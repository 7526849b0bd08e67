package location

import (
	"github.com/sprucehealth/gqlast/language/source"
)

// SourceLocation is a 1-based line and column pair as reported to users.
type SourceLocation struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// GetLocation resolves a byte offset into the source to a line and column.
func GetLocation(s *source.Source, offset int) SourceLocation {
	if s == nil {
		return SourceLocation{}
	}
	p := s.Position(offset)
	return SourceLocation{
		Line:   p.Line,
		Column: p.Column,
	}
}
