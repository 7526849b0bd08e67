package gqlerrors

import (
	"github.com/sprucehealth/gqlast/language/ast"
	"github.com/sprucehealth/gqlast/language/location"
	"github.com/sprucehealth/gqlast/language/source"
)

// ErrorType is a category type for an error.
type ErrorType string

// Well defined error types
const (
	ErrorTypeInternal      ErrorType = "INTERNAL"
	ErrorTypeInvalidInput  ErrorType = "INVALID_INPUT"
	ErrorTypeSyntax        ErrorType = "SYNTAX"
	ErrorTypeTypeCollision ErrorType = "TYPE_COLLISION"
)

// Error is a structured error.
type Error struct {
	Type          ErrorType
	Message       string
	Nodes         []ast.Node
	Source        *source.Source
	Positions     []int
	Locations     []location.SourceLocation
	OriginalError error
}

// Error implements Golang's built-in `error` interface
func (g *Error) Error() string {
	return g.Message
}

// Unwrap exposes the wrapped error to errors.Is and errors.As.
func (g *Error) Unwrap() error {
	return g.OriginalError
}

// NewError returns a new structured error. When no source or positions are
// given they are taken from the nodes.
func NewError(typ ErrorType, message string, nodes []ast.Node, src *source.Source, positions []int, origError error) *Error {
	if src == nil {
		for _, node := range nodes {
			if s := node.GetLoc().Source; s != nil {
				src = s
				break
			}
		}
	}
	if len(positions) == 0 {
		for _, node := range nodes {
			positions = append(positions, node.GetLoc().Start)
		}
	}
	locations := make([]location.SourceLocation, 0, len(positions))
	if src != nil {
		for _, pos := range positions {
			locations = append(locations, location.GetLocation(src, pos))
		}
	}
	return &Error{
		Type:          typ,
		Message:       message,
		Nodes:         nodes,
		Source:        src,
		Positions:     positions,
		Locations:     locations,
		OriginalError: origError,
	}
}
