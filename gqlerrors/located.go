package gqlerrors

import (
	"fmt"

	"github.com/sprucehealth/gqlast/language/location"
	"github.com/sprucehealth/gqlast/language/source"
)

// NewLocatedError wraps err with the source position it was detected at.
func NewLocatedError(typ ErrorType, err error, s *source.Source, position int) *Error {
	message := err.Error()
	if s != nil {
		l := location.GetLocation(s, position)
		message = fmt.Sprintf("%s (%d:%d) %s", s.Name(), l.Line, l.Column, message)
	}
	return NewError(typ, message, nil, s, []int{position}, err)
}
