package gqlerrors_test

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprucehealth/gqlast/gqlerrors"
	"github.com/sprucehealth/gqlast/language/ast"
	"github.com/sprucehealth/gqlast/language/location"
	"github.com/sprucehealth/gqlast/language/source"
)

func TestSyntaxErrorHighlightsSource(t *testing.T) {
	src := source.New("test", "a\nxé中 z\nc")
	err := gqlerrors.NewSyntaxError(src, 9, "Unexpected z")

	// The caret accounts for the double width character.
	expected := "Syntax Error test (2:5) Unexpected z\n\n" +
		"1: a\n" +
		"2: xé中 z\n" +
		"        ^\n" +
		"3: c\n"
	assert.Equal(t, expected, err.Error())
	assert.Equal(t, gqlerrors.ErrorTypeSyntax, err.Type)
	assert.Equal(t, []int{9}, err.Positions)
	assert.Equal(t, []location.SourceLocation{{Line: 2, Column: 5}}, err.Locations)
}

func TestSyntaxErrorOnFirstAndLastLine(t *testing.T) {
	err := gqlerrors.NewSyntaxError(source.New("", "{"), 1, "Expected Name, found EOF")
	assert.Equal(t, "Syntax Error GraphQL (1:2) Expected Name, found EOF\n\n1: {\n    ^\n", err.Error())
}

func TestSyntaxErrorEscapesControlCharacters(t *testing.T) {
	err := gqlerrors.NewSyntaxError(source.New("", "a\x07b"), 2, "Unexpected b")
	assert.Contains(t, err.Error(), "1: a\\u0007b\n")
	assert.Contains(t, err.Error(), "\n          ^\n")
}

func TestLocatedError(t *testing.T) {
	cause := errors.New(`unknown type "Missing"`)
	src := source.New("schema.graphqls", "type A {\n  b: Missing\n}")
	err := gqlerrors.NewLocatedError(gqlerrors.ErrorTypeInvalidInput, cause, src, 14)

	assert.Equal(t, `schema.graphqls (2:6) unknown type "Missing"`, err.Error())
	assert.Equal(t, gqlerrors.ErrorTypeInvalidInput, err.Type)
	assert.ErrorIs(t, err, cause)
	assert.Same(t, src, err.Source)

	// Without a source the message is left alone.
	err = gqlerrors.NewLocatedError(gqlerrors.ErrorTypeInternal, cause, nil, 3)
	assert.Equal(t, cause.Error(), err.Error())
	assert.Empty(t, err.Locations)
}

func TestNewErrorTakesPositionsFromNodes(t *testing.T) {
	src := source.New("", "query {\n  a\n}")
	field := &ast.Field{Name: "a", Loc: ast.Location{Start: 10, End: 11, Source: src}}
	err := gqlerrors.NewError(gqlerrors.ErrorTypeInvalidInput, "bad field", []ast.Node{field}, nil, nil, nil)

	assert.Same(t, src, err.Source)
	assert.Equal(t, []int{10}, err.Positions)
	assert.Equal(t, []location.SourceLocation{{Line: 2, Column: 3}}, err.Locations)
}

func TestFormatError(t *testing.T) {
	src := source.New("", "{ a")
	syntax := gqlerrors.NewSyntaxError(src, 3, "Expected Name, found EOF")

	cases := []struct {
		name     string
		err      error
		expected gqlerrors.FormattedError
	}{
		{
			name: "structured",
			err:  fmt.Errorf("parsing: %w", syntax),
			expected: gqlerrors.FormattedError{
				Type:      gqlerrors.ErrorTypeSyntax,
				Message:   syntax.Message,
				Locations: []location.SourceLocation{{Line: 1, Column: 4}},
			},
		},
		{
			name: "formatted",
			err:  gqlerrors.FormattedError{Message: "already", Type: gqlerrors.ErrorTypeTypeCollision},
			expected: gqlerrors.FormattedError{
				Message: "already",
				Type:    gqlerrors.ErrorTypeTypeCollision,
			},
		},
		{
			name: "plain",
			err:  io.EOF,
			expected: gqlerrors.FormattedError{
				Type:          gqlerrors.ErrorTypeInternal,
				Message:       "EOF",
				Locations:     []location.SourceLocation{},
				OriginalError: io.EOF,
			},
		},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, gqlerrors.FormatError(c.err))
		})
	}
}

func TestFormatErrors(t *testing.T) {
	formatted := gqlerrors.FormatErrors(io.EOF, gqlerrors.NewFormattedError("boom"))
	require.Len(t, formatted, 2)
	assert.Equal(t, "EOF", formatted[0].Message)
	assert.Equal(t, "boom", formatted[1].Error())
}

func TestFormatPanic(t *testing.T) {
	builderErr := &ast.BuilderError{Node: "type", Name: "Foo", Problem: "built before its kind was set"}
	f := gqlerrors.FormatPanic(builderErr)
	assert.Equal(t, gqlerrors.ErrorTypeInternal, f.Type)
	assert.Equal(t, "panic: "+builderErr.Error(), f.Message)
	assert.NotEmpty(t, f.StackTrace)
	var target *ast.BuilderError
	assert.ErrorAs(t, f.OriginalError, &target)

	f = gqlerrors.FormatPanic("plain value")
	assert.Equal(t, "panic: plain value", f.Message)
	assert.Nil(t, f.OriginalError)
}
