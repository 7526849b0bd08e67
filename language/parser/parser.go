package parser

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/sprucehealth/gqlast/gqlerrors"
	"github.com/sprucehealth/gqlast/language/ast"
	"github.com/sprucehealth/gqlast/language/lexer"
	"github.com/sprucehealth/gqlast/language/registry"
	"github.com/sprucehealth/gqlast/language/source"
	"github.com/sprucehealth/gqlast/language/visitor"
)

// DefaultMaxDepth bounds the nesting of selection sets, list and object
// values and type modifiers when ParseOptions.MaxDepth is not set.
const DefaultMaxDepth = 64

type ParseOptions struct {
	// NoSource leaves Location.Source nil on every node.
	NoSource bool
	MaxDepth int
	// Logger receives a trace entry per production. Nothing is logged
	// when it is nil.
	Logger logrus.Ext1FieldLogger
}

// ParseParams holds the input of a parse. Source is a string, []byte,
// *source.Source or io.Reader.
type ParseParams struct {
	Source  any
	Options ParseOptions
}

type Parser struct {
	Lexer   *lexer.Lexer
	Source  *source.Source
	Options ParseOptions

	log      logrus.Ext1FieldLogger
	tracing  bool
	prevEnd  int
	tok      lexer.Token
	depth    visitor.Context
	registry *registry.Registry
	usages   map[string]int // first reference offset of each type name
}

var discardLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

// ParseSchema parses a type system document. Every named type reference is
// resolved to the single declared instance, and interfaces list the object
// types implementing them.
func ParseSchema(p ParseParams) (schema *ast.Schema, err error) {
	defer recoverBuilderError(&err)
	parser, err := makeParser(p)
	if err != nil {
		return nil, err
	}
	return parser.parseSchemaDocument()
}

// ParseQuery parses an executable document of operations and fragments.
func ParseQuery(p ParseParams) (doc *ast.Document, err error) {
	defer recoverBuilderError(&err)
	parser, err := makeParser(p)
	if err != nil {
		return nil, err
	}
	return parser.parseQueryDocument()
}

// ParseDocument parses either kind of document, choosing by the first
// definition: operations, fragments and bare selection sets make a query
// document, anything else a schema. An empty body yields an empty
// *ast.Document.
func ParseDocument(p ParseParams) (node ast.Node, err error) {
	defer recoverBuilderError(&err)
	parser, err := makeParser(p)
	if err != nil {
		return nil, err
	}
	if parser.isQueryDocument() {
		doc, err := parser.parseQueryDocument()
		if err != nil {
			return nil, err
		}
		return doc, nil
	}
	schema, err := parser.parseSchemaDocument()
	if err != nil {
		return nil, err
	}
	return schema, nil
}

func (p *Parser) isQueryDocument() bool {
	switch p.tok.Kind {
	case lexer.EOF, lexer.BRACE_L:
		return true
	case lexer.NAME:
		switch p.tok.Value {
		case "query", "mutation", "subscription", "fragment":
			return true
		}
	}
	return false
}

// recoverBuilderError turns a builder contract violation into an INTERNAL
// error. Other panics are not recovered.
func recoverBuilderError(err *error) {
	r := recover()
	if r == nil {
		return
	}
	be, ok := r.(*ast.BuilderError)
	if !ok {
		panic(r)
	}
	*err = gqlerrors.NewError(gqlerrors.ErrorTypeInternal, be.Error(), nil, nil, nil, be)
}

func resolveSource(src any) (*source.Source, error) {
	switch s := src.(type) {
	case *source.Source:
		return s, nil
	case string:
		return source.New("", s), nil
	case []byte:
		return source.New("", string(s)), nil
	case nil:
		return source.New("", ""), nil
	case io.Reader:
		b, err := io.ReadAll(s)
		if err != nil {
			return nil, gqlerrors.NewError(gqlerrors.ErrorTypeInvalidInput, "cannot read source: "+err.Error(), nil, nil, nil, err)
		}
		return source.New("", string(b)), nil
	}
	return nil, gqlerrors.NewError(gqlerrors.ErrorTypeInvalidInput, fmt.Sprintf("unsupported source type %T", src), nil, nil, nil, nil)
}

func makeParser(params ParseParams) (*Parser, error) {
	s, err := resolveSource(params.Source)
	if err != nil {
		return nil, err
	}
	opts := params.Options
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	p := &Parser{
		Lexer:    lexer.New(s),
		Source:   s,
		Options:  opts,
		log:      opts.Logger,
		registry: registry.New(),
		usages:   make(map[string]int),
	}
	if p.log == nil {
		p.log = discardLogger
	}
	p.tracing = traceEnabled(p.log)
	return p, p.next()
}

func traceEnabled(l logrus.Ext1FieldLogger) bool {
	switch l := l.(type) {
	case *logrus.Logger:
		return l.IsLevelEnabled(logrus.TraceLevel)
	case *logrus.Entry:
		return l.Logger.IsLevelEnabled(logrus.TraceLevel)
	}
	return true
}

// trace logs the production about to be parsed at the current token.
func (p *Parser) trace(production string) {
	if !p.tracing {
		return
	}
	pos := p.Source.Position(p.tok.Start)
	p.log.WithFields(logrus.Fields{
		"prefix":     "parser",
		"source":     p.Source.Name(),
		"production": production,
		"line":       pos.Line,
		"column":     pos.Column,
		"token":      lexer.GetTokenDesc(p.tok),
	}).Trace("parsing")
}

// Returns a location object, used to identify the place in
// the source that created a given parsed object.
func (p *Parser) loc(start int) ast.Location {
	if p.Options.NoSource {
		return ast.Location{
			Start: start,
			End:   p.prevEnd,
		}
	}
	return ast.Location{
		Start:  start,
		End:    p.prevEnd,
		Source: p.Source,
	}
}

// Moves the internal parser object to the next lexed token.
func (p *Parser) advance() error {
	p.prevEnd = p.tok.End
	return p.next()
}

// next reads the next token that is not a comment.
func (p *Parser) next() error {
	for {
		var err error
		p.tok, err = p.Lexer.NextToken()
		if err != nil {
			return err
		}
		if p.tok.Kind != lexer.COMMENT {
			return nil
		}
	}
}

// Determines if the next token is of a given kind
func (p *Parser) peek(kind lexer.Kind) bool {
	return p.tok.Kind == kind
}

// peekKeyword reports whether the next token is the given name.
func (p *Parser) peekKeyword(value string) bool {
	return p.tok.Kind == lexer.NAME && p.tok.Value == value
}

// If the next token is of the given kind, return true after advancing
// the parser. Otherwise, do not change the parser state and return false.
func (p *Parser) skip(kind lexer.Kind) (bool, error) {
	if p.tok.Kind == kind {
		return true, p.advance()
	}
	return false, nil
}

// If the next token is of the given kind, return that token after advancing
// the parser. Otherwise, do not change the parser state and return error.
func (p *Parser) expect(kind lexer.Kind) (lexer.Token, error) {
	token := p.tok
	if token.Kind == kind {
		return token, p.advance()
	}
	descp := fmt.Sprintf("Expected %s, found %s", lexer.GetTokenKindDesc(kind), lexer.GetTokenDesc(token))
	return token, gqlerrors.NewSyntaxError(p.Source, token.Start, descp)
}

// If the next token is a keyword with the given value, return that token after
// advancing the parser. Otherwise, do not change the parser state and return error.
func (p *Parser) expectKeyWord(value string) (lexer.Token, error) {
	token := p.tok
	if token.Kind == lexer.NAME && token.Value == value {
		return token, p.advance()
	}
	descp := fmt.Sprintf("Expected %q, found %s", value, lexer.GetTokenDesc(token))
	return token, gqlerrors.NewSyntaxError(p.Source, token.Start, descp)
}

// Helper function for creating an error when an unexpected lexed token
// is encountered.
func (p *Parser) unexpected(atToken lexer.Token) error {
	token := atToken
	if (token == lexer.Token{}) {
		token = p.tok
	}
	description := fmt.Sprintf("Unexpected %v", lexer.GetTokenDesc(token))
	return gqlerrors.NewSyntaxError(p.Source, token.Start, description)
}

// invalid reports a well formed construct that cannot be accepted, such as
// a reference to an undeclared type.
func (p *Parser) invalid(position int, format string, args ...any) error {
	return gqlerrors.NewLocatedError(gqlerrors.ErrorTypeInvalidInput, fmt.Errorf(format, args...), p.Source, position)
}

// collision reports a name declared twice.
func (p *Parser) collision(position int, err error) error {
	return gqlerrors.NewLocatedError(gqlerrors.ErrorTypeTypeCollision, err, p.Source, position)
}

// enter opens a nesting level at the current token and fails once the
// nesting is deeper than MaxDepth. Every successful enter is paired with
// leave.
func (p *Parser) enter() error {
	p.depth.Enter(visitor.Hooks{})
	if p.depth.Level() > p.Options.MaxDepth {
		return gqlerrors.NewSyntaxError(p.Source, p.tok.Start,
			fmt.Sprintf("Document nesting exceeds the maximum depth of %d", p.Options.MaxDepth))
	}
	return nil
}

func (p *Parser) leave() {
	p.depth.Leave()
}

// anyOf returns a possibly empty list of parse nodes, determined by
// the parseFn. This list begins with a lex token of openKind
// and ends with a lex token of closeKind. Advances the parser
// to the next lex token after the closing token.
func anyOf[T any](p *Parser, openKind lexer.Kind, parseFn func() (T, error), closeKind lexer.Kind) ([]T, error) {
	if _, err := p.expect(openKind); err != nil {
		return nil, err
	}
	var nodes []T
	for {
		if skp, err := p.skip(closeKind); err != nil {
			return nil, err
		} else if skp {
			break
		}
		n, err := parseFn()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// many returns a non-empty list of parse nodes, determined by
// the parseFn. This list begins with a lex token of openKind
// and ends with a lex token of closeKind. Advances the parser
// to the next lex token after the closing token.
func many[T any](p *Parser, openKind lexer.Kind, parseFn func() (T, error), closeKind lexer.Kind) ([]T, error) {
	if _, err := p.expect(openKind); err != nil {
		return nil, err
	}
	var nodes []T
	for {
		n, err := parseFn()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
		if skp, err := p.skip(closeKind); err != nil {
			return nil, err
		} else if skp {
			break
		}
	}
	return nodes, nil
}
