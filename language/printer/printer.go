// Package printer renders schema and query ASTs as GraphQL source text.
package printer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sprucehealth/gqlast/language/ast"
	"github.com/sprucehealth/gqlast/language/visitor"
)

// Options controls the layout of the printed text. Empty Indent and Newline
// take the defaults. Compact output has no indentation or line breaks and
// only the punctuation needed to read it back.
type Options struct {
	Indent  string `yaml:"indent"`
	Newline string `yaml:"newline"`
	Compact bool   `yaml:"compact"`
}

const (
	DefaultIndent  = "  "
	DefaultNewline = "\n"
)

// DefaultOptions returns the pretty layout: two space indentation and "\n"
// line breaks.
func DefaultOptions() Options {
	return Options{Indent: DefaultIndent, Newline: DefaultNewline}
}

func (o Options) normalize() Options {
	if o.Compact {
		return Options{Compact: true}
	}
	if o.Indent == "" {
		o.Indent = DefaultIndent
	}
	if o.Newline == "" {
		o.Newline = DefaultNewline
	}
	return o
}

type printer struct {
	opts    Options
	buf     strings.Builder
	ctx     visitor.Context
	depth   int
	noBreak int // line breaks are suppressed while positive
}

// Print renders any AST node. Schemas and documents end with a line break
// in pretty mode.
func Print(node ast.Node, opts Options) string {
	p := &printer{opts: opts.normalize()}
	p.node(node)
	return p.buf.String()
}

// PrintSchema renders a schema: the schema block when root types are set,
// then the types and the directive definitions in declaration order.
func PrintSchema(schema *ast.Schema, opts Options) string {
	return Print(schema, opts)
}

// PrintDocument renders the operations of a document followed by its
// fragments.
func PrintDocument(doc *ast.Document, opts Options) string {
	return Print(doc, opts)
}

func (p *printer) write(s string) {
	p.buf.WriteString(s)
}

// space writes s in pretty mode only.
func (p *printer) space(s string) {
	if !p.opts.Compact {
		p.buf.WriteString(s)
	}
}

// newline breaks the line and indents to the current depth.
func (p *printer) newline() {
	if p.opts.Compact || p.noBreak > 0 {
		return
	}
	p.buf.WriteString(p.opts.Newline)
	for i := 0; i < p.depth; i++ {
		p.buf.WriteString(p.opts.Indent)
	}
}

// each prints items inside a new traversal level.
func each[T any](p *printer, items []T, hooks visitor.Hooks, fn func(T)) {
	visitor.Sequence(&p.ctx, items, hooks, func(_ int, item T) bool {
		fn(item)
		return true
	})
}

// block is the punctuation of a braced body with one item per line.
func (p *printer) block() visitor.Hooks {
	if p.opts.Compact {
		return visitor.Hooks{
			Prologue:  func() { p.write("{") },
			Separator: func() { p.write(",") },
			Epilogue:  func() { p.write("}") },
		}
	}
	return visitor.Hooks{
		Prologue: func() {
			p.write("{")
			p.depth++
			p.newline()
		},
		Separator: p.newline,
		Epilogue: func() {
			p.depth--
			p.newline()
			p.write("}")
		},
	}
}

// inlineBlock is the punctuation of a selection set holding a single leaf.
func (p *printer) inlineBlock() visitor.Hooks {
	if p.opts.Compact {
		return p.block()
	}
	return visitor.Hooks{
		Prologue: func() { p.write("{ ") },
		Epilogue: func() { p.write(" }") },
	}
}

// parens is the punctuation of argument and variable lists. Line breaks
// stay off until the closing parenthesis.
func (p *printer) parens() visitor.Hooks {
	sep := ", "
	if p.opts.Compact {
		sep = ","
	}
	return visitor.Hooks{
		Prologue: func() {
			p.noBreak++
			p.write("(")
		},
		Separator: func() { p.write(sep) },
		Epilogue: func() {
			p.write(")")
			p.noBreak--
		},
	}
}

// definitions separates n top level definitions with a blank line. Pretty
// output ends with a line break unless it is empty.
func (p *printer) definitions(n int) visitor.Hooks {
	if p.opts.Compact {
		return visitor.Hooks{Separator: func() { p.write(",") }}
	}
	h := visitor.Hooks{
		Separator: func() {
			p.write(p.opts.Newline)
			p.write(p.opts.Newline)
		},
	}
	if n > 0 {
		h.Epilogue = func() { p.write(p.opts.Newline) }
	}
	return h
}

func (p *printer) separated(sep string) visitor.Hooks {
	return visitor.Hooks{Separator: func() { p.write(sep) }}
}

func (p *printer) node(n ast.Node) {
	switch n := n.(type) {
	case *ast.Schema:
		p.schema(n)
	case *ast.ScalarType, *ast.ObjectType, *ast.InterfaceType, *ast.UnionType, *ast.EnumType, *ast.InputObjectType:
		p.typeDefinition(n.(ast.Type))
	case *ast.ListType, *ast.NonNullType:
		p.write(n.(ast.Type).String())
	case *ast.FieldDefinition:
		p.fieldDefinition(n)
	case *ast.InputValue:
		p.inputValue(n)
	case *ast.EnumValue:
		p.enumValue(n)
	case *ast.DirectiveDefinition:
		p.directiveDefinition(n)
	case *ast.Document:
		p.document(n)
	case *ast.OperationDefinition:
		p.operation(n)
	case *ast.FragmentDefinition:
		p.fragmentDefinition(n)
	case *ast.VariableDefinition:
		p.variableDefinition(n)
	case ast.Selection:
		p.selection(n)
	case *ast.Argument:
		p.argument(n)
	case *ast.Directive:
		p.directive(n)
	case *ast.Value:
		p.write(n.String())
	case nil:
	default:
		p.write(fmt.Sprintf("[Unknown node type %T]", n))
	}
}

/* Type system */

func (p *printer) schema(s *ast.Schema) {
	var defs []func()
	if s.HasRoots() {
		defs = append(defs, func() { p.schemaDefinition(s) })
	}
	for _, t := range s.Types {
		t := t
		defs = append(defs, func() { p.typeDefinition(t) })
	}
	for _, d := range s.Directives {
		d := d
		defs = append(defs, func() { p.directiveDefinition(d) })
	}
	each(p, defs, p.definitions(len(defs)), func(fn func()) { fn() })
}

type rootOperation struct {
	operation ast.OperationType
	typ       ast.Type
}

func (p *printer) schemaDefinition(s *ast.Schema) {
	var roots []rootOperation
	for _, r := range []rootOperation{
		{ast.OperationQuery, s.QueryType},
		{ast.OperationMutation, s.MutationType},
		{ast.OperationSubscription, s.SubscriptionType},
	} {
		if r.typ != nil {
			roots = append(roots, r)
		}
	}
	p.write("schema")
	p.space(" ")
	each(p, roots, p.block(), func(r rootOperation) {
		p.write(string(r.operation) + ":")
		p.space(" ")
		p.write(r.typ.TypeName())
	})
}

func (p *printer) typeDefinition(t ast.Type) {
	p.description(t.GetDescription())
	switch t := t.(type) {
	case *ast.ScalarType:
		p.write("scalar " + t.Name)
		p.directives(t.Directives)
	case *ast.ObjectType:
		p.write("type " + t.Name)
		if len(t.Interfaces) != 0 {
			p.write(" implements ")
			sep := " & "
			if p.opts.Compact {
				sep = "&"
			}
			each(p, t.Interfaces, p.separated(sep), func(i *ast.InterfaceType) {
				p.write(i.Name)
			})
		}
		p.directives(t.Directives)
		p.body(len(t.Fields), func() {
			each(p, t.Fields, p.block(), p.fieldDefinition)
		})
	case *ast.InterfaceType:
		p.write("interface " + t.Name)
		p.directives(t.Directives)
		p.body(len(t.Fields), func() {
			each(p, t.Fields, p.block(), p.fieldDefinition)
		})
	case *ast.UnionType:
		p.write("union " + t.Name)
		p.directives(t.Directives)
		if len(t.PossibleTypes) != 0 {
			sep := " | "
			if p.opts.Compact {
				sep = "|"
			}
			p.space(" ")
			p.write("=")
			p.space(" ")
			each(p, t.PossibleTypes, p.separated(sep), func(m ast.Type) {
				p.write(m.TypeName())
			})
		}
	case *ast.EnumType:
		p.write("enum " + t.Name)
		p.directives(t.Directives)
		p.body(len(t.Values), func() {
			each(p, t.Values, p.block(), p.enumValue)
		})
	case *ast.InputObjectType:
		p.write("input " + t.Name)
		p.directives(t.Directives)
		p.body(len(t.Fields), func() {
			each(p, t.Fields, p.block(), p.inputValue)
		})
	default:
		p.write(t.String())
	}
}

// body prints a braced body after a definition header. Empty bodies are
// left out.
func (p *printer) body(n int, fn func()) {
	if n == 0 {
		return
	}
	p.space(" ")
	fn()
}

func (p *printer) fieldDefinition(f *ast.FieldDefinition) {
	p.description(f.Description)
	p.write(f.Name)
	p.argumentDefinitions(f.Arguments)
	p.write(":")
	p.space(" ")
	p.write(f.Type.String())
	p.directives(withDeprecation(f.Directives, f.IsDeprecated, f.DeprecationReason))
}

func (p *printer) argumentDefinitions(args []*ast.InputValue) {
	if len(args) == 0 {
		return
	}
	each(p, args, p.parens(), p.inputValue)
}

func (p *printer) inputValue(v *ast.InputValue) {
	p.description(v.Description)
	p.write(v.Name + ":")
	p.space(" ")
	p.write(v.Type.String())
	if v.DefaultValue != nil {
		p.space(" ")
		p.write("=")
		p.space(" ")
		p.write(v.DefaultValue.String())
	}
	p.directives(v.Directives)
}

func (p *printer) enumValue(v *ast.EnumValue) {
	p.description(v.Description)
	p.write(v.Name)
	p.directives(withDeprecation(v.Directives, v.IsDeprecated, v.DeprecationReason))
}

func (p *printer) directiveDefinition(d *ast.DirectiveDefinition) {
	p.description(d.Description)
	p.write("directive @" + d.Name)
	p.argumentDefinitions(d.Arguments)
	if len(d.Arguments) == 0 || !p.opts.Compact {
		p.write(" ")
	}
	p.write("on ")
	sep := " | "
	if p.opts.Compact {
		sep = "|"
	}
	each(p, d.Locations, p.separated(sep), p.write)
}

// description prints a multi-line text as a block string on its own lines
// when it survives the block string indentation rules, and a quoted string
// otherwise.
func (p *printer) description(d string) {
	if d == "" {
		return
	}
	if p.opts.Compact {
		p.write(quote(d))
		return
	}
	if p.noBreak > 0 {
		p.write(quote(d) + " ")
		return
	}
	if !strings.Contains(d, "\n") || !blockStringSafe(d, p.opts.Indent) {
		p.write(quote(d))
		p.newline()
		return
	}
	p.write(`"""`)
	for _, line := range strings.Split(d, "\n") {
		if line == "" {
			p.write(p.opts.Newline)
			continue
		}
		p.newline()
		p.write(strings.ReplaceAll(line, `"""`, `\"""`))
	}
	p.newline()
	p.write(`"""`)
	p.newline()
}

// withDeprecation adds a @deprecated usage for nodes marked deprecated
// without one.
func withDeprecation(directives []*ast.Directive, deprecated bool, reason string) []*ast.Directive {
	if !deprecated || slices.ContainsFunc(directives, func(d *ast.Directive) bool { return d.Name == "deprecated" }) {
		return directives
	}
	d := &ast.Directive{Name: "deprecated"}
	if reason != "" && reason != ast.DefaultDeprecationReason {
		d.Arguments = []*ast.Argument{{Name: "reason", Value: ast.NewValue(ast.ValueString, quote(reason))}}
	}
	return append(slices.Clip(directives), d)
}

/* Executable documents */

func (p *printer) document(d *ast.Document) {
	defs := make([]ast.Node, 0, len(d.Operations)+len(d.Fragments))
	for _, op := range d.Operations {
		defs = append(defs, op)
	}
	for _, f := range d.Fragments {
		defs = append(defs, f)
	}
	each(p, defs, p.definitions(len(defs)), p.node)
}

func (p *printer) operation(op *ast.OperationDefinition) {
	if op.IsShorthand() {
		p.selectionSet(op.SelectionSet)
		return
	}
	p.write(string(op.Operation))
	if op.Name != "" {
		p.write(" " + op.Name)
	}
	if len(op.VariableDefinitions) != 0 {
		each(p, op.VariableDefinitions, p.parens(), p.variableDefinition)
	}
	p.directives(op.Directives)
	p.space(" ")
	p.selectionSet(op.SelectionSet)
}

func (p *printer) variableDefinition(v *ast.VariableDefinition) {
	p.write("$" + v.Variable + ":")
	p.space(" ")
	p.write(v.Type)
	if v.DefaultValue != nil {
		p.space(" ")
		p.write("=")
		p.space(" ")
		p.write(v.DefaultValue.String())
	}
}

func (p *printer) fragmentDefinition(f *ast.FragmentDefinition) {
	p.write("fragment " + f.Name + " on " + f.TypeCondition)
	p.directives(f.Directives)
	p.space(" ")
	p.selectionSet(f.SelectionSet)
}

// selectionSet prints a set holding a single leaf selection on one line
// and any other set one selection per line.
func (p *printer) selectionSet(set []ast.Selection) {
	hooks := p.block()
	if len(set) == 1 && set[0].IsLeaf() {
		hooks = p.inlineBlock()
	}
	each(p, set, hooks, p.selection)
}

func (p *printer) selection(s ast.Selection) {
	switch s := s.(type) {
	case *ast.Field:
		if s.Alias != "" {
			p.write(s.Alias + ":")
			p.space(" ")
		}
		p.write(s.Name)
		if len(s.Arguments) != 0 {
			each(p, s.Arguments, p.parens(), p.argument)
		}
		p.directives(s.Directives)
		if len(s.SelectionSet) != 0 {
			p.space(" ")
			p.selectionSet(s.SelectionSet)
		}
	case *ast.FragmentSpread:
		p.write("..." + s.Name)
		p.directives(s.Directives)
	case *ast.InlineFragment:
		p.write("...")
		if s.TypeCondition != "" {
			p.space(" ")
			p.write("on " + s.TypeCondition)
		}
		p.directives(s.Directives)
		p.space(" ")
		p.selectionSet(s.SelectionSet)
	}
}

func (p *printer) argument(a *ast.Argument) {
	p.write(a.Name + ":")
	p.space(" ")
	p.write(a.Value.String())
}

func (p *printer) directives(directives []*ast.Directive) {
	if len(directives) == 0 {
		return
	}
	p.space(" ")
	sep := " "
	if p.opts.Compact {
		sep = ""
	}
	each(p, directives, p.separated(sep), p.directive)
}

func (p *printer) directive(d *ast.Directive) {
	p.write("@" + d.Name)
	if len(d.Arguments) != 0 {
		each(p, d.Arguments, p.parens(), p.argument)
	}
}
