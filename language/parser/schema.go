package parser

import (
	"errors"
	"fmt"
	"slices"

	"github.com/sprucehealth/gqlast/language/ast"
	"github.com/sprucehealth/gqlast/language/lexer"
	"github.com/sprucehealth/gqlast/language/registry"
)

var definitionKeywords = []string{
	"schema", "scalar", "type", "interface", "union", "enum", "input", "directive", "extend",
}

/* Implements the parsing rules in the Type System section. */

func (p *Parser) parseSchemaDocument() (*ast.Schema, error) {
	p.trace("SchemaDocument")
	start := p.tok.Start
	sb := ast.NewSchemaBuilder()
	directives := make(map[string]bool)
	seenSchema := false
	for {
		if skp, err := p.skip(lexer.EOF); err != nil {
			return nil, err
		} else if skp {
			break
		}
		descStart := p.tok.Start
		description, err := p.parseDescription()
		if err != nil {
			return nil, err
		}
		if !p.peek(lexer.NAME) {
			return nil, p.unexpected(lexer.Token{})
		}
		switch p.tok.Value {
		case "schema":
			if description != "" {
				return nil, p.invalid(descStart, "schema definitions cannot have a description")
			}
			if seenSchema {
				return nil, p.invalid(p.tok.Start, "schema is defined more than once")
			}
			seenSchema = true
			if err := p.parseSchemaDefinition(sb); err != nil {
				return nil, err
			}
		case "scalar", "type", "interface", "union", "enum", "input":
			tb, err := p.parseTypeDefinition(description)
			if err != nil {
				return nil, err
			}
			sb.AddType(tb)
		case "directive":
			d, err := p.parseDirectiveDefinition(description)
			if err != nil {
				return nil, err
			}
			if directives[d.Name()] {
				return nil, p.collision(descStart, fmt.Errorf("directive @%s is declared more than once", d.Name()))
			}
			directives[d.Name()] = true
			sb.AddDirective(d)
		case "extend":
			if description != "" {
				return nil, p.invalid(descStart, "type extensions cannot have a description")
			}
			if err := p.parseTypeExtension(); err != nil {
				return nil, err
			}
		default:
			return nil, p.unexpected(lexer.Token{})
		}
	}
	sb.SetLoc(p.loc(start))
	if err := p.resolveTypes(sb); err != nil {
		return nil, err
	}
	return sb.Build(), nil
}

// resolveTypes runs once the whole document is read: every reference must
// name a declared type, and interfaces learn their implementers.
func (p *Parser) resolveTypes(sb *ast.SchemaBuilder) error {
	if unresolved := p.registry.Unresolved(); len(unresolved) != 0 {
		name := unresolved[0].Name()
		return p.invalid(p.usages[name], "unknown type %q", name)
	}
	if err := p.registry.ReconcilePossibleTypes(); err != nil {
		pos := 0
		var ni *registry.NotInterfaceError
		if errors.As(err, &ni) {
			if obj, ok := p.registry.Lookup(ni.Object); ok {
				pos = obj.Loc().Start
			}
		}
		return p.invalid(pos, "%s", err)
	}
	for _, op := range []ast.OperationType{ast.OperationQuery, ast.OperationMutation, ast.OperationSubscription} {
		if root := sb.RootType(op); root != nil && root.Kind() != ast.KindObject {
			return p.invalid(p.usages[root.Name()], "%s root type %q must be an object type, found %s", op, root.Name(), root.Kind())
		}
	}
	return nil
}

// usage resolves a type name reference through the registry and remembers
// where the name was first referenced.
func (p *Parser) usage(token lexer.Token) *ast.TypeBuilder {
	if _, ok := p.usages[token.Value]; !ok {
		p.usages[token.Value] = token.Start
	}
	return p.registry.RegisterUsage(token.Value)
}

// Description : StringValue
func (p *Parser) parseDescription() (string, error) {
	if !p.peek(lexer.STRING) && !p.peek(lexer.BLOCK_STRING) {
		return "", nil
	}
	token := p.tok
	if err := p.advance(); err != nil {
		return "", err
	}
	return token.Value, nil
}

// SchemaDefinition : schema Directives? { OperationTypeDefinition+ }
//
// OperationTypeDefinition : OperationType : NamedType
func (p *Parser) parseSchemaDefinition(sb *ast.SchemaBuilder) error {
	p.trace("SchemaDefinition")
	if _, err := p.expectKeyWord("schema"); err != nil {
		return err
	}
	// Directives on the schema definition are accepted and dropped.
	if _, err := p.parseDirectives(true); err != nil {
		return err
	}
	_, err := many(p, lexer.BRACE_L, func() (struct{}, error) {
		opToken, err := p.expect(lexer.NAME)
		if err != nil {
			return struct{}{}, err
		}
		op := ast.OperationType(opToken.Value)
		switch op {
		case ast.OperationQuery, ast.OperationMutation, ast.OperationSubscription:
		default:
			return struct{}{}, p.unexpected(opToken)
		}
		if sb.RootType(op) != nil {
			return struct{}{}, p.invalid(opToken.Start, "%s root type is defined more than once", op)
		}
		if _, err := p.expect(lexer.COLON); err != nil {
			return struct{}{}, err
		}
		nameToken, err := p.expect(lexer.NAME)
		if err != nil {
			return struct{}{}, err
		}
		sb.SetRootType(op, p.usage(nameToken))
		return struct{}{}, nil
	}, lexer.BRACE_R)
	return err
}

// parseTypeDefinition dispatches on the definition keyword.
func (p *Parser) parseTypeDefinition(description string) (*ast.TypeBuilder, error) {
	switch p.tok.Value {
	case "scalar":
		return p.parseScalarTypeDefinition(description)
	case "type":
		return p.parseObjectTypeDefinition(description)
	case "interface":
		return p.parseInterfaceTypeDefinition(description)
	case "union":
		return p.parseUnionTypeDefinition(description)
	case "enum":
		return p.parseEnumTypeDefinition(description)
	case "input":
		return p.parseInputObjectTypeDefinition(description)
	}
	return nil, p.unexpected(lexer.Token{})
}

// declare reads `keyword Name` and registers the declaration. Builtin
// scalars may be declared once; any other name only once.
func (p *Parser) declare(kind ast.TypeKind, description string) (*ast.TypeBuilder, error) {
	if _, err := p.expectKeyWord(kind.Keyword()); err != nil {
		return nil, err
	}
	nameToken, err := p.expect(lexer.NAME)
	if err != nil {
		return nil, err
	}
	if p.registry.IsDeclared(nameToken.Value) {
		if b, ok := p.registry.Lookup(nameToken.Value); ok && b.Kind() == kind {
			return nil, p.collision(nameToken.Start, fmt.Errorf("type %q is declared more than once", nameToken.Value))
		}
	}
	b, err := p.registry.RegisterDeclaration(nameToken.Value, kind)
	if err != nil {
		return nil, p.collision(nameToken.Start, err)
	}
	if description != "" {
		b.SetDescription(description)
	}
	return b, nil
}

// ScalarTypeDefinition : Description? scalar Name Directives?
func (p *Parser) parseScalarTypeDefinition(description string) (*ast.TypeBuilder, error) {
	p.trace("ScalarTypeDefinition")
	start := p.tok.Start
	b, err := p.declare(ast.KindScalar, description)
	if err != nil {
		return nil, err
	}
	if err := addDirectives(p, true, b.AddDirective); err != nil {
		return nil, err
	}
	b.SetLoc(p.loc(start))
	return b, nil
}

// ObjectTypeDefinition : Description? type Name ImplementsInterfaces? Directives? FieldsDefinition?
func (p *Parser) parseObjectTypeDefinition(description string) (*ast.TypeBuilder, error) {
	p.trace("ObjectTypeDefinition")
	start := p.tok.Start
	b, err := p.declare(ast.KindObject, description)
	if err != nil {
		return nil, err
	}
	if err := p.parseImplementsInterfaces(b); err != nil {
		return nil, err
	}
	if err := addDirectives(p, true, b.AddDirective); err != nil {
		return nil, err
	}
	if err := p.parseFieldsDefinition(b); err != nil {
		return nil, err
	}
	b.SetLoc(p.loc(start))
	return b, nil
}

// ImplementsInterfaces : implements `&`? NamedType ( & NamedType )*
//
// Names separated only by whitespace or commas are accepted as well.
func (p *Parser) parseImplementsInterfaces(b *ast.TypeBuilder) error {
	if !p.peekKeyword("implements") {
		return nil
	}
	if err := p.advance(); err != nil {
		return err
	}
	if _, err := p.skip(lexer.AMP); err != nil {
		return err
	}
	seen := make(map[string]bool)
	for _, i := range b.Interfaces() {
		seen[i.Name()] = true
	}
	for {
		nameToken, err := p.expect(lexer.NAME)
		if err != nil {
			return err
		}
		if seen[nameToken.Value] {
			return p.invalid(nameToken.Start, "type %q implements %q more than once", b.Name(), nameToken.Value)
		}
		seen[nameToken.Value] = true
		b.AddInterface(p.usage(nameToken))
		if skp, err := p.skip(lexer.AMP); err != nil {
			return err
		} else if skp {
			continue
		}
		if !p.peek(lexer.NAME) || slices.Contains(definitionKeywords, p.tok.Value) {
			return nil
		}
	}
}

// InterfaceTypeDefinition : Description? interface Name Directives? FieldsDefinition?
func (p *Parser) parseInterfaceTypeDefinition(description string) (*ast.TypeBuilder, error) {
	p.trace("InterfaceTypeDefinition")
	start := p.tok.Start
	b, err := p.declare(ast.KindInterface, description)
	if err != nil {
		return nil, err
	}
	if err := addDirectives(p, true, b.AddDirective); err != nil {
		return nil, err
	}
	if err := p.parseFieldsDefinition(b); err != nil {
		return nil, err
	}
	b.SetLoc(p.loc(start))
	return b, nil
}

// FieldsDefinition : { FieldDefinition* }
func (p *Parser) parseFieldsDefinition(b *ast.TypeBuilder) error {
	if !p.peek(lexer.BRACE_L) {
		return nil
	}
	names := make(map[string]bool, len(b.Fields()))
	for _, f := range b.Fields() {
		names[f.Name()] = true
	}
	_, err := anyOf(p, lexer.BRACE_L, func() (*ast.FieldBuilder, error) {
		start := p.tok.Start
		f, err := p.parseFieldDefinition()
		if err != nil {
			return nil, err
		}
		if names[f.Name()] {
			return nil, p.collision(start, fmt.Errorf("field %q of type %q is declared more than once", f.Name(), b.Name()))
		}
		names[f.Name()] = true
		b.AddField(f)
		return f, nil
	}, lexer.BRACE_R)
	return err
}

// FieldDefinition : Description? Name ArgumentsDefinition? : Type Directives?
func (p *Parser) parseFieldDefinition() (*ast.FieldBuilder, error) {
	p.trace("FieldDefinition")
	start := p.tok.Start
	description, err := p.parseDescription()
	if err != nil {
		return nil, err
	}
	nameToken, err := p.expect(lexer.NAME)
	if err != nil {
		return nil, err
	}
	f := ast.NewFieldBuilder(nameToken.Value).SetDescription(description)
	args, err := p.parseArgumentDefs()
	if err != nil {
		return nil, err
	}
	for _, a := range args {
		f.AddArgument(a)
	}
	if _, err := p.expect(lexer.COLON); err != nil {
		return nil, err
	}
	t, err := p.parseTypeRef()
	if err != nil {
		return nil, err
	}
	f.SetType(t)
	directives, err := p.parseDirectives(true)
	if err != nil {
		return nil, err
	}
	for _, d := range directives {
		f.AddDirective(d)
	}
	if reason, ok := deprecation(directives); ok {
		f.SetDeprecated(reason)
	}
	f.SetLoc(p.loc(start))
	return f, nil
}

// ArgumentsDefinition : ( InputValueDefinition+ )
func (p *Parser) parseArgumentDefs() ([]*ast.InputValueBuilder, error) {
	if !p.peek(lexer.PAREN_L) {
		return nil, nil
	}
	seen := make(map[string]bool)
	return many(p, lexer.PAREN_L, func() (*ast.InputValueBuilder, error) {
		start := p.tok.Start
		v, err := p.parseInputValueDef()
		if err != nil {
			return nil, err
		}
		if seen[v.Name()] {
			return nil, p.collision(start, fmt.Errorf("argument %q is declared more than once", v.Name()))
		}
		seen[v.Name()] = true
		return v, nil
	}, lexer.PAREN_R)
}

// InputValueDefinition : Description? Name : Type DefaultValue? Directives?
func (p *Parser) parseInputValueDef() (*ast.InputValueBuilder, error) {
	p.trace("InputValueDefinition")
	start := p.tok.Start
	description, err := p.parseDescription()
	if err != nil {
		return nil, err
	}
	nameToken, err := p.expect(lexer.NAME)
	if err != nil {
		return nil, err
	}
	v := ast.NewInputValueBuilder(nameToken.Value).SetDescription(description)
	if _, err := p.expect(lexer.COLON); err != nil {
		return nil, err
	}
	t, err := p.parseTypeRef()
	if err != nil {
		return nil, err
	}
	v.SetType(t)
	if skp, err := p.skip(lexer.EQUALS); err != nil {
		return nil, err
	} else if skp {
		dv, err := p.parseValueLiteral(true)
		if err != nil {
			return nil, err
		}
		v.SetDefaultValue(dv)
	}
	if err := addDirectives(p, true, v.AddDirective); err != nil {
		return nil, err
	}
	v.SetLoc(p.loc(start))
	return v, nil
}

// UnionTypeDefinition : Description? union Name Directives? UnionMemberTypes?
//
// UnionMemberTypes : = `|`? NamedType ( | NamedType )*
func (p *Parser) parseUnionTypeDefinition(description string) (*ast.TypeBuilder, error) {
	p.trace("UnionTypeDefinition")
	start := p.tok.Start
	b, err := p.declare(ast.KindUnion, description)
	if err != nil {
		return nil, err
	}
	if err := addDirectives(p, true, b.AddDirective); err != nil {
		return nil, err
	}
	if skp, err := p.skip(lexer.EQUALS); err != nil {
		return nil, err
	} else if skp {
		if _, err := p.skip(lexer.PIPE); err != nil {
			return nil, err
		}
		for {
			nameToken, err := p.expect(lexer.NAME)
			if err != nil {
				return nil, err
			}
			b.AddPossibleType(p.usage(nameToken))
			if skp, err := p.skip(lexer.PIPE); err != nil {
				return nil, err
			} else if !skp {
				break
			}
		}
	}
	b.SetLoc(p.loc(start))
	return b, nil
}

// EnumTypeDefinition : Description? enum Name Directives? EnumValuesDefinition?
func (p *Parser) parseEnumTypeDefinition(description string) (*ast.TypeBuilder, error) {
	p.trace("EnumTypeDefinition")
	start := p.tok.Start
	b, err := p.declare(ast.KindEnum, description)
	if err != nil {
		return nil, err
	}
	if err := addDirectives(p, true, b.AddDirective); err != nil {
		return nil, err
	}
	if p.peek(lexer.BRACE_L) {
		seen := make(map[string]bool)
		_, err := anyOf(p, lexer.BRACE_L, func() (*ast.EnumValueBuilder, error) {
			start := p.tok.Start
			v, err := p.parseEnumValueDefinition()
			if err != nil {
				return nil, err
			}
			if seen[v.Name()] {
				return nil, p.collision(start, fmt.Errorf("enum value %s.%s is declared more than once", b.Name(), v.Name()))
			}
			seen[v.Name()] = true
			b.AddEnumValue(v)
			return v, nil
		}, lexer.BRACE_R)
		if err != nil {
			return nil, err
		}
	}
	b.SetLoc(p.loc(start))
	return b, nil
}

// EnumValueDefinition : Description? EnumValue Directives?
//
// EnumValue : Name but not true, false or null
func (p *Parser) parseEnumValueDefinition() (*ast.EnumValueBuilder, error) {
	p.trace("EnumValueDefinition")
	start := p.tok.Start
	description, err := p.parseDescription()
	if err != nil {
		return nil, err
	}
	switch p.tok.Value {
	case "true", "false", "null":
		return nil, p.unexpected(lexer.Token{})
	}
	nameToken, err := p.expect(lexer.NAME)
	if err != nil {
		return nil, err
	}
	v := ast.NewEnumValueBuilder(nameToken.Value).SetDescription(description)
	directives, err := p.parseDirectives(true)
	if err != nil {
		return nil, err
	}
	for _, d := range directives {
		v.AddDirective(d)
	}
	if reason, ok := deprecation(directives); ok {
		v.SetDeprecated(reason)
	}
	v.SetLoc(p.loc(start))
	return v, nil
}

// InputObjectTypeDefinition : Description? input Name Directives? InputFieldsDefinition?
func (p *Parser) parseInputObjectTypeDefinition(description string) (*ast.TypeBuilder, error) {
	p.trace("InputObjectTypeDefinition")
	start := p.tok.Start
	b, err := p.declare(ast.KindInputObject, description)
	if err != nil {
		return nil, err
	}
	if err := addDirectives(p, true, b.AddDirective); err != nil {
		return nil, err
	}
	if p.peek(lexer.BRACE_L) {
		seen := make(map[string]bool)
		_, err := anyOf(p, lexer.BRACE_L, func() (*ast.InputValueBuilder, error) {
			start := p.tok.Start
			v, err := p.parseInputValueDef()
			if err != nil {
				return nil, err
			}
			if seen[v.Name()] {
				return nil, p.collision(start, fmt.Errorf("field %q of input %q is declared more than once", v.Name(), b.Name()))
			}
			seen[v.Name()] = true
			b.AddInputField(v)
			return v, nil
		}, lexer.BRACE_R)
		if err != nil {
			return nil, err
		}
	}
	b.SetLoc(p.loc(start))
	return b, nil
}

// TypeExtension : extend type Name ImplementsInterfaces? Directives? FieldsDefinition?
//
// The extension is merged into the declared object type.
func (p *Parser) parseTypeExtension() error {
	p.trace("TypeExtension")
	if _, err := p.expectKeyWord("extend"); err != nil {
		return err
	}
	if _, err := p.expectKeyWord("type"); err != nil {
		return err
	}
	nameToken, err := p.expect(lexer.NAME)
	if err != nil {
		return err
	}
	if !p.registry.IsDeclared(nameToken.Value) {
		return p.invalid(nameToken.Start, "cannot extend type %q because it is not defined", nameToken.Value)
	}
	b, err := p.registry.RegisterDeclaration(nameToken.Value, ast.KindObject)
	if err != nil {
		return p.collision(nameToken.Start, err)
	}
	if err := p.parseImplementsInterfaces(b); err != nil {
		return err
	}
	if err := addDirectives(p, true, b.AddDirective); err != nil {
		return err
	}
	return p.parseFieldsDefinition(b)
}

// DirectiveDefinition : Description? directive @ Name ArgumentsDefinition? on DirectiveLocations
//
// DirectiveLocations : `|`? Name ( | Name )*
func (p *Parser) parseDirectiveDefinition(description string) (*ast.DirectiveDefinitionBuilder, error) {
	p.trace("DirectiveDefinition")
	start := p.tok.Start
	if _, err := p.expectKeyWord("directive"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.AT); err != nil {
		return nil, err
	}
	nameToken, err := p.expect(lexer.NAME)
	if err != nil {
		return nil, err
	}
	d := ast.NewDirectiveDefinitionBuilder(nameToken.Value).SetDescription(description)
	args, err := p.parseArgumentDefs()
	if err != nil {
		return nil, err
	}
	for _, a := range args {
		d.AddArgument(a)
	}
	if _, err := p.expectKeyWord("on"); err != nil {
		return nil, err
	}
	if _, err := p.skip(lexer.PIPE); err != nil {
		return nil, err
	}
	for {
		locToken := p.tok
		if locToken.Kind != lexer.NAME || !slices.Contains(ast.DirectiveLocations, locToken.Value) {
			return nil, p.unexpected(locToken)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		d.AddLocation(locToken.Value)
		if skp, err := p.skip(lexer.PIPE); err != nil {
			return nil, err
		} else if !skp {
			break
		}
	}
	d.SetLoc(p.loc(start))
	return d, nil
}

// addDirectives parses directive usages and hands each to add.
func addDirectives[B any](p *Parser, isConst bool, add func(*ast.DirectiveBuilder) B) error {
	directives, err := p.parseDirectives(isConst)
	if err != nil {
		return err
	}
	for _, d := range directives {
		add(d)
	}
	return nil
}

// deprecation returns the reason of a @deprecated usage.
func deprecation(directives []*ast.DirectiveBuilder) (string, bool) {
	for _, d := range directives {
		if d.Name() != "deprecated" {
			continue
		}
		if a := d.Argument("reason"); a != nil {
			if s, ok := stringValue(a.Value()); ok {
				return s, true
			}
		}
		return ast.DefaultDeprecationReason, true
	}
	return "", false
}
