package parser

import (
	"github.com/sprucehealth/gqlast/language/ast"
	"github.com/sprucehealth/gqlast/language/lexer"
)

/* Implements the parsing rules in the Document section. */

func (p *Parser) parseQueryDocument() (*ast.Document, error) {
	p.trace("QueryDocument")
	start := p.tok.Start
	db := ast.NewDocumentBuilder()
	for {
		if skp, err := p.skip(lexer.EOF); err != nil {
			return nil, err
		} else if skp {
			break
		}
		switch {
		case p.peek(lexer.BRACE_L):
			op, err := p.parseOperationDefinition()
			if err != nil {
				return nil, err
			}
			db.AddOperation(op)
		case p.peek(lexer.NAME):
			switch p.tok.Value {
			case "query", "mutation", "subscription":
				op, err := p.parseOperationDefinition()
				if err != nil {
					return nil, err
				}
				db.AddOperation(op)
			case "fragment":
				f, err := p.parseFragmentDefinition()
				if err != nil {
					return nil, err
				}
				db.AddFragment(f)
			default:
				return nil, p.unexpected(lexer.Token{})
			}
		default:
			return nil, p.unexpected(lexer.Token{})
		}
	}
	db.SetLoc(p.loc(start))
	return db.Build(), nil
}

/* Implements the parsing rules in the Operations section. */

// OperationDefinition :
//   - SelectionSet
//   - OperationType Name? VariableDefinitions? Directives? SelectionSet
func (p *Parser) parseOperationDefinition() (*ast.OperationBuilder, error) {
	p.trace("OperationDefinition")
	start := p.tok.Start
	if p.peek(lexer.BRACE_L) {
		op := ast.NewOperationBuilder(ast.OperationQuery)
		if err := parseSelections(p, op.AddSelection); err != nil {
			return nil, err
		}
		return op.SetLoc(p.loc(start)), nil
	}
	operationToken, err := p.expect(lexer.NAME)
	if err != nil {
		return nil, err
	}
	var op *ast.OperationBuilder
	switch operationToken.Value {
	case "query":
		op = ast.NewOperationBuilder(ast.OperationQuery)
	case "mutation":
		op = ast.NewOperationBuilder(ast.OperationMutation)
	case "subscription":
		op = ast.NewOperationBuilder(ast.OperationSubscription)
	default:
		return nil, p.unexpected(operationToken)
	}
	if p.peek(lexer.NAME) {
		name := p.tok
		if err := p.advance(); err != nil {
			return nil, err
		}
		op.SetName(name.Value)
	}
	if p.peek(lexer.PAREN_L) {
		seen := make(map[string]bool)
		_, err := many(p, lexer.PAREN_L, func() (*ast.VariableDefinitionBuilder, error) {
			start := p.tok.Start
			v, name, err := p.parseVariableDefinition()
			if err != nil {
				return nil, err
			}
			if seen[name] {
				return nil, p.invalid(start, "variable $%s is defined more than once", name)
			}
			seen[name] = true
			op.AddVariableDefinition(v)
			return v, nil
		}, lexer.PAREN_R)
		if err != nil {
			return nil, err
		}
	}
	if err := addDirectives(p, false, op.AddDirective); err != nil {
		return nil, err
	}
	if err := parseSelections(p, op.AddSelection); err != nil {
		return nil, err
	}
	return op.SetLoc(p.loc(start)), nil
}

// VariableDefinition : Variable : Type DefaultValue?
func (p *Parser) parseVariableDefinition() (*ast.VariableDefinitionBuilder, string, error) {
	p.trace("VariableDefinition")
	start := p.tok.Start
	if _, err := p.expect(lexer.DOLLAR); err != nil {
		return nil, "", err
	}
	name, err := p.expect(lexer.NAME)
	if err != nil {
		return nil, "", err
	}
	if _, err := p.expect(lexer.COLON); err != nil {
		return nil, "", err
	}
	typ, err := p.parseTypeText()
	if err != nil {
		return nil, "", err
	}
	v := ast.NewVariableDefinitionBuilder(name.Value, typ)
	if skp, err := p.skip(lexer.EQUALS); err != nil {
		return nil, "", err
	} else if skp {
		dv, err := p.parseValueLiteral(true)
		if err != nil {
			return nil, "", err
		}
		v.SetDefaultValue(dv)
	}
	return v.SetLoc(p.loc(start)), name.Value, nil
}

// SelectionSet : { Selection+ }
//
// Every selection is handed to add as soon as it is complete.
func parseSelections[B any](p *Parser, add func(*ast.SelectionBuilder) B) error {
	if err := p.enter(); err != nil {
		return err
	}
	defer p.leave()
	_, err := many(p, lexer.BRACE_L, func() (*ast.SelectionBuilder, error) {
		s, err := p.parseSelection()
		if err != nil {
			return nil, err
		}
		add(s)
		return s, nil
	}, lexer.BRACE_R)
	return err
}

// Selection :
//   - Field
//   - FragmentSpread
//   - InlineFragment
func (p *Parser) parseSelection() (*ast.SelectionBuilder, error) {
	if p.peek(lexer.SPREAD) {
		return p.parseFragment()
	}
	return p.parseField()
}

// Field : Alias? Name Arguments? Directives? SelectionSet?
//
// Alias : Name :
func (p *Parser) parseField() (*ast.SelectionBuilder, error) {
	p.trace("Field")
	start := p.tok.Start
	nameOrAlias, err := p.expect(lexer.NAME)
	if err != nil {
		return nil, err
	}
	var s *ast.SelectionBuilder
	if skp, err := p.skip(lexer.COLON); err != nil {
		return nil, err
	} else if skp {
		name, err := p.expect(lexer.NAME)
		if err != nil {
			return nil, err
		}
		s = ast.NewFieldSelectionBuilder(name.Value).SetAlias(nameOrAlias.Value)
	} else {
		s = ast.NewFieldSelectionBuilder(nameOrAlias.Value)
	}
	args, err := p.parseArguments(false)
	if err != nil {
		return nil, err
	}
	for _, a := range args {
		s.AddArgument(a)
	}
	if err := addDirectives(p, false, s.AddDirective); err != nil {
		return nil, err
	}
	if p.peek(lexer.BRACE_L) {
		if err := parseSelections(p, s.AddSelection); err != nil {
			return nil, err
		}
	}
	return s.SetLoc(p.loc(start)), nil
}

// Arguments[Const] : ( Argument[?Const]+ )
//
// Argument[Const] : Name : Value[?Const]
func (p *Parser) parseArguments(isConst bool) ([]*ast.ArgumentBuilder, error) {
	if !p.peek(lexer.PAREN_L) {
		return nil, nil
	}
	seen := make(map[string]bool)
	return many(p, lexer.PAREN_L, func() (*ast.ArgumentBuilder, error) {
		start := p.tok.Start
		name, err := p.expect(lexer.NAME)
		if err != nil {
			return nil, err
		}
		if seen[name.Value] {
			return nil, p.invalid(start, "argument %q is given more than once", name.Value)
		}
		seen[name.Value] = true
		if _, err := p.expect(lexer.COLON); err != nil {
			return nil, err
		}
		value, err := p.parseValueLiteral(isConst)
		if err != nil {
			return nil, err
		}
		return ast.NewArgumentBuilder(name.Value, value).SetLoc(p.loc(start)), nil
	}, lexer.PAREN_R)
}

/* Implements the parsing rules in the Fragments section. */

// Corresponds to both FragmentSpread and InlineFragment.
//
// FragmentSpread : ... FragmentName Directives?
//
// InlineFragment : ... TypeCondition? Directives? SelectionSet
func (p *Parser) parseFragment() (*ast.SelectionBuilder, error) {
	p.trace("Fragment")
	start := p.tok.Start
	if _, err := p.expect(lexer.SPREAD); err != nil {
		return nil, err
	}
	if p.peek(lexer.NAME) && !p.peekKeyword("on") {
		name := p.tok
		if err := p.advance(); err != nil {
			return nil, err
		}
		s := ast.NewFragmentSpreadBuilder(name.Value)
		if err := addDirectives(p, false, s.AddDirective); err != nil {
			return nil, err
		}
		return s.SetLoc(p.loc(start)), nil
	}
	typeCondition := ""
	if p.peekKeyword("on") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		name, err := p.expect(lexer.NAME)
		if err != nil {
			return nil, err
		}
		typeCondition = name.Value
	}
	s := ast.NewInlineFragmentBuilder(typeCondition)
	if err := addDirectives(p, false, s.AddDirective); err != nil {
		return nil, err
	}
	if err := parseSelections(p, s.AddSelection); err != nil {
		return nil, err
	}
	return s.SetLoc(p.loc(start)), nil
}

// FragmentDefinition : fragment FragmentName on TypeCondition Directives? SelectionSet
//
// FragmentName : Name but not `on`
func (p *Parser) parseFragmentDefinition() (*ast.FragmentBuilder, error) {
	p.trace("FragmentDefinition")
	start := p.tok.Start
	if _, err := p.expectKeyWord("fragment"); err != nil {
		return nil, err
	}
	if p.peekKeyword("on") {
		return nil, p.unexpected(lexer.Token{})
	}
	name, err := p.expect(lexer.NAME)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyWord("on"); err != nil {
		return nil, err
	}
	typeCondition, err := p.expect(lexer.NAME)
	if err != nil {
		return nil, err
	}
	f := ast.NewFragmentBuilder(name.Value, typeCondition.Value)
	if err := addDirectives(p, false, f.AddDirective); err != nil {
		return nil, err
	}
	if err := parseSelections(p, f.AddSelection); err != nil {
		return nil, err
	}
	return f.SetLoc(p.loc(start)), nil
}

/* Implements the parsing rules in the Directives section. */

// Directives[Const] : Directive[?Const]+
func (p *Parser) parseDirectives(isConst bool) ([]*ast.DirectiveBuilder, error) {
	var directives []*ast.DirectiveBuilder
	for p.peek(lexer.AT) {
		d, err := p.parseDirective(isConst)
		if err != nil {
			return nil, err
		}
		directives = append(directives, d)
	}
	return directives, nil
}

// Directive[Const] : @ Name Arguments[?Const]?
func (p *Parser) parseDirective(isConst bool) (*ast.DirectiveBuilder, error) {
	p.trace("Directive")
	start := p.tok.Start
	if _, err := p.expect(lexer.AT); err != nil {
		return nil, err
	}
	name, err := p.expect(lexer.NAME)
	if err != nil {
		return nil, err
	}
	d := ast.NewDirectiveBuilder(name.Value)
	args, err := p.parseArguments(isConst)
	if err != nil {
		return nil, err
	}
	for _, a := range args {
		d.AddArgument(a)
	}
	return d.SetLoc(p.loc(start)), nil
}
