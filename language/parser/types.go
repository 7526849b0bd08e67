package parser

import (
	"github.com/sprucehealth/gqlast/language/ast"
	"github.com/sprucehealth/gqlast/language/lexer"
)

// parseTypeRef reads a type reference in a schema. The named type comes
// from the registry and modifiers are wrapped around it, innermost first.
//
// Type :
//   - NamedType
//   - ListType
//   - NonNullType
func (p *Parser) parseTypeRef() (*ast.TypeBuilder, error) {
	start := p.tok.Start
	var t *ast.TypeBuilder
	if p.peek(lexer.BRACKET_L) {
		if err := p.enter(); err != nil {
			return nil, err
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.BRACKET_R); err != nil {
			return nil, err
		}
		p.leave()
		t = ast.NewListTypeBuilder(inner).SetLoc(p.loc(start))
	} else {
		nameToken, err := p.expect(lexer.NAME)
		if err != nil {
			return nil, err
		}
		t = p.usage(nameToken)
	}
	if skp, err := p.skip(lexer.BANG); err != nil {
		return nil, err
	} else if skp {
		t = ast.NewNonNullTypeBuilder(t).SetLoc(p.loc(start))
	}
	return t, nil
}

// parseTypeText reads a variable type and returns its canonical text, for
// example "[Int!]!". Query documents carry no schema, so the named type is
// not resolved.
func (p *Parser) parseTypeText() (string, error) {
	var text string
	if p.peek(lexer.BRACKET_L) {
		if err := p.enter(); err != nil {
			return "", err
		}
		if err := p.advance(); err != nil {
			return "", err
		}
		inner, err := p.parseTypeText()
		if err != nil {
			return "", err
		}
		if _, err := p.expect(lexer.BRACKET_R); err != nil {
			return "", err
		}
		p.leave()
		text = "[" + inner + "]"
	} else {
		nameToken, err := p.expect(lexer.NAME)
		if err != nil {
			return "", err
		}
		text = nameToken.Value
	}
	if skp, err := p.skip(lexer.BANG); err != nil {
		return "", err
	} else if skp {
		text += "!"
	}
	return text, nil
}
