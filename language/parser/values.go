package parser

import (
	"strings"

	"github.com/sprucehealth/gqlast/language/ast"
	"github.com/sprucehealth/gqlast/language/lexer"
	"github.com/sprucehealth/gqlast/language/source"
)

/* Implements the parsing rules in the Values section. */

// parseValueLiteral reads a value and keeps its text. Every token is copied
// as written; comments are dropped and the items of lists and objects are
// joined with ", ".
//
// Value[Const] :
//   - [~Const] Variable
//   - IntValue
//   - FloatValue
//   - StringValue
//   - BooleanValue
//   - NullValue
//   - EnumValue
//   - ListValue[?Const]
//   - ObjectValue[?Const]
func (p *Parser) parseValueLiteral(isConst bool) (*ast.Value, error) {
	start := p.tok.Start
	var raw strings.Builder
	kind, err := p.writeValue(&raw, isConst)
	if err != nil {
		return nil, err
	}
	return &ast.Value{
		Loc:  p.loc(start),
		Kind: kind,
		Raw:  raw.String(),
	}, nil
}

func (p *Parser) tokenText(token lexer.Token) string {
	return p.Source.Body()[token.Start:token.End]
}

func (p *Parser) writeValue(w *strings.Builder, isConst bool) (ast.ValueKind, error) {
	token := p.tok
	var kind ast.ValueKind
	switch token.Kind {
	case lexer.BRACKET_L:
		return ast.ValueList, p.writeList(w, isConst)
	case lexer.BRACE_L:
		return ast.ValueObject, p.writeObject(w, isConst)
	case lexer.INT:
		kind = ast.ValueInt
	case lexer.FLOAT:
		kind = ast.ValueFloat
	case lexer.STRING, lexer.BLOCK_STRING:
		kind = ast.ValueString
	case lexer.NAME:
		switch token.Value {
		case "true", "false":
			kind = ast.ValueBoolean
		case "null":
			kind = ast.ValueNull
		default:
			kind = ast.ValueEnum
		}
	case lexer.DOLLAR:
		if isConst {
			return 0, p.unexpected(lexer.Token{})
		}
		if err := p.advance(); err != nil {
			return 0, err
		}
		name, err := p.expect(lexer.NAME)
		if err != nil {
			return 0, err
		}
		w.WriteByte('$')
		w.WriteString(name.Value)
		return ast.ValueVariable, nil
	default:
		return 0, p.unexpected(lexer.Token{})
	}
	w.WriteString(p.tokenText(token))
	return kind, p.advance()
}

// ListValue[Const] :
//   - [ ]
//   - [ Value[?Const]+ ]
func (p *Parser) writeList(w *strings.Builder, isConst bool) error {
	if err := p.enter(); err != nil {
		return err
	}
	defer p.leave()
	if _, err := p.expect(lexer.BRACKET_L); err != nil {
		return err
	}
	w.WriteByte('[')
	for i := 0; ; i++ {
		if skp, err := p.skip(lexer.BRACKET_R); err != nil {
			return err
		} else if skp {
			break
		}
		if i > 0 {
			w.WriteString(", ")
		}
		if _, err := p.writeValue(w, isConst); err != nil {
			return err
		}
	}
	w.WriteByte(']')
	return nil
}

// ObjectValue[Const] :
//   - { }
//   - { ObjectField[?Const]+ }
//
// ObjectField[Const] : Name : Value[?Const]
func (p *Parser) writeObject(w *strings.Builder, isConst bool) error {
	if err := p.enter(); err != nil {
		return err
	}
	defer p.leave()
	if _, err := p.expect(lexer.BRACE_L); err != nil {
		return err
	}
	w.WriteByte('{')
	for i := 0; ; i++ {
		if skp, err := p.skip(lexer.BRACE_R); err != nil {
			return err
		} else if skp {
			break
		}
		if i > 0 {
			w.WriteString(", ")
		}
		name, err := p.expect(lexer.NAME)
		if err != nil {
			return err
		}
		if _, err := p.expect(lexer.COLON); err != nil {
			return err
		}
		w.WriteString(name.Value)
		w.WriteString(": ")
		if _, err := p.writeValue(w, isConst); err != nil {
			return err
		}
	}
	w.WriteByte('}')
	return nil
}

// stringValue decodes a string literal value.
func stringValue(v *ast.Value) (string, bool) {
	if v == nil || v.Kind != ast.ValueString {
		return "", false
	}
	token, err := lexer.New(source.New("", v.Raw)).NextToken()
	if err != nil {
		return "", false
	}
	if token.Kind != lexer.STRING && token.Kind != lexer.BLOCK_STRING {
		return "", false
	}
	return token.Value, true
}
