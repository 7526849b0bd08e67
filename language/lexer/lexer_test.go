package lexer

import (
	"reflect"
	"strconv"
	"testing"

	"github.com/sprucehealth/gqlast/language/source"
)

type Test struct {
	Body     string
	Expected any
}

func createSource(body string) *source.Source {
	return source.New("GraphQL", body)
}

func lexAll(t testing.TB, body string) []Token {
	lex := New(createSource(body))
	var tokens []Token
	for {
		tok, err := lex.NextToken()
		if err != nil {
			t.Fatal(err)
		}
		if tok.Kind == EOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

func TestLexer_GetTokenDesc(t *testing.T) {
	cases := []struct {
		tok Token
		exp string
	}{
		{Token{Kind: NAME, Start: 2, End: 5, Value: "foo"}, `Name "foo"`},
		{Token{Kind: NAME}, `Name`},
		{Token{Kind: STRING, Start: 2, End: 5, Value: "foo"}, `String "foo"`},
		{Token{Kind: BLOCK_STRING, Value: "a\nb"}, `BlockString "a\nb"`},
		{Token{Kind: AMP}, `&`},
		{Token{Kind: EOF}, `EOF`},
	}
	for _, c := range cases {
		if d := GetTokenDesc(c.tok); d != c.exp {
			t.Errorf("GetTokenDesc(%#v) = %s, expected %s", c.tok, d, c.exp)
		}
		if d := c.tok.String(); d != c.exp {
			t.Errorf("Token.String() = %s, expected %s", d, c.exp)
		}
	}
	if s := BRACE_L.String(); s != "{" {
		t.Errorf("BRACE_L.String() = %q", s)
	}
}

func TestLexer_DisallowsUncommonControlCharacters(t *testing.T) {
	expected := `Syntax Error GraphQL (1:1) Invalid character "\\u0007"

1: \u0007
   ^
`
	_, err := New(createSource("\u0007")).NextToken()
	if err == nil {
		t.Fatalf("unexpected nil error\nexpected:\n%v", expected)
	}
	if err.Error() != expected {
		t.Errorf("unexpected error.\nexpected:\n%v\n\ngot:\n%v", expected, err.Error())
	}
}

func TestLexer_AcceptsBOMHeader(t *testing.T) {
	// The byte order mark is three bytes long.
	token, err := New(createSource("\uFEFF foo")).NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := Token{Kind: NAME, Start: 4, End: 7, Value: "foo"}
	if !reflect.DeepEqual(token, expected) {
		t.Errorf("unexpected token, expected: %+v, got: %+v", expected, token)
	}
}

func TestLexer_SkipsWhiteSpace(t *testing.T) {
	tests := []Test{
		{
			Body: "\n\n    foo\n\n",
			Expected: []Token{
				{Kind: NAME, Start: 6, End: 9, Value: "foo"},
			},
		},
		{
			Body: "\n    #comment1\n    foo#comment2\n",
			Expected: []Token{
				{Kind: COMMENT, Start: 5, End: 14, Value: "#comment1"},
				{Kind: NAME, Start: 19, End: 22, Value: "foo"},
				{Kind: COMMENT, Start: 22, End: 31, Value: "#comment2"},
			},
		},
		{
			Body: `,,,foo,,,`,
			Expected: []Token{
				{Kind: NAME, Start: 3, End: 6, Value: "foo"},
			},
		},
		{
			Body:     ``,
			Expected: ([]Token)(nil),
		},
	}
	for i, test := range tests {
		test := test
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			tokens := lexAll(t, test.Body)
			if !reflect.DeepEqual(tokens, test.Expected) {
				t.Fatalf("unexpected token, expected: %+v, got: %+v, body: %s", test.Expected, tokens, test.Body)
			}
		})
	}
}

func TestLexer_EOFIsSticky(t *testing.T) {
	lex := New(createSource("a"))
	for i, exp := range []Kind{NAME, EOF, EOF} {
		tok, err := lex.NextToken()
		if err != nil {
			t.Fatal(err)
		}
		if tok.Kind != exp {
			t.Fatalf("token %d: expected %s, got %s", i, exp, tok.Kind)
		}
	}
}

func TestLexer_ErrorsRespectWhitespace(t *testing.T) {
	body := "\n\n    ?\n\n"
	_, err := New(createSource(body)).NextToken()
	expected := "Syntax Error GraphQL (3:5) Unexpected character \"?\".\n\n2: \n3:     ?\n       ^\n4: \n"
	if err == nil {
		t.Fatalf("unexpected nil error\nexpected:\n%v", expected)
	}
	if err.Error() != expected {
		t.Fatalf("unexpected error.\nexpected:\n%v\n\ngot:\n%v", expected, err.Error())
	}
}

func TestLexer_LexesNames(t *testing.T) {
	tests := []Test{
		{Body: "simple", Expected: Token{Kind: NAME, Start: 0, End: 6, Value: "simple"}},
		{Body: "Capital", Expected: Token{Kind: NAME, Start: 0, End: 7, Value: "Capital"}},
		{Body: "__typename", Expected: Token{Kind: NAME, Start: 0, End: 10, Value: "__typename"}},
		{Body: "  a1_b2 ", Expected: Token{Kind: NAME, Start: 2, End: 7, Value: "a1_b2"}},
	}
	for _, test := range tests {
		token, err := New(createSource(test.Body)).NextToken()
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(token, test.Expected) {
			t.Errorf("unexpected token, expected: %v, got: %v", test.Expected, token)
		}
	}
}

func TestLexer_LexesStrings(t *testing.T) {
	tests := []Test{
		{
			Body:     `"simple"`,
			Expected: Token{Kind: STRING, Start: 0, End: 8, Value: "simple"},
		},
		{
			Body:     `" white space "`,
			Expected: Token{Kind: STRING, Start: 0, End: 15, Value: " white space "},
		},
		{
			Body:     `"quote \""`,
			Expected: Token{Kind: STRING, Start: 0, End: 10, Value: `quote "`},
		},
		{
			Body:     `"escaped \n\r\b\t\f"`,
			Expected: Token{Kind: STRING, Start: 0, End: 20, Value: "escaped \n\r\b\t\f"},
		},
		{
			Body:     `"slashes \\ \/"`,
			Expected: Token{Kind: STRING, Start: 0, End: 15, Value: `slashes \ /`},
		},
		{
			Body:     `"unicode \u1234\u5678\u90AB\uCDEF"`,
			Expected: Token{Kind: STRING, Start: 0, End: 34, Value: "unicode \u1234\u5678\u90AB\uCDEF"},
		},
		{
			// offsets count bytes: ф and ы take two, 世 and 界 three
			Body:     `"unicode фы世界"`,
			Expected: Token{Kind: STRING, Start: 0, End: 20, Value: "unicode фы世界"},
		},
		{
			Body:     `""`,
			Expected: Token{Kind: STRING, Start: 0, End: 2, Value: ""},
		},
	}
	for i, test := range tests {
		test := test
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			token, err := New(createSource(test.Body)).NextToken()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(token, test.Expected) {
				t.Fatalf("unexpected token, expected: %v, got: %v", test.Expected, token)
			}
		})
	}
}

func TestLexer_LexesBlockStrings(t *testing.T) {
	tests := []Test{
		{
			Body:     `"""simple"""`,
			Expected: Token{Kind: BLOCK_STRING, Start: 0, End: 12, Value: "simple"},
		},
		{
			Body:     `"""contains " quote"""`,
			Expected: Token{Kind: BLOCK_STRING, Start: 0, End: 22, Value: `contains " quote`},
		},
		{
			Body:     `"""escaped \""" triple"""`,
			Expected: Token{Kind: BLOCK_STRING, Start: 0, End: 25, Value: `escaped """ triple`},
		},
		{
			Body:     `"""no \n escapes"""`,
			Expected: Token{Kind: BLOCK_STRING, Start: 0, End: 19, Value: `no \n escapes`},
		},
		{
			Body:     "\"\"\"\n    spans\n      multiple\n    lines\n  \"\"\"",
			Expected: Token{Kind: BLOCK_STRING, Start: 0, End: 44, Value: "spans\n  multiple\nlines"},
		},
	}
	for i, test := range tests {
		test := test
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			token, err := New(createSource(test.Body)).NextToken()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(token, test.Expected) {
				t.Fatalf("unexpected token, expected: %#v, got: %#v", test.Expected, token)
			}
		})
	}
}

func TestBlockStringValue(t *testing.T) {
	cases := []struct {
		raw string
		exp string
	}{
		{raw: "", exp: ""},
		{raw: "one line", exp: "one line"},
		{raw: "\n\n  a\n    b\n  c\n\n", exp: "a\n  b\nc"},
		{raw: "first\n  second\n  third", exp: "first\nsecond\nthird"},
		{raw: "\r\n  crlf\r\n  lines\r\n", exp: "crlf\nlines"},
		{raw: "  \n  \t\n", exp: ""},
	}
	for _, c := range cases {
		if v := BlockStringValue(c.raw); v != c.exp {
			t.Errorf("BlockStringValue(%q) = %q, expected %q", c.raw, v, c.exp)
		}
	}
}

func TestLexer_ReportsUsefulStringErrors(t *testing.T) {
	tests := []Test{
		{
			Body: `"no end quote`,
			Expected: `Syntax Error GraphQL (1:14) Unterminated string.

1: "no end quote
                ^
`,
		},
		{
			Body: "\"multi\nline\"",
			Expected: `Syntax Error GraphQL (1:7) Unterminated string.

1: "multi
         ^
2: line"
`,
		},
		{
			Body: `"bad \z esc"`,
			Expected: `Syntax Error GraphQL (1:7) Invalid character escape sequence: \z.

1: "bad \z esc"
         ^
`,
		},
		{
			Body: `"bad \u1 esc"`,
			Expected: `Syntax Error GraphQL (1:6) Invalid character escape sequence: \u1 es.

1: "bad \u1 esc"
        ^
`,
		},
		{
			Body: `"bad \uXXXF esc"`,
			Expected: `Syntax Error GraphQL (1:6) Invalid character escape sequence: \uXXXF.

1: "bad \uXXXF esc"
        ^
`,
		},
		{
			// wide characters move the caret by their display width
			Body: `"世界 \uXXXF"`,
			Expected: `Syntax Error GraphQL (1:5) Invalid character escape sequence: \uXXXF.

1: "世界 \uXXXF"
         ^
`,
		},
		{
			Body: `"""never closed`,
			Expected: `Syntax Error GraphQL (1:16) Unterminated string.

1: """never closed
                  ^
`,
		},
	}
	for i, test := range tests {
		test := test
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			tok, err := New(createSource(test.Body)).NextToken()
			if err == nil {
				t.Fatalf("unexpected nil error\nexpected error: %v\ngot token: %#+v", test.Expected, tok)
			}
			if err.Error() != test.Expected {
				t.Fatalf("unexpected error.\nexpected:\n%v\n\ngot:\n%v", test.Expected, err.Error())
			}
		})
	}
}

func TestLexer_LexesNumbers(t *testing.T) {
	tests := []Test{
		{Body: "4", Expected: Token{Kind: INT, Start: 0, End: 1, Value: "4"}},
		{Body: "4.123", Expected: Token{Kind: FLOAT, Start: 0, End: 5, Value: "4.123"}},
		{Body: "-4", Expected: Token{Kind: INT, Start: 0, End: 2, Value: "-4"}},
		{Body: "9", Expected: Token{Kind: INT, Start: 0, End: 1, Value: "9"}},
		{Body: "0", Expected: Token{Kind: INT, Start: 0, End: 1, Value: "0"}},
		{Body: "-4.123", Expected: Token{Kind: FLOAT, Start: 0, End: 6, Value: "-4.123"}},
		{Body: "0.123", Expected: Token{Kind: FLOAT, Start: 0, End: 5, Value: "0.123"}},
		{Body: "123e4", Expected: Token{Kind: FLOAT, Start: 0, End: 5, Value: "123e4"}},
		{Body: "123E-4", Expected: Token{Kind: FLOAT, Start: 0, End: 6, Value: "123E-4"}},
		{Body: "-1.123e+4", Expected: Token{Kind: FLOAT, Start: 0, End: 9, Value: "-1.123e+4"}},
	}
	for i, test := range tests {
		test := test
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			token, err := New(createSource(test.Body)).NextToken()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(token, test.Expected) {
				t.Fatalf("unexpected token, expected: %+v, got: %+v", test.Expected, token)
			}
		})
	}
}

func TestLexer_ReportsUsefulNumberErrors(t *testing.T) {
	tests := []Test{
		{
			Body: "00",
			Expected: `Syntax Error GraphQL (1:2) Invalid number, unexpected digit after 0: "0".

1: 00
    ^
`,
		},
		{
			Body: "+1",
			Expected: `Syntax Error GraphQL (1:1) Unexpected character "+".

1: +1
   ^
`,
		},
		{
			Body: "1.",
			Expected: `Syntax Error GraphQL (1:3) Invalid number, expected digit but got: EOF.

1: 1.
     ^
`,
		},
		{
			Body: "-A",
			Expected: `Syntax Error GraphQL (1:2) Invalid number, expected digit but got: "A".

1: -A
    ^
`,
		},
		{
			Body: "1.0eA",
			Expected: `Syntax Error GraphQL (1:5) Invalid number, expected digit but got: "A".

1: 1.0eA
       ^
`,
		},
	}
	for _, test := range tests {
		_, err := New(createSource(test.Body)).NextToken()
		if err == nil {
			t.Fatalf("unexpected nil error\nexpected:\n%v", test.Expected)
		}
		if err.Error() != test.Expected {
			t.Errorf("unexpected error.\nexpected:\n%v\n\ngot:\n%v", test.Expected, err.Error())
		}
	}
}

func TestLexer_LexesPunctuation(t *testing.T) {
	for body, kind := range map[string]Kind{
		"!":   BANG,
		"$":   DOLLAR,
		"&":   AMP,
		"(":   PAREN_L,
		")":   PAREN_R,
		"...": SPREAD,
		":":   COLON,
		"=":   EQUALS,
		"@":   AT,
		"[":   BRACKET_L,
		"]":   BRACKET_R,
		"{":   BRACE_L,
		"|":   PIPE,
		"}":   BRACE_R,
	} {
		token, err := New(createSource(body)).NextToken()
		if err != nil {
			t.Errorf("unexpected error: %v, body: %q", err, body)
			continue
		}
		expected := Token{Kind: kind, Start: 0, End: len(body)}
		if token != expected {
			t.Errorf("unexpected token, expected: %v, got: %v", expected, token)
		}
	}
}

func TestLexer_ReportsUsefulUnknownCharacterError(t *testing.T) {
	tests := []Test{
		{
			Body: "..",
			Expected: `Syntax Error GraphQL (1:1) Unexpected character ".".

1: ..
   ^
`,
		},
		{
			Body: "?",
			Expected: `Syntax Error GraphQL (1:1) Unexpected character "?".

1: ?
   ^
`,
		},
		{
			Body: "※",
			Expected: `Syntax Error GraphQL (1:1) Unexpected character "\\u203B".

1: ※
   ^
`,
		},
		{
			Body: "ф",
			Expected: `Syntax Error GraphQL (1:1) Unexpected character "\\u0444".

1: ф
   ^
`,
		},
	}
	for i, test := range tests {
		test := test
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			tok, err := New(createSource(test.Body)).NextToken()
			if err == nil {
				t.Fatalf("unexpected nil error\nexpected error: %v\ngot token: %#+v", test.Expected, tok)
			}
			if err.Error() != test.Expected {
				t.Fatalf("unexpected error.\nexpected:\n%v\n\ngot:\n%v", test.Expected, err.Error())
			}
		})
	}
}

func TestLexer_ReportsUsefulInformationForDashesInNames(t *testing.T) {
	lexer := New(createSource("a-b"))
	firstToken, err := lexer.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	firstTokenExpected := Token{Kind: NAME, Start: 0, End: 1, Value: "a"}
	if firstToken != firstTokenExpected {
		t.Fatalf("unexpected token, expected: %v, got: %v", firstTokenExpected, firstToken)
	}
	errExpected := `Syntax Error GraphQL (1:3) Invalid number, expected digit but got: "b".

1: a-b
     ^
`
	token, err := lexer.NextToken()
	if err == nil {
		t.Fatalf("unexpected nil error, token: %v", token)
	}
	if err.Error() != errExpected {
		t.Fatalf("unexpected error, token:%v\nexpected:\n%v\n\ngot:\n%v", token, errExpected, err.Error())
	}
}

func TestFullDocument(t *testing.T) {
	body := `
		# Comment
		"""
		A dog.
		"""
		type Dog implements Pet & Named {
			name(upper: Boolean = false): String!
			tags: [String] @deprecated(reason: "gone")
		}
		query Q($id: ID!) { dog(id: $id) { ...F ... on Dog { name } } }
	`
	type kv struct {
		Kind  Kind
		Value string
	}
	expected := []kv{
		{COMMENT, "# Comment"},
		{BLOCK_STRING, "A dog."},
		{NAME, "type"}, {NAME, "Dog"}, {NAME, "implements"}, {NAME, "Pet"}, {AMP, ""}, {NAME, "Named"}, {BRACE_L, ""},
		{NAME, "name"}, {PAREN_L, ""}, {NAME, "upper"}, {COLON, ""}, {NAME, "Boolean"}, {EQUALS, ""}, {NAME, "false"}, {PAREN_R, ""},
		{COLON, ""}, {NAME, "String"}, {BANG, ""},
		{NAME, "tags"}, {COLON, ""}, {BRACKET_L, ""}, {NAME, "String"}, {BRACKET_R, ""},
		{AT, ""}, {NAME, "deprecated"}, {PAREN_L, ""}, {NAME, "reason"}, {COLON, ""}, {STRING, "gone"}, {PAREN_R, ""},
		{BRACE_R, ""},
		{NAME, "query"}, {NAME, "Q"}, {PAREN_L, ""}, {DOLLAR, ""}, {NAME, "id"}, {COLON, ""}, {NAME, "ID"}, {BANG, ""}, {PAREN_R, ""},
		{BRACE_L, ""}, {NAME, "dog"}, {PAREN_L, ""}, {NAME, "id"}, {COLON, ""}, {DOLLAR, ""}, {NAME, "id"}, {PAREN_R, ""},
		{BRACE_L, ""}, {SPREAD, ""}, {NAME, "F"}, {SPREAD, ""}, {NAME, "on"}, {NAME, "Dog"},
		{BRACE_L, ""}, {NAME, "name"}, {BRACE_R, ""}, {BRACE_R, ""}, {BRACE_R, ""},
	}
	var got []kv
	for _, tok := range lexAll(t, body) {
		if body[tok.Start:tok.End] == "" {
			t.Fatalf("empty token span %+v", tok)
		}
		got = append(got, kv{tok.Kind, tok.Value})
	}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("unexpected tokens\nexpected: %+v\ngot:      %+v", expected, got)
	}
}

func FuzzLexer(f *testing.F) {
	f.Add(`query Q($a: [Int!] = [1, 2]) { a(b: "c") @d { ...E } }`)
	f.Add(`"""block""" type A implements B & C { a: Int }`)
	f.Fuzz(func(t *testing.T, body string) {
		lex := New(createSource(body))
		prev := 0
		for {
			tok, err := lex.NextToken()
			if err != nil {
				return
			}
			if tok.Start < prev || tok.End < tok.Start || tok.End > len(body) {
				t.Fatalf("token %+v out of order (prev end %d, body len %d)", tok, prev, len(body))
			}
			if tok.Kind == EOF {
				return
			}
			prev = tok.End
		}
	})
}

func BenchmarkLexer(b *testing.B) {
	body := `
		# Comment
		type SomeType {
			field: [Int]!
			foo(a: Int = 123): String
		}
		fragment basicType on __Type {
			kind
			name
			ofType { kind name }
		}
		query _ {
			this(some: "foo4bar", thing: 1.123) {
				abc(foo: "bar bar bar bar \t woo woo \n \n wha wha") { xyz }
			}
		}
	`
	src := createSource(body)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		lex := New(src)
		for {
			tok, err := lex.NextToken()
			if err != nil {
				b.Fatal(err)
			}
			if tok.Kind == EOF {
				break
			}
		}
	}
}
