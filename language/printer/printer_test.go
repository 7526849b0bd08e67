package printer_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprucehealth/gqlast/language/ast"
	"github.com/sprucehealth/gqlast/language/parser"
	"github.com/sprucehealth/gqlast/language/printer"
	"github.com/sprucehealth/gqlast/testutil"
)

func parse(t testing.TB, query string) *ast.Document {
	astDoc, err := parser.ParseQuery(parser.ParseParams{
		Source:  query,
		Options: parser.ParseOptions{},
	})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return astDoc
}

func readFile(t testing.TB, name string) string {
	b, err := os.ReadFile("../parser/testdata/" + name)
	if err != nil {
		t.Fatalf("unable to load %s: %s", name, err)
	}
	return string(b)
}

func checkPrint(t *testing.T, expected, results string) {
	t.Helper()
	if expected != results {
		t.Fatalf("Unexpected result:\n%s", testutil.UnifiedDiff(expected, results))
	}
}

func TestDoesNotAlterAST(t *testing.T) {
	astDoc := parse(t, readFile(t, "kitchen-sink.graphql"))
	astDocBefore := parse(t, readFile(t, "kitchen-sink.graphql"))

	_ = printer.PrintDocument(astDoc, printer.DefaultOptions())
	_ = printer.PrintDocument(astDoc, printer.Options{Compact: true})

	testutil.EqualAST(t, astDocBefore, astDoc)
}

func TestPrintsMinimalAST(t *testing.T) {
	astDoc := &ast.Field{Name: "foo"}
	assert.Equal(t, "foo", printer.Print(astDoc, printer.DefaultOptions()))
	assert.Equal(t, "", printer.Print(&ast.Document{}, printer.DefaultOptions()))
	assert.Equal(t, "", printer.Print(nil, printer.DefaultOptions()))
}

func TestPrinter_CorrectlyPrintsNonQueryOperationsWithoutName(t *testing.T) {
	cases := []struct {
		query    string
		expected string
	}{
		{
			query: `query { id, name }`,
			expected: `{
  id
  name
}
`,
		},
		{
			query: `mutation { id, name }`,
			expected: `mutation {
  id
  name
}
`,
		},
		{
			query: `query ($foo: TestType) @testDirective { id, name }`,
			expected: `query($foo: TestType) @testDirective {
  id
  name
}
`,
		},
		{
			query: `mutation ($foo: TestType) @testDirective { id, name }`,
			expected: `mutation($foo: TestType) @testDirective {
  id
  name
}
`,
		},
	}
	for _, c := range cases {
		c := c
		t.Run(c.query, func(t *testing.T) {
			checkPrint(t, c.expected, printer.PrintDocument(parse(t, c.query), printer.DefaultOptions()))
		})
	}
}

func TestLeafSelectionSetsStayOnOneLine(t *testing.T) {
	checkPrint(t, "{ id }\n", printer.PrintDocument(parse(t, `{id}`), printer.DefaultOptions()))
	checkPrint(t, "{\n  user { id }\n}\n", printer.PrintDocument(parse(t, `{user{id}}`), printer.DefaultOptions()))
	checkPrint(t, "{\n  user {\n    id\n    name\n  }\n}\n",
		printer.PrintDocument(parse(t, `{user{id name}}`), printer.DefaultOptions()))
	checkPrint(t, "{ ...frag }\n", printer.PrintDocument(parse(t, `{ ...frag }`), printer.DefaultOptions()))
	// The inner set is not a leaf so the outer one breaks.
	checkPrint(t, "{\n  a { b }\n}\n", printer.PrintDocument(parse(t, `{ a { b } }`), printer.DefaultOptions()))
}

func TestArgumentsNeverBreak(t *testing.T) {
	query := `{ a @include(if: $x) @skip(if: $y) { b(c: [1, 2], d: {e: 1}) @d(list: [1, 2, 3]) } }`
	expected := `{
  a @include(if: $x) @skip(if: $y) { b(c: [1, 2], d: {e: 1}) @d(list: [1, 2, 3]) }
}
`
	checkPrint(t, expected, printer.PrintDocument(parse(t, query), printer.DefaultOptions()))
}

func TestPrintsKitchenSink(t *testing.T) {
	astDoc := parse(t, readFile(t, "kitchen-sink.graphql"))
	expected := `query queryName($foo: ComplexType, $site: Site = MOBILE, $ids: [ID!]! = ["a", "b"]) @live {
  whoever123is: node(id: [123, 456]) {
    id
    ... on User @defer {
      field2 {
        id
        alias: field1(first: 10, after: $foo) @include(if: $foo) {
          id
          ...frag
        }
      }
    }
    ... @skip(unless: $foo) { id }
    ... { id }
  }
}

mutation likeStory {
  like(story: 123) @defer {
    story { id }
  }
}

subscription StoryLikeSubscription($input: StoryLikeSubscribeInput) {
  storyLikeSubscribe(input: $input) {
    story {
      likers { count }
      likeSentence { text }
    }
  }
}

{
  unnamed(truthy: true, falsey: false, nullish: null, float: -1.5e3)
  query
}

fragment frag on Friend { foo(size: $size, bar: $b, obj: {key: "value", block: """
      block string uses \"""
  """}) }
`
	checkPrint(t, expected, printer.PrintDocument(astDoc, printer.DefaultOptions()))
}

func TestPrintsCompact(t *testing.T) {
	cases := []struct {
		query    string
		expected string
	}{
		{`{ a, b { c } }`, `{a,b{c}}`},
		{`query Q($a: Int = 1, $b: [String!]) @live { x: y(a: $a) @skip(if: true) @d }`, `query Q($a:Int=1,$b:[String!])@live{x:y(a:$a)@skip(if:true)@d}`},
		{`{ ... on T @d { a } ... { b } ...F @e }`, `{...on T@d{a},...{b},...F@e}`},
		{`fragment F on T @d { a } { b }`, `{b},fragment F on T@d{a}`},
		{`mutation { a }`, `mutation{a}`},
	}
	for _, c := range cases {
		c := c
		t.Run(c.query, func(t *testing.T) {
			assert.Equal(t, c.expected, printer.PrintDocument(parse(t, c.query), printer.Options{Compact: true}))
		})
	}
}

func TestRoundTripKitchenSink(t *testing.T) {
	astDoc := parse(t, readFile(t, "kitchen-sink.graphql"))
	for _, opts := range []printer.Options{printer.DefaultOptions(), {Compact: true}, {Indent: "\t", Newline: "\r\n"}} {
		printed := printer.PrintDocument(astDoc, opts)
		reparsed := parse(t, printed)
		testutil.EqualAST(t, astDoc, reparsed, "options %+v", opts)
		// Printing is idempotent.
		checkPrint(t, printed, printer.PrintDocument(reparsed, opts))
	}
}

func TestCompactAndPrettyParseAlike(t *testing.T) {
	astDoc := parse(t, readFile(t, "kitchen-sink.graphql"))
	pretty := parse(t, printer.PrintDocument(astDoc, printer.DefaultOptions()))
	compact := parse(t, printer.PrintDocument(astDoc, printer.Options{Compact: true}))
	testutil.EqualAST(t, pretty, compact)
}

func TestCustomLayout(t *testing.T) {
	opts := printer.Options{Indent: "\t", Newline: "\r\n"}
	checkPrint(t, "{\r\n\ta {\r\n\t\tb\r\n\t\tc\r\n\t}\r\n}\r\n", printer.PrintDocument(parse(t, `{ a { b c } }`), opts))

	// Zero options fall back to the defaults.
	checkPrint(t, "{\n  a\n  b\n}\n", printer.PrintDocument(parse(t, `{ a b }`), printer.Options{}))
}

func TestPrintsNodes(t *testing.T) {
	astDoc := parse(t, `query Q($v: [Int!] = [1]) { a(x: $v) @d(y: "z") }`)
	op := astDoc.Operations[0]
	field := op.SelectionSet[0].(*ast.Field)
	opts := printer.DefaultOptions()

	assert.Equal(t, "$v: [Int!] = [1]", printer.Print(op.VariableDefinitions[0], opts))
	assert.Equal(t, "x: $v", printer.Print(field.Arguments[0], opts))
	assert.Equal(t, `@d(y: "z")`, printer.Print(field.Directives[0], opts))
	assert.Equal(t, `a(x: $v) @d(y: "z")`, printer.Print(field, opts))
	assert.Equal(t, `"z"`, printer.Print(field.Directives[0].Arguments[0].Value, opts))
}

func TestPrintedQueriesReparse(t *testing.T) {
	queries := []string{
		`{ a }`,
		`query { a(b: "é\n") }`,
		`subscription S { a }`,
		`query Q @d { a }`,
		`{ a(o: {b: [{c: $d}]}) }`,
		`{ alias: a, b: b }`,
	}
	for _, q := range queries {
		astDoc := parse(t, q)
		for _, opts := range []printer.Options{printer.DefaultOptions(), {Compact: true}} {
			printed := printer.PrintDocument(astDoc, opts)
			reparsed, err := parser.ParseQuery(parser.ParseParams{Source: printed})
			require.NoError(t, err, printed)
			testutil.EqualAST(t, astDoc, reparsed, "%q", printed)
		}
	}
}

func BenchmarkPrint(b *testing.B) {
	astDoc := parse(b, readFile(b, "kitchen-sink.graphql"))
	opts := printer.DefaultOptions()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		printer.PrintDocument(astDoc, opts)
	}
}
