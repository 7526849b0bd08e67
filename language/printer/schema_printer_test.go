package printer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprucehealth/gqlast/language/ast"
	"github.com/sprucehealth/gqlast/language/parser"
	"github.com/sprucehealth/gqlast/language/printer"
	"github.com/sprucehealth/gqlast/testutil"
)

func parseSchema(t testing.TB, body string) *ast.Schema {
	schema, err := parser.ParseSchema(parser.ParseParams{Source: body})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return schema
}

func TestSchemaPrinter_PrintsMinimalAST(t *testing.T) {
	assert.Equal(t, "scalar foo", printer.Print(&ast.ScalarType{Name: "foo"}, printer.DefaultOptions()))
	assert.Equal(t, "", printer.PrintSchema(&ast.Schema{}, printer.DefaultOptions()))
	assert.Equal(t, "[Int!]!", printer.Print(&ast.NonNullType{OfType: &ast.ListType{
		OfType: &ast.NonNullType{OfType: &ast.ScalarType{Name: "Int"}},
	}}, printer.DefaultOptions()))
}

func TestSchemaPrinter_DoesNotAlterAST(t *testing.T) {
	schema := parseSchema(t, readFile(t, "schema-kitchen-sink.graphqls"))
	before := parseSchema(t, readFile(t, "schema-kitchen-sink.graphqls"))

	_ = printer.PrintSchema(schema, printer.DefaultOptions())
	_ = printer.PrintSchema(schema, printer.Options{Compact: true})

	testutil.EqualAST(t, before, schema)
}

func TestSchemaPrinter_PrintsKitchenSink(t *testing.T) {
	schema := parseSchema(t, readFile(t, "schema-kitchen-sink.graphqls"))
	expected := `schema {
  query: QueryType
  mutation: MutationType
}

"""
This is a description
of the ` + "`Foo`" + ` type.
"""
type Foo implements Bar & Baz {
  one: Type
  "This is a description of the ` + "`two`" + ` field."
  two("This is a description of the ` + "`argument`" + ` argument." argument: InputType!): Type
  three(argument: InputType, other: String): Int
  four(argument: String = "string"): String
  five(argument: [String] = ["string", "string"]): String
  six(argument: InputType = {key: "value"}): Type
  seven(argument: Int = null): Type
  eight(argument: [String]): Type
}

type AnnotatedObject @onObject(arg: "value") {
  annotatedField(arg: Type = "default" @onArg): Type @onField
  oldField: String @deprecated(reason: "Use ` + "`annotatedField`" + `.")
}

type UndefinedType

interface Bar {
  one: Type
  four(argument: String = "string"): String
}

interface Baz {
  one: Type
}

interface AnnotatedInterface @onInterface {
  annotatedField(arg: Type @onArg): Type @onField
}

union Feed = Story | Article | Advert

union AnnotatedUnion @onUnion = A | B

union AnnotatedUnionTwo @onUnion = A | B

union UndefinedUnion

scalar CustomScalar

scalar AnnotatedScalar @onScalar

scalar Type

enum Site {
  DESKTOP
  MOBILE
  LEGACY @deprecated
}

enum AnnotatedEnum @onEnum {
  ANNOTATED_VALUE @onEnumValue
  OTHER_VALUE
}

enum UndefinedEnum

input InputType {
  key: String!
  answer: Int = 42
}

input AnnotatedInput @onInputObject {
  annotatedField: Type @onField
}

input UndefinedInput

type QueryType {
  foo: Foo
  feed(first: Int = 10, site: Site = DESKTOP): [Feed!]!
}

type MutationType {
  setSite(site: Site!): Site
}

type Story {
  id: ID!
}

type Article {
  id: ID!
}

type Advert {
  id: ID!
}

type A {
  a: Int
}

type B {
  b: Float
}

"This is a description of the ` + "`@skip`" + ` directive"
directive @skip(if: Boolean!) on FIELD | FRAGMENT_SPREAD | INLINE_FRAGMENT

directive @include(if: Boolean!) on FIELD | FRAGMENT_SPREAD | INLINE_FRAGMENT

directive @include2(if: Boolean!) on FIELD | FRAGMENT_SPREAD | INLINE_FRAGMENT
`
	checkPrint(t, expected, printer.PrintSchema(schema, printer.DefaultOptions()))
}

func TestSchemaPrinter_RoundTripKitchenSink(t *testing.T) {
	schema := parseSchema(t, readFile(t, "schema-kitchen-sink.graphqls"))
	for _, opts := range []printer.Options{printer.DefaultOptions(), {Compact: true}, {Indent: "\t", Newline: "\r\n"}} {
		printed := printer.PrintSchema(schema, opts)
		reparsed := parseSchema(t, printed)
		testutil.EqualAST(t, schema, reparsed, "options %+v", opts)
		checkPrint(t, printed, printer.PrintSchema(reparsed, opts))
	}
}

func TestSchemaPrinter_CompactAndPrettyParseAlike(t *testing.T) {
	schema := parseSchema(t, readFile(t, "schema-kitchen-sink.graphqls"))
	pretty := parseSchema(t, printer.PrintSchema(schema, printer.DefaultOptions()))
	compact := parseSchema(t, printer.PrintSchema(schema, printer.Options{Compact: true}))
	testutil.EqualAST(t, pretty, compact)
}

func TestSchemaPrinter_PrintsCompact(t *testing.T) {
	cases := []struct {
		schema   string
		expected string
	}{
		{`schema { query: Q mutation: M } type Q { a: Int } type M { b: Int }`, `schema{query:Q,mutation:M},type Q{a:Int},type M{b:Int}`},
		{`interface I { a: Int } interface J { a: Int } type A implements I & J @d { a: Int, b: String }`, `interface I{a:Int},interface J{a:Int},type A implements I&J@d{a:Int,b:String}`},
		{`type A { a: Int } type B { b: Int } union U @d = A | B`, `type A{a:Int},type B{b:Int},union U@d=A|B`},
		{`directive @d(a: Int = 1) on FIELD | QUERY directive @e on FIELD`, `directive @d(a:Int=1)on FIELD|QUERY,directive @e on FIELD`},
		{`"described" enum E { "one" A B @deprecated(reason: "gone") }`, `"described"enum E{"one"A,B@deprecated(reason:"gone")}`},
		{`input I { a: [Int!] = [1] } scalar S`, `input I{a:[Int!]=[1]},scalar S`},
	}
	for _, c := range cases {
		c := c
		t.Run(c.schema, func(t *testing.T) {
			assert.Equal(t, c.expected, printer.PrintSchema(parseSchema(t, c.schema), printer.Options{Compact: true}))
		})
	}
}

func TestSchemaPrinter_Descriptions(t *testing.T) {
	cases := []struct {
		name        string
		description string
		expected    string
	}{
		{
			name:        "single line",
			description: `Say "hi"`,
			expected:    "type Foo {\n  \"Say \\\"hi\\\"\"\n  a: Int\n}\n",
		},
		{
			name:        "multiple lines",
			description: "First\n\n  indented\nlast \"\"\" quote",
			expected:    "type Foo {\n  \"\"\"\n  First\n\n    indented\n  last \\\"\"\" quote\n  \"\"\"\n  a: Int\n}\n",
		},
		{
			name:        "leading blank line",
			description: "\nafter",
			expected:    "type Foo {\n  \"\\nafter\"\n  a: Int\n}\n",
		},
		{
			name:        "every line indented",
			description: "  a\n  b",
			expected:    "type Foo {\n  \"  a\\n  b\"\n  a: Int\n}\n",
		},
		{
			name:        "control characters",
			description: "a\x01\nb",
			expected:    "type Foo {\n  \"a\\u0001\\nb\"\n  a: Int\n}\n",
		},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			f := ast.NewFieldBuilder("a").SetDescription(c.description).SetType(ast.NewTypeBuilder("Int").SetKind(ast.KindScalar))
			schema := ast.NewSchemaBuilder().AddType(ast.NewTypeBuilder("Foo").SetKind(ast.KindObject).AddField(f)).Build()
			printed := printer.PrintSchema(schema, printer.DefaultOptions())
			checkPrint(t, c.expected, printed)

			reparsed := parseSchema(t, printed)
			assert.Equal(t, c.description, reparsed.Type("Foo").(*ast.ObjectType).Field("a").Description)
		})
	}
}

func TestSchemaPrinter_SynthesizesDeprecation(t *testing.T) {
	build := func(reason string) *ast.Schema {
		typ := ast.NewTypeBuilder("Foo").SetKind(ast.KindObject).
			AddField(ast.NewFieldBuilder("a").SetType(ast.NewTypeBuilder("Int").SetKind(ast.KindScalar)).SetDeprecated(reason))
		enum := ast.NewTypeBuilder("E").SetKind(ast.KindEnum).
			AddEnumValue(ast.NewEnumValueBuilder("X").SetDeprecated(reason))
		return ast.NewSchemaBuilder().AddType(typ).AddType(enum).Build()
	}

	checkPrint(t, "type Foo {\n  a: Int @deprecated\n}\n\nenum E {\n  X @deprecated\n}\n",
		printer.PrintSchema(build(ast.DefaultDeprecationReason), printer.DefaultOptions()))

	printed := printer.PrintSchema(build(`Use "b"`), printer.DefaultOptions())
	checkPrint(t, "type Foo {\n  a: Int @deprecated(reason: \"Use \\\"b\\\"\")\n}\n\nenum E {\n  X @deprecated(reason: \"Use \\\"b\\\"\")\n}\n", printed)

	reparsed := parseSchema(t, printed)
	field := reparsed.Type("Foo").(*ast.ObjectType).Field("a")
	require.True(t, field.IsDeprecated)
	assert.Equal(t, `Use "b"`, field.DeprecationReason)
}

func TestSchemaPrinter_EmptyBodiesOmitBraces(t *testing.T) {
	schema := ast.NewSchemaBuilder().
		AddType(ast.NewTypeBuilder("O").SetKind(ast.KindObject)).
		AddType(ast.NewTypeBuilder("E").SetKind(ast.KindEnum)).
		AddType(ast.NewTypeBuilder("I").SetKind(ast.KindInputObject)).
		AddType(ast.NewTypeBuilder("U").SetKind(ast.KindUnion)).
		Build()
	checkPrint(t, "type O\n\nenum E\n\ninput I\n\nunion U\n", printer.PrintSchema(schema, printer.DefaultOptions()))
}

func TestSchemaPrinter_SubscriptionRoot(t *testing.T) {
	schema := parseSchema(t, `schema { subscription: S } type S { a: Int }`)
	printed := printer.PrintSchema(schema, printer.DefaultOptions())
	assert.True(t, strings.HasPrefix(printed, "schema {\n  subscription: S\n}\n\ntype S"), printed)
}

func BenchmarkPrintSchema(b *testing.B) {
	schema := parseSchema(b, readFile(b, "schema-kitchen-sink.graphqls"))
	opts := printer.DefaultOptions()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		printer.PrintSchema(schema, opts)
	}
}
