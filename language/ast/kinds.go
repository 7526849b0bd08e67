package ast

// TypeKind tags the variants of Type.
type TypeKind int

const (
	KindUnset TypeKind = iota
	KindScalar
	KindObject
	KindInterface
	KindUnion
	KindEnum
	KindInputObject
	KindList
	KindNonNull
)

var typeKindNames = [...]string{
	KindUnset:       "UNSET",
	KindScalar:      "SCALAR",
	KindObject:      "OBJECT",
	KindInterface:   "INTERFACE",
	KindUnion:       "UNION",
	KindEnum:        "ENUM",
	KindInputObject: "INPUT_OBJECT",
	KindList:        "LIST",
	KindNonNull:     "NON_NULL",
}

func (k TypeKind) String() string {
	if k < 0 || int(k) >= len(typeKindNames) {
		return "UNKNOWN"
	}
	return typeKindNames[k]
}

// Keyword is the SDL keyword that declares a named type of this kind.
func (k TypeKind) Keyword() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindObject:
		return "type"
	case KindInterface:
		return "interface"
	case KindUnion:
		return "union"
	case KindEnum:
		return "enum"
	case KindInputObject:
		return "input"
	}
	return ""
}

// OperationType is the kind of an operation definition.
type OperationType string

const (
	OperationQuery        OperationType = "query"
	OperationMutation     OperationType = "mutation"
	OperationSubscription OperationType = "subscription"
)

// SelectionKind tags the alternatives of Selection.
type SelectionKind int

const (
	SelectionField SelectionKind = iota + 1
	SelectionFragmentSpread
	SelectionInlineFragment
)

// ValueKind classifies a raw literal by its leading token.
type ValueKind int

const (
	ValueInt ValueKind = iota + 1
	ValueFloat
	ValueString
	ValueBoolean
	ValueNull
	ValueEnum
	ValueVariable
	ValueList
	ValueObject
)

var valueKindNames = map[ValueKind]string{
	ValueInt:      "Int",
	ValueFloat:    "Float",
	ValueString:   "String",
	ValueBoolean:  "Boolean",
	ValueNull:     "Null",
	ValueEnum:     "Enum",
	ValueVariable: "Variable",
	ValueList:     "List",
	ValueObject:   "Object",
}

func (k ValueKind) String() string {
	if s, ok := valueKindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// Directive placements grouped by the three booleans of a DirectiveDefinition.
var (
	OperationLocations = []string{"QUERY", "MUTATION", "SUBSCRIPTION"}
	FragmentLocations  = []string{"FRAGMENT_DEFINITION", "FRAGMENT_SPREAD", "INLINE_FRAGMENT"}
	FieldLocations     = []string{"FIELD"}
)

// DirectiveLocations lists every placement a directive definition may name.
var DirectiveLocations = []string{
	"QUERY",
	"MUTATION",
	"SUBSCRIPTION",
	"FIELD",
	"FRAGMENT_DEFINITION",
	"FRAGMENT_SPREAD",
	"INLINE_FRAGMENT",
	"VARIABLE_DEFINITION",
	"SCHEMA",
	"SCALAR",
	"OBJECT",
	"FIELD_DEFINITION",
	"ARGUMENT_DEFINITION",
	"INTERFACE",
	"UNION",
	"ENUM",
	"ENUM_VALUE",
	"INPUT_OBJECT",
	"INPUT_FIELD_DEFINITION",
}
