package ast

import (
	"github.com/sprucehealth/gqlast/language/source"
)

// Node is implemented by every AST node.
type Node interface {
	GetLoc() Location
}

// Location is the byte span of a node in its source. Source is nil when the
// parser was asked not to keep it.
type Location struct {
	Start  int
	End    int
	Source *source.Source
}

var (
	_ Node = (*Schema)(nil)
	_ Node = (*ScalarType)(nil)
	_ Node = (*ObjectType)(nil)
	_ Node = (*InterfaceType)(nil)
	_ Node = (*UnionType)(nil)
	_ Node = (*EnumType)(nil)
	_ Node = (*InputObjectType)(nil)
	_ Node = (*ListType)(nil)
	_ Node = (*NonNullType)(nil)
	_ Node = (*FieldDefinition)(nil)
	_ Node = (*InputValue)(nil)
	_ Node = (*EnumValue)(nil)
	_ Node = (*DirectiveDefinition)(nil)
	_ Node = (*Document)(nil)
	_ Node = (*OperationDefinition)(nil)
	_ Node = (*FragmentDefinition)(nil)
	_ Node = (*VariableDefinition)(nil)
	_ Node = (*Field)(nil)
	_ Node = (*FragmentSpread)(nil)
	_ Node = (*InlineFragment)(nil)
	_ Node = (*Argument)(nil)
	_ Node = (*Directive)(nil)
	_ Node = (*Value)(nil)
)
