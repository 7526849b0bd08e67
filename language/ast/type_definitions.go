package ast

// Type is a node of the schema type graph. Named kinds are shared: every
// reference to a declared name points at the same instance. List and NonNull
// wrap exactly one inner type.
type Type interface {
	Node
	Kind() TypeKind
	// TypeName is the declared name, or the rendered reference ("[Int!]")
	// for List and NonNull.
	TypeName() string
	GetDescription() string
	String() string
}

var (
	_ Type = (*ScalarType)(nil)
	_ Type = (*ObjectType)(nil)
	_ Type = (*InterfaceType)(nil)
	_ Type = (*UnionType)(nil)
	_ Type = (*EnumType)(nil)
	_ Type = (*InputObjectType)(nil)
	_ Type = (*ListType)(nil)
	_ Type = (*NonNullType)(nil)
)

// ScalarType implements Type
type ScalarType struct {
	Loc         Location
	Name        string
	Description string
	Directives  []*Directive
}

func (t *ScalarType) GetLoc() Location       { return t.Loc }
func (t *ScalarType) Kind() TypeKind         { return KindScalar }
func (t *ScalarType) TypeName() string       { return t.Name }
func (t *ScalarType) GetDescription() string { return t.Description }
func (t *ScalarType) String() string         { return t.Name }

// ObjectType implements Type
type ObjectType struct {
	Loc         Location
	Name        string
	Description string
	Interfaces  []*InterfaceType
	Fields      []*FieldDefinition
	Directives  []*Directive
}

func (t *ObjectType) GetLoc() Location       { return t.Loc }
func (t *ObjectType) Kind() TypeKind         { return KindObject }
func (t *ObjectType) TypeName() string       { return t.Name }
func (t *ObjectType) GetDescription() string { return t.Description }
func (t *ObjectType) String() string         { return t.Name }

// InterfaceNames returns the names of the implemented interfaces in order.
func (t *ObjectType) InterfaceNames() []string {
	names := make([]string, len(t.Interfaces))
	for i, it := range t.Interfaces {
		names[i] = it.Name
	}
	return names
}

// Field returns the field with the given name or nil.
func (t *ObjectType) Field(name string) *FieldDefinition {
	return findField(t.Fields, name)
}

// InterfaceType implements Type. PossibleTypes is the set of object types
// declaring the interface, in declaration order.
type InterfaceType struct {
	Loc           Location
	Name          string
	Description   string
	Fields        []*FieldDefinition
	PossibleTypes []*ObjectType
	Directives    []*Directive
}

func (t *InterfaceType) GetLoc() Location       { return t.Loc }
func (t *InterfaceType) Kind() TypeKind         { return KindInterface }
func (t *InterfaceType) TypeName() string       { return t.Name }
func (t *InterfaceType) GetDescription() string { return t.Description }
func (t *InterfaceType) String() string         { return t.Name }

// Field returns the field with the given name or nil.
func (t *InterfaceType) Field(name string) *FieldDefinition {
	return findField(t.Fields, name)
}

// UnionType implements Type
type UnionType struct {
	Loc           Location
	Name          string
	Description   string
	PossibleTypes []Type
	Directives    []*Directive
}

func (t *UnionType) GetLoc() Location       { return t.Loc }
func (t *UnionType) Kind() TypeKind         { return KindUnion }
func (t *UnionType) TypeName() string       { return t.Name }
func (t *UnionType) GetDescription() string { return t.Description }
func (t *UnionType) String() string         { return t.Name }

// EnumType implements Type
type EnumType struct {
	Loc         Location
	Name        string
	Description string
	Values      []*EnumValue
	Directives  []*Directive
}

func (t *EnumType) GetLoc() Location       { return t.Loc }
func (t *EnumType) Kind() TypeKind         { return KindEnum }
func (t *EnumType) TypeName() string       { return t.Name }
func (t *EnumType) GetDescription() string { return t.Description }
func (t *EnumType) String() string         { return t.Name }

// InputObjectType implements Type
type InputObjectType struct {
	Loc         Location
	Name        string
	Description string
	Fields      []*InputValue
	Directives  []*Directive
}

func (t *InputObjectType) GetLoc() Location       { return t.Loc }
func (t *InputObjectType) Kind() TypeKind         { return KindInputObject }
func (t *InputObjectType) TypeName() string       { return t.Name }
func (t *InputObjectType) GetDescription() string { return t.Description }
func (t *InputObjectType) String() string         { return t.Name }

// ListType implements Type
type ListType struct {
	Loc    Location
	OfType Type
}

func (t *ListType) GetLoc() Location       { return t.Loc }
func (t *ListType) Kind() TypeKind         { return KindList }
func (t *ListType) TypeName() string       { return t.String() }
func (t *ListType) GetDescription() string { return "" }
func (t *ListType) String() string         { return "[" + t.OfType.String() + "]" }

// NonNullType implements Type
type NonNullType struct {
	Loc    Location
	OfType Type
}

func (t *NonNullType) GetLoc() Location       { return t.Loc }
func (t *NonNullType) Kind() TypeKind         { return KindNonNull }
func (t *NonNullType) TypeName() string       { return t.String() }
func (t *NonNullType) GetDescription() string { return "" }
func (t *NonNullType) String() string         { return t.OfType.String() + "!" }

// NamedType strips List and NonNull wrappers.
func NamedType(t Type) Type {
	for {
		switch w := t.(type) {
		case *ListType:
			t = w.OfType
		case *NonNullType:
			t = w.OfType
		default:
			return t
		}
	}
}

// IsNamed reports whether t is a declared type rather than a modifier.
func IsNamed(t Type) bool {
	switch t.(type) {
	case *ListType, *NonNullType:
		return false
	}
	return t != nil
}

func findField(fields []*FieldDefinition, name string) *FieldDefinition {
	for _, f := range fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}
