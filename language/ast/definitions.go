package ast

// OperationDefinition is a query, mutation or subscription. Name is empty
// for anonymous operations.
type OperationDefinition struct {
	Loc                 Location
	Operation           OperationType
	Name                string
	VariableDefinitions []*VariableDefinition
	Directives          []*Directive
	SelectionSet        []Selection
}

func (op *OperationDefinition) GetLoc() Location {
	return op.Loc
}

// IsShorthand reports whether the operation can be written as a bare
// selection set.
func (op *OperationDefinition) IsShorthand() bool {
	return op.Operation == OperationQuery && op.Name == "" &&
		len(op.VariableDefinitions) == 0 && len(op.Directives) == 0
}

// FragmentDefinition is a named fragment on a type condition.
type FragmentDefinition struct {
	Loc           Location
	Name          string
	TypeCondition string
	Directives    []*Directive
	SelectionSet  []Selection
}

func (fd *FragmentDefinition) GetLoc() Location {
	return fd.Loc
}

// VariableDefinition declares an operation variable. Type is the canonical
// text of the declared type, for example "[Int!]!".
type VariableDefinition struct {
	Loc          Location
	Variable     string
	Type         string
	DefaultValue *Value
}

func (vd *VariableDefinition) GetLoc() Location {
	return vd.Loc
}

// OperationBuilder builds an OperationDefinition.
type OperationBuilder struct {
	loc        Location
	operation  OperationType
	name       string
	variables  []*VariableDefinitionBuilder
	directives []*DirectiveBuilder
	selections []*SelectionBuilder
	built      *OperationDefinition
}

// NewOperationBuilder starts an operation of the given type. An empty type
// means query.
func NewOperationBuilder(operation OperationType) *OperationBuilder {
	if operation == "" {
		operation = OperationQuery
	}
	return &OperationBuilder{operation: operation}
}

func (b *OperationBuilder) Operation() OperationType { return b.operation }
func (b *OperationBuilder) Name() string             { return b.name }

func (b *OperationBuilder) SetLoc(loc Location) *OperationBuilder {
	b.mutable()
	b.loc = loc
	return b
}

func (b *OperationBuilder) SetName(name string) *OperationBuilder {
	b.mutable()
	b.name = name
	return b
}

func (b *OperationBuilder) AddVariableDefinition(v *VariableDefinitionBuilder) *OperationBuilder {
	b.mutable()
	b.variables = append(b.variables, v)
	return b
}

func (b *OperationBuilder) AddDirective(d *DirectiveBuilder) *OperationBuilder {
	b.mutable()
	b.directives = append(b.directives, d)
	return b
}

func (b *OperationBuilder) AddSelection(s *SelectionBuilder) *OperationBuilder {
	b.mutable()
	b.selections = append(b.selections, s)
	return b
}

func (b *OperationBuilder) mutable() {
	precondition(b.built == nil, "operation", b.name, "modified after Build")
}

func (b *OperationBuilder) Build() *OperationDefinition {
	if b.built != nil {
		return b.built
	}
	precondition(len(b.selections) != 0, "operation", b.name, "empty selection set")
	b.built = &OperationDefinition{
		Loc:                 b.loc,
		Operation:           b.operation,
		Name:                b.name,
		VariableDefinitions: buildAll(b.variables, (*VariableDefinitionBuilder).Build),
		Directives:          buildAll(b.directives, (*DirectiveBuilder).Build),
		SelectionSet:        buildAll(b.selections, (*SelectionBuilder).Build),
	}
	return b.built
}

// FragmentBuilder builds a FragmentDefinition.
type FragmentBuilder struct {
	loc           Location
	name          string
	typeCondition string
	directives    []*DirectiveBuilder
	selections    []*SelectionBuilder
	built         *FragmentDefinition
}

func NewFragmentBuilder(name, typeCondition string) *FragmentBuilder {
	return &FragmentBuilder{name: name, typeCondition: typeCondition}
}

func (b *FragmentBuilder) Name() string { return b.name }

func (b *FragmentBuilder) SetLoc(loc Location) *FragmentBuilder {
	b.mutable()
	b.loc = loc
	return b
}

func (b *FragmentBuilder) AddDirective(d *DirectiveBuilder) *FragmentBuilder {
	b.mutable()
	b.directives = append(b.directives, d)
	return b
}

func (b *FragmentBuilder) AddSelection(s *SelectionBuilder) *FragmentBuilder {
	b.mutable()
	b.selections = append(b.selections, s)
	return b
}

func (b *FragmentBuilder) mutable() {
	precondition(b.built == nil, "fragment", b.name, "modified after Build")
}

func (b *FragmentBuilder) Build() *FragmentDefinition {
	if b.built != nil {
		return b.built
	}
	precondition(b.name != "", "fragment", b.name, "no name")
	precondition(b.typeCondition != "", "fragment", b.name, "no type condition")
	precondition(len(b.selections) != 0, "fragment", b.name, "empty selection set")
	b.built = &FragmentDefinition{
		Loc:           b.loc,
		Name:          b.name,
		TypeCondition: b.typeCondition,
		Directives:    buildAll(b.directives, (*DirectiveBuilder).Build),
		SelectionSet:  buildAll(b.selections, (*SelectionBuilder).Build),
	}
	return b.built
}

// VariableDefinitionBuilder builds a VariableDefinition.
type VariableDefinitionBuilder struct {
	loc          Location
	variable     string
	typ          string
	defaultValue *Value
	built        *VariableDefinition
}

func NewVariableDefinitionBuilder(variable, typ string) *VariableDefinitionBuilder {
	return &VariableDefinitionBuilder{variable: variable, typ: typ}
}

func (b *VariableDefinitionBuilder) SetLoc(loc Location) *VariableDefinitionBuilder {
	b.mutable()
	b.loc = loc
	return b
}

func (b *VariableDefinitionBuilder) SetDefaultValue(v *Value) *VariableDefinitionBuilder {
	b.mutable()
	b.defaultValue = v
	return b
}

func (b *VariableDefinitionBuilder) mutable() {
	precondition(b.built == nil, "variable", b.variable, "modified after Build")
}

func (b *VariableDefinitionBuilder) Build() *VariableDefinition {
	if b.built != nil {
		return b.built
	}
	precondition(b.variable != "", "variable", b.variable, "no name")
	precondition(b.typ != "", "variable", b.variable, "no type")
	b.built = &VariableDefinition{
		Loc:          b.loc,
		Variable:     b.variable,
		Type:         b.typ,
		DefaultValue: b.defaultValue,
	}
	return b.built
}
