package ast

import "slices"

// DirectiveDefinition is a `directive @name(...) on ...` declaration.
// Locations keeps the declared placements in order; the three booleans
// summarize them.
type DirectiveDefinition struct {
	Loc         Location
	Name        string
	Description string
	Arguments   []*InputValue
	OnOperation bool
	OnFragment  bool
	OnField     bool
	Locations   []string
}

func (d *DirectiveDefinition) GetLoc() Location {
	return d.Loc
}

// Directive is a directive usage such as `@include(if: $x)`.
type Directive struct {
	Loc       Location
	Name      string
	Arguments []*Argument
}

func (d *Directive) GetLoc() Location {
	return d.Loc
}

// Argument returns the argument with the given name or nil.
func (d *Directive) Argument(name string) *Argument {
	return findArgument(d.Arguments, name)
}

// Argument is a name and literal pair passed to a field or directive.
type Argument struct {
	Loc   Location
	Name  string
	Value *Value
}

func (a *Argument) GetLoc() Location {
	return a.Loc
}

func findArgument(args []*Argument, name string) *Argument {
	for _, a := range args {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// DirectiveDefinitionBuilder builds a DirectiveDefinition.
type DirectiveDefinitionBuilder struct {
	loc         Location
	name        string
	description string
	arguments   []*InputValueBuilder
	onOperation bool
	onFragment  bool
	onField     bool
	locations   []string
	built       *DirectiveDefinition
}

func NewDirectiveDefinitionBuilder(name string) *DirectiveDefinitionBuilder {
	return &DirectiveDefinitionBuilder{name: name}
}

func (b *DirectiveDefinitionBuilder) Name() string { return b.name }

func (b *DirectiveDefinitionBuilder) SetLoc(loc Location) *DirectiveDefinitionBuilder {
	b.mutable()
	b.loc = loc
	return b
}

func (b *DirectiveDefinitionBuilder) SetDescription(d string) *DirectiveDefinitionBuilder {
	b.mutable()
	b.description = d
	return b
}

func (b *DirectiveDefinitionBuilder) AddArgument(a *InputValueBuilder) *DirectiveDefinitionBuilder {
	b.mutable()
	b.arguments = append(b.arguments, a)
	return b
}

func (b *DirectiveDefinitionBuilder) SetOnOperation(v bool) *DirectiveDefinitionBuilder {
	b.mutable()
	b.onOperation = v
	return b
}

func (b *DirectiveDefinitionBuilder) SetOnFragment(v bool) *DirectiveDefinitionBuilder {
	b.mutable()
	b.onFragment = v
	return b
}

func (b *DirectiveDefinitionBuilder) SetOnField(v bool) *DirectiveDefinitionBuilder {
	b.mutable()
	b.onField = v
	return b
}

// AddLocation records a placement name and sets the matching boolean.
func (b *DirectiveDefinitionBuilder) AddLocation(loc string) *DirectiveDefinitionBuilder {
	b.mutable()
	b.locations = append(b.locations, loc)
	switch {
	case slices.Contains(OperationLocations, loc):
		b.onOperation = true
	case slices.Contains(FragmentLocations, loc):
		b.onFragment = true
	case slices.Contains(FieldLocations, loc):
		b.onField = true
	}
	return b
}

func (b *DirectiveDefinitionBuilder) mutable() {
	precondition(b.built == nil, "directive", b.name, "modified after Build")
}

func (b *DirectiveDefinitionBuilder) Build() *DirectiveDefinition {
	if b.built != nil {
		return b.built
	}
	precondition(b.name != "", "directive", b.name, "no name")
	b.built = &DirectiveDefinition{
		Loc:         b.loc,
		Name:        b.name,
		Description: b.description,
		Arguments:   buildAll(b.arguments, (*InputValueBuilder).Build),
		OnOperation: b.onOperation,
		OnFragment:  b.onFragment,
		OnField:     b.onField,
		Locations:   slices.Clone(b.locations),
	}
	return b.built
}

// DirectiveBuilder builds a Directive usage.
type DirectiveBuilder struct {
	loc       Location
	name      string
	arguments []*ArgumentBuilder
	built     *Directive
}

func NewDirectiveBuilder(name string) *DirectiveBuilder {
	return &DirectiveBuilder{name: name}
}

func (b *DirectiveBuilder) Name() string { return b.name }

func (b *DirectiveBuilder) SetLoc(loc Location) *DirectiveBuilder {
	b.mutable()
	b.loc = loc
	return b
}

func (b *DirectiveBuilder) AddArgument(a *ArgumentBuilder) *DirectiveBuilder {
	b.mutable()
	b.arguments = append(b.arguments, a)
	return b
}

// Argument returns the argument builder with the given name or nil.
func (b *DirectiveBuilder) Argument(name string) *ArgumentBuilder {
	for _, a := range b.arguments {
		if a.name == name {
			return a
		}
	}
	return nil
}

func (b *DirectiveBuilder) mutable() {
	precondition(b.built == nil, "directive usage", b.name, "modified after Build")
}

func (b *DirectiveBuilder) Build() *Directive {
	if b.built != nil {
		return b.built
	}
	precondition(b.name != "", "directive usage", b.name, "no name")
	b.built = &Directive{
		Loc:       b.loc,
		Name:      b.name,
		Arguments: buildAll(b.arguments, (*ArgumentBuilder).Build),
	}
	return b.built
}

// ArgumentBuilder builds an Argument.
type ArgumentBuilder struct {
	loc   Location
	name  string
	value *Value
	built *Argument
}

func NewArgumentBuilder(name string, value *Value) *ArgumentBuilder {
	return &ArgumentBuilder{name: name, value: value}
}

func (b *ArgumentBuilder) Name() string  { return b.name }
func (b *ArgumentBuilder) Value() *Value { return b.value }

func (b *ArgumentBuilder) SetLoc(loc Location) *ArgumentBuilder {
	precondition(b.built == nil, "argument", b.name, "modified after Build")
	b.loc = loc
	return b
}

func (b *ArgumentBuilder) Build() *Argument {
	if b.built != nil {
		return b.built
	}
	precondition(b.name != "", "argument", b.name, "no name")
	precondition(b.value != nil, "argument", b.name, "no value")
	b.built = &Argument{
		Loc:   b.loc,
		Name:  b.name,
		Value: b.value,
	}
	return b.built
}
