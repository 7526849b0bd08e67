package ast

// DefaultDeprecationReason is used when @deprecated has no reason argument.
const DefaultDeprecationReason = "No longer supported"

// FieldDefinition is a field of an object or interface type.
type FieldDefinition struct {
	Loc               Location
	Name              string
	Description       string
	Arguments         []*InputValue
	Type              Type
	IsDeprecated      bool
	DeprecationReason string
	Directives        []*Directive
}

func (f *FieldDefinition) GetLoc() Location {
	return f.Loc
}

// Argument returns the argument with the given name or nil.
func (f *FieldDefinition) Argument(name string) *InputValue {
	for _, a := range f.Arguments {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// InputValue is a field argument, an input object field or a directive
// argument. DefaultValue keeps the literal source text.
type InputValue struct {
	Loc          Location
	Name         string
	Description  string
	Type         Type
	DefaultValue *Value
	Directives   []*Directive
}

func (v *InputValue) GetLoc() Location {
	return v.Loc
}

// EnumValue is one member of an enum type.
type EnumValue struct {
	Loc               Location
	Name              string
	Description       string
	IsDeprecated      bool
	DeprecationReason string
	Directives        []*Directive
}

func (v *EnumValue) GetLoc() Location {
	return v.Loc
}

// FieldBuilder builds a FieldDefinition.
type FieldBuilder struct {
	loc         Location
	name        string
	description string
	arguments   []*InputValueBuilder
	typ         *TypeBuilder
	deprecated  bool
	reason      string
	directives  []*DirectiveBuilder
	built       *FieldDefinition
}

func NewFieldBuilder(name string) *FieldBuilder {
	return &FieldBuilder{name: name}
}

func (b *FieldBuilder) Name() string { return b.name }

func (b *FieldBuilder) SetLoc(loc Location) *FieldBuilder {
	b.mutable()
	b.loc = loc
	return b
}

func (b *FieldBuilder) SetDescription(d string) *FieldBuilder {
	b.mutable()
	b.description = d
	return b
}

func (b *FieldBuilder) AddArgument(a *InputValueBuilder) *FieldBuilder {
	b.mutable()
	b.arguments = append(b.arguments, a)
	return b
}

func (b *FieldBuilder) SetType(t *TypeBuilder) *FieldBuilder {
	b.mutable()
	b.typ = t
	return b
}

func (b *FieldBuilder) SetDeprecated(reason string) *FieldBuilder {
	b.mutable()
	b.deprecated = true
	b.reason = reason
	return b
}

func (b *FieldBuilder) AddDirective(d *DirectiveBuilder) *FieldBuilder {
	b.mutable()
	b.directives = append(b.directives, d)
	return b
}

func (b *FieldBuilder) mutable() {
	precondition(b.built == nil, "field", b.name, "modified after Build")
}

// Build returns the field, building its type and arguments first.
func (b *FieldBuilder) Build() *FieldDefinition {
	if b.built != nil {
		return b.built
	}
	precondition(b.name != "", "field", b.name, "no name")
	precondition(b.typ != nil, "field", b.name, "no type")
	f := &FieldDefinition{
		Loc:               b.loc,
		Name:              b.name,
		Description:       b.description,
		IsDeprecated:      b.deprecated,
		DeprecationReason: b.reason,
	}
	b.built = f
	f.Arguments = buildAll(b.arguments, (*InputValueBuilder).Build)
	f.Type = b.typ.Build()
	f.Directives = buildAll(b.directives, (*DirectiveBuilder).Build)
	return f
}

// InputValueBuilder builds an InputValue.
type InputValueBuilder struct {
	loc          Location
	name         string
	description  string
	typ          *TypeBuilder
	defaultValue *Value
	directives   []*DirectiveBuilder
	built        *InputValue
}

func NewInputValueBuilder(name string) *InputValueBuilder {
	return &InputValueBuilder{name: name}
}

func (b *InputValueBuilder) Name() string { return b.name }

func (b *InputValueBuilder) SetLoc(loc Location) *InputValueBuilder {
	b.mutable()
	b.loc = loc
	return b
}

func (b *InputValueBuilder) SetDescription(d string) *InputValueBuilder {
	b.mutable()
	b.description = d
	return b
}

func (b *InputValueBuilder) SetType(t *TypeBuilder) *InputValueBuilder {
	b.mutable()
	b.typ = t
	return b
}

func (b *InputValueBuilder) SetDefaultValue(v *Value) *InputValueBuilder {
	b.mutable()
	b.defaultValue = v
	return b
}

func (b *InputValueBuilder) AddDirective(d *DirectiveBuilder) *InputValueBuilder {
	b.mutable()
	b.directives = append(b.directives, d)
	return b
}

func (b *InputValueBuilder) mutable() {
	precondition(b.built == nil, "input value", b.name, "modified after Build")
}

func (b *InputValueBuilder) Build() *InputValue {
	if b.built != nil {
		return b.built
	}
	precondition(b.name != "", "input value", b.name, "no name")
	precondition(b.typ != nil, "input value", b.name, "no type")
	v := &InputValue{
		Loc:          b.loc,
		Name:         b.name,
		Description:  b.description,
		DefaultValue: b.defaultValue,
	}
	b.built = v
	v.Type = b.typ.Build()
	v.Directives = buildAll(b.directives, (*DirectiveBuilder).Build)
	return v
}

// EnumValueBuilder builds an EnumValue.
type EnumValueBuilder struct {
	loc         Location
	name        string
	description string
	deprecated  bool
	reason      string
	directives  []*DirectiveBuilder
	built       *EnumValue
}

func NewEnumValueBuilder(name string) *EnumValueBuilder {
	return &EnumValueBuilder{name: name}
}

func (b *EnumValueBuilder) Name() string { return b.name }

func (b *EnumValueBuilder) SetLoc(loc Location) *EnumValueBuilder {
	b.mutable()
	b.loc = loc
	return b
}

func (b *EnumValueBuilder) SetDescription(d string) *EnumValueBuilder {
	b.mutable()
	b.description = d
	return b
}

func (b *EnumValueBuilder) SetDeprecated(reason string) *EnumValueBuilder {
	b.mutable()
	b.deprecated = true
	b.reason = reason
	return b
}

func (b *EnumValueBuilder) AddDirective(d *DirectiveBuilder) *EnumValueBuilder {
	b.mutable()
	b.directives = append(b.directives, d)
	return b
}

func (b *EnumValueBuilder) mutable() {
	precondition(b.built == nil, "enum value", b.name, "modified after Build")
}

func (b *EnumValueBuilder) Build() *EnumValue {
	if b.built != nil {
		return b.built
	}
	precondition(b.name != "", "enum value", b.name, "no name")
	b.built = &EnumValue{
		Loc:               b.loc,
		Name:              b.name,
		Description:       b.description,
		IsDeprecated:      b.deprecated,
		DeprecationReason: b.reason,
		Directives:        buildAll(b.directives, (*DirectiveBuilder).Build),
	}
	return b.built
}

// buildAll builds every builder in order. Empty input yields nil.
func buildAll[B any, N any](bs []B, build func(B) N) []N {
	if len(bs) == 0 {
		return nil
	}
	out := make([]N, len(bs))
	for i, b := range bs {
		out[i] = build(b)
	}
	return out
}
