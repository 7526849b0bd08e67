package ast

import "slices"

// TypeBuilder builds any Type. Named builders are shared through the type
// registry so that every reference converges on one instance; their kind is
// set by the declaration, which may come after the first reference. List and
// NonNull builders are created per reference.
type TypeBuilder struct {
	loc           Location
	name          string
	kind          TypeKind
	description   string
	directives    []*DirectiveBuilder
	fields        []*FieldBuilder
	interfaces    []*TypeBuilder
	possibleTypes []*TypeBuilder
	enumValues    []*EnumValueBuilder
	inputFields   []*InputValueBuilder
	ofType        *TypeBuilder
	built         Type
}

// NewTypeBuilder returns a builder for a named type whose kind is not known yet.
func NewTypeBuilder(name string) *TypeBuilder {
	return &TypeBuilder{name: name}
}

// NewListTypeBuilder wraps ofType in a list.
func NewListTypeBuilder(ofType *TypeBuilder) *TypeBuilder {
	precondition(ofType != nil, "type", "", "list of nil")
	return &TypeBuilder{kind: KindList, ofType: ofType}
}

// NewNonNullTypeBuilder wraps ofType in a non-null modifier.
func NewNonNullTypeBuilder(ofType *TypeBuilder) *TypeBuilder {
	precondition(ofType != nil, "type", "", "non-null of nil")
	precondition(ofType.kind != KindNonNull, "type", ofType.String(), "non-null of non-null")
	return &TypeBuilder{kind: KindNonNull, ofType: ofType}
}

func (b *TypeBuilder) Name() string                      { return b.name }
func (b *TypeBuilder) Kind() TypeKind                    { return b.kind }
func (b *TypeBuilder) Description() string               { return b.description }
func (b *TypeBuilder) Loc() Location                     { return b.loc }
func (b *TypeBuilder) OfType() *TypeBuilder              { return b.ofType }
func (b *TypeBuilder) Fields() []*FieldBuilder           { return b.fields }
func (b *TypeBuilder) Interfaces() []*TypeBuilder        { return b.interfaces }
func (b *TypeBuilder) PossibleTypes() []*TypeBuilder     { return b.possibleTypes }
func (b *TypeBuilder) EnumValues() []*EnumValueBuilder   { return b.enumValues }
func (b *TypeBuilder) InputFields() []*InputValueBuilder { return b.inputFields }
func (b *TypeBuilder) Directives() []*DirectiveBuilder   { return b.directives }
func (b *TypeBuilder) IsBuilt() bool                     { return b.built != nil }

// String renders the type reference.
func (b *TypeBuilder) String() string {
	switch b.kind {
	case KindList:
		return "[" + b.ofType.String() + "]"
	case KindNonNull:
		return b.ofType.String() + "!"
	}
	return b.name
}

// SetKind fixes the kind of a named type. Changing an already set kind is a
// contract violation; the registry reports collisions before calling this.
func (b *TypeBuilder) SetKind(kind TypeKind) *TypeBuilder {
	b.mutable()
	precondition(kind != KindList && kind != KindNonNull, "type", b.name, "named type cannot be %s", kind)
	precondition(b.kind == KindUnset || b.kind == kind, "type", b.name, "kind %s already set, cannot change to %s", b.kind, kind)
	b.kind = kind
	return b
}

func (b *TypeBuilder) SetLoc(loc Location) *TypeBuilder {
	b.mutable()
	b.loc = loc
	return b
}

func (b *TypeBuilder) SetDescription(d string) *TypeBuilder {
	b.mutable()
	b.description = d
	return b
}

func (b *TypeBuilder) AddDirective(d *DirectiveBuilder) *TypeBuilder {
	b.mutable()
	b.directives = append(b.directives, d)
	return b
}

func (b *TypeBuilder) AddField(f *FieldBuilder) *TypeBuilder {
	b.mutable()
	b.fields = append(b.fields, f)
	return b
}

func (b *TypeBuilder) AddInterface(i *TypeBuilder) *TypeBuilder {
	b.mutable()
	b.interfaces = append(b.interfaces, i)
	return b
}

// AddPossibleType appends a union member or an interface implementer.
func (b *TypeBuilder) AddPossibleType(t *TypeBuilder) *TypeBuilder {
	b.mutable()
	b.possibleTypes = append(b.possibleTypes, t)
	return b
}

// HasPossibleType reports whether t is already listed, by identity.
func (b *TypeBuilder) HasPossibleType(t *TypeBuilder) bool {
	return slices.Contains(b.possibleTypes, t)
}

func (b *TypeBuilder) AddEnumValue(v *EnumValueBuilder) *TypeBuilder {
	b.mutable()
	b.enumValues = append(b.enumValues, v)
	return b
}

func (b *TypeBuilder) AddInputField(v *InputValueBuilder) *TypeBuilder {
	b.mutable()
	b.inputFields = append(b.inputFields, v)
	return b
}

func (b *TypeBuilder) mutable() {
	precondition(b.built == nil, "type", b.String(), "modified after Build")
}

// Build returns the type for the builder's kind, building children first.
// The result is cached: repeated calls, including recursive ones reached
// through cycles such as an interface and its implementers, return the
// same instance.
func (b *TypeBuilder) Build() Type {
	if b.built != nil {
		return b.built
	}
	b.checkShape()
	switch b.kind {
	case KindScalar:
		t := &ScalarType{Loc: b.loc, Name: b.name, Description: b.description}
		b.built = t
		t.Directives = buildAll(b.directives, (*DirectiveBuilder).Build)
	case KindObject:
		t := &ObjectType{Loc: b.loc, Name: b.name, Description: b.description}
		b.built = t
		for _, ib := range b.interfaces {
			precondition(ib.kind == KindInterface, "type", b.name, "implements %s which is %s", ib.name, ib.kind)
			t.Interfaces = append(t.Interfaces, ib.Build().(*InterfaceType))
		}
		t.Fields = buildAll(b.fields, (*FieldBuilder).Build)
		t.Directives = buildAll(b.directives, (*DirectiveBuilder).Build)
	case KindInterface:
		t := &InterfaceType{Loc: b.loc, Name: b.name, Description: b.description}
		b.built = t
		t.Fields = buildAll(b.fields, (*FieldBuilder).Build)
		for _, pb := range b.possibleTypes {
			precondition(pb.kind == KindObject, "type", b.name, "possible type %s is %s", pb.name, pb.kind)
			t.PossibleTypes = append(t.PossibleTypes, pb.Build().(*ObjectType))
		}
		t.Directives = buildAll(b.directives, (*DirectiveBuilder).Build)
	case KindUnion:
		t := &UnionType{Loc: b.loc, Name: b.name, Description: b.description}
		b.built = t
		t.PossibleTypes = buildAll(b.possibleTypes, (*TypeBuilder).Build)
		t.Directives = buildAll(b.directives, (*DirectiveBuilder).Build)
	case KindEnum:
		t := &EnumType{Loc: b.loc, Name: b.name, Description: b.description}
		b.built = t
		t.Values = buildAll(b.enumValues, (*EnumValueBuilder).Build)
		t.Directives = buildAll(b.directives, (*DirectiveBuilder).Build)
	case KindInputObject:
		t := &InputObjectType{Loc: b.loc, Name: b.name, Description: b.description}
		b.built = t
		t.Fields = buildAll(b.inputFields, (*InputValueBuilder).Build)
		t.Directives = buildAll(b.directives, (*DirectiveBuilder).Build)
	case KindList:
		t := &ListType{Loc: b.loc}
		b.built = t
		t.OfType = b.ofType.Build()
	case KindNonNull:
		t := &NonNullType{Loc: b.loc}
		b.built = t
		t.OfType = b.ofType.Build()
	}
	return b.built
}

// checkShape rejects data that the kind cannot carry.
func (b *TypeBuilder) checkShape() {
	name := b.String()
	precondition(b.kind != KindUnset, "type", name, "built before its kind was set")
	switch b.kind {
	case KindList, KindNonNull:
		precondition(b.ofType != nil, "type", name, "modifier without inner type")
	default:
		precondition(b.name != "", "type", name, "named type without a name")
		precondition(b.ofType == nil, "type", name, "%s cannot wrap a type", b.kind)
	}
	precondition(len(b.fields) == 0 || b.kind == KindObject || b.kind == KindInterface,
		"type", name, "fields set on %s", b.kind)
	precondition(len(b.interfaces) == 0 || b.kind == KindObject,
		"type", name, "interfaces set on %s", b.kind)
	precondition(len(b.possibleTypes) == 0 || b.kind == KindUnion || b.kind == KindInterface,
		"type", name, "possible types set on %s", b.kind)
	precondition(len(b.enumValues) == 0 || b.kind == KindEnum,
		"type", name, "enum values set on %s", b.kind)
	precondition(len(b.inputFields) == 0 || b.kind == KindInputObject,
		"type", name, "input fields set on %s", b.kind)
	precondition(len(b.directives) == 0 || (b.kind != KindList && b.kind != KindNonNull),
		"type", name, "directives set on %s", b.kind)
}
