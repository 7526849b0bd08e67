package ast

// Schema is the root of a type system document. Types keeps declaration
// order; builtin scalars are listed only when they were declared.
type Schema struct {
	Loc              Location
	Types            []Type
	QueryType        Type
	MutationType     Type
	SubscriptionType Type
	Directives       []*DirectiveDefinition
}

func (s *Schema) GetLoc() Location {
	return s.Loc
}

// Type returns the named type or nil.
func (s *Schema) Type(name string) Type {
	for _, t := range s.Types {
		if t.TypeName() == name {
			return t
		}
	}
	return nil
}

// Directive returns the directive declaration or nil.
func (s *Schema) Directive(name string) *DirectiveDefinition {
	for _, d := range s.Directives {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// HasRoots reports whether any root operation type is set.
func (s *Schema) HasRoots() bool {
	return s.QueryType != nil || s.MutationType != nil || s.SubscriptionType != nil
}

// SchemaBuilder builds a Schema.
type SchemaBuilder struct {
	loc              Location
	types            []*TypeBuilder
	queryType        *TypeBuilder
	mutationType     *TypeBuilder
	subscriptionType *TypeBuilder
	directives       []*DirectiveDefinitionBuilder
	built            *Schema
}

func NewSchemaBuilder() *SchemaBuilder {
	return &SchemaBuilder{}
}

func (b *SchemaBuilder) Types() []*TypeBuilder                     { return b.types }
func (b *SchemaBuilder) Directives() []*DirectiveDefinitionBuilder { return b.directives }

// RootType returns the builder set for the operation type, if any.
func (b *SchemaBuilder) RootType(op OperationType) *TypeBuilder {
	switch op {
	case OperationQuery:
		return b.queryType
	case OperationMutation:
		return b.mutationType
	case OperationSubscription:
		return b.subscriptionType
	}
	return nil
}

func (b *SchemaBuilder) SetLoc(loc Location) *SchemaBuilder {
	b.mutable()
	b.loc = loc
	return b
}

// AddType appends a declared type. The same builder is listed once.
func (b *SchemaBuilder) AddType(t *TypeBuilder) *SchemaBuilder {
	b.mutable()
	precondition(t.name != "", "schema", "", "type without a name")
	for _, e := range b.types {
		if e == t {
			return b
		}
	}
	b.types = append(b.types, t)
	return b
}

// SetRootType sets the query, mutation or subscription root.
func (b *SchemaBuilder) SetRootType(op OperationType, t *TypeBuilder) *SchemaBuilder {
	b.mutable()
	switch op {
	case OperationQuery:
		b.queryType = t
	case OperationMutation:
		b.mutationType = t
	case OperationSubscription:
		b.subscriptionType = t
	default:
		precondition(false, "schema", "", "unknown operation type %q", op)
	}
	return b
}

func (b *SchemaBuilder) AddDirective(d *DirectiveDefinitionBuilder) *SchemaBuilder {
	b.mutable()
	b.directives = append(b.directives, d)
	return b
}

func (b *SchemaBuilder) mutable() {
	precondition(b.built == nil, "schema", "", "modified after Build")
}

// Build builds every type and directive. Types reachable only through
// references are built as part of the types that reference them.
func (b *SchemaBuilder) Build() *Schema {
	if b.built != nil {
		return b.built
	}
	s := &Schema{Loc: b.loc}
	b.built = s
	s.Types = buildAll(b.types, (*TypeBuilder).Build)
	s.QueryType = buildRoot(b.queryType)
	s.MutationType = buildRoot(b.mutationType)
	s.SubscriptionType = buildRoot(b.subscriptionType)
	s.Directives = buildAll(b.directives, (*DirectiveDefinitionBuilder).Build)
	return s
}

func buildRoot(t *TypeBuilder) Type {
	if t == nil {
		return nil
	}
	return t.Build()
}
