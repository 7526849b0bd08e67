package ast

// Document is the root of a query document.
type Document struct {
	Loc        Location
	Operations []*OperationDefinition
	Fragments  []*FragmentDefinition
}

func (node *Document) GetLoc() Location {
	return node.Loc
}

// Operation returns the operation with the given name. An empty name
// matches the first anonymous operation.
func (node *Document) Operation(name string) *OperationDefinition {
	for _, op := range node.Operations {
		if op.Name == name {
			return op
		}
	}
	return nil
}

// Fragment returns the fragment with the given name or nil.
func (node *Document) Fragment(name string) *FragmentDefinition {
	for _, f := range node.Fragments {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// DocumentBuilder builds a Document.
type DocumentBuilder struct {
	loc        Location
	operations []*OperationBuilder
	fragments  []*FragmentBuilder
	built      *Document
}

func NewDocumentBuilder() *DocumentBuilder {
	return &DocumentBuilder{}
}

func (b *DocumentBuilder) Operations() []*OperationBuilder { return b.operations }
func (b *DocumentBuilder) Fragments() []*FragmentBuilder   { return b.fragments }

func (b *DocumentBuilder) SetLoc(loc Location) *DocumentBuilder {
	b.mutable()
	b.loc = loc
	return b
}

func (b *DocumentBuilder) AddOperation(op *OperationBuilder) *DocumentBuilder {
	b.mutable()
	b.operations = append(b.operations, op)
	return b
}

func (b *DocumentBuilder) AddFragment(f *FragmentBuilder) *DocumentBuilder {
	b.mutable()
	b.fragments = append(b.fragments, f)
	return b
}

func (b *DocumentBuilder) mutable() {
	precondition(b.built == nil, "document", "", "modified after Build")
}

func (b *DocumentBuilder) Build() *Document {
	if b.built != nil {
		return b.built
	}
	b.built = &Document{
		Loc:        b.loc,
		Operations: buildAll(b.operations, (*OperationBuilder).Build),
		Fragments:  buildAll(b.fragments, (*FragmentBuilder).Build),
	}
	return b.built
}
