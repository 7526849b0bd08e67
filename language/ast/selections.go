package ast

// Selection is one entry of a selection set: *Field, *FragmentSpread or
// *InlineFragment.
type Selection interface {
	Node
	SelectionKind() SelectionKind
	// IsLeaf reports whether the selection has no nested selection set.
	IsLeaf() bool
	GetDirectives() []*Directive
	GetSelectionSet() []Selection
}

var (
	_ Selection = (*Field)(nil)
	_ Selection = (*FragmentSpread)(nil)
	_ Selection = (*InlineFragment)(nil)
)

// Field implements Node, Selection
type Field struct {
	Loc          Location
	Alias        string
	Name         string
	Arguments    []*Argument
	Directives   []*Directive
	SelectionSet []Selection
}

func (f *Field) GetLoc() Location             { return f.Loc }
func (f *Field) SelectionKind() SelectionKind { return SelectionField }
func (f *Field) IsLeaf() bool                 { return len(f.SelectionSet) == 0 }
func (f *Field) GetDirectives() []*Directive  { return f.Directives }
func (f *Field) GetSelectionSet() []Selection { return f.SelectionSet }

// ResponseKey is the alias when set, else the field name.
func (f *Field) ResponseKey() string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}

// Argument returns the argument with the given name or nil.
func (f *Field) Argument(name string) *Argument {
	return findArgument(f.Arguments, name)
}

// FragmentSpread implements Node, Selection
type FragmentSpread struct {
	Loc        Location
	Name       string
	Directives []*Directive
}

func (fs *FragmentSpread) GetLoc() Location             { return fs.Loc }
func (fs *FragmentSpread) SelectionKind() SelectionKind { return SelectionFragmentSpread }
func (fs *FragmentSpread) IsLeaf() bool                 { return true }
func (fs *FragmentSpread) GetDirectives() []*Directive  { return fs.Directives }
func (fs *FragmentSpread) GetSelectionSet() []Selection { return nil }

// InlineFragment implements Node, Selection. TypeCondition is empty when the
// fragment only groups directives.
type InlineFragment struct {
	Loc           Location
	TypeCondition string
	Directives    []*Directive
	SelectionSet  []Selection
}

func (f *InlineFragment) GetLoc() Location             { return f.Loc }
func (f *InlineFragment) SelectionKind() SelectionKind { return SelectionInlineFragment }
func (f *InlineFragment) IsLeaf() bool                 { return len(f.SelectionSet) == 0 }
func (f *InlineFragment) GetDirectives() []*Directive  { return f.Directives }
func (f *InlineFragment) GetSelectionSet() []Selection { return f.SelectionSet }

// SelectionBuilder builds any of the three selection alternatives, chosen
// by its constructor.
type SelectionBuilder struct {
	kind       SelectionKind
	loc        Location
	alias      string
	name       string
	arguments  []*ArgumentBuilder
	directives []*DirectiveBuilder
	selections []*SelectionBuilder
	built      Selection
}

// NewFieldSelectionBuilder starts a field selection.
func NewFieldSelectionBuilder(name string) *SelectionBuilder {
	return &SelectionBuilder{kind: SelectionField, name: name}
}

// NewFragmentSpreadBuilder starts a `...Name` spread.
func NewFragmentSpreadBuilder(name string) *SelectionBuilder {
	return &SelectionBuilder{kind: SelectionFragmentSpread, name: name}
}

// NewInlineFragmentBuilder starts an inline fragment. typeCondition may be
// empty.
func NewInlineFragmentBuilder(typeCondition string) *SelectionBuilder {
	return &SelectionBuilder{kind: SelectionInlineFragment, name: typeCondition}
}

func (b *SelectionBuilder) Kind() SelectionKind { return b.kind }
func (b *SelectionBuilder) Name() string        { return b.name }

func (b *SelectionBuilder) SetLoc(loc Location) *SelectionBuilder {
	b.mutable()
	b.loc = loc
	return b
}

func (b *SelectionBuilder) SetAlias(alias string) *SelectionBuilder {
	b.mutable()
	precondition(b.kind == SelectionField, "selection", b.name, "alias on %s", b.kindName())
	b.alias = alias
	return b
}

func (b *SelectionBuilder) AddArgument(a *ArgumentBuilder) *SelectionBuilder {
	b.mutable()
	precondition(b.kind == SelectionField, "selection", b.name, "arguments on %s", b.kindName())
	b.arguments = append(b.arguments, a)
	return b
}

func (b *SelectionBuilder) AddDirective(d *DirectiveBuilder) *SelectionBuilder {
	b.mutable()
	b.directives = append(b.directives, d)
	return b
}

func (b *SelectionBuilder) AddSelection(s *SelectionBuilder) *SelectionBuilder {
	b.mutable()
	precondition(b.kind != SelectionFragmentSpread, "selection", b.name, "selection set on %s", b.kindName())
	b.selections = append(b.selections, s)
	return b
}

func (b *SelectionBuilder) mutable() {
	precondition(b.built == nil, "selection", b.name, "modified after Build")
}

func (b *SelectionBuilder) kindName() string {
	switch b.kind {
	case SelectionField:
		return "field"
	case SelectionFragmentSpread:
		return "fragment spread"
	case SelectionInlineFragment:
		return "inline fragment"
	}
	return "unknown selection"
}

func (b *SelectionBuilder) Build() Selection {
	if b.built != nil {
		return b.built
	}
	switch b.kind {
	case SelectionField:
		precondition(b.name != "", "selection", b.name, "field without a name")
		b.built = &Field{
			Loc:          b.loc,
			Alias:        b.alias,
			Name:         b.name,
			Arguments:    buildAll(b.arguments, (*ArgumentBuilder).Build),
			Directives:   buildAll(b.directives, (*DirectiveBuilder).Build),
			SelectionSet: buildAll(b.selections, (*SelectionBuilder).Build),
		}
	case SelectionFragmentSpread:
		precondition(b.name != "", "selection", b.name, "fragment spread without a name")
		b.built = &FragmentSpread{
			Loc:        b.loc,
			Name:       b.name,
			Directives: buildAll(b.directives, (*DirectiveBuilder).Build),
		}
	case SelectionInlineFragment:
		precondition(len(b.selections) != 0, "selection", b.name, "inline fragment without selections")
		b.built = &InlineFragment{
			Loc:           b.loc,
			TypeCondition: b.name,
			Directives:    buildAll(b.directives, (*DirectiveBuilder).Build),
			SelectionSet:  buildAll(b.selections, (*SelectionBuilder).Build),
		}
	default:
		precondition(false, "selection", b.name, "unknown kind %d", b.kind)
	}
	return b.built
}
