package ast

// Value is a literal kept as the exact source text it was parsed from. Lists,
// objects and strings are not decoded; Kind only records which literal form
// the text starts with.
type Value struct {
	Loc  Location
	Kind ValueKind
	Raw  string
}

// NewValue returns a value for raw text of the given kind.
func NewValue(kind ValueKind, raw string) *Value {
	return &Value{Kind: kind, Raw: raw}
}

func (v *Value) GetLoc() Location {
	return v.Loc
}

func (v *Value) String() string {
	if v == nil {
		return ""
	}
	return v.Raw
}
