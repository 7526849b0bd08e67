package location_test

import (
	"testing"

	"github.com/sprucehealth/gqlast/language/location"
	"github.com/sprucehealth/gqlast/language/source"
)

func TestGetLocation(t *testing.T) {
	src := source.New("", "{\n  field\n}")
	cases := []struct {
		offset int
		exp    location.SourceLocation
	}{
		{0, location.SourceLocation{Line: 1, Column: 1}},
		{4, location.SourceLocation{Line: 2, Column: 3}},
		{10, location.SourceLocation{Line: 3, Column: 1}},
	}
	for _, c := range cases {
		if l := location.GetLocation(src, c.offset); l != c.exp {
			t.Errorf("GetLocation(%d) = %+v, expected %+v", c.offset, l, c.exp)
		}
	}
	if l := location.GetLocation(nil, 3); l != (location.SourceLocation{}) {
		t.Errorf("GetLocation(nil) = %+v", l)
	}
}
