package topics

import (
	"reflect"
	"testing"
)

func TestSplitPath(t *testing.T) {
	cases := []struct {
		label string
		want  []string
	}{
		{"Algebra - Linear Equations", []string{"Algebra", "Linear Equations"}},
		{"Algebra > Linear Equations", []string{"Algebra", "Linear Equations"}},
		{"Biology | Cells | Mitosis", []string{"Biology", "Cells", "Mitosis"}},
		{"History: Rome", []string{"History", "Rome"}},
		{"Physics/Waves", []string{"Physics", "Waves"}},
		{"Chemie – Säuren", []string{"Chemie", "Säuren"}},
		{"Plain", []string{"Plain"}},
		{"  spaced  ", []string{"spaced"}},
		{"", nil},
		{" | | ", nil},
	}
	for _, tc := range cases {
		got := SplitPath(tc.label)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("SplitPath(%q) = %v, want %v", tc.label, got, tc.want)
		}
	}
}

func TestPaths_Default(t *testing.T) {
	got := Paths(nil)
	if len(got) != 1 || got[0][0] != DefaultTopic {
		t.Errorf("Paths(nil) = %v, want [[%s]]", got, DefaultTopic)
	}
	got = Paths([]string{"", "  "})
	if len(got) != 1 || got[0][0] != DefaultTopic {
		t.Errorf("blank labels: got %v, want default path", got)
	}
}

func TestPaths_Dedupe(t *testing.T) {
	got := Paths([]string{"Math > Algebra", "Math - Algebra", "Math > Geometry"})
	if len(got) != 2 {
		t.Fatalf("got %d paths, want 2 (duplicate collapsed): %v", len(got), got)
	}
	if !reflect.DeepEqual(got[0], []string{"Math", "Algebra"}) {
		t.Errorf("first path = %v", got[0])
	}
	if !reflect.DeepEqual(got[1], []string{"Math", "Geometry"}) {
		t.Errorf("second path = %v", got[1])
	}
}
