package slide

import "testing"

func TestResolveBuiltinIgnoresCustom(t *testing.T) {
	tests := []struct {
		name string
		idx  Index
		want Standard
	}{
		{"iso", ISO, Standard{76, 26, 1.0}},
		{"us", US, Standard{75, 25, 1.0}},
		{"petrographic", Petrographic, Standard{46, 27, 1.2}},
		{"supa mega", SupaMega, Standard{75, 50, 1.2}},
	}
	customs := [][3]float64{
		{0, 0, 0},
		{10, 20, -1},
		{999, 1, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, c := range customs {
				got := Resolve(tt.idx, c[0], c[1], c[2])
				if got != tt.want {
					t.Errorf("Resolve(%d, %v) = %+v, want %+v", tt.idx, c, got, tt.want)
				}
			}
		})
	}
}

func TestResolveCustomIsExact(t *testing.T) {
	got := Resolve(Custom, 80.5, 30.25, 1.15)
	want := Standard{Length: 80.5, Width: 30.25, Thickness: 1.15}
	if got != want {
		t.Errorf("Resolve(Custom) = %+v, want %+v", got, want)
	}

	// Degenerate values pass through untouched.
	got = Resolve(Custom, 10, 20, 0)
	if got != (Standard{10, 20, 0}) {
		t.Errorf("Resolve(Custom, degenerate) = %+v", got)
	}
}

func TestResolveOutOfRangeUsesCustom(t *testing.T) {
	for _, idx := range []Index{-1, 5, 42} {
		got := Resolve(idx, 1, 2, 3)
		if got != (Standard{1, 2, 3}) {
			t.Errorf("Resolve(%d) = %+v, want custom values", idx, got)
		}
	}
}

func TestStandardsLengthExceedsWidth(t *testing.T) {
	for i, s := range Standards() {
		if s.Length <= s.Width {
			t.Errorf("standard %s: length %.1f <= width %.1f", Index(i), s.Length, s.Width)
		}
	}
}

func TestStandardsReturnsCopy(t *testing.T) {
	rows := Standards()
	rows[0].Length = 1
	if std, _ := Lookup(ISO); std.Length != 76 {
		t.Errorf("table mutated through Standards(): ISO length = %.1f", std.Length)
	}
}

func TestIndexString(t *testing.T) {
	if got := SupaMega.String(); got != "supa_mega" {
		t.Errorf("SupaMega.String() = %q", got)
	}
	if got := Index(9).String(); got != "Index(9)" {
		t.Errorf("Index(9).String() = %q", got)
	}
}
