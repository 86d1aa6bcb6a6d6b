package region

import "testing"

func TestParse(t *testing.T) {
	for _, r := range All() {
		got, ok := Parse(r.String())
		if !ok || got != r {
			t.Errorf("Parse(%q): got %q, %t", r, got, ok)
		}
	}

	for _, s := range []string{"", "left", "Left_half", "top_half", "select region"} {
		if got, ok := Parse(s); ok {
			t.Errorf("Parse(%q): got %q, want no match", s, got)
		}
	}
}

func TestCell(t *testing.T) {
	tests := []struct {
		region Region
		parts  int
		index  int
	}{
		{LeftHalf, 2, 0},
		{RightHalf, 2, 1},
		{LeftThird, 3, 0},
		{CenterThird, 3, 1},
		{RightThird, 3, 2},
		{TopLeftQuarter, 4, 0},
		{TopRightQuarter, 4, 1},
		{BottomLeftQuarter, 4, 2},
		{BottomRightQuarter, 4, 3},
		{TopLeftSixth, 6, 0},
		{TopCenterSixth, 6, 1},
		{TopRightSixth, 6, 2},
		{BottomLeftSixth, 6, 3},
		{BottomCenterSixth, 6, 4},
		{BottomRightSixth, 6, 5},
	}
	for _, tt := range tests {
		cell, ok := tt.region.Cell()
		if !ok {
			t.Fatalf("%s: no cell", tt.region)
		}
		if cell.Parts != tt.parts || cell.Index != tt.index {
			t.Errorf("%s: got (%d, %d), want (%d, %d)", tt.region, cell.Parts, cell.Index, tt.parts, tt.index)
		}

		back, ok := ForCell(tt.parts, tt.index)
		if !ok || back != tt.region {
			t.Errorf("ForCell(%d, %d): got %q, %t", tt.parts, tt.index, back, ok)
		}
	}

	for _, r := range []Region{SelectRegion, FullScreen} {
		if cell, ok := r.Cell(); ok {
			t.Errorf("%s: got cell %v, want none", r, cell)
		}
	}
}

func TestAllCoversEveryCell(t *testing.T) {
	seen := make(map[Region]bool, len(All()))
	for _, r := range All() {
		if seen[r] {
			t.Fatalf("%s listed twice", r)
		}
		seen[r] = true
	}
	if len(seen) != 17 {
		t.Fatalf("got %d regions, want 17", len(seen))
	}

	for parts, count := range map[int]int{2: 2, 3: 3, 4: 4, 6: 6} {
		for index := 0; index < count; index++ {
			r, ok := ForCell(parts, index)
			if !ok {
				t.Errorf("no region for cell (%d, %d)", parts, index)
				continue
			}
			if !seen[r] {
				t.Errorf("%s not in All()", r)
			}
		}
	}
}
