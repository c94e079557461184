package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(3, 4, 10, 5)
	if r.Right() != 13 || r.Bottom() != 9 {
		t.Errorf("NewRect(3, 4, 10, 5) edges = %d, %d; expected 13, 9", r.Right(), r.Bottom())
	}
}

func TestViewport(t *testing.T) {
	v := Viewport{WorldW: 900, WorldH: 450, Cells: NewRect(0, 2, 90, 20)}

	tests := []struct {
		name     string
		got      int
		expected int
	}{
		{"origin column", v.CellX(0), 0},
		{"middle column", v.CellX(450), 45},
		{"origin row is offset", v.CellY(0), 2},
		{"bottom row", v.CellY(450), 22},
		{"width", v.CellW(120), 12},
		{"tiny width rounds up to one", v.CellW(1), 1},
		{"height", v.CellH(90), 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.expected {
				t.Errorf("got %d, expected %d", tc.got, tc.expected)
			}
		})
	}

	zero := Viewport{Cells: NewRect(3, 4, 10, 10)}
	if zero.CellX(100) != 3 || zero.CellY(100) != 4 {
		t.Error("empty world should map everything to the viewport origin")
	}
}
