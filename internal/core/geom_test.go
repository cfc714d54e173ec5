package core

import "testing"

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestRectFIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     RectF
		expected bool
	}{
		{"overlapping", NewRectF(0, 0, 10, 10), NewRectF(5, 5, 10, 10), true},
		{"touching edges", NewRectF(0, 0, 10, 10), NewRectF(10, 0, 10, 10), false},
		{"fractional overlap", NewRectF(0, 0, 10, 10), NewRectF(9.5, 9.5, 1, 1), true},
		{"apart", NewRectF(0, 0, 10, 10), NewRectF(0, 20, 10, 10), false},
		{"point inside", NewRectF(0, 0, 10, 10), NewRectF(5, 5, 0, 0), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectFInset(t *testing.T) {
	r := NewRectF(100, 200, 40, 24).Inset(5)
	if r != NewRectF(105, 205, 30, 14) {
		t.Errorf("Inset(5) = %+v", r)
	}

	collapsed := NewRectF(0, 0, 4, 4).Inset(5)
	if collapsed.W != 0 || collapsed.H != 0 {
		t.Errorf("over-inset should collapse to zero size, got %+v", collapsed)
	}
	if collapsed.X != 2 || collapsed.Y != 2 {
		t.Errorf("collapsed rect should sit at the center, got %+v", collapsed)
	}
}

func TestRectFCenter(t *testing.T) {
	cx, cy := NewRectF(10, 20, 40, 20).Center()
	if cx != 30 || cy != 30 {
		t.Errorf("Center() = (%f, %f), expected (30, 30)", cx, cy)
	}
}
