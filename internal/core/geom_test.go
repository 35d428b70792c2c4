package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestRectInset(t *testing.T) {
	r := NewRect(0, 0, 29, 11).Inset(1)

	if r != NewRect(1, 1, 27, 9) {
		t.Errorf("Inset(1) = %+v, expected {1 1 27 9}", r)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name    string
		want    Color
		wantErr bool
	}{
		{"red", ColorRed, false},
		{" Bright_Blue ", ColorBrightBlue, false},
		{"orange", ColorOrange, false},
		{"chartreuse", ColorDefault, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseColor(tc.name)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tc.name, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("ParseColor(%q) = %v, expected %v", tc.name, got, tc.want)
			}
		})
	}
}

func TestColorStringRoundTrip(t *testing.T) {
	for c := ColorDefault; c <= ColorGray; c++ {
		parsed, err := ParseColor(c.String())
		if err != nil || parsed != c {
			t.Errorf("ParseColor(%q) = %v, %v; expected %v", c.String(), parsed, err, c)
		}
	}
}

func TestActionString(t *testing.T) {
	if ActionActivate.String() != "Activate" {
		t.Errorf("ActionActivate.String() = %q", ActionActivate.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("Action(99).String() = %q", Action(99).String())
	}
}
