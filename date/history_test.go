package date

import "testing"

func TestAppend(t *testing.T) {
	h := new(History[float64])
	d1, v1 := New(2025, 7, 1), 25.0
	d2, v2 := New(2024, 7, 1), 24.0

	// Test is about appending two values in reverse order and checking that everything is
	// as expected at every step of the way.

	if h.Len() != 0 {
		t.Errorf("History.Len() = %v want 0", h.Len())
	}

	h.Append(d1, v1)
	if h.Len() != 1 {
		t.Errorf("Append(d1, v1).Len() = %v want 1", h.Len())
	}

	h.Append(d2, v2)
	if h.Len() != 2 {
		t.Errorf("Append(d2, v2).Len() = %v want 2", h.Len())
	}

	if h.days[0] != d2 || h.days[1] != d1 {
		t.Errorf("history days = %v want chronological [%v %v]", h.days, d2, d1)
	}
	if h.values[0] != v2 || h.values[1] != v1 {
		t.Errorf("history values = %v want [%v %v]", h.values, v2, v1)
	}

	// Appending at an existing date overwrites.
	h.Append(d1, 26.0)
	if h.Len() != 2 {
		t.Errorf("Append at existing date changed Len() to %v want 2", h.Len())
	}
	if v, _ := h.Get(d1); v != 26.0 {
		t.Errorf("Get(d1) = %v want 26 after overwrite", v)
	}
}

func TestValueAsOf(t *testing.T) {
	h := new(History[float64])
	h.Append(New(2022, 1, 7), 100) // Friday
	h.Append(New(2022, 1, 10), 110)
	h.Append(New(2022, 1, 11), 120)

	testCases := []struct {
		name  string
		day   Date
		want  float64
		found bool
	}{
		{"exact match", New(2022, 1, 10), 110, true},
		{"weekend forward fill", New(2022, 1, 9), 100, true},
		{"after latest", New(2022, 2, 1), 120, true},
		{"before first", New(2022, 1, 1), 0, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, found := h.ValueAsOf(tc.day)
			if got != tc.want || found != tc.found {
				t.Errorf("ValueAsOf(%v) = (%v, %v), want (%v, %v)", tc.day, got, found, tc.want, tc.found)
			}
		})
	}
}

func TestFirstLatest(t *testing.T) {
	h := new(History[float64])
	if d, v := h.Latest(); !d.IsZero() || v != 0 {
		t.Errorf("empty Latest() = (%v, %v), want zeros", d, v)
	}
	if d, v := h.First(); !d.IsZero() || v != 0 {
		t.Errorf("empty First() = (%v, %v), want zeros", d, v)
	}

	h.Append(New(2022, 3, 1), 3)
	h.Append(New(2022, 1, 1), 1)

	if d, v := h.First(); d != New(2022, 1, 1) || v != 1 {
		t.Errorf("First() = (%v, %v), want (2022-01-01, 1)", d, v)
	}
	if d, v := h.Latest(); d != New(2022, 3, 1) || v != 3 {
		t.Errorf("Latest() = (%v, %v), want (2022-03-01, 3)", d, v)
	}
}
