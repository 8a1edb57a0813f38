package date

import "testing"

func TestAppend(t *testing.T) {
	h := new(History[string])
	d1, v1 := New(2025, 07, 01), "25 Jul 1"
	d2, v2 := New(2024, 07, 01), "24 Jul 1"

	// Appending in reverse order must keep the history sorted.
	h.Append(d1, v1)
	h.Append(d2, v2)
	if h.Len() != 2 {
		t.Fatalf("History.Len() = %v want 2", h.Len())
	}
	if h.days[0] != d2 || h.days[1] != d1 {
		t.Errorf("history days = %v want [%v %v]", h.days, d2, d1)
	}
	if h.values[0] != v2 || h.values[1] != v1 {
		t.Errorf("history values = %v want [%v %v]", h.values, v2, v1)
	}

	h.Append(d1, "overwritten")
	if got, _ := h.Get(d1); h.Len() != 2 || got != "overwritten" {
		t.Errorf("Append on an existing day: Len() = %d, Get() = %q", h.Len(), got)
	}
}

func TestValueAsOf(t *testing.T) {
	h := new(History[float64])
	h.Append(MustParse("2025-01-10"), 10).Append(MustParse("2025-01-20"), 20)

	testCases := []struct {
		day    string
		want   float64
		wantOk bool
	}{
		{"2025-01-09", 0, false},
		{"2025-01-10", 10, true},
		{"2025-01-15", 10, true},
		{"2025-01-20", 20, true},
		{"2025-12-31", 20, true},
	}
	for _, tc := range testCases {
		got, ok := h.ValueAsOf(MustParse(tc.day))
		if got != tc.want || ok != tc.wantOk {
			t.Errorf("ValueAsOf(%s) = %v, %v want %v, %v", tc.day, got, ok, tc.want, tc.wantOk)
		}
	}
	if day, v := h.Latest(); day != MustParse("2025-01-20") || v != 20 {
		t.Errorf("Latest() = %v, %v", day, v)
	}
}
