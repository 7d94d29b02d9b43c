package services

import "testing"

func TestRangesOverlap(t *testing.T) {
	cases := []struct {
		name           string
		a1, a2, b1, b2 string
		want           bool
	}{
		{"identical ranges", "2025-06-10", "2025-06-15", "2025-06-10", "2025-06-15", true},
		{"contained range", "2025-06-10", "2025-06-15", "2025-06-12", "2025-06-14", true},
		{"partial overlap left", "2025-06-10", "2025-06-15", "2025-06-08", "2025-06-11", true},
		{"partial overlap right", "2025-06-10", "2025-06-15", "2025-06-14", "2025-06-20", true},
		{"back-to-back, checkout day free", "2025-06-10", "2025-06-15", "2025-06-15", "2025-06-18", false},
		{"back-to-back before", "2025-06-10", "2025-06-15", "2025-06-05", "2025-06-10", false},
		{"disjoint", "2025-06-10", "2025-06-15", "2025-07-01", "2025-07-05", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := RangesOverlap(date(t, tc.a1), date(t, tc.a2), date(t, tc.b1), date(t, tc.b2))
			if got != tc.want {
				t.Errorf("RangesOverlap(%s,%s,%s,%s) = %v, want %v", tc.a1, tc.a2, tc.b1, tc.b2, got, tc.want)
			}
			// Overlap is symmetric.
			rev := RangesOverlap(date(t, tc.b1), date(t, tc.b2), date(t, tc.a1), date(t, tc.a2))
			if rev != tc.want {
				t.Errorf("RangesOverlap is not symmetric for %s", tc.name)
			}
		})
	}
}
