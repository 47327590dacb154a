package engine

import "testing"

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name   string
		startA int
		durA   int
		startB int
		durB   int
		want   bool
	}{
		{"identical", 540, 30, 540, 30, true},
		{"contained", 540, 60, 555, 15, true},
		{"partial", 540, 30, 555, 30, true},
		{"disjoint", 540, 30, 600, 30, false},
		{"touching end to start", 540, 30, 570, 15, false},
		{"touching start to end", 570, 15, 540, 30, false},
		{"one minute over", 540, 31, 570, 15, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Overlaps(minute(tc.startA), tc.durA, minute(tc.startB), tc.durB)
			if got != tc.want {
				t.Fatalf("Overlaps(%d,%d,%d,%d) = %v, want %v", tc.startA, tc.durA, tc.startB, tc.durB, got, tc.want)
			}
			// Overlap is symmetric.
			if sym := Overlaps(minute(tc.startB), tc.durB, minute(tc.startA), tc.durA); sym != got {
				t.Fatalf("overlap not symmetric for %s: %v vs %v", tc.name, got, sym)
			}
		})
	}
}
