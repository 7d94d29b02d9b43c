package services

import "testing"

func TestServiceKeyFromName(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Breakfast", "breakfast"},
		{"Airport Transfer", "airport-transfer"},
		{"  Late   Checkout  ", "late-checkout"},
		{"Spa & Wellness", "spa-wellness"},
		{"24/7 Room Service", "24-7-room-service"},
		{"Crème Brûlée Tasting", "cr-me-br-l-e-tasting"},
		{"---", ""},
	}

	for _, tc := range cases {
		if got := ServiceKeyFromName(tc.name); got != tc.want {
			t.Errorf("ServiceKeyFromName(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

// The key must be stable: deriving twice from the same name gives the same
// result, so a key assigned at creation never drifts.
func TestServiceKeyFromName_Deterministic(t *testing.T) {
	names := []string{"Breakfast", "Airport Transfer", "Spa & Wellness"}
	for _, n := range names {
		if ServiceKeyFromName(n) != ServiceKeyFromName(n) {
			t.Fatalf("key derivation for %q is not deterministic", n)
		}
	}
}
