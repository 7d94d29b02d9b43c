package services

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"hotel-booking-engine/models"
)

func date(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("bad test date %q: %v", value, err)
	}
	return d
}

func testRoom(nightlyCents int64) models.Room {
	return models.Room{RoomNumber: "101", NightlyPriceCents: nightlyCents, MaxAdults: 3, MaxChildren: 2}
}

func TestNightsBetween(t *testing.T) {
	cases := []struct {
		in, out string
		want    int
	}{
		{"2025-06-01", "2025-06-04", 3},
		{"2025-06-01", "2025-06-02", 1},
		{"2025-06-01", "2025-06-01", 0},
		{"2025-06-04", "2025-06-01", -3},
		{"2025-12-31", "2026-01-02", 2},
	}
	for _, tc := range cases {
		if got := NightsBetween(date(t, tc.in), date(t, tc.out)); got != tc.want {
			t.Errorf("NightsBetween(%s, %s) = %d, want %d", tc.in, tc.out, got, tc.want)
		}
	}
}

// Room $200/night, 3 nights, one per-guest service at $15 for 2 guests and
// one flat service at $60: 600 + 30 + 60 = $690.
func TestComputeTotal_ItemizedStay(t *testing.T) {
	selected := []SelectedService{
		{Name: "Breakfast", UnitPriceCents: 1500, PricingMode: models.PricingPerGuest, Quantity: 2},
		{Name: "Airport Transfer", UnitPriceCents: 6000, PricingMode: models.PricingFlatOnce},
	}

	bd, err := ComputeTotal(testRoom(20000), date(t, "2025-06-01"), date(t, "2025-06-04"), selected, "", 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if bd.Nights != 3 {
		t.Errorf("nights = %d, want 3", bd.Nights)
	}
	if bd.RoomSubtotalCents != 60000 {
		t.Errorf("room subtotal = %d, want 60000", bd.RoomSubtotalCents)
	}
	if bd.ServicesCents != 9000 {
		t.Errorf("services total = %d, want 9000", bd.ServicesCents)
	}
	if bd.TotalCents != 69000 {
		t.Errorf("total = %d, want 69000", bd.TotalCents)
	}
	if len(bd.ServiceLines) != 2 {
		t.Fatalf("service lines = %d, want 2", len(bd.ServiceLines))
	}
	if bd.ServiceLines[0].TotalCents != 3000 {
		t.Errorf("per-guest line = %d, want 3000", bd.ServiceLines[0].TotalCents)
	}
	if bd.ServiceLines[1].TotalCents != 6000 {
		t.Errorf("flat line = %d, want 6000", bd.ServiceLines[1].TotalCents)
	}
	if bd.Currency != BaseCurrency {
		t.Errorf("currency = %q, want %q", bd.Currency, BaseCurrency)
	}
}

func TestComputeTotal_ZeroServicesEqualsRoomSubtotal(t *testing.T) {
	bd, err := ComputeTotal(testRoom(12000), date(t, "2025-06-10"), date(t, "2025-06-15"), nil, "", 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if bd.TotalCents != bd.RoomSubtotalCents {
		t.Errorf("total = %d, want room subtotal %d", bd.TotalCents, bd.RoomSubtotalCents)
	}
	if bd.TotalCents != 60000 {
		t.Errorf("total = %d, want 60000", bd.TotalCents)
	}
	if len(bd.ServiceLines) != 0 {
		t.Errorf("service lines = %d, want 0", len(bd.ServiceLines))
	}
}

func TestComputeTotal_OrderInvariant(t *testing.T) {
	selected := []SelectedService{
		{Name: "Breakfast", UnitPriceCents: 1500, PricingMode: models.PricingPerGuest, Quantity: 2},
		{Name: "Airport Transfer", UnitPriceCents: 6000, PricingMode: models.PricingFlatOnce},
		{Name: "Late Checkout", UnitPriceCents: 3000, PricingMode: models.PricingFlatOnce},
		{Name: "Spa", UnitPriceCents: 4500, PricingMode: models.PricingPerGuest, Quantity: 3},
	}

	base, err := ComputeTotal(testRoom(20000), date(t, "2025-06-01"), date(t, "2025-06-04"), selected, "", 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := make([]SelectedService, len(selected))
		copy(shuffled, selected)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		bd, err := ComputeTotal(testRoom(20000), date(t, "2025-06-01"), date(t, "2025-06-04"), shuffled, "", 0)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if bd.TotalCents != base.TotalCents {
			t.Fatalf("total changed under reordering: %d vs %d", bd.TotalCents, base.TotalCents)
		}
	}
}

func TestComputeTotal_SkipsZeroPriceLines(t *testing.T) {
	selected := []SelectedService{
		{Name: "Free Wifi", UnitPriceCents: 0, PricingMode: models.PricingFlatOnce},
	}
	bd, err := ComputeTotal(testRoom(10000), date(t, "2025-06-01"), date(t, "2025-06-02"), selected, "", 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(bd.ServiceLines) != 0 {
		t.Errorf("service lines = %d, want 0", len(bd.ServiceLines))
	}
	if bd.TotalCents != 10000 {
		t.Errorf("total = %d, want 10000", bd.TotalCents)
	}
}

func TestComputeTotal_InvalidDateRange(t *testing.T) {
	cases := []struct{ in, out string }{
		{"2025-06-04", "2025-06-01"}, // reversed
		{"2025-06-01", "2025-06-01"}, // zero nights
	}
	for _, tc := range cases {
		_, err := ComputeTotal(testRoom(10000), date(t, tc.in), date(t, tc.out), nil, "", 0)
		if !errors.Is(err, ErrInvalidDateRange) {
			t.Errorf("ComputeTotal(%s, %s) error = %v, want ErrInvalidDateRange", tc.in, tc.out, err)
		}
	}
}

func TestComputeTotal_PerGuestNeedsQuantity(t *testing.T) {
	selected := []SelectedService{
		{Name: "Breakfast", UnitPriceCents: 1500, PricingMode: models.PricingPerGuest, Quantity: 0},
	}
	_, err := ComputeTotal(testRoom(10000), date(t, "2025-06-01"), date(t, "2025-06-03"), selected, "", 0)
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("error = %v, want ErrInvalidQuantity", err)
	}
}

func TestComputeTotal_DisplayConversionIsPresentationOnly(t *testing.T) {
	selected := []SelectedService{
		{Name: "Airport Transfer", UnitPriceCents: 6000, PricingMode: models.PricingFlatOnce},
	}

	bd, err := ComputeTotal(testRoom(20000), date(t, "2025-06-01"), date(t, "2025-06-04"), selected, "EUR", 0.92)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Stored figures stay in base-currency cents.
	if bd.TotalCents != 66000 {
		t.Errorf("total = %d, want 66000", bd.TotalCents)
	}
	if bd.Currency != BaseCurrency {
		t.Errorf("currency = %q, want %q", bd.Currency, BaseCurrency)
	}

	// 66000 cents * 0.92 = 60720 -> 607.20, rounded to 2 decimals.
	if bd.DisplayTotal != 607.20 {
		t.Errorf("display total = %v, want 607.20", bd.DisplayTotal)
	}
	if bd.DisplayCurrency != "EUR" || bd.DisplayRate != 0.92 {
		t.Errorf("display currency/rate = %q/%v", bd.DisplayCurrency, bd.DisplayRate)
	}
	if bd.RoomLine.DisplayTotal != 552.00 {
		t.Errorf("room display = %v, want 552.00", bd.RoomLine.DisplayTotal)
	}
}

func TestPriceBreakdown_Snapshots(t *testing.T) {
	selected := []SelectedService{
		{Name: "Breakfast", UnitPriceCents: 1500, PricingMode: models.PricingPerGuest, Quantity: 2},
		{Name: "Airport Transfer", UnitPriceCents: 6000, PricingMode: models.PricingFlatOnce},
	}
	bd, err := ComputeTotal(testRoom(20000), date(t, "2025-06-01"), date(t, "2025-06-04"), selected, "", 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	snaps := bd.Snapshots()
	if len(snaps) != 2 {
		t.Fatalf("snapshots = %d, want 2", len(snaps))
	}
	if snaps[0].Name != "Breakfast" || snaps[0].UnitPriceCents != 1500 || snaps[0].Quantity != 2 {
		t.Errorf("unexpected first snapshot: %+v", snaps[0])
	}
	if snaps[1].Quantity != 1 {
		t.Errorf("flat snapshot quantity = %d, want 1", snaps[1].Quantity)
	}
}
