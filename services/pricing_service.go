package services

import (
	"fmt"
	"math"
	"time"

	"hotel-booking-engine/models"
)

// BaseCurrency is the currency every stored amount is denominated in, as
// minor units (cents). Display conversion never changes stored figures.
const BaseCurrency = "USD"

// SelectedService is a resolved add-on going into a price computation:
// a catalog snapshot plus the quantity it applies to.
type SelectedService struct {
	Name           string
	UnitPriceCents int64
	PricingMode    string
	Quantity       int // guest count for per_guest services; ignored for flat_once
}

// PriceLine is one row of an itemized breakdown.
type PriceLine struct {
	Name           string  `json:"name"`
	UnitPriceCents int64   `json:"unitPriceCents"`
	Quantity       int     `json:"quantity"`
	TotalCents     int64   `json:"totalCents"`
	DisplayTotal   float64 `json:"displayTotal,omitempty"`
}

// PriceBreakdown is the itemized result of a price computation. It feeds both
// the live preview endpoint and the invoice snapshot persisted with a booking.
// All *Cents figures are authoritative base-currency minor units; the Display*
// fields are a presentation-only conversion and must never be persisted as a
// booking total.
type PriceBreakdown struct {
	Nights            int         `json:"nights"`
	RoomLine          PriceLine   `json:"roomLine"`
	ServiceLines      []PriceLine `json:"serviceLines"`
	RoomSubtotalCents int64       `json:"roomSubtotalCents"`
	ServicesCents     int64       `json:"servicesCents"`
	TotalCents        int64       `json:"totalCents"`
	Currency          string      `json:"currency"`

	DisplayCurrency string  `json:"displayCurrency,omitempty"`
	DisplayRate     float64 `json:"displayRate,omitempty"`
	DisplayTotal    float64 `json:"displayTotal,omitempty"`
}

// NightsBetween returns the stay length in whole days.
func NightsBetween(checkIn, checkOut time.Time) int {
	in := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)
	return int(out.Sub(in).Hours() / 24)
}

// displayAmount converts base-currency cents into a display-currency amount
// rounded to 2 decimal places.
func displayAmount(cents int64, rate float64) float64 {
	return math.Round(float64(cents)*rate) / 100
}

// ComputeTotal prices a stay: nightly rate times nights, plus one line per
// selected service. Pure; no store access and no side effects.
//
// displayRate > 0 requests a presentation-only conversion of every figure into
// displayCurrency; pass 0 to skip it. Stored totals always stay in cents.
func ComputeTotal(room models.Room, checkIn, checkOut time.Time, selected []SelectedService, displayCurrency string, displayRate float64) (PriceBreakdown, error) {
	nights := NightsBetween(checkIn, checkOut)
	if nights <= 0 {
		return PriceBreakdown{}, fmt.Errorf("%w: check-out %s must be after check-in %s",
			ErrInvalidDateRange, checkOut.Format("2006-01-02"), checkIn.Format("2006-01-02"))
	}

	roomSubtotal := room.NightlyPriceCents * int64(nights)
	bd := PriceBreakdown{
		Nights: nights,
		RoomLine: PriceLine{
			Name:           fmt.Sprintf("Room %s x %d nights", room.RoomNumber, nights),
			UnitPriceCents: room.NightlyPriceCents,
			Quantity:       nights,
			TotalCents:     roomSubtotal,
		},
		ServiceLines:      []PriceLine{},
		RoomSubtotalCents: roomSubtotal,
		Currency:          BaseCurrency,
	}

	for _, svc := range selected {
		if svc.UnitPriceCents == 0 {
			continue
		}
		line := PriceLine{Name: svc.Name, UnitPriceCents: svc.UnitPriceCents}
		switch svc.PricingMode {
		case models.PricingPerGuest:
			if svc.Quantity < 1 {
				return PriceBreakdown{}, fmt.Errorf("%w: service %q needs a guest count of at least 1, got %d",
					ErrInvalidQuantity, svc.Name, svc.Quantity)
			}
			line.Quantity = svc.Quantity
		default: // flat_once
			line.Quantity = 1
		}
		line.TotalCents = svc.UnitPriceCents * int64(line.Quantity)
		bd.ServicesCents += line.TotalCents
		bd.ServiceLines = append(bd.ServiceLines, line)
	}

	bd.TotalCents = bd.RoomSubtotalCents + bd.ServicesCents

	if displayRate > 0 && displayCurrency != "" {
		bd.DisplayCurrency = displayCurrency
		bd.DisplayRate = displayRate
		bd.RoomLine.DisplayTotal = displayAmount(bd.RoomLine.TotalCents, displayRate)
		for i := range bd.ServiceLines {
			bd.ServiceLines[i].DisplayTotal = displayAmount(bd.ServiceLines[i].TotalCents, displayRate)
		}
		bd.DisplayTotal = displayAmount(bd.TotalCents, displayRate)
	}

	return bd, nil
}

// Snapshots flattens the breakdown's service lines into the form stored on a
// booking row.
func (bd PriceBreakdown) Snapshots() []models.ServiceSnapshot {
	out := make([]models.ServiceSnapshot, 0, len(bd.ServiceLines))
	for _, line := range bd.ServiceLines {
		out = append(out, models.ServiceSnapshot{
			Name:           line.Name,
			UnitPriceCents: line.UnitPriceCents,
			Quantity:       line.Quantity,
		})
	}
	return out
}
