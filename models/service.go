package models

import (
	"time"

	"gorm.io/gorm"
)

// Pricing modes for optional add-on services.
const (
	PricingFlatOnce = "flat_once" // charged once per booking
	PricingPerGuest = "per_guest" // charged per guest
)

// ServiceDefinition is a catalog entry for an optional add-on service.
// ServiceKey is derived from the name once, at creation, and never re-derived
// afterwards; bookings reference services through snapshots, not live rows.
type ServiceDefinition struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServiceKey  string `gorm:"column:service_key;uniqueIndex;size:100" json:"serviceKey"`
	Name        string `gorm:"size:255" json:"name"`
	PriceCents  int64  `gorm:"column:price_cents" json:"priceCents"`
	PricingMode string `gorm:"column:pricing_mode;size:20;default:flat_once" json:"pricingMode"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
