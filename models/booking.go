package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Booking statuses. Cancelled and completed are terminal.
const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusCheckedIn  = "checked-in"
	StatusCheckedOut = "checked-out"
	StatusCancelled  = "cancelled"
	StatusCompleted  = "completed"
)

// Payment statuses. No reversals: paid never goes back to pending,
// refunded never goes back to paid.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

// ServiceSnapshot is what a booking stores for each selected add-on service.
// It is copied from the catalog at creation/modification time so later catalog
// edits never change what the guest agreed to pay.
type ServiceSnapshot struct {
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
}

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// InvoiceNumber is assigned once at creation and never reused.
	InvoiceNumber string `gorm:"column:invoice_number;uniqueIndex;size:64" json:"invoiceNumber"`

	RoomID       uint      `gorm:"index;column:room_id" json:"roomId"`
	CheckInDate  time.Time `gorm:"column:check_in_date;index" json:"checkInDate"`
	CheckOutDate time.Time `gorm:"column:check_out_date;index" json:"checkOutDate"`
	Nights       int       `gorm:"column:nights" json:"nights"`

	Adults   int `gorm:"column:adults;default:1" json:"adults"`
	Children int `gorm:"column:children;default:0" json:"children"`

	// Services holds the []ServiceSnapshot selected for this stay.
	Services datatypes.JSON `gorm:"column:services" json:"services,omitempty"`

	// TotalPriceCents is computed once at creation/modification and stored.
	// It is never recomputed implicitly from live rate data.
	TotalPriceCents int64 `gorm:"column:total_price_cents" json:"totalPriceCents"`

	Status        string `gorm:"column:status;size:32;default:pending;index" json:"status"`
	PaymentStatus string `gorm:"column:payment_status;size:32;default:pending" json:"paymentStatus"`
	PaymentMethod string `gorm:"column:payment_method;size:64" json:"paymentMethod,omitempty"`

	// Guest contact snapshot captured at creation.
	GuestName  string `gorm:"column:guest_name;size:255" json:"guestName"`
	GuestEmail string `gorm:"column:guest_email;size:255" json:"guestEmail"`
	GuestPhone string `gorm:"column:guest_phone;size:50" json:"guestPhone"`

	// Version guards status/payment transitions against concurrent writes.
	Version int `gorm:"column:version;default:0" json:"version"`

	Room Room `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}

// Terminal reports whether no further status transitions are allowed.
func (b *Booking) Terminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusCompleted
}
