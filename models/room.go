package models

import (
	"gorm.io/gorm"
)

type Room struct {
	gorm.Model

	// Nullable so a create payload without a valid FK doesn't insert 0.
	RoomTypeID *uint  `json:"roomTypeId,omitempty" gorm:"column:room_type_id"`
	RoomNumber string `json:"roomNumber" gorm:"column:room_number;uniqueIndex;type:varchar(50)"`

	// NightlyPriceCents is the authoritative nightly rate in minor units (USD cents).
	// Changing it never retroactively affects a stored booking total.
	NightlyPriceCents int64 `json:"nightlyPriceCents" gorm:"column:nightly_price_cents"`

	MaxAdults   int    `json:"maxAdults" gorm:"column:max_adults;default:2"`
	MaxChildren int    `json:"maxChildren" gorm:"column:max_children;default:0"`
	Floor       string `json:"floor" gorm:"type:varchar(10)"`
	Description string `json:"description" gorm:"type:text"`

	RoomType RoomType `gorm:"foreignKey:RoomTypeID" json:"roomType,omitempty"`
}
