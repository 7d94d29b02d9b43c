package models

import (
	"time"

	"gorm.io/gorm"
)

type RoomType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TypeName    string `json:"typeName"`
	Description string `json:"description"`

	CreatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
