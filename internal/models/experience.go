package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Experience struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Title       string          `gorm:"not null" json:"title"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Location    string          `gorm:"not null" json:"location"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Image       string          `gorm:"not null" json:"image"`
	Category    string          `gorm:"not null" json:"category"`
	Duration    string          `gorm:"not null" json:"duration"`
	Rating      decimal.Decimal `gorm:"type:decimal(2,1);not null;default:5.0" json:"rating"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Slots []Slot `gorm:"foreignKey:ExperienceID" json:"slots,omitempty"`
}
