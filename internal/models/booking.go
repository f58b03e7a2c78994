package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	ExperienceID   uint            `gorm:"not null;index" json:"experience_id"`
	SlotID         uint            `gorm:"not null;index" json:"slot_id"`
	CustomerName   string          `gorm:"not null" json:"customer_name"`
	CustomerEmail  string          `gorm:"not null" json:"customer_email"`
	CustomerPhone  string          `gorm:"not null" json:"customer_phone"`
	NumberOfPeople int             `gorm:"not null;default:1" json:"number_of_people"`
	TotalPrice     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
	PromoCode      *string         `json:"promo_code"`
	Discount       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"discount"`
	Status         BookingStatus   `gorm:"type:varchar(20);not null;default:'confirmed'" json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	Experience *Experience `gorm:"foreignKey:ExperienceID" json:"experience,omitempty"`
	Slot       *Slot       `gorm:"foreignKey:SlotID" json:"slot,omitempty"`
}
