package models

import (
	"time"

	"gorm.io/datatypes"
)

// Slot is a bookable window of an experience. AvailableSpots is only
// decremented by a committed booking.
type Slot struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	ExperienceID   uint           `gorm:"not null;index" json:"experience_id"`
	Date           datatypes.Date `gorm:"not null" json:"date"`
	StartTime      datatypes.Time `gorm:"not null" json:"start_time"`
	EndTime        datatypes.Time `gorm:"not null" json:"end_time"`
	TotalSpots     int            `gorm:"not null" json:"total_spots"`
	AvailableSpots int            `gorm:"not null;check:available_spots >= 0" json:"available_spots"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// DateOnly returns d truncated to midnight UTC, the form slots are stored in.
func DateOnly(d time.Time) datatypes.Date {
	y, m, day := d.Date()
	return datatypes.Date(time.Date(y, m, day, 0, 0, 0, 0, time.UTC))
}
