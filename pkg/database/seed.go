package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Eursukkul/experience-booking/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	seedDays         = 7
	seedSpotsPerSlot = 10
)

var seedExperiences = []models.Experience{
	{
		Title:       "Hot Air Balloon Ride over Cappadocia",
		Description: "Experience breathtaking views of Cappadocia's fairy chimneys and unique rock formations from a hot air balloon at sunrise.",
		Location:    "Cappadocia, Turkey",
		Price:       decimal.RequireFromString("180.00"),
		Image:       "https://images.unsplash.com/photo-1530053969600-caed2596d242?w=800",
		Category:    "Adventure",
		Duration:    "3 hours",
		Rating:      decimal.RequireFromString("4.9"),
	},
	{
		Title:       "Northern Lights Tour in Iceland",
		Description: "Chase the Aurora Borealis across Iceland's landscapes with guides who know the best dark-sky viewing spots.",
		Location:    "Reykjavik, Iceland",
		Price:       decimal.RequireFromString("120.00"),
		Image:       "https://images.unsplash.com/photo-1579033461380-adb47c3eb938?w=800",
		Category:    "Nature",
		Duration:    "4 hours",
		Rating:      decimal.RequireFromString("4.8"),
	},
	{
		Title:       "Safari Adventure in Serengeti",
		Description: "Witness the great migration and spot the Big Five on guided game drives in Tanzania's Serengeti National Park.",
		Location:    "Serengeti, Tanzania",
		Price:       decimal.RequireFromString("250.00"),
		Image:       "https://images.unsplash.com/photo-1516426122078-c23e76319801?w=800",
		Category:    "Wildlife",
		Duration:    "8 hours",
		Rating:      decimal.RequireFromString("5.0"),
	},
	{
		Title:       "Scuba Diving in Great Barrier Reef",
		Description: "Explore the world's largest coral reef system with certified instructors.",
		Location:    "Queensland, Australia",
		Price:       decimal.RequireFromString("200.00"),
		Image:       "https://images.unsplash.com/photo-1544551763-46a013bb70d5?w=800",
		Category:    "Water Sports",
		Duration:    "5 hours",
		Rating:      decimal.RequireFromString("4.9"),
	},
	{
		Title:       "Cooking Class in Tuscany",
		Description: "Make fresh pasta and traditional sauces with a local chef, then enjoy them with local wine.",
		Location:    "Florence, Italy",
		Price:       decimal.RequireFromString("95.00"),
		Image:       "https://images.unsplash.com/photo-1556910103-1c02745aae4d?w=800",
		Category:    "Culinary",
		Duration:    "4 hours",
		Rating:      decimal.RequireFromString("4.7"),
	},
	{
		Title:       "Machu Picchu Guided Trek",
		Description: "Hike the Inca Trail to the ancient citadel of Machu Picchu and learn its history from expert guides.",
		Location:    "Cusco, Peru",
		Price:       decimal.RequireFromString("180.00"),
		Image:       "https://images.unsplash.com/photo-1587595431973-160d0d94add1?w=800",
		Category:    "Hiking",
		Duration:    "12 hours",
		Rating:      decimal.RequireFromString("5.0"),
	},
}

var seedPromoCodes = []models.PromoCode{
	{Code: "SAVE10", DiscountType: models.DiscountPercentage, DiscountValue: decimal.NewFromInt(10), IsActive: true},
	{Code: "FLAT100", DiscountType: models.DiscountFixed, DiscountValue: decimal.NewFromInt(100), IsActive: true},
	{Code: "WELCOME20", DiscountType: models.DiscountPercentage, DiscountValue: decimal.NewFromInt(20), IsActive: true},
}

var seedWindows = [][2]datatypes.Time{
	{datatypes.NewTime(9, 0, 0, 0), datatypes.NewTime(12, 0, 0, 0)},
	{datatypes.NewTime(14, 0, 0, 0), datatypes.NewTime(17, 0, 0, 0)},
}

// Seed fills an empty catalog with demo experiences, a week of morning and
// afternoon slots starting at today, and the demo promo codes. It does
// nothing when any experience already exists, and reports whether it seeded.
func Seed(ctx context.Context, db *gorm.DB, today time.Time) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Experience{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count experiences: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		experiences := make([]models.Experience, len(seedExperiences))
		copy(experiences, seedExperiences)
		if err := tx.Create(&experiences).Error; err != nil {
			return fmt.Errorf("seed experiences: %w", err)
		}

		var slots []models.Slot
		for _, exp := range experiences {
			for i := 0; i < seedDays; i++ {
				date := models.DateOnly(today.AddDate(0, 0, i))
				for _, w := range seedWindows {
					slots = append(slots, models.Slot{
						ExperienceID:   exp.ID,
						Date:           date,
						StartTime:      w[0],
						EndTime:        w[1],
						TotalSpots:     seedSpotsPerSlot,
						AvailableSpots: seedSpotsPerSlot,
					})
				}
			}
		}
		if err := tx.Create(&slots).Error; err != nil {
			return fmt.Errorf("seed slots: %w", err)
		}

		promos := make([]models.PromoCode, len(seedPromoCodes))
		copy(promos, seedPromoCodes)
		if err := tx.Create(&promos).Error; err != nil {
			return fmt.Errorf("seed promo codes: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
