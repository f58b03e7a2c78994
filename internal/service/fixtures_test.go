package service

import (
	"sync"
	"testing"
	"time"

	"github.com/Eursukkul/experience-booking/internal/models"
	"github.com/Eursukkul/experience-booking/internal/pricing"
	"github.com/Eursukkul/experience-booking/internal/repository"
	"github.com/Eursukkul/experience-booking/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var day0 = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

// --- Mock EventPublisher ---

type mockPublisher struct {
	mu     sync.Mutex
	keys   []string
	events []any
	err    error
}

func (m *mockPublisher) Publish(routingKey string, payload any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys = append(m.keys, routingKey)
	m.events = append(m.events, payload)
	return m.err
}

// --- Fixture ---

type fixture struct {
	db          *gorm.DB
	bookings    repository.BookingRepository
	slots       repository.SlotRepository
	experiences repository.ExperienceRepository
	promoRepo   repository.PromoCodeRepository
	publisher   *mockPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	f := &fixture{
		db:          db,
		bookings:    repository.NewBookingRepository(db),
		slots:       repository.NewSlotRepository(db),
		experiences: repository.NewExperienceRepository(db),
		promoRepo:   repository.NewPromoCodeRepository(db),
		publisher:   &mockPublisher{},
	}

	promos := []models.PromoCode{
		{Code: "SAVE10", DiscountType: models.DiscountPercentage, DiscountValue: decimal.NewFromInt(10), IsActive: true},
		{Code: "FLAT100", DiscountType: models.DiscountFixed, DiscountValue: decimal.NewFromInt(100), IsActive: true},
		{Code: "EXPIRED", DiscountType: models.DiscountPercentage, DiscountValue: decimal.NewFromInt(50), IsActive: false},
	}
	require.NoError(t, db.Create(&promos).Error)
	return f
}

func (f *fixture) bookingService(calc pricing.Calculator) BookingService {
	return f.bookingServiceWith(calc, f.bookings)
}

func (f *fixture) bookingServiceWith(calc pricing.Calculator, bookings repository.BookingRepository) BookingService {
	return NewBookingService(BookingDeps{
		Bookings:    bookings,
		Slots:       f.slots,
		Experiences: f.experiences,
		Promos:      NewPromoService(f.promoRepo, f.experiences, calc, nil),
		Calculator:  calc,
		Publisher:   f.publisher,
	})
}

func (f *fixture) createExperience(t *testing.T, price string) *models.Experience {
	t.Helper()
	exp := &models.Experience{
		Title:       "Cooking Class in Tuscany",
		Description: "pasta",
		Location:    "Florence, Italy",
		Price:       decimal.RequireFromString(price),
		Image:       "img.jpg",
		Category:    "Culinary",
		Duration:    "4 hours",
		Rating:      decimal.RequireFromString("4.7"),
	}
	require.NoError(t, f.db.Create(exp).Error)
	return exp
}

func (f *fixture) createSlot(t *testing.T, experienceID uint, date time.Time, spots int) *models.Slot {
	t.Helper()
	slot := &models.Slot{
		ExperienceID:   experienceID,
		Date:           models.DateOnly(date),
		StartTime:      datatypes.NewTime(9, 0, 0, 0),
		EndTime:        datatypes.NewTime(12, 0, 0, 0),
		TotalSpots:     spots,
		AvailableSpots: spots,
	}
	require.NoError(t, f.db.Create(slot).Error)
	return slot
}

func (f *fixture) availableSpots(t *testing.T, slotID uint) int {
	t.Helper()
	var slot models.Slot
	require.NoError(t, f.db.First(&slot, slotID).Error)
	return slot.AvailableSpots
}

func (f *fixture) bookingCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Model(&models.Booking{}).Count(&count).Error)
	return count
}

func bookingInput(experienceID, slotID uint, people int, promo string) CreateBookingInput {
	return CreateBookingInput{
		ExperienceID:   experienceID,
		SlotID:         slotID,
		CustomerName:   "Ann Traveler",
		CustomerEmail:  "ann@example.com",
		CustomerPhone:  "+66 81 234 5678",
		NumberOfPeople: people,
		PromoCode:      promo,
	}
}
