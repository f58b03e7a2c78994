//go:build integration

package integration

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Eursukkul/experience-booking/internal/models"
	"github.com/Eursukkul/experience-booking/internal/pricing"
	"github.com/Eursukkul/experience-booking/internal/repository"
	"github.com/Eursukkul/experience-booking/internal/service"
	"github.com/Eursukkul/experience-booking/pkg/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func createTestSlot(t *testing.T, price string, spots int) (*models.Experience, *models.Slot) {
	t.Helper()
	exp := &models.Experience{
		Title:    "Hot Air Balloon Ride",
		Location: "Cappadocia, Turkey",
		Price:    decimal.RequireFromString(price),
		Rating:   decimal.RequireFromString("4.9"),
	}
	require.NoError(t, testDB.Create(exp).Error)

	slot := &models.Slot{
		ExperienceID:   exp.ID,
		Date:           models.DateOnly(time.Now().AddDate(0, 0, 1)),
		StartTime:      datatypes.NewTime(9, 0, 0, 0),
		EndTime:        datatypes.NewTime(12, 0, 0, 0),
		TotalSpots:     spots,
		AvailableSpots: spots,
	}
	require.NoError(t, testDB.Create(slot).Error)
	return exp, slot
}

func newBookingService(bookings repository.BookingRepository) service.BookingService {
	experienceRepo := repository.NewExperienceRepository(testDB)
	calc := pricing.Calculator{}
	return service.NewBookingService(service.BookingDeps{
		Bookings:    bookings,
		Slots:       repository.NewSlotRepository(testDB),
		Experiences: experienceRepo,
		Promos:      service.NewPromoService(repository.NewPromoCodeRepository(testDB), experienceRepo, calc, nil),
		Calculator:  calc,
	})
}

func availableSpots(t *testing.T, slotID uint) int {
	t.Helper()
	var slot models.Slot
	require.NoError(t, testDB.First(&slot, slotID).Error)
	return slot.AvailableSpots
}

func input(exp *models.Experience, slot *models.Slot, people int, i int) service.CreateBookingInput {
	return service.CreateBookingInput{
		ExperienceID:   exp.ID,
		SlotID:         slot.ID,
		CustomerName:   fmt.Sprintf("Guest %03d", i),
		CustomerEmail:  fmt.Sprintf("guest%03d@example.com", i),
		CustomerPhone:  "+66 81 000 0000",
		NumberOfPeople: people,
	}
}

// Test: 40 guests race for a 10-spot slot → exactly 10 succeed, no oversell
func TestConcurrentBooking_NoOversell(t *testing.T) {
	cleanTables()
	exp, slot := createTestSlot(t, "180", 10)
	svc := newBookingService(repository.NewBookingRepository(testDB))

	total := 40
	var wg sync.WaitGroup
	var mu sync.Mutex
	var confirmed, rejected int

	wg.Add(total)
	for i := 0; i < total; i++ {
		go func(i int) {
			defer wg.Done()
			_, err := svc.CreateBooking(t.Context(), input(exp, slot, 1, i))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				confirmed++
			case errors.Is(err, service.ErrNotEnoughSpots):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, confirmed, "should confirm exactly 10 guests")
	assert.Equal(t, 30, rejected, "should reject the rest for capacity")
	assert.Equal(t, 0, availableSpots(t, slot.ID))

	var people int64
	testDB.Model(&models.Booking{}).Where("slot_id = ?", slot.ID).Select("COALESCE(SUM(number_of_people), 0)").Scan(&people)
	assert.Equal(t, int64(10), people)
}

// Test: two parties of 2 race for 3 spots → one succeeds, one is rejected
func TestConcurrentBooking_PartiesLargerThanRemainder(t *testing.T) {
	cleanTables()
	exp, slot := createTestSlot(t, "100", 3)
	svc := newBookingService(repository.NewBookingRepository(testDB))

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func(i int) {
			defer wg.Done()
			_, err := svc.CreateBooking(t.Context(), input(exp, slot, 2, i))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	var ok, capacity int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, service.ErrNotEnoughSpots):
			capacity++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, capacity)
	assert.Equal(t, 1, availableSpots(t, slot.ID))
}

// failingBookingRepo fails the insert after the slot was decremented.
type failingBookingRepo struct {
	repository.BookingRepository
}

func (f failingBookingRepo) Create(ctx context.Context, tx *gorm.DB, b *models.Booking) error {
	return errors.New("insert rejected")
}

// Test: failed insert rolls the decrement back
func TestCreateBooking_RollbackOnInsertFailure(t *testing.T) {
	cleanTables()
	exp, slot := createTestSlot(t, "100", 5)
	svc := newBookingService(failingBookingRepo{repository.NewBookingRepository(testDB)})

	_, err := svc.CreateBooking(t.Context(), input(exp, slot, 2, 1))
	assert.ErrorIs(t, err, service.ErrInternal)
	assert.Equal(t, 5, availableSpots(t, slot.ID))

	var count int64
	testDB.Model(&models.Booking{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

// Test: the check constraint rejects negative capacity even outside the service
func TestSlotCheckConstraint(t *testing.T) {
	cleanTables()
	_, slot := createTestSlot(t, "100", 1)

	err := testDB.Exec("UPDATE slots SET available_spots = -1 WHERE id = ?", slot.ID).Error
	assert.Error(t, err)
	assert.Equal(t, 1, availableSpots(t, slot.ID))
}

// Test: seeding inserts the catalog once
func TestSeed_OnlyWhenEmpty(t *testing.T) {
	cleanTables()

	seeded, err := database.Seed(t.Context(), testDB, time.Now())
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = database.Seed(t.Context(), testDB, time.Now())
	require.NoError(t, err)
	assert.False(t, seeded)

	var experiences, promos int64
	testDB.Model(&models.Experience{}).Count(&experiences)
	testDB.Model(&models.PromoCode{}).Count(&promos)
	assert.Equal(t, int64(6), experiences)
	assert.Equal(t, int64(3), promos)
}
