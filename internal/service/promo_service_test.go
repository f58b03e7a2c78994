package service

import (
	"context"
	"testing"

	"github.com/Eursukkul/experience-booking/internal/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	f := newFixture(t)
	svc := NewPromoService(f.promoRepo, f.experiences, pricing.Calculator{}, nil)

	promo, err := svc.Resolve(context.Background(), "SAVE10")
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", promo.Code)

	_, err = svc.Resolve(context.Background(), "EXPIRED")
	assert.ErrorIs(t, err, ErrPromoNotFound)

	_, err = svc.Resolve(context.Background(), "BOGUS")
	assert.ErrorIs(t, err, ErrPromoNotFound)
}

func TestPreview_Percentage(t *testing.T) {
	f := newFixture(t)
	exp := f.createExperience(t, "100.00")
	svc := NewPromoService(f.promoRepo, f.experiences, pricing.Calculator{}, nil)

	preview, err := svc.Preview(context.Background(), "SAVE10", exp.ID, 3)

	require.NoError(t, err)
	assert.Equal(t, "SAVE10", preview.Promo.Code)
	assert.Equal(t, "300.00", preview.Quote.BasePrice.StringFixed(2))
	assert.Equal(t, "30.00", preview.Quote.Discount.StringFixed(2))
	assert.Equal(t, "270.00", preview.Quote.TotalPrice.StringFixed(2))
}

// The preview must quote exactly what a booking with the same inputs charges.
func TestPreview_MatchesBooking(t *testing.T) {
	for _, clamp := range []bool{false, true} {
		f := newFixture(t)
		exp := f.createExperience(t, "45.50")
		slot := f.createSlot(t, exp.ID, day0, 10)
		calc := pricing.Calculator{ClampDiscount: clamp}
		promos := NewPromoService(f.promoRepo, f.experiences, calc, nil)
		bookings := f.bookingService(calc)

		for _, code := range []string{"SAVE10", "FLAT100"} {
			preview, err := promos.Preview(context.Background(), code, exp.ID, 2)
			require.NoError(t, err)

			booking, err := bookings.CreateBooking(context.Background(), bookingInput(exp.ID, slot.ID, 2, code))
			require.NoError(t, err)

			assert.True(t, preview.Quote.Discount.Equal(booking.Discount), "%s clamp=%v", code, clamp)
			assert.True(t, preview.Quote.TotalPrice.Equal(booking.TotalPrice), "%s clamp=%v", code, clamp)
		}
	}
}

func TestPreview_DefaultsToOnePerson(t *testing.T) {
	f := newFixture(t)
	exp := f.createExperience(t, "50.00")
	svc := NewPromoService(f.promoRepo, f.experiences, pricing.Calculator{}, nil)

	preview, err := svc.Preview(context.Background(), "SAVE10", exp.ID, 0)

	require.NoError(t, err)
	assert.Equal(t, "50.00", preview.Quote.BasePrice.StringFixed(2))
	assert.Equal(t, "45.00", preview.Quote.TotalPrice.StringFixed(2))
}

func TestPreview_Errors(t *testing.T) {
	f := newFixture(t)
	exp := f.createExperience(t, "50.00")
	svc := NewPromoService(f.promoRepo, f.experiences, pricing.Calculator{}, nil)
	ctx := context.Background()

	_, err := svc.Preview(ctx, "", exp.ID, 1)
	assert.ErrorIs(t, err, ErrPromoCodeRequired)
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = svc.Preview(ctx, "SAVE10", exp.ID, -1)
	assert.ErrorIs(t, err, ErrInvalidPartySize)

	_, err = svc.Preview(ctx, "BOGUS", exp.ID, 1)
	assert.ErrorIs(t, err, ErrPromoNotFound)
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = svc.Preview(ctx, "SAVE10", 999, 1)
	assert.ErrorIs(t, err, ErrExperienceNotFound)
}
