package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/Eursukkul/experience-booking/internal/models"
	"github.com/Eursukkul/experience-booking/internal/testutil"
	"github.com/Eursukkul/experience-booking/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	db := testutil.NewDB(t)
	today := time.Date(2026, 3, 1, 15, 30, 0, 0, time.UTC)

	seeded, err := database.Seed(context.Background(), db, today)
	require.NoError(t, err)
	assert.True(t, seeded)

	var experiences, slots, promos int64
	db.Model(&models.Experience{}).Count(&experiences)
	db.Model(&models.Slot{}).Count(&slots)
	db.Model(&models.PromoCode{}).Count(&promos)
	assert.Equal(t, int64(6), experiences)
	assert.Equal(t, int64(6*7*2), slots)
	assert.Equal(t, int64(3), promos)

	var first models.Slot
	require.NoError(t, db.Order("id ASC").First(&first).Error)
	assert.Equal(t, "2026-03-01", time.Time(first.Date).Format("2006-01-02"))
	assert.Equal(t, "09:00:00", first.StartTime.String())
	assert.Equal(t, 10, first.AvailableSpots)
}

func TestSeed_SkipsWhenCatalogExists(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	_, err := database.Seed(ctx, db, time.Now())
	require.NoError(t, err)

	seeded, err := database.Seed(ctx, db, time.Now())
	require.NoError(t, err)
	assert.False(t, seeded)

	var promos int64
	db.Model(&models.PromoCode{}).Count(&promos)
	assert.Equal(t, int64(3), promos)
}
