package repository

import (
	"context"

	"github.com/Eursukkul/experience-booking/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SlotRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Slot, error)
	FindAvailable(ctx context.Context, experienceID uint, from, to datatypes.Date) ([]models.Slot, error)
	DecrementAvailable(ctx context.Context, tx *gorm.DB, slotID uint, n int) (bool, error)
	CreateIfAbsent(ctx context.Context, slot *models.Slot) (bool, error)
}

type slotRepository struct {
	db *gorm.DB
}

func NewSlotRepository(db *gorm.DB) SlotRepository {
	return &slotRepository{db: db}
}

func (r *slotRepository) FindByID(ctx context.Context, id uint) (*models.Slot, error) {
	var slot models.Slot
	if err := r.db.WithContext(ctx).First(&slot, id).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

// FindAvailable lists slots of an experience dated within [from, to] that
// still have spots, ordered by date then start time.
func (r *slotRepository) FindAvailable(ctx context.Context, experienceID uint, from, to datatypes.Date) ([]models.Slot, error) {
	var slots []models.Slot
	err := r.db.WithContext(ctx).
		Where("experience_id = ? AND date BETWEEN ? AND ? AND available_spots > 0", experienceID, from, to).
		Order("date ASC, start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// DecrementAvailable takes n spots from the slot in a single conditional
// UPDATE. It reports false, leaving the row untouched, when fewer than n
// spots remain or the slot does not exist.
func (r *slotRepository) DecrementAvailable(ctx context.Context, tx *gorm.DB, slotID uint, n int) (bool, error) {
	res := tx.WithContext(ctx).
		Model(&models.Slot{}).
		Where("id = ? AND available_spots >= ?", slotID, n).
		Update("available_spots", gorm.Expr("available_spots - ?", n))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// CreateIfAbsent inserts a slot unless one with the same id exists. An
// existing slot is never modified, so capacity already booked is kept.
func (r *slotRepository) CreateIfAbsent(ctx context.Context, slot *models.Slot) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(slot)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
