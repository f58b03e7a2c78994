package repository

import (
	"context"

	"github.com/Eursukkul/experience-booking/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ExperienceRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Experience, error)
	FindAll(ctx context.Context) ([]models.Experience, error)
	Upsert(ctx context.Context, experience *models.Experience) error
}

type experienceRepository struct {
	db *gorm.DB
}

func NewExperienceRepository(db *gorm.DB) ExperienceRepository {
	return &experienceRepository{db: db}
}

func (r *experienceRepository) FindByID(ctx context.Context, id uint) (*models.Experience, error) {
	var experience models.Experience
	if err := r.db.WithContext(ctx).First(&experience, id).Error; err != nil {
		return nil, err
	}
	return &experience, nil
}

func (r *experienceRepository) FindAll(ctx context.Context) ([]models.Experience, error) {
	var experiences []models.Experience
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&experiences).Error; err != nil {
		return nil, err
	}
	return experiences, nil
}

// Upsert inserts the experience or overwrites its display fields and price.
func (r *experienceRepository) Upsert(ctx context.Context, experience *models.Experience) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "description", "location", "price", "image", "category", "duration", "rating", "updated_at",
		}),
	}).Create(experience).Error
}
