package repository

import (
	"context"

	"github.com/Eursukkul/experience-booking/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PromoCodeRepository interface {
	FindActiveByCode(ctx context.Context, code string) (*models.PromoCode, error)
	Upsert(ctx context.Context, promo *models.PromoCode) error
}

type promoCodeRepository struct {
	db *gorm.DB
}

func NewPromoCodeRepository(db *gorm.DB) PromoCodeRepository {
	return &promoCodeRepository{db: db}
}

// FindActiveByCode matches code exactly (case-sensitive). Inactive codes
// yield gorm.ErrRecordNotFound just like unknown ones.
func (r *promoCodeRepository) FindActiveByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	var promo models.PromoCode
	err := r.db.WithContext(ctx).
		Where("code = ? AND is_active = ?", code, true).
		First(&promo).Error
	if err != nil {
		return nil, err
	}
	return &promo, nil
}

func (r *promoCodeRepository) Upsert(ctx context.Context, promo *models.PromoCode) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"discount_type", "discount_value", "is_active", "updated_at"}),
	}).Create(promo).Error
}
