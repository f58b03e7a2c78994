package service

import (
	"context"
	"errors"

	"github.com/Eursukkul/experience-booking/internal/models"
	"github.com/Eursukkul/experience-booking/internal/pricing"
	"github.com/Eursukkul/experience-booking/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PromoPreview is what a promo code would do to a booking, without booking.
type PromoPreview struct {
	Promo *models.PromoCode
	Quote pricing.Quote
}

type PromoService interface {
	// Resolve returns the active promo code matching code exactly, or
	// ErrPromoNotFound.
	Resolve(ctx context.Context, code string) (*models.PromoCode, error)
	// Preview prices numberOfPeople on an experience with code applied.
	// numberOfPeople of zero is read as one.
	Preview(ctx context.Context, code string, experienceID uint, numberOfPeople int) (*PromoPreview, error)
}

type promoService struct {
	promoRepo      repository.PromoCodeRepository
	experienceRepo repository.ExperienceRepository
	calc           pricing.Calculator
	log            *zap.Logger
}

func NewPromoService(promoRepo repository.PromoCodeRepository, experienceRepo repository.ExperienceRepository, calc pricing.Calculator, log *zap.Logger) PromoService {
	if log == nil {
		log = zap.NewNop()
	}
	return &promoService{promoRepo: promoRepo, experienceRepo: experienceRepo, calc: calc, log: log}
}

func (s *promoService) Resolve(ctx context.Context, code string) (*models.PromoCode, error) {
	promo, err := s.promoRepo.FindActiveByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromoNotFound
		}
		return nil, err
	}
	return promo, nil
}

func (s *promoService) Preview(ctx context.Context, code string, experienceID uint, numberOfPeople int) (*PromoPreview, error) {
	if code == "" {
		return nil, ErrPromoCodeRequired
	}
	if numberOfPeople == 0 {
		numberOfPeople = 1
	}
	if numberOfPeople < 0 {
		return nil, ErrInvalidPartySize
	}

	promo, err := s.Resolve(ctx, code)
	if err != nil {
		if errors.Is(err, ErrPromoNotFound) {
			return nil, err
		}
		s.log.Error("resolve promo code failed", zap.String("promo_code", code), zap.Error(err))
		return nil, internalError(err)
	}

	experience, err := s.experienceRepo.FindByID(ctx, experienceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExperienceNotFound
		}
		s.log.Error("load experience failed", zap.Uint("experience_id", experienceID), zap.Error(err))
		return nil, internalError(err)
	}

	return &PromoPreview{
		Promo: promo,
		Quote: s.calc.Quote(experience.Price, numberOfPeople, promo),
	}, nil
}
