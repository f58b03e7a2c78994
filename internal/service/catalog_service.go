package service

import (
	"context"
	"errors"
	"time"

	"github.com/Eursukkul/experience-booking/internal/models"
	"github.com/Eursukkul/experience-booking/internal/repository"
	"gorm.io/gorm"
)

type CatalogService interface {
	ListExperiences(ctx context.Context) ([]models.Experience, error)
	// GetExperience returns the experience with Slots set to its bookable
	// slots from today through the configured window.
	GetExperience(ctx context.Context, id uint) (*models.Experience, error)
}

type catalogService struct {
	experienceRepo repository.ExperienceRepository
	slotRepo       repository.SlotRepository
	windowDays     int
	now            func() time.Time
}

func NewCatalogService(experienceRepo repository.ExperienceRepository, slotRepo repository.SlotRepository, windowDays int) CatalogService {
	return &catalogService{
		experienceRepo: experienceRepo,
		slotRepo:       slotRepo,
		windowDays:     windowDays,
		now:            time.Now,
	}
}

func (s *catalogService) ListExperiences(ctx context.Context) ([]models.Experience, error) {
	experiences, err := s.experienceRepo.FindAll(ctx)
	if err != nil {
		return nil, internalError(err)
	}
	return experiences, nil
}

func (s *catalogService) GetExperience(ctx context.Context, id uint) (*models.Experience, error) {
	experience, err := s.experienceRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExperienceNotFound
		}
		return nil, internalError(err)
	}

	today := s.now().UTC()
	slots, err := s.slotRepo.FindAvailable(ctx, id, models.DateOnly(today), models.DateOnly(today.AddDate(0, 0, s.windowDays)))
	if err != nil {
		return nil, internalError(err)
	}
	experience.Slots = slots
	return experience, nil
}
