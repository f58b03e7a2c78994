package service

import (
	"context"
	"errors"

	"github.com/Eursukkul/experience-booking/internal/models"
	"github.com/Eursukkul/experience-booking/internal/pricing"
	"github.com/Eursukkul/experience-booking/internal/repository"
	"github.com/Eursukkul/experience-booking/pkg/validation"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RoutingKeyBookingConfirmed is published after a booking commits.
const RoutingKeyBookingConfirmed = "booking.confirmed"

// EventPublisher is satisfied by *rabbitmq.Publisher.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

type CreateBookingInput struct {
	ExperienceID   uint   `validate:"required"`
	SlotID         uint   `validate:"required"`
	CustomerName   string `validate:"required,notblank"`
	CustomerEmail  string `validate:"required,notblank,email"`
	CustomerPhone  string `validate:"required,notblank"`
	NumberOfPeople int    `validate:"required,gt=0"`
	PromoCode      string
}

type BookingConfirmedEvent struct {
	BookingID      uint                 `json:"booking_id"`
	ExperienceID   uint                 `json:"experience_id"`
	SlotID         uint                 `json:"slot_id"`
	CustomerEmail  string               `json:"customer_email"`
	NumberOfPeople int                  `json:"number_of_people"`
	TotalPrice     string               `json:"total_price"`
	Discount       string               `json:"discount"`
	PromoCode      *string              `json:"promo_code"`
	Status         models.BookingStatus `json:"status"`
}

type BookingService interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error)
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
}

type BookingDeps struct {
	Bookings    repository.BookingRepository
	Slots       repository.SlotRepository
	Experiences repository.ExperienceRepository
	Promos      PromoService
	Calculator  pricing.Calculator
	Validator   *validation.Validator
	// Publisher may be nil, in which case no booking events are sent.
	Publisher EventPublisher
	Logger    *zap.Logger
}

type bookingService struct {
	bookingRepo    repository.BookingRepository
	slotRepo       repository.SlotRepository
	experienceRepo repository.ExperienceRepository
	promos         PromoService
	calc           pricing.Calculator
	validator      *validation.Validator
	publisher      EventPublisher
	log            *zap.Logger
}

func NewBookingService(d BookingDeps) BookingService {
	s := &bookingService{
		bookingRepo:    d.Bookings,
		slotRepo:       d.Slots,
		experienceRepo: d.Experiences,
		promos:         d.Promos,
		calc:           d.Calculator,
		validator:      d.Validator,
		publisher:      d.Publisher,
		log:            d.Logger,
	}
	if s.validator == nil {
		s.validator = validation.New()
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}

// CreateBooking validates the request, prices it and commits the booking.
// The capacity check is repeated by the conditional decrement inside the
// transaction; the early read only gives a fast, ordered failure.
func (s *bookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	slot, err := s.slotRepo.FindByID(ctx, in.SlotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, s.internal("load slot", err, zap.Uint("slot_id", in.SlotID))
	}
	if slot.ExperienceID != in.ExperienceID {
		return nil, ErrSlotNotFound
	}
	if slot.AvailableSpots < in.NumberOfPeople {
		return nil, ErrNotEnoughSpots
	}

	experience, err := s.experienceRepo.FindByID(ctx, in.ExperienceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExperienceNotFound
		}
		return nil, s.internal("load experience", err, zap.Uint("experience_id", in.ExperienceID))
	}

	// Unknown or inactive codes are ignored and the booking proceeds at full price.
	var promo *models.PromoCode
	if in.PromoCode != "" {
		promo, err = s.promos.Resolve(ctx, in.PromoCode)
		switch {
		case errors.Is(err, ErrPromoNotFound):
			s.log.Info("promo code not applied", zap.String("promo_code", in.PromoCode))
			promo = nil
		case err != nil:
			return nil, s.internal("resolve promo code", err, zap.String("promo_code", in.PromoCode))
		}
	}

	quote := s.calc.Quote(experience.Price, in.NumberOfPeople, promo)

	booking := &models.Booking{
		ExperienceID:   in.ExperienceID,
		SlotID:         in.SlotID,
		CustomerName:   in.CustomerName,
		CustomerEmail:  in.CustomerEmail,
		CustomerPhone:  in.CustomerPhone,
		NumberOfPeople: in.NumberOfPeople,
		TotalPrice:     quote.TotalPrice,
		Discount:       quote.Discount,
		Status:         models.StatusConfirmed,
	}
	if promo != nil {
		code := promo.Code
		booking.PromoCode = &code
	}

	err = s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := s.slotRepo.DecrementAvailable(ctx, tx, in.SlotID, in.NumberOfPeople)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotEnoughSpots
		}
		return s.bookingRepo.Create(ctx, tx, booking)
	})
	if err != nil {
		if errors.Is(err, ErrNotEnoughSpots) {
			return nil, ErrNotEnoughSpots
		}
		return nil, s.internal("commit booking", err,
			zap.Uint("slot_id", in.SlotID),
			zap.Int("number_of_people", in.NumberOfPeople))
	}

	booking.Experience = experience
	s.log.Info("booking confirmed",
		zap.Uint("booking_id", booking.ID),
		zap.Uint("slot_id", booking.SlotID),
		zap.Int("number_of_people", booking.NumberOfPeople),
		zap.String("total_price", booking.TotalPrice.StringFixed(pricing.Places)))

	s.publishConfirmed(booking)
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, s.internal("load booking", err, zap.Uint("booking_id", id))
	}
	return booking, nil
}

func (s *bookingService) validate(in CreateBookingInput) error {
	err := s.validator.Validate(in)
	if err == nil {
		return nil
	}
	tags := validation.FailedTags(err)
	if tags == nil {
		return ErrMissingFields
	}
	for _, tag := range tags {
		if tag == "required" || tag == "notblank" {
			return ErrMissingFields
		}
	}
	if _, ok := tags["NumberOfPeople"]; ok {
		return ErrInvalidPartySize
	}
	return ErrInvalidEmail
}

// publishConfirmed is best-effort: the booking is already committed.
func (s *bookingService) publishConfirmed(b *models.Booking) {
	if s.publisher == nil {
		return
	}
	event := BookingConfirmedEvent{
		BookingID:      b.ID,
		ExperienceID:   b.ExperienceID,
		SlotID:         b.SlotID,
		CustomerEmail:  b.CustomerEmail,
		NumberOfPeople: b.NumberOfPeople,
		TotalPrice:     b.TotalPrice.StringFixed(pricing.Places),
		Discount:       b.Discount.StringFixed(pricing.Places),
		PromoCode:      b.PromoCode,
		Status:         b.Status,
	}
	if err := s.publisher.Publish(RoutingKeyBookingConfirmed, event); err != nil {
		s.log.Warn("failed to publish booking event", zap.Uint("booking_id", b.ID), zap.Error(err))
	}
}

func (s *bookingService) internal(op string, err error, fields ...zap.Field) error {
	s.log.Error(op+" failed", append(fields, zap.Error(err))...)
	return internalError(err)
}
