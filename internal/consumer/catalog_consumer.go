package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Eursukkul/experience-booking/internal/models"
	"github.com/Eursukkul/experience-booking/internal/repository"
	"github.com/Eursukkul/experience-booking/pkg/validation"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RoutingKeyExperienceUpserted = "catalog.experience.upserted"
	RoutingKeyPromoUpserted      = "catalog.promo.upserted"
	RoutingKeySlotCreated        = "catalog.slot.created"
)

// errMalformed marks a message that will never succeed and must not be requeued.
var errMalformed = errors.New("malformed message")

// Column bounds: decimal(10,2) for money, decimal(2,1) for ratings.
var (
	maxMoney   = decimal.RequireFromString("99999999.99")
	maxRating  = decimal.NewFromInt(5)
	maxPercent = decimal.NewFromInt(100)
)

type ExperienceMessage struct {
	ID          uint            `json:"id" validate:"required"`
	Title       string          `json:"title" validate:"required,notblank"`
	Description string          `json:"description"`
	Location    string          `json:"location"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Duration    string          `json:"duration"`
	Rating      decimal.Decimal `json:"rating"`
}

type PromoMessage struct {
	Code          string              `json:"code" validate:"required,notblank"`
	DiscountType  models.DiscountType `json:"discountType" validate:"required"`
	DiscountValue decimal.Decimal     `json:"discountValue"`
	// IsActive defaults to true when omitted.
	IsActive *bool `json:"isActive"`
}

type SlotMessage struct {
	ID           uint   `json:"id" validate:"required"`
	ExperienceID uint   `json:"experienceId" validate:"required"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime    string `json:"startTime" validate:"required"`
	EndTime      string `json:"endTime" validate:"required"`
	TotalSpots   int    `json:"totalSpots" validate:"gt=0"`
}

// CatalogConsumer mirrors catalog changes published by the catalog owner
// into the local store. Slot capacity is only ever set on insert.
type CatalogConsumer struct {
	experiences repository.ExperienceRepository
	promos      repository.PromoCodeRepository
	slots       repository.SlotRepository
	validator   *validation.Validator
	log         *zap.Logger
}

func NewCatalogConsumer(
	experiences repository.ExperienceRepository,
	promos repository.PromoCodeRepository,
	slots repository.SlotRepository,
	log *zap.Logger,
) *CatalogConsumer {
	if log == nil {
		log = zap.NewNop()
	}
	return &CatalogConsumer{
		experiences: experiences,
		promos:      promos,
		slots:       slots,
		validator:   validation.New(),
		log:         log.Named("catalog_consumer"),
	}
}

// Start handles deliveries until msgs is closed.
func (cc *CatalogConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			cc.handleMessage(context.Background(), msg)
		}
		cc.log.Info("channel closed, stopping consumer")
	}()
}

func (cc *CatalogConsumer) handleMessage(ctx context.Context, msg amqp.Delivery) {
	var err error
	switch msg.RoutingKey {
	case RoutingKeyExperienceUpserted:
		err = cc.upsertExperience(ctx, msg.Body)
	case RoutingKeyPromoUpserted:
		err = cc.upsertPromo(ctx, msg.Body)
	case RoutingKeySlotCreated:
		err = cc.createSlot(ctx, msg.Body)
	default:
		err = fmt.Errorf("%w: unknown routing key", errMalformed)
	}

	fields := []zap.Field{zap.String("routing_key", msg.RoutingKey), zap.Uint64("delivery_tag", msg.DeliveryTag)}
	switch {
	case err == nil:
		if ackErr := msg.Ack(false); ackErr != nil {
			cc.log.Warn("ack failed", append(fields, zap.Error(ackErr))...)
		}
	case errors.Is(err, errMalformed):
		cc.log.Warn("dropping message", append(fields, zap.Error(err))...)
		_ = msg.Nack(false, false)
	default:
		cc.log.Error("failed to apply message, requeueing", append(fields, zap.Error(err))...)
		_ = msg.Nack(false, true)
	}
}

func (cc *CatalogConsumer) decode(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %v", errMalformed, err)
	}
	if err := cc.validator.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", errMalformed, err)
	}
	return nil
}

func (cc *CatalogConsumer) upsertExperience(ctx context.Context, body []byte) error {
	var m ExperienceMessage
	if err := cc.decode(body, &m); err != nil {
		return err
	}
	if err := inRange("price", m.Price, maxMoney); err != nil {
		return err
	}
	if err := inRange("rating", m.Rating, maxRating); err != nil {
		return err
	}

	exp := &models.Experience{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Location:    m.Location,
		Price:       m.Price,
		Image:       m.Image,
		Category:    m.Category,
		Duration:    m.Duration,
		Rating:      m.Rating,
	}
	if err := cc.experiences.Upsert(ctx, exp); err != nil {
		return err
	}
	cc.log.Info("synced experience", zap.Uint("experience_id", exp.ID))
	return nil
}

func (cc *CatalogConsumer) upsertPromo(ctx context.Context, body []byte) error {
	var m PromoMessage
	if err := cc.decode(body, &m); err != nil {
		return err
	}
	if !m.DiscountType.Valid() {
		return fmt.Errorf("%w: unknown discount type %q", errMalformed, m.DiscountType)
	}
	limit := maxMoney
	if m.DiscountType == models.DiscountPercentage {
		limit = maxPercent
	}
	if err := inRange("discount value", m.DiscountValue, limit); err != nil {
		return err
	}

	promo := &models.PromoCode{
		Code:          m.Code,
		DiscountType:  m.DiscountType,
		DiscountValue: m.DiscountValue,
		IsActive:      m.IsActive == nil || *m.IsActive,
	}
	if err := cc.promos.Upsert(ctx, promo); err != nil {
		return err
	}
	cc.log.Info("synced promo code", zap.String("code", promo.Code), zap.Bool("active", promo.IsActive))
	return nil
}

func (cc *CatalogConsumer) createSlot(ctx context.Context, body []byte) error {
	var m SlotMessage
	if err := cc.decode(body, &m); err != nil {
		return err
	}
	date, err := time.Parse("2006-01-02", m.Date)
	if err != nil {
		return fmt.Errorf("%w: %v", errMalformed, err)
	}
	start, err := parseClock(m.StartTime)
	if err != nil {
		return err
	}
	end, err := parseClock(m.EndTime)
	if err != nil {
		return err
	}
	if end <= start {
		return fmt.Errorf("%w: slot ends before it starts", errMalformed)
	}

	// A slot for an experience we have never seen cannot be booked.
	if _, err := cc.experiences.FindByID(ctx, m.ExperienceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: unknown experience %d", errMalformed, m.ExperienceID)
		}
		return err
	}

	slot := &models.Slot{
		ID:             m.ID,
		ExperienceID:   m.ExperienceID,
		Date:           models.DateOnly(date),
		StartTime:      start,
		EndTime:        end,
		TotalSpots:     m.TotalSpots,
		AvailableSpots: m.TotalSpots,
	}
	created, err := cc.slots.CreateIfAbsent(ctx, slot)
	if err != nil {
		return err
	}
	cc.log.Info("synced slot", zap.Uint("slot_id", slot.ID), zap.Bool("created", created))
	return nil
}

func inRange(field string, v, limit decimal.Decimal) error {
	if v.IsNegative() || v.GreaterThan(limit) {
		return fmt.Errorf("%w: %s %s outside [0, %s]", errMalformed, field, v, limit)
	}
	return nil
}

func parseClock(s string) (datatypes.Time, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return datatypes.NewTime(t.Hour(), t.Minute(), t.Second(), 0), nil
		}
	}
	return 0, fmt.Errorf("%w: invalid time %q", errMalformed, s)
}
