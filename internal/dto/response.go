package dto

import (
	"time"

	"github.com/Eursukkul/experience-booking/internal/models"
	"github.com/Eursukkul/experience-booking/internal/service"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type ExperienceResponse struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Duration    string  `json:"duration"`
	Rating      float64 `json:"rating"`
}

type SlotResponse struct {
	ID             uint   `json:"id"`
	ExperienceID   uint   `json:"experienceId"`
	Date           string `json:"date"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	AvailableSpots int    `json:"availableSpots"`
	TotalSpots     int    `json:"totalSpots"`
}

type ExperienceDetailResponse struct {
	ExperienceResponse
	Slots []SlotResponse `json:"slots"`
}

type BookingResponse struct {
	ID              uint                 `json:"id"`
	ExperienceTitle string               `json:"experienceTitle"`
	CustomerName    string               `json:"customerName"`
	CustomerEmail   string               `json:"customerEmail"`
	NumberOfPeople  int                  `json:"numberOfPeople"`
	TotalPrice      float64              `json:"totalPrice"`
	Discount        float64              `json:"discount"`
	Status          models.BookingStatus `json:"status"`
}

type CreateBookingResponse struct {
	Success bool            `json:"success"`
	Booking BookingResponse `json:"booking"`
}

type BookingDetailResponse struct {
	BookingResponse
	ExperienceID  uint      `json:"experienceId"`
	SlotID        uint      `json:"slotId"`
	CustomerPhone string    `json:"customerPhone"`
	PromoCode     *string   `json:"promoCode"`
	CreatedAt     time.Time `json:"createdAt"`
}

type ValidatePromoResponse struct {
	Valid         bool                `json:"valid"`
	Code          string              `json:"code"`
	DiscountType  models.DiscountType `json:"discountType"`
	DiscountValue float64             `json:"discountValue"`
	Discount      float64             `json:"discount"`
	FinalPrice    float64             `json:"finalPrice"`
}

type InvalidPromoResponse struct {
	Valid bool   `json:"valid"`
	Error string `json:"error"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func ToExperienceResponse(e *models.Experience) ExperienceResponse {
	return ExperienceResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		Price:       money(e.Price),
		Image:       e.Image,
		Category:    e.Category,
		Duration:    e.Duration,
		Rating:      e.Rating.InexactFloat64(),
	}
}

func ToSlotResponse(s *models.Slot) SlotResponse {
	return SlotResponse{
		ID:             s.ID,
		ExperienceID:   s.ExperienceID,
		Date:           time.Time(s.Date).Format(dateLayout),
		StartTime:      s.StartTime.String(),
		EndTime:        s.EndTime.String(),
		AvailableSpots: s.AvailableSpots,
		TotalSpots:     s.TotalSpots,
	}
}

func ToExperienceDetailResponse(e *models.Experience) ExperienceDetailResponse {
	slots := make([]SlotResponse, len(e.Slots))
	for i := range e.Slots {
		slots[i] = ToSlotResponse(&e.Slots[i])
	}
	return ExperienceDetailResponse{
		ExperienceResponse: ToExperienceResponse(e),
		Slots:              slots,
	}
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	resp := BookingResponse{
		ID:             b.ID,
		CustomerName:   b.CustomerName,
		CustomerEmail:  b.CustomerEmail,
		NumberOfPeople: b.NumberOfPeople,
		TotalPrice:     money(b.TotalPrice),
		Discount:       money(b.Discount),
		Status:         b.Status,
	}
	if b.Experience != nil {
		resp.ExperienceTitle = b.Experience.Title
	}
	return resp
}

func ToBookingDetailResponse(b *models.Booking) BookingDetailResponse {
	return BookingDetailResponse{
		BookingResponse: ToBookingResponse(b),
		ExperienceID:    b.ExperienceID,
		SlotID:          b.SlotID,
		CustomerPhone:   b.CustomerPhone,
		PromoCode:       b.PromoCode,
		CreatedAt:       b.CreatedAt,
	}
}

func ToValidatePromoResponse(p *service.PromoPreview) ValidatePromoResponse {
	return ValidatePromoResponse{
		Valid:         true,
		Code:          p.Promo.Code,
		DiscountType:  p.Promo.DiscountType,
		DiscountValue: money(p.Promo.DiscountValue),
		Discount:      money(p.Quote.Discount),
		FinalPrice:    money(p.Quote.TotalPrice),
	}
}
