package dto

import "github.com/Eursukkul/experience-booking/internal/service"

type CreateBookingRequest struct {
	ExperienceID   uint   `json:"experienceId"`
	SlotID         uint   `json:"slotId"`
	CustomerName   string `json:"customerName"`
	CustomerEmail  string `json:"customerEmail"`
	CustomerPhone  string `json:"customerPhone"`
	NumberOfPeople int    `json:"numberOfPeople"`
	PromoCode      string `json:"promoCode,omitempty"`
}

func (r CreateBookingRequest) ToInput() service.CreateBookingInput {
	return service.CreateBookingInput{
		ExperienceID:   r.ExperienceID,
		SlotID:         r.SlotID,
		CustomerName:   r.CustomerName,
		CustomerEmail:  r.CustomerEmail,
		CustomerPhone:  r.CustomerPhone,
		NumberOfPeople: r.NumberOfPeople,
		PromoCode:      r.PromoCode,
	}
}

type ValidatePromoRequest struct {
	Code           string `json:"code" validate:"required,notblank"`
	ExperienceID   uint   `json:"experienceId"`
	NumberOfPeople int    `json:"numberOfPeople" validate:"gte=0"`
}
