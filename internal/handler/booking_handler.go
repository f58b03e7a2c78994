package handler

import (
	"net/http"

	"github.com/Eursukkul/experience-booking/internal/dto"
	"github.com/Eursukkul/experience-booking/internal/service"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/bookings", h.CreateBooking)
	g.GET("/bookings/:id", h.GetBooking)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		// Wrong JSON types count as missing fields.
		return echo.NewHTTPError(http.StatusBadRequest, service.ErrMissingFields.Message)
	}

	booking, err := h.svc.CreateBooking(c.Request().Context(), req.ToInput())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, dto.CreateBookingResponse{
		Success: true,
		Booking: dto.ToBookingResponse(booking),
	})
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := parseID(c, "booking")
	if err != nil {
		return err
	}

	booking, err := h.svc.GetBooking(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingDetailResponse(booking))
}
