package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Eursukkul/experience-booking/internal/dto"
	"github.com/Eursukkul/experience-booking/internal/service"
	"github.com/labstack/echo/v4"
)

type PromoHandler struct {
	svc service.PromoService
}

func NewPromoHandler(svc service.PromoService) *PromoHandler {
	return &PromoHandler{svc: svc}
}

func (h *PromoHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/promo/validate", h.ValidatePromo)
}

// ValidatePromo previews a promo code against an experience without booking.
func (h *PromoHandler) ValidatePromo(c echo.Context) error {
	var req dto.ValidatePromoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		if strings.TrimSpace(req.Code) == "" {
			return httpError(service.ErrPromoCodeRequired)
		}
		return httpError(service.ErrInvalidPartySize)
	}

	preview, err := h.svc.Preview(c.Request().Context(), req.Code, req.ExperienceID, req.NumberOfPeople)
	if err != nil {
		if errors.Is(err, service.ErrPromoNotFound) {
			return c.JSON(http.StatusNotFound, dto.InvalidPromoResponse{Valid: false, Error: err.Error()})
		}
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.ToValidatePromoResponse(preview))
}
