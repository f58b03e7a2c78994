package handler

import (
	"net/http"

	"github.com/Eursukkul/experience-booking/internal/dto"
	"github.com/Eursukkul/experience-booking/internal/service"
	"github.com/labstack/echo/v4"
)

type ExperienceHandler struct {
	svc service.CatalogService
}

func NewExperienceHandler(svc service.CatalogService) *ExperienceHandler {
	return &ExperienceHandler{svc: svc}
}

func (h *ExperienceHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/experiences", h.ListExperiences)
	g.GET("/experiences/:id", h.GetExperience)
}

func (h *ExperienceHandler) ListExperiences(c echo.Context) error {
	experiences, err := h.svc.ListExperiences(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	resp := make([]dto.ExperienceResponse, len(experiences))
	for i := range experiences {
		resp[i] = dto.ToExperienceResponse(&experiences[i])
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *ExperienceHandler) GetExperience(c echo.Context) error {
	id, err := parseID(c, "experience")
	if err != nil {
		return err
	}

	experience, err := h.svc.GetExperience(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.ToExperienceDetailResponse(experience))
}
