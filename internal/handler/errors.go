package handler

import (
	"net/http"
	"strconv"

	"github.com/Eursukkul/experience-booking/internal/service"
	"github.com/labstack/echo/v4"
)

// httpError maps a service error onto a status code. Internal errors never
// carry their cause to the client.
func httpError(err error) *echo.HTTPError {
	switch service.KindOf(err) {
	case service.KindValidation, service.KindCapacity:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case service.KindNotFound:
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, service.ErrInternal.Message)
	}
}

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name+" id")
	}
	return uint(id), nil
}
