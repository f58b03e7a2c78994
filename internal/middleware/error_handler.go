package middleware

import (
	"net/http"

	"github.com/Eursukkul/experience-booking/internal/dto"
	"github.com/labstack/echo/v4"
)

// ErrorHandler renders every error as {"success": false, "error": msg}.
// Only *echo.HTTPError messages reach the client; anything else is reported
// as a generic internal error.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(http.StatusInternalServerError)

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, dto.ErrorResponse{Success: false, Error: msg})
}
