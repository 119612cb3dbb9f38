// Package http exposes the portal and booking engine over an Echo JSON
// API.
package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Karasal/Call-Sal-sub000/internal/application"
	"github.com/Karasal/Call-Sal-sub000/internal/booking"
)

type errorResponse struct {
	ErrorCode string            `json:"error_code,omitempty"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
}

// writeServiceError maps the error taxonomy to responses: rejections
// carry a specific human-readable message; nothing internal leaks.
func writeServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrLoginRequired):
		return c.JSON(http.StatusUnauthorized, errorResponse{
			ErrorCode: "AUTH_LOGIN_REQUIRED",
			Message:   "Please log in to book a meeting.",
		})
	case errors.Is(err, application.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, errorResponse{
			ErrorCode: "AUTH_INVALID_CREDENTIALS",
			Message:   "The email or password is incorrect.",
		})
	case errors.Is(err, application.ErrInvalidKey):
		return c.JSON(http.StatusNotFound, errorResponse{
			ErrorCode: "REGISTRATION_KEY_NOT_FOUND",
			Message:   "That registration key was not recognised. Check it with Sal and try again.",
		})
	case errors.Is(err, application.ErrUnauthorized):
		return c.JSON(http.StatusForbidden, errorResponse{
			ErrorCode: "AUTH_FORBIDDEN",
			Message:   "You do not have permission to perform this action.",
		})
	case errors.Is(err, application.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Message: "The requested resource was not found."})
	case errors.Is(err, booking.ErrSlotUnavailable):
		return c.JSON(http.StatusConflict, errorResponse{
			ErrorCode: "SLOT_UNAVAILABLE",
			Message:   "That time slot has just been taken. Please pick another.",
		})
	case errors.Is(err, booking.ErrInvalidSlot):
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{
			ErrorCode: "SLOT_INVALID",
			Message:   "Bookings start two days out within business hours. Please pick a listed slot.",
		})
	}

	var vErr *application.ValidationError
	if errors.As(err, &vErr) {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{
			Message: "Some fields need attention.",
			Errors:  vErr.FieldErrors,
		})
	}

	return c.JSON(http.StatusInternalServerError, errorResponse{Message: "Something went wrong on our side."})
}

func badRequest(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Message: "The request body could not be read."})
}
