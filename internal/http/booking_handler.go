package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Karasal/Call-Sal-sub000/internal/booking"
	"github.com/Karasal/Call-Sal-sub000/internal/portal"
)

type confirmBookingRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
	Type string `json:"type"`
}

type slotsResponse struct {
	Date  string         `json:"date"`
	Type  string         `json:"type"`
	Slots []booking.Slot `json:"slots"`
}

// BookingDates returns the offerable calendar horizon.
func (h *Handlers) BookingDates(c echo.Context) error {
	return c.JSON(http.StatusOK, h.scheduler.Dates())
}

// BookingSlots classifies the time grid for a date and meeting type.
func (h *Handlers) BookingSlots(c echo.Context) error {
	date := c.QueryParam("date")
	meetingType := portal.MeetingType(c.QueryParam("type"))
	if date == "" || meetingType == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "date and type query parameters are required."})
	}

	slots := h.scheduler.Slots(c.Request().Context(), date, meetingType)
	return c.JSON(http.StatusOK, slotsResponse{Date: date, Type: string(meetingType), Slots: slots})
}

// ConfirmBooking books a slot for the current user.
func (h *Handlers) ConfirmBooking(c echo.Context) error {
	var req confirmBookingRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}

	confirmed, err := h.scheduler.Confirm(c.Request().Context(), req.Date, req.Time, portal.MeetingType(req.Type))
	if err != nil {
		return writeServiceError(c, err)
	}

	bookingsConfirmedTotal.Inc()
	return c.JSON(http.StatusCreated, confirmed)
}

// ListBookings returns the stored bookings: all of them for the
// administrator, only the caller's own otherwise.
func (h *Handlers) ListBookings(c echo.Context) error {
	principal, ok := h.CurrentPrincipal(c)
	if !ok {
		return writeServiceError(c, booking.ErrLoginRequired)
	}

	all := h.scheduler.Bookings(c.Request().Context())
	if principal.IsAdmin {
		return c.JSON(http.StatusOK, all)
	}

	own := make([]portal.Booking, 0, len(all))
	for _, b := range all {
		if b.UserID == principal.UserID {
			own = append(own, b)
		}
	}
	return c.JSON(http.StatusOK, own)
}
