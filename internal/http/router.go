package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the Echo instance with all portal routes registered.
func NewRouter(h *Handlers, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.Recover())
	e.Use(RequestLogger(logger))
	e.Use(Metrics())

	// Session and registration.
	e.POST("/login", h.Login)
	e.POST("/logout", h.Logout)
	e.GET("/session", h.Session)
	e.POST("/register", h.Register)

	// Booking flow.
	e.GET("/booking/dates", h.BookingDates)
	e.GET("/booking/slots", h.BookingSlots)
	e.POST("/bookings", h.ConfirmBooking)
	e.GET("/bookings", h.ListBookings)

	// Client portal data.
	e.GET("/logs", h.ListLogs)
	e.GET("/invoices", h.ListInvoices)

	// Admin surface.
	admin := e.Group("", RequireAdmin(h))
	admin.POST("/clients", h.CreateClient)
	admin.GET("/clients", h.ListClients)
	admin.DELETE("/clients/:id", h.DeleteClient)
	admin.POST("/logs", h.CreateLog)
	admin.POST("/invoices", h.CreateInvoice)
	admin.POST("/invoices/:id/pay", h.PayInvoice)

	// Assistant.
	e.POST("/chat", h.Chat)

	// Probes and metrics.
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
