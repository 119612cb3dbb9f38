package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Karasal/Call-Sal-sub000/internal/application"
	"github.com/Karasal/Call-Sal-sub000/internal/booking"
	"github.com/Karasal/Call-Sal-sub000/internal/portal"
)

type createLogRequest struct {
	ClientID string `json:"clientId"`
	Date     string `json:"date"`
	Title    string `json:"title"`
	Update   string `json:"update"`
	Progress int    `json:"progress"`
}

// CreateLog records a progress update for a client. Admin only.
func (h *Handlers) CreateLog(c echo.Context) error {
	principal, _ := h.CurrentPrincipal(c)

	var req createLogRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}

	entry, err := h.progress.Record(c.Request().Context(), principal, application.LogEntryInput{
		ClientID: req.ClientID,
		Date:     req.Date,
		Title:    req.Title,
		Update:   req.Update,
		Progress: req.Progress,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, entry)
}

// ListLogs returns progress updates. The administrator may narrow to a
// client via ?client_id=; clients always see only their own.
func (h *Handlers) ListLogs(c echo.Context) error {
	principal, ok := h.CurrentPrincipal(c)
	if !ok {
		return writeServiceError(c, booking.ErrLoginRequired)
	}

	clientID := principal.UserID
	if principal.IsAdmin {
		clientID = c.QueryParam("client_id")
	}

	logs := h.progress.ListFor(c.Request().Context(), clientID)
	if logs == nil {
		logs = []portal.ProjectLog{}
	}
	return c.JSON(http.StatusOK, logs)
}
