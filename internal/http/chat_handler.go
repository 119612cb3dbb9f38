package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Chat forwards a visitor message to the assistant. Failures inside the
// chat service surface only as the friendly fallback text.
func (h *Handlers) Chat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}
	if strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "message is required."})
	}

	reply, fellBack := h.chat.Reply(c.Request().Context(), req.Message)
	if fellBack {
		chatFallbacksTotal.Inc()
	}
	return c.JSON(http.StatusOK, chatResponse{Reply: reply})
}
