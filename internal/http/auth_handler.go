package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Karasal/Call-Sal-sub000/internal/application"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Key      string `json:"key"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates and opens the session slot.
func (h *Handlers) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}

	user, err := h.accounts.Login(c.Request().Context(), application.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toUserView(user))
}

// Logout clears the session slot.
func (h *Handlers) Logout(c echo.Context) error {
	h.accounts.Logout(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

// Session reports the current session's user, if any.
func (h *Handlers) Session(c echo.Context) error {
	user, ok := h.accounts.Current(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusNotFound, errorResponse{Message: "No active session."})
	}
	return c.JSON(http.StatusOK, toUserView(user))
}

// Register finalizes a placeholder account through its registration key.
func (h *Handlers) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}

	user, err := h.accounts.Register(c.Request().Context(), application.RegisterParams{
		Key:      req.Key,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toUserView(user))
}
