package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Karasal/Call-Sal-sub000/internal/portal"
)

type createClientRequest struct {
	Name      string `json:"name"`
	Business  string `json:"business"`
	Phone     string `json:"phone"`
	Website   string `json:"website"`
	AvatarURL string `json:"avatarUrl"`
}

type createClientResponse struct {
	Client          userView `json:"client"`
	RegistrationKey string   `json:"registrationKey"`
}

// CreateClient issues a placeholder client account and returns the
// registration key for out-of-band delivery. Admin only.
func (h *Handlers) CreateClient(c echo.Context) error {
	principal, _ := h.CurrentPrincipal(c)

	var req createClientRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}

	user, key, err := h.accounts.IssueClientKey(c.Request().Context(), principal, portal.ClientProfile{
		Name:      req.Name,
		Business:  req.Business,
		Phone:     req.Phone,
		Website:   req.Website,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, createClientResponse{Client: toUserView(user), RegistrationKey: key})
}

// ListClients returns all client accounts. Admin only.
func (h *Handlers) ListClients(c echo.Context) error {
	principal, _ := h.CurrentPrincipal(c)

	clients, err := h.accounts.Clients(c.Request().Context(), principal)
	if err != nil {
		return writeServiceError(c, err)
	}

	views := make([]userView, 0, len(clients))
	for _, client := range clients {
		views = append(views, toUserView(client))
	}
	return c.JSON(http.StatusOK, views)
}

// DeleteClient removes a client account. Admin only.
func (h *Handlers) DeleteClient(c echo.Context) error {
	principal, _ := h.CurrentPrincipal(c)

	if err := h.accounts.DeleteClient(c.Request().Context(), principal, c.Param("id")); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
