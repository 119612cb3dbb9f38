package http

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/Karasal/Call-Sal-sub000/internal/application"
	"github.com/Karasal/Call-Sal-sub000/internal/booking"
	"github.com/Karasal/Call-Sal-sub000/internal/chat"
	"github.com/Karasal/Call-Sal-sub000/internal/portal"
)

// Handlers bundles the services behind the portal API.
type Handlers struct {
	accounts  *application.AccountService
	scheduler *booking.Scheduler
	progress  *application.ProgressService
	billing   *application.BillingService
	chat      *chat.Service
	logger    *slog.Logger
}

// NewHandlers wires the handler set.
func NewHandlers(
	accounts *application.AccountService,
	scheduler *booking.Scheduler,
	progress *application.ProgressService,
	billing *application.BillingService,
	chatService *chat.Service,
	logger *slog.Logger,
) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		accounts:  accounts,
		scheduler: scheduler,
		progress:  progress,
		billing:   billing,
		chat:      chatService,
		logger:    logger,
	}
}

// CurrentPrincipal implements SessionResolver from the store's single
// session slot.
func (h *Handlers) CurrentPrincipal(c echo.Context) (application.Principal, bool) {
	user, ok := h.accounts.Current(c.Request().Context())
	if !ok {
		return application.Principal{}, false
	}
	return application.Principal{UserID: user.ID, IsAdmin: user.Role == portal.RoleAdmin}, true
}

// userView strips credentials and the registration key from responses.
type userView struct {
	ID           string `json:"id"`
	Email        string `json:"email,omitempty"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	Business     string `json:"business,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Website      string `json:"website,omitempty"`
	AvatarURL    string `json:"avatarUrl,omitempty"`
	IsRegistered bool   `json:"isRegistered"`
	Verified     bool   `json:"verified"`
}

func toUserView(user portal.User) userView {
	return userView{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		Role:         string(user.Role),
		Business:     user.Business,
		Phone:        user.Phone,
		Website:      user.Website,
		AvatarURL:    user.AvatarURL,
		IsRegistered: user.IsRegistered,
		Verified:     user.Verified,
	}
}
