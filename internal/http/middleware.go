package http

import (
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Karasal/Call-Sal-sub000/internal/application"
	"github.com/Karasal/Call-Sal-sub000/internal/logging"
)

// RequestLogger attaches a per-request slog logger to the context and
// records request start/completion.
func RequestLogger(base *slog.Logger) echo.MiddlewareFunc {
	if base == nil {
		base = slog.Default()
	}
	var counter atomic.Uint64

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := counter.Add(1)
			logger := base.With(
				"request_id", id,
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
			)

			ctx := logging.ContextWithLogger(c.Request().Context(), logger)
			c.SetRequest(c.Request().WithContext(ctx))

			start := time.Now()
			logger.InfoContext(ctx, "request started")
			err := next(c)
			logger.InfoContext(ctx, "request completed", "duration", time.Since(start))
			return err
		}
	}
}

// SessionResolver exposes the current-session lookup the middleware
// needs.
type SessionResolver interface {
	CurrentPrincipal(c echo.Context) (application.Principal, bool)
}

// RequireAdmin rejects requests whose session is missing or does not
// belong to the administrator.
func RequireAdmin(resolver SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := resolver.CurrentPrincipal(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorResponse{
					ErrorCode: "AUTH_LOGIN_REQUIRED",
					Message:   "Please log in first.",
				})
			}
			if !principal.IsAdmin {
				return c.JSON(http.StatusForbidden, errorResponse{
					ErrorCode: "AUTH_FORBIDDEN",
					Message:   "You do not have permission to perform this action.",
				})
			}
			return next(c)
		}
	}
}
