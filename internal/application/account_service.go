package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/Karasal/Call-Sal-sub000/internal/portal"
)

// AccountStore captures the portal persistence operations the account
// service coordinates.
type AccountStore interface {
	Users(ctx context.Context) []portal.User
	CreateClientPlaceholder(ctx context.Context, profile portal.ClientProfile) (portal.User, string)
	FinalizeRegistration(ctx context.Context, key, email, password string) (portal.User, bool)
	DeleteUser(ctx context.Context, id string)
	CurrentUser(ctx context.Context) (portal.User, bool)
	SetCurrentUser(ctx context.Context, user portal.User)
	ClearCurrentUser(ctx context.Context)
}

// AccountService coordinates login, registration and client account
// administration over the portal store.
type AccountService struct {
	store          AccountStore
	verifyPassword Verifier
	logger         *slog.Logger
}

// NewAccountService wires dependencies for the account service. A nil
// verifier keeps the portal's plaintext credential contract.
func NewAccountService(store AccountStore, verify Verifier, logger *slog.Logger) *AccountService {
	if verify == nil {
		verify = PlaintextVerifier
	}
	return &AccountService{store: store, verifyPassword: verify, logger: defaultLogger(logger)}
}

func (s *AccountService) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AccountService", operation, attrs...)
}

// Login matches credentials against registered users and, on success,
// stores the user as the current session.
func (s *AccountService) Login(ctx context.Context, params LoginParams) (user portal.User, err error) {
	if s == nil || s.store == nil {
		err = fmt.Errorf("account store not configured")
		return
	}

	email := strings.TrimSpace(strings.ToLower(params.Email))
	logger := s.log(ctx, "Login", "email", email)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "login rejected", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("user_id", user.ID).InfoContext(ctx, "login succeeded")
	}()

	if email == "" || params.Password == "" {
		err = ErrInvalidCredentials
		return
	}

	for _, candidate := range s.store.Users(ctx) {
		if !candidate.IsRegistered || !strings.EqualFold(candidate.Email, email) {
			continue
		}
		if verr := s.verifyPassword(candidate.Password, params.Password); verr != nil {
			err = ErrInvalidCredentials
			return
		}
		s.store.SetCurrentUser(ctx, candidate)
		user = candidate
		return
	}

	err = ErrInvalidCredentials
	return
}

// Logout clears the session slot. Logging out with no session is a
// no-op.
func (s *AccountService) Logout(ctx context.Context) {
	if s == nil || s.store == nil {
		return
	}
	s.store.ClearCurrentUser(ctx)
	s.log(ctx, "Logout").InfoContext(ctx, "session cleared")
}

// Current returns the active session's user, if one exists.
func (s *AccountService) Current(ctx context.Context) (portal.User, bool) {
	if s == nil || s.store == nil {
		return portal.User{}, false
	}
	return s.store.CurrentUser(ctx)
}

// IssueClientKey creates a placeholder client account for an
// administrator and returns the registration key to share out-of-band.
func (s *AccountService) IssueClientKey(ctx context.Context, principal Principal, profile portal.ClientProfile) (portal.User, string, error) {
	if s == nil || s.store == nil {
		return portal.User{}, "", fmt.Errorf("account store not configured")
	}
	if !principal.IsAdmin {
		return portal.User{}, "", ErrUnauthorized
	}

	profile.Name = strings.TrimSpace(profile.Name)
	vErr := &ValidationError{}
	if profile.Name == "" {
		vErr.add("name", "name is required")
	}
	if vErr.HasErrors() {
		return portal.User{}, "", vErr
	}

	user, key := s.store.CreateClientPlaceholder(ctx, profile)
	s.log(ctx, "IssueClientKey").InfoContext(ctx, "client key issued", "user_id", user.ID)
	return user, key, nil
}

// Register finalizes a placeholder account through its registration key
// and opens a session for the activated user. An unknown key is
// rejected with ErrInvalidKey and mutates nothing.
func (s *AccountService) Register(ctx context.Context, params RegisterParams) (user portal.User, err error) {
	if s == nil || s.store == nil {
		err = fmt.Errorf("account store not configured")
		return
	}

	logger := s.log(ctx, "Register")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "registration rejected", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("user_id", user.ID).InfoContext(ctx, "registration finalized")
	}()

	email := strings.TrimSpace(strings.ToLower(params.Email))
	vErr := &ValidationError{}
	if email == "" {
		vErr.add("email", "email is required")
	} else if _, merr := mail.ParseAddress(email); merr != nil {
		vErr.add("email", "email is invalid")
	}
	if params.Password == "" {
		vErr.add("password", "password is required")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	activated, ok := s.store.FinalizeRegistration(ctx, params.Key, email, params.Password)
	if !ok {
		err = ErrInvalidKey
		return
	}

	s.store.SetCurrentUser(ctx, activated)
	user = activated
	return
}

// Clients lists client accounts for administrators.
func (s *AccountService) Clients(ctx context.Context, principal Principal) ([]portal.User, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("account store not configured")
	}
	if !principal.IsAdmin {
		return nil, ErrUnauthorized
	}

	var clients []portal.User
	for _, user := range s.store.Users(ctx) {
		if user.Role == portal.RoleClient {
			clients = append(clients, user)
		}
	}
	return clients, nil
}

// DeleteClient removes a client account for an administrator. The
// administrator account itself cannot be deleted.
func (s *AccountService) DeleteClient(ctx context.Context, principal Principal, id string) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("account store not configured")
	}
	if !principal.IsAdmin {
		return ErrUnauthorized
	}

	for _, user := range s.store.Users(ctx) {
		if user.ID != id {
			continue
		}
		if user.Role == portal.RoleAdmin {
			return ErrUnauthorized
		}
		s.store.DeleteUser(ctx, id)
		s.log(ctx, "DeleteClient").InfoContext(ctx, "client deleted", "user_id", id)
		return nil
	}
	return ErrNotFound
}
