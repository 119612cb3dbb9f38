// Package portal is the persistence layer behind the client and admin
// portal. It stores four typed collections plus a single current-session
// slot in a localstore, each collection serialized wholesale as JSON
// under a fixed key, the way the site keeps them in a browser profile.
//
// Every operation follows the never-throw contract: reads degrade to a
// per-collection default when storage is absent or holds malformed
// data, and writes degrade to logged no-ops. Callers must not assume a
// write was durably applied.
package portal

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// Storage keys, one per logical collection plus the session slot.
const (
	usersKey    = "callsal_users"
	bookingsKey = "callsal_bookings"
	logsKey     = "callsal_project_logs"
	invoicesKey = "callsal_invoices"
	sessionKey  = "callsal_session"
)

// DefaultAdminID is the fixed identity of the seeded administrator.
const DefaultAdminID = "admin-001"

// DefaultAdmin returns the administrator account present whenever the
// users collection has never been written (or cannot be parsed).
func DefaultAdmin() User {
	return User{
		ID:           DefaultAdminID,
		Email:        "admin@callsal.ai",
		Password:     "admin123",
		Name:         "Sal",
		Role:         RoleAdmin,
		IsRegistered: true,
		Verified:     true,
	}
}

// ItemStore is the slice of localstore.Store the portal needs.
type ItemStore interface {
	GetItem(ctx context.Context, key string) (string, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// readSource tags where a read's value came from, so the silent
// fallback path stays visible in logs without changing the external
// always-returns-a-value behavior.
type readSource int

const (
	sourceStored readSource = iota
	sourceDefault
)

// Store exposes the typed collections over an ItemStore.
type Store struct {
	items        ItemStore
	idGenerator  func() string
	keyGenerator func() string
	logger       *slog.Logger
}

// NewStore wires a portal store. A nil idGenerator falls back to
// time-derived ids and a nil keyGenerator to NewRegistrationKey.
func NewStore(items ItemStore, idGenerator, keyGenerator func() string, logger *slog.Logger) *Store {
	if idGenerator == nil {
		idGenerator = func() string { return time.Now().UTC().Format("20060102150405.000000000") }
	}
	if keyGenerator == nil {
		keyGenerator = NewRegistrationKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{items: items, idGenerator: idGenerator, keyGenerator: keyGenerator, logger: logger}
}

// Users returns all users. Empty or unreadable storage yields exactly
// the default administrator.
func (s *Store) Users(ctx context.Context) []User {
	users, _ := s.readUsers(ctx)
	return users
}

func (s *Store) readUsers(ctx context.Context) ([]User, readSource) {
	var users []User
	source := s.readCollection(ctx, usersKey, &users)
	if source == sourceDefault || len(users) == 0 {
		return []User{DefaultAdmin()}, sourceDefault
	}
	return users, sourceStored
}

// CreateClientPlaceholder appends a client account in placeholder state
// and returns the registration key to hand to the client out-of-band.
func (s *Store) CreateClientPlaceholder(ctx context.Context, profile ClientProfile) (User, string) {
	key := s.keyGenerator()
	user := User{
		ID:              s.idGenerator(),
		Name:            profile.Name,
		Role:            RoleClient,
		Business:        profile.Business,
		Phone:           profile.Phone,
		Website:         profile.Website,
		AvatarURL:       profile.AvatarURL,
		RegistrationKey: key,
		IsRegistered:    false,
	}

	users, _ := s.readUsers(ctx)
	users = append(users, user)
	s.writeCollection(ctx, usersKey, users)

	s.log(ctx, "CreateClientPlaceholder").InfoContext(ctx, "client placeholder created", "user_id", user.ID)
	return user, key
}

// FinalizeRegistration activates the placeholder whose registration key
// matches. The reported boolean is false when no user carries the key;
// nothing is mutated in that case. A key that was already consumed
// still matches and re-finalizes the account, overwriting the prior
// email and password.
func (s *Store) FinalizeRegistration(ctx context.Context, key, email, password string) (User, bool) {
	normalized := NormalizeRegistrationKey(key)

	users, _ := s.readUsers(ctx)
	for i := range users {
		if users[i].RegistrationKey == "" || users[i].RegistrationKey != normalized {
			continue
		}
		users[i].Email = email
		users[i].Password = password
		users[i].IsRegistered = true
		s.writeCollection(ctx, usersKey, users)

		s.log(ctx, "FinalizeRegistration").InfoContext(ctx, "registration finalized", "user_id", users[i].ID)
		return users[i], true
	}

	return User{}, false
}

// DeleteUser removes the user with the given id. Unknown ids are a
// silent no-op.
func (s *Store) DeleteUser(ctx context.Context, id string) {
	users, _ := s.readUsers(ctx)
	kept := make([]User, 0, len(users))
	removed := false
	for _, user := range users {
		if user.ID == id {
			removed = true
			continue
		}
		kept = append(kept, user)
	}
	if !removed {
		return
	}
	s.writeCollection(ctx, usersKey, kept)
}

// CurrentUser returns the session slot's user, if a session exists.
func (s *Store) CurrentUser(ctx context.Context) (User, bool) {
	raw, err := s.items.GetItem(ctx, sessionKey)
	if err != nil {
		return User{}, false
	}
	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.log(ctx, "CurrentUser").WarnContext(ctx, "malformed session discarded", "error", err)
		return User{}, false
	}
	if user.ID == "" {
		return User{}, false
	}
	return user, true
}

// SetCurrentUser stores the user as the active session.
func (s *Store) SetCurrentUser(ctx context.Context, user User) {
	data, err := json.Marshal(user)
	if err != nil {
		s.log(ctx, "SetCurrentUser").ErrorContext(ctx, "failed to serialize session", "error", err)
		return
	}
	if err := s.items.SetItem(ctx, sessionKey, string(data)); err != nil {
		s.log(ctx, "SetCurrentUser").ErrorContext(ctx, "failed to persist session", "error", err)
	}
}

// ClearCurrentUser removes the session slot.
func (s *Store) ClearCurrentUser(ctx context.Context) {
	if err := s.items.RemoveItem(ctx, sessionKey); err != nil {
		s.log(ctx, "ClearCurrentUser").ErrorContext(ctx, "failed to clear session", "error", err)
	}
}

// Bookings returns all bookings; empty storage yields an empty list.
func (s *Store) Bookings(ctx context.Context) []Booking {
	var bookings []Booking
	s.readCollection(ctx, bookingsKey, &bookings)
	return bookings
}

// AddBooking appends a booking. No overlap validation happens here:
// availability is gated at selection time by the booking engine, so a
// caller bypassing the engine can store overlapping bookings. Known
// weak invariant, kept as observed.
func (s *Store) AddBooking(ctx context.Context, booking Booking) {
	bookings := s.Bookings(ctx)
	bookings = append(bookings, booking)
	s.writeCollection(ctx, bookingsKey, bookings)
}

// Logs returns project logs, optionally narrowed to one client.
func (s *Store) Logs(ctx context.Context, clientID string) []ProjectLog {
	var logs []ProjectLog
	s.readCollection(ctx, logsKey, &logs)
	if clientID == "" {
		return logs
	}
	filtered := make([]ProjectLog, 0, len(logs))
	for _, entry := range logs {
		if entry.ClientID == clientID {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// AddLog appends a project log entry.
func (s *Store) AddLog(ctx context.Context, entry ProjectLog) {
	logs := s.Logs(ctx, "")
	logs = append(logs, entry)
	s.writeCollection(ctx, logsKey, logs)
}

// Invoices returns invoices, optionally narrowed to one client.
func (s *Store) Invoices(ctx context.Context, clientID string) []Invoice {
	var invoices []Invoice
	s.readCollection(ctx, invoicesKey, &invoices)
	if clientID == "" {
		return invoices
	}
	filtered := make([]Invoice, 0, len(invoices))
	for _, invoice := range invoices {
		if invoice.ClientID == clientID {
			filtered = append(filtered, invoice)
		}
	}
	return filtered
}

// AddInvoice appends an invoice.
func (s *Store) AddInvoice(ctx context.Context, invoice Invoice) {
	invoices := s.Invoices(ctx, "")
	invoices = append(invoices, invoice)
	s.writeCollection(ctx, invoicesKey, invoices)
}

// MarkInvoicePaid flips the named invoice to paid. Unknown ids leave
// the collection untouched.
func (s *Store) MarkInvoicePaid(ctx context.Context, id string) {
	invoices := s.Invoices(ctx, "")
	for i := range invoices {
		if invoices[i].ID != id {
			continue
		}
		invoices[i].Status = InvoicePaid
		s.writeCollection(ctx, invoicesKey, invoices)
		return
	}
}

// readCollection unmarshals the named collection into out, reporting
// whether stored data was used or the caller should fall back.
func (s *Store) readCollection(ctx context.Context, key string, out any) readSource {
	raw, err := s.items.GetItem(ctx, key)
	if err != nil {
		return sourceDefault
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.log(ctx, "readCollection").WarnContext(ctx, "malformed collection discarded", "key", key, "error", err)
		return sourceDefault
	}
	return sourceStored
}

// writeCollection re-serializes and overwrites the whole collection.
// Failures are logged and swallowed: the write becomes a no-op.
func (s *Store) writeCollection(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		s.log(ctx, "writeCollection").ErrorContext(ctx, "failed to serialize collection", "key", key, "error", err)
		return
	}
	if err := s.items.SetItem(ctx, key, string(data)); err != nil {
		s.log(ctx, "writeCollection").ErrorContext(ctx, "failed to persist collection", "key", key, "error", err)
	}
}

func (s *Store) log(ctx context.Context, operation string) *slog.Logger {
	return s.logger.With("service", "PortalStore", "operation", operation)
}
