package testfixtures

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Karasal/Call-Sal-sub000/internal/localstore"
	"github.com/Karasal/Call-Sal-sub000/internal/portal"
)

// Storage keys mirrored from the portal store's layout.
const (
	UsersKey    = "callsal_users"
	BookingsKey = "callsal_bookings"
	LogsKey     = "callsal_project_logs"
	InvoicesKey = "callsal_invoices"
	SessionKey  = "callsal_session"
)

// SeedOption writes one collection into a memory store.
type SeedOption func(testing.TB, *localstore.Memory)

// NewSeededStore builds an in-memory item store pre-populated with the
// requested collections.
func NewSeededStore(tb testing.TB, opts ...SeedOption) *localstore.Memory {
	tb.Helper()
	store := localstore.NewMemory()
	for _, opt := range opts {
		opt(tb, store)
	}
	return store
}

// WithUsers seeds the users collection.
func WithUsers(users ...portal.User) SeedOption {
	return seedJSON(UsersKey, &users)
}

// WithBookings seeds the bookings collection.
func WithBookings(bookings ...portal.Booking) SeedOption {
	return seedJSON(BookingsKey, &bookings)
}

// WithLogs seeds the project logs collection.
func WithLogs(logs ...portal.ProjectLog) SeedOption {
	return seedJSON(LogsKey, &logs)
}

// WithInvoices seeds the invoices collection.
func WithInvoices(invoices ...portal.Invoice) SeedOption {
	return seedJSON(InvoicesKey, &invoices)
}

// WithSession seeds the current-session slot.
func WithSession(user portal.User) SeedOption {
	return seedJSON(SessionKey, &user)
}

// WithRawItem seeds an arbitrary raw value, e.g. malformed JSON.
func WithRawItem(key, value string) SeedOption {
	return func(tb testing.TB, store *localstore.Memory) {
		tb.Helper()
		if err := store.SetItem(context.Background(), key, value); err != nil {
			tb.Fatalf("failed to seed %q: %v", key, err)
		}
	}
}

func seedJSON(key string, value any) SeedOption {
	return func(tb testing.TB, store *localstore.Memory) {
		tb.Helper()
		data, err := json.Marshal(value)
		if err != nil {
			tb.Fatalf("failed to serialize seed for %q: %v", key, err)
		}
		if err := store.SetItem(context.Background(), key, string(data)); err != nil {
			tb.Fatalf("failed to seed %q: %v", key, err)
		}
	}
}
