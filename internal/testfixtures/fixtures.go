// Package testfixtures provides deterministic clocks, id generators,
// and entity fixtures for portal tests.
package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Karasal/Call-Sal-sub000/internal/portal"
)

var (
	clientCounter  uint64
	bookingCounter uint64
	logCounter     uint64
	invoiceCounter uint64
)

var referenceTime = time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ClientOption configures a generated client fixture.
type ClientOption func(*portal.User)

// NewClient returns a deterministic registered client account.
func NewClient(opts ...ClientOption) portal.User {
	idx := atomic.AddUint64(&clientCounter, 1)
	user := portal.User{
		ID:           fmt.Sprintf("client-%03d", idx),
		Email:        fmt.Sprintf("client-%03d@example.com", idx),
		Password:     fmt.Sprintf("secret-%03d", idx),
		Name:         fmt.Sprintf("Client %03d", idx),
		Role:         portal.RoleClient,
		IsRegistered: true,
	}
	for _, opt := range opts {
		opt(&user)
	}
	return user
}

// WithID overrides the generated client id.
func WithID(id string) ClientOption {
	return func(u *portal.User) { u.ID = id }
}

// WithEmail overrides the generated email.
func WithEmail(email string) ClientOption {
	return func(u *portal.User) { u.Email = email }
}

// AsPlaceholder puts the client back into pre-registration state with
// the given key.
func AsPlaceholder(key string) ClientOption {
	return func(u *portal.User) {
		u.Email = ""
		u.Password = ""
		u.IsRegistered = false
		u.RegistrationKey = key
	}
}

// BookingOption configures a generated booking fixture.
type BookingOption func(*portal.Booking)

// NewBooking returns a deterministic confirmed zoom booking.
func NewBooking(opts ...BookingOption) portal.Booking {
	idx := atomic.AddUint64(&bookingCounter, 1)
	booking := portal.Booking{
		ID:       fmt.Sprintf("booking-%03d", idx),
		UserID:   fmt.Sprintf("client-%03d", idx),
		UserName: fmt.Sprintf("Client %03d", idx),
		Date:     "2025-06-10",
		Time:     "10:00",
		Type:     portal.MeetingZoom,
		Duration: portal.DurationFor(portal.MeetingZoom),
		Status:   portal.BookingConfirmed,
	}
	for _, opt := range opts {
		opt(&booking)
	}
	return booking
}

// At overrides the booking's date and start time.
func At(date, timeOfDay string) BookingOption {
	return func(b *portal.Booking) {
		b.Date = date
		b.Time = timeOfDay
	}
}

// OfType overrides the meeting type and re-derives the duration.
func OfType(t portal.MeetingType) BookingOption {
	return func(b *portal.Booking) {
		b.Type = t
		b.Duration = portal.DurationFor(t)
	}
}

// NewProjectLog returns a deterministic progress entry.
func NewProjectLog(clientID string) portal.ProjectLog {
	idx := atomic.AddUint64(&logCounter, 1)
	return portal.ProjectLog{
		ID:       fmt.Sprintf("log-%03d", idx),
		ClientID: clientID,
		Date:     "Jun 1, 2025",
		Title:    fmt.Sprintf("Milestone %03d", idx),
		Update:   "Workflow automation in progress.",
		Progress: 50,
	}
}

// NewInvoice returns a deterministic pending invoice.
func NewInvoice(clientID string) portal.Invoice {
	idx := atomic.AddUint64(&invoiceCounter, 1)
	return portal.Invoice{
		ID:          fmt.Sprintf("invoice-%03d", idx),
		ClientID:    clientID,
		Amount:      float64(100 * idx),
		Description: fmt.Sprintf("Consulting sprint %03d", idx),
		Status:      portal.InvoicePending,
		Date:        "2025-06-01",
	}
}
