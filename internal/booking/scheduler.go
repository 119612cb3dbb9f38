package booking

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Karasal/Call-Sal-sub000/internal/portal"
)

var (
	// ErrLoginRequired is returned when confirmation is attempted with
	// no active session. Surfaced as an actionable prompt, not a
	// silent no-op.
	ErrLoginRequired = errors.New("booking: login required")
	// ErrSlotUnavailable is returned when the requested slot collides
	// with an existing booking.
	ErrSlotUnavailable = errors.New("booking: slot unavailable")
	// ErrInvalidSlot is returned when the date or time does not belong
	// to the offerable grid.
	ErrInvalidSlot = errors.New("booking: invalid slot")
)

// BookingStore captures the persistence interactions the scheduler
// needs: the current session, the bookings to avoid, and the sink for
// confirmed bookings.
type BookingStore interface {
	CurrentUser(ctx context.Context) (portal.User, bool)
	Bookings(ctx context.Context) []portal.Booking
	AddBooking(ctx context.Context, booking portal.Booking)
}

// Slot pairs a grid time with its availability for a candidate date and
// meeting type.
type Slot struct {
	Time    string `json:"time"`
	Blocked bool   `json:"blocked"`
}

// Scheduler computes availability and confirms bookings against the
// portal store.
type Scheduler struct {
	store       BookingStore
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewScheduler wires dependencies for the scheduler.
func NewScheduler(store BookingStore, idGenerator func() string, now func() time.Time, logger *slog.Logger) *Scheduler {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{store: store, idGenerator: idGenerator, now: now, logger: logger}
}

// Dates returns the offerable calendar horizon.
func (s *Scheduler) Dates() []string {
	return CandidateDates(s.now())
}

// Bookings returns the stored booking list.
func (s *Scheduler) Bookings(ctx context.Context) []portal.Booking {
	return s.store.Bookings(ctx)
}

// Slots classifies every grid time on the candidate date for the given
// meeting type.
func (s *Scheduler) Slots(ctx context.Context, date string, meetingType portal.MeetingType) []Slot {
	existing := s.store.Bookings(ctx)
	times := CandidateTimes()
	slots := make([]Slot, 0, len(times))
	for _, t := range times {
		slots = append(slots, Slot{Time: t, Blocked: SlotBlocked(date, t, meetingType, existing)})
	}
	return slots
}

// Confirm builds and stores a confirmed booking for the current user.
// The session precondition is checked before any entity is constructed;
// an absent session is a rejected operation, not a silent no-op.
func (s *Scheduler) Confirm(ctx context.Context, date, timeOfDay string, meetingType portal.MeetingType) (portal.Booking, error) {
	user, ok := s.store.CurrentUser(ctx)
	if !ok {
		return portal.Booking{}, ErrLoginRequired
	}

	if !s.onGrid(date, timeOfDay) {
		return portal.Booking{}, ErrInvalidSlot
	}

	if SlotBlocked(date, timeOfDay, meetingType, s.store.Bookings(ctx)) {
		return portal.Booking{}, ErrSlotUnavailable
	}

	booking := portal.Booking{
		ID:       s.idGenerator(),
		UserID:   user.ID,
		UserName: user.Name,
		Date:     date,
		Time:     timeOfDay,
		Type:     meetingType,
		Duration: portal.DurationFor(meetingType),
		Status:   portal.BookingConfirmed,
	}
	s.store.AddBooking(ctx, booking)

	s.logger.With("service", "Scheduler", "operation", "Confirm").
		InfoContext(ctx, "booking confirmed", "booking_id", booking.ID, "user_id", user.ID, "date", date, "time", timeOfDay)
	return booking, nil
}

func (s *Scheduler) onGrid(date, timeOfDay string) bool {
	dateOK := false
	for _, d := range s.Dates() {
		if d == date {
			dateOK = true
			break
		}
	}
	if !dateOK {
		return false
	}
	for _, t := range CandidateTimes() {
		if t == timeOfDay {
			return true
		}
	}
	return false
}
