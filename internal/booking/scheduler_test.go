package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Karasal/Call-Sal-sub000/internal/portal"
)

// stubStore is a hand-rolled BookingStore for scheduler tests.
type stubStore struct {
	user     portal.User
	loggedIn bool
	bookings []portal.Booking
}

func (s *stubStore) CurrentUser(context.Context) (portal.User, bool) {
	return s.user, s.loggedIn
}

func (s *stubStore) Bookings(context.Context) []portal.Booking {
	return s.bookings
}

func (s *stubStore) AddBooking(_ context.Context, booking portal.Booking) {
	s.bookings = append(s.bookings, booking)
}

func fixedNow() time.Time {
	return time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)
}

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return prefix + "-" + string(rune('0'+n))
	}
}

func TestScheduler_Slots(t *testing.T) {
	t.Parallel()

	store := &stubStore{bookings: []portal.Booking{
		{Date: "2025-06-10", Time: "09:30", Type: portal.MeetingInPerson, Duration: 120},
	}}
	scheduler := NewScheduler(store, nil, fixedNow, nil)

	slots := scheduler.Slots(context.Background(), "2025-06-10", portal.MeetingZoom)
	if len(slots) != 19 {
		t.Fatalf("expected 19 slots, got %d", len(slots))
	}

	blocked := map[string]bool{}
	for _, slot := range slots {
		blocked[slot.Time] = slot.Blocked
	}
	if !blocked["10:00"] {
		t.Fatal("expected 10:00 to be blocked inside the in-person window")
	}
	if blocked["09:00"] {
		t.Fatal("expected 09:00 to be free: it ends exactly when the booking starts")
	}
	if blocked["11:30"] {
		t.Fatal("expected 11:30 to be free: it starts exactly when the booking ends")
	}
}

func TestScheduler_Confirm(t *testing.T) {
	t.Parallel()

	t.Run("without a session nothing is stored", func(t *testing.T) {
		t.Parallel()

		store := &stubStore{}
		scheduler := NewScheduler(store, sequentialIDs("bk"), fixedNow, nil)

		_, err := scheduler.Confirm(context.Background(), "2025-06-10", "10:00", portal.MeetingZoom)
		if !errors.Is(err, ErrLoginRequired) {
			t.Fatalf("expected ErrLoginRequired, got %v", err)
		}
		if len(store.bookings) != 0 {
			t.Fatalf("expected no booking stored, got %d", len(store.bookings))
		}
	})

	t.Run("off-grid date is rejected", func(t *testing.T) {
		t.Parallel()

		store := &stubStore{user: portal.DefaultAdmin(), loggedIn: true}
		scheduler := NewScheduler(store, sequentialIDs("bk"), fixedNow, nil)

		// 2025-06-02 is inside the two-day lead time.
		_, err := scheduler.Confirm(context.Background(), "2025-06-02", "10:00", portal.MeetingZoom)
		if !errors.Is(err, ErrInvalidSlot) {
			t.Fatalf("expected ErrInvalidSlot, got %v", err)
		}
	})

	t.Run("off-grid time is rejected", func(t *testing.T) {
		t.Parallel()

		store := &stubStore{user: portal.DefaultAdmin(), loggedIn: true}
		scheduler := NewScheduler(store, sequentialIDs("bk"), fixedNow, nil)

		_, err := scheduler.Confirm(context.Background(), "2025-06-10", "10:15", portal.MeetingZoom)
		if !errors.Is(err, ErrInvalidSlot) {
			t.Fatalf("expected ErrInvalidSlot, got %v", err)
		}
	})

	t.Run("colliding slot is rejected", func(t *testing.T) {
		t.Parallel()

		store := &stubStore{
			user:     portal.DefaultAdmin(),
			loggedIn: true,
			bookings: []portal.Booking{
				{Date: "2025-06-10", Time: "09:30", Type: portal.MeetingInPerson, Duration: 120},
			},
		}
		scheduler := NewScheduler(store, sequentialIDs("bk"), fixedNow, nil)

		_, err := scheduler.Confirm(context.Background(), "2025-06-10", "10:00", portal.MeetingZoom)
		if !errors.Is(err, ErrSlotUnavailable) {
			t.Fatalf("expected ErrSlotUnavailable, got %v", err)
		}
		if len(store.bookings) != 1 {
			t.Fatalf("expected the existing booking only, got %d", len(store.bookings))
		}
	})

	t.Run("free slot yields a stored confirmed booking", func(t *testing.T) {
		t.Parallel()

		user := portal.User{ID: "client-001", Name: "Dana", Role: portal.RoleClient, IsRegistered: true}
		store := &stubStore{user: user, loggedIn: true}
		scheduler := NewScheduler(store, sequentialIDs("bk"), fixedNow, nil)

		booking, err := scheduler.Confirm(context.Background(), "2025-06-10", "14:30", portal.MeetingInPerson)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if booking.UserID != "client-001" || booking.UserName != "Dana" {
			t.Fatalf("booking not attributed to the session user: %#v", booking)
		}
		if booking.Duration != 120 {
			t.Fatalf("expected in-person duration 120, got %d", booking.Duration)
		}
		if booking.Status != portal.BookingConfirmed {
			t.Fatalf("expected confirmed status, got %q", booking.Status)
		}
		if len(store.bookings) != 1 || store.bookings[0].ID != booking.ID {
			t.Fatalf("booking not stored: %#v", store.bookings)
		}
	})
}
