package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/Karasal/Call-Sal-sub000/internal/portal"
)

func newTestWizard(store *stubStore) *Wizard {
	return NewWizard(NewScheduler(store, sequentialIDs("bk"), fixedNow, nil))
}

func TestWizard_ForwardGating(t *testing.T) {
	t.Parallel()

	t.Run("meeting type requires a date", func(t *testing.T) {
		t.Parallel()

		w := newTestWizard(&stubStore{})
		if err := w.SelectMeetingType(portal.MeetingZoom); !errors.Is(err, ErrStepIncomplete) {
			t.Fatalf("expected ErrStepIncomplete, got %v", err)
		}
	})

	t.Run("time requires date and meeting type", func(t *testing.T) {
		t.Parallel()

		w := newTestWizard(&stubStore{})
		if err := w.SelectDate("2025-06-10"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := w.SelectTime("10:00"); !errors.Is(err, ErrStepIncomplete) {
			t.Fatalf("expected ErrStepIncomplete, got %v", err)
		}
	})

	t.Run("confirm requires a completed selection", func(t *testing.T) {
		t.Parallel()

		w := newTestWizard(&stubStore{user: portal.DefaultAdmin(), loggedIn: true})
		if _, err := w.Confirm(context.Background()); !errors.Is(err, ErrStepIncomplete) {
			t.Fatalf("expected ErrStepIncomplete, got %v", err)
		}
	})

	t.Run("empty values never advance", func(t *testing.T) {
		t.Parallel()

		w := newTestWizard(&stubStore{})
		if err := w.SelectDate(""); !errors.Is(err, ErrStepIncomplete) {
			t.Fatalf("expected ErrStepIncomplete for empty date, got %v", err)
		}
		if got := w.Step(); got != StepDate {
			t.Fatalf("expected to remain at date selection, got step %d", got)
		}
	})
}

func TestWizard_BackKeepsSelections(t *testing.T) {
	t.Parallel()

	w := newTestWizard(&stubStore{})
	if err := w.SelectDate("2025-06-10"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.SelectMeetingType(portal.MeetingPhone); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.SelectTime("10:00"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w.Back()
	if got := w.Step(); got != StepTime {
		t.Fatalf("expected time step after back, got %d", got)
	}
	date, meetingType, timeOfDay := w.Selection()
	if date != "2025-06-10" || meetingType != portal.MeetingPhone || timeOfDay != "10:00" {
		t.Fatalf("back lost selections: %q %q %q", date, meetingType, timeOfDay)
	}

	// Back from the first step is a no-op.
	w.Back()
	w.Back()
	w.Back()
	if got := w.Step(); got != StepDate {
		t.Fatalf("expected date step, got %d", got)
	}
}

func TestWizard_Confirm(t *testing.T) {
	t.Parallel()

	t.Run("completed flow stores a booking and becomes terminal", func(t *testing.T) {
		t.Parallel()

		store := &stubStore{user: portal.DefaultAdmin(), loggedIn: true}
		w := newTestWizard(store)
		ctx := context.Background()

		if err := w.SelectDate("2025-06-10"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := w.SelectMeetingType(portal.MeetingZoom); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := w.SelectTime("10:00"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		booking, err := w.Confirm(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if booking.Date != "2025-06-10" || booking.Time != "10:00" {
			t.Fatalf("unexpected booking %#v", booking)
		}

		if _, err := w.Confirm(ctx); !errors.Is(err, ErrWizardDone) {
			t.Fatalf("expected ErrWizardDone on reuse, got %v", err)
		}
		if err := w.SelectDate("2025-06-11"); !errors.Is(err, ErrWizardDone) {
			t.Fatalf("expected ErrWizardDone on edit after confirm, got %v", err)
		}
	})

	t.Run("login failure leaves the wizard reusable", func(t *testing.T) {
		t.Parallel()

		w := newTestWizard(&stubStore{})
		ctx := context.Background()

		if err := w.SelectDate("2025-06-10"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := w.SelectMeetingType(portal.MeetingZoom); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := w.SelectTime("10:00"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := w.Confirm(ctx); !errors.Is(err, ErrLoginRequired) {
			t.Fatalf("expected ErrLoginRequired, got %v", err)
		}

		// The selection survives so the client can log in and retry.
		date, meetingType, timeOfDay := w.Selection()
		if date != "2025-06-10" || meetingType != portal.MeetingZoom || timeOfDay != "10:00" {
			t.Fatalf("selection lost after failed confirm: %q %q %q", date, meetingType, timeOfDay)
		}
	})

	t.Run("restart yields a cleared flow", func(t *testing.T) {
		t.Parallel()

		store := &stubStore{user: portal.DefaultAdmin(), loggedIn: true}
		w := newTestWizard(store)
		ctx := context.Background()

		if err := w.SelectDate("2025-06-10"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := w.SelectMeetingType(portal.MeetingZoom); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := w.SelectTime("10:00"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := w.Confirm(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		fresh := w.Restart()
		if got := fresh.Step(); got != StepDate {
			t.Fatalf("expected fresh wizard at date step, got %d", got)
		}
		date, meetingType, timeOfDay := fresh.Selection()
		if date != "" || meetingType != "" || timeOfDay != "" {
			t.Fatalf("restart carried selections over: %q %q %q", date, meetingType, timeOfDay)
		}
	})
}
