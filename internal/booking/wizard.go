package booking

import (
	"context"
	"errors"

	"github.com/Karasal/Call-Sal-sub000/internal/portal"
)

// Step identifies the wizard's position in the linear booking flow.
type Step int

const (
	StepDate Step = iota
	StepMeetingType
	StepTime
	StepConfirmation
)

var (
	// ErrStepIncomplete is returned when a forward transition is
	// attempted before the current step's field is set.
	ErrStepIncomplete = errors.New("booking: step incomplete")
	// ErrWizardDone is returned when a completed wizard instance is
	// reused; restart instead.
	ErrWizardDone = errors.New("booking: wizard already confirmed")
)

// Wizard walks a client through date, meeting type, and time selection
// before confirmation. Back transitions are always legal and keep
// previously entered values; confirmation is terminal for the instance.
type Wizard struct {
	scheduler *Scheduler

	step        Step
	date        string
	meetingType portal.MeetingType
	timeOfDay   string
	done        bool
}

// NewWizard starts a fresh booking flow at date selection.
func NewWizard(scheduler *Scheduler) *Wizard {
	return &Wizard{scheduler: scheduler, step: StepDate}
}

// Step reports the wizard's current position.
func (w *Wizard) Step() Step { return w.step }

// Selection returns the fields entered so far.
func (w *Wizard) Selection() (date string, meetingType portal.MeetingType, timeOfDay string) {
	return w.date, w.meetingType, w.timeOfDay
}

// SelectDate records the calendar day and advances to meeting-type
// selection.
func (w *Wizard) SelectDate(date string) error {
	if w.done {
		return ErrWizardDone
	}
	if date == "" {
		return ErrStepIncomplete
	}
	w.date = date
	w.step = StepMeetingType
	return nil
}

// SelectMeetingType records how the meeting is held and advances to
// time selection. A date must already be chosen.
func (w *Wizard) SelectMeetingType(meetingType portal.MeetingType) error {
	if w.done {
		return ErrWizardDone
	}
	if w.date == "" {
		return ErrStepIncomplete
	}
	if meetingType == "" {
		return ErrStepIncomplete
	}
	w.meetingType = meetingType
	w.step = StepTime
	return nil
}

// SelectTime records the slot start and advances to confirmation. Date
// and meeting type must already be chosen.
func (w *Wizard) SelectTime(timeOfDay string) error {
	if w.done {
		return ErrWizardDone
	}
	if w.date == "" || w.meetingType == "" {
		return ErrStepIncomplete
	}
	if timeOfDay == "" {
		return ErrStepIncomplete
	}
	w.timeOfDay = timeOfDay
	w.step = StepConfirmation
	return nil
}

// Back re-opens the previous step for editing without losing any
// previously entered value.
func (w *Wizard) Back() {
	if w.done || w.step == StepDate {
		return
	}
	w.step--
}

// Confirm submits the completed selection through the scheduler. On
// success the wizard is terminal; use Restart for another booking.
func (w *Wizard) Confirm(ctx context.Context) (portal.Booking, error) {
	if w.done {
		return portal.Booking{}, ErrWizardDone
	}
	if w.step != StepConfirmation || w.timeOfDay == "" {
		return portal.Booking{}, ErrStepIncomplete
	}

	booking, err := w.scheduler.Confirm(ctx, w.date, w.timeOfDay, w.meetingType)
	if err != nil {
		return portal.Booking{}, err
	}
	w.done = true
	return booking, nil
}

// Restart returns a fresh wizard instance with all fields cleared.
func (w *Wizard) Restart() *Wizard {
	return NewWizard(w.scheduler)
}
