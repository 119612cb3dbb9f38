// Package booking generates the offerable date/time lattice and decides
// slot availability against existing bookings.
package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Karasal/Call-Sal-sub000/internal/portal"
)

const (
	// DateLayout is the calendar-day form bookings are stored with.
	DateLayout = "2006-01-02"

	leadTimeDays = 2
	horizonDays  = 14

	openingMinute = 9 * 60  // 09:00
	closingMinute = 18 * 60 // 18:00, the final offered start
	slotStep      = 30
)

// CandidateDates returns the bookable horizon: fourteen consecutive
// calendar days starting two days after the reference time, ascending.
func CandidateDates(now time.Time) []string {
	dates := make([]string, 0, horizonDays)
	start := now.AddDate(0, 0, leadTimeDays)
	for i := 0; i < horizonDays; i++ {
		dates = append(dates, start.AddDate(0, 0, i).Format(DateLayout))
	}
	return dates
}

// CandidateTimes returns the fixed business-hours grid: half-hour
// starts from 09:00 through 17:30, plus the closing 18:00 slot.
func CandidateTimes() []string {
	times := make([]string, 0, (closingMinute-openingMinute)/slotStep+1)
	for minute := openingMinute; minute <= closingMinute; minute += slotStep {
		times = append(times, fmt.Sprintf("%02d:%02d", minute/60, minute%60))
	}
	return times
}

// SlotBlocked reports whether a candidate slot of the given meeting
// type collides with any existing booking on the same date. Intervals
// are half-open; a candidate that starts exactly where a booking ends
// (or vice versa) is free, so back-to-back meetings are allowed.
func SlotBlocked(date, timeOfDay string, meetingType portal.MeetingType, existing []portal.Booking) bool {
	candidateStart, err := minuteOfDay(timeOfDay)
	if err != nil {
		return false
	}
	candidateEnd := candidateStart + portal.DurationFor(meetingType)

	for _, booking := range existing {
		if booking.Date != date {
			continue
		}
		bookingStart, err := minuteOfDay(booking.Time)
		if err != nil {
			continue
		}
		bookingEnd := bookingStart + booking.Duration
		if candidateStart < bookingEnd && candidateEnd > bookingStart {
			return true
		}
	}
	return false
}

// minuteOfDay parses a 24h HH:MM value into minutes since midnight.
func minuteOfDay(value string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(value), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", value)
	}
	return hour*60 + minute, nil
}
