package quote

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"glowbook/models"
)

// Slot is the half-open interval [Start, End) a service occupies on the master's calendar.
type Slot struct {
	Start time.Time
	End   time.Time
}

// StartMinute is the slot start as minutes from midnight.
func (s Slot) StartMinute() int {
	return minuteOfDay(s.Start)
}

// EndMinute is the slot end as minutes from midnight.
func (s Slot) EndMinute() int {
	return minuteOfDay(s.End)
}

// StartDay and EndDay are the calendar days the slot touches, formatted "2006-01-02".
func (s Slot) StartDay() string { return s.Start.Format(dayLayout) }
func (s Slot) EndDay() string   { return s.End.Format(dayLayout) }

const dayLayout = "2006-01-02"

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// ParseQuoteDate accepts "2006-01-02 15:04", "2006-01-02 15:04:05", "2006-01-02T15:04" or RFC3339.
// Layouts without a zone are read in loc.
func ParseQuoteDate(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range []string{models.QuoteDateLayout, "2006-01-02 15:04:05", "2006-01-02T15:04"} {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", raw)
}

// ParseClock converts "HH:MM" into minutes from midnight. "24:00" is accepted as end of day.
func ParseClock(raw string) (int, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock %q", raw)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", raw, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", raw, err)
	}
	if h < 0 || m < 0 || m > 59 || h > 24 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("clock out of range %q", raw)
	}
	return h*60 + m, nil
}

// ValidateSchedule rejects a start in the past and an end before the start.
func ValidateSchedule(start, end, now time.Time) error {
	if start.Before(now) {
		return newScheduleError("start date is in the past", nil)
	}
	if end.Before(start) {
		return newScheduleError("end date precedes start date", nil)
	}
	return nil
}

// NextSlot schedules a service of the given length right after cursor.
func NextSlot(cursor time.Time, minutes int) Slot {
	return Slot{Start: cursor, End: cursor.Add(time.Duration(minutes) * time.Minute)}
}

// ChainSlots lays out services back to back from start. durations are interval+pause in minutes.
func ChainSlots(start time.Time, durations []int) []Slot {
	slots := make([]Slot, 0, len(durations))
	cursor := start
	for _, minutes := range durations {
		slot := NextSlot(cursor, minutes)
		slots = append(slots, slot)
		cursor = slot.End
	}
	return slots
}
