package availability

import (
	"time"

	"sciencehub-backend/internal/models"
)

// DayStatus is the coarse availability of one calendar date.
type DayStatus string

const (
	StatusFree    DayStatus = "free"
	StatusPartial DayStatus = "partial"
	StatusBusy    DayStatus = "busy"
)

const dateFormat = "2006-01-02"

// ProjectDays classifies every date in [from, to] from the slot data.
// A date with no returned slots is busy; a date where every slot is
// booked is busy; no booked slot is free; anything in between is
// partial.
func ProjectDays(from, to time.Time, slots []models.TimeSlot) map[string]DayStatus {
	byDate := make(map[string][]models.TimeSlot)
	for _, slot := range slots {
		key := slot.Date.Format(dateFormat)
		byDate[key] = append(byDate[key], slot)
	}

	statuses := make(map[string]DayStatus)
	for day := dateOnly(from); !day.After(dateOnly(to)); day = day.AddDate(0, 0, 1) {
		key := day.Format(dateFormat)
		statuses[key] = classify(byDate[key])
	}
	return statuses
}

func classify(slots []models.TimeSlot) DayStatus {
	if len(slots) == 0 {
		return StatusBusy
	}

	booked := 0
	for _, slot := range slots {
		if slot.Booked() {
			booked++
		}
	}

	switch booked {
	case 0:
		return StatusFree
	case len(slots):
		return StatusBusy
	default:
		return StatusPartial
	}
}

// TimeAvailable reports whether a specific time of day is open: a
// booked slot whose [start, end) range contains the probe makes it
// unavailable. No matching slot means available -- the opposite of
// the whole-date default, kept for compatibility with the existing
// picker behavior.
func TimeAvailable(slots []models.TimeSlot, date time.Time, clock string) bool {
	key := date.Format(dateFormat)
	for _, slot := range slots {
		if slot.Date.Format(dateFormat) != key {
			continue
		}
		// Zero-padded "15:04" strings order lexicographically.
		if slot.StartTime <= clock && clock < slot.EndTime && slot.Booked() {
			return false
		}
	}
	return true
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
