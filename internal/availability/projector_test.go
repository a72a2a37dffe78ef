package availability_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sciencehub-backend/internal/availability"
	"sciencehub-backend/internal/models"
)

func day(offset int) time.Time {
	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, offset)
}

func slot(date time.Time, start, end string, booked bool) models.TimeSlot {
	return models.TimeSlot{
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Details:   models.SlotDetails{Booked: booked},
	}
}

func TestProjectDaysPartial(t *testing.T) {
	slots := []models.TimeSlot{
		slot(day(0), "09:00", "12:00", true),
		slot(day(0), "12:00", "15:00", false),
		slot(day(0), "15:00", "18:00", false),
	}

	statuses := availability.ProjectDays(day(0), day(0), slots)
	assert.Equal(t, availability.StatusPartial, statuses[day(0).Format("2006-01-02")])
}

func TestProjectDaysFreeAndBusy(t *testing.T) {
	slots := []models.TimeSlot{
		// Day 0: nothing booked.
		slot(day(0), "09:00", "12:00", false),
		slot(day(0), "12:00", "15:00", false),
		// Day 1: everything booked.
		slot(day(1), "09:00", "12:00", true),
		slot(day(1), "12:00", "15:00", true),
	}

	statuses := availability.ProjectDays(day(0), day(2), slots)
	require.Len(t, statuses, 3)
	assert.Equal(t, availability.StatusFree, statuses[day(0).Format("2006-01-02")])
	assert.Equal(t, availability.StatusBusy, statuses[day(1).Format("2006-01-02")])
	// Day 2 has no slot data at all: busy by default.
	assert.Equal(t, availability.StatusBusy, statuses[day(2).Format("2006-01-02")])
}

func TestEventTypeCountsAsBooked(t *testing.T) {
	evSlot := models.TimeSlot{
		Date:      day(0),
		StartTime: "09:00",
		EndTime:   "12:00",
		Details:   models.SlotDetails{Type: models.SlotTypeEvent, Booked: false},
	}
	slots := []models.TimeSlot{
		evSlot,
		slot(day(0), "12:00", "15:00", false),
	}

	statuses := availability.ProjectDays(day(0), day(0), slots)
	assert.Equal(t, availability.StatusPartial, statuses[day(0).Format("2006-01-02")])
}

func TestTimeAvailable(t *testing.T) {
	slots := []models.TimeSlot{
		slot(day(0), "09:00", "12:00", true),
		slot(day(0), "12:00", "15:00", false),
	}

	// Inside the booked slot.
	assert.False(t, availability.TimeAvailable(slots, day(0), "10:30"))
	// Inside the free slot.
	assert.True(t, availability.TimeAvailable(slots, day(0), "13:00"))
	// Range end is exclusive.
	assert.True(t, availability.TimeAvailable(slots, day(0), "12:00"))
	// No matching slot at all: available, unlike the whole-date default.
	assert.True(t, availability.TimeAvailable(slots, day(0), "20:00"))
	// Another date entirely: available.
	assert.True(t, availability.TimeAvailable(slots, day(3), "10:30"))
}
