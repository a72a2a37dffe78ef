package availability

import (
	"fmt"
	"time"

	"sciencehub-backend/internal/models"
)

type SlotStore interface {
	GetSlotsBetween(from, to time.Time) ([]models.TimeSlot, error)
}

type Service struct {
	DB SlotStore
}

func NewService(db SlotStore) *Service {
	return &Service{DB: db}
}

// DayStatuses projects the coarse status of every date in [from, to].
func (s *Service) DayStatuses(from, to time.Time) (map[string]DayStatus, error) {
	slots, err := s.DB.GetSlotsBetween(from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch time slots: %w", err)
	}
	return ProjectDays(from, to, slots), nil
}

// ProbeTime reports whether the given time of day on a date is open.
func (s *Service) ProbeTime(date time.Time, clock string) (bool, error) {
	slots, err := s.DB.GetSlotsBetween(date, date)
	if err != nil {
		return false, fmt.Errorf("failed to fetch time slots: %w", err)
	}
	return TimeAvailable(slots, date, clock), nil
}
