package db

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"sciencehub-backend/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// GetSlotsBetween returns the time slots with dates in [from, to],
// ordered by date and start time.
func (d *DB) GetSlotsBetween(from, to time.Time) ([]models.TimeSlot, error) {
	var slots []models.TimeSlot
	err := d.Bun.NewSelect().
		Model(&slots).
		Where("date >= ?", from).
		Where("date <= ?", to).
		Order("date", "start_time").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return slots, nil
}
