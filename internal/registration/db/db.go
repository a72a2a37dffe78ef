package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"sciencehub-backend/internal/models"
	"sciencehub-backend/internal/registration"
)

type DB struct {
	Bun *bun.DB
}

func (d *DB) GetEventByID(id string) (*models.Event, error) {
	var ev models.Event
	err := d.Bun.NewSelect().
		Model(&ev).
		Where("id = ?", id).
		Limit(1).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, registration.ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// UpdateRegistrations persists the registration data and counters of
// an event, guarded on the version read before the mutation. A stale
// version updates nothing and reports ErrVersionConflict.
func (d *DB) UpdateRegistrations(ev models.Event, expectedVersion int64) error {
	res, err := d.Bun.NewUpdate().
		Model(&ev).
		Column("registrations", "version").
		Where("id = ?", ev.ID).
		Where("version = ?", expectedVersion).
		Exec(context.Background())
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return registration.ErrVersionConflict
	}
	return nil
}
