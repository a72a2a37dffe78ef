package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"sciencehub-backend/internal/events"
	"sciencehub-backend/internal/models"
)

type DB struct {
	Bun *bun.DB
}

func (d *DB) InsertEvent(ev models.Event) error {
	_, err := d.Bun.NewInsert().Model(&ev).Exec(context.Background())
	return err
}

func (d *DB) UpdateEvent(ev models.Event) error {
	_, err := d.Bun.NewUpdate().
		Model(&ev).
		Column("title", "date", "end_date", "location", "capacity",
			"payment_mode", "price", "currency", "couple_discount",
			"child_half_price", "adults_only").
		Where("id = ?", ev.ID).
		Exec(context.Background())
	return err
}

func (d *DB) GetEventByID(id string) (*models.Event, error) {
	var ev models.Event
	err := d.Bun.NewSelect().
		Model(&ev).
		Where("id = ?", id).
		Limit(1).
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func (d *DB) ListEvents() ([]models.Event, error) {
	var events []models.Event
	err := d.Bun.NewSelect().
		Model(&events).
		Order("date").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (d *DB) GetSettings() (*models.SiteSettings, error) {
	var settings models.SiteSettings
	err := d.Bun.NewSelect().
		Model(&settings).
		Where("id = ?", 1).
		Limit(1).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, events.ErrSettingsNotFound
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpsertSettings writes the singleton settings row.
func (d *DB) UpsertSettings(settings models.SiteSettings) error {
	settings.ID = 1
	_, err := d.Bun.NewInsert().
		Model(&settings).
		On("CONFLICT (id) DO UPDATE").
		Set("header = EXCLUDED.header").
		Set("info_section = EXCLUDED.info_section").
		Set("rent_section = EXCLUDED.rent_section").
		Exec(context.Background())
	return err
}
