package db_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "github.com/uptrace/bun/driver/sqliteshim"

	"sciencehub-backend/internal/availability/db"
	"sciencehub-backend/internal/models"
)

func setupTestDB(t *testing.T) (*db.DB, *bun.DB) {
	sqldb, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to connect to in-memory database: %v", err)
	}

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = bunDB.NewCreateTable().Model((*models.TimeSlot)(nil)).Exec(context.Background())
	if err != nil {
		t.Fatalf("Failed to create time_slots table: %v", err)
	}

	return &db.DB{Bun: bunDB}, bunDB
}

func insertSlot(t *testing.T, bunDB *bun.DB, slot models.TimeSlot) {
	_, err := bunDB.NewInsert().Model(&slot).Exec(context.Background())
	require.NoError(t, err)
}

func TestGetSlotsBetween(t *testing.T) {
	slotDB, bunDB := setupTestDB(t)
	defer bunDB.Close()

	day := func(offset int) time.Time {
		return time.Date(2026, 9, 1+offset, 0, 0, 0, 0, time.UTC)
	}

	insertSlot(t, bunDB, models.TimeSlot{ID: "s1", Date: day(0), StartTime: "10:00", EndTime: "12:00"})
	insertSlot(t, bunDB, models.TimeSlot{ID: "s2", Date: day(1), StartTime: "14:00", EndTime: "16:00"})
	insertSlot(t, bunDB, models.TimeSlot{ID: "s3", Date: day(1), StartTime: "09:00", EndTime: "11:00"})
	insertSlot(t, bunDB, models.TimeSlot{ID: "s4", Date: day(5), StartTime: "10:00", EndTime: "12:00"})

	slots, err := slotDB.GetSlotsBetween(day(0), day(2))
	require.NoError(t, err)
	require.Len(t, slots, 3)

	// Ordered by date, then start time within the day.
	assert.Equal(t, "s1", slots[0].ID)
	assert.Equal(t, "s3", slots[1].ID)
	assert.Equal(t, "s2", slots[2].ID)
}

func TestGetSlotsBetweenEmptyRange(t *testing.T) {
	slotDB, bunDB := setupTestDB(t)
	defer bunDB.Close()

	insertSlot(t, bunDB, models.TimeSlot{
		ID:        "s1",
		Date:      time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		EndTime:   "12:00",
	})

	slots, err := slotDB.GetSlotsBetween(
		time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 7, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetSlotsBetweenKeepsDetails(t *testing.T) {
	slotDB, bunDB := setupTestDB(t)
	defer bunDB.Close()

	date := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)
	insertSlot(t, bunDB, models.TimeSlot{
		ID:        "s1",
		Date:      date,
		StartTime: "18:00",
		EndTime:   "20:00",
		Details:   models.SlotDetails{Type: models.SlotTypeEvent, Title: "Star Night", EventID: "ev-1"},
	})

	slots, err := slotDB.GetSlotsBetween(date, date)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.True(t, slots[0].Booked())
	assert.Equal(t, "ev-1", slots[0].Details.EventID)
}
