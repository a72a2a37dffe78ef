package analytics

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"sciencehub-backend/internal/models"
)

// DB handles page-view database operations
type DB struct {
	bun *bun.DB
}

// NewDB creates a new analytics DB handler
func NewDB(db *bun.DB) *DB {
	return &DB{bun: db}
}

// InsertPageView records one page view.
func (db *DB) InsertPageView(ctx context.Context, view *models.PageView) error {
	_, err := db.bun.NewInsert().Model(view).Exec(ctx)
	return err
}

// UpdateTimeSpent sets the duration on the most recent page view
// matching the session and path. Returns the number of rows updated
// (0 when no view matched).
func (db *DB) UpdateTimeSpent(ctx context.Context, sessionID, path string, seconds int) (int64, error) {
	var latest models.PageView
	err := db.bun.NewSelect().
		Model(&latest).
		Where("session_id = ?", sessionID).
		Where("path = ?", path).
		Order("created_at DESC").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	res, err := db.bun.NewUpdate().
		Model((*models.PageView)(nil)).
		Set("duration_seconds = ?", seconds).
		Where("id = ?", latest.ID).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DailyViewsData represents raw daily view metrics from the database
type DailyViewsData struct {
	ViewDate   string `bun:"view_date" json:"date"` // "2006-01-02"
	DailyViews int    `bun:"daily_views" json:"views"`
}

// PathViewsData represents aggregated views per path
type PathViewsData struct {
	Path  string `bun:"path" json:"path"`
	Views int    `bun:"views" json:"views"`
}

// CountViews returns the total number of recorded page views,
// excluding admin traffic.
func (db *DB) CountViews(ctx context.Context) (int, error) {
	return db.bun.NewSelect().
		Model((*models.PageView)(nil)).
		Where("is_admin = ?", false).
		Count(ctx)
}

// CountUniqueSessions counts distinct visitor sessions.
func (db *DB) CountUniqueSessions(ctx context.Context) (int, error) {
	var count int
	err := db.bun.NewRaw(
		"SELECT COUNT(DISTINCT session_id) FROM page_views WHERE is_admin = ?", false,
	).Scan(ctx, &count)
	return count, err
}

// GetTopPaths returns the most viewed paths, busiest first.
func (db *DB) GetTopPaths(ctx context.Context, limit int) ([]PathViewsData, error) {
	var paths []PathViewsData
	err := db.bun.NewRaw(`
		SELECT
			path,
			COUNT(*) AS views
		FROM
			page_views
		WHERE
			is_admin = ?
		GROUP BY
			path
		ORDER BY
			views DESC
		LIMIT ?
	`, false, limit).Scan(ctx, &paths)

	return paths, err
}

// GetDailyViews returns view counts per day.
func (db *DB) GetDailyViews(ctx context.Context) ([]DailyViewsData, error) {
	var daily []DailyViewsData
	err := db.bun.NewRaw(`
		SELECT
			DATE(created_at) AS view_date,
			COUNT(*) AS daily_views
		FROM
			page_views
		WHERE
			is_admin = ?
		GROUP BY
			DATE(created_at)
		ORDER BY
			DATE(created_at)
	`, false).Scan(ctx, &daily)

	return daily, err
}
