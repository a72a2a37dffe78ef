package analytics

import (
	"context"
	"errors"
	"time"

	"sciencehub-backend/internal/models"
)

// ErrNoMatchingView means no page view matched a time-spent update.
var ErrNoMatchingView = errors.New("no matching page view")

// Service handles visitor analytics operations
type Service struct {
	db *DB
}

// NewService creates a new analytics service
func NewService(db *DB) *Service {
	return &Service{db: db}
}

// TrackPageView records one page view.
func (s *Service) TrackPageView(ctx context.Context, view models.PageView) error {
	if view.CreatedAt.IsZero() {
		view.CreatedAt = time.Now()
	}
	return s.db.InsertPageView(ctx, &view)
}

// RecordTimeSpent updates the duration of the most recent view for a
// session and path.
func (s *Service) RecordTimeSpent(ctx context.Context, sessionID, path string, seconds int) error {
	affected, err := s.db.UpdateTimeSpent(ctx, sessionID, path, seconds)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNoMatchingView
	}
	return nil
}

// Summary is the aggregated dashboard view of site traffic.
type Summary struct {
	TotalViews     int              `json:"total_views"`
	UniqueSessions int              `json:"unique_sessions"`
	TopPaths       []PathViewsData  `json:"top_paths"`
	DailyViews     []DailyViewsData `json:"daily_views"`
}

// GetSummary aggregates traffic metrics for the admin dashboard.
func (s *Service) GetSummary(ctx context.Context) (*Summary, error) {
	total, err := s.db.CountViews(ctx)
	if err != nil {
		return nil, err
	}

	sessions, err := s.db.CountUniqueSessions(ctx)
	if err != nil {
		return nil, err
	}

	topPaths, err := s.db.GetTopPaths(ctx, 10)
	if err != nil {
		return nil, err
	}

	daily, err := s.db.GetDailyViews(ctx)
	if err != nil {
		return nil, err
	}

	return &Summary{
		TotalViews:     total,
		UniqueSessions: sessions,
		TopPaths:       topPaths,
		DailyViews:     daily,
	}, nil
}
