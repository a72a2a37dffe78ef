package events

import (
	"errors"
	"fmt"
	"time"

	"sciencehub-backend/internal/logger"
	"sciencehub-backend/internal/models"
	"sciencehub-backend/internal/utils"
)

// ErrSettingsNotFound means the site settings row has not been seeded.
var ErrSettingsNotFound = errors.New("site settings not found")

type EventStore interface {
	InsertEvent(ev models.Event) error
	UpdateEvent(ev models.Event) error
	GetEventByID(id string) (*models.Event, error)
	ListEvents() ([]models.Event, error)
	GetSettings() (*models.SiteSettings, error)
	UpsertSettings(settings models.SiteSettings) error
}

type ActivityPublisher interface {
	PublishEventSaved(ev models.Event) error
}

type Service struct {
	DB     EventStore
	Kafka  ActivityPublisher
	Logger *logger.Logger
}

func NewService(db EventStore, kafka ActivityPublisher, log *logger.Logger) *Service {
	return &Service{DB: db, Kafka: kafka, Logger: log}
}

// SaveEvent inserts a new event or updates an existing one. Updates
// never touch the registrations column; that belongs to the
// registration recorder.
func (s *Service) SaveEvent(ev models.Event, isNew bool) (*models.Event, error) {
	if isNew {
		if ev.ID == "" {
			ev.ID = utils.GenerateEventID()
		}
		if ev.CreatedAt.IsZero() {
			ev.CreatedAt = time.Now()
		}
		if ev.Registrations.Book == nil {
			ev.Registrations = models.RegistrationData{
				Book: &models.RegistrationBook{
					Max:  ev.Capacity,
					List: []models.Registration{},
				},
			}
		}
		if err := s.DB.InsertEvent(ev); err != nil {
			return nil, fmt.Errorf("failed to insert event: %w", err)
		}
	} else {
		if ev.ID == "" {
			return nil, fmt.Errorf("event id is required for update")
		}
		if _, err := s.DB.GetEventByID(ev.ID); err != nil {
			return nil, fmt.Errorf("event %s not found: %w", ev.ID, err)
		}
		if err := s.DB.UpdateEvent(ev); err != nil {
			return nil, fmt.Errorf("failed to update event: %w", err)
		}
	}

	s.Logger.LogDatabase("SAVE", "events", fmt.Sprintf("event %s (%s)", ev.ID, ev.Title))

	if s.Kafka != nil {
		if err := s.Kafka.PublishEventSaved(ev); err != nil {
			s.Logger.Error("KAFKA", fmt.Sprintf("failed to publish event %s: %v", ev.ID, err))
		}
	}

	return &ev, nil
}

func (s *Service) ListEvents() ([]models.Event, error) {
	return s.DB.ListEvents()
}

func (s *Service) GetSettings() (*models.SiteSettings, error) {
	return s.DB.GetSettings()
}

func (s *Service) SaveSettings(settings models.SiteSettings) error {
	if err := s.DB.UpsertSettings(settings); err != nil {
		return fmt.Errorf("failed to save site settings: %w", err)
	}
	s.Logger.LogDatabase("SAVE", "site_settings", "settings updated")
	return nil
}
