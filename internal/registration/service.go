package registration

import (
	"fmt"
	"time"

	"sciencehub-backend/internal/logger"
	"sciencehub-backend/internal/models"
	"sciencehub-backend/internal/pricing"
	"sciencehub-backend/internal/utils"
)

type EventStore interface {
	GetEventByID(id string) (*models.Event, error)
	UpdateRegistrations(event models.Event, expectedVersion int64) error
}

type EventLocker interface {
	LockEvent(eventID, token string) (bool, error)
	UnlockEvent(eventID, token string) error
}

type ActivityPublisher interface {
	PublishRegistrationCreated(eventID string, reg models.Registration) error
}

// Request is a candidate registration before pricing and recording.
type Request struct {
	Name     string
	Email    string
	Phone    string
	Comment  string
	Adults   int
	Children int
}

type Service struct {
	DB     EventStore
	Lock   EventLocker
	Kafka  ActivityPublisher
	Logger *logger.Logger

	// LockRetries and LockRetryDelay bound the wait for the per-event
	// write lock before giving up with ErrRegistrationBusy.
	LockRetries    int
	LockRetryDelay time.Duration
}

func NewService(db EventStore, lock EventLocker, kafka ActivityPublisher, log *logger.Logger) *Service {
	return &Service{
		DB:             db,
		Lock:           lock,
		Kafka:          kafka,
		Logger:         log,
		LockRetries:    5,
		LockRetryDelay: 100 * time.Millisecond,
	}
}

// Register records a registration against an event: fetch, price,
// capacity check, append, recount, conditional write. Writes for one
// event are serialized through the per-event lock so two racing
// registrations cannot both slip past the capacity check.
func (s *Service) Register(eventID string, req Request) (*models.Registration, error) {
	token := utils.GenerateRegistrationID()

	if err := s.acquireLock(eventID, token); err != nil {
		return nil, err
	}
	defer func() {
		if err := s.Lock.UnlockEvent(eventID, token); err != nil {
			s.Logger.Warn("REGISTER", fmt.Sprintf("failed to release lock for event %s: %v", eventID, err))
		}
	}()

	ev, err := s.DB.GetEventByID(eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event %s: %w", eventID, err)
	}

	book := NormalizeBook(*ev)

	requested := req.Adults + req.Children
	if book.Max > 0 && book.Current+requested > book.Max {
		s.Logger.LogRegistration("REJECT", token,
			fmt.Sprintf("capacity %d, booked %d, requested %d", book.Max, book.Current, requested))
		return nil, ErrCapacityExceeded
	}

	quote := pricing.Calculate(pricing.ConfigFromEvent(*ev), req.Adults, req.Children)

	reg := models.Registration{
		ID:        token,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Comment:   req.Comment,
		Adults:    req.Adults,
		Children:  req.Children,
		Total:     quote.Total,
		Active:    true,
		CreatedAt: time.Now(),
	}

	book.List = append(book.List, reg)
	recount(&book)

	updated := *ev
	updated.Registrations = models.RegistrationData{Book: &book}
	updated.Version = ev.Version + 1

	if err := s.DB.UpdateRegistrations(updated, ev.Version); err != nil {
		return nil, fmt.Errorf("failed to record registration: %w", err)
	}

	s.Logger.LogRegistration("CREATE", reg.ID,
		fmt.Sprintf("event %s, %d adults, %d children, total %.2f %s",
			eventID, reg.Adults, reg.Children, reg.Total, quote.Currency))

	// Activity stream is best-effort; a broker failure never unwinds
	// a recorded registration.
	if s.Kafka != nil {
		if err := s.Kafka.PublishRegistrationCreated(eventID, reg); err != nil {
			s.Logger.Error("KAFKA", fmt.Sprintf("failed to publish registration %s: %v", reg.ID, err))
		}
	}

	return &reg, nil
}

// CancelRegistration flags a registration inactive and recounts. The
// list entry is kept; registrations are never removed.
func (s *Service) CancelRegistration(eventID, registrationID string) error {
	token := utils.GenerateRegistrationID()

	if err := s.acquireLock(eventID, token); err != nil {
		return err
	}
	defer func() {
		if err := s.Lock.UnlockEvent(eventID, token); err != nil {
			s.Logger.Warn("REGISTER", fmt.Sprintf("failed to release lock for event %s: %v", eventID, err))
		}
	}()

	ev, err := s.DB.GetEventByID(eventID)
	if err != nil {
		return fmt.Errorf("failed to fetch event %s: %w", eventID, err)
	}

	book := NormalizeBook(*ev)

	found := false
	for i := range book.List {
		if book.List[i].ID == registrationID {
			book.List[i].Active = false
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("registration %s on event %s: %w", registrationID, eventID, ErrRegistrationNotFound)
	}
	recount(&book)

	updated := *ev
	updated.Registrations = models.RegistrationData{Book: &book}
	updated.Version = ev.Version + 1

	if err := s.DB.UpdateRegistrations(updated, ev.Version); err != nil {
		return fmt.Errorf("failed to cancel registration: %w", err)
	}

	s.Logger.LogRegistration("CANCEL", registrationID, fmt.Sprintf("event %s", eventID))
	return nil
}

func (s *Service) acquireLock(eventID, token string) error {
	retries := s.LockRetries
	if retries < 1 {
		retries = 1
	}
	for attempt := 0; attempt < retries; attempt++ {
		ok, err := s.Lock.LockEvent(eventID, token)
		if err != nil {
			return fmt.Errorf("lock error for event %s: %w", eventID, err)
		}
		if ok {
			return nil
		}
		time.Sleep(s.LockRetryDelay)
	}
	return ErrRegistrationBusy
}
