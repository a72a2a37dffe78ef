package registration_api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sciencehub-backend/internal/logger"
	"sciencehub-backend/internal/models"
	"sciencehub-backend/internal/notify"
	"sciencehub-backend/internal/registration"
	"sciencehub-backend/internal/registration/registration_api"
)

type MockEventStore struct {
	mock.Mock
}

func (m *MockEventStore) GetEventByID(id string) (*models.Event, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventStore) UpdateRegistrations(event models.Event, expectedVersion int64) error {
	args := m.Called(event, expectedVersion)
	return args.Error(0)
}

type openLocker struct{}

func (openLocker) LockEvent(eventID, token string) (bool, error) { return true, nil }
func (openLocker) UnlockEvent(eventID, token string) error       { return nil }

func newHandler(mockDB *MockEventStore) *registration_api.Handler {
	log := logger.NewLogger()
	svc := registration.NewService(mockDB, openLocker{}, nil, log)
	svc.LockRetryDelay = time.Millisecond
	// Webhook URL left empty: notifications are dropped in tests.
	notifier := notify.NewNotifier(&http.Client{}, "", log)
	return registration_api.NewHandler(svc, notifier, nil, log)
}

func postRegister(t *testing.T, h *registration_api.Handler, body interface{}) *httptest.ResponseRecorder {
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/register-event", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	h.RegisterEvent(rec, req)
	return rec
}

func testEvent(capacity int) *models.Event {
	return &models.Event{
		ID:          "event-1",
		Title:       "Open Lab Night",
		Capacity:    capacity,
		PaymentMode: models.PaymentPaid,
		Price:       100,
		Currency:    "DKK",
		Registrations: models.RegistrationData{
			Book: &models.RegistrationBook{List: []models.Registration{}},
		},
	}
}

func TestRegisterEventSuccess(t *testing.T) {
	mockDB := new(MockEventStore)
	mockDB.On("GetEventByID", "event-1").Return(testEvent(0), nil)
	mockDB.On("UpdateRegistrations", mock.Anything, mock.Anything).Return(nil)

	rec := postRegister(t, newHandler(mockDB), map[string]interface{}{
		"eventId": "event-1",
		"registrationData": map[string]interface{}{
			"name":   "Maria Holm",
			"email":  "maria@example.com",
			"adults": 2,
		},
	})

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success        bool   `json:"success"`
		RegistrationID string `json:"registrationId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.RegistrationID)
}

func TestRegisterEventValidation(t *testing.T) {
	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing event id", map[string]interface{}{
			"registrationData": map[string]interface{}{"name": "A", "email": "a@x.dk"},
		}},
		{"missing name", map[string]interface{}{
			"eventId":          "event-1",
			"registrationData": map[string]interface{}{"email": "a@x.dk"},
		}},
		{"missing email", map[string]interface{}{
			"eventId":          "event-1",
			"registrationData": map[string]interface{}{"name": "A"},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postRegister(t, newHandler(new(MockEventStore)), tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestRegisterEventClampsTicketCounts(t *testing.T) {
	mockDB := new(MockEventStore)
	mockDB.On("GetEventByID", "event-1").Return(testEvent(0), nil)

	var written models.Event
	mockDB.On("UpdateRegistrations", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			written = args.Get(0).(models.Event)
		}).
		Return(nil)

	rec := postRegister(t, newHandler(mockDB), map[string]interface{}{
		"eventId": "event-1",
		"registrationData": map[string]interface{}{
			"name":     "Greedy Guest",
			"email":    "g@x.dk",
			"adults":   25,
			"children": -3,
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	book := written.Registrations.Book
	require.NotNil(t, book)
	require.Len(t, book.List, 1)
	assert.Equal(t, 10, book.List[0].Adults)
	assert.Equal(t, 0, book.List[0].Children)
}

func TestRegisterEventCapacityConflict(t *testing.T) {
	mockDB := new(MockEventStore)
	ev := testEvent(2)
	ev.Registrations.Book.Current = 2
	mockDB.On("GetEventByID", "event-1").Return(ev, nil)

	rec := postRegister(t, newHandler(mockDB), map[string]interface{}{
		"eventId": "event-1",
		"registrationData": map[string]interface{}{
			"name":   "Late Guest",
			"email":  "late@x.dk",
			"adults": 1,
		},
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	mockDB.AssertNotCalled(t, "UpdateRegistrations", mock.Anything, mock.Anything)
}

func TestRegisterEventNotFound(t *testing.T) {
	mockDB := new(MockEventStore)
	mockDB.On("GetEventByID", "missing").Return(nil, registration.ErrEventNotFound)

	rec := postRegister(t, newHandler(mockDB), map[string]interface{}{
		"eventId": "missing",
		"registrationData": map[string]interface{}{
			"name":   "Guest",
			"email":  "g@x.dk",
			"adults": 1,
		},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func postCancel(t *testing.T, h *registration_api.Handler, body interface{}) *httptest.ResponseRecorder {
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/cancel-registration", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	h.CancelRegistration(rec, req)
	return rec
}

func TestCancelRegistrationEndpoint(t *testing.T) {
	mockDB := new(MockEventStore)
	ev := testEvent(0)
	ev.Registrations.Book.List = []models.Registration{
		{ID: "reg-1", Adults: 2, Active: true},
	}
	mockDB.On("GetEventByID", "event-1").Return(ev, nil)

	var written models.Event
	mockDB.On("UpdateRegistrations", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			written = args.Get(0).(models.Event)
		}).
		Return(nil)

	rec := postCancel(t, newHandler(mockDB), map[string]string{
		"eventId":        "event-1",
		"registrationId": "reg-1",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	book := written.Registrations.Book
	require.NotNil(t, book)
	require.Len(t, book.List, 1)
	assert.False(t, book.List[0].Active)
	assert.Equal(t, 0, book.Current)
}

func TestCancelRegistrationUnknownID(t *testing.T) {
	mockDB := new(MockEventStore)
	mockDB.On("GetEventByID", "event-1").Return(testEvent(0), nil)

	rec := postCancel(t, newHandler(mockDB), map[string]string{
		"eventId":        "event-1",
		"registrationId": "reg-404",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	mockDB.AssertNotCalled(t, "UpdateRegistrations", mock.Anything, mock.Anything)
}

func TestCancelRegistrationValidation(t *testing.T) {
	rec := postCancel(t, newHandler(new(MockEventStore)), map[string]string{
		"eventId": "event-1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
