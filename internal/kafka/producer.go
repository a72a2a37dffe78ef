package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"sciencehub-backend/internal/logger"
	"sciencehub-backend/internal/models"
)

type Producer struct {
	Writer *kafka.Writer
	Topic  string
	Logger *logger.Logger
}

func NewProducer(brokers []string, topic string, log *logger.Logger) *Producer {
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers: brokers,
		Topic:   topic,
	})
	return &Producer{Writer: writer, Topic: topic, Logger: log}
}

// activityRecord is the envelope for the activity stream consumed by
// the admin dashboard.
type activityRecord struct {
	Type    string      `json:"type"`
	EventID string      `json:"event_id,omitempty"`
	Payload interface{} `json:"payload"`
	At      time.Time   `json:"at"`
}

// PublishRegistrationCreated streams a new registration to the
// activity topic.
func (p *Producer) PublishRegistrationCreated(eventID string, reg models.Registration) error {
	return p.publish("registration_created", eventID, reg)
}

// PublishEventSaved streams an event insert or update to the activity
// topic.
func (p *Producer) PublishEventSaved(ev models.Event) error {
	// The registration payload is dropped from the record; the stream
	// carries event metadata only.
	ev.Registrations = models.RegistrationData{}
	return p.publish("event_saved", ev.ID, ev)
}

func (p *Producer) publish(recordType, key string, payload interface{}) error {
	msgBytes, err := json.Marshal(activityRecord{
		Type:    recordType,
		EventID: key,
		Payload: payload,
		At:      time.Now(),
	})
	if err != nil {
		return err
	}

	err = p.Writer.WriteMessages(context.Background(),
		kafka.Message{
			Key:   []byte(key),
			Value: msgBytes,
		},
	)
	if p.Logger != nil {
		if err != nil {
			p.Logger.LogKafka("PUBLISH_FAILED", p.Topic, recordType+" "+key+": "+err.Error())
		} else {
			p.Logger.LogKafka("PUBLISH", p.Topic, recordType+" "+key)
		}
	}
	return err
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}
