package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Slot detail types; a slot with type "event" counts as booked even
// when the booked flag was never set.
const SlotTypeEvent = "event"

type TimeSlot struct {
	bun.BaseModel `bun:"table:time_slots"`

	ID        string      `bun:"id,pk" json:"id"`
	Date      time.Time   `bun:"date,notnull" json:"date"`
	StartTime string      `bun:"start_time,notnull" json:"start_time"` // "15:04"
	EndTime   string      `bun:"end_time,notnull" json:"end_time"`
	Details   SlotDetails `bun:"slot_details,type:jsonb" json:"slot_details"`
}

type SlotDetails struct {
	Type    string `json:"type,omitempty"`
	Title   string `json:"title,omitempty"`
	Booked  bool   `json:"booked"`
	EventID string `json:"event_id,omitempty"`
}

// Booked reports whether the slot counts as occupied.
func (s TimeSlot) Booked() bool {
	return s.Details.Booked || s.Details.Type == SlotTypeEvent
}
