package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Payment modes for an event.
const (
	PaymentFree     = "free"
	PaymentDonation = "donation"
	PaymentPaid     = "paid"
)

type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID             string    `bun:"id,pk" json:"id"`
	Title          string    `bun:"title,notnull" json:"title"`
	Date           time.Time `bun:"date,notnull" json:"date"`
	EndDate        time.Time `bun:"end_date,nullzero" json:"end_date,omitempty"`
	Location       string    `bun:"location" json:"location"`
	Capacity       int       `bun:"capacity" json:"capacity"` // 0 = unbounded
	PaymentMode    string    `bun:"payment_mode" json:"payment_mode"`
	Price          float64   `bun:"price" json:"price"`
	Currency       string    `bun:"currency" json:"currency"`
	CoupleDiscount float64   `bun:"couple_discount" json:"couple_discount"`
	ChildHalfPrice bool      `bun:"child_half_price" json:"child_half_price"`
	AdultsOnly     bool      `bun:"adults_only" json:"adults_only"`

	// Registrations holds the JSON registration data for the event.
	// It can arrive in the legacy flat shape or the structured shape;
	// see RegistrationData.
	Registrations RegistrationData `bun:"registrations,type:jsonb" json:"registrations"`

	// Version is bumped on every registration write and is the guard
	// column for conditional updates.
	Version   int64     `bun:"version" json:"version"`
	CreatedAt time.Time `bun:"created_at,nullzero" json:"created_at"`
}

// RegistrationBook is the structured registrations shape:
// capacity, derived counters and the ordered registration list.
type RegistrationBook struct {
	Max             int            `json:"max"`
	Current         int            `json:"current"`
	CurrentAdults   int            `json:"current_adults"`
	CurrentChildren int            `json:"current_children"`
	List            []Registration `json:"list"`
}

// RegistrationData bundles the structured book with the legacy flat
// fields older event rows still carry. Reads tolerate either; writes
// emit the structured book only.
type RegistrationData struct {
	Book *RegistrationBook `json:"registrations,omitempty"`

	// Legacy shape, superseded by Book.
	LegacyCount int            `json:"current_registration_count,omitempty"`
	LegacyList  []Registration `json:"registrations_list,omitempty"`
}

type Registration struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Comment   string    `json:"comment,omitempty"`
	Adults    int       `json:"adults"`
	Children  int       `json:"children"`
	Total     float64   `json:"total"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Tickets is the number of seats this registration occupies.
func (r Registration) Tickets() int {
	return r.Adults + r.Children
}
