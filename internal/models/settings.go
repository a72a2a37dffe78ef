package models

import (
	"encoding/json"

	"github.com/uptrace/bun"
)

// SiteSettings is a singleton row (id = 1) holding the UI content
// blobs. The backend stores and returns them untouched.
type SiteSettings struct {
	bun.BaseModel `bun:"table:site_settings"`

	ID     int64           `bun:"id,pk" json:"id"`
	Header json.RawMessage `bun:"header,type:jsonb" json:"header,omitempty"`
	Info   json.RawMessage `bun:"info_section,type:jsonb" json:"info_section,omitempty"`
	Rent   json.RawMessage `bun:"rent_section,type:jsonb" json:"rent_section,omitempty"`
}
