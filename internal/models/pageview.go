package models

import (
	"time"

	"github.com/uptrace/bun"
)

type PageView struct {
	bun.BaseModel `bun:"table:page_views"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	Path      string    `bun:"path,notnull" json:"path"`
	SessionID string    `bun:"session_id,notnull" json:"session_id"`
	UserID    string    `bun:"user_id,nullzero" json:"user_id,omitempty"`
	Referrer  string    `bun:"referrer,nullzero" json:"referrer,omitempty"`
	UserAgent string    `bun:"user_agent,nullzero" json:"user_agent,omitempty"`
	IsAdmin   bool      `bun:"is_admin" json:"is_admin"`
	Duration  int       `bun:"duration_seconds" json:"duration_seconds"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}
