package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RelayEvent is an immutable record of one contact relay invocation.
// It never stores submitted values or the raw client IP.
type RelayEvent struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index:idx_relay_event_created_at" json:"created_at"`

	Outcome        string `gorm:"not null;index:idx_relay_event_outcome" json:"outcome"`
	StatusCode     int    `gorm:"not null" json:"status_code"`
	UpstreamStatus int    `json:"upstream_status,omitempty"`
	DurationMs     int64  `json:"duration_ms"`

	// Request metadata
	IPHash    string `gorm:"index:idx_relay_event_ip" json:"ip_hash,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
	Fields    string `json:"fields,omitempty"` // Comma separated field names
}

// FieldList returns the submitted field names
func (e *RelayEvent) FieldList() []string {
	if e.Fields == "" {
		return nil
	}
	return strings.Split(e.Fields, ",")
}

// BeforeCreate generates UUID
func (e *RelayEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

// BeforeUpdate prevents modification of relay events (immutability)
func (e *RelayEvent) BeforeUpdate(tx *gorm.DB) error {
	return gorm.ErrRecordNotFound
}

// TableName specifies the table name
func (RelayEvent) TableName() string {
	return "relay_events"
}
