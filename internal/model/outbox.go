package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type OutboxStatus string

const (
	OutboxStatusPending   OutboxStatus = "PENDING"
	OutboxStatusProcessed OutboxStatus = "PROCESSED"
	OutboxStatusFailed    OutboxStatus = "FAILED"
)

// Config-change event types published through the outbox.
const (
	EventRoleModuleUpdated = "ROLE_MODULE_UPDATED"
	EventOrgModuleUpdated  = "ORG_MODULE_UPDATED"
	EventSidebarSaved      = "SIDEBAR_SAVED"
	EventSidebarReset      = "SIDEBAR_RESET"
	EventPermissionUpdated = "PERMISSION_UPDATED"
	EventPermissionReset   = "PERMISSION_RESET"
	EventUIBuilderSaved    = "UI_BUILDER_SAVED"
)

type OutboxEvent struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	EventType    string          `db:"event_type" json:"event_type"`
	Payload      json.RawMessage `db:"payload" json:"payload"`
	Status       string          `db:"status" json:"status"`
	ErrorMessage *string         `db:"error_message" json:"error_message,omitempty"`
	RetryCount   int             `db:"retry_count" json:"retry_count"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
	ProcessedAt  *time.Time      `db:"processed_at" json:"processed_at,omitempty"`
}
