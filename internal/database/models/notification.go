package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Notification is one emitted notification request. The engine writes these
// rows; rendering human-readable text is the delivery subsystem's job.
// Job idempotency is achieved by querying rows of a kind created within the
// current civil day, so there is no separate job-state checkpoint table.
type Notification struct {
	BaseModel
	UserID     uuid.UUID         `json:"user_id" gorm:"type:uuid;not null;index" validate:"required"`
	NotebookID uuid.UUID         `json:"notebook_id" gorm:"type:uuid;not null;index" validate:"required"`
	Kind       NotificationKind  `json:"kind" gorm:"type:varchar(50);not null;index" validate:"required"`
	Payload    datatypes.JSONMap `json:"payload" gorm:"type:jsonb"`
	IsRead     bool              `json:"is_read" gorm:"default:false"`
}

// TableName returns the table name for Notification
func (Notification) TableName() string {
	return "notifications"
}
