// Package notifier carries the trigger contract to the notification
// subsystem. The engine emits notification requests with structured
// payloads; rendering human-readable text and delivering it is the
// subsystem's job, not the engine's.
package notifier

import (
	"fmt"

	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/clock"
	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/database/models"
	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/repository"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Request is one notification request. Fields carries the kind-specific
// payload (task counts, observation keys, stage identity).
type Request struct {
	UserID       uuid.UUID
	NotebookID   uuid.UUID
	NotebookName string
	Fields       map[string]interface{}
}

// Emitter accepts notification requests from the engine.
type Emitter interface {
	Emit(kind models.NotificationKind, req Request) error
}

// StoreEmitter persists notification requests as rows. The same rows back
// the daily jobs' idempotency checks, so no separate job-state store exists.
// Rows are stamped with the civil clock, keeping them consistent with the
// jobs' per-day windows.
type StoreEmitter struct {
	repo  *repository.NotificationRepository
	clock *clock.Service
}

// NewStoreEmitter creates an emitter backed by the notification store
func NewStoreEmitter(repo *repository.NotificationRepository, clk *clock.Service) *StoreEmitter {
	return &StoreEmitter{repo: repo, clock: clk}
}

// Emit persists one notification request
func (e *StoreEmitter) Emit(kind models.NotificationKind, req Request) error {
	if !kind.IsValid() {
		return fmt.Errorf("invalid notification kind %q", kind)
	}

	payload := datatypes.JSONMap{
		"notebook_name": req.NotebookName,
	}
	for key, value := range req.Fields {
		payload[key] = value
	}

	now := e.clock.Now()
	notification := &models.Notification{
		BaseModel:  models.BaseModel{CreatedAt: now, UpdatedAt: now},
		UserID:     req.UserID,
		NotebookID: req.NotebookID,
		Kind:       kind,
		Payload:    payload,
	}
	if err := e.repo.Create(notification); err != nil {
		return fmt.Errorf("persist %s notification: %w", kind, err)
	}
	return nil
}
