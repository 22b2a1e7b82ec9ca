package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Observation is a boolean fact about a stage recorded by the grower.
// At most one entry exists per key; later writes overwrite.
type Observation struct {
	Key        string    `json:"key"`
	Value      bool      `json:"value"`
	ObservedAt time.Time `json:"observed_at"`
}

// DailyLog records a day's estimated progress within a stage. At most one
// entry exists per calendar date.
type DailyLog struct {
	Date          time.Time `json:"date"`
	DailyProgress int       `json:"daily_progress"`
}

// StageTracking is the per-stage record of a notebook's journey through its
// template. One entry exists per stage ever entered.
type StageTracking struct {
	StageNumber       int           `json:"stage_number"`
	StageName         string        `json:"stage_name"`
	Status            StageStatus   `json:"status"`
	StartedAt         time.Time     `json:"started_at"`
	CompletedAt       *time.Time    `json:"completed_at,omitempty"`
	CompletedTasks    []string      `json:"completed_tasks,omitempty"`
	Observations      []Observation `json:"observations,omitempty"`
	DailyLogs         []DailyLog    `json:"daily_logs,omitempty"`
	OverdueTasks      []string      `json:"overdue_tasks,omitempty"`
	OverdueSummary    string        `json:"overdue_summary,omitempty"`
	PendingTransition bool          `json:"pending_transition"`
	TransitionDate    *time.Time    `json:"transition_date,omitempty"`
}

// ObservationValue returns the recorded value for a key and whether one
// exists.
func (st *StageTracking) ObservationValue(key string) (bool, bool) {
	for _, obs := range st.Observations {
		if obs.Key == key {
			return obs.Value, true
		}
	}
	return false, false
}

// RecordedKeys returns the keys of all observations recorded on this stage.
func (st *StageTracking) RecordedKeys() []string {
	keys := make([]string, 0, len(st.Observations))
	for _, obs := range st.Observations {
		keys = append(keys, obs.Key)
	}
	return keys
}

// ChecklistItem is one generated task in a notebook's daily checklist.
type ChecklistItem struct {
	ID          uuid.UUID           `json:"id"`
	Title       string              `json:"title"`
	Status      ChecklistItemStatus `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	CompletedAt *time.Time          `json:"completed_at,omitempty"`
}

// IsCompleted reports whether the item has been checked off.
func (c *ChecklistItem) IsCompleted() bool {
	return c.Status == ChecklistItemStatusCompleted
}

// Notebook is a user's cultivation record: the mutable entity tracking a
// plant's journey through a growth template day by day.
type Notebook struct {
	BaseModel
	UserID       uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index" validate:"required"`
	TemplateID   *uuid.UUID     `json:"template_id,omitempty" gorm:"type:uuid;index"`
	Name         string         `json:"name" gorm:"size:100;not null" validate:"required,min=1,max=100"`
	PlantedDate  time.Time      `json:"planted_date" gorm:"type:date;not null" validate:"required"`
	CurrentStage int            `json:"current_stage" gorm:"not null;default:1"`
	Progress     int            `json:"progress" gorm:"not null;default:0"`
	Status       NotebookStatus `json:"status" gorm:"type:varchar(20);not null;default:'active'"`

	StagesTracking datatypes.JSONSlice[StageTracking] `json:"stages_tracking" gorm:"type:jsonb"`
	DailyChecklist datatypes.JSONSlice[ChecklistItem] `json:"daily_checklist" gorm:"type:jsonb"`

	LastChecklistGeneratedAt *time.Time `json:"last_checklist_generated_at,omitempty"`
	DeletedAt                *time.Time `json:"deleted_at,omitempty"`

	// Version guards read-modify-write cycles against concurrent updates.
	Version int `json:"-" gorm:"not null;default:0"`

	// Relationships
	Template *GrowthTemplate `json:"template,omitempty" gorm:"foreignKey:TemplateID"`
}

// TableName returns the table name for Notebook
func (Notebook) TableName() string {
	return "notebooks"
}

// CurrentTracking returns the tracking entry for the notebook's current
// stage, or nil when the stage was never entered. Whether an entry is
// current is derived from CurrentStage rather than stored, so two entries
// can never both claim to be current.
func (n *Notebook) CurrentTracking() *StageTracking {
	return n.TrackingFor(n.CurrentStage)
}

// TrackingFor returns the tracking entry for the given stage number, or nil.
func (n *Notebook) TrackingFor(stageNumber int) *StageTracking {
	for i := range n.StagesTracking {
		if n.StagesTracking[i].StageNumber == stageNumber {
			return &n.StagesTracking[i]
		}
	}
	return nil
}

// IsCurrent reports whether the given tracking entry is the notebook's
// current stage.
func (n *Notebook) IsCurrent(st *StageTracking) bool {
	return st != nil && st.StageNumber == n.CurrentStage
}
