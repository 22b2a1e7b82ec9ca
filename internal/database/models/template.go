package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ObservationRequirement names a boolean fact the grower must record before
// a stage may complete.
type ObservationRequirement struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// GrowthTemplate is an admin-authored, immutable description of a plant's
// cultivation timeline. It is referenced by many notebooks and never embedded.
type GrowthTemplate struct {
	BaseModel
	Name        string `json:"name" gorm:"size:100;not null" validate:"required,min=1,max=100"`
	PlantType   string `json:"plant_type" gorm:"size:50"`
	Description string `json:"description" gorm:"type:text"`
	IsPublished bool   `json:"is_published" gorm:"default:false"`

	// Relationships
	Stages []TemplateStage `json:"stages,omitempty" gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GrowthTemplate
func (GrowthTemplate) TableName() string {
	return "growth_templates"
}

// TemplateStage is one phase of a growth template's timeline. Day ranges are
// 1-based, inclusive, contiguous and non-overlapping in StageNumber order.
type TemplateStage struct {
	BaseModel
	TemplateID          uuid.UUID                                   `json:"template_id" gorm:"type:uuid;not null;index" validate:"required"`
	StageNumber         int                                         `json:"stage_number" gorm:"not null" validate:"required,min=1"`
	Name                string                                      `json:"name" gorm:"size:100;not null" validate:"required,min=1,max=100"`
	DayStart            int                                         `json:"day_start" gorm:"not null" validate:"required,min=1"`
	DayEnd              int                                         `json:"day_end" gorm:"not null" validate:"required,min=1"`
	ObservationRequired datatypes.JSONSlice[ObservationRequirement] `json:"observation_required" gorm:"type:jsonb"`
}

// TableName returns the table name for TemplateStage
func (TemplateStage) TableName() string {
	return "template_stages"
}

// Duration returns the stage's length in days (inclusive range).
func (s *TemplateStage) Duration() int {
	return s.DayEnd - s.DayStart + 1
}

// RequiredKeys returns the observation keys this stage demands.
func (s *TemplateStage) RequiredKeys() []string {
	keys := make([]string, 0, len(s.ObservationRequired))
	for _, req := range s.ObservationRequired {
		keys = append(keys, req.Key)
	}
	return keys
}

// StageByNumber returns the stage definition with the given number, or nil
// when the template has no such stage (template edits can orphan in-flight
// notebooks).
func (t *GrowthTemplate) StageByNumber(number int) *TemplateStage {
	for i := range t.Stages {
		if t.Stages[i].StageNumber == number {
			return &t.Stages[i]
		}
	}
	return nil
}
