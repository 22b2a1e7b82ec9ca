package service

import (
	"errors"
	"fmt"

	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/database/models"
	apperrors "github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/errors"
	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TemplateService handles business logic for growth templates
type TemplateService struct {
	repo      *repository.TemplateRepository
	validator *validator.Validate
}

// NewTemplateService creates a new template service
func NewTemplateService(repo *repository.TemplateRepository, validator *validator.Validate) *TemplateService {
	return &TemplateService{
		repo:      repo,
		validator: validator,
	}
}

// StageInput describes one stage in a template creation request
type StageInput struct {
	StageNumber         int                             `json:"stage_number" validate:"required,min=1"`
	Name                string                          `json:"name" validate:"required,min=1,max=100"`
	DayStart            int                             `json:"day_start" validate:"required,min=1"`
	DayEnd              int                             `json:"day_end" validate:"required,min=1"`
	ObservationRequired []models.ObservationRequirement `json:"observation_required,omitempty"`
}

// CreateTemplateRequest represents the request to create a growth template
type CreateTemplateRequest struct {
	Name        string       `json:"name" validate:"required,min=1,max=100"`
	PlantType   string       `json:"plant_type,omitempty" validate:"max=50"`
	Description string       `json:"description,omitempty"`
	IsPublished bool         `json:"is_published"`
	Stages      []StageInput `json:"stages" validate:"required,min=1,dive"`
}

// Create creates a growth template after validating its stage timeline:
// ascending stage numbers, day_end >= day_start, and contiguous
// non-overlapping day ranges.
func (s *TemplateService) Create(req *CreateTemplateRequest) (*models.GrowthTemplate, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validateStageTimeline(req.Stages); err != nil {
		return nil, err
	}

	template := &models.GrowthTemplate{
		Name:        req.Name,
		PlantType:   req.PlantType,
		Description: req.Description,
		IsPublished: req.IsPublished,
	}
	for _, input := range req.Stages {
		stage := models.TemplateStage{
			StageNumber: input.StageNumber,
			Name:        input.Name,
			DayStart:    input.DayStart,
			DayEnd:      input.DayEnd,
		}
		if len(input.ObservationRequired) > 0 {
			stage.ObservationRequired = datatypes.NewJSONSlice(input.ObservationRequired)
		}
		template.Stages = append(template.Stages, stage)
	}

	if err := s.repo.Create(template); err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}
	return template, nil
}

// Get retrieves a template with its stages
func (s *TemplateService) Get(id uuid.UUID) (*models.GrowthTemplate, error) {
	template, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return template, nil
}

// List retrieves templates, optionally only published ones
func (s *TemplateService) List(publishedOnly bool, limit, offset int) ([]models.GrowthTemplate, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(publishedOnly, limit, offset)
}

// Delete removes a template. Notebooks referencing it keep their stage
// tracking and are skipped by stage logic that no longer finds a matching
// stage definition.
func (s *TemplateService) Delete(id uuid.UUID) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTemplateNotFound
		}
		return fmt.Errorf("failed to delete template: %w", err)
	}
	return nil
}

func validateStageTimeline(stages []StageInput) error {
	for i, stage := range stages {
		if stage.DayEnd < stage.DayStart {
			return apperrors.ErrInvalidStageDayRange
		}
		if i == 0 {
			continue
		}
		prev := stages[i-1]
		if stage.StageNumber <= prev.StageNumber {
			return apperrors.NewValidationError("stages", "stage numbers must be strictly ascending")
		}
		if stage.DayStart != prev.DayEnd+1 {
			return apperrors.ErrNonContiguousStages
		}
	}
	return nil
}
