package service

import (
	"errors"
	"fmt"

	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/clock"
	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/database/models"
	apperrors "github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/errors"
	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/logger"
	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// mutateRetries bounds how often a read-modify-write cycle is retried when a
// concurrent update bumps the notebook version first.
const mutateRetries = 3

// NotebookService handles business logic for cultivation notebooks
type NotebookService struct {
	repo         *repository.NotebookRepository
	templateRepo *repository.TemplateRepository
	clock        *clock.Service
	validator    *validator.Validate
	log          *logger.Logger
}

// NewNotebookService creates a new notebook service
func NewNotebookService(repo *repository.NotebookRepository, templateRepo *repository.TemplateRepository, clk *clock.Service, validator *validator.Validate) *NotebookService {
	return &NotebookService{
		repo:         repo,
		templateRepo: templateRepo,
		clock:        clk,
		validator:    validator,
		log:          logger.New(),
	}
}

// CreateNotebookRequest represents the request to create a notebook
type CreateNotebookRequest struct {
	UserID      uuid.UUID  `json:"user_id" validate:"required"`
	TemplateID  *uuid.UUID `json:"template_id,omitempty"`
	Name        string     `json:"name" validate:"required,min=1,max=100"`
	PlantedDate string     `json:"planted_date,omitempty"`
}

// TransitionResult reports the outcome of a stage transition attempt
type TransitionResult struct {
	Advanced bool             `json:"advanced"`
	Notebook *models.Notebook `json:"notebook"`
}

// Create creates a new notebook. The planted date defaults to today when
// omitted; when a template is referenced it must exist, and the first stage's
// tracking entry is opened immediately.
func (s *NotebookService) Create(req *CreateNotebookRequest) (*models.Notebook, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	plantedDate := s.clock.Today()
	if req.PlantedDate != "" {
		parsed, err := s.clock.ParseDate(req.PlantedDate)
		if err != nil {
			return nil, apperrors.ErrInvalidPlantedDate
		}
		plantedDate = parsed
	}

	notebook := &models.Notebook{
		UserID:       req.UserID,
		Name:         req.Name,
		PlantedDate:  plantedDate,
		CurrentStage: 1,
		Status:       models.NotebookStatusActive,
	}

	if req.TemplateID != nil {
		template, err := s.templateRepo.GetByID(*req.TemplateID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrTemplateNotFound
			}
			return nil, fmt.Errorf("failed to load template: %w", err)
		}
		notebook.TemplateID = &template.ID
		if first := template.StageByNumber(1); first != nil {
			notebook.StagesTracking = append(notebook.StagesTracking, models.StageTracking{
				StageNumber: 1,
				StageName:   first.Name,
				Status:      models.StageStatusActive,
				StartedAt:   s.clock.Now(),
			})
		}
	}

	if err := s.repo.Create(notebook); err != nil {
		return nil, fmt.Errorf("failed to create notebook: %w", err)
	}
	return notebook, nil
}

// Get retrieves a notebook with its template
func (s *NotebookService) Get(id uuid.UUID) (*models.Notebook, error) {
	notebook, err := s.repo.GetByIDWithTemplate(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotebookNotFound
		}
		return nil, fmt.Errorf("failed to get notebook: %w", err)
	}
	return notebook, nil
}

// CurrentDay returns the notebook's 1-based current day
func (s *NotebookService) CurrentDay(notebook *models.Notebook) int {
	return s.clock.CurrentDay(notebook.PlantedDate)
}

// List retrieves a user's notebooks
func (s *NotebookService) List(userID uuid.UUID, limit, offset int) ([]models.Notebook, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListByUser(userID, limit, offset)
}

// Archive marks a notebook as archived
func (s *NotebookService) Archive(id uuid.UUID) error {
	if err := s.repo.Archive(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotebookNotFound
		}
		return fmt.Errorf("failed to archive notebook: %w", err)
	}
	return nil
}

// SoftDelete marks a notebook as deleted without removing its data
func (s *NotebookService) SoftDelete(id uuid.UUID) error {
	if err := s.repo.SoftDelete(id, s.clock.Now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotebookNotFound
		}
		return fmt.Errorf("failed to delete notebook: %w", err)
	}
	return nil
}

// HardDelete irreversibly removes a notebook
func (s *NotebookService) HardDelete(id uuid.UUID) error {
	if err := s.repo.HardDelete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotebookNotFound
		}
		return fmt.Errorf("failed to hard-delete notebook: %w", err)
	}
	return nil
}

// ComputeProgress recomputes and persists the notebook's completion
// percentage, returning the new value.
func (s *NotebookService) ComputeProgress(id uuid.UUID) (int, error) {
	progress := 0
	err := s.mutate(id, func(notebook *models.Notebook, template *models.GrowthTemplate) error {
		progress = s.applyProgress(notebook, template)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return progress, nil
}

// AttemptStageTransition decides whether the notebook may advance to the next
// stage and applies the transition when the gate is open. A blocked required
// observation is not an error: the notebook stays on its stage with
// pending_transition set, and the result reports advanced=false.
func (s *NotebookService) AttemptStageTransition(id uuid.UUID) (*TransitionResult, error) {
	result := &TransitionResult{}
	err := s.mutate(id, func(notebook *models.Notebook, template *models.GrowthTemplate) error {
		advanced, err := s.applyTransition(notebook, template)
		if err != nil {
			return err
		}
		result.Advanced = advanced
		result.Notebook = notebook
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// applyTransition evaluates the stage gate against the loaded notebook and
// mutates it in place on success. Callers persist the notebook afterwards.
func (s *NotebookService) applyTransition(notebook *models.Notebook, template *models.GrowthTemplate) (bool, error) {
	if notebook.Status != models.NotebookStatusActive {
		return false, apperrors.ErrNotebookNotActive
	}
	if template == nil {
		return false, apperrors.ErrNotebookHasNoTemplate
	}

	stage := template.StageByNumber(notebook.CurrentStage)
	if stage == nil {
		return false, apperrors.ErrStageNotInTemplate
	}

	currentDay := s.clock.CurrentDay(notebook.PlantedDate)
	if currentDay < stage.DayEnd {
		return false, nil
	}

	tracking := s.ensureCurrentTracking(notebook, stage)

	if !ObservationsSatisfied(stage, tracking) {
		now := s.clock.Now()
		tracking.PendingTransition = true
		tracking.TransitionDate = &now
		if currentDay > stage.DayEnd {
			// The stage overran its scheduled window while the gate was shut.
			tracking.Status = models.StageStatusOverdue
		}
		return false, nil
	}

	now := s.clock.Now()
	tracking.Status = models.StageStatusCompleted
	tracking.CompletedAt = &now
	tracking.PendingTransition = false
	tracking.TransitionDate = nil

	notebook.CurrentStage++
	if next := template.StageByNumber(notebook.CurrentStage); next != nil {
		if existing := notebook.TrackingFor(next.StageNumber); existing != nil {
			existing.Status = models.StageStatusActive
			existing.StartedAt = now
			existing.CompletedAt = nil
		} else {
			notebook.StagesTracking = append(notebook.StagesTracking, models.StageTracking{
				StageNumber: next.StageNumber,
				StageName:   next.Name,
				Status:      models.StageStatusActive,
				StartedAt:   now,
			})
		}
	}
	// When no next stage exists the pointer moves past the template's last
	// stage and no tracking entry is current: the record is finished.

	s.applyProgress(notebook, template)
	return true, nil
}

// applyProgress recomputes the notebook's progress in place. Progress is
// monotonically non-decreasing in the normal flow; a drop signals a bug and
// is logged, not corrected.
func (s *NotebookService) applyProgress(notebook *models.Notebook, template *models.GrowthTemplate) int {
	progress := ComputeProgress(template, notebook)
	if progress < notebook.Progress {
		s.log.WithFields(map[string]interface{}{
			"notebook_id":  notebook.ID,
			"old_progress": notebook.Progress,
			"new_progress": progress,
		}).Warn("notebook progress decreased")
	}
	notebook.Progress = progress
	return progress
}

// mutate runs a read-modify-write cycle against the notebook. The write is
// guarded by the notebook's version; when a concurrent update wins, the
// notebook is re-read fresh and the mutation re-evaluated.
func (s *NotebookService) mutate(id uuid.UUID, fn func(notebook *models.Notebook, template *models.GrowthTemplate) error) error {
	var lastErr error
	for attempt := 0; attempt < mutateRetries; attempt++ {
		notebook, err := s.repo.GetByIDWithTemplate(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotebookNotFound
			}
			return fmt.Errorf("failed to get notebook: %w", err)
		}

		if err := fn(notebook, notebook.Template); err != nil {
			return err
		}

		err = s.repo.Update(notebook)
		if err == nil {
			return nil
		}
		if !apperrors.IsConflict(err) {
			return fmt.Errorf("failed to update notebook: %w", err)
		}
		lastErr = err
	}
	return lastErr
}
