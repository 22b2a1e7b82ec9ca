package service

import (
	"fmt"

	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/database/models"
	apperrors "github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/errors"

	"github.com/google/uuid"
)

// RecordObservationRequest represents the request to record an observation
type RecordObservationRequest struct {
	Key   string `json:"key" validate:"required,min=1,max=50"`
	Value bool   `json:"value"`
}

// RecordDailyLogRequest represents the request to record a day's progress
type RecordDailyLogRequest struct {
	Date          string `json:"date,omitempty"`
	DailyProgress int    `json:"daily_progress" validate:"min=0,max=100"`
}

// RecordObservation records a boolean observation on the notebook's current
// stage. At most one value exists per key; recording the same key again
// overwrites the previous value.
func (s *NotebookService) RecordObservation(id uuid.UUID, req *RecordObservationRequest) (*models.Notebook, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var updated *models.Notebook
	err := s.mutate(id, func(notebook *models.Notebook, template *models.GrowthTemplate) error {
		if notebook.Status != models.NotebookStatusActive {
			return apperrors.ErrNotebookNotActive
		}
		if template == nil {
			return apperrors.ErrNotebookHasNoTemplate
		}

		stage := template.StageByNumber(notebook.CurrentStage)
		if stage == nil {
			return apperrors.ErrStageNotInTemplate
		}

		// Only keys the stage actually asks for are accepted; anything else
		// is a malformed input, rejected rather than silently stored.
		if len(stage.ObservationRequired) > 0 {
			known := false
			for _, requirement := range stage.ObservationRequired {
				if requirement.Key == req.Key {
					known = true
					break
				}
			}
			if !known {
				return apperrors.ErrInvalidObservationKey
			}
		}

		tracking := s.ensureCurrentTracking(notebook, stage)
		now := s.clock.Now()
		for i := range tracking.Observations {
			if tracking.Observations[i].Key == req.Key {
				tracking.Observations[i].Value = req.Value
				tracking.Observations[i].ObservedAt = now
				updated = notebook
				return nil
			}
		}
		tracking.Observations = append(tracking.Observations, models.Observation{
			Key:        req.Key,
			Value:      req.Value,
			ObservedAt: now,
		})
		updated = notebook
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RecordDailyLog records the day's estimated progress on the current stage.
// At most one entry exists per civil date; a second write for the same date
// overwrites it. Progress is recomputed in the same write.
func (s *NotebookService) RecordDailyLog(id uuid.UUID, req *RecordDailyLogRequest) (*models.Notebook, error) {
	if req.DailyProgress < 0 || req.DailyProgress > 100 {
		return nil, apperrors.ErrInvalidDailyProgress
	}

	logDate := s.clock.Today()
	if req.Date != "" {
		parsed, err := s.clock.ParseDate(req.Date)
		if err != nil {
			return nil, apperrors.NewValidationError("date", "date must be a valid YYYY-MM-DD date")
		}
		logDate = parsed
	}

	var updated *models.Notebook
	err := s.mutate(id, func(notebook *models.Notebook, template *models.GrowthTemplate) error {
		if notebook.Status != models.NotebookStatusActive {
			return apperrors.ErrNotebookNotActive
		}
		if template == nil {
			return apperrors.ErrNotebookHasNoTemplate
		}

		stage := template.StageByNumber(notebook.CurrentStage)
		if stage == nil {
			return apperrors.ErrStageNotInTemplate
		}

		tracking := s.ensureCurrentTracking(notebook, stage)
		replaced := false
		for i := range tracking.DailyLogs {
			if s.clock.SameDay(tracking.DailyLogs[i].Date, logDate) {
				tracking.DailyLogs[i].DailyProgress = req.DailyProgress
				tracking.DailyLogs[i].Date = logDate
				replaced = true
				break
			}
		}
		if !replaced {
			tracking.DailyLogs = append(tracking.DailyLogs, models.DailyLog{
				Date:          logDate,
				DailyProgress: req.DailyProgress,
			})
		}

		s.applyProgress(notebook, template)
		updated = notebook
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// CompleteChecklistItem checks off one generated task. The item's title is
// recorded on the current stage's completed tasks.
func (s *NotebookService) CompleteChecklistItem(id uuid.UUID, itemID uuid.UUID) (*models.Notebook, error) {
	var updated *models.Notebook
	err := s.mutate(id, func(notebook *models.Notebook, template *models.GrowthTemplate) error {
		if notebook.Status != models.NotebookStatusActive {
			return apperrors.ErrNotebookNotActive
		}

		var item *models.ChecklistItem
		for i := range notebook.DailyChecklist {
			if notebook.DailyChecklist[i].ID == itemID {
				item = &notebook.DailyChecklist[i]
				break
			}
		}
		if item == nil {
			return apperrors.ErrChecklistItemNotFound
		}

		if item.Status != models.ChecklistItemStatusCompleted {
			now := s.clock.Now()
			item.Status = models.ChecklistItemStatusCompleted
			item.CompletedAt = &now

			if tracking := notebook.CurrentTracking(); tracking != nil {
				tracking.CompletedTasks = append(tracking.CompletedTasks, item.Title)
			}
		}

		updated = notebook
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// GenerateDailyChecklist builds today's task items from the current stage of
// the template. Yesterday's unfinished items are marked overdue and summarized
// on the stage tracking entry. Generating twice on the same civil day is a
// no-op, so the operation is safe to repeat.
func (s *NotebookService) GenerateDailyChecklist(id uuid.UUID) (*models.Notebook, error) {
	var updated *models.Notebook
	err := s.mutate(id, func(notebook *models.Notebook, template *models.GrowthTemplate) error {
		if notebook.Status != models.NotebookStatusActive {
			return apperrors.ErrNotebookNotActive
		}
		if template == nil {
			return apperrors.ErrNotebookHasNoTemplate
		}

		stage := template.StageByNumber(notebook.CurrentStage)
		if stage == nil {
			return apperrors.ErrStageNotInTemplate
		}

		now := s.clock.Now()

		if notebook.LastChecklistGeneratedAt != nil && s.clock.SameDay(*notebook.LastChecklistGeneratedAt, now) {
			updated = notebook
			return nil
		}

		tracking := s.ensureCurrentTracking(notebook, stage)

		// Expire pending items from earlier civil days before adding today's.
		var overdueTitles []string
		for i := range notebook.DailyChecklist {
			item := &notebook.DailyChecklist[i]
			if item.Status == models.ChecklistItemStatusPending && s.clock.DaysBetween(item.CreatedAt, now) > 0 {
				item.Status = models.ChecklistItemStatusOverdue
				overdueTitles = append(overdueTitles, item.Title)
			}
		}
		if len(overdueTitles) > 0 {
			tracking.OverdueTasks = append(tracking.OverdueTasks, overdueTitles...)
			tracking.OverdueSummary = fmt.Sprintf("%d tasks were not completed on time", len(tracking.OverdueTasks))
		}

		for _, title := range s.checklistTitles(stage) {
			notebook.DailyChecklist = append(notebook.DailyChecklist, models.ChecklistItem{
				ID:        uuid.New(),
				Title:     title,
				Status:    models.ChecklistItemStatusPending,
				CreatedAt: now,
			})
		}

		notebook.LastChecklistGeneratedAt = &now
		updated = notebook
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// checklistTitles derives the day's tasks for a stage: the standard care
// tasks plus one item per still-required observation.
func (s *NotebookService) checklistTitles(stage *models.TemplateStage) []string {
	titles := []string{
		"Water the plant",
		"Inspect leaves and stems for pests",
		fmt.Sprintf("Log today's progress for the %s stage", stage.Name),
	}
	for _, req := range stage.ObservationRequired {
		titles = append(titles, fmt.Sprintf("Record observation: %s", req.Label))
	}
	return titles
}

// ensureCurrentTracking returns the current stage's tracking entry, opening
// one when the stage has none yet.
func (s *NotebookService) ensureCurrentTracking(notebook *models.Notebook, stage *models.TemplateStage) *models.StageTracking {
	if tracking := notebook.CurrentTracking(); tracking != nil {
		return tracking
	}
	notebook.StagesTracking = append(notebook.StagesTracking, models.StageTracking{
		StageNumber: notebook.CurrentStage,
		StageName:   stage.Name,
		Status:      models.StageStatusActive,
		StartedAt:   s.clock.Now(),
	})
	return notebook.CurrentTracking()
}
