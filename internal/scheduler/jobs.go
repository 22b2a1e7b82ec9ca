package scheduler

import (
	"context"
	"fmt"

	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/clock"
	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/database/models"
	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/logger"
	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/notifier"
	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/repository"
	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/service"
)

// Job names double as manual-trigger identifiers.
const (
	JobNameDailyTasks  = "daily_tasks_generated"
	JobNameObservation = "observation_required"
	JobNameReminder    = "daily_reminder"
)

// Deps bundles what every daily job needs: the record store to scan, the
// notification store for idempotency checks, the emitter, and the civil
// clock.
type Deps struct {
	Notebooks     *repository.NotebookRepository
	Notifications *repository.NotificationRepository
	Emitter       notifier.Emitter
	Clock         *clock.Service
}

// alreadyEmittedToday reports whether a notification of the kind was already
// created for the notebook within the current civil day. This is the only
// job state: re-running a job on the same day can never duplicate a
// notification. The window spans calendar midnights, not day-start markers,
// so a notification emitted before the 00:05 offset still counts for its day.
func (d *Deps) alreadyEmittedToday(notebook *models.Notebook, kind models.NotificationKind) (bool, error) {
	from, to := d.Clock.DayWindow(d.Clock.Now())
	return d.Notifications.ExistsForWindow(notebook.ID, kind, from, to)
}

// forEachNotebook processes records sequentially, isolating per-record
// failures: an error or panic while processing one record is logged with the
// record id and the scan continues. Cancellation is honoured between
// records, never mid-record.
func forEachNotebook(ctx context.Context, jobName string, notebooks []models.Notebook, fn func(notebook *models.Notebook) error) error {
	for i := range notebooks {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("scan cancelled after %d of %d records: %w", i, len(notebooks), err)
		}
		notebook := &notebooks[i]
		func() {
			log := logger.ForJob(jobName).WithField("notebook_id", notebook.ID)
			defer func() {
				if r := recover(); r != nil {
					log.Errorf("panic while processing record: %v", r)
				}
			}()
			if err := fn(notebook); err != nil {
				log.WithError(err).Error("failed to process record")
			}
		}()
	}
	return nil
}

// DailyTasksJob notifies owners whose daily checklist was generated today.
type DailyTasksJob struct {
	Deps
}

// NewDailyTasksJob creates the daily-tasks-generated job
func NewDailyTasksJob(deps Deps) *DailyTasksJob {
	return &DailyTasksJob{Deps: deps}
}

// Name returns the job's identifier
func (j *DailyTasksJob) Name() string { return JobNameDailyTasks }

// Run scans all active notebooks with a template and emits one
// daily_tasks_generated notification per record whose checklist was
// generated today and not yet announced.
func (j *DailyTasksJob) Run(ctx context.Context) error {
	notebooks, err := j.Notebooks.ListActiveWithTemplate()
	if err != nil {
		return fmt.Errorf("list active notebooks: %w", err)
	}

	return forEachNotebook(ctx, j.Name(), notebooks, func(notebook *models.Notebook) error {
		if notebook.LastChecklistGeneratedAt == nil || !j.Clock.SameDay(*notebook.LastChecklistGeneratedAt, j.Clock.Now()) {
			return nil
		}

		emitted, err := j.alreadyEmittedToday(notebook, models.NotificationKindDailyTasksGenerated)
		if err != nil {
			return err
		}
		if emitted {
			return nil
		}

		taskCount := 0
		for i := range notebook.DailyChecklist {
			if j.Clock.SameDay(notebook.DailyChecklist[i].CreatedAt, j.Clock.Now()) {
				taskCount++
			}
		}

		return j.Emitter.Emit(models.NotificationKindDailyTasksGenerated, notifier.Request{
			UserID:       notebook.UserID,
			NotebookID:   notebook.ID,
			NotebookName: notebook.Name,
			Fields: map[string]interface{}{
				"task_count": taskCount,
			},
		})
	})
}

// ObservationJob notifies owners whose stage reached its last scheduled day
// with required observations still unsatisfied. It never attempts the
// transition itself; it only surfaces the block.
type ObservationJob struct {
	Deps
}

// NewObservationJob creates the observation-required job
func NewObservationJob(deps Deps) *ObservationJob {
	return &ObservationJob{Deps: deps}
}

// Name returns the job's identifier
func (j *ObservationJob) Name() string { return JobNameObservation }

// Run scans all active notebooks with a template and emits one
// observation_required notification per record blocked at its stage's last
// day.
func (j *ObservationJob) Run(ctx context.Context) error {
	notebooks, err := j.Notebooks.ListActiveWithTemplate()
	if err != nil {
		return fmt.Errorf("list active notebooks: %w", err)
	}

	return forEachNotebook(ctx, j.Name(), notebooks, func(notebook *models.Notebook) error {
		if notebook.Template == nil {
			return nil
		}
		stage := notebook.Template.StageByNumber(notebook.CurrentStage)
		if stage == nil {
			// Template edits can orphan in-flight records; skip, don't crash.
			logger.ForJob(j.Name()).WithField("notebook_id", notebook.ID).
				Warnf("no stage definition for stage %d, skipping", notebook.CurrentStage)
			return nil
		}
		if len(stage.ObservationRequired) == 0 {
			return nil
		}
		if j.Clock.CurrentDay(notebook.PlantedDate) != stage.DayEnd {
			return nil
		}

		tracking := notebook.TrackingFor(notebook.CurrentStage)
		missing := service.MissingObservations(stage, tracking)
		if len(missing) == 0 {
			return nil
		}

		emitted, err := j.alreadyEmittedToday(notebook, models.NotificationKindObservationRequired)
		if err != nil {
			return err
		}
		if emitted {
			return nil
		}

		recordedKeys := []string{}
		if tracking != nil {
			recordedKeys = tracking.RecordedKeys()
		}

		return j.Emitter.Emit(models.NotificationKindObservationRequired, notifier.Request{
			UserID:       notebook.UserID,
			NotebookID:   notebook.ID,
			NotebookName: notebook.Name,
			Fields: map[string]interface{}{
				"stage_number":  stage.StageNumber,
				"stage_name":    stage.Name,
				"required_keys": stage.RequiredKeys(),
				"recorded_keys": recordedKeys,
				"missing_keys":  missing,
			},
		})
	})
}

// ReminderJob reminds owners about yesterday's unfinished checklist items.
type ReminderJob struct {
	Deps
}

// NewReminderJob creates the incomplete-task reminder job
func NewReminderJob(deps Deps) *ReminderJob {
	return &ReminderJob{Deps: deps}
}

// Name returns the job's identifier
func (j *ReminderJob) Name() string { return JobNameReminder }

// Run scans all active notebooks and emits one daily_reminder notification
// per record that still has incomplete checklist items from yesterday.
func (j *ReminderJob) Run(ctx context.Context) error {
	notebooks, err := j.Notebooks.ListActive()
	if err != nil {
		return fmt.Errorf("list active notebooks: %w", err)
	}

	yesterday := j.Clock.Today().AddDate(0, 0, -1)

	return forEachNotebook(ctx, j.Name(), notebooks, func(notebook *models.Notebook) error {
		incomplete := 0
		for i := range notebook.DailyChecklist {
			item := &notebook.DailyChecklist[i]
			if j.Clock.SameDay(item.CreatedAt, yesterday) && !item.IsCompleted() {
				incomplete++
			}
		}
		if incomplete == 0 {
			return nil
		}

		emitted, err := j.alreadyEmittedToday(notebook, models.NotificationKindDailyReminder)
		if err != nil {
			return err
		}
		if emitted {
			return nil
		}

		return j.Emitter.Emit(models.NotificationKindDailyReminder, notifier.Request{
			UserID:       notebook.UserID,
			NotebookID:   notebook.ID,
			NotebookName: notebook.Name,
			Fields: map[string]interface{}{
				"incomplete_count": incomplete,
			},
		})
	})
}
