package models

// NotebookStatus defines the lifecycle states of a cultivation notebook
type NotebookStatus string

const (
	NotebookStatusActive   NotebookStatus = "active"
	NotebookStatusArchived NotebookStatus = "archived"
	NotebookStatusDeleted  NotebookStatus = "deleted"
)

// StageStatus defines the states of a single stage tracking entry
type StageStatus string

const (
	StageStatusActive    StageStatus = "active"
	StageStatusCompleted StageStatus = "completed"
	StageStatusOverdue   StageStatus = "overdue"
	StageStatusSkipped   StageStatus = "skipped"
)

// ChecklistItemStatus defines the states of a daily checklist item
type ChecklistItemStatus string

const (
	ChecklistItemStatusPending   ChecklistItemStatus = "pending"
	ChecklistItemStatusCompleted ChecklistItemStatus = "completed"
	ChecklistItemStatusOverdue   ChecklistItemStatus = "overdue"
	ChecklistItemStatusSkipped   ChecklistItemStatus = "skipped"
)

// NotificationKind defines the kinds of notifications the engine emits
type NotificationKind string

const (
	NotificationKindDailyTasksGenerated NotificationKind = "daily_tasks_generated"
	NotificationKindObservationRequired NotificationKind = "observation_required"
	NotificationKindDailyReminder       NotificationKind = "daily_reminder"
)

// IsValid checks if the NotebookStatus is valid
func (s NotebookStatus) IsValid() bool {
	switch s {
	case NotebookStatusActive, NotebookStatusArchived, NotebookStatusDeleted:
		return true
	}
	return false
}

// IsValid checks if the StageStatus is valid
func (s StageStatus) IsValid() bool {
	switch s {
	case StageStatusActive, StageStatusCompleted, StageStatusOverdue, StageStatusSkipped:
		return true
	}
	return false
}

// IsValid checks if the ChecklistItemStatus is valid
func (s ChecklistItemStatus) IsValid() bool {
	switch s {
	case ChecklistItemStatusPending, ChecklistItemStatusCompleted, ChecklistItemStatusOverdue, ChecklistItemStatusSkipped:
		return true
	}
	return false
}

// IsValid checks if the NotificationKind is valid
func (k NotificationKind) IsValid() bool {
	switch k {
	case NotificationKindDailyTasksGenerated, NotificationKindObservationRequired, NotificationKindDailyReminder:
		return true
	}
	return false
}
