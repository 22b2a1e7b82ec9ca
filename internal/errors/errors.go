package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ConflictError represents an update that lost against a concurrent write
type ConflictError struct {
	Entity string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s was modified concurrently", e.Entity)
}

// Is enables errors.Is() comparison for ConflictError
func (e *ConflictError) Is(target error) bool {
	t, ok := target.(*ConflictError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// Entity Not Found Errors
var (
	ErrNotebookNotFound      = &NotFoundError{Entity: "notebook"}
	ErrTemplateNotFound      = &NotFoundError{Entity: "growth template"}
	ErrChecklistItemNotFound = &NotFoundError{Entity: "checklist item"}
	ErrNotificationNotFound  = &NotFoundError{Entity: "notification"}
)

// Business Logic Errors
var (
	ErrNotebookHasNoTemplate = errors.New("notebook has no growth template assigned")
	ErrStageNotInTemplate    = errors.New("current stage has no matching stage definition in the template")
	ErrNotebookNotActive     = errors.New("notebook is not active")
	ErrStaleNotebook         = &ConflictError{Entity: "notebook"}
)

// Validation Errors
var (
	ErrInvalidObservationKey = &ValidationError{Field: "key", Message: "observation key is not required by the current stage"}
	ErrInvalidDailyProgress  = &ValidationError{Field: "daily_progress", Message: "daily progress must be between 0 and 100"}
	ErrInvalidStageDayRange  = &ValidationError{Field: "day_range", Message: "day_end must be greater than or equal to day_start"}
	ErrNonContiguousStages   = &ValidationError{Field: "stages", Message: "stage day ranges must be contiguous and non-overlapping"}
	ErrInvalidPlantedDate    = &ValidationError{Field: "planted_date", Message: "planted date must be a valid YYYY-MM-DD date"}
)

// Helper Functions

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsConflict checks if an error is a ConflictError
func IsConflict(err error) bool {
	var conflictErr *ConflictError
	return errors.As(err, &conflictErr)
}

// NewNotFoundError creates a new NotFoundError for a custom entity
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
