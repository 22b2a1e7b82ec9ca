package repository

import (
	"time"

	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/database/models"
	apperrors "github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotebookRepository handles database operations for cultivation notebooks
type NotebookRepository struct {
	db *gorm.DB
}

// NewNotebookRepository creates a new notebook repository
func NewNotebookRepository(db *gorm.DB) *NotebookRepository {
	return &NotebookRepository{db: db}
}

// Create creates a new notebook
func (r *NotebookRepository) Create(notebook *models.Notebook) error {
	return r.db.Create(notebook).Error
}

// GetByID retrieves a notebook by ID
func (r *NotebookRepository) GetByID(id uuid.UUID) (*models.Notebook, error) {
	var notebook models.Notebook
	err := r.db.First(&notebook, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &notebook, nil
}

// GetByIDWithTemplate retrieves a notebook with its template and stages
func (r *NotebookRepository) GetByIDWithTemplate(id uuid.UUID) (*models.Notebook, error) {
	var notebook models.Notebook
	err := r.db.
		Preload("Template.Stages", func(db *gorm.DB) *gorm.DB {
			return db.Order("stage_number ASC")
		}).
		Preload("Template").
		First(&notebook, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &notebook, nil
}

// ListByUser retrieves all non-deleted notebooks owned by a user
func (r *NotebookRepository) ListByUser(userID uuid.UUID, limit, offset int) ([]models.Notebook, int64, error) {
	var notebooks []models.Notebook
	var total int64

	query := r.db.Model(&models.Notebook{}).
		Where("user_id = ? AND status != ?", userID, models.NotebookStatusDeleted)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&notebooks).Error
	return notebooks, total, err
}

// ListActive retrieves all active notebooks. Used by the daily jobs to scan
// every record in flight.
func (r *NotebookRepository) ListActive() ([]models.Notebook, error) {
	var notebooks []models.Notebook
	err := r.db.Where("status = ?", models.NotebookStatusActive).
		Order("created_at ASC").
		Find(&notebooks).Error
	return notebooks, err
}

// ListActiveWithTemplate retrieves all active notebooks that have a template
// assigned, with template stages preloaded in stage order.
func (r *NotebookRepository) ListActiveWithTemplate() ([]models.Notebook, error) {
	var notebooks []models.Notebook
	err := r.db.
		Preload("Template.Stages", func(db *gorm.DB) *gorm.DB {
			return db.Order("stage_number ASC")
		}).
		Preload("Template").
		Where("status = ? AND template_id IS NOT NULL", models.NotebookStatusActive).
		Order("created_at ASC").
		Find(&notebooks).Error
	return notebooks, err
}

// Update persists a mutated notebook guarded by its version. The write only
// lands if no concurrent update has bumped the version since the notebook
// was read; otherwise ErrStaleNotebook is returned and the caller must
// re-read and retry.
func (r *NotebookRepository) Update(notebook *models.Notebook) error {
	readVersion := notebook.Version
	notebook.Version = readVersion + 1

	result := r.db.Model(&models.Notebook{}).
		Where("id = ? AND version = ?", notebook.ID, readVersion).
		Select("*").
		Omit("id", "created_at").
		Updates(notebook)
	if result.Error != nil {
		notebook.Version = readVersion
		return result.Error
	}
	if result.RowsAffected == 0 {
		notebook.Version = readVersion
		return apperrors.ErrStaleNotebook
	}
	return nil
}

// Archive marks a notebook as archived
func (r *NotebookRepository) Archive(id uuid.UUID) error {
	return r.setStatus(id, models.NotebookStatusArchived, nil)
}

// SoftDelete marks a notebook as deleted and stamps deleted_at
func (r *NotebookRepository) SoftDelete(id uuid.UUID, deletedAt time.Time) error {
	return r.setStatus(id, models.NotebookStatusDeleted, &deletedAt)
}

// HardDelete irreversibly removes a notebook row
func (r *NotebookRepository) HardDelete(id uuid.UUID) error {
	result := r.db.Delete(&models.Notebook{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *NotebookRepository) setStatus(id uuid.UUID, status models.NotebookStatus, deletedAt *time.Time) error {
	updates := map[string]interface{}{"status": status}
	if deletedAt != nil {
		updates["deleted_at"] = *deletedAt
	}
	result := r.db.Model(&models.Notebook{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
