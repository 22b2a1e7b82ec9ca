package repository

import (
	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TemplateRepository handles database operations for growth templates
type TemplateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository creates a new template repository
func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// Create creates a new growth template with its stages
func (r *TemplateRepository) Create(template *models.GrowthTemplate) error {
	return r.db.Create(template).Error
}

// GetByID retrieves a template with its stages in stage order
func (r *TemplateRepository) GetByID(id uuid.UUID) (*models.GrowthTemplate, error) {
	var template models.GrowthTemplate
	err := r.db.
		Preload("Stages", func(db *gorm.DB) *gorm.DB {
			return db.Order("stage_number ASC")
		}).
		First(&template, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// List retrieves templates, optionally only published ones
func (r *TemplateRepository) List(publishedOnly bool, limit, offset int) ([]models.GrowthTemplate, int64, error) {
	var templates []models.GrowthTemplate
	var total int64

	query := r.db.Model(&models.GrowthTemplate{})
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Stages", func(db *gorm.DB) *gorm.DB {
			return db.Order("stage_number ASC")
		}).
		Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&templates).Error
	return templates, total, err
}

// Delete removes a template and, via the FK constraint, its stages
func (r *TemplateRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.GrowthTemplate{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
