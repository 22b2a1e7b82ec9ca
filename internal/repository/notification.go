package repository

import (
	"time"

	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationRepository handles database operations for notifications
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create creates a new notification
func (r *NotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// ExistsForWindow reports whether a notification of the given kind already
// exists for the notebook within [from, to). The daily jobs pass a civil-day
// window, which makes them idempotent per (record, day, kind) without a
// separate checkpoint table.
func (r *NotificationRepository) ExistsForWindow(notebookID uuid.UUID, kind models.NotificationKind, from, to time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("notebook_id = ? AND kind = ? AND created_at >= ? AND created_at < ?", notebookID, kind, from, to).
		Count(&count).Error
	return count > 0, err
}

// ListByUser retrieves a user's notifications, newest first
func (r *NotificationRepository) ListByUser(userID uuid.UUID, limit, offset int) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	var total int64

	query := r.db.Model(&models.Notification{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&notifications).Error
	return notifications, total, err
}

// MarkRead marks a notification as read
func (r *NotificationRepository) MarkRead(id uuid.UUID) error {
	result := r.db.Model(&models.Notification{}).
		Where("id = ?", id).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
