package service

import (
	"errors"
	"fmt"

	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/database/models"
	apperrors "github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/errors"
	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationService exposes a user's notification feed
type NotificationService struct {
	repo *repository.NotificationRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(repo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// List retrieves a user's notifications, newest first
func (s *NotificationService) List(userID uuid.UUID, limit, offset int) ([]models.Notification, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListByUser(userID, limit, offset)
}

// MarkRead marks a notification as read
func (s *NotificationService) MarkRead(id uuid.UUID) error {
	if err := s.repo.MarkRead(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotificationNotFound
		}
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}
