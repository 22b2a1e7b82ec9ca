package repository_test

import (
	"testing"
	"time"

	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/database/models"
	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/repository"
	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newNotification(userID, notebookID uuid.UUID, kind models.NotificationKind, createdAt time.Time) *models.Notification {
	return &models.Notification{
		BaseModel:  models.BaseModel{CreatedAt: createdAt, UpdatedAt: createdAt},
		UserID:     userID,
		NotebookID: notebookID,
		Kind:       kind,
		Payload:    datatypes.JSONMap{"notebook_name": "Test Notebook"},
	}
}

func TestNotificationExistsForWindow(t *testing.T) {
	db := testutils.NewTestDB(t)
	notifications := repository.NewNotificationRepository(db)

	userID := uuid.New()
	notebookID := uuid.New()
	dayStart := time.Date(2025, 6, 15, 0, 5, 0, 0, time.UTC)

	created := newNotification(userID, notebookID, models.NotificationKindObservationRequired, dayStart.Add(8*time.Hour))
	require.NoError(t, notifications.Create(created))

	testCases := []struct {
		name       string
		notebookID uuid.UUID
		kind       models.NotificationKind
		from       time.Time
		to         time.Time
		expected   bool
	}{
		{
			name:       "inside the window",
			notebookID: notebookID,
			kind:       models.NotificationKindObservationRequired,
			from:       dayStart,
			to:         dayStart.AddDate(0, 0, 1),
			expected:   true,
		},
		{
			name:       "different kind",
			notebookID: notebookID,
			kind:       models.NotificationKindDailyReminder,
			from:       dayStart,
			to:         dayStart.AddDate(0, 0, 1),
			expected:   false,
		},
		{
			name:       "different notebook",
			notebookID: uuid.New(),
			kind:       models.NotificationKindObservationRequired,
			from:       dayStart,
			to:         dayStart.AddDate(0, 0, 1),
			expected:   false,
		},
		{
			name:       "next day's window",
			notebookID: notebookID,
			kind:       models.NotificationKindObservationRequired,
			from:       dayStart.AddDate(0, 0, 1),
			to:         dayStart.AddDate(0, 0, 2),
			expected:   false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			exists, err := notifications.ExistsForWindow(tc.notebookID, tc.kind, tc.from, tc.to)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, exists)
		})
	}
}

func TestNotificationListByUser(t *testing.T) {
	db := testutils.NewTestDB(t)
	notifications := repository.NewNotificationRepository(db)

	userID := uuid.New()
	base := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		n := newNotification(userID, uuid.New(), models.NotificationKindDailyReminder, base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, notifications.Create(n))
	}
	other := newNotification(uuid.New(), uuid.New(), models.NotificationKindDailyReminder, base)
	require.NoError(t, notifications.Create(other))

	listed, total, err := notifications.ListByUser(userID, 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, listed, 2)
	assert.True(t, listed[0].CreatedAt.After(listed[1].CreatedAt), "newest first")
	assert.Equal(t, "Test Notebook", listed[0].Payload["notebook_name"])
}

func TestNotificationMarkRead(t *testing.T) {
	db := testutils.NewTestDB(t)
	notifications := repository.NewNotificationRepository(db)

	n := newNotification(uuid.New(), uuid.New(), models.NotificationKindDailyTasksGenerated, time.Now())
	require.NoError(t, notifications.Create(n))
	require.False(t, n.IsRead)

	require.NoError(t, notifications.MarkRead(n.ID))

	listed, _, err := notifications.ListByUser(n.UserID, 10, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.True(t, listed[0].IsRead)

	assert.ErrorIs(t, notifications.MarkRead(uuid.New()), gorm.ErrRecordNotFound)
}
