package notifier_test

import (
	"testing"
	"time"

	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/clock"
	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/database/models"
	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/notifier"
	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/repository"
	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreEmitterPersistsRequest(t *testing.T) {
	db := testutils.NewTestDB(t)
	repo := repository.NewNotificationRepository(db)

	clk := clock.Default()
	now := time.Date(2025, 6, 15, 8, 0, 0, 0, clk.Location())
	clk = clk.WithNow(func() time.Time { return now })

	emitter := notifier.NewStoreEmitter(repo, clk)

	userID := uuid.New()
	notebookID := uuid.New()
	err := emitter.Emit(models.NotificationKindObservationRequired, notifier.Request{
		UserID:       userID,
		NotebookID:   notebookID,
		NotebookName: "Balcony Tomatoes",
		Fields: map[string]interface{}{
			"stage_name":   "Germination",
			"missing_keys": []string{"has_sprouted"},
		},
	})
	require.NoError(t, err)

	listed, total, err := repo.ListByUser(userID, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, listed, 1)

	stored := listed[0]
	assert.Equal(t, notebookID, stored.NotebookID)
	assert.Equal(t, models.NotificationKindObservationRequired, stored.Kind)
	assert.False(t, stored.IsRead)
	assert.Equal(t, "Balcony Tomatoes", stored.Payload["notebook_name"])
	assert.Equal(t, "Germination", stored.Payload["stage_name"])

	// Rows carry the civil clock's instant, which backs the per-day
	// idempotency windows.
	exists, err := repo.ExistsForWindow(notebookID, models.NotificationKindObservationRequired,
		clk.Today(), clk.Today().AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestStoreEmitterRejectsInvalidKind(t *testing.T) {
	db := testutils.NewTestDB(t)
	emitter := notifier.NewStoreEmitter(repository.NewNotificationRepository(db), clock.Default())

	err := emitter.Emit(models.NotificationKind("mystery"), notifier.Request{
		UserID:     uuid.New(),
		NotebookID: uuid.New(),
	})
	assert.Error(t, err)
}
