package repository_test

import (
	"testing"
	"time"

	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/database/models"
	apperrors "github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/errors"
	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/repository"
	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func plantedOn(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 5, 0, 0, time.UTC)
}

func TestNotebookCreateAndGet(t *testing.T) {
	db := testutils.NewTestDB(t)
	templates := repository.NewTemplateRepository(db)
	notebooks := repository.NewNotebookRepository(db)

	template := testutils.NewTemplateFactory().Create()
	require.NoError(t, templates.Create(template))

	notebook := testutils.NewNotebookFactory().Create(template, plantedOn(2025, 6, 1))
	notebook.Template = nil
	require.NoError(t, notebooks.Create(notebook))

	stored, err := notebooks.GetByID(notebook.ID)
	require.NoError(t, err)
	assert.Equal(t, notebook.Name, stored.Name)
	assert.Equal(t, 1, stored.CurrentStage)
	require.Len(t, stored.StagesTracking, 1)
	assert.Equal(t, models.StageStatusActive, stored.StagesTracking[0].Status)

	_, err = notebooks.GetByID(uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestNotebookGetWithTemplatePreloadsOrderedStages(t *testing.T) {
	db := testutils.NewTestDB(t)
	templates := repository.NewTemplateRepository(db)
	notebooks := repository.NewNotebookRepository(db)

	template := testutils.NewTemplateFactory().Create()
	// Shuffle insertion order; reads must still come back in stage order.
	template.Stages[0], template.Stages[2] = template.Stages[2], template.Stages[0]
	require.NoError(t, templates.Create(template))

	notebook := testutils.NewNotebookFactory().Create(template, plantedOn(2025, 6, 1))
	notebook.Template = nil
	notebook.StagesTracking = nil
	require.NoError(t, notebooks.Create(notebook))

	stored, err := notebooks.GetByIDWithTemplate(notebook.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Template)
	require.Len(t, stored.Template.Stages, 3)
	for i, stage := range stored.Template.Stages {
		assert.Equal(t, i+1, stage.StageNumber)
	}
}

func TestNotebookUpdateDetectsConcurrentWrite(t *testing.T) {
	db := testutils.NewTestDB(t)
	notebooks := repository.NewNotebookRepository(db)

	notebook := testutils.NewNotebookFactory().Create(nil, plantedOn(2025, 6, 1))
	require.NoError(t, notebooks.Create(notebook))

	// Two readers load the same version.
	first, err := notebooks.GetByID(notebook.ID)
	require.NoError(t, err)
	second, err := notebooks.GetByID(notebook.ID)
	require.NoError(t, err)

	first.Name = "First Writer"
	require.NoError(t, notebooks.Update(first))

	second.Name = "Second Writer"
	err = notebooks.Update(second)
	assert.ErrorIs(t, err, apperrors.ErrStaleNotebook)

	stored, err := notebooks.GetByID(notebook.ID)
	require.NoError(t, err)
	assert.Equal(t, "First Writer", stored.Name, "the losing write must not land")
	assert.Equal(t, first.Version, stored.Version)
}

func TestNotebookUpdateRetriesAfterReread(t *testing.T) {
	db := testutils.NewTestDB(t)
	notebooks := repository.NewNotebookRepository(db)

	notebook := testutils.NewNotebookFactory().Create(nil, plantedOn(2025, 6, 1))
	require.NoError(t, notebooks.Create(notebook))

	stale, err := notebooks.GetByID(notebook.ID)
	require.NoError(t, err)

	winner, err := notebooks.GetByID(notebook.ID)
	require.NoError(t, err)
	winner.Progress = 10
	require.NoError(t, notebooks.Update(winner))

	stale.Progress = 20
	require.ErrorIs(t, notebooks.Update(stale), apperrors.ErrStaleNotebook)

	// After a fresh read the same mutation goes through.
	fresh, err := notebooks.GetByID(notebook.ID)
	require.NoError(t, err)
	fresh.Progress = 20
	require.NoError(t, notebooks.Update(fresh))

	stored, err := notebooks.GetByID(notebook.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, stored.Progress)
}

func TestNotebookListByUserExcludesDeleted(t *testing.T) {
	db := testutils.NewTestDB(t)
	notebooks := repository.NewNotebookRepository(db)

	userID := uuid.New()
	factory := testutils.NewNotebookFactory()

	active := factory.Create(nil, plantedOn(2025, 6, 1))
	active.UserID = userID
	require.NoError(t, notebooks.Create(active))

	archived := factory.Create(nil, plantedOn(2025, 6, 2))
	archived.UserID = userID
	require.NoError(t, notebooks.Create(archived))
	require.NoError(t, notebooks.Archive(archived.ID))

	deleted := factory.Create(nil, plantedOn(2025, 6, 3))
	deleted.UserID = userID
	require.NoError(t, notebooks.Create(deleted))
	require.NoError(t, notebooks.SoftDelete(deleted.ID, time.Now()))

	other := factory.Create(nil, plantedOn(2025, 6, 4))
	require.NoError(t, notebooks.Create(other))

	listed, total, err := notebooks.ListByUser(userID, 20, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, listed, 2)
	for _, n := range listed {
		assert.NotEqual(t, models.NotebookStatusDeleted, n.Status)
		assert.Equal(t, userID, n.UserID)
	}
}

func TestNotebookListActiveWithTemplate(t *testing.T) {
	db := testutils.NewTestDB(t)
	templates := repository.NewTemplateRepository(db)
	notebooks := repository.NewNotebookRepository(db)

	template := testutils.NewTemplateFactory().Create()
	require.NoError(t, templates.Create(template))

	factory := testutils.NewNotebookFactory()

	withTemplate := factory.Create(template, plantedOn(2025, 6, 1))
	withTemplate.Template = nil
	require.NoError(t, notebooks.Create(withTemplate))

	templateless := factory.Create(nil, plantedOn(2025, 6, 1))
	require.NoError(t, notebooks.Create(templateless))

	archived := factory.Create(template, plantedOn(2025, 6, 1))
	archived.Template = nil
	require.NoError(t, notebooks.Create(archived))
	require.NoError(t, notebooks.Archive(archived.ID))

	listed, err := notebooks.ListActiveWithTemplate()
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, withTemplate.ID, listed[0].ID)
	require.NotNil(t, listed[0].Template)
	assert.Len(t, listed[0].Template.Stages, 3)
}

func TestNotebookSoftDeleteStampsDeletedAt(t *testing.T) {
	db := testutils.NewTestDB(t)
	notebooks := repository.NewNotebookRepository(db)

	notebook := testutils.NewNotebookFactory().Create(nil, plantedOn(2025, 6, 1))
	require.NoError(t, notebooks.Create(notebook))

	deletedAt := time.Now()
	require.NoError(t, notebooks.SoftDelete(notebook.ID, deletedAt))

	stored, err := notebooks.GetByID(notebook.ID)
	require.NoError(t, err)
	assert.Equal(t, models.NotebookStatusDeleted, stored.Status)
	require.NotNil(t, stored.DeletedAt)

	assert.ErrorIs(t, notebooks.SoftDelete(uuid.New(), deletedAt), gorm.ErrRecordNotFound)
}

func TestNotebookHardDelete(t *testing.T) {
	db := testutils.NewTestDB(t)
	notebooks := repository.NewNotebookRepository(db)

	notebook := testutils.NewNotebookFactory().Create(nil, plantedOn(2025, 6, 1))
	require.NoError(t, notebooks.Create(notebook))

	require.NoError(t, notebooks.HardDelete(notebook.ID))

	_, err := notebooks.GetByID(notebook.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.ErrorIs(t, notebooks.HardDelete(notebook.ID), gorm.ErrRecordNotFound)
}
