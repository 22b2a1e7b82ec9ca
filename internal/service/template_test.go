package service_test

import (
	"testing"

	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/database/models"
	apperrors "github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/errors"
	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/repository"
	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/service"
	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/testutils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTemplateService(t *testing.T) *service.TemplateService {
	t.Helper()
	db := testutils.NewTestDB(t)
	return service.NewTemplateService(repository.NewTemplateRepository(db), validator.New())
}

func validTemplateRequest() *service.CreateTemplateRequest {
	return &service.CreateTemplateRequest{
		Name:        "Tomato Standard",
		PlantType:   "tomato",
		IsPublished: true,
		Stages: []service.StageInput{
			{StageNumber: 1, Name: "Germination", DayStart: 1, DayEnd: 10},
			{StageNumber: 2, Name: "Seedling", DayStart: 11, DayEnd: 20},
			{StageNumber: 3, Name: "Flowering", DayStart: 21, DayEnd: 30},
		},
	}
}

func TestCreateTemplate(t *testing.T) {
	svc := newTemplateService(t)

	req := validTemplateRequest()
	req.Stages[0].ObservationRequired = []models.ObservationRequirement{
		{Key: "has_sprouted", Label: "Sprouted"},
	}

	template, err := svc.Create(req)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, template.ID)
	require.Len(t, template.Stages, 3)
	assert.Equal(t, []string{"has_sprouted"}, template.Stages[0].RequiredKeys())

	stored, err := svc.Get(template.ID)
	require.NoError(t, err)
	require.Len(t, stored.Stages, 3)
	assert.Equal(t, "Germination", stored.Stages[0].Name)
	assert.Equal(t, 10, stored.Stages[0].DayEnd)
}

func TestCreateTemplateTimelineValidation(t *testing.T) {
	testCases := []struct {
		name     string
		mutate   func(req *service.CreateTemplateRequest)
		expected error
	}{
		{
			name: "day_end before day_start",
			mutate: func(req *service.CreateTemplateRequest) {
				req.Stages[1].DayEnd = 5
			},
			expected: apperrors.ErrInvalidStageDayRange,
		},
		{
			name: "gap between stages",
			mutate: func(req *service.CreateTemplateRequest) {
				req.Stages[2].DayStart = 25
			},
			expected: apperrors.ErrNonContiguousStages,
		},
		{
			name: "overlapping stages",
			mutate: func(req *service.CreateTemplateRequest) {
				req.Stages[1].DayStart = 8
				req.Stages[1].DayEnd = 20
			},
			expected: apperrors.ErrNonContiguousStages,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTemplateService(t)
			req := validTemplateRequest()
			tc.mutate(req)

			_, err := svc.Create(req)
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func TestCreateTemplateRejectsUnorderedStageNumbers(t *testing.T) {
	svc := newTemplateService(t)
	req := validTemplateRequest()
	req.Stages[1].StageNumber = 1

	_, err := svc.Create(req)
	assert.True(t, apperrors.IsValidation(err))
}

func TestCreateTemplateRequiresStages(t *testing.T) {
	svc := newTemplateService(t)

	_, err := svc.Create(&service.CreateTemplateRequest{Name: "Empty"})
	assert.Error(t, err)
}

func TestListTemplatesPublishedOnly(t *testing.T) {
	svc := newTemplateService(t)

	published := validTemplateRequest()
	_, err := svc.Create(published)
	require.NoError(t, err)

	draft := validTemplateRequest()
	draft.Name = "Draft Template"
	draft.IsPublished = false
	_, err = svc.Create(draft)
	require.NoError(t, err)

	templates, total, err := svc.List(true, 20, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, templates, 1)
	assert.Equal(t, "Tomato Standard", templates[0].Name)

	templates, total, err = svc.List(false, 20, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, templates, 2)
}

func TestDeleteTemplate(t *testing.T) {
	svc := newTemplateService(t)

	template, err := svc.Create(validTemplateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(template.ID))

	_, err = svc.Get(template.ID)
	assert.ErrorIs(t, err, apperrors.ErrTemplateNotFound)

	assert.ErrorIs(t, svc.Delete(uuid.New()), apperrors.ErrTemplateNotFound)
}
