package testutils

import (
	"time"

	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TemplateFactory provides methods to create test GrowthTemplate data
type TemplateFactory struct{}

// NewTemplateFactory creates a new TemplateFactory
func NewTemplateFactory() *TemplateFactory {
	return &TemplateFactory{}
}

// Create creates a three-stage test template covering days 1-30 with no
// required observations
func (f *TemplateFactory) Create() *models.GrowthTemplate {
	id := uuid.New()
	return &models.GrowthTemplate{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:        "Test Template",
		PlantType:   "tomato",
		IsPublished: true,
		Stages: []models.TemplateStage{
			f.Stage(id, 1, "Germination", 1, 10),
			f.Stage(id, 2, "Seedling", 11, 20),
			f.Stage(id, 3, "Flowering", 21, 30),
		},
	}
}

// Stage creates one test stage definition
func (f *TemplateFactory) Stage(templateID uuid.UUID, number int, name string, dayStart, dayEnd int) models.TemplateStage {
	return models.TemplateStage{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		TemplateID:  templateID,
		StageNumber: number,
		Name:        name,
		DayStart:    dayStart,
		DayEnd:      dayEnd,
	}
}

// WithObservations attaches required observations to the given stage number
func (f *TemplateFactory) WithObservations(template *models.GrowthTemplate, stageNumber int, reqs ...models.ObservationRequirement) *models.GrowthTemplate {
	for i := range template.Stages {
		if template.Stages[i].StageNumber == stageNumber {
			template.Stages[i].ObservationRequired = datatypes.NewJSONSlice(reqs)
		}
	}
	return template
}

// NotebookFactory provides methods to create test Notebook data
type NotebookFactory struct{}

// NewNotebookFactory creates a new NotebookFactory
func NewNotebookFactory() *NotebookFactory {
	return &NotebookFactory{}
}

// Create creates an active test notebook planted on the given date
func (f *NotebookFactory) Create(template *models.GrowthTemplate, plantedDate time.Time) *models.Notebook {
	notebook := &models.Notebook{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		UserID:       uuid.New(),
		Name:         "Test Notebook",
		PlantedDate:  plantedDate,
		CurrentStage: 1,
		Status:       models.NotebookStatusActive,
	}
	if template != nil {
		notebook.TemplateID = &template.ID
		notebook.Template = template
		if first := template.StageByNumber(1); first != nil {
			notebook.StagesTracking = datatypes.NewJSONSlice([]models.StageTracking{
				{
					StageNumber: 1,
					StageName:   first.Name,
					Status:      models.StageStatusActive,
					StartedAt:   plantedDate,
				},
			})
		}
	}
	return notebook
}
