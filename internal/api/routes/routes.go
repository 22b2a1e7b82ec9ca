package routes

import (
	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/api/handlers"
	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/clock"
	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/repository"
	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/scheduler"
	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(db *gorm.DB, clk *clock.Service, sched *scheduler.Scheduler) *gin.Engine {
	// Create router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Initialize validator
	validate := validator.New()

	// Initialize repositories
	notebookRepo := repository.NewNotebookRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Initialize services
	notebookService := service.NewNotebookService(notebookRepo, templateRepo, clk, validate)
	templateService := service.NewTemplateService(templateRepo, validate)
	notificationService := service.NewNotificationService(notificationRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	notebookHandler := handlers.NewNotebookHandler(notebookService)
	templateHandler := handlers.NewTemplateHandler(templateService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	jobsHandler := handlers.NewJobsHandler(sched)

	router.GET("/health", healthHandler.Health)

	v1 := router.Group("/api/v1")
	{
		notebooks := v1.Group("/notebooks")
		{
			notebooks.POST("", notebookHandler.CreateNotebook)
			notebooks.GET("", notebookHandler.ListNotebooks)
			notebooks.GET("/:id", notebookHandler.GetNotebook)
			notebooks.DELETE("/:id", notebookHandler.DeleteNotebook)
			notebooks.DELETE("/:id/hard", notebookHandler.HardDeleteNotebook)
			notebooks.POST("/:id/archive", notebookHandler.ArchiveNotebook)
			notebooks.POST("/:id/progress", notebookHandler.ComputeProgress)
			notebooks.POST("/:id/transition", notebookHandler.AttemptStageTransition)
			notebooks.POST("/:id/observations", notebookHandler.RecordObservation)
			notebooks.POST("/:id/daily-logs", notebookHandler.RecordDailyLog)
			notebooks.POST("/:id/checklist/generate", notebookHandler.GenerateChecklist)
			notebooks.POST("/:id/checklist/:itemId/complete", notebookHandler.CompleteChecklistItem)
		}

		templates := v1.Group("/templates")
		{
			templates.POST("", templateHandler.CreateTemplate)
			templates.GET("", templateHandler.ListTemplates)
			templates.GET("/:id", templateHandler.GetTemplate)
			templates.DELETE("/:id", templateHandler.DeleteTemplate)
		}

		notifications := v1.Group("/notifications")
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.POST("/:id/read", notificationHandler.MarkNotificationRead)
		}

		jobs := v1.Group("/jobs")
		{
			jobs.GET("", jobsHandler.ListJobs)
			jobs.POST("/:name/run", jobsHandler.RunJob)
		}
	}

	return router
}
