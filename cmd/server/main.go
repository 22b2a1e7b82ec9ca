package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/api/routes"
	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/clock"
	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/config"
	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/database"
	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/notifier"
	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/repository"
	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/scheduler"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables from .env file in development
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Set up logging
	setupLogging(cfg.LogLevel)

	// Initialize the civil clock
	clk, err := clock.New(cfg.Timezone, cfg.DayStartOffset())
	if err != nil {
		logrus.Fatal("Failed to initialize clock:", err)
	}

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL, nil)
	if err != nil {
		logrus.Fatal("Failed to initialize database:", err)
	}

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize the scheduler with the three daily jobs
	notebookRepo := repository.NewNotebookRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	deps := scheduler.Deps{
		Notebooks:     notebookRepo,
		Notifications: notificationRepo,
		Emitter:       notifier.NewStoreEmitter(notificationRepo, clk),
		Clock:         clk,
	}

	sched := scheduler.New()
	jobSpecs := []struct {
		spec string
		job  scheduler.Job
	}{
		{cfg.DailyTasksJobCron, scheduler.NewDailyTasksJob(deps)},
		{cfg.ObservationJobCron, scheduler.NewObservationJob(deps)},
		{cfg.ReminderJobCron, scheduler.NewReminderJob(deps)},
	}
	for _, entry := range jobSpecs {
		if err := sched.Register(entry.spec, entry.job); err != nil {
			logrus.Fatal("Failed to register job:", err)
		}
	}

	if cfg.SchedulerEnabled {
		sched.Start()
		defer func() {
			<-sched.Stop().Done()
		}()
	}

	// Initialize router
	router := routes.SetupRoutes(db, clk, sched)

	// Stop the scheduler cleanly on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		logrus.Info("Shutdown signal received")
		<-sched.Stop().Done()
		os.Exit(0)
	}()

	// Start server
	port := cfg.Port
	if port == "" {
		port = "7010"
	}

	logrus.Infof("Starting server on port %s", port)
	if err := router.Run(":" + port); err != nil {
		logrus.Fatal("Failed to start server:", err)
	}
}

func setupLogging(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	switch level {
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	case "info":
		logrus.SetLevel(logrus.InfoLevel)
	case "warn":
		logrus.SetLevel(logrus.WarnLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	default:
		logrus.SetLevel(logrus.InfoLevel)
	}
}
