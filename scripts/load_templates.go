package main

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/config"
	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/database"
	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/database/models"

	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Simple structures that directly match DB schema
type TemplateData struct {
	Name        string      `yaml:"name"`
	PlantType   string      `yaml:"plant_type"`
	Description string      `yaml:"description"`
	IsPublished bool        `yaml:"is_published"`
	Stages      []StageData `yaml:"stages"`
}

type StageData struct {
	StageNumber         int               `yaml:"stage_number"`
	Name                string            `yaml:"name"`
	DayStart            int               `yaml:"day_start"`
	DayEnd              int               `yaml:"day_end"`
	ObservationRequired []ObservationData `yaml:"observation_required,omitempty"`
}

type ObservationData struct {
	Key   string `yaml:"key"`
	Label string `yaml:"label"`
}

// File structure
type TemplatesFile struct {
	Templates []TemplateData `yaml:"templates"`
}

func main() {
	log.Println("🚀 Loading growth templates from YAML files...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database with retry (for dockerized Postgres startup)
	db, err := connectWithRetry(cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := loadTemplatesFromYAMLFiles(db, "scripts/data"); err != nil {
		log.Fatalf("Failed to load templates from YAML files: %v", err)
	}

	log.Println("✅ Growth templates loaded successfully!")
}

// connectWithRetry attempts to initialize the DB with retries to wait for Postgres readiness.
func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	// Suppress verbose logging during data loading
	opts := &database.Options{
		LogLevel: logger.Silent,
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(dsn, opts)
		if err == nil {
			return db, nil
		}
		// Only log every 10 attempts to reduce noise
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

func loadTemplatesFromYAMLFiles(db *gorm.DB, dataDir string) error {
	templates, err := loadTemplates(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load template files: %w", err)
	}

	created := 0
	for _, templateData := range templates {
		wasCreated, err := createTemplate(db, templateData)
		if err != nil {
			return fmt.Errorf("failed to create template %s: %w", templateData.Name, err)
		}
		if wasCreated {
			created++
		}
	}
	log.Printf("📋 Templates: %d created, %d total", created, len(templates))
	return nil
}

// loadTemplates reads every templates YAML file under dataDir.
func loadTemplates(dataDir string) ([]TemplateData, error) {
	var templates []TemplateData

	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".yaml") && !strings.HasSuffix(path, ".yml") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		var file TemplatesFile
		if err := yaml.Unmarshal(content, &file); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		templates = append(templates, file.Templates...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return templates, nil
}

// createTemplate upserts one template by name. Existing templates are left
// untouched so re-running the loader never rewrites stage definitions that
// notebooks already track against.
func createTemplate(db *gorm.DB, templateData TemplateData) (bool, error) {
	var existing models.GrowthTemplate
	err := db.Where("name = ?", templateData.Name).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return false, err
	}

	template := models.GrowthTemplate{
		Name:        templateData.Name,
		PlantType:   templateData.PlantType,
		Description: templateData.Description,
		IsPublished: templateData.IsPublished,
	}
	for _, stageData := range templateData.Stages {
		stage := models.TemplateStage{
			StageNumber: stageData.StageNumber,
			Name:        stageData.Name,
			DayStart:    stageData.DayStart,
			DayEnd:      stageData.DayEnd,
		}
		if len(stageData.ObservationRequired) > 0 {
			reqs := make([]models.ObservationRequirement, 0, len(stageData.ObservationRequired))
			for _, obs := range stageData.ObservationRequired {
				reqs = append(reqs, models.ObservationRequirement{Key: obs.Key, Label: obs.Label})
			}
			stage.ObservationRequired = datatypes.NewJSONSlice(reqs)
		}
		template.Stages = append(template.Stages, stage)
	}

	if err := db.Create(&template).Error; err != nil {
		return false, err
	}
	return true, nil
}
