package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	Port        string `mapstructure:"PORT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// Database configuration
	DatabaseURL      string `mapstructure:"DATABASE_URL"`
	DatabaseHost     string `mapstructure:"DB_HOST"`
	DatabasePort     string `mapstructure:"DB_PORT"`
	DatabaseUser     string `mapstructure:"DB_USER"`
	DatabasePassword string `mapstructure:"DB_PASSWORD"`
	DatabaseName     string `mapstructure:"DB_NAME"`
	DatabaseSSLMode  string `mapstructure:"DB_SSL_MODE"`

	// Civil-day configuration
	Timezone              string `mapstructure:"TIMEZONE"`
	DayStartOffsetMinutes int    `mapstructure:"DAY_START_OFFSET_MINUTES"`

	// Scheduler configuration. Cron expressions are evaluated in UTC; the
	// defaults correspond to fixed local wall-clock times in the civil zone.
	SchedulerEnabled   bool   `mapstructure:"SCHEDULER_ENABLED"`
	DailyTasksJobCron  string `mapstructure:"DAILY_TASKS_JOB_CRON"`
	ObservationJobCron string `mapstructure:"OBSERVATION_JOB_CRON"`
	ReminderJobCron    string `mapstructure:"REMINDER_JOB_CRON"`
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Override with environment variables
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if config.DatabaseURL == "" {
		config.DatabaseURL = buildDatabaseURL(&config)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("PORT", "7010")
	viper.SetDefault("LOG_LEVEL", "info")

	// Database defaults
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_NAME", "farmhub")
	viper.SetDefault("DB_SSL_MODE", "disable")

	// Civil-day defaults: Vietnam time, day boundary at 00:05 local
	viper.SetDefault("TIMEZONE", "Asia/Ho_Chi_Minh")
	viper.SetDefault("DAY_START_OFFSET_MINUTES", 5)

	// Scheduler defaults. Vietnam is UTC+7 year-round, so fixed UTC times
	// map to fixed local wall-clock times:
	//   06:00 local -> 23:00 UTC previous day (daily tasks)
	//   08:00 local -> 01:00 UTC (observation check)
	//   20:00 local -> 13:00 UTC (reminder)
	viper.SetDefault("SCHEDULER_ENABLED", true)
	viper.SetDefault("DAILY_TASKS_JOB_CRON", "0 23 * * *")
	viper.SetDefault("OBSERVATION_JOB_CRON", "0 1 * * *")
	viper.SetDefault("REMINDER_JOB_CRON", "0 13 * * *")
}

func buildDatabaseURL(config *Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		config.DatabaseUser,
		config.DatabasePassword,
		config.DatabaseHost,
		config.DatabasePort,
		config.DatabaseName,
		config.DatabaseSSLMode,
	)
}

func validate(config *Config) error {
	if config.DatabaseName == "" {
		return fmt.Errorf("database name is required")
	}

	if _, err := time.LoadLocation(config.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", config.Timezone, err)
	}

	if config.DayStartOffsetMinutes < 0 || config.DayStartOffsetMinutes >= 24*60 {
		return fmt.Errorf("DAY_START_OFFSET_MINUTES must be within a single day")
	}

	return nil
}

// DayStartOffset returns the configured day-start offset as a duration
func (c *Config) DayStartOffset() time.Duration {
	return time.Duration(c.DayStartOffsetMinutes) * time.Minute
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
