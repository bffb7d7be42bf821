package config

import (
	"log"

	"github.com/spf13/viper"
)

type SchedulerConfig struct {
	ExamLookaheadDays        int `mapstructure:"exam_lookahead_days"`
	AssignmentLookaheadHours int `mapstructure:"assignment_lookahead_hours"`
	MilestoneLookaheadHours  int `mapstructure:"milestone_lookahead_hours"`
	DailyRunHour             int `mapstructure:"daily_run_hour"`
	DailyRunMinute           int `mapstructure:"daily_run_minute"`
}

type WorkerConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

type TemporalConfig struct {
	HostPort  string `mapstructure:"host_port"`
	Namespace string `mapstructure:"namespace"`
}

type EmailConfig struct {
	From     string `mapstructure:"from"`
	SMTPHost string `mapstructure:"smtp_host"`
	SMTPPort int    `mapstructure:"smtp_port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type Config struct {
	DatabaseURL string          `mapstructure:"database_url"`
	ServerPort  string          `mapstructure:"server_port"`
	Scheduler   SchedulerConfig `mapstructure:"scheduler"`
	Worker      WorkerConfig    `mapstructure:"worker"`
	Temporal    TemporalConfig  `mapstructure:"temporal"`
	Email       EmailConfig     `mapstructure:"email"`
}

// Load reads the configuration from a YAML file and returns a Config instance.
func Load() *Config {
	v := viper.New()

	// Look for config in the current directory and ./config
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.AddConfigPath("./config")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file: %v", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		log.Fatalf("Error unmarshalling config: %v", err)
	}

	// Fallback defaults
	if config.DatabaseURL == "" {
		log.Fatal("Database URL must be set in the config file")
	}
	if config.ServerPort == "" {
		config.ServerPort = "8080"
	}
	if config.Scheduler.ExamLookaheadDays == 0 {
		config.Scheduler.ExamLookaheadDays = 30
	}
	if config.Scheduler.AssignmentLookaheadHours == 0 {
		config.Scheduler.AssignmentLookaheadHours = 24
	}
	if config.Scheduler.MilestoneLookaheadHours == 0 {
		config.Scheduler.MilestoneLookaheadHours = 24
	}
	if config.Scheduler.DailyRunHour == 0 {
		config.Scheduler.DailyRunHour = 9
	}
	if config.Worker.Concurrency == 0 {
		config.Worker.Concurrency = 5
	}
	if config.Email.SMTPPort == 0 {
		config.Email.SMTPPort = 587
	}

	return &config
}
