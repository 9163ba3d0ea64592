package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrInvalidQuestionSource       = errors.New("invalid question source")
)

// Question source kinds.
const (
	SourceFile     = "file"
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env       string    `mapstructure:"env"`       // current application environment (local, dev, production etc)
	Questions Questions `mapstructure:"questions"` // question bank source
	Sessions  Sessions  `mapstructure:"sessions"`  // local session storage
	Quiz      Quiz      `mapstructure:"quiz"`      // quiz defaults
	Log       Log       `mapstructure:"log"`       // logger output
	DB        DB        `mapstructure:"database"`  // database configuration section
	Telegram  Telegram  `mapstructure:"-"`         // chat front-end, loaded from environment
}

// Questions describes where the question bank is read from.
type Questions struct {
	Source  string        `mapstructure:"source"`  // file, http or postgres
	Path    string        `mapstructure:"path"`    // path to JSON file with questions
	URL     string        `mapstructure:"url"`     // URL of JSON question bank
	Timeout time.Duration `mapstructure:"timeout"` // HTTP fetch timeout
}

// Sessions configures the local session file.
type Sessions struct {
	Path        string `mapstructure:"path"`         // path to the sessions JSON blob
	MaxSessions int    `mapstructure:"max_sessions"` // how many sessions are kept
}

// Quiz holds quiz defaults.
type Quiz struct {
	TestLength int `mapstructure:"test_length"` // number of questions in test mode
}

// Log configures log output.
type Log struct {
	File string `mapstructure:"file"` // optional log file; stderr when empty
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Telegram holds chat front-end credentials.
type Telegram struct {
	APIToken string // bot token
	OwnerID  int64  // the only user the bot talks to
}

// Validate reports whether the chat front-end can be started.
func (t Telegram) Validate() error {
	if t.APIToken == "" || t.OwnerID == 0 {
		return ErrMissingEnvironmentVariables
	}
	return nil
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	return load("./config")
}

func load(paths ...string) (*Config, error) {
	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("questions.source", SourceFile)
	v.SetDefault("questions.path", "assets/questions.json")
	v.SetDefault("questions.url", "")
	v.SetDefault("questions.timeout", "10s")
	v.SetDefault("sessions.path", "data/sessions.json")
	v.SetDefault("sessions.max_sessions", 50)
	v.SetDefault("quiz.test_length", 10)
	v.SetDefault("log.file", "")
	v.SetDefault("database.max_connections", 5)
	v.SetDefault("database.max_conn_lifetime", "30s")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("questions.url", "QUESTIONS_URL")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("telegram_owner_id", "TELEGRAM_OWNER_ID")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.DB.URL = v.GetString("database_url")
	cfg.Telegram = Telegram{
		APIToken: v.GetString("telegram_api_token"),
		OwnerID:  v.GetInt64("telegram_owner_id"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Questions.Source {
	case SourceFile:
		if c.Questions.Path == "" {
			return fmt.Errorf("%w: questions.path is empty", ErrInvalidQuestionSource)
		}
	case SourceHTTP:
		if c.Questions.URL == "" {
			return fmt.Errorf("%w: questions.url is empty", ErrInvalidQuestionSource)
		}
	case SourcePostgres:
		if c.DB.URL == "" {
			return ErrMissingEnvironmentVariables
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidQuestionSource, c.Questions.Source)
	}

	if c.Sessions.MaxSessions <= 0 {
		c.Sessions.MaxSessions = 50
	}
	if c.Quiz.TestLength <= 0 {
		c.Quiz.TestLength = 10
	}

	return nil
}
