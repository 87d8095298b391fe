package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/utakatalp/match-predictor/internal/store"
)

// Config holds the settings of the prediction job and the dashboard.
// Values come from an optional YAML file; environment variables override them.
type Config struct {
	Env       string          `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Database  DatabaseConfig  `yaml:"database"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Model     ModelConfig     `yaml:"model"`
	Output    OutputConfig    `yaml:"output"`
	Dashboard DashboardConfig `yaml:"dashboard"`
}

// DatabaseConfig selects the relation store. For sqlite3, DSN is the dataset
// file. For postgres, DSN wins over the discrete connection fields when set.
type DatabaseConfig struct {
	Driver   string `yaml:"driver" env:"DB_DRIVER" env-default:"sqlite3"`
	DSN      string `yaml:"dsn" env:"DB_DSN" env-default:"datasets/database.sqlite"`
	Host     string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User     string `yaml:"user" env:"PGUSER" env-default:"postgres"`
	Password string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Name     string `yaml:"name" env:"PGDATABASE" env-default:"soccer"`
	SSLMode  string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
}

type PipelineConfig struct {
	FormWindow       int  `yaml:"form_window" env:"FORM_WINDOW" env-default:"10"`
	HeadToHeadWindow int  `yaml:"head_to_head_window" env:"HEAD_TO_HEAD_WINDOW" env-default:"3"`
	SampleLimit      int  `yaml:"sample_limit" env:"SAMPLE_LIMIT" env-default:"1500"` // negative keeps every match
	Workers          int  `yaml:"workers" env:"WORKERS"`                               // 0 uses GOMAXPROCS
	StrictKeys       bool `yaml:"strict_keys" env:"STRICT_KEYS" env-default:"false"`
	PlayerNames      bool `yaml:"player_names" env:"PLAYER_NAMES" env-default:"false"`
}

type ModelConfig struct {
	Iterations   int     `yaml:"iterations" env:"MODEL_ITERATIONS" env-default:"500"`
	LearningRate float64 `yaml:"learning_rate" env:"MODEL_LEARNING_RATE" env-default:"0.1"`
	L2           float64 `yaml:"l2" env:"MODEL_L2" env-default:"0"`
	Balanced     bool    `yaml:"balanced" env:"MODEL_BALANCED"`
	TestFraction float64 `yaml:"test_fraction" env:"MODEL_TEST_FRACTION" env-default:"0.25"`
	Seed         int64   `yaml:"seed" env:"MODEL_SEED" env-default:"2"`
}

type OutputConfig struct {
	PredictionsPath string `yaml:"predictions_path" env:"PREDICTIONS_PATH" env-default:"resources/prediction.csv"`
}

type DashboardConfig struct {
	Addr string `yaml:"addr" env:"DASHBOARD_ADDR" env-default:"127.0.0.1:8501"`
}

// Load reads path when it exists, then applies environment overrides and defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			return &cfg, cfg.Validate()
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return &cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case store.SQLite, store.Postgres:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Pipeline.FormWindow < 0 || c.Pipeline.HeadToHeadWindow < 0 {
		return errors.New("history windows must be non-negative")
	}
	if c.Model.TestFraction <= 0 || c.Model.TestFraction >= 1 {
		return fmt.Errorf("test_fraction must be in (0, 1), got %v", c.Model.TestFraction)
	}
	return nil
}

// DataSource returns the driver name and connection string for store.Open.
func (c *Config) DataSource() (driver, dsn string) {
	d := c.Database
	if d.Driver == store.Postgres && (d.DSN == "" || d.DSN == defaultSQLitePath) {
		return d.Driver, store.PostgresDSN(d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
	}
	return d.Driver, d.DSN
}

const defaultSQLitePath = "datasets/database.sqlite"
