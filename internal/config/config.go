// Package config loads the service configuration: config.toml, an optional
// config.<env>.toml overlay selected by ASSESSOR_ENV, then ASSESSOR_*
// environment variables, each layer overriding the last.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/assessor/internal/oracle"
	"github.com/JaimeStill/assessor/internal/workflow"
	"github.com/JaimeStill/assessor/pkg/database"
	"github.com/JaimeStill/assessor/pkg/settings"
	"github.com/JaimeStill/assessor/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvAssessorEnv = "ASSESSOR_ENV"
)

var databaseEnv = &database.Env{
	URL:             "ASSESSOR_DB_URL",
	Host:            "ASSESSOR_DB_HOST",
	Port:            "ASSESSOR_DB_PORT",
	Name:            "ASSESSOR_DB_NAME",
	User:            "ASSESSOR_DB_USER",
	Password:        "ASSESSOR_DB_PASSWORD",
	SSLMode:         "ASSESSOR_DB_SSL_MODE",
	MaxOpenConns:    "ASSESSOR_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "ASSESSOR_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "ASSESSOR_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "ASSESSOR_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "ASSESSOR_STORAGE_CONTAINER_NAME",
	ConnectionString: "ASSESSOR_STORAGE_CONNECTION_STRING",
}

var oracleEnv = &oracle.Env{
	Provider:     "ASSESSOR_ORACLE_PROVIDER",
	Timeout:      "ASSESSOR_ORACLE_TIMEOUT",
	GeminiModel:  "ASSESSOR_GEMINI_MODEL",
	GeminiAPIKey: "ASSESSOR_GEMINI_API_KEY",
}

var workflowEnv = &workflow.Env{
	AnalysisWindow:   "ASSESSOR_WORKFLOW_ANALYSIS_WINDOW",
	EvaluationWindow: "ASSESSOR_WORKFLOW_EVALUATION_WINDOW",
	MaxWorkers:       "ASSESSOR_WORKFLOW_MAX_WORKERS",
	Rubric:           "ASSESSOR_WORKFLOW_RUBRIC",
}

// Config is the root configuration for the assessor service.
type Config struct {
	Server          ServerConfig         `toml:"server"`
	Database        database.Config      `toml:"database"`
	Storage         storage.Config       `toml:"storage"`
	API             APIConfig            `toml:"api"`
	Agent           gaconfig.AgentConfig `toml:"agent"`
	Oracle          oracle.Config        `toml:"oracle"`
	Workflow        workflow.Config      `toml:"workflow"`
	ShutdownTimeout string               `toml:"shutdown_timeout"`
	Version         string               `toml:"version"`
}

// Env returns the ASSESSOR_ENV value, defaulting to "local".
func (c *Config) Env() string {
	env := "local"
	settings.String(EnvAssessorEnv, &env)
	return env
}

func (c *Config) ShutdownTimeoutDuration() time.Duration {
	return settings.MustDuration(c.ShutdownTimeout)
}

// Load reads and finalizes every section. Missing files are fine; defaults
// and the environment then supply everything.
func Load() (*Config, error) {
	return loadWith((*Config).finalize)
}

// LoadEvaluator finalizes only what the offline evaluator needs: agent,
// oracle, and workflow. Database and storage settings may be absent.
func LoadEvaluator() (*Config, error) {
	return loadWith((*Config).finalizeEvaluator)
}

// LoadDatabase finalizes only the database section, for the migrate command.
func LoadDatabase() (*database.Config, error) {
	cfg, err := loadWith(func(c *Config) error {
		if err := c.Database.Finalize(databaseEnv); err != nil {
			return fmt.Errorf("database: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &cfg.Database, nil
}

// Merge overlays the non-zero fields of overlay across every section.
func (c *Config) Merge(overlay *Config) {
	settings.Overlay(&c.ShutdownTimeout, overlay.ShutdownTimeout)
	settings.Overlay(&c.Version, overlay.Version)
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Agent.Merge(&overlay.Agent)
	c.Oracle.Merge(&overlay.Oracle)
	c.Workflow.Merge(&overlay.Workflow)
}

func loadWith(finalize func(*Config) error) (*Config, error) {
	cfg := &Config{}
	if err := decodeFile(BaseConfigFile, cfg); err != nil {
		return nil, err
	}

	var env string
	settings.String(EnvAssessorEnv, &env)
	if env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		overlay := &Config{}
		if err := decodeFile(path, overlay); err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := finalize(cfg); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}
	return cfg, nil
}

// decodeFile leaves dst untouched when path does not exist.
func decodeFile(path string, dst *Config) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) finalize() error {
	settings.Default(&c.ShutdownTimeout, "30s")
	settings.Default(&c.Version, "0.1.0")
	settings.String("ASSESSOR_SHUTDOWN_TIMEOUT", &c.ShutdownTimeout)
	settings.String("ASSESSOR_VERSION", &c.Version)

	if _, err := settings.Duration("shutdown_timeout", c.ShutdownTimeout); err != nil {
		return err
	}

	sections := []struct {
		name     string
		finalize func() error
	}{
		{"server", c.Server.Finalize},
		{"database", func() error { return c.Database.Finalize(databaseEnv) }},
		{"storage", func() error { return c.Storage.Finalize(storageEnv) }},
		{"api", c.API.Finalize},
	}
	for _, s := range sections {
		if err := s.finalize(); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return c.finalizeEvaluator()
}

func (c *Config) finalizeEvaluator() error {
	if err := FinalizeAgent(&c.Agent); err != nil {
		return fmt.Errorf("agent: %w", err)
	}
	if err := c.Oracle.Finalize(oracleEnv); err != nil {
		return fmt.Errorf("oracle: %w", err)
	}
	if err := c.Workflow.Finalize(workflowEnv); err != nil {
		return fmt.Errorf("workflow: %w", err)
	}
	return nil
}
