package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"

	"fashion-unlimited/internal/domain/repositories"
)

type Config struct {
	// HTTP port the server listens on.
	Port string `env:"PORT" envDefault:"8080"`

	// gemini (API key) or vertex (project credentials).
	Backend repositories.Backend `env:"AI_BACKEND" envDefault:"gemini"`

	APIKey       string `env:"API_KEY"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`

	ProjectID          string `env:"PROJECT_ID"`
	GoogleCloudProject string `env:"GOOGLE_CLOUD_PROJECT"`
	Location           string `env:"LOCATION" envDefault:"us-central1"`
	CredentialsJSON    string `env:"GOOGLE_APPLICATION_CREDENTIALS_JSON"`

	AnalyzerModel    string `env:"ANALYZER_MODEL" envDefault:"gemini-3-flash-preview"`
	SynthesizerModel string `env:"SYNTHESIZER_MODEL" envDefault:"gemini-2.5-flash-image"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"90s"`
	MaxUploadBytes int64         `env:"MAX_UPLOAD_BYTES" envDefault:"20971520"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`
}

// Load loads .env (if present) and parses environment variables into Config.
func Load() (Config, error) {
	// Load .env if available; ignore error if file does not exist
	_ = godotenv.Load()

	return Parse()
}

// Parse reads the process environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.Backend = repositories.Backend(strings.ToLower(strings.TrimSpace(string(cfg.Backend))))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Key returns API_KEY, falling back to GEMINI_API_KEY.
func (c Config) Key() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	return c.GeminiAPIKey
}

// Project returns PROJECT_ID, falling back to GOOGLE_CLOUD_PROJECT.
func (c Config) Project() string {
	if c.ProjectID != "" {
		return c.ProjectID
	}
	return c.GoogleCloudProject
}

func (c Config) Validate() error {
	var errs []error

	switch c.Backend {
	case repositories.BackendGemini:
		if c.Key() == "" {
			errs = append(errs, errors.New("API_KEY (or GEMINI_API_KEY) is required for the gemini backend"))
		}
	case repositories.BackendVertex:
		if c.Project() == "" {
			errs = append(errs, errors.New("PROJECT_ID (or GOOGLE_CLOUD_PROJECT) is required for the vertex backend"))
		}
		if c.Location == "" {
			errs = append(errs, errors.New("LOCATION is required for the vertex backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("AI_BACKEND must be gemini or vertex, got %q", c.Backend))
	}

	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes))
	}

	return errors.Join(errs...)
}

func (c Config) ClientConfig() *repositories.AIClientConfig {
	return &repositories.AIClientConfig{
		Backend:         c.Backend,
		APIKey:          c.Key(),
		ProjectID:       c.Project(),
		Location:        c.Location,
		CredentialsJSON: c.CredentialsJSON,
	}
}

func (c Config) Address() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}
