package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable name, e.g. SALES_INPUT_FILE.
const EnvPrefix = "SALES"

// Config holds all application configuration.
type Config struct {
	InputFile     string `yaml:"input_file" envconfig:"INPUT_FILE" validate:"required"`
	OutputDir     string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	Delimiter     string `yaml:"delimiter" envconfig:"DELIMITER" validate:"len=1"`
	SkipHeader    bool   `yaml:"skip_header" envconfig:"SKIP_HEADER"`
	LogLevel      string `yaml:"log_level" envconfig:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	WriteWorkbook bool   `yaml:"write_workbook" envconfig:"WRITE_WORKBOOK"`
	WriteMetrics  bool   `yaml:"write_metrics" envconfig:"WRITE_METRICS"`

	Enrichment EnrichmentConfig `yaml:"enrichment" envconfig:"ENRICHMENT"`
}

// EnrichmentConfig controls the optional product catalog lookups.
type EnrichmentConfig struct {
	Enabled        bool          `yaml:"enabled" envconfig:"ENABLED"`
	BaseURL        string        `yaml:"base_url" envconfig:"BASE_URL" validate:"omitempty,url"`
	Timeout        time.Duration `yaml:"timeout" envconfig:"TIMEOUT" validate:"gt=0"`
	MaxRetries     int           `yaml:"max_retries" envconfig:"MAX_RETRIES" validate:"min=1"`
	MaxConcurrency int           `yaml:"max_concurrency" envconfig:"MAX_CONCURRENCY" validate:"min=1"`
	RateLimitMs    int           `yaml:"rate_limit_ms" envconfig:"RATE_LIMIT_MS" validate:"min=0"`
}

// Defaults returns the configuration used when nothing is overridden.
func Defaults() *Config {
	return &Config{
		InputFile:     "./data/sales_data.txt",
		OutputDir:     "./output",
		Delimiter:     "|",
		SkipHeader:    true,
		LogLevel:      "info",
		WriteWorkbook: true,
		WriteMetrics:  true,
		Enrichment: EnrichmentConfig{
			Enabled:        true,
			BaseURL:        "https://fakestoreapi.com/products",
			Timeout:        10 * time.Second,
			MaxRetries:     2,
			MaxConcurrency: 3,
			RateLimitMs:    100,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file named by
// SALES_CONFIG_FILE (if any), then environment variables, including those
// from a .env file in the working directory.
func Load() (*Config, error) {
	// A missing .env is normal; system env vars are used instead.
	_ = godotenv.Load()

	cfg := Defaults()

	if path := os.Getenv(EnvPrefix + "_CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %q: %w", path, err)
	}
	return nil
}

// ErrMissingCatalogURL is returned when enrichment is on but has nowhere to go.
var ErrMissingCatalogURL = errors.New("enrichment.base_url is required when enrichment is enabled")

// Validate checks field constraints.
func (c *Config) Validate() error {
	if c.Enrichment.Enabled && c.Enrichment.BaseURL == "" {
		return ErrMissingCatalogURL
	}
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fmt.Errorf("%s: failed %q rule", verrs[0].Namespace(), verrs[0].Tag())
		}
		return err
	}
	return nil
}

// CleanDataPath is where valid records are written.
func (c *Config) CleanDataPath() string {
	return filepath.Join(c.OutputDir, "cleaned_sales_data.csv")
}

// InvalidDataPath is where rejected records are written.
func (c *Config) InvalidDataPath() string {
	return filepath.Join(c.OutputDir, "invalid_records.csv")
}

// SummaryPath is where the cleaning summary is written.
func (c *Config) SummaryPath() string {
	return filepath.Join(c.OutputDir, "cleaning_summary.txt")
}

// AnalysisReportPath is where the text report is written.
func (c *Config) AnalysisReportPath() string {
	return filepath.Join(c.OutputDir, "analysis_report.txt")
}

// JSONReportPath is where the comprehensive JSON report is written.
func (c *Config) JSONReportPath() string {
	return filepath.Join(c.OutputDir, "sales_report.json")
}

// WorkbookPath is where the XLSX workbook is written.
func (c *Config) WorkbookPath() string {
	return filepath.Join(c.OutputDir, "sales_report.xlsx")
}

// MetricsPath is where the Prometheus textfile is written.
func (c *Config) MetricsPath() string {
	return filepath.Join(c.OutputDir, "metrics.prom")
}
