package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "./data/sales_data.txt", cfg.InputFile)
	assert.Equal(t, "|", cfg.Delimiter)
	assert.True(t, cfg.SkipHeader)
	assert.True(t, cfg.Enrichment.Enabled)
	assert.Equal(t, 10*time.Second, cfg.Enrichment.Timeout)
	assert.Equal(t, filepath.Join("./output", "sales_report.json"), cfg.JSONReportPath())
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	file := filepath.Join(dir, "sales.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
input_file: /data/from-file.txt
output_dir: /out/from-file
log_level: debug
enrichment:
  enabled: false
  max_concurrency: 8
`), 0644))

	t.Setenv("SALES_CONFIG_FILE", file)
	t.Setenv("SALES_OUTPUT_DIR", "/out/from-env")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/from-file.txt", cfg.InputFile)
	assert.Equal(t, "/out/from-env", cfg.OutputDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.Enrichment.Enabled)
	assert.Equal(t, 8, cfg.Enrichment.MaxConcurrency)
	assert.Equal(t, 2, cfg.Enrichment.MaxRetries, "unset keys keep their defaults")
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("SALES_ENRICHMENT_RATE_LIMIT_MS=250\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("SALES_ENRICHMENT_RATE_LIMIT_MS") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.Enrichment.RateLimitMs)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"empty input file", func(c *Config) { c.InputFile = "" }, true},
		{"multi-char delimiter", func(c *Config) { c.Delimiter = "||" }, true},
		{"unknown log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"zero concurrency", func(c *Config) { c.Enrichment.MaxConcurrency = 0 }, true},
		{"bad catalog url", func(c *Config) { c.Enrichment.BaseURL = "not a url" }, true},
		{"no url when disabled", func(c *Config) {
			c.Enrichment.Enabled = false
			c.Enrichment.BaseURL = ""
		}, false},
		{"no url when enabled", func(c *Config) { c.Enrichment.BaseURL = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
