package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// unsetEnv clears keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		if v, ok := os.LookupEnv(k); ok {
			os.Unsetenv(k)
			t.Cleanup(func() { os.Setenv(k, v) })
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, 10, cfg.Pipeline.FormWindow)
	assert.Equal(t, 3, cfg.Pipeline.HeadToHeadWindow)
	assert.Equal(t, 1500, cfg.Pipeline.SampleLimit)
	assert.Equal(t, 0.25, cfg.Model.TestFraction)
	assert.Equal(t, "resources/prediction.csv", cfg.Output.PredictionsPath)

	driver, dsn := cfg.DataSource()
	assert.Equal(t, "sqlite3", driver)
	assert.Equal(t, "datasets/database.sqlite", dsn)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := writeConfig(t, `
env: test
database:
  driver: postgres
  host: db.example.com
  port: 5433
  user: analyst
  name: european_soccer
pipeline:
  form_window: 5
  sample_limit: -1
`)
	unsetEnv(t, "PGHOST", "PGPORT", "PGUSER", "PGDATABASE", "PGSSLMODE", "ENVIRONMENT")
	t.Setenv("PGPASSWORD", "secret")
	t.Setenv("HEAD_TO_HEAD_WINDOW", "4")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, 5, cfg.Pipeline.FormWindow)
	assert.Equal(t, 4, cfg.Pipeline.HeadToHeadWindow)
	assert.Equal(t, -1, cfg.Pipeline.SampleLimit)

	driver, dsn := cfg.DataSource()
	assert.Equal(t, "postgres", driver)
	assert.Equal(t, "host=db.example.com port=5433 user=analyst password=secret dbname=european_soccer sslmode=disable", dsn)
}

func TestLoad_ExplicitPostgresDSN(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: postgres
  dsn: postgres://analyst@localhost/soccer?sslmode=disable
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	_, dsn := cfg.DataSource()
	assert.Equal(t, "postgres://analyst@localhost/soccer?sslmode=disable", dsn)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "driver", content: "database:\n  driver: mysql\n"},
		{name: "test fraction", content: "model:\n  test_fraction: 1.5\n"},
		{name: "window", content: "pipeline:\n  form_window: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}
