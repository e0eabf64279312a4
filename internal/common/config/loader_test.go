// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"pathway-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const minimalConfig = `
camunda:
  broker_address: localhost:26500
database:
  postgres:
    host: localhost
    database: pathways
    user: ${TEST_PATHWAY_DB_USER}
  redis:
    address: localhost:6379
`

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	t.Setenv("TEST_PATHWAY_DB_USER", "pathway")

	cfg, err := LoadFromFile(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "pathway", cfg.Database.Postgres.User)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)
	assert.Equal(t, models.DefaultWeights(), cfg.Scoring.DefaultWeights)
	assert.Equal(t, "postgres", cfg.Scoring.CatalogSource)
	assert.Equal(t, 1.0, cfg.Scoring.WeightMax)
	assert.Equal(t, 0.0, cfg.Scoring.WeightMin)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "configs/activity-registry.json", cfg.Registry.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFile_ScoringOverrides(t *testing.T) {
	t.Setenv("TEST_PATHWAY_DB_USER", "pathway")

	body := minimalConfig + `
scoring:
  concurrency: 4
  persist_scores: true
  default_weights:
    skill: 0.5
    experience: 0.5
workers:
  recommend-pathways:
    enabled: true
`
	cfg, err := LoadFromFile(writeConfig(t, body))
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Scoring.Concurrency)
	assert.True(t, cfg.Scoring.PersistScores)
	assert.Equal(t, 0.5, cfg.Scoring.DefaultWeights.Skill)
	assert.Equal(t, 0.0, cfg.Scoring.DefaultWeights.Cost)

	w := GetWorkerConfig(cfg, "recommend-pathways")
	assert.True(t, w.Enabled)
	assert.Equal(t, 5, w.MaxJobsActive)
	assert.Equal(t, 3, w.MaxRetries)
	assert.True(t, IsWorkerEnabled(cfg, "unknown-worker"))
}

func TestLoadFromFile_Invalid(t *testing.T) {
	t.Setenv("TEST_PATHWAY_DB_USER", "pathway")

	tests := []struct {
		name   string
		body   string
		errMsg string
	}{
		{
			name:   "missing broker",
			body:   "database:\n  postgres:\n    host: h\n    database: d\n    user: u\n  redis:\n    address: r\n",
			errMsg: "camunda.broker_address",
		},
		{
			name:   "elasticsearch catalog without addresses",
			body:   minimalConfig + "scoring:\n  catalog_source: elasticsearch\n",
			errMsg: "requires database.elasticsearch",
		},
		{
			name:   "unknown catalog source",
			body:   minimalConfig + "scoring:\n  catalog_source: mongo\n",
			errMsg: "not supported",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, "1.5s", GetDuration(1500).String())
}
