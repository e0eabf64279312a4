// internal/workers/pathway/recommend-pathways/config.go
package recommendpathways

import (
	"time"

	"pathway-workers/internal/common/config"
	"pathway-workers/internal/models"
)

type Config struct {
	Timeout        time.Duration
	Concurrency    int
	CatalogSource  models.CatalogSource
	SearchIndex    string
	MaxCatalogSize int
	DefaultWeights models.WeightConfig
	PersistScores  bool
	ExcludeSaved   bool
}

func LoadConfig(cfg *config.Config) *Config {
	c := &Config{
		Timeout:        30 * time.Second,
		CatalogSource:  models.CatalogSourcePostgres,
		MaxCatalogSize: 5000,
		DefaultWeights: models.DefaultWeights(),
	}
	if cfg == nil {
		return c
	}

	if wc := config.GetWorkerConfig(cfg, TaskType); wc.Timeout > 0 {
		c.Timeout = config.GetDuration(wc.Timeout)
	}
	c.Concurrency = cfg.Scoring.Concurrency
	if cfg.Scoring.CatalogSource != "" {
		c.CatalogSource = models.CatalogSource(cfg.Scoring.CatalogSource)
	}
	c.SearchIndex = cfg.Database.Elasticsearch.PathwayIndex
	if cfg.Scoring.MaxCatalogSize > 0 {
		c.MaxCatalogSize = cfg.Scoring.MaxCatalogSize
	}
	if cfg.Scoring.DefaultWeights != (models.WeightConfig{}) {
		c.DefaultWeights = cfg.Scoring.DefaultWeights
	}
	c.PersistScores = cfg.Scoring.PersistScores
	c.ExcludeSaved = cfg.Scoring.ExcludeSaved
	return c
}
