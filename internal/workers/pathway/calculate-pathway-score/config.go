// internal/workers/pathway/calculate-pathway-score/config.go
package calculatepathwayscore

import (
	"time"

	"pathway-workers/internal/common/config"
	"pathway-workers/internal/models"
)

type Config struct {
	Timeout        time.Duration
	CatalogSource  models.CatalogSource
	SearchIndex    string
	DefaultWeights models.WeightConfig
}

func LoadConfig(cfg *config.Config) *Config {
	c := &Config{
		Timeout:        10 * time.Second,
		CatalogSource:  models.CatalogSourcePostgres,
		DefaultWeights: models.DefaultWeights(),
	}
	if cfg == nil {
		return c
	}
	if wc := config.GetWorkerConfig(cfg, TaskType); wc.Timeout > 0 {
		c.Timeout = config.GetDuration(wc.Timeout)
	}
	if cfg.Scoring.CatalogSource != "" {
		c.CatalogSource = models.CatalogSource(cfg.Scoring.CatalogSource)
	}
	c.SearchIndex = cfg.Database.Elasticsearch.PathwayIndex
	if cfg.Scoring.DefaultWeights != (models.WeightConfig{}) {
		c.DefaultWeights = cfg.Scoring.DefaultWeights
	}
	return c
}
