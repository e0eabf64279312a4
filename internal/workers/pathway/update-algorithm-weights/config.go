// internal/workers/pathway/update-algorithm-weights/config.go
package updatealgorithmweights

import (
	"time"

	"pathway-workers/internal/common/config"
)

type Config struct {
	Timeout   time.Duration
	WeightMin float64
	WeightMax float64
}

func LoadConfig(cfg *config.Config) *Config {
	c := &Config{Timeout: 10 * time.Second, WeightMin: 0, WeightMax: 1}
	if cfg == nil {
		return c
	}
	if wc := config.GetWorkerConfig(cfg, TaskType); wc.Timeout > 0 {
		c.Timeout = config.GetDuration(wc.Timeout)
	}
	if cfg.Scoring.WeightMax > cfg.Scoring.WeightMin {
		c.WeightMin = cfg.Scoring.WeightMin
		c.WeightMax = cfg.Scoring.WeightMax
	}
	return c
}
