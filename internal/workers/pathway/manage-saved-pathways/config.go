// internal/workers/pathway/manage-saved-pathways/config.go
package managesavedpathways

import (
	"time"

	"pathway-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	// VerifyPathway checks the catalog before saving a pathway id.
	VerifyPathway bool
}

func LoadConfig(cfg *config.Config) *Config {
	c := &Config{Timeout: 10 * time.Second, VerifyPathway: true}
	if cfg == nil {
		return c
	}
	if wc := config.GetWorkerConfig(cfg, TaskType); wc.Timeout > 0 {
		c.Timeout = config.GetDuration(wc.Timeout)
	}
	return c
}
