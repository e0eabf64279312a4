// internal/workers/pathway/send-recommendation-summary/config.go
package sendrecommendationsummary

import (
	"time"

	"pathway-workers/internal/common/config"
)

type Config struct {
	Timeout      time.Duration
	EmailEnabled bool
	SMSEnabled   bool
	TopPathways  int
	Subject      string
}

func LoadConfig(cfg *config.Config) *Config {
	c := &Config{
		Timeout:      15 * time.Second,
		EmailEnabled: true,
		TopPathways:  3,
		Subject:      "Your PR pathway recommendations",
	}
	if cfg == nil {
		return c
	}
	if wc := config.GetWorkerConfig(cfg, TaskType); wc.Timeout > 0 {
		c.Timeout = config.GetDuration(wc.Timeout)
	}
	c.EmailEnabled = cfg.Notifications.Email.Enabled
	c.SMSEnabled = cfg.Notifications.SMS.Enabled
	if cfg.Notifications.TopPathways > 0 {
		c.TopPathways = cfg.Notifications.TopPathways
	}
	return c
}
