// internal/common/config/config.go
package config

import (
	"fmt"
	"time"

	"pathway-workers/internal/models"
)

type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Database      DatabaseConfig          `mapstructure:"database"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	Scoring       ScoringConfig           `mapstructure:"scoring"`
	Notifications NotificationConfig      `mapstructure:"notifications"`
	Registry      RegistryConfig          `mapstructure:"registry"`
	Server        ServerConfig            `mapstructure:"server"`
	Logging       LoggingConfig           `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Enabled        bool     `mapstructure:"enabled"`
	Addresses      []string `mapstructure:"addresses"`
	Username       string   `mapstructure:"username"`
	Password       string   `mapstructure:"password"`
	PathwayIndex   string   `mapstructure:"pathway_index"`
	MaxCatalogHits int      `mapstructure:"max_catalog_hits"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

// ScoringConfig drives the recommendation workers. The weights here are only
// the fallback used when no administrator weights are stored.
type ScoringConfig struct {
	DefaultWeights  models.WeightConfig `mapstructure:"default_weights"`
	Concurrency     int                 `mapstructure:"concurrency"`
	CatalogSource   string              `mapstructure:"catalog_source"`
	MaxCatalogSize  int                 `mapstructure:"max_catalog_size"`
	ProfileCacheTTL int                 `mapstructure:"profile_cache_ttl"` // seconds
	WeightsCacheTTL int                 `mapstructure:"weights_cache_ttl"` // seconds
	PersistScores   bool                `mapstructure:"persist_scores"`
	ExcludeSaved    bool                `mapstructure:"exclude_saved"`
	WeightMin       float64             `mapstructure:"weight_min"`
	WeightMax       float64             `mapstructure:"weight_max"`
}

func (s ScoringConfig) ProfileTTL() time.Duration {
	return time.Duration(s.ProfileCacheTTL) * time.Second
}

func (s ScoringConfig) WeightsTTL() time.Duration {
	return time.Duration(s.WeightsCacheTTL) * time.Second
}

type NotificationConfig struct {
	Email struct {
		Enabled   bool   `mapstructure:"enabled"`
		FromEmail string `mapstructure:"from_email"`
	} `mapstructure:"email"`
	SMS struct {
		Enabled  bool   `mapstructure:"enabled"`
		SenderID string `mapstructure:"sender_id"`
	} `mapstructure:"sms"`
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
	TopPathways int `mapstructure:"top_pathways"`
}

type RegistryConfig struct {
	Path string `mapstructure:"path"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
