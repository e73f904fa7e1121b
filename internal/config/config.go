// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() builds a Config holding every default.
// - Load layers a YAML file and SWISH_* environment variables on top of New().
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"runtime"
	"strings"
)

// Data sources understood by the datastore layer.
const (
	DataSourceFile     = "file"
	DataSourcePostgres = "postgres"
)

// Merge strategies understood by the merge package.
const (
	MergeComponents = "components"
	MergeGreedy     = "greedy"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the slog handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataSource selects where league data is read from: file or postgres.
	DataSource string `koanf:"data_source"`

	// DataDir holds <league>.yaml / .json files when DataSource is file.
	DataDir string `koanf:"data_dir"`

	// PostgresDSN is the lib/pq connection string when DataSource is postgres.
	PostgresDSN string `koanf:"postgres_dsn"`

	// Leagues are refreshed once on startup.
	Leagues []string `koanf:"leagues"`

	// QueueSize bounds the in-memory refresh queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of refresh workers.
	WorkerCount int `koanf:"worker_count"`

	// MergeStrategy is components (order independent) or greedy (first bucket wins).
	MergeStrategy string `koanf:"merge_strategy"`

	// PartitionPlayersByTeam merges player identities only within one canonical team.
	PartitionPlayersByTeam bool `koanf:"partition_players_by_team"`

	// DropDuplicateRows discards repeated (entity, team, game) rows before merging.
	DropDuplicateRows bool `koanf:"drop_duplicate_rows"`

	// Aliases extends the built-in irregular team alias table.
	Aliases map[string]string `koanf:"aliases"`

	// ReviewMaxDistance is the largest edit distance reported as a near miss.
	ReviewMaxDistance int `koanf:"review_max_distance"`

	// RateLimitRPS and RateLimitBurst configure the API token bucket. Zero RPS disables it.
	RateLimitRPS   float64 `koanf:"rate_limit_rps"`
	RateLimitBurst int     `koanf:"rate_limit_burst"`

	// MaxListLimit caps ?limit on list endpoints.
	MaxListLimit int `koanf:"max_list_limit"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:               "info",
		LogFormat:              "text",
		Addr:                   ":9080",
		DataSource:             DataSourceFile,
		DataDir:                "data",
		QueueSize:              1024,
		WorkerCount:            runtime.NumCPU(),
		MergeStrategy:          MergeComponents,
		PartitionPlayersByTeam: true,
		Aliases:                map[string]string{},
		ReviewMaxDistance:      3,
		RateLimitRPS:           50,
		RateLimitBurst:         100,
		MaxListLimit:           500,
	}
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch strings.ToLower(c.DataSource) {
	case DataSourceFile:
		if c.DataDir == "" {
			return fmt.Errorf("%w: data_dir must be set for the file data source", ErrInvalidConfig)
		}
	case DataSourcePostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("%w: postgres_dsn must be set for the postgres data source", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: %w %q", ErrInvalidConfig, ErrUnknownDataSource, c.DataSource)
	}
	switch strings.ToLower(c.MergeStrategy) {
	case MergeComponents, MergeGreedy:
	default:
		return fmt.Errorf("%w: unknown merge_strategy %q", ErrInvalidConfig, c.MergeStrategy)
	}
	if c.QueueSize <= 0 {
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	}
	if c.WorkerCount <= 0 {
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	}
	if c.MaxListLimit <= 0 {
		return fmt.Errorf("%w: max_list_limit must be positive", ErrInvalidConfig)
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("%w: rate limit values must not be negative", ErrInvalidConfig)
	}
	return nil
}
