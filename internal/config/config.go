package config

import "time"

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Import   ImportConfig   `yaml:"import"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// ImportConfig holds competition file import settings.
type ImportConfig struct {
	// ClubSimilarityThreshold is the minimum name-similarity score at which
	// two clubs are treated as the same organization.
	ClubSimilarityThreshold float64 `yaml:"club_similarity_threshold" env:"IMPORT_CLUB_SIMILARITY_THRESHOLD" env-default:"0.85"`
	// DisableAutoMergeClubs turns off the club deduplication pass that runs
	// after each import. Phrased as a disable so the zero value is the
	// default behavior; an env-default:"true" on an enable-style bool would
	// stomp an explicit false from the YAML file, cleanenv cannot tell a
	// file-set false apart from an unset field.
	DisableAutoMergeClubs bool `yaml:"disable_auto_merge_clubs" env:"IMPORT_DISABLE_AUTO_MERGE_CLUBS"`
}

// AutoMerge reports whether the club deduplication pass should run.
func (c ImportConfig) AutoMerge() bool {
	return !c.DisableAutoMergeClubs
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
