package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	EnvPostgresDSN = "SEVENGUIS_POSTGRES_DSN"
	EnvLogLevel    = "SEVENGUIS_LOG_LEVEL"

	EngineMemory   = "memory"
	EnginePostgres = "postgres"

	DriverPGX  = "pgx"
	DriverSQL  = "sql"
	DriverSQLX = "sqlx"
)

var (
	ErrReadingConfigFailed    = errors.New("reading the config file failed")
	ErrParsingConfigFailed    = errors.New("parsing the config failed")
	ErrValidatingConfigFailed = errors.New("validating the config failed")
)

// Config is the root of the configuration file.
type Config struct {
	Log           LogConfig           `yaml:"log"`
	Journal       JournalConfig       `yaml:"journal"`
	CircleDrawer  CircleDrawerConfig  `yaml:"circle_drawer"`
	Timer         TimerConfig         `yaml:"timer"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// JournalConfig selects where circle drawer sessions are journaled.
type JournalConfig struct {
	Engine    string         `yaml:"engine" validate:"oneof=memory postgres"`
	TableName string         `yaml:"table_name" validate:"required,max=63"`
	Postgres  PostgresConfig `yaml:"postgres" validate:"-"`
}

// PostgresConfig holds the connection settings, only validated for the postgres engine.
type PostgresConfig struct {
	Driver          string        `yaml:"driver" validate:"oneof=pgx sql sqlx"`
	DSN             string        `yaml:"dsn" validate:"required"`
	MaxConns        int32         `yaml:"max_conns" validate:"gte=1"`
	MinConns        int32         `yaml:"min_conns" validate:"gte=0,ltefield=MaxConns"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" validate:"gt=0"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" validate:"gt=0"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout" validate:"gt=0"`
}

// CircleDrawerConfig tunes the editor policies.
type CircleDrawerConfig struct {
	DuplicatePositionEpsilon float64 `yaml:"duplicate_position_epsilon" validate:"gte=0"`
}

// TimerConfig tunes the timer widget.
type TimerConfig struct {
	TickInterval time.Duration `yaml:"tick_interval" validate:"gt=0"`
}

// Default returns the built-in configuration: text logs at info level and an in-memory journal.
func Default() Config {
	return Config{
		Log: LogConfig{Level: "info", Format: "text"},
		Journal: JournalConfig{
			Engine:    EngineMemory,
			TableName: "circle_journal",
			Postgres: PostgresConfig{
				Driver:          DriverPGX,
				MaxConns:        8,
				MinConns:        2,
				MaxConnLifetime: time.Hour,
				MaxConnIdleTime: 5 * time.Minute,
				ConnectTimeout:  5 * time.Second,
			},
		},
		CircleDrawer:  CircleDrawerConfig{DuplicatePositionEpsilon: 1.0},
		Timer:         TimerConfig{TickInterval: 50 * time.Millisecond},
		Observability: ObservabilityConfig{
			Exporter:    ExporterNone,
			ServiceName: "sevenguis",
		},
	}
}

// Load reads path, which may be empty for defaults only, and applies the process environment.
func Load(path string) (Config, error) {
	var data []byte

	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return Config{}, errors.Join(ErrReadingConfigFailed, err)
		}
	}

	return Parse(data, os.LookupEnv)
}

// Parse decodes YAML over Default, applies the environment overrides from lookupEnv and validates the result.
// Unknown YAML keys are rejected.
func Parse(data []byte, lookupEnv func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if len(bytes.TrimSpace(data)) > 0 {
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)

		if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, errors.Join(ErrParsingConfigFailed, err)
		}
	}

	if dsn, ok := lookupEnv(EnvPostgresDSN); ok && dsn != "" {
		cfg.Journal.Postgres.DSN = dsn
		cfg.Journal.Engine = EnginePostgres
	}

	if level, ok := lookupEnv(EnvLogLevel); ok && level != "" {
		cfg.Log.Level = level
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the struct tags. Postgres settings are only checked for the postgres engine.
func (c Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())

	for _, part := range []any{c.Log, c.Journal, c.CircleDrawer, c.Timer, c.Observability} {
		if err := validate.Struct(part); err != nil {
			return errors.Join(ErrValidatingConfigFailed, err)
		}
	}

	if c.Journal.Engine == EnginePostgres {
		if err := validate.Struct(c.Journal.Postgres); err != nil {
			return errors.Join(ErrValidatingConfigFailed, err)
		}
	}

	return nil
}
