package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iaww/iaww-server-go/internal/game"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. IAWW_STORE_DRIVER.
const EnvPrefix = "IAWW"

// Config is the root configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Store   StoreConfig   `mapstructure:"store"`
	Rules   RulesConfig   `mapstructure:"rules"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// LoggingConfig selects the zap level and encoder.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json console"`
}

// StoreConfig selects where games live between actions.
type StoreConfig struct {
	// memory, sqlite, postgres (gorm), pgx or redis
	Driver string `mapstructure:"driver" validate:"required,oneof=memory sqlite postgres pgx redis"`

	// Connection string for postgres and pgx.
	DSN string `mapstructure:"dsn" validate:"required_if=Driver postgres,required_if=Driver pgx"`

	// SQLite file, ":memory:" when empty.
	Path string `mapstructure:"path"`

	Redis RedisConfig `mapstructure:"redis"`
}

// RedisConfig holds the redis store connection.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr" validate:"required"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db" validate:"min=0"`
	Prefix   string        `mapstructure:"prefix" validate:"required"`
	TTL      time.Duration `mapstructure:"ttl" validate:"min=0"`
}

// RulesConfig holds the numeric ruleset.
type RulesConfig struct {
	DeckSize        int `mapstructure:"deck_size" validate:"min=1"`
	HandSize        int `mapstructure:"hand_size" validate:"min=1"`
	Rounds          int `mapstructure:"rounds" validate:"min=1"`
	MinPlayers      int `mapstructure:"min_players" validate:"min=2"`
	MaxPlayers      int `mapstructure:"max_players" validate:"gtefield=MinPlayers"`
	KrystalliumRate int `mapstructure:"krystallium_rate" validate:"min=1"`
}

// Ruleset converts the section into engine parameters.
func (r RulesConfig) Ruleset() game.Ruleset {
	return game.Ruleset{
		DeckSize:        r.DeckSize,
		HandSize:        r.HandSize,
		Rounds:          r.Rounds,
		MinPlayers:      r.MinPlayers,
		MaxPlayers:      r.MaxPlayers,
		KrystalliumRate: r.KrystalliumRate,
	}
}

// MetricsConfig controls the prometheus collectors.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace" validate:"required"`
}

// Load reads configuration with this priority:
// 1. Environment variables (IAWW_ prefix, .env honoured)
// 2. Config file
// 3. Defaults
func Load(configPath string) (*Config, error) {
	// A missing .env is fine.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}
