package config

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults registers every key with viper so environment overrides apply
// even without a config file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.dsn", "")
	v.SetDefault("store.path", "")
	v.SetDefault("store.redis.addr", "localhost:6379")
	v.SetDefault("store.redis.password", "")
	v.SetDefault("store.redis.db", 0)
	v.SetDefault("store.redis.prefix", "iaww")
	v.SetDefault("store.redis.ttl", 24*time.Hour)

	v.SetDefault("rules.deck_size", 150)
	v.SetDefault("rules.hand_size", 7)
	v.SetDefault("rules.rounds", 4)
	v.SetDefault("rules.min_players", 2)
	v.SetDefault("rules.max_players", 5)
	v.SetDefault("rules.krystallium_rate", 5)

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.namespace", "iaww")
}
