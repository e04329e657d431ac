package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"APP_ENV"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// HTTPTimeout bounds every outbound call, including the identity
	// probe, so a hung upstream cannot stall startup.
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT, default=10s"`

	Redis  RedisConfig
	Mongo  MongoConfig
	Market MarketConfig
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=prompt_market"`
}

type MarketConfig struct {
	PageSize    int `env:"MARKET_PAGE_SIZE,    default=100"`
	MaxPages    int `env:"MARKET_MAX_PAGES,    default=50"`
	SyncWorkers int `env:"MARKET_SYNC_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
