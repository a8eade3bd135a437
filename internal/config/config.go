package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Server      ServerConfig
	Model       ModelConfig
	RedisConfig RedisConfig
	Log         LogConfig
	CacheEnable bool `env:"CACHE_ENABLE"`
}

type RedisConfig struct {
	Addr      string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password  string        `env:"REDIS_PASSWORD"`
	DB        int           `env:"REDIS_DB" envDefault:"0"`
	TTL       time.Duration `env:"REDIS_TTL" envDefault:"10m"`
	KeyPrefix string        `env:"REDIS_KEY_PREFIX" envDefault:"relay:result:"`
}

type ServerConfig struct {
	Port            string        `env:"PORT" envDefault:"3000"`
	Timeout         time.Duration `env:"SERVER_TIMEOUT" envDefault:"0s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	ThrottleLimit   int           `env:"SERVER_THROTTLE_LIMIT" envDefault:"0"`
	MaxUploadMB     int64         `env:"MAX_UPLOAD_MB" envDefault:"20"`
	StaticDir       string        `env:"STATIC_DIR" envDefault:"web/static"`
}

type ModelConfig struct {
	Provider      string `env:"MODEL_PROVIDER" envDefault:"gemini"`
	APIKey        string `env:"API_KEY,required,notEmpty"`
	Name          string `env:"MODEL_NAME" envDefault:"gemini-1.5-flash"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// MaxUploadBytes is the request body limit for upload routes.
func (s ServerConfig) MaxUploadBytes() int64 {
	return s.MaxUploadMB << 20
}

// Load reads .env (if any) into the process environment and parses it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if cfg.Server.MaxUploadMB <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", cfg.Server.MaxUploadMB)
	}
	return cfg, nil
}
