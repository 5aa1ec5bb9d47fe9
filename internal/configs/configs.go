package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AppURL                 string
	DatabaseDSN            string
	RateLimit              int
	ShutdownTimeoutSeconds int
	RedisEnabled           bool
	RedisAddr              string
	RedisSlotsKey          string
	RedisSessionPrefix     string
	SessionTTL             time.Duration
	GenerateURL            string
	GenerateModel          string
	GenerateTimeout        time.Duration
	GenerationWorkers      int
	GenerationQueueSize    int
	BcryptCost             int
}

// Load reads configuration from, in rising precedence, built-in defaults,
// the optional config file and the environment.
func Load(configFile string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config from %s: %w", configFile, err)
		}
	}

	v.AutomaticEnv()

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", v.GetString("APP_HOST"), v.GetString("APP_PORT")),
		DatabaseDSN:            v.GetString("DATABASE_DSN"),
		RateLimit:              v.GetInt("RATE_LIMIT_PER_MINUTE"),
		ShutdownTimeoutSeconds: v.GetInt("SHUTDOWN_TIMEOUT_SECONDS"),
		RedisEnabled:           v.GetBool("REDIS_ENABLED"),
		RedisAddr:              fmt.Sprintf("%s:%s", v.GetString("REDIS_HOST"), v.GetString("REDIS_PORT")),
		RedisSlotsKey:          v.GetString("REDIS_SLOTS_KEY"),
		RedisSessionPrefix:     v.GetString("REDIS_SESSION_PREFIX"),
		SessionTTL:             time.Duration(v.GetInt("SESSION_TTL_HOURS")) * time.Hour,
		GenerateURL:            v.GetString("GENERATE_URL"),
		GenerateModel:          v.GetString("GENERATE_MODEL"),
		GenerateTimeout:        time.Duration(v.GetInt("GENERATE_TIMEOUT_SECONDS")) * time.Second,
		GenerationWorkers:      v.GetInt("GENERATION_WORKERS"),
		GenerationQueueSize:    v.GetInt("GENERATION_QUEUE_SIZE"),
		BcryptCost:             v.GetInt("BCRYPT_COST"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_HOST", "127.0.0.1")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("DATABASE_DSN", "taskhero.db")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 60)
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 20)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "127.0.0.1")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_SLOTS_KEY", "taskhero:generation_slots")
	v.SetDefault("REDIS_SESSION_PREFIX", "taskhero:session:")
	v.SetDefault("SESSION_TTL_HOURS", 168)

	v.SetDefault("GENERATE_URL", "http://localhost:11434/api/generate")
	v.SetDefault("GENERATE_MODEL", "llama3")
	v.SetDefault("GENERATE_TIMEOUT_SECONDS", 20)
	v.SetDefault("GENERATION_WORKERS", 4)
	v.SetDefault("GENERATION_QUEUE_SIZE", 16)
	v.SetDefault("BCRYPT_COST", 10)
}

func (cfg Config) Validate() error {
	var errs []error

	if cfg.AppURL == ":" {
		errs = append(errs, errors.New("APP_HOST/APP_PORT must not be empty (e.g. 127.0.0.1:8080)"))
	}
	if cfg.DatabaseDSN == "" {
		errs = append(errs, errors.New("DATABASE_DSN must not be empty"))
	}
	if cfg.RateLimit <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_PER_MINUTE must be greater than 0"))
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0"))
	}
	if cfg.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL_HOURS must be greater than 0"))
	}
	if cfg.GenerateURL == "" {
		errs = append(errs, errors.New("GENERATE_URL must not be empty"))
	}
	if cfg.GenerateTimeout <= 0 {
		errs = append(errs, errors.New("GENERATE_TIMEOUT_SECONDS must be greater than 0"))
	}
	if cfg.GenerationWorkers <= 0 {
		errs = append(errs, errors.New("GENERATION_WORKERS must be greater than 0"))
	}
	if cfg.GenerationQueueSize <= 0 {
		errs = append(errs, errors.New("GENERATION_QUEUE_SIZE must be greater than 0"))
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		errs = append(errs, errors.New("BCRYPT_COST must be between 4 and 31"))
	}

	return errors.Join(errs...)
}
