package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	strs "stargate/pkg/platform/strings"
)

const envPrefix = "STARGATE_"

// listKeys are comma separated when read from the environment.
var listKeys = map[string]struct{}{
	"cors_origins":  {},
	"kafka_brokers": {},
}

// Server captures process level configuration. Keys are flat so that
// STARGATE_REDIS_URL maps to redis_url without a nesting delimiter.
type Server struct {
	Addr           string        `koanf:"addr"`
	Env            string        `koanf:"env"`
	LogLevel       string        `koanf:"log_level"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
	CORSOrigins    []string      `koanf:"cors_origins"`
	Seed           bool          `koanf:"seed"`

	DatabaseURL    string        `koanf:"database_url"`
	DBMaxOpenConns int           `koanf:"db_max_open_conns"`
	DBMaxIdleConns int           `koanf:"db_max_idle_conns"`
	DBConnMaxLife  time.Duration `koanf:"db_conn_max_lifetime"`
	TxTimeout      time.Duration `koanf:"tx_timeout"`

	RedisURL          string        `koanf:"redis_url"`
	RedisPoolSize     int           `koanf:"redis_pool_size"`
	RedisMinIdleConns int           `koanf:"redis_min_idle_conns"`
	RedisDialTimeout  time.Duration `koanf:"redis_dial_timeout"`
	RedisReadTimeout  time.Duration `koanf:"redis_read_timeout"`
	RedisWriteTimeout time.Duration `koanf:"redis_write_timeout"`
	CacheTTL          time.Duration `koanf:"cache_ttl"`

	KafkaBrokers []string `koanf:"kafka_brokers"`
	KafkaTopic   string   `koanf:"kafka_topic"`
}

// RedisConfig is the subset of Server used to build the Redis client.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Server {
	return Server{
		Addr:              ":8080",
		Env:               "dev",
		LogLevel:          "info",
		RequestTimeout:    30 * time.Second,
		CORSOrigins:       []string{"http://localhost:62088"},
		DBMaxOpenConns:    10,
		DBMaxIdleConns:    5,
		DBConnMaxLife:     30 * time.Minute,
		TxTimeout:         5 * time.Second,
		RedisPoolSize:     10,
		RedisMinIdleConns: 2,
		RedisDialTimeout:  2 * time.Second,
		RedisReadTimeout:  time.Second,
		RedisWriteTimeout: time.Second,
		CacheTTL:          time.Minute,
		KafkaTopic:        "stargate.audit",
	}
}

// Load builds a Server config by layering, lowest precedence first:
//  1. Defaults()
//  2. a .env file in the working directory, exported into the environment
//  3. a YAML file named by STARGATE_CONFIG
//  4. STARGATE_* environment variables
func Load() (Server, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Server{}, err
	}

	k := koanf.New(".")
	if path := os.Getenv(envPrefix + "CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Server{}, err
		}
	}

	envProvider := env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
		if _, ok := listKeys[key]; ok {
			return key, strings.Split(value, ",")
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Server{}, err
	}

	cfg := Defaults()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Server{}, err
	}
	cfg.CORSOrigins = strs.DedupeAndTrim(cfg.CORSOrigins)
	cfg.KafkaBrokers = strs.DedupeAndTrim(cfg.KafkaBrokers)
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (s Server) Validate() error {
	if strings.TrimSpace(s.Addr) == "" {
		return errors.New("addr must not be empty")
	}
	if s.TxTimeout <= 0 {
		return errors.New("tx_timeout must be positive")
	}
	if len(s.KafkaBrokers) > 0 && s.KafkaTopic == "" {
		return errors.New("kafka_topic is required when kafka_brokers is set")
	}
	return nil
}

// IsDev reports whether the server runs in a development environment.
func (s Server) IsDev() bool {
	return s.Env == "" || s.Env == "dev" || s.Env == "development"
}

// Redis returns the Redis client settings.
func (s Server) Redis() RedisConfig {
	return RedisConfig{
		URL:          s.RedisURL,
		PoolSize:     s.RedisPoolSize,
		MinIdleConns: s.RedisMinIdleConns,
		DialTimeout:  s.RedisDialTimeout,
		ReadTimeout:  s.RedisReadTimeout,
		WriteTimeout: s.RedisWriteTimeout,
	}
}
