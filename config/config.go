package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const envPrefix = "BOARD"

const (
	StrategyLocal  = "local"
	StrategyRemote = "remote"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is resolved once at start and never mutated afterwards.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Jokes    JokesConfig    `mapstructure:"jokes"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
	DSN    string `mapstructure:"dsn"`
}

type AuthConfig struct {
	Strategy string       `mapstructure:"strategy"`
	JWT      JWTConfig    `mapstructure:"jwt"`
	Remote   RemoteConfig `mapstructure:"remote"`
	Cache    CacheConfig  `mapstructure:"cache"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Claim  string `mapstructure:"claim"`
}

type RemoteConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CacheConfig enables the redis identity cache when RedisAddr is set.
type CacheConfig struct {
	RedisAddr string        `mapstructure:"redis_addr"`
	TTL       time.Duration `mapstructure:"ttl"`
}

type JokesConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.path", "board.db")
	v.SetDefault("database.dsn", "")
	v.SetDefault("auth.strategy", StrategyLocal)
	v.SetDefault("auth.jwt.secret", "")
	v.SetDefault("auth.jwt.claim", "user_id")
	v.SetDefault("auth.remote.base_url", "")
	v.SetDefault("auth.remote.timeout", 5*time.Second)
	v.SetDefault("auth.cache.redis_addr", "")
	v.SetDefault("auth.cache.ttl", time.Minute)
	v.SetDefault("jokes.base_url", "https://api.chucknorris.io")
	v.SetDefault("jokes.timeout", 5*time.Second)
	v.SetDefault("cors.allowed_origins", []string{"*"})
}

// Load reads config.toml from dir (if present), then applies BOARD_* environment
// overrides, e.g. BOARD_AUTH_JWT_SECRET for auth.jwt.secret.
func Load(dir string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		zap.L().Debug("No .env file found, using environment variables")
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		zap.L().Info("No config file found, using defaults and environment")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}

	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown database.driver %q", c.Database.Driver)
	}

	switch c.Auth.Strategy {
	case StrategyLocal:
		if c.Auth.JWT.Secret == "" {
			return fmt.Errorf("auth.jwt.secret is required for the local strategy")
		}
		if c.Auth.JWT.Claim == "" {
			return fmt.Errorf("auth.jwt.claim must not be empty")
		}
	case StrategyRemote:
		if c.Auth.Remote.BaseURL == "" {
			return fmt.Errorf("auth.remote.base_url is required for the remote strategy")
		}
	default:
		return fmt.Errorf("unknown auth.strategy %q", c.Auth.Strategy)
	}

	if c.Jokes.BaseURL == "" {
		return fmt.Errorf("jokes.base_url is required")
	}
	return nil
}
