package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App   AppConfig
	Mongo MongoConfig
	Redis RedisConfig
	JWT   JWTConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STAYBNB_APP_ENV" required:"true"`
	Port         string `envconfig:"STAYBNB_APP_PORT" default:"3030"`
	LogLevel     string `envconfig:"STAYBNB_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STAYBNB_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type MongoConfig struct {
	URL            string        `envconfig:"STAYBNB_MONGO_URL" required:"true"`
	Database       string        `envconfig:"STAYBNB_MONGO_DB" default:"staybnb"`
	ConnectTimeout time.Duration `envconfig:"STAYBNB_MONGO_CONNECT_TIMEOUT" default:"10s"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STAYBNB_REDIS_URL"`
	Address      string        `envconfig:"STAYBNB_REDIS_ADDR"`
	Password     string        `envconfig:"STAYBNB_REDIS_PASSWORD"`
	DB           int           `envconfig:"STAYBNB_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STAYBNB_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STAYBNB_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STAYBNB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STAYBNB_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STAYBNB_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"STAYBNB_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"STAYBNB_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"STAYBNB_JWT_EXPIRATION_MINUTES" default:"1440"`
}

// AccessTokenTTL returns the access token lifetime.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}
