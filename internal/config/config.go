package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv   string
	Port     string
	LogLevel string
	Database Database
	Auth     Auth
	CORS     CORS
	Export   Export
}

type Database struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	ConnectAttempts int
}

type Auth struct {
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	BcryptCost      int
}

type CORS struct {
	ClientURL      string
	AllowedOrigins string
}

type Export struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	URL           string
	Timeout       time.Duration
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "3000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_MAX_OPEN_CONNS", 0)
	v.SetDefault("DB_CONNECT_ATTEMPTS", 5)
	v.SetDefault("ACCESS_TOKEN_TTL", 15*time.Minute)
	v.SetDefault("REFRESH_TOKEN_TTL", 7*24*time.Hour)
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("EXPORT_TIMEOUT", 10*time.Second)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppEnv:   v.GetString("APP_ENV"),
		Port:     v.GetString("PORT"),
		LogLevel: v.GetString("LOG_LEVEL"),
		Database: Database{
			Driver:          v.GetString("DB_DRIVER"),
			DSN:             v.GetString("DATABASE_URL"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			ConnectAttempts: v.GetInt("DB_CONNECT_ATTEMPTS"),
		},
		Auth: Auth{
			JWTSecret:       v.GetString("JWT_SECRET"),
			AccessTokenTTL:  v.GetDuration("ACCESS_TOKEN_TTL"),
			RefreshTokenTTL: v.GetDuration("REFRESH_TOKEN_TTL"),
			BcryptCost:      v.GetInt("BCRYPT_COST"),
		},
		CORS: CORS{
			ClientURL:      v.GetString("CLIENT_URL"),
			AllowedOrigins: v.GetString("ALLOWED_ORIGINS"),
		},
		Export: Export{
			RedisAddr:     v.GetString("REDIS_ADDR"),
			RedisPassword: v.GetString("REDIS_PASSWORD"),
			RedisDB:       v.GetInt("REDIS_DB"),
			URL:           v.GetString("EXPORT_URL"),
			Timeout:       v.GetDuration("EXPORT_TIMEOUT"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is not set")
	}

	if c.Database.DSN == "" {
		return errors.New("DATABASE_URL environment variable is not set")
	}

	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.Database.Driver)
	}

	if c.Auth.AccessTokenTTL <= 0 || c.Auth.RefreshTokenTTL <= 0 {
		return errors.New("token lifetimes must be positive")
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}
