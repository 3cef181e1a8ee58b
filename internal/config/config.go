package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	App        AppConfig        `toml:"app"`
	Auth       AuthConfig       `toml:"auth"`
	Validation ValidationConfig `toml:"validation"`
	Log        LogConfig        `toml:"log"`
	Telemetry  TelemetryConfig  `toml:"telemetry"`
}

type AppConfig struct {
	Name    string `toml:"name"`
	Env     string `toml:"env"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	GinMode string `toml:"gin_mode"`
}

type AuthConfig struct {
	JWTSecret       string       `toml:"jwt_secret"`
	TokenTTLMinutes int          `toml:"token_ttl_minutes"`
	Argon2          Argon2Config `toml:"argon2"`
}

type Argon2Config struct {
	Memory      int `toml:"memory"`
	Iterations  int `toml:"iterations"`
	Parallelism int `toml:"parallelism"`
	KeyLength   int `toml:"key_length"`
	SaltLength  int `toml:"salt_length"`
}

type ValidationConfig struct {
	Workers   int `toml:"workers"`
	QueueSize int `toml:"queue_size"`
	TimeoutMS int `toml:"timeout_ms"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type TelemetryConfig struct {
	Enabled        bool   `toml:"enabled"`
	OTLPEndpoint   string `toml:"otlp_endpoint"`
	ServiceName    string `toml:"service_name"`
	ServiceVersion string `toml:"service_version"`
	Stdout         bool   `toml:"stdout"`
}

func Load() (*Config, error) {
	cfg := defaultConfig()

	configPath := getEnv("CONFIG_FILE", "configs/config.toml")
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("decode config file failed: %w", err)
		}
	}

	overrideByEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate rejects values that would be truncated or wrapped when converted
// to the fixed-width parameters of the hasher and the validation pool.
func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret must not be empty")
	}

	a := c.Auth.Argon2
	checks := []struct {
		key      string
		value    int
		min, max int64
	}{
		{"auth.argon2.memory", a.Memory, 1, math.MaxUint32},
		{"auth.argon2.iterations", a.Iterations, 1, math.MaxUint32},
		{"auth.argon2.parallelism", a.Parallelism, 1, math.MaxUint8},
		{"auth.argon2.key_length", a.KeyLength, 1, math.MaxUint32},
		{"auth.argon2.salt_length", a.SaltLength, 1, math.MaxUint32},
		{"auth.token_ttl_minutes", c.Auth.TokenTTLMinutes, 1, math.MaxInt32},
		{"validation.workers", c.Validation.Workers, 1, math.MaxInt32},
		{"validation.queue_size", c.Validation.QueueSize, 0, math.MaxInt32},
		{"validation.timeout_ms", c.Validation.TimeoutMS, 0, math.MaxInt32},
	}
	for _, chk := range checks {
		if v := int64(chk.value); v < chk.min || v > chk.max {
			return fmt.Errorf("%s must be between %d and %d, got %d", chk.key, chk.min, chk.max, chk.value)
		}
	}
	return nil
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLMinutes) * time.Minute
}

// ValidationTimeout is zero when validation waits are unbounded.
func (c *Config) ValidationTimeout() time.Duration {
	return time.Duration(c.Validation.TimeoutMS) * time.Millisecond
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:    "blog-api",
			Env:     "dev",
			Host:    "0.0.0.0",
			Port:    8080,
			GinMode: "debug",
		},
		Auth: AuthConfig{
			JWTSecret:       "change-me-in-production",
			TokenTTLMinutes: 5,
			Argon2: Argon2Config{
				Memory:      19 * 1024,
				Iterations:  2,
				Parallelism: 1,
				KeyLength:   32,
				SaltLength:  16,
			},
		},
		Validation: ValidationConfig{
			Workers:   4,
			QueueSize: 64,
			TimeoutMS: 2000,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Telemetry: TelemetryConfig{
			Enabled:        false,
			OTLPEndpoint:   "otel-collector:4317",
			ServiceName:    "blog-api",
			ServiceVersion: "v0.1.0",
			Stdout:         false,
		},
	}
}

func overrideByEnv(cfg *Config) {
	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)
	cfg.App.Host = getEnv("APP_HOST", cfg.App.Host)
	cfg.App.Port = getEnvAsInt("APP_PORT", cfg.App.Port)
	cfg.App.GinMode = getEnv("GIN_MODE", cfg.App.GinMode)

	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Auth.TokenTTLMinutes = getEnvAsInt("TOKEN_TTL_MINUTES", cfg.Auth.TokenTTLMinutes)
	cfg.Auth.Argon2.Memory = getEnvAsInt("ARGON2_MEMORY", cfg.Auth.Argon2.Memory)
	cfg.Auth.Argon2.Iterations = getEnvAsInt("ARGON2_ITERATIONS", cfg.Auth.Argon2.Iterations)
	cfg.Auth.Argon2.Parallelism = getEnvAsInt("ARGON2_PARALLELISM", cfg.Auth.Argon2.Parallelism)

	cfg.Validation.Workers = getEnvAsInt("VALIDATION_WORKERS", cfg.Validation.Workers)
	cfg.Validation.QueueSize = getEnvAsInt("VALIDATION_QUEUE_SIZE", cfg.Validation.QueueSize)
	cfg.Validation.TimeoutMS = getEnvAsInt("VALIDATION_TIMEOUT_MS", cfg.Validation.TimeoutMS)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("LOG_FORMAT", cfg.Log.Format)

	cfg.Telemetry.Enabled = getEnvAsBool("OTEL_ENABLED", cfg.Telemetry.Enabled)
	cfg.Telemetry.OTLPEndpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Telemetry.OTLPEndpoint)
	cfg.Telemetry.ServiceName = getEnv("OTEL_SERVICE_NAME", cfg.Telemetry.ServiceName)
	cfg.Telemetry.ServiceVersion = getEnv("OTEL_SERVICE_VERSION", cfg.Telemetry.ServiceVersion)
	cfg.Telemetry.Stdout = getEnvAsBool("OTEL_STDOUT", cfg.Telemetry.Stdout)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
