package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port        string `yaml:"port"`
	Environment string `yaml:"environment"`
	DatabaseURL string `yaml:"database_url"`
	TablePrefix string `yaml:"table_prefix"`
	CORSOrigins string `yaml:"cors_origins"`
	// Shared secret every request must send in the Authorization header
	AuthToken string `yaml:"auth_token"`
	// Logging
	LogLevel    string `yaml:"log_level"`
	LogDir      string `yaml:"log_dir"`
	LogMaxFiles int    `yaml:"log_max_files"`

	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// Per-client token bucket; RateLimitRPS <= 0 disables limiting
	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`
	// Peers (addresses or CIDRs) whose X-Forwarded-For is honored by the limiter
	TrustedProxies []string `yaml:"trusted_proxies"`
}

// Load builds the configuration from an optional YAML file (CONFIG_FILE)
// overridden by environment variables.
func Load() (*Config, error) {
	var file Config
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := readFile(path, &file); err != nil {
			return nil, err
		}
	}

	env := getEnv("ENVIRONMENT", orDefault(file.Environment, "dev"))

	maxFiles, err := strconv.Atoi(getEnv("LOG_MAX_FILES", strconv.Itoa(orDefaultInt(file.LogMaxFiles, 5))))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_MAX_FILES: %w", err)
	}

	shutdown := file.ShutdownTimeout
	if shutdown == 0 {
		shutdown = 10 * time.Second
	}
	if s := os.Getenv("SHUTDOWN_TIMEOUT"); s != "" {
		shutdown, err = time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
		}
	}

	rps := file.RateLimitRPS
	if rps == 0 {
		rps = 20
	}
	if s := os.Getenv("RATE_LIMIT_RPS"); s != "" {
		rps, err = strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
		}
	}

	burst, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", strconv.Itoa(orDefaultInt(file.RateLimitBurst, 40))))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}

	proxies := file.TrustedProxies
	if s := os.Getenv("TRUSTED_PROXIES"); s != "" {
		proxies = splitList(s)
	}

	cfg := &Config{
		Port:            getEnv("PORT", orDefault(file.Port, "8080")),
		Environment:     env,
		DatabaseURL:     getEnv("DATABASE_URL", file.DatabaseURL),
		TablePrefix:     getTablePrefix(env, file.TablePrefix),
		CORSOrigins:     getEnv("CORS_ORIGINS", orDefault(file.CORSOrigins, "http://localhost:3000")),
		AuthToken:       getEnv("AUTH_TOKEN", file.AuthToken),
		LogLevel:        getEnv("LOG_LEVEL", orDefault(file.LogLevel, defaultLogLevel(env))),
		LogDir:          getEnv("LOG_DIR", file.LogDir),
		LogMaxFiles:     maxFiles,
		ShutdownTimeout: shutdown,
		RateLimitRPS:    rps,
		RateLimitBurst:  burst,
		TrustedProxies:  proxies,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks required settings
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required),
		validation.Field(&c.Environment, validation.Required, validation.In("dev", "test", "prod")),
		validation.Field(&c.DatabaseURL, validation.Required),
		validation.Field(&c.AuthToken, validation.Required),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.LogMaxFiles, validation.Min(1)),
		validation.Field(&c.RateLimitBurst, validation.Min(1)),
		validation.Field(&c.TrustedProxies, validation.Each(validation.By(isAddrOrPrefix))),
	)
}

func isAddrOrPrefix(value interface{}) error {
	s, _ := value.(string)
	if strings.Contains(s, "/") {
		if _, err := netip.ParsePrefix(s); err != nil {
			return errors.New("must be an IP address or CIDR prefix")
		}
		return nil
	}
	if _, err := netip.ParseAddr(s); err != nil {
		return errors.New("must be an IP address or CIDR prefix")
	}
	return nil
}

func readFile(path string, dest *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// defaultLogLevel returns debug in dev, info elsewhere
func defaultLogLevel(env string) string {
	if env == "dev" {
		return "debug"
	}
	return "info"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env, fromFile string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}
	if fromFile != "" {
		return fromFile
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func orDefaultInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
