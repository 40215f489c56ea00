package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment `yaml:"-"`

	// Server configuration
	ServerPort string `yaml:"server_port"`
	ServerHost string `yaml:"server_host"`

	// Upstream APIs
	MealDBBaseURL  string `yaml:"mealdb_base_url"`
	TranslateURL   string `yaml:"translate_url"`
	TranslateEmail string `yaml:"translate_email"`
	DefaultLocale  string `yaml:"default_locale"`

	// Persistence
	StorageDriver    string `yaml:"storage_driver"`
	StorageKeyPrefix string `yaml:"storage_key_prefix"`
	SQLitePath       string `yaml:"sqlite_path"`

	// Database configuration
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"-"`
	DBName     string `yaml:"db_name"`
	DBSSLMode  string `yaml:"db_ssl_mode"`

	// Redis configuration
	RedisURL      string `yaml:"redis_url"`
	RedisHost     string `yaml:"redis_host"`
	RedisPort     string `yaml:"redis_port"`
	RedisPassword string `yaml:"-"`
	RedisDB       int    `yaml:"redis_db"`

	// Export object store
	S3BucketName string        `yaml:"s3_bucket_name"`
	AWSRegion    string        `yaml:"aws_region"`
	ExportURLTTL time.Duration `yaml:"export_url_ttl"`

	// HTTP surface
	RateLimitPerMinute int      `yaml:"rate_limit_per_minute"`
	CORSOrigins        []string `yaml:"cors_origins"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Defaults returns the configuration used before any file, environment
// variable or secret is applied.
func Defaults() *Config {
	return &Config{
		ServerPort:    "8080",
		ServerHost:    "0.0.0.0",
		MealDBBaseURL: "https://www.themealdb.com/api/json/v1/1",
		TranslateURL:  "https://api.mymemory.translated.net/get",
		DefaultLocale: "pt",
		StorageDriver: DriverSQLite,
		SQLitePath:    "receitas.db",
		DBHost:        "localhost",
		DBPort:        "5432",
		DBUser:        "postgres",
		DBName:        "receitas",
		DBSSLMode:     "disable",
		RedisHost:     "localhost",
		RedisPort:     "6379",
		ExportURLTTL:  15 * time.Minute,
		CORSOrigins:   []string{"*"},
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// LoadConfig creates a new Config instance from defaults, the optional
// CONFIG_FILE overlay, environment variables and secrets, in that order.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := Defaults()
	cfg.Environment = env

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, err
		}
	}

	if err := loadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load %s configuration: %w", env, err)
	}
	loadSecrets(cfg, env)

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadFile overlays a YAML configuration file. Passwords are never read from it.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// loadEnv applies every set environment variable on top of cfg.
func loadEnv(cfg *Config) error {
	strs := map[string]*string{
		"SERVER_PORT":        &cfg.ServerPort,
		"SERVER_HOST":        &cfg.ServerHost,
		"MEALDB_BASE_URL":    &cfg.MealDBBaseURL,
		"TRANSLATE_URL":      &cfg.TranslateURL,
		"TRANSLATE_EMAIL":    &cfg.TranslateEmail,
		"DEFAULT_LOCALE":     &cfg.DefaultLocale,
		"STORAGE_DRIVER":     &cfg.StorageDriver,
		"STORAGE_KEY_PREFIX": &cfg.StorageKeyPrefix,
		"SQLITE_PATH":        &cfg.SQLitePath,
		"DB_HOST":            &cfg.DBHost,
		"DB_PORT":            &cfg.DBPort,
		"DB_USER":            &cfg.DBUser,
		"DB_PASSWORD":        &cfg.DBPassword,
		"DB_NAME":            &cfg.DBName,
		"DB_SSL_MODE":        &cfg.DBSSLMode,
		"REDIS_URL":          &cfg.RedisURL,
		"REDIS_HOST":         &cfg.RedisHost,
		"REDIS_PORT":         &cfg.RedisPort,
		"REDIS_PASSWORD":     &cfg.RedisPassword,
		"S3_BUCKET_NAME":     &cfg.S3BucketName,
		"AWS_REGION":         &cfg.AWSRegion,
		"LOG_LEVEL":          &cfg.LogLevel,
		"LOG_FORMAT":         &cfg.LogFormat,
	}
	for name, dst := range strs {
		if v, ok := os.LookupEnv(name); ok {
			*dst = strings.TrimSpace(v)
		}
	}

	ints := map[string]*int{
		"REDIS_DB":              &cfg.RedisDB,
		"RATE_LIMIT_PER_MINUTE": &cfg.RateLimitPerMinute,
	}
	for name, dst := range ints {
		v := strings.TrimSpace(os.Getenv(name))
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return ValidationError{Field: name, Message: fmt.Sprintf("invalid integer %q", v)}
		}
		*dst = n
	}

	if v := strings.TrimSpace(os.Getenv("EXPORT_URL_TTL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return ValidationError{Field: "EXPORT_URL_TTL", Message: fmt.Sprintf("invalid duration %q", v)}
		}
		cfg.ExportURLTTL = d
	}

	if v, ok := os.LookupEnv("CORS_ORIGINS"); ok {
		cfg.CORSOrigins = splitList(v)
	}
	return nil
}

// loadSecrets fills passwords that are still empty. CI reads the TEST_*
// variables, every other environment reads Docker secrets.
func loadSecrets(cfg *Config, env Environment) {
	if env == CI {
		if cfg.DBPassword == "" {
			cfg.DBPassword = os.Getenv("TEST_DB_PASSWORD")
		}
		if cfg.RedisPassword == "" {
			cfg.RedisPassword = os.Getenv("TEST_REDIS_PASSWORD")
		}
		if cfg.RedisURL == "" {
			cfg.RedisURL = os.Getenv("TEST_REDIS_URL")
		}
		return
	}
	if cfg.DBPassword == "" {
		cfg.DBPassword = readSecret("db_password")
	}
	if cfg.RedisPassword == "" {
		cfg.RedisPassword = readSecret("redis_password")
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = readSecret("redis_url")
	}
}

// Addr returns the listen address of the API server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.ServerHost, c.ServerPort)
}

// PostgresDSN builds the connection string for the postgres driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
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
