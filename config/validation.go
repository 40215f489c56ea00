package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/pageza/receitas/backend/internal/model"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates every problem found in one pass.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// ValidateConfig checks if the configuration is usable for its environment
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port <= 0 || port > 65535 {
		add("SERVER_PORT", "invalid port %q", cfg.ServerPort)
	}

	for field, raw := range map[string]string{"MEALDB_BASE_URL": cfg.MealDBBaseURL, "TRANSLATE_URL": cfg.TranslateURL} {
		if u, err := url.Parse(raw); err != nil || u.Scheme == "" || u.Host == "" {
			add(field, "invalid URL %q", raw)
		}
	}

	if _, err := model.ParseLocale(cfg.DefaultLocale); err != nil {
		add("DEFAULT_LOCALE", "unsupported locale %q", cfg.DefaultLocale)
	}

	switch cfg.StorageDriver {
	case DriverMemory:
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			add("SQLITE_PATH", "is required for the sqlite driver")
		}
	case DriverPostgres:
		if cfg.DBHost == "" {
			add("DB_HOST", "is required for the postgres driver")
		}
		if cfg.DBName == "" {
			add("DB_NAME", "is required for the postgres driver")
		}
		if cfg.DBUser == "" {
			add("DB_USER", "is required for the postgres driver")
		}
		// In production, sensitive values must come from Docker secrets
		if cfg.Environment == Production && cfg.DBPassword == "" {
			add("db_password", "secret is required in production")
		}
	case DriverRedis:
		if cfg.RedisURL == "" && cfg.RedisHost == "" {
			add("REDIS_HOST", "REDIS_URL or REDIS_HOST is required for the redis driver")
		}
	default:
		add("STORAGE_DRIVER", "unknown driver %q", cfg.StorageDriver)
	}

	if cfg.RedisDB < 0 {
		add("REDIS_DB", "must not be negative")
	}
	if cfg.RateLimitPerMinute < 0 {
		add("RATE_LIMIT_PER_MINUTE", "must not be negative")
	}
	if cfg.ExportURLTTL <= 0 {
		add("EXPORT_URL_TTL", "must be positive")
	}

	for _, origin := range cfg.CORSOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			add("CORS_ORIGINS", "origin %q must be * or start with http:// or https://", origin)
		}
	}

	switch strings.ToLower(cfg.LogFormat) {
	case "", "text", "console", "json":
	default:
		add("LOG_FORMAT", "unsupported value %q", cfg.LogFormat)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
