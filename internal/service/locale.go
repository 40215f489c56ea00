package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pageza/receitas/backend/internal/model"
)

// LocaleStore holds the active locale.
type LocaleStore struct {
	mu     sync.RWMutex
	locale model.Locale
	port   Persistence[model.Locale]
	log    *slog.Logger
}

// NewLocaleStore restores the persisted locale, falling back to fallback
// (model.DefaultLocale when empty).
func NewLocaleStore(ctx context.Context, port Persistence[model.Locale], fallback model.Locale, logger *slog.Logger) *LocaleStore {
	if fallback == "" {
		fallback = model.DefaultLocale
	}
	s := &LocaleStore{locale: fallback, port: port, log: logger}

	saved, err := port.Load(ctx)
	switch {
	case errors.Is(err, model.ErrNotFound):
	case err != nil:
		logger.Warn("failed to load locale, using default", "default", fallback, "error", err)
	case saved != "":
		s.locale = saved
	}
	return s
}

// Get returns the active locale.
func (s *LocaleStore) Get() model.Locale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.locale
}

// Set changes the active locale and persists it. Callers are expected to pass
// a supported locale; see model.ParseLocale.
func (s *LocaleStore) Set(ctx context.Context, locale model.Locale) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.locale = locale
	if err := s.port.Save(ctx, locale); err != nil {
		s.log.Error("failed to persist locale", "locale", locale, "error", err)
		return fmt.Errorf("persist locale: %w", err)
	}
	return nil
}
