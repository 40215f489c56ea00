package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/receitas/backend/internal/model"
)

// StorageKey applies prefix to key.
func StorageKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + ":" + key
}

// GormKV persists a single JSON value of type T in the storage_entries table.
type GormKV[T any] struct {
	db  *gorm.DB
	key string
}

// NewGormKV creates a value stored under key.
func NewGormKV[T any](db *gorm.DB, key string) *GormKV[T] {
	return &GormKV[T]{db: db, key: key}
}

// Load returns the stored value or model.ErrNotFound.
func (s *GormKV[T]) Load(ctx context.Context) (T, error) {
	var zero T
	var e Entry
	err := s.db.WithContext(ctx).Where("storage_key = ?", s.key).Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return zero, fmt.Errorf("%s: %w", s.key, model.ErrNotFound)
	}
	if err != nil {
		return zero, fmt.Errorf("load %s: %w", s.key, err)
	}
	return decode[T](s.key, []byte(e.Value))
}

// Save replaces the stored value.
func (s *GormKV[T]) Save(ctx context.Context, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.key, err)
	}
	e := Entry{Key: s.key, Value: string(data)}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "storage_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
	if err != nil {
		return fmt.Errorf("save %s: %w", s.key, err)
	}
	return nil
}

// RedisKV persists a single JSON value of type T under a Redis key.
type RedisKV[T any] struct {
	client *redis.Client
	key    string
}

// NewRedisKV creates a value stored under key.
func NewRedisKV[T any](client *redis.Client, key string) *RedisKV[T] {
	return &RedisKV[T]{client: client, key: key}
}

// Load returns the stored value or model.ErrNotFound.
func (s *RedisKV[T]) Load(ctx context.Context) (T, error) {
	var zero T
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, fmt.Errorf("%s: %w", s.key, model.ErrNotFound)
	}
	if err != nil {
		return zero, fmt.Errorf("load %s: %w", s.key, err)
	}
	return decode[T](s.key, data)
}

// Save replaces the stored value. Keys never expire.
func (s *RedisKV[T]) Save(ctx context.Context, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.key, err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("save %s: %w", s.key, err)
	}
	return nil
}

// MemoryKV keeps the encoded value in process. Used by tests and the memory driver.
type MemoryKV[T any] struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryKV creates an empty value.
func NewMemoryKV[T any]() *MemoryKV[T] {
	return &MemoryKV[T]{}
}

func (s *MemoryKV[T]) Load(ctx context.Context) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		var zero T
		return zero, model.ErrNotFound
	}
	return decode[T]("memory", s.data)
}

func (s *MemoryKV[T]) Save(ctx context.Context, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

func decode[T any](key string, data []byte) (T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("decode %s: %w", key, err)
	}
	return v, nil
}
