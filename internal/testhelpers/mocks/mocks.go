package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/receitas/backend/internal/model"
)

// MockRecipeSource is a mock implementation of the recipe API client
type MockRecipeSource struct {
	mock.Mock
}

func (m *MockRecipeSource) FetchRecipes(ctx context.Context, mode model.SearchMode, query string) []model.Recipe {
	args := m.Called(ctx, mode, query)
	if args.Get(0) == nil {
		return []model.Recipe{}
	}
	return args.Get(0).([]model.Recipe)
}

func (m *MockRecipeSource) LookupRecipe(ctx context.Context, id string) *model.Recipe {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*model.Recipe)
}

func (m *MockRecipeSource) Categories(ctx context.Context) []model.Category {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return []model.Category{}
	}
	return args.Get(0).([]model.Category)
}

// MockTranslator is a mock implementation of translate.Translator
type MockTranslator struct {
	mock.Mock
}

func (m *MockTranslator) Translate(ctx context.Context, text string, target model.Locale) string {
	args := m.Called(ctx, text, target)
	return args.String(0)
}

// MockPersistence is a mock implementation of a single persisted value
type MockPersistence[T any] struct {
	mock.Mock
}

func (m *MockPersistence[T]) Load(ctx context.Context) (T, error) {
	args := m.Called(ctx)
	var zero T
	if args.Get(0) == nil {
		return zero, args.Error(1)
	}
	return args.Get(0).(T), args.Error(1)
}

func (m *MockPersistence[T]) Save(ctx context.Context, value T) error {
	args := m.Called(ctx, value)
	return args.Error(0)
}

// MockObjectStore is a mock implementation of the export object store
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Put(ctx context.Context, key string, body []byte, contentType string) error {
	args := m.Called(ctx, key, body, contentType)
	return args.Error(0)
}

func (m *MockObjectStore) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Error(1)
}
