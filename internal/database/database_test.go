package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/receitas/backend/config"
	"github.com/pageza/receitas/backend/internal/database"
	"github.com/pageza/receitas/backend/internal/logging"
	"github.com/pageza/receitas/backend/internal/model"
	"github.com/pageza/receitas/backend/internal/service"
	"github.com/pageza/receitas/backend/internal/testdb"
)

func favoritesFixture() []model.Recipe {
	r := model.Recipe{ID: "52772", Name: "Teriyaki Chicken Casserole", Category: "Chicken"}
	r.Ingredients[0] = model.Ingredient{Name: "soy sauce", Measure: "3/4 cup"}
	r.Ingredients[5] = model.Ingredient{Name: "garlic", Measure: "1 clove"}
	return []model.Recipe{r, {ID: "53049", Name: "Apam balik"}}
}

// exercise runs the same round trip against every adapter.
func exercise(t *testing.T, favorites service.Persistence[[]model.Recipe], locale service.Persistence[model.Locale]) {
	t.Helper()
	ctx := context.Background()

	_, err := favorites.Load(ctx)
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = locale.Load(ctx)
	assert.ErrorIs(t, err, model.ErrNotFound)

	want := favoritesFixture()
	require.NoError(t, favorites.Save(ctx, want))
	got, err := favorites.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, favorites.Save(ctx, want[:1]))
	got, err = favorites.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1, "save replaces the whole value")

	require.NoError(t, locale.Save(ctx, model.LocaleES))
	l, err := locale.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.LocaleES, l)
}

func TestStorageKey(t *testing.T) {
	assert.Equal(t, service.FavoritesKey, database.StorageKey("", service.FavoritesKey))
	assert.Equal(t, "tenant:recipe-language-storage", database.StorageKey("tenant", service.LocaleKey))
}

func TestMemoryKV(t *testing.T) {
	exercise(t, database.NewMemoryKV[[]model.Recipe](), database.NewMemoryKV[model.Locale]())
}

func TestMemoryKVReturnsCopies(t *testing.T) {
	ctx := context.Background()
	kv := database.NewMemoryKV[[]model.Recipe]()
	value := favoritesFixture()
	require.NoError(t, kv.Save(ctx, value))

	value[0].Name = "mutated"
	got, err := kv.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Teriyaki Chicken Casserole", got[0].Name)
}

func TestGormKVSQLite(t *testing.T) {
	db := testdb.SetupSQLite(t)
	exercise(t,
		database.NewGormKV[[]model.Recipe](db.DB, service.FavoritesKey),
		database.NewGormKV[model.Locale](db.DB, service.LocaleKey),
	)

	var count int64
	require.NoError(t, db.DB.Model(&database.Entry{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestGormKVKeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	db := testdb.SetupSQLite(t)

	a := database.NewGormKV[model.Locale](db.DB, database.StorageKey("a", service.LocaleKey))
	b := database.NewGormKV[model.Locale](db.DB, database.StorageKey("b", service.LocaleKey))
	require.NoError(t, a.Save(ctx, model.LocaleEN))

	_, err := b.Load(ctx)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestGormKVCorruptValue(t *testing.T) {
	ctx := context.Background()
	db := testdb.SetupSQLite(t)
	require.NoError(t, db.DB.Create(&database.Entry{Key: service.FavoritesKey, Value: "{not json"}).Error)

	_, err := database.NewGormKV[[]model.Recipe](db.DB, service.FavoritesKey).Load(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrNotFound)
}

func TestHealthCheck(t *testing.T) {
	db := testdb.SetupSQLite(t)
	assert.NoError(t, database.HealthCheck(context.Background(), db.DB))
}

func TestOpenRejectsNonSQLDriver(t *testing.T) {
	cfg := config.Defaults()
	cfg.StorageDriver = config.DriverRedis
	_, err := database.Open(cfg, logging.NewNop())
	assert.Error(t, err)
}

func TestGormKVPostgres(t *testing.T) {
	db := testdb.SetupPostgres(t)
	exercise(t,
		database.NewGormKV[[]model.Recipe](db.DB, service.FavoritesKey),
		database.NewGormKV[model.Locale](db.DB, service.LocaleKey),
	)
}

func TestRedisKV(t *testing.T) {
	client := testdb.SetupRedis(t)
	exercise(t,
		database.NewRedisKV[[]model.Recipe](client, service.FavoritesKey),
		database.NewRedisKV[model.Locale](client, service.LocaleKey),
	)

	raw, err := client.Get(context.Background(), service.LocaleKey).Result()
	require.NoError(t, err)
	assert.Equal(t, `"es"`, raw)
}
