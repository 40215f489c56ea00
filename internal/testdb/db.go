// Package testdb provisions databases for tests: a file-backed sqlite
// database, and postgres or redis containers when docker is available.
package testdb

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/pageza/receitas/backend/config"
	"github.com/pageza/receitas/backend/internal/database"
	"github.com/pageza/receitas/backend/internal/logging"
)

// TestDB wraps a migrated test database instance
type TestDB struct {
	DB        *gorm.DB
	Config    *config.Config
	Container testcontainers.Container
}

// Close cleans up the test database
func (td *TestDB) Close() error {
	if err := database.Close(td.DB); err != nil {
		return err
	}
	if td.Container != nil {
		return td.Container.Terminate(context.Background())
	}
	return nil
}

// SetupSQLite creates a migrated sqlite database in a temporary directory.
func SetupSQLite(t *testing.T) *TestDB {
	t.Helper()

	cfg := config.Defaults()
	cfg.StorageDriver = config.DriverSQLite
	cfg.SQLitePath = filepath.Join(t.TempDir(), "receitas.db")

	return open(t, cfg, nil)
}

// SetupPostgres starts a postgres container and returns a migrated database.
func SetupPostgres(t *testing.T) *TestDB {
	t.Helper()
	requireDocker(t)

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test",
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort("5432/tcp"),
		).WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	// Get container host and port
	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	cfg := config.Defaults()
	cfg.StorageDriver = config.DriverPostgres
	cfg.DBHost = host
	cfg.DBPort = port.Port()
	cfg.DBUser = "test"
	cfg.DBPassword = "test"
	cfg.DBName = "test"

	return open(t, cfg, container)
}

// SetupRedis starts a redis container and returns a connected client.
func SetupRedis(t *testing.T) *redis.Client {
	t.Helper()
	requireDocker(t)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate redis container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	cfg := config.Defaults()
	cfg.RedisHost = host
	cfg.RedisPort = port.Port()

	client, err := database.NewRedisClient(cfg, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func open(t *testing.T, cfg *config.Config, container testcontainers.Container) *TestDB {
	t.Helper()
	log := logging.NewNop()

	db, err := database.Open(cfg, log)
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db, log))

	testDB := &TestDB{DB: db, Config: cfg, Container: container}

	// Register cleanup
	t.Cleanup(func() {
		if err := testDB.Close(); err != nil {
			t.Logf("Error cleaning up test database: %v", err)
		}
	})
	return testDB
}

func requireDocker(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not installed, skipping container-based test")
	}
}
