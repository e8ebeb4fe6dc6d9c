package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/aditya-1123/Voting-App/internal/migrations"
	"github.com/aditya-1123/Voting-App/internal/models"
)

// setupTestStorage поднимает контейнер postgres, накатывает миграции
// и возвращает готовое хранилище.
func setupTestStorage(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db, migrationsPath))

	cleanup := func() {
		db.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}
	return &Storage{DB: db}, cleanup
}

// TestDataFactory создает тестовые записи с известными идентификаторами.
type TestDataFactory struct {
	t       *testing.T
	storage *Storage
}

func NewTestDataFactory(t *testing.T, storage *Storage) *TestDataFactory {
	return &TestDataFactory{t: t, storage: storage}
}

// CreateVoter добавляет пользователя с ролью voter и возвращает его UID.
func (f *TestDataFactory) CreateVoter(username string) string {
	uid := uuid.NewString()
	_, err := f.storage.DB.Exec(
		`INSERT INTO users (uid, username, email, role, password_hash)
		 VALUES ($1, $2, $3, 'voter', 'x')`,
		uid, username, username+"@example.com")
	require.NoError(f.t, err)
	return uid
}

// CreateAdmin добавляет пользователя с ролью admin и возвращает его UID.
func (f *TestDataFactory) CreateAdmin(username string) string {
	uid := uuid.NewString()
	_, err := f.storage.DB.Exec(
		`INSERT INTO users (uid, username, email, role, password_hash)
		 VALUES ($1, $2, $3, 'admin', 'x')`,
		uid, username, username+"@example.com")
	require.NoError(f.t, err)
	return uid
}

// CreateCandidate добавляет кандидата и возвращает его ID.
func (f *TestDataFactory) CreateCandidate(name, party string) int {
	id, err := f.storage.CreateCandidate(context.Background(), models.Candidate{
		Name:  name,
		Party: party,
	})
	require.NoError(f.t, err)
	return id
}
