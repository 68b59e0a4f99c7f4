package database

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/kiervincent5/travel-planner/internal/config"
	"github.com/kiervincent5/travel-planner/internal/ports"
	"github.com/kiervincent5/travel-planner/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := Open(config.DatabaseConfig{Driver: config.DatabaseDriverSQLite, SQLitePath: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, RunMigrations(db))
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db, mock
}

func newUser(username, email string) *ports.UserData {
	return &ports.UserData{Username: username, Email: email, PasswordHash: "$2a$10$hash"}
}

func TestUserRepository_Create(t *testing.T) {
	repo := NewUserRepositoryAdapter(setupTestDB(t))
	ctx := context.Background()

	user := newUser("juan", "juan@example.com")
	err := repo.Create(ctx, user)

	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestUserRepository_CreateDuplicate(t *testing.T) {
	repo := NewUserRepositoryAdapter(setupTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newUser("juan", "juan@example.com")))

	tests := []struct {
		name string
		user *ports.UserData
	}{
		{name: "SameEmail", user: newUser("other", "juan@example.com")},
		{name: "SameUsername", user: newUser("juan", "other@example.com")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(ctx, tt.user)
			assert.True(t, errors.IsAlreadyExistsError(err))
		})
	}
}

func TestUserRepository_CreateNil(t *testing.T) {
	repo := NewUserRepositoryAdapter(setupTestDB(t))
	assert.True(t, errors.IsValidationError(repo.Create(context.Background(), nil)))
}

func TestUserRepository_FindByID(t *testing.T) {
	repo := NewUserRepositoryAdapter(setupTestDB(t))
	ctx := context.Background()
	user := newUser("maria", "maria@example.com")
	require.NoError(t, repo.Create(ctx, user))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "maria", found.Username)
	assert.Equal(t, "$2a$10$hash", found.PasswordHash)

	_, err = repo.FindByID(ctx, user.ID+100)
	assert.True(t, errors.IsNotFoundError(err))

	_, err = repo.FindByID(ctx, 0)
	assert.True(t, errors.IsValidationError(err))
}

func TestUserRepository_FindByEmail(t *testing.T) {
	repo := NewUserRepositoryAdapter(setupTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newUser("ana", "ana@example.com")))

	found, err := repo.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "ana", found.Username)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.True(t, errors.IsNotFoundError(err))
}

func TestUserRepository_ExistsByEmailOrUsername(t *testing.T) {
	repo := NewUserRepositoryAdapter(setupTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newUser("leo", "leo@example.com")))

	tests := []struct {
		name     string
		email    string
		username string
		expected bool
	}{
		{name: "EmailTaken", email: "leo@example.com", username: "someone", expected: true},
		{name: "UsernameTaken", email: "new@example.com", username: "leo", expected: true},
		{name: "Free", email: "new@example.com", username: "someone", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exists, err := repo.ExistsByEmailOrUsername(ctx, tt.email, tt.username)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, exists)
		})
	}
}

func TestUserRepository_DriverFailuresAreDatabaseErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("FindByEmail", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnError(stderrors.New("connection reset"))

		_, err := NewUserRepositoryAdapter(db).FindByEmail(ctx, "ana@example.com")

		assert.True(t, errors.IsDatabaseError(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ExistsByEmailOrUsername", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).WillReturnError(stderrors.New("connection reset"))

		_, err := NewUserRepositoryAdapter(db).ExistsByEmailOrUsername(ctx, "ana@example.com", "ana")

		assert.True(t, errors.IsDatabaseError(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("FindByIDRowsScanned", func(t *testing.T) {
		db, mock := setupMockDB(t)
		rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash"}).
			AddRow(9, "rico", "rico@example.com", "hash")
		mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(rows)

		user, err := NewUserRepositoryAdapter(db).FindByID(ctx, 9)

		require.NoError(t, err)
		assert.Equal(t, "rico@example.com", user.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: config.DatabaseDriverUnknown})
	assert.True(t, errors.IsConfigurationError(err))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueViolation(stderrors.New(`ERROR: duplicate key value violates unique constraint "idx_users_email"`)))
	assert.True(t, isUniqueViolation(stderrors.New("UNIQUE constraint failed: users.email")))
	assert.False(t, isUniqueViolation(stderrors.New("connection refused")))
}
