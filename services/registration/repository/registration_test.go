package repository_test

import (
	"context"
	"testing"

	"studentportal/config"
	"studentportal/domain"
	"studentportal/services/registration/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, config.AutoMigrate(db))
	return db
}

func TestCreate_AssignsIDAndTimestamps(t *testing.T) {
	repo := repository.NewRegistrationRepository(newTestDB(t))

	reg := domain.NewRegistration(domain.Document{"fullName": "Ann", "course": "B.Sc"})
	require.NoError(t, repo.Create(context.Background(), reg))

	assert.Len(t, reg.ID, 36)
	assert.False(t, reg.CreatedAt.IsZero())
	assert.False(t, reg.UpdatedAt.IsZero())
}

func TestGetAll_RoundTripsDocument(t *testing.T) {
	repo := repository.NewRegistrationRepository(newTestDB(t))
	ctx := context.Background()

	doc := domain.Document{
		"fullName":   "Ann",
		"age":        "21",
		"course":     "B.Sc",
		"skills":     []interface{}{"HTML", "CSS"},
		"profilePic": "me.png",
		"internalId": "student-123",
		"name":       "legacy name stays as sent",
	}
	require.NoError(t, repo.Create(ctx, domain.NewRegistration(doc)))

	regs, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, regs, 1)

	got := regs[0]
	assert.Equal(t, "Ann", got.FullName)
	assert.Equal(t, "B.Sc", got.Course)
	assert.Equal(t, "21", got.Document["age"])
	assert.Equal(t, []interface{}{"HTML", "CSS"}, got.Document["skills"])
	assert.Equal(t, "legacy name stays as sent", got.Document["name"])
	assert.NotContains(t, got.Document, "year")
}

func TestGetAll_NewestFirst(t *testing.T) {
	repo := repository.NewRegistrationRepository(newTestDB(t))
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Create(ctx, domain.NewRegistration(domain.Document{"fullName": name})))
	}

	regs, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, regs, 3)
	assert.Equal(t, "third", regs[0].FullName)
	assert.Equal(t, "second", regs[1].FullName)
	assert.Equal(t, "first", regs[2].FullName)
}

func TestGetAll_EmptyIsNotNil(t *testing.T) {
	repo := repository.NewRegistrationRepository(newTestDB(t))

	regs, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, regs)
	assert.Empty(t, regs)
}

func TestDuplicateSubmitsCreateDistinctRecords(t *testing.T) {
	repo := repository.NewRegistrationRepository(newTestDB(t))
	ctx := context.Background()

	doc := domain.Document{"fullName": "Ann"}
	a := domain.NewRegistration(doc)
	b := domain.NewRegistration(doc)
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	assert.NotEqual(t, a.ID, b.ID)
	regs, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, regs, 2)
}

func TestStoreFailuresAreStorageErrors(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewRegistrationRepository(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = repo.GetAll(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsStorageError(err))

	reg := domain.NewRegistration(domain.Document{"fullName": "Ann"})
	err = repo.Create(context.Background(), reg)
	require.Error(t, err)
	assert.True(t, domain.IsStorageError(err))
	assert.Empty(t, reg.ID)
}
