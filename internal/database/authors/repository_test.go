package authors

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB) {
	dbPath := "./test_authors_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.Models...))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	})

	return NewRepository(db), db
}

func TestRepository_CreateAndGetAuthor(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()
	born := time.Date(1973, time.June, 6, 0, 0, 0, 0, time.UTC)

	author := &entities.Author{FirstName: "Patrick", FamilyName: "Rothfuss", DateOfBirth: &born}
	require.NoError(t, repo.CreateAuthor(ctx, author))
	assert.NotZero(t, author.ID)

	got, err := repo.GetAuthor(ctx, author.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Rothfuss, Patrick", got.Name())
	require.NotNil(t, got.DateOfBirth)
	assert.Equal(t, "1973-06-06", got.ISODateOfBirth())
	assert.Nil(t, got.DateOfDeath)
}

func TestRepository_GetAuthor_Missing(t *testing.T) {
	repo, _ := setupTestDB(t)

	got, err := repo.GetAuthor(context.Background(), 999)

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepository_ListAuthors_OrderedByFamilyName(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	for _, a := range []entities.Author{
		{FirstName: "Isaac", FamilyName: "Asimov"},
		{FirstName: "Ben", FamilyName: "Bova"},
		{FirstName: "Bob", FamilyName: "Billings"},
	} {
		a := a
		require.NoError(t, repo.CreateAuthor(ctx, &a))
	}

	authors, err := repo.ListAuthors(ctx)
	require.NoError(t, err)
	require.Len(t, authors, 3)
	assert.Equal(t, "Asimov", authors[0].FamilyName)
	assert.Equal(t, "Billings", authors[1].FamilyName)
	assert.Equal(t, "Bova", authors[2].FamilyName)
}

func TestRepository_UpdateAuthor_ReplacesAllFields(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()
	born := time.Date(1920, time.January, 2, 0, 0, 0, 0, time.UTC)

	author := &entities.Author{FirstName: "Isaac", FamilyName: "Asimov", DateOfBirth: &born}
	require.NoError(t, repo.CreateAuthor(ctx, author))

	ok, err := repo.UpdateAuthor(ctx, &entities.Author{ID: author.ID, FirstName: "I.", FamilyName: "Asimov"})
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetAuthor(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "I.", got.FirstName)
	assert.Nil(t, got.DateOfBirth)
}

func TestRepository_UpdateAuthor_Missing(t *testing.T) {
	repo, _ := setupTestDB(t)

	ok, err := repo.UpdateAuthor(context.Background(), &entities.Author{ID: 42, FirstName: "A", FamilyName: "B"})

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRepository_DeleteAndCountAuthors(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	author := &entities.Author{FirstName: "Jim", FamilyName: "Jones"}
	require.NoError(t, repo.CreateAuthor(ctx, author))

	count, err := repo.CountAuthors(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, repo.DeleteAuthor(ctx, author.ID))

	count, err = repo.CountAuthors(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
