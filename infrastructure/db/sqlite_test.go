package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/prasetyowira/qrgen/constant"
	"github.com/prasetyowira/qrgen/domain/generator"
	"github.com/prasetyowira/qrgen/domain/payload"
	"github.com/stretchr/testify/assert"
)

// testDBPath is the path to the test database file
const testDBPath = "test.db"

// Helper function to clean up test database
func cleanupTestDB(t *testing.T) {
	err := os.Remove(testDBPath)
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("Failed to clean up test database: %v", err)
	}
}

// Helper function to create a test repository
func createTestRepository(t *testing.T, historyCap int) *SQLiteRepository {
	cleanupTestDB(t)

	repo, err := NewSQLiteRepository(testDBPath, historyCap)
	if err != nil {
		t.Fatalf("Failed to create test repository: %v", err)
	}

	return repo
}

func testGeneration(id string, createdAt time.Time) *generator.Generation {
	return &generator.Generation{
		ID:          id,
		PayloadType: payload.TypeURL,
		Content:     "https://example.com",
		Size:        256,
		Level:       "M",
		PNG:         []byte("png-bytes-" + id),
		CreatedAt:   createdAt,
	}
}

func TestNewSQLiteRepository(t *testing.T) {
	// Cleanup after test
	defer cleanupTestDB(t)

	// Act
	repo, err := NewSQLiteRepository(testDBPath, 20)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, repo)
	assert.NotNil(t, repo.db)

	// Clean up
	err = repo.Close()
	assert.NoError(t, err)
}

func TestNewSQLiteRepository_InvalidPath(t *testing.T) {
	// Act - Try to create a repository with an invalid path
	repo, err := NewSQLiteRepository("/invalid/path/db.sqlite", 20)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, repo)
}

func TestSQLiteRepository_Store(t *testing.T) {
	// Arrange
	repo := createTestRepository(t, 20)
	defer cleanupTestDB(t)
	defer repo.Close()

	gen := testGeneration("gen-1", time.Now().Truncate(time.Second))

	// Act
	err := repo.Store(context.Background(), gen)

	// Assert
	assert.NoError(t, err)
}

func TestSQLiteRepository_Store_DuplicateID(t *testing.T) {
	// Arrange
	repo := createTestRepository(t, 20)
	defer cleanupTestDB(t)
	defer repo.Close()

	gen1 := testGeneration("gen-1", time.Now())
	gen2 := testGeneration("gen-1", time.Now())

	// Act
	err1 := repo.Store(context.Background(), gen1)
	err2 := repo.Store(context.Background(), gen2)

	// Assert
	assert.NoError(t, err1)
	assert.Error(t, err2)
}

func TestSQLiteRepository_FindByID(t *testing.T) {
	// Arrange
	repo := createTestRepository(t, 20)
	defer cleanupTestDB(t)
	defer repo.Close()

	ctx := context.Background()
	createdAt := time.Now().Truncate(time.Second) // SQLite may not preserve nanoseconds
	stored := testGeneration("gen-1", createdAt)
	err := repo.Store(ctx, stored)
	assert.NoError(t, err)

	// Act
	found, err := repo.FindByID(ctx, "gen-1")

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, found)
	assert.Equal(t, stored.ID, found.ID)
	assert.Equal(t, stored.PayloadType, found.PayloadType)
	assert.Equal(t, stored.Content, found.Content)
	assert.Equal(t, stored.PNG, found.PNG)
}

func TestSQLiteRepository_FindByID_NotFound(t *testing.T) {
	// Arrange
	repo := createTestRepository(t, 20)
	defer cleanupTestDB(t)
	defer repo.Close()

	// Act
	found, err := repo.FindByID(context.Background(), "missing")

	// Assert
	assert.Error(t, err)
	assert.Equal(t, constant.ErrGenerationNotFound, err.Error())
	assert.Nil(t, found)
}

func TestSQLiteRepository_ListRecent_NewestFirst(t *testing.T) {
	// Arrange
	repo := createTestRepository(t, 20)
	defer cleanupTestDB(t)
	defer repo.Close()

	ctx := context.Background()
	base := time.Now().Truncate(time.Second)
	assert.NoError(t, repo.Store(ctx, testGeneration("gen-1", base.Add(-2*time.Minute))))
	assert.NoError(t, repo.Store(ctx, testGeneration("gen-2", base.Add(-1*time.Minute))))
	assert.NoError(t, repo.Store(ctx, testGeneration("gen-3", base)))

	// Act
	generations, err := repo.ListRecent(ctx, 10)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, generations, 3)
	assert.Equal(t, "gen-3", generations[0].ID)
	assert.Equal(t, "gen-2", generations[1].ID)
	assert.Equal(t, "gen-1", generations[2].ID)
}

func TestSQLiteRepository_ListRecent_Limit(t *testing.T) {
	// Arrange
	repo := createTestRepository(t, 20)
	defer cleanupTestDB(t)
	defer repo.Close()

	ctx := context.Background()
	base := time.Now().Truncate(time.Second)
	assert.NoError(t, repo.Store(ctx, testGeneration("gen-1", base.Add(-1*time.Minute))))
	assert.NoError(t, repo.Store(ctx, testGeneration("gen-2", base)))

	// Act
	generations, err := repo.ListRecent(ctx, 1)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, generations, 1)
	assert.Equal(t, "gen-2", generations[0].ID)
}

func TestSQLiteRepository_Store_PrunesBeyondCap(t *testing.T) {
	// Arrange - a cap of 2 retained generations
	repo := createTestRepository(t, 2)
	defer cleanupTestDB(t)
	defer repo.Close()

	ctx := context.Background()
	base := time.Now().Truncate(time.Second)

	// Act
	assert.NoError(t, repo.Store(ctx, testGeneration("gen-1", base.Add(-2*time.Minute))))
	assert.NoError(t, repo.Store(ctx, testGeneration("gen-2", base.Add(-1*time.Minute))))
	assert.NoError(t, repo.Store(ctx, testGeneration("gen-3", base)))

	// Assert - oldest entry pruned, newest two kept
	generations, err := repo.ListRecent(ctx, 10)
	assert.NoError(t, err)
	assert.Len(t, generations, 2)
	assert.Equal(t, "gen-3", generations[0].ID)
	assert.Equal(t, "gen-2", generations[1].ID)

	_, err = repo.FindByID(ctx, "gen-1")
	assert.Error(t, err)
	assert.Equal(t, constant.ErrGenerationNotFound, err.Error())
}
