package persistence

import (
	"context"
	"testing"

	"github.com/catalog/backend/internal/domain/catalog"
	"github.com/catalog/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupCatalogJobTestDB creates an in-memory SQLite database for testing
func setupCatalogJobTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE catalog_jobs (
			id TEXT PRIMARY KEY,
			customer_name TEXT NOT NULL,
			industry TEXT NOT NULL,
			status TEXT NOT NULL,
			progress INTEGER NOT NULL DEFAULT 0,
			result_url TEXT,
			error_message TEXT,
			metadata TEXT,
			version INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error
	require.NoError(t, err)

	return db
}

func newTestJob(t *testing.T) *catalog.Job {
	t.Helper()
	job, err := catalog.NewJob("Acme Co", "construction", []catalog.Selection{
		{Item: "tshirt", Color: "black"},
		{Item: "hoodie", Color: "white"},
	})
	require.NoError(t, err)
	return job
}

func TestGormCatalogJobRepository_SaveAndFindByID(t *testing.T) {
	db := setupCatalogJobTestDB(t)
	repo := NewGormCatalogJobRepository(db)
	ctx := context.Background()

	job := newTestJob(t)
	require.NoError(t, repo.Save(ctx, job))

	retrieved, err := repo.FindByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, retrieved.ID)
	assert.Equal(t, "Acme Co", retrieved.CustomerName)
	assert.Equal(t, "construction", retrieved.Industry)
	assert.Equal(t, catalog.JobStatusPending, retrieved.Status)
	assert.Equal(t, 0, retrieved.Progress)
}

func TestGormCatalogJobRepository_MetadataRoundTrip(t *testing.T) {
	db := setupCatalogJobTestDB(t)
	repo := NewGormCatalogJobRepository(db)
	ctx := context.Background()

	job := newTestJob(t)
	require.NoError(t, repo.Save(ctx, job))

	retrieved, err := repo.FindByID(ctx, job.ID)
	require.NoError(t, err)

	// Metadata comes back through a JSON column, so numbers decode as float64
	assert.EqualValues(t, 2, retrieved.Metadata["total_pages"])

	sels := retrieved.Selections()
	require.Len(t, sels, 2)
	assert.Equal(t, catalog.Selection{Item: "tshirt", Color: "black"}, sels[0])
	assert.Equal(t, catalog.Selection{Item: "hoodie", Color: "white"}, sels[1])
}

func TestGormCatalogJobRepository_UpdatePersistsLifecycle(t *testing.T) {
	db := setupCatalogJobTestDB(t)
	repo := NewGormCatalogJobRepository(db)
	ctx := context.Background()

	job := newTestJob(t)
	require.NoError(t, repo.Save(ctx, job))

	require.NoError(t, job.Start())
	require.NoError(t, job.AdvanceProgress(25))
	require.NoError(t, repo.Save(ctx, job))

	retrieved, err := repo.FindByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, catalog.JobStatusProcessing, retrieved.Status)
	assert.Equal(t, 25, retrieved.Progress)

	require.NoError(t, job.Complete("https://storage.example.com/catalogs/acme.pdf"))
	require.NoError(t, repo.Save(ctx, job))

	retrieved, err = repo.FindByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, catalog.JobStatusCompleted, retrieved.Status)
	assert.Equal(t, 100, retrieved.Progress)
	assert.Equal(t, "https://storage.example.com/catalogs/acme.pdf", retrieved.ResultURL)
}

func TestGormCatalogJobRepository_FailedJobKeepsError(t *testing.T) {
	db := setupCatalogJobTestDB(t)
	repo := NewGormCatalogJobRepository(db)
	ctx := context.Background()

	job := newTestJob(t)
	require.NoError(t, job.Fail("Logo processing workflow failed: webhook returned 502"))
	require.NoError(t, repo.Save(ctx, job))

	retrieved, err := repo.FindByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, catalog.JobStatusFailed, retrieved.Status)
	assert.Contains(t, retrieved.ErrorMessage, "webhook returned 502")
	assert.Empty(t, retrieved.ResultURL)
}

func TestGormCatalogJobRepository_FindByID_NotFound(t *testing.T) {
	db := setupCatalogJobTestDB(t)
	repo := NewGormCatalogJobRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.Equal(t, shared.ErrNotFound, err)
}

func TestGormCatalogJobRepository_FindAllAndCount(t *testing.T) {
	db := setupCatalogJobTestDB(t)
	repo := NewGormCatalogJobRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Save(ctx, newTestJob(t)))
	}

	filter := shared.DefaultFilter()
	jobs, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, jobs, 3)

	count, err := repo.Count(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestGormCatalogJobRepository_FilterByStatus(t *testing.T) {
	db := setupCatalogJobTestDB(t)
	repo := NewGormCatalogJobRepository(db)
	ctx := context.Background()

	pending := newTestJob(t)
	require.NoError(t, repo.Save(ctx, pending))

	failed := newTestJob(t)
	require.NoError(t, failed.Fail("boom"))
	require.NoError(t, repo.Save(ctx, failed))

	filter := shared.DefaultFilter()
	filter.Filters["status"] = "failed"

	jobs, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, failed.ID, jobs[0].ID)

	count, err := repo.Count(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGormCatalogJobRepository_Pagination(t *testing.T) {
	db := setupCatalogJobTestDB(t)
	repo := NewGormCatalogJobRepository(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Save(ctx, newTestJob(t)))
	}

	filter := shared.DefaultFilter()
	filter.Page = 2
	filter.PageSize = 2

	jobs, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
}
