package integration

import (
	"context"
	"testing"

	"github.com/catalog/backend/internal/domain/catalog"
	"github.com/catalog/backend/internal/domain/shared"
	"github.com/catalog/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCatalogJobRepository_Integration tests the job repository against a real PostgreSQL database
func TestCatalogJobRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	repo := persistence.NewGormCatalogJobRepository(testDB.DB)
	ctx := context.Background()

	t.Run("Save and FindByID", func(t *testing.T) {
		job, err := catalog.NewJob("Acme Corp", "Tecnologia", []catalog.Selection{
			{Item: "camiseta", Color: "preto"},
			{Item: "caneca", Color: "branco"},
		})
		require.NoError(t, err)

		err = repo.Save(ctx, job)
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, job.ID, found.ID)
		assert.Equal(t, "Acme Corp", found.CustomerName)
		assert.Equal(t, catalog.JobStatusPending, found.Status)
		assert.Len(t, found.Selections(), 2)
	})

	t.Run("status transitions survive persistence", func(t *testing.T) {
		job, err := catalog.NewJob("Beta Ltd", "Moda", []catalog.Selection{
			{Item: "bone", Color: "azul"},
		})
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, job))

		require.NoError(t, job.Start())
		require.NoError(t, job.AdvanceProgress(40))
		require.NoError(t, repo.Save(ctx, job))

		found, err := repo.FindByID(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, catalog.JobStatusProcessing, found.Status)
		assert.Equal(t, 40, found.Progress)

		require.NoError(t, found.Complete("https://cdn.example.com/catalog.pdf"))
		require.NoError(t, repo.Save(ctx, found))

		final, err := repo.FindByID(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, catalog.JobStatusCompleted, final.Status)
		assert.Equal(t, 100, final.Progress)
		assert.Equal(t, "https://cdn.example.com/catalog.pdf", final.ResultURL)
	})

	t.Run("FindByID returns ErrNotFound for unknown job", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("FindAll filters by status", func(t *testing.T) {
		testDB.CleanTables()

		for i := 0; i < 3; i++ {
			job, err := catalog.NewJob("Customer", "Saúde", []catalog.Selection{
				{Item: "camiseta", Color: "preto"},
			})
			require.NoError(t, err)
			if i == 0 {
				require.NoError(t, job.Start())
			}
			require.NoError(t, repo.Save(ctx, job))
		}

		filter := shared.DefaultFilter()
		filter.Filters = map[string]interface{}{"status": string(catalog.JobStatusPending)}

		jobs, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, jobs, 2)

		count, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}

// TestTemplateRepository_Integration tests the template repository against a real PostgreSQL database
func TestTemplateRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	repo := persistence.NewGormTemplateRepository(testDB.DB)
	ctx := context.Background()

	t.Run("Save and Lookup", func(t *testing.T) {
		tpl, err := catalog.NewTemplate("camiseta", "preto", catalog.BackgroundToneDark, "https://cdn.example.com/tpl.pdf")
		require.NoError(t, err)

		require.NoError(t, repo.Save(ctx, tpl))

		found, err := repo.Lookup(ctx, "camiseta", "preto")
		require.NoError(t, err)
		assert.Equal(t, tpl.ID, found.ID)
		assert.Equal(t, catalog.BackgroundToneDark, found.Background)
	})

	t.Run("Lookup unknown pair returns ErrNotFound", func(t *testing.T) {
		_, err := repo.Lookup(ctx, "camiseta", "roxo")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("duplicate item and color pair is rejected", func(t *testing.T) {
		tpl, err := catalog.NewTemplate("caneca", "branco", catalog.BackgroundToneLight, "")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, tpl))

		dup, err := catalog.NewTemplate("caneca", "branco", catalog.BackgroundToneDark, "")
		require.NoError(t, err)
		assert.Error(t, repo.Save(ctx, dup))
	})

	t.Run("Delete removes the template", func(t *testing.T) {
		tpl, err := catalog.NewTemplate("bone", "azul", catalog.BackgroundToneLight, "")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, tpl))

		require.NoError(t, repo.Delete(ctx, tpl.ID))

		_, err = repo.FindByID(ctx, tpl.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
