package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/catalog/backend/internal/domain/catalog"
	"github.com/catalog/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockTemplateRepository creates a GormTemplateRepository with a mocked SQL connection
func newMockTemplateRepository(t *testing.T) (*GormTemplateRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormTemplateRepository(gormDB), mock, mockDB
}

func TestNewGormTemplateRepository(t *testing.T) {
	t.Run("creates repository with valid DB", func(t *testing.T) {
		repo, _, mockDB := newMockTemplateRepository(t)
		defer mockDB.Close()

		assert.NotNil(t, repo)
		assert.NotNil(t, repo.db)
	})
}

func TestGormTemplateRepository_FindByID(t *testing.T) {
	t.Run("finds existing template", func(t *testing.T) {
		repo, mock, mockDB := newMockTemplateRepository(t)
		defer mockDB.Close()

		templateID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "item", "color", "background", "template_url"}).
			AddRow(templateID, "tshirt", "black", "dark", "")

		mock.ExpectQuery(`SELECT \* FROM "templates" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(templateID, 1).
			WillReturnRows(rows)

		template, err := repo.FindByID(context.Background(), templateID)

		assert.NoError(t, err)
		assert.NotNil(t, template)
		assert.Equal(t, templateID, template.ID)
		assert.Equal(t, "tshirt", template.Item)
		assert.Equal(t, catalog.BackgroundToneDark, template.Background)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent template", func(t *testing.T) {
		repo, mock, mockDB := newMockTemplateRepository(t)
		defer mockDB.Close()

		templateID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "templates" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(templateID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		template, err := repo.FindByID(context.Background(), templateID)

		assert.Error(t, err)
		assert.Nil(t, template)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormTemplateRepository_Lookup(t *testing.T) {
	t.Run("resolves item and color pair", func(t *testing.T) {
		repo, mock, mockDB := newMockTemplateRepository(t)
		defer mockDB.Close()

		templateID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "item", "color", "background", "template_url"}).
			AddRow(templateID, "hoodie", "white", "light", "https://cdn.example.com/hoodie_white.png")

		mock.ExpectQuery(`SELECT \* FROM "templates" WHERE item = \$1 AND color = \$2 ORDER BY .* LIMIT .*`).
			WithArgs("hoodie", "white", 1).
			WillReturnRows(rows)

		template, err := repo.Lookup(context.Background(), "hoodie", "white")

		assert.NoError(t, err)
		assert.NotNil(t, template)
		assert.Equal(t, "hoodie", template.Item)
		assert.Equal(t, "white", template.Color)
		assert.Equal(t, catalog.BackgroundToneLight, template.Background)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when no template covers the pair", func(t *testing.T) {
		repo, mock, mockDB := newMockTemplateRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "templates" WHERE item = \$1 AND color = \$2 ORDER BY .* LIMIT .*`).
			WithArgs("cap", "red", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		template, err := repo.Lookup(context.Background(), "cap", "red")

		assert.Error(t, err)
		assert.Nil(t, template)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormTemplateRepository_Save(t *testing.T) {
	t.Run("saves template with primary key set", func(t *testing.T) {
		repo, mock, mockDB := newMockTemplateRepository(t)
		defer mockDB.Close()

		template, err := catalog.NewTemplate("tshirt", "black", catalog.BackgroundToneDark, "")
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "templates" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Save(context.Background(), template)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormTemplateRepository_Delete(t *testing.T) {
	t.Run("deletes existing template", func(t *testing.T) {
		repo, mock, mockDB := newMockTemplateRepository(t)
		defer mockDB.Close()

		templateID := uuid.New()

		mock.ExpectExec(`DELETE FROM "templates" WHERE id = \$1`).
			WithArgs(templateID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), templateID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when nothing deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockTemplateRepository(t)
		defer mockDB.Close()

		templateID := uuid.New()

		mock.ExpectExec(`DELETE FROM "templates" WHERE id = \$1`).
			WithArgs(templateID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), templateID)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormTemplateRepository_Count(t *testing.T) {
	repo, mock, mockDB := newMockTemplateRepository(t)
	defer mockDB.Close()

	rows := sqlmock.NewRows([]string{"count"}).AddRow(int64(4))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "templates"`).
		WillReturnRows(rows)

	count, err := repo.Count(context.Background(), shared.DefaultFilter())

	assert.NoError(t, err)
	assert.Equal(t, int64(4), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
