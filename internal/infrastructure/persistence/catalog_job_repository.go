package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/catalog/backend/internal/domain/catalog"
	"github.com/catalog/backend/internal/domain/shared"
	"github.com/catalog/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCatalogJobRepository implements catalog.JobRepository using GORM
type GormCatalogJobRepository struct {
	db *gorm.DB
}

// NewGormCatalogJobRepository creates a new GormCatalogJobRepository
func NewGormCatalogJobRepository(db *gorm.DB) *GormCatalogJobRepository {
	return &GormCatalogJobRepository{db: db}
}

// Save creates or updates a catalog job
func (r *GormCatalogJobRepository) Save(ctx context.Context, job *catalog.Job) error {
	model, err := models.CatalogJobModelFromDomain(job)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a catalog job by its ID
func (r *GormCatalogJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Job, error) {
	var model models.CatalogJobModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindAll returns catalog jobs matching the filter, newest first by default
func (r *GormCatalogJobRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Job, error) {
	var jobModels []models.CatalogJobModel

	query := r.applyFilter(r.db.WithContext(ctx), filter)

	orderBy := ValidateSortField(filter.OrderBy, CatalogJobSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Find(&jobModels).Error; err != nil {
		return nil, err
	}

	jobs := make([]catalog.Job, 0, len(jobModels))
	for i := range jobModels {
		job, err := jobModels[i].ToDomain()
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, nil
}

// Count returns the number of catalog jobs matching the filter
func (r *GormCatalogJobRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.CatalogJobModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormCatalogJobRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("customer_name ILIKE ? OR industry ILIKE ?", pattern, pattern)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	return query
}

// Ensure GormCatalogJobRepository implements catalog.JobRepository
var _ catalog.JobRepository = (*GormCatalogJobRepository)(nil)
