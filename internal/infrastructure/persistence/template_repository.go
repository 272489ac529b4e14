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

// GormTemplateRepository implements catalog.TemplateRepository using GORM
type GormTemplateRepository struct {
	db *gorm.DB
}

// NewGormTemplateRepository creates a new GormTemplateRepository
func NewGormTemplateRepository(db *gorm.DB) *GormTemplateRepository {
	return &GormTemplateRepository{db: db}
}

// Save creates or updates a rendering template
func (r *GormTemplateRepository) Save(ctx context.Context, template *catalog.Template) error {
	model := models.TemplateModelFromDomain(template)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a template by its ID
func (r *GormTemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Template, error) {
	var model models.TemplateModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Lookup resolves an (item, color) pair to its rendering template
func (r *GormTemplateRepository) Lookup(ctx context.Context, item, color string) (*catalog.Template, error) {
	var model models.TemplateModel
	if err := r.db.WithContext(ctx).
		Where("item = ? AND color = ?", item, color).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns templates matching the filter
func (r *GormTemplateRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Template, error) {
	var templateModels []models.TemplateModel

	query := r.applyFilter(r.db.WithContext(ctx), filter)

	orderBy := ValidateSortField(filter.OrderBy, TemplateSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Find(&templateModels).Error; err != nil {
		return nil, err
	}

	templates := make([]catalog.Template, 0, len(templateModels))
	for i := range templateModels {
		templates = append(templates, *templateModels[i].ToDomain())
	}
	return templates, nil
}

// Count returns the number of templates matching the filter
func (r *GormTemplateRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.TemplateModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Delete removes a template
func (r *GormTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TemplateModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormTemplateRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("item ILIKE ? OR color ILIKE ?", pattern, pattern)
	}
	if background, ok := filter.Filters["background"]; ok {
		query = query.Where("background = ?", background)
	}
	return query
}

// Ensure GormTemplateRepository implements catalog.TemplateRepository
var _ catalog.TemplateRepository = (*GormTemplateRepository)(nil)
