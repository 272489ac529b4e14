package catalog

import (
	"context"

	"github.com/catalog/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// JobRepository provides persistence for catalog jobs.
// A job record is only ever mutated by the orchestrator instance that owns
// the job; concurrent status readers tolerate reading a record mid-update.
type JobRepository interface {
	Save(ctx context.Context, job *Job) error
	FindByID(ctx context.Context, id uuid.UUID) (*Job, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Job, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// TemplateRepository provides persistence and lookup for rendering templates
type TemplateRepository interface {
	Save(ctx context.Context, template *Template) error
	FindByID(ctx context.Context, id uuid.UUID) (*Template, error)
	// Lookup resolves a (item, color) pair to its template.
	// Returns shared.ErrNotFound when no template covers the pair.
	Lookup(ctx context.Context, item, color string) (*Template, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Template, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
