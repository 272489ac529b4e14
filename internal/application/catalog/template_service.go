package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/catalog/backend/internal/domain/catalog"
	"github.com/catalog/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TemplateService manages the rendering template registry
type TemplateService struct {
	templateRepo catalog.TemplateRepository
	logger       *zap.Logger
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(templateRepo catalog.TemplateRepository, logger *zap.Logger) *TemplateService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemplateService{
		templateRepo: templateRepo,
		logger:       logger,
	}
}

// Create registers a new template. The (item, color) pair must be unique.
func (s *TemplateService) Create(ctx context.Context, req CreateTemplateRequest) (*TemplateResponse, error) {
	if _, err := s.templateRepo.Lookup(ctx, req.Item, req.Color); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS",
			fmt.Sprintf("Template for %s - %s already exists", req.Item, req.Color))
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing template: %w", err)
	}

	tpl, err := catalog.NewTemplate(req.Item, req.Color, catalog.BackgroundTone(req.Background), req.TemplateURL)
	if err != nil {
		return nil, err
	}

	if err := s.templateRepo.Save(ctx, tpl); err != nil {
		return nil, fmt.Errorf("failed to save template: %w", err)
	}

	s.logger.Info("template created",
		zap.String("templateId", tpl.ID.String()),
		zap.String("item", tpl.Item),
		zap.String("color", tpl.Color))

	return toTemplateResponse(tpl), nil
}

// Get returns a template by id
func (s *TemplateService) Get(ctx context.Context, templateID string) (*TemplateResponse, error) {
	id, err := uuid.Parse(templateID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid template identifier")
	}

	tpl, err := s.templateRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Template not found")
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	return toTemplateResponse(tpl), nil
}

// List returns a paginated page of templates
func (s *TemplateService) List(ctx context.Context, req ListTemplatesRequest) (*ListTemplatesResponse, error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	filter.Search = req.Search

	templates, err := s.templateRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	total, err := s.templateRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count templates: %w", err)
	}

	items := make([]TemplateResponse, 0, len(templates))
	for i := range templates {
		items = append(items, *toTemplateResponse(&templates[i]))
	}

	return &ListTemplatesResponse{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Size:  filter.PageSize,
	}, nil
}

// Update changes a template's background tone or template asset URL
func (s *TemplateService) Update(ctx context.Context, templateID string, req UpdateTemplateRequest) (*TemplateResponse, error) {
	id, err := uuid.Parse(templateID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid template identifier")
	}

	tpl, err := s.templateRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Template not found")
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	background := tpl.Background
	if req.Background != nil {
		background = catalog.BackgroundTone(*req.Background)
	}
	templateURL := tpl.TemplateURL
	if req.TemplateURL != nil {
		templateURL = *req.TemplateURL
	}

	if err := tpl.Update(background, templateURL); err != nil {
		return nil, err
	}

	if err := s.templateRepo.Save(ctx, tpl); err != nil {
		return nil, fmt.Errorf("failed to save template: %w", err)
	}

	return toTemplateResponse(tpl), nil
}

// Delete removes a template from the registry
func (s *TemplateService) Delete(ctx context.Context, templateID string) error {
	id, err := uuid.Parse(templateID)
	if err != nil {
		return shared.NewDomainError("INVALID_INPUT", "Invalid template identifier")
	}

	if err := s.templateRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Template not found")
		}
		return fmt.Errorf("failed to delete template: %w", err)
	}

	s.logger.Info("template deleted", zap.String("templateId", templateID))
	return nil
}
