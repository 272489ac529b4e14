package catalog

import (
	"time"

	"github.com/catalog/backend/internal/domain/shared"
)

// Template is reference data describing how a given (item, color) pair is
// rendered: the page background tone and an optional rendering template URL.
type Template struct {
	shared.BaseAggregateRoot
	Item        string
	Color       string
	Background  BackgroundTone
	TemplateURL string
}

// NewTemplate creates a new rendering template
func NewTemplate(item, color string, background BackgroundTone, templateURL string) (*Template, error) {
	if item == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Item name cannot be empty")
	}
	if color == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Color name cannot be empty")
	}
	if !background.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Background tone must be light or dark")
	}

	tpl := &Template{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Item:              item,
		Color:             color,
		Background:        background,
		TemplateURL:       templateURL,
	}

	tpl.AddDomainEvent(NewTemplateCreatedEvent(tpl))

	return tpl, nil
}

// Update changes the template's background tone and rendering URL
func (t *Template) Update(background BackgroundTone, templateURL string) error {
	if !background.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Background tone must be light or dark")
	}

	t.Background = background
	t.TemplateURL = templateURL
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// Matches reports whether the template covers the given selection
func (t *Template) Matches(sel Selection) bool {
	return t.Item == sel.Item && t.Color == sel.Color
}
