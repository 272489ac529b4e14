package pdf

import (
	"context"
	"fmt"

	catalogapp "github.com/catalog/backend/internal/application/catalog"
	"go.uber.org/zap"
)

// Ensure Assembler implements CatalogAssembler
var _ catalogapp.CatalogAssembler = (*Assembler)(nil)

// Assembler builds the final catalog document from rendered page URLs.
// Page downloads and conversions are best-effort; a failed page is dropped
// from the document rather than failing the whole catalog.
type Assembler struct {
	engine *Engine
	blobs  catalogapp.BlobStore
	logger *zap.Logger
}

// NewAssembler creates an Assembler
func NewAssembler(engine *Engine, blobs catalogapp.BlobStore, logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{engine: engine, blobs: blobs, logger: logger}
}

// GenerateCompleteCatalog downloads the hero and page images, renders the
// front page, converts each page image into a single-page document, and
// merges everything in order.
func (a *Assembler) GenerateCompleteCatalog(ctx context.Context, customerName, industry string, pageURLs []string, heroURL string) ([]byte, error) {
	var heroImage []byte
	if heroURL != "" {
		data, err := a.blobs.Download(ctx, heroURL)
		if err != nil {
			a.logger.Warn("failed to download hero image, using placeholder",
				zap.String("url", heroURL),
				zap.Error(err),
			)
		} else {
			heroImage = data
		}
	}

	frontPage, err := a.engine.RenderFrontPage(customerName, heroImage)
	if err != nil {
		return nil, fmt.Errorf("failed to render front page: %w", err)
	}

	docs := [][]byte{frontPage}
	for i, pageURL := range pageURLs {
		data, err := a.blobs.Download(ctx, pageURL)
		if err != nil {
			a.logger.Warn("failed to download page image, dropping page",
				zap.Int("page", i+1),
				zap.String("url", pageURL),
				zap.Error(err),
			)
			continue
		}

		page, err := a.engine.ImageToPage(data)
		if err != nil {
			a.logger.Warn("failed to convert page image, dropping page",
				zap.Int("page", i+1),
				zap.String("url", pageURL),
				zap.Error(err),
			)
			continue
		}
		docs = append(docs, page)
	}

	merged, err := a.engine.Merge(docs, DocumentMeta{
		Title:   fmt.Sprintf("%s - Product Catalog", customerName),
		Author:  "Catalog Generator",
		Subject: industry,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to merge catalog: %w", err)
	}

	a.logger.Info("catalog assembled",
		zap.String("customer", customerName),
		zap.Int("pages_requested", len(pageURLs)),
		zap.Int("pages_included", len(docs)-1),
	)
	return merged, nil
}
