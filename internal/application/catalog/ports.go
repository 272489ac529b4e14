package catalog

import (
	"context"
	"time"

	"github.com/catalog/backend/internal/domain/catalog"
)

// BlobStore uploads byte buffers to durable storage and downloads them back.
// Intermediate artifacts live under job-scoped paths, final catalogs under
// flat timestamped names.
type BlobStore interface {
	// Upload stores data under path and returns a durable public fetch URL
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)
	// Download fetches the bytes behind a previously returned URL
	Download(ctx context.Context, url string) ([]byte, error)
}

// LogoWorkflowRequest invokes the external logo processing workflow
type LogoWorkflowRequest struct {
	JobID        string
	DarkLogoURL  string
	LightLogoURL string
}

// HeroWorkflowRequest invokes the external hero image workflow
type HeroWorkflowRequest struct {
	JobID    string
	Industry string
}

// HeroWorkflowResult carries the generated hero image URL
type HeroWorkflowResult struct {
	HeroImageURL string
}

// PageWorkflowRequest invokes the external page generation workflow for one selection
type PageWorkflowRequest struct {
	JobID         string
	Item          string
	Color         string
	LogoLargeURL  string
	LogoSmallURL  string
	Background    catalog.BackgroundTone
	LogoPlacement catalog.LogoPlacement
}

// PageWorkflowResult carries the rendered page image URL
type PageWorkflowResult struct {
	PageURL string
}

// WorkflowClient reaches the external processing workflows over HTTP.
// Any transport error, timeout, or non-success result surfaces as an error.
type WorkflowClient interface {
	ProcessLogos(ctx context.Context, req LogoWorkflowRequest) (*catalog.ProcessedLogos, error)
	GenerateHero(ctx context.Context, req HeroWorkflowRequest) (*HeroWorkflowResult, error)
	GeneratePage(ctx context.Context, req PageWorkflowRequest) (*PageWorkflowResult, error)
}

// CatalogAssembler builds the final multi-page catalog document
type CatalogAssembler interface {
	GenerateCompleteCatalog(ctx context.Context, customerName, industry string, pageURLs []string, heroURL string) ([]byte, error)
}

// JobSnapshotCache caches job status snapshots so hot polling does not hit
// the record store on every request
type JobSnapshotCache interface {
	SetSnapshot(ctx context.Context, snapshot *JobStatusResponse, ttl time.Duration) error
	// GetSnapshot returns shared.ErrNotFound on a cache miss
	GetSnapshot(ctx context.Context, jobID string) (*JobStatusResponse, error)
}

// Metrics records pipeline counters. Implementations must be safe for
// concurrent use; a no-op implementation is used when metrics are disabled.
type Metrics interface {
	JobSubmitted()
	JobCompleted(duration time.Duration)
	JobFailed()
	PageSkipped()
	ObserveWorkflowCall(workflow string, duration time.Duration, err error)
}

// NopMetrics is a Metrics implementation that discards everything
type NopMetrics struct{}

func (NopMetrics) JobSubmitted()                                    {}
func (NopMetrics) JobCompleted(time.Duration)                       {}
func (NopMetrics) JobFailed()                                       {}
func (NopMetrics) PageSkipped()                                     {}
func (NopMetrics) ObserveWorkflowCall(string, time.Duration, error) {}

var _ Metrics = NopMetrics{}
