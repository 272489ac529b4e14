package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/catalog/backend/internal/domain/catalog"
	"github.com/catalog/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Progress checkpoints for the pipeline milestones. Each successfully
// attempted page advances progress inside the reserved band, ending at 80;
// assembly and final upload complete at 100.
const (
	progressLogosUploaded  = 10
	progressLogosProcessed = 25
	progressHeroAttempted  = 30
	pageProgressBase       = 30
	pageProgressBand       = 50
)

const (
	defaultJobTimeout  = 10 * time.Minute
	defaultSnapshotTTL = 30 * time.Second
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// CatalogService orchestrates the catalog generation pipeline: it accepts a
// generation request, creates the job record, drives the external workflows
// and the assembly engine, and resolves the job to a terminal state.
type CatalogService struct {
	jobRepo      catalog.JobRepository
	templateRepo catalog.TemplateRepository
	blobStore    BlobStore
	workflows    WorkflowClient
	assembler    CatalogAssembler
	cache        JobSnapshotCache
	events       shared.EventPublisher
	metrics      Metrics
	logger       *zap.Logger
	jobTimeout   time.Duration
	snapshotTTL  time.Duration

	pipelines sync.WaitGroup
}

// ServiceOption is a functional option for configuring CatalogService
type ServiceOption func(*CatalogService)

// WithSnapshotCache enables job snapshot caching for status polls
func WithSnapshotCache(cache JobSnapshotCache) ServiceOption {
	return func(s *CatalogService) {
		s.cache = cache
	}
}

// WithEventPublisher publishes domain events raised by the job aggregate
func WithEventPublisher(publisher shared.EventPublisher) ServiceOption {
	return func(s *CatalogService) {
		s.events = publisher
	}
}

// WithMetrics records pipeline counters
func WithMetrics(metrics Metrics) ServiceOption {
	return func(s *CatalogService) {
		s.metrics = metrics
	}
}

// WithJobTimeout bounds the total wall-clock time of one pipeline run
func WithJobTimeout(d time.Duration) ServiceOption {
	return func(s *CatalogService) {
		if d > 0 {
			s.jobTimeout = d
		}
	}
}

// WithSnapshotTTL sets how long cached status snapshots stay fresh
func WithSnapshotTTL(d time.Duration) ServiceOption {
	return func(s *CatalogService) {
		if d > 0 {
			s.snapshotTTL = d
		}
	}
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	jobRepo catalog.JobRepository,
	templateRepo catalog.TemplateRepository,
	blobStore BlobStore,
	workflows WorkflowClient,
	assembler CatalogAssembler,
	logger *zap.Logger,
	opts ...ServiceOption,
) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &CatalogService{
		jobRepo:      jobRepo,
		templateRepo: templateRepo,
		blobStore:    blobStore,
		workflows:    workflows,
		assembler:    assembler,
		metrics:      NopMetrics{},
		logger:       logger,
		jobTimeout:   defaultJobTimeout,
		snapshotTTL:  defaultSnapshotTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates the request, creates the job record and starts the
// generation pipeline in the background. It returns quickly with the job
// identifier and an estimated duration; true success or failure is only
// observable through GetStatus.
func (s *CatalogService) Submit(ctx context.Context, req SubmitCatalogRequest) (*SubmitCatalogResponse, error) {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.Industry = strings.TrimSpace(req.Industry)

	if !req.LogoPlacement.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid logo placement")
	}
	if err := (catalog.LogoPair{Dark: req.LogoDark, Light: req.LogoLight}).Validate(); err != nil {
		return nil, err
	}

	job, err := catalog.NewJob(req.CustomerName, req.Industry, req.Selections)
	if err != nil {
		return nil, err
	}
	job.SetMetadataValue("logo_placement", string(req.LogoPlacement))

	// Record creation failure aborts before any side effect
	if err := s.saveJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job record: %w", err)
	}

	s.metrics.JobSubmitted()
	s.logger.Info("catalog job submitted",
		zap.String("jobId", job.ID.String()),
		zap.String("customer", job.CustomerName),
		zap.Int("selections", len(req.Selections)))

	s.pipelines.Add(1)
	go func() {
		defer s.pipelines.Done()
		s.runPipeline(job, req)
	}()

	return &SubmitCatalogResponse{
		JobID:                job.ID.String(),
		Status:               string(job.Status),
		Message:              "Catalog generation started",
		EstimatedTimeSeconds: estimateProcessingTime(len(req.Selections)),
	}, nil
}

// GetStatus reads the current job snapshot, preferring the cache. It has no
// side effects beyond refreshing the cache entry.
func (s *CatalogService) GetStatus(ctx context.Context, jobID string) (*JobStatusResponse, error) {
	id, err := uuid.Parse(jobID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid job identifier")
	}

	if s.cache != nil {
		if snap, err := s.cache.GetSnapshot(ctx, jobID); err == nil {
			return snap, nil
		}
	}

	job, err := s.jobRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Job not found")
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	snap := toJobStatusResponse(job)
	s.cacheSnapshot(ctx, snap)
	return snap, nil
}

// Wait blocks until all in-flight pipelines have finished. Used for graceful
// shutdown and by tests.
func (s *CatalogService) Wait() {
	s.pipelines.Wait()
}

// runPipeline drives one job through the full pipeline on its own bounded
// context, independent of the submitting request's lifetime.
func (s *CatalogService) runPipeline(job *catalog.Job, req SubmitCatalogRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
	defer cancel()

	start := time.Now()
	if err := s.execute(ctx, job, req); err != nil {
		s.metrics.JobFailed()
		s.logger.Error("catalog generation failed",
			zap.String("jobId", job.ID.String()),
			zap.Error(err))
		return
	}

	s.metrics.JobCompleted(time.Since(start))
	s.logger.Info("catalog generation completed",
		zap.String("jobId", job.ID.String()),
		zap.String("pdfUrl", job.ResultURL),
		zap.Duration("elapsed", time.Since(start)))
}

func (s *CatalogService) execute(ctx context.Context, job *catalog.Job, req SubmitCatalogRequest) error {
	// Upload both raw logos under job-scoped paths. A buffer that does not
	// decode as an image is a logo-processing error and stops the pipeline.
	if err := validateImageBytes(req.LogoDark); err != nil {
		return s.failJob(ctx, job, "LOGO_PROCESSING", "Could not decode dark-background logo: "+err.Error())
	}
	if err := validateImageBytes(req.LogoLight); err != nil {
		return s.failJob(ctx, job, "LOGO_PROCESSING", "Could not decode light-background logo: "+err.Error())
	}

	darkURL, err := s.blobStore.Upload(ctx, fmt.Sprintf("jobs/%s/logo_dark.png", job.ID), req.LogoDark, "image/png")
	if err != nil {
		return s.failJob(ctx, job, "LOGO_PROCESSING", "Failed to upload dark-background logo: "+err.Error())
	}
	lightURL, err := s.blobStore.Upload(ctx, fmt.Sprintf("jobs/%s/logo_light.png", job.ID), req.LogoLight, "image/png")
	if err != nil {
		return s.failJob(ctx, job, "LOGO_PROCESSING", "Failed to upload light-background logo: "+err.Error())
	}

	if err := job.Start(); err != nil {
		return err
	}
	if err := job.AdvanceProgress(progressLogosUploaded); err != nil {
		return err
	}
	if err := s.saveJob(ctx, job); err != nil {
		return s.failJob(ctx, job, "INTERNAL_ERROR", "Failed to update job record: "+err.Error())
	}

	// Logo processing workflow is a hard-stop: nothing downstream can run
	// without the processed variants.
	callStart := time.Now()
	logos, err := s.workflows.ProcessLogos(ctx, LogoWorkflowRequest{
		JobID:        job.ID.String(),
		DarkLogoURL:  darkURL,
		LightLogoURL: lightURL,
	})
	s.metrics.ObserveWorkflowCall("logo_processing", time.Since(callStart), err)
	if err != nil {
		return s.failJob(ctx, job, "LOGO_PROCESSING", "Logo processing workflow failed: "+err.Error())
	}
	if err := job.AdvanceProgress(progressLogosProcessed); err != nil {
		return err
	}
	if err := s.saveJob(ctx, job); err != nil {
		s.logger.Warn("failed to persist progress", zap.String("jobId", job.ID.String()), zap.Error(err))
	}

	// Hero image is best-effort: any failure degrades to the placeholder
	heroURL := ""
	callStart = time.Now()
	hero, err := s.workflows.GenerateHero(ctx, HeroWorkflowRequest{
		JobID:    job.ID.String(),
		Industry: job.Industry,
	})
	s.metrics.ObserveWorkflowCall("hero_image", time.Since(callStart), err)
	if err != nil {
		s.logger.Warn("hero image workflow failed, continuing without hero",
			zap.String("jobId", job.ID.String()),
			zap.Error(err))
	} else {
		heroURL = hero.HeroImageURL
	}
	if err := job.AdvanceProgress(progressHeroAttempted); err != nil {
		return err
	}
	if err := s.saveJob(ctx, job); err != nil {
		s.logger.Warn("failed to persist progress", zap.String("jobId", job.ID.String()), zap.Error(err))
	}

	// Validate every selection before any page rendering call is made, so a
	// request that can never complete causes no partial external side effects.
	if missing, err := s.collectMissingTemplates(ctx, req.Selections); err != nil {
		return s.failJob(ctx, job, "INTERNAL_ERROR", "Template lookup failed: "+err.Error())
	} else if len(missing) > 0 {
		// The full miss set is computed but only the first pair is reported
		return s.failJob(ctx, job, "TEMPLATE_NOT_FOUND",
			fmt.Sprintf("Template not found for %s", missing[0]))
	}

	outcomes := s.renderPages(ctx, job, req, *logos)

	pageURLs := catalog.PageURLs(outcomes)
	skipped := catalog.SkippedOutcomes(outcomes)
	job.SetMetadataValue("pages_rendered", len(pageURLs))
	job.SetMetadataValue("pages_skipped", len(skipped))

	pdfBytes, err := s.assembler.GenerateCompleteCatalog(ctx, job.CustomerName, job.Industry, pageURLs, heroURL)
	if err != nil {
		return s.failJob(ctx, job, "ASSEMBLY_FAILED", "PDF assembly failed: "+err.Error())
	}

	path := fmt.Sprintf("catalogs/%s_%s.pdf",
		sanitizeCustomerName(job.CustomerName),
		time.Now().Format("20060102150405"))
	resultURL, err := s.blobStore.Upload(ctx, path, pdfBytes, "application/pdf")
	if err != nil {
		return s.failJob(ctx, job, "ASSEMBLY_FAILED", "Failed to upload final catalog: "+err.Error())
	}

	if err := job.Complete(resultURL); err != nil {
		return err
	}
	if err := s.saveJob(ctx, job); err != nil {
		return fmt.Errorf("failed to record job completion: %w", err)
	}
	return nil
}

// renderPages generates one page per selection in caller order. A failed
// page is skipped with a recorded reason and never fails the job.
func (s *CatalogService) renderPages(ctx context.Context, job *catalog.Job, req SubmitCatalogRequest, logos catalog.ProcessedLogos) []catalog.PageOutcome {
	total := len(req.Selections)
	outcomes := make([]catalog.PageOutcome, 0, total)

	for i, sel := range req.Selections {
		outcome := catalog.PageOutcome{Selection: sel}

		tpl, err := s.templateRepo.Lookup(ctx, sel.Item, sel.Color)
		if err != nil {
			outcome.Skipped = true
			outcome.Reason = "template lookup failed: " + err.Error()
		} else {
			variant := logos.VariantFor(tpl.Background)
			callStart := time.Now()
			page, err := s.workflows.GeneratePage(ctx, PageWorkflowRequest{
				JobID:         job.ID.String(),
				Item:          sel.Item,
				Color:         sel.Color,
				LogoLargeURL:  variant.LargeURL,
				LogoSmallURL:  variant.SmallURL,
				Background:    tpl.Background,
				LogoPlacement: req.LogoPlacement,
			})
			s.metrics.ObserveWorkflowCall("page_generation", time.Since(callStart), err)
			if err != nil {
				outcome.Skipped = true
				outcome.Reason = err.Error()
			} else {
				outcome.PageURL = page.PageURL
			}
		}

		if outcome.Skipped {
			s.metrics.PageSkipped()
			s.logger.Warn("skipping page",
				zap.String("jobId", job.ID.String()),
				zap.String("item", sel.Item),
				zap.String("color", sel.Color),
				zap.String("reason", outcome.Reason))
		}
		outcomes = append(outcomes, outcome)

		progress := pageProgressBase + int(float64(i+1)/float64(total)*pageProgressBand)
		if err := job.AdvanceProgress(progress); err != nil {
			s.logger.Warn("failed to advance progress", zap.String("jobId", job.ID.String()), zap.Error(err))
		} else if err := s.saveJob(ctx, job); err != nil {
			s.logger.Warn("failed to persist progress", zap.String("jobId", job.ID.String()), zap.Error(err))
		}
	}

	return outcomes
}

func (s *CatalogService) collectMissingTemplates(ctx context.Context, selections []catalog.Selection) ([]catalog.Selection, error) {
	var missing []catalog.Selection
	for _, sel := range selections {
		_, err := s.templateRepo.Lookup(ctx, sel.Item, sel.Color)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				missing = append(missing, sel)
				continue
			}
			return nil, err
		}
	}
	return missing, nil
}

// failJob records the failure on the job record and returns the original
// error. A failure while recording the failure is logged but never masks it.
func (s *CatalogService) failJob(ctx context.Context, job *catalog.Job, code, message string) error {
	if err := job.Fail(message); err != nil {
		s.logger.Error("could not mark job as failed",
			zap.String("jobId", job.ID.String()),
			zap.Error(err))
	} else if err := s.saveJob(ctx, job); err != nil {
		s.logger.Error("failed to record job failure",
			zap.String("jobId", job.ID.String()),
			zap.Error(err))
	}
	return shared.NewDomainError(code, message)
}

func (s *CatalogService) saveJob(ctx context.Context, job *catalog.Job) error {
	if err := s.jobRepo.Save(ctx, job); err != nil {
		return err
	}
	if s.events != nil && len(job.GetDomainEvents()) > 0 {
		if err := s.events.Publish(ctx, job.GetDomainEvents()...); err != nil {
			s.logger.Warn("failed to publish domain events",
				zap.String("jobId", job.ID.String()),
				zap.Error(err))
		}
	}
	job.ClearDomainEvents()
	s.cacheSnapshot(ctx, toJobStatusResponse(job))
	return nil
}

func (s *CatalogService) cacheSnapshot(ctx context.Context, snap *JobStatusResponse) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetSnapshot(ctx, snap, s.snapshotTTL); err != nil {
		s.logger.Debug("failed to cache job snapshot",
			zap.String("jobId", snap.JobID),
			zap.Error(err))
	}
}

// validateImageBytes checks that the buffer parses as a known image format
func validateImageBytes(data []byte) error {
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return err
	}
	return nil
}

// sanitizeCustomerName makes a customer name safe for use as a path
// component: every rune that is not alphanumeric, hyphen or underscore
// becomes an underscore.
func sanitizeCustomerName(name string) string {
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}

// estimateProcessingTime is a rough estimate: 10 seconds per page plus 30
// seconds of overhead.
func estimateProcessingTime(totalPages int) int {
	return totalPages*10 + 30
}
