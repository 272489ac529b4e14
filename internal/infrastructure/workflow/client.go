// Package workflow provides the HTTP client for the external processing
// workflows (logo processing, hero image generation, page rendering).
package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	catalogapp "github.com/catalog/backend/internal/application/catalog"
	"github.com/catalog/backend/internal/domain/catalog"
	infraconfig "github.com/catalog/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Ensure Client implements WorkflowClient
var _ catalogapp.WorkflowClient = (*Client)(nil)

const defaultMaxResponseSize = 10 << 20

// Client calls the external webhook workflows with JSON payloads and decodes
// strict typed results. Any transport error, non-2xx status, or non-success
// result surfaces as an error.
type Client struct {
	httpClient      *http.Client
	baseURL         string
	logoPath        string
	heroPath        string
	pagePath        string
	maxResponseSize int64
	logger          *zap.Logger
}

// ClientOption is a functional option for configuring the Client
type ClientOption func(*Client)

// WithLogger sets a custom logger for the Client
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets the underlying HTTP client
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// NewClient creates a workflow client from configuration
func NewClient(cfg *infraconfig.WorkflowConfig, opts ...ClientOption) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("workflow configuration is required")
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("workflow base URL is required")
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	maxSize := cfg.MaxResponseSize
	if maxSize <= 0 {
		maxSize = defaultMaxResponseSize
	}

	c := &Client{
		httpClient:      &http.Client{Timeout: timeout},
		baseURL:         strings.TrimSuffix(cfg.BaseURL, "/"),
		logoPath:        cfg.LogoPath,
		heroPath:        cfg.HeroPath,
		pagePath:        cfg.PagePath,
		maxResponseSize: maxSize,
		logger:          zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

type logoProcessingPayload struct {
	JobID        string `json:"job_id"`
	LogoDarkURL  string `json:"logo_dark_url"`
	LogoLightURL string `json:"logo_light_url"`
}

type logoProcessingResult struct {
	JobID             string `json:"job_id"`
	LogoDarkLargeURL  string `json:"logo_dark_large_url"`
	LogoDarkSmallURL  string `json:"logo_dark_small_url"`
	LogoLightLargeURL string `json:"logo_light_large_url"`
	LogoLightSmallURL string `json:"logo_light_small_url"`
	Success           bool   `json:"success"`
	Error             string `json:"error,omitempty"`
}

type heroImagePayload struct {
	JobID    string `json:"job_id"`
	Industry string `json:"industry"`
}

type heroImageResult struct {
	JobID        string `json:"job_id"`
	HeroImageURL string `json:"hero_image_url"`
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
}

type pageGeneratorPayload struct {
	JobID         string `json:"job_id"`
	Item          string `json:"item"`
	Color         string `json:"color"`
	LogoLargeURL  string `json:"logo_large_url"`
	LogoSmallURL  string `json:"logo_small_url"`
	Background    string `json:"background"`
	LogoPlacement string `json:"logo_placement"`
}

type pageGeneratorResult struct {
	JobID   string `json:"job_id"`
	Item    string `json:"item"`
	Color   string `json:"color"`
	PageURL string `json:"page_url"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// ProcessLogos runs the logo processing workflow for both raw logo uploads
// and returns the four processed variants.
func (c *Client) ProcessLogos(ctx context.Context, req catalogapp.LogoWorkflowRequest) (*catalog.ProcessedLogos, error) {
	c.logger.Info("calling logo processing workflow", zap.String("job_id", req.JobID))

	payload := logoProcessingPayload{
		JobID:        req.JobID,
		LogoDarkURL:  req.DarkLogoURL,
		LogoLightURL: req.LightLogoURL,
	}

	var result logoProcessingResult
	if err := c.post(ctx, c.logoPath, payload, &result); err != nil {
		return nil, fmt.Errorf("logo processing workflow: %w", err)
	}
	if !result.Success {
		return nil, workflowError("logo processing", result.Error)
	}
	if result.LogoDarkLargeURL == "" || result.LogoDarkSmallURL == "" ||
		result.LogoLightLargeURL == "" || result.LogoLightSmallURL == "" {
		return nil, errors.New("logo processing workflow returned incomplete logo set")
	}

	return &catalog.ProcessedLogos{
		DarkLargeURL:  result.LogoDarkLargeURL,
		DarkSmallURL:  result.LogoDarkSmallURL,
		LightLargeURL: result.LogoLightLargeURL,
		LightSmallURL: result.LogoLightSmallURL,
	}, nil
}

// GenerateHero runs the hero image workflow for an industry
func (c *Client) GenerateHero(ctx context.Context, req catalogapp.HeroWorkflowRequest) (*catalogapp.HeroWorkflowResult, error) {
	c.logger.Info("calling hero image workflow",
		zap.String("job_id", req.JobID),
		zap.String("industry", req.Industry),
	)

	payload := heroImagePayload{
		JobID:    req.JobID,
		Industry: req.Industry,
	}

	var result heroImageResult
	if err := c.post(ctx, c.heroPath, payload, &result); err != nil {
		return nil, fmt.Errorf("hero image workflow: %w", err)
	}
	if !result.Success {
		return nil, workflowError("hero image", result.Error)
	}
	if result.HeroImageURL == "" {
		return nil, errors.New("hero image workflow returned no image URL")
	}

	return &catalogapp.HeroWorkflowResult{HeroImageURL: result.HeroImageURL}, nil
}

// GeneratePage runs the page rendering workflow for one selection
func (c *Client) GeneratePage(ctx context.Context, req catalogapp.PageWorkflowRequest) (*catalogapp.PageWorkflowResult, error) {
	c.logger.Info("calling page generation workflow",
		zap.String("job_id", req.JobID),
		zap.String("item", req.Item),
		zap.String("color", req.Color),
	)

	payload := pageGeneratorPayload{
		JobID:         req.JobID,
		Item:          req.Item,
		Color:         req.Color,
		LogoLargeURL:  req.LogoLargeURL,
		LogoSmallURL:  req.LogoSmallURL,
		Background:    string(req.Background),
		LogoPlacement: string(req.LogoPlacement),
	}

	var result pageGeneratorResult
	if err := c.post(ctx, c.pagePath, payload, &result); err != nil {
		return nil, fmt.Errorf("page generation workflow: %w", err)
	}
	if !result.Success {
		return nil, workflowError("page generation", result.Error)
	}
	if result.PageURL == "" {
		return nil, errors.New("page generation workflow returned no page URL")
	}

	return &catalogapp.PageWorkflowResult{PageURL: result.PageURL}, nil
}

// post sends a JSON payload to the workflow path and decodes the response
// into out, rejecting non-2xx statuses.
func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	url := c.baseURL + "/" + strings.TrimPrefix(path, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(data, 256))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func workflowError(workflow, reason string) error {
	if reason == "" {
		return fmt.Errorf("%s workflow reported failure", workflow)
	}
	return fmt.Errorf("%s workflow reported failure: %s", workflow, reason)
}

func truncate(data []byte, n int) string {
	if len(data) <= n {
		return string(data)
	}
	return string(data[:n]) + "..."
}
