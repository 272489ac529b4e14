package catalog

import (
	"time"

	"github.com/catalog/backend/internal/domain/catalog"
)

// SelectionDTO is one requested (item, color) pair
type SelectionDTO struct {
	Item  string `json:"item" binding:"required,min=1,max=100"`
	Color string `json:"color" binding:"required,min=1,max=50"`
}

// SubmitCatalogRequest represents a validated catalog generation request.
// Logo buffers arrive already base64-decoded; the HTTP layer strips any
// data-URL prefix and rejects unparseable encodings before this point.
type SubmitCatalogRequest struct {
	CustomerName  string
	Industry      string
	LogoDark      []byte
	LogoLight     []byte
	LogoPlacement catalog.LogoPlacement
	Selections    []catalog.Selection
}

// SubmitCatalogResponse is returned synchronously from a submit call
type SubmitCatalogResponse struct {
	JobID                string `json:"job_id"`
	Status               string `json:"status"`
	Message              string `json:"message"`
	EstimatedTimeSeconds int    `json:"estimated_time_seconds"`
}

// JobStatusResponse is the snapshot returned by the status query
type JobStatusResponse struct {
	JobID        string         `json:"job_id"`
	Status       string         `json:"status"`
	CustomerName string         `json:"customer_name"`
	Industry     string         `json:"industry"`
	Progress     int            `json:"progress"`
	PDFURL       string         `json:"pdf_url,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// CreateTemplateRequest represents a request to register a rendering template
type CreateTemplateRequest struct {
	Item        string `json:"item" binding:"required,min=1,max=100"`
	Color       string `json:"color" binding:"required,min=1,max=50"`
	Background  string `json:"background" binding:"required,oneof=light dark"`
	TemplateURL string `json:"template_url" binding:"omitempty,url"`
}

// UpdateTemplateRequest represents a request to update a rendering template
type UpdateTemplateRequest struct {
	Background  *string `json:"background" binding:"omitempty,oneof=light dark"`
	TemplateURL *string `json:"template_url" binding:"omitempty,url"`
}

// ListTemplatesRequest represents a request to list templates
type ListTemplatesRequest struct {
	Page     int    `form:"page" binding:"min=1"`
	PageSize int    `form:"page_size" binding:"min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Search   string `form:"search"`
}

// TemplateResponse represents a rendering template
type TemplateResponse struct {
	ID          string    `json:"id"`
	Item        string    `json:"item"`
	Color       string    `json:"color"`
	Background  string    `json:"background"`
	TemplateURL string    `json:"template_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListTemplatesResponse represents a paginated list of templates
type ListTemplatesResponse struct {
	Items []TemplateResponse `json:"items"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Size  int                `json:"size"`
}

func toJobStatusResponse(job *catalog.Job) *JobStatusResponse {
	return &JobStatusResponse{
		JobID:        job.ID.String(),
		Status:       string(job.Status),
		CustomerName: job.CustomerName,
		Industry:     job.Industry,
		Progress:     job.Progress,
		PDFURL:       job.ResultURL,
		ErrorMessage: job.ErrorMessage,
		Metadata:     job.Metadata,
		CreatedAt:    job.CreatedAt,
		UpdatedAt:    job.UpdatedAt,
	}
}

func toTemplateResponse(t *catalog.Template) *TemplateResponse {
	return &TemplateResponse{
		ID:          t.ID.String(),
		Item:        t.Item,
		Color:       t.Color,
		Background:  string(t.Background),
		TemplateURL: t.TemplateURL,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
