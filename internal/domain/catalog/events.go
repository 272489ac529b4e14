package catalog

import "github.com/catalog/backend/internal/domain/shared"

// Event type constants
const (
	EventTypeJobCreated      = "catalog.job.created"
	EventTypeJobStatusChange = "catalog.job.status_changed"
	EventTypeJobProgressed   = "catalog.job.progressed"
	EventTypeJobCompleted    = "catalog.job.completed"
	EventTypeJobFailed       = "catalog.job.failed"
	EventTypeTemplateCreated = "catalog.template.created"
)

const aggregateTypeJob = "CatalogJob"
const aggregateTypeTemplate = "Template"

// JobCreatedEvent is raised when a new catalog job is created
type JobCreatedEvent struct {
	shared.BaseDomainEvent
	CustomerName string `json:"customer_name"`
	Industry     string `json:"industry"`
	TotalPages   int    `json:"total_pages"`
}

// NewJobCreatedEvent creates a new JobCreatedEvent
func NewJobCreatedEvent(job *Job) *JobCreatedEvent {
	totalPages, _ := job.Metadata["total_pages"].(int)
	return &JobCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJobCreated, aggregateTypeJob, job.ID),
		CustomerName:    job.CustomerName,
		Industry:        job.Industry,
		TotalPages:      totalPages,
	}
}

// JobStatusChangedEvent is raised on every job status transition
type JobStatusChangedEvent struct {
	shared.BaseDomainEvent
	OldStatus JobStatus `json:"old_status"`
	NewStatus JobStatus `json:"new_status"`
}

// NewJobStatusChangedEvent creates a new JobStatusChangedEvent
func NewJobStatusChangedEvent(job *Job, oldStatus, newStatus JobStatus) *JobStatusChangedEvent {
	return &JobStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJobStatusChange, aggregateTypeJob, job.ID),
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// JobProgressedEvent is raised when a job's progress advances
type JobProgressedEvent struct {
	shared.BaseDomainEvent
	Progress int `json:"progress"`
}

// NewJobProgressedEvent creates a new JobProgressedEvent
func NewJobProgressedEvent(job *Job) *JobProgressedEvent {
	return &JobProgressedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJobProgressed, aggregateTypeJob, job.ID),
		Progress:        job.Progress,
	}
}

// JobCompletedEvent is raised when a job completes with a final catalog
type JobCompletedEvent struct {
	shared.BaseDomainEvent
	ResultURL string `json:"result_url"`
}

// NewJobCompletedEvent creates a new JobCompletedEvent
func NewJobCompletedEvent(job *Job) *JobCompletedEvent {
	return &JobCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJobCompleted, aggregateTypeJob, job.ID),
		ResultURL:       job.ResultURL,
	}
}

// JobFailedEvent is raised when a job fails
type JobFailedEvent struct {
	shared.BaseDomainEvent
	ErrorMessage string `json:"error_message"`
}

// NewJobFailedEvent creates a new JobFailedEvent
func NewJobFailedEvent(job *Job) *JobFailedEvent {
	return &JobFailedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJobFailed, aggregateTypeJob, job.ID),
		ErrorMessage:    job.ErrorMessage,
	}
}

// TemplateCreatedEvent is raised when a rendering template is registered
type TemplateCreatedEvent struct {
	shared.BaseDomainEvent
	Item  string `json:"item"`
	Color string `json:"color"`
}

// NewTemplateCreatedEvent creates a new TemplateCreatedEvent
func NewTemplateCreatedEvent(tpl *Template) *TemplateCreatedEvent {
	return &TemplateCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTemplateCreated, aggregateTypeTemplate, tpl.ID),
		Item:            tpl.Item,
		Color:           tpl.Color,
	}
}
