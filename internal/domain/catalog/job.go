package catalog

import (
	"fmt"
	"time"

	"github.com/catalog/backend/internal/domain/shared"
)

// Job represents one customer's end-to-end catalog generation request.
// It tracks the pipeline's lifecycle: pending -> processing -> completed/failed,
// with a monotonically non-decreasing progress percentage.
type Job struct {
	shared.BaseAggregateRoot
	CustomerName string
	Industry     string
	Status       JobStatus
	Progress     int            // 0-100, never decreases, never written after a terminal status
	ResultURL    string         // set only on completion
	ErrorMessage string         // set only on failure
	Metadata     map[string]any // requested selections, total page count, skip reasons
}

// NewJob creates a new catalog generation job in pending state
func NewJob(customerName, industry string, selections []Selection) (*Job, error) {
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer name cannot be empty")
	}
	if industry == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Industry cannot be empty")
	}
	if len(selections) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "At least one selection is required")
	}

	items := make([]map[string]string, len(selections))
	for i, sel := range selections {
		items[i] = map[string]string{"item": sel.Item, "color": sel.Color}
	}

	job := &Job{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerName:      customerName,
		Industry:          industry,
		Status:            JobStatusPending,
		Progress:          0,
		Metadata: map[string]any{
			"selections":  items,
			"total_pages": len(selections),
		},
	}

	job.AddDomainEvent(NewJobCreatedEvent(job))

	return job, nil
}

// Start marks the job as processing
func (j *Job) Start() error {
	if !j.Status.CanTransitionTo(JobStatusProcessing) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot start processing from status: "+j.Status.String())
	}

	oldStatus := j.Status
	j.Status = JobStatusProcessing
	j.UpdatedAt = time.Now()
	j.IncrementVersion()

	j.AddDomainEvent(NewJobStatusChangedEvent(j, oldStatus, JobStatusProcessing))

	return nil
}

// AdvanceProgress moves the progress forward. Progress is clamped to [0,100]
// and may never decrease or be written once the job is terminal.
func (j *Job) AdvanceProgress(progress int) error {
	if j.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot update progress of a job in terminal status: "+j.Status.String())
	}
	if progress < 0 || progress > 100 {
		return shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("Progress must be between 0 and 100, got %d", progress))
	}
	if progress < j.Progress {
		return shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("Progress cannot decrease from %d to %d", j.Progress, progress))
	}

	j.Progress = progress
	j.UpdatedAt = time.Now()

	j.AddDomainEvent(NewJobProgressedEvent(j))

	return nil
}

// Complete marks the job as completed with the final catalog URL and progress 100
func (j *Job) Complete(resultURL string) error {
	if !j.Status.CanTransitionTo(JobStatusCompleted) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot complete from status: "+j.Status.String())
	}
	if resultURL == "" {
		return shared.NewDomainError("INVALID_INPUT", "Result URL cannot be empty")
	}

	oldStatus := j.Status
	j.Status = JobStatusCompleted
	j.ResultURL = resultURL
	j.Progress = 100
	j.UpdatedAt = time.Now()
	j.IncrementVersion()

	j.AddDomainEvent(NewJobStatusChangedEvent(j, oldStatus, JobStatusCompleted))
	j.AddDomainEvent(NewJobCompletedEvent(j))

	return nil
}

// Fail marks the job as failed with an error message
func (j *Job) Fail(errorMessage string) error {
	if j.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot fail a job that is already in terminal status: "+j.Status.String())
	}

	oldStatus := j.Status
	j.Status = JobStatusFailed
	j.ErrorMessage = errorMessage
	j.UpdatedAt = time.Now()
	j.IncrementVersion()

	j.AddDomainEvent(NewJobStatusChangedEvent(j, oldStatus, JobStatusFailed))
	j.AddDomainEvent(NewJobFailedEvent(j))

	return nil
}

// SetMetadataValue records an arbitrary metadata value on the job
func (j *Job) SetMetadataValue(key string, value any) {
	if j.Metadata == nil {
		j.Metadata = make(map[string]any)
	}
	j.Metadata[key] = value
	j.UpdatedAt = time.Now()
}

// Selections reconstructs the ordered selection list from job metadata
func (j *Job) Selections() []Selection {
	raw, ok := j.Metadata["selections"]
	if !ok {
		return nil
	}

	var result []Selection
	switch items := raw.(type) {
	case []map[string]string:
		for _, m := range items {
			result = append(result, Selection{Item: m["item"], Color: m["color"]})
		}
	case []any:
		for _, entry := range items {
			if m, ok := entry.(map[string]any); ok {
				item, _ := m["item"].(string)
				color, _ := m["color"].(string)
				result = append(result, Selection{Item: item, Color: color})
			}
		}
	}
	return result
}

// IsPending returns true if the job is pending
func (j *Job) IsPending() bool {
	return j.Status == JobStatusPending
}

// IsProcessing returns true if the job is processing
func (j *Job) IsProcessing() bool {
	return j.Status == JobStatusProcessing
}

// IsCompleted returns true if the job is completed
func (j *Job) IsCompleted() bool {
	return j.Status == JobStatusCompleted
}

// IsFailed returns true if the job failed
func (j *Job) IsFailed() bool {
	return j.Status == JobStatusFailed
}

// IsTerminal returns true if the job is in a terminal state
func (j *Job) IsTerminal() bool {
	return j.Status.IsTerminal()
}

// HasResult returns true if a final catalog has been produced
func (j *Job) HasResult() bool {
	return j.ResultURL != ""
}
