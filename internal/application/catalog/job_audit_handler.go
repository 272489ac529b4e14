package catalog

import (
	"context"

	"github.com/catalog/backend/internal/domain/catalog"
	"github.com/catalog/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// JobAuditHandler writes an audit trail of job lifecycle events.
// Jobs run in the background, so these log lines are the only
// chronological record of what happened between submit and completion.
type JobAuditHandler struct {
	logger *zap.Logger
}

// NewJobAuditHandler creates a new handler for job lifecycle events
func NewJobAuditHandler(logger *zap.Logger) *JobAuditHandler {
	return &JobAuditHandler{logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *JobAuditHandler) EventTypes() []string {
	return []string{
		catalog.EventTypeJobCreated,
		catalog.EventTypeJobStatusChange,
		catalog.EventTypeJobProgressed,
		catalog.EventTypeJobCompleted,
		catalog.EventTypeJobFailed,
	}
}

// Handle records a job lifecycle event
func (h *JobAuditHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *catalog.JobCreatedEvent:
		h.logger.Info("job created",
			zap.String("job_id", e.AggregateID().String()),
			zap.String("customer_name", e.CustomerName),
			zap.String("industry", e.Industry),
			zap.Int("total_pages", e.TotalPages),
		)

	case *catalog.JobStatusChangedEvent:
		h.logger.Debug("job status changed",
			zap.String("job_id", e.AggregateID().String()),
			zap.String("old_status", string(e.OldStatus)),
			zap.String("new_status", string(e.NewStatus)),
		)

	case *catalog.JobProgressedEvent:
		h.logger.Debug("job progressed",
			zap.String("job_id", e.AggregateID().String()),
			zap.Int("progress", e.Progress),
		)

	case *catalog.JobCompletedEvent:
		h.logger.Info("job completed",
			zap.String("job_id", e.AggregateID().String()),
			zap.String("result_url", e.ResultURL),
		)

	case *catalog.JobFailedEvent:
		h.logger.Warn("job failed",
			zap.String("job_id", e.AggregateID().String()),
			zap.String("error", e.ErrorMessage),
		)

	default:
		h.logger.Debug("unhandled job event",
			zap.String("event_type", event.EventType()),
		)
	}

	return nil
}

// Ensure JobAuditHandler implements shared.EventHandler
var _ shared.EventHandler = (*JobAuditHandler)(nil)
