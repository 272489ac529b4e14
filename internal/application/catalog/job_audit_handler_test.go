package catalog

import (
	"context"
	"testing"

	"github.com/catalog/backend/internal/domain/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newAuditTestJob(t *testing.T) *catalog.Job {
	t.Helper()
	job, err := catalog.NewJob("Acme Corp", "Tecnologia", []catalog.Selection{
		{Item: "camiseta", Color: "preto"},
	})
	require.NoError(t, err)
	return job
}

func TestJobAuditHandler_EventTypes(t *testing.T) {
	handler := NewJobAuditHandler(zap.NewNop())

	eventTypes := handler.EventTypes()
	assert.Len(t, eventTypes, 5)
	assert.Contains(t, eventTypes, catalog.EventTypeJobCreated)
	assert.Contains(t, eventTypes, catalog.EventTypeJobCompleted)
	assert.Contains(t, eventTypes, catalog.EventTypeJobFailed)
}

func TestJobAuditHandler_Handle_JobCreated(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handler := NewJobAuditHandler(zap.New(core))
	job := newAuditTestJob(t)

	err := handler.Handle(context.Background(), catalog.NewJobCreatedEvent(job))
	require.NoError(t, err)

	entries := logs.FilterMessage("job created").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, job.ID.String(), fields["job_id"])
	assert.Equal(t, "Acme Corp", fields["customer_name"])
}

func TestJobAuditHandler_Handle_JobFailed(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	handler := NewJobAuditHandler(zap.New(core))
	job := newAuditTestJob(t)
	job.ErrorMessage = "logo processing failed"

	err := handler.Handle(context.Background(), catalog.NewJobFailedEvent(job))
	require.NoError(t, err)

	entries := logs.FilterMessage("job failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "logo processing failed", entries[0].ContextMap()["error"])
}

func TestJobAuditHandler_Handle_UnknownEventIsNotAnError(t *testing.T) {
	handler := NewJobAuditHandler(zap.NewNop())
	job := newAuditTestJob(t)

	err := handler.Handle(context.Background(), catalog.NewTemplateCreatedEvent(&catalog.Template{}))
	require.NoError(t, err)

	err = handler.Handle(context.Background(), catalog.NewJobProgressedEvent(job))
	require.NoError(t, err)
}
