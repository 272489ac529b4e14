package models

import (
	"encoding/json"
	"fmt"

	"github.com/catalog/backend/internal/domain/catalog"
	"github.com/catalog/backend/internal/domain/shared"
)

// CatalogJobModel is the persistence model for the catalog Job aggregate.
type CatalogJobModel struct {
	AggregateModel
	CustomerName string `gorm:"type:varchar(255);not null"`
	Industry     string `gorm:"type:varchar(100);not null"`
	Status       string `gorm:"type:varchar(20);not null;index"`
	Progress     int    `gorm:"not null;default:0"`
	ResultURL    string `gorm:"type:text"`
	ErrorMessage string `gorm:"type:text"`
	Metadata     string `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (CatalogJobModel) TableName() string {
	return "catalog_jobs"
}

// ToDomain converts the persistence model to a domain Job aggregate.
func (m *CatalogJobModel) ToDomain() (*catalog.Job, error) {
	job := &catalog.Job{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		CustomerName: m.CustomerName,
		Industry:     m.Industry,
		Status:       catalog.JobStatus(m.Status),
		Progress:     m.Progress,
		ResultURL:    m.ResultURL,
		ErrorMessage: m.ErrorMessage,
	}

	if m.Metadata != "" {
		if err := json.Unmarshal([]byte(m.Metadata), &job.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode job metadata: %w", err)
		}
	}
	if job.Metadata == nil {
		job.Metadata = make(map[string]any)
	}

	return job, nil
}

// FromDomain populates the persistence model from a domain Job aggregate.
func (m *CatalogJobModel) FromDomain(job *catalog.Job) error {
	m.FromDomainAggregateRoot(job.BaseAggregateRoot)
	m.CustomerName = job.CustomerName
	m.Industry = job.Industry
	m.Status = string(job.Status)
	m.Progress = job.Progress
	m.ResultURL = job.ResultURL
	m.ErrorMessage = job.ErrorMessage

	if len(job.Metadata) > 0 {
		data, err := json.Marshal(job.Metadata)
		if err != nil {
			return fmt.Errorf("failed to encode job metadata: %w", err)
		}
		m.Metadata = string(data)
	} else {
		m.Metadata = "{}"
	}

	return nil
}

// CatalogJobModelFromDomain creates a new persistence model from a domain Job aggregate.
func CatalogJobModelFromDomain(job *catalog.Job) (*CatalogJobModel, error) {
	m := &CatalogJobModel{}
	if err := m.FromDomain(job); err != nil {
		return nil, err
	}
	return m, nil
}

// TemplateModel is the persistence model for the rendering Template aggregate.
type TemplateModel struct {
	AggregateModel
	Item        string `gorm:"type:varchar(100);not null;uniqueIndex:idx_templates_item_color,priority:1"`
	Color       string `gorm:"type:varchar(50);not null;uniqueIndex:idx_templates_item_color,priority:2"`
	Background  string `gorm:"type:varchar(10);not null"`
	TemplateURL string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (TemplateModel) TableName() string {
	return "templates"
}

// ToDomain converts the persistence model to a domain Template aggregate.
func (m *TemplateModel) ToDomain() *catalog.Template {
	return &catalog.Template{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		Item:        m.Item,
		Color:       m.Color,
		Background:  catalog.BackgroundTone(m.Background),
		TemplateURL: m.TemplateURL,
	}
}

// FromDomain populates the persistence model from a domain Template aggregate.
func (m *TemplateModel) FromDomain(t *catalog.Template) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.Item = t.Item
	m.Color = t.Color
	m.Background = string(t.Background)
	m.TemplateURL = t.TemplateURL
}

// TemplateModelFromDomain creates a new persistence model from a domain Template aggregate.
func TemplateModelFromDomain(t *catalog.Template) *TemplateModel {
	m := &TemplateModel{}
	m.FromDomain(t)
	return m
}
