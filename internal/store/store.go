// Package store persists finished region reports for run history.
package store

import (
	"context"
	"time"

	"github.com/daytrip-labs/travel-cli/internal/model"
)

// RunFilter specifies criteria for listing past runs.
type RunFilter struct {
	Region       string    `json:"region,omitempty"`
	StartedAfter time.Time `json:"started_after,omitempty"`
	Limit        int       `json:"limit,omitempty"`
	Offset       int       `json:"offset,omitempty"`
}

// RunSummary is one row of run history, light enough for listings.
type RunSummary struct {
	RunID        string    `json:"run_id"`
	Region       string    `json:"region"`
	Destinations int       `json:"destinations"`
	Reviews      int       `json:"reviews"`
	TotalCost    float64   `json:"total_cost_usd"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
}

// Store defines the persistence interface for region runs.
type Store interface {
	SaveReport(ctx context.Context, rep *model.RegionReport) error
	GetReport(ctx context.Context, runID string) (*model.RegionReport, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]RunSummary, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
