package store

import (
	"context"
	"errors"
	"time"

	"cpusim/internal/core"
)

// ErrNotFound is returned for unknown run ids.
var ErrNotFound = errors.New("run not found")

// Run is one persisted scheduling run: its input, parameters and timeline.
type Run struct {
	ID                string         `json:"id"`
	Algorithm         string         `json:"algorithm"`
	Name              string         `json:"name"`
	Preemptive        bool           `json:"preemptive"`
	TimeQuantum       int            `json:"time_quantum,omitempty"`
	LevelsTimeQuantum []int          `json:"levels_time_quantum,omitempty"`
	Processes         []core.Process `json:"processes"`
	Timeline          core.Timeline  `json:"timeline"`
	CreatedAt         time.Time      `json:"created_at"`
}

// Store defines the persistence layer for run history.
type Store interface {
	CreateRun(ctx context.Context, run *Run) error
	GetRun(ctx context.Context, id string) (*Run, error)
	// ListRuns returns the newest runs first; limit <= 0 means no limit.
	ListRuns(ctx context.Context, limit int) ([]*Run, error)

	Close() error
	Migrate(ctx context.Context) error
}
