// Package display projects a finished timeline onto a display cursor. It
// never calls back into the schedulers: everything a frame needs is derived
// from the timeline and the cursor position.
package display

import (
	"context"
	"sort"
	"time"

	"cpusim/internal/core"
)

// Completion pairs a finished process with its completion time.
type Completion struct {
	PID            int `json:"pid"`
	CompletionTime int `json:"completion_time"`
}

// Snapshot is the state of the simulated CPU during unit [Cursor, Cursor+1).
type Snapshot struct {
	Cursor    int          `json:"cursor"`
	Idle      bool         `json:"idle"`
	Running   int          `json:"running"`
	Ready     []int        `json:"ready"`
	Completed []Completion `json:"completed"`
	Done      bool         `json:"done"`
}

// Projector answers cursor queries for one timeline.
type Projector struct {
	processes  []core.Process
	timeline   core.Timeline
	completion map[int]int
}

func NewProjector(processes []core.Process, timeline core.Timeline) *Projector {
	completion := make(map[int]int, len(processes))
	for _, s := range timeline {
		completion[s.PID] = s.End
	}
	sorted := append([]core.Process(nil), processes...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].PID < sorted[j].PID })
	return &Projector{processes: sorted, timeline: timeline, completion: completion}
}

// At returns the snapshot for cursor.
func (p *Projector) At(cursor int) Snapshot {
	snap := Snapshot{
		Cursor:    cursor,
		Idle:      true,
		Ready:     []int{},
		Completed: []Completion{},
		Done:      cursor >= p.timeline.Makespan(),
	}
	if s, ok := p.timeline.At(cursor); ok {
		snap.Idle = false
		snap.Running = s.PID
	}

	for _, proc := range p.processes {
		end, scheduled := p.completion[proc.PID]
		switch {
		case scheduled && end <= cursor:
			snap.Completed = append(snap.Completed, Completion{PID: proc.PID, CompletionTime: end})
		case proc.ArrivalTime > cursor:
		case !snap.Idle && proc.PID == snap.Running:
		default:
			snap.Ready = append(snap.Ready, proc.PID)
		}
	}
	return snap
}

// Project is the one-shot form of NewProjector(processes, timeline).At(cursor).
func Project(processes []core.Process, timeline core.Timeline, cursor int) Snapshot {
	return NewProjector(processes, timeline).At(cursor)
}

// Replay walks a cursor from 0 through the makespan, calling fn once per tick
// of interval. It returns nil after the final frame or ctx.Err() if
// cancelled first.
func Replay(ctx context.Context, processes []core.Process, timeline core.Timeline, interval time.Duration, fn func(Snapshot)) error {
	projector := NewProjector(processes, timeline)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for cursor := 0; ; cursor++ {
		snap := projector.At(cursor)
		fn(snap)
		if snap.Done {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
