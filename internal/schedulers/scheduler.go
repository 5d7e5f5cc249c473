// Package schedulers turns a validated process list into a single-CPU
// execution timeline under one of several classical disciplines.
//
// Every Schedule call owns its scheduling state and discards it on return,
// so a Scheduler value can be shared between goroutines.
package schedulers

import (
	"fmt"
	"sort"

	"cpusim/internal/core"
)

// Scheduler is implemented by every discipline.
type Scheduler interface {
	// Name is a short human readable label, e.g. "Round-robin (q=2)".
	Name() string
	// About describes the discipline's selection policy.
	About() string
	// Schedule computes the timeline for reg. It never fails: input problems
	// are rejected by core.NewRegistry and internal defects panic.
	Schedule(reg *core.Registry) core.Timeline
}

// Algorithm keys accepted by New.
const (
	AlgorithmFCFS       = "fcfs"
	AlgorithmSJF        = "sjf"
	AlgorithmRoundRobin = "rr"
	AlgorithmPriority   = "priority"
	AlgorithmMLFQ       = "mlfq"
)

// Config selects and parameterises a discipline.
type Config struct {
	Algorithm         string `json:"algorithm" yaml:"algorithm"`
	Preemptive        bool   `json:"preemptive" yaml:"preemptive"`
	TimeQuantum       int    `json:"time_quantum" yaml:"time_quantum"`
	LevelsTimeQuantum []int  `json:"levels_time_quantum" yaml:"levels_time_quantum"`
}

type constructor func(cfg Config) (Scheduler, error)

var constructors = map[string]constructor{
	AlgorithmFCFS: func(Config) (Scheduler, error) {
		return NewFirstComeFirstServe(), nil
	},
	AlgorithmSJF: func(cfg Config) (Scheduler, error) {
		return NewShortestJobFirst(cfg.Preemptive), nil
	},
	AlgorithmRoundRobin: func(cfg Config) (Scheduler, error) {
		return NewRoundRobin(cfg.TimeQuantum)
	},
	AlgorithmPriority: func(cfg Config) (Scheduler, error) {
		return NewPriorityScheduling(cfg.Preemptive), nil
	},
	AlgorithmMLFQ: func(cfg Config) (Scheduler, error) {
		return NewMultilevelFeedbackQueue(cfg.LevelsTimeQuantum)
	},
}

// New builds the scheduler named by cfg.Algorithm.
func New(cfg Config) (Scheduler, error) {
	build, ok := constructors[cfg.Algorithm]
	if !ok {
		return nil, core.InvalidParameter("algorithm", fmt.Sprintf("unknown algorithm %q", cfg.Algorithm))
	}
	return build(cfg)
}

// Algorithms lists the keys accepted by New in sorted order.
func Algorithms() []string {
	keys := make([]string, 0, len(constructors))
	for k := range constructors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Compute validates processes and schedules them with s.
func Compute(s Scheduler, processes []core.Process) (core.Timeline, error) {
	reg, err := core.NewRegistry(processes)
	if err != nil {
		return nil, err
	}
	return s.Schedule(reg), nil
}
