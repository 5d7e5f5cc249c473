package requests

import (
	"cpusim/internal/core"
	"cpusim/internal/schedulers"
)

type Job struct {
	PID         int `json:"pid" yaml:"pid"`
	ArrivalTime int `json:"arrival_time" yaml:"arrival_time"`
	BurstTime   int `json:"burst_time" yaml:"burst_time"`
	Priority    int `json:"priority" yaml:"priority"`
}

// ScheduleRequest is the body of the schedule endpoints and the layout of
// YAML/JSON process files. Algorithm is only read from files. A nil
// TimeQuantum or LevelsTimeQuantum means "use the configured default"; an
// explicit zero or empty list is passed through and rejected by the scheduler.
type ScheduleRequest struct {
	Algorithm         string `json:"algorithm,omitempty" yaml:"algorithm"`
	Preemptive        bool   `json:"preemptive" yaml:"preemptive"`
	TimeQuantum       *int   `json:"time_quantum,omitempty" yaml:"time_quantum"`
	LevelsTimeQuantum []int  `json:"levels_time_quantum" yaml:"levels_time_quantum"`
	Jobs              []Job  `json:"processes" yaml:"processes"`
}

// Processes converts the submitted jobs to scheduler input.
func (r *ScheduleRequest) Processes() []core.Process {
	procs := make([]core.Process, len(r.Jobs))
	for i, job := range r.Jobs {
		procs[i] = core.Process{
			PID:         job.PID,
			ArrivalTime: job.ArrivalTime,
			BurstTime:   job.BurstTime,
			Priority:    job.Priority,
		}
	}
	return procs
}

// Config builds the scheduler configuration for algorithm. Quantum settings
// left unset fall back to the supplied defaults.
func (r *ScheduleRequest) Config(algorithm string, defaultQuantum int, defaultLevels []int) schedulers.Config {
	cfg := schedulers.Config{
		Algorithm:         algorithm,
		Preemptive:        r.Preemptive,
		TimeQuantum:       defaultQuantum,
		LevelsTimeQuantum: r.LevelsTimeQuantum,
	}
	if r.TimeQuantum != nil {
		cfg.TimeQuantum = *r.TimeQuantum
	}
	if cfg.LevelsTimeQuantum == nil {
		cfg.LevelsTimeQuantum = defaultLevels
	}
	return cfg
}
