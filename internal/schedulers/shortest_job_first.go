package schedulers

import "cpusim/internal/core"

// ShortestJobFirst selects the arrived process with the least work. In
// preemptive mode (shortest remaining time first) the choice is revisited
// every time unit. Ties go to the smallest pid.
type ShortestJobFirst struct {
	preemptive bool
}

func NewShortestJobFirst(preemptive bool) *ShortestJobFirst {
	return &ShortestJobFirst{preemptive: preemptive}
}

func (s *ShortestJobFirst) Name() string {
	if s.preemptive {
		return "Shortest-remaining-time-first"
	}
	return "Shortest-job-first"
}

func (s *ShortestJobFirst) About() string {
	if s.preemptive {
		return "Preemptive. At every time unit the arrived process with the least remaining burst runs, " +
			"so a newly arrived short job displaces a longer one. Minimises average waiting time; long jobs can starve."
	}
	return "Non-preemptive. Whenever the CPU frees up, the arrived process with the shortest burst runs to completion. " +
		"Lower average waiting time than FCFS; long jobs may wait behind a stream of short ones."
}

func (s *ShortestJobFirst) Schedule(reg *core.Registry) core.Timeline {
	if s.preemptive {
		return runUnitSteps(reg, byRemaining)
	}
	return runToCompletion(reg, byBurst)
}
