package schedulers

import "cpusim/internal/core"

// PriorityScheduling selects the arrived process with the lowest priority
// number. In preemptive mode a more urgent arrival takes the CPU at the next
// unit boundary. Ties go to the smallest pid.
type PriorityScheduling struct {
	preemptive bool
}

func NewPriorityScheduling(preemptive bool) *PriorityScheduling {
	return &PriorityScheduling{preemptive: preemptive}
}

func (p *PriorityScheduling) Name() string {
	if p.preemptive {
		return "Priority (preemptive)"
	}
	return "Priority"
}

func (p *PriorityScheduling) About() string {
	if p.preemptive {
		return "Preemptive. The most urgent arrived process (lowest priority number) always holds the CPU; " +
			"a more urgent arrival preempts it. Low-priority work can starve."
	}
	return "Non-preemptive. When the CPU frees up, the most urgent arrived process (lowest priority number) " +
		"runs to completion."
}

func (p *PriorityScheduling) Schedule(reg *core.Registry) core.Timeline {
	if p.preemptive {
		return runUnitSteps(reg, byPriority)
	}
	return runToCompletion(reg, byPriority)
}
