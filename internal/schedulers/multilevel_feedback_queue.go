package schedulers

import (
	"fmt"
	"strings"

	"cpusim/internal/core"
)

// MultilevelFeedbackQueue has one round-robin level per configured quantum
// followed by a first-come, first-serve level. Processes enter the top level
// and drop one level each time they use a full quantum without finishing.
type MultilevelFeedbackQueue struct {
	timeQuantumList []int
}

// NewMultilevelFeedbackQueue requires at least one level and positive quanta.
func NewMultilevelFeedbackQueue(timeQuantumList []int) (*MultilevelFeedbackQueue, error) {
	if len(timeQuantumList) == 0 {
		return nil, core.InvalidParameter("levels_time_quantum", "at least one level is required")
	}
	for i, q := range timeQuantumList {
		if q <= 0 {
			return nil, core.InvalidParameter("levels_time_quantum", fmt.Sprintf("level %d quantum must be positive, got %d", i, q))
		}
	}
	return &MultilevelFeedbackQueue{timeQuantumList: append([]int(nil), timeQuantumList...)}, nil
}

func (m *MultilevelFeedbackQueue) Name() string {
	levels := make([]string, 0, len(m.timeQuantumList)+1)
	for _, q := range m.timeQuantumList {
		levels = append(levels, fmt.Sprint(q))
	}
	levels = append(levels, "fcfs")
	return fmt.Sprintf("Multilevel feedback queue (%s)", strings.Join(levels, ", "))
}

func (m *MultilevelFeedbackQueue) About() string {
	return "Preemptive at quantum boundaries. The highest non-empty level is served first; each round-robin level " +
		"demotes processes that exhaust its quantum, and the last level runs them to completion."
}

func (m *MultilevelFeedbackQueue) Schedule(reg *core.Registry) core.Timeline {
	s := newRunState(reg, false)
	levels := make([][]*task, len(m.timeQuantumList)+1)
	last := len(levels) - 1

	for !s.done() {
		s.admit(s.clock)
		levels[0] = append(levels[0], s.drain()...)

		level := -1
		for i := range levels {
			if len(levels[i]) > 0 {
				level = i
				break
			}
		}
		if level < 0 {
			s.idle()
			continue
		}

		t := levels[level][0]
		levels[level] = levels[level][1:]
		exec := t.remaining
		if level < last {
			exec = min(m.timeQuantumList[level], t.remaining)
		}
		s.run(t, exec)

		s.admit(s.clock)
		levels[0] = append(levels[0], s.drain()...)
		if t.remaining > 0 {
			next := min(level+1, last)
			levels[next] = append(levels[next], t)
		}
	}
	return s.timeline()
}
