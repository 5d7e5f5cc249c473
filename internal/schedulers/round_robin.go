package schedulers

import (
	"fmt"

	"cpusim/internal/core"
)

// RoundRobin cycles through a FIFO ready queue, giving each process at most
// one quantum per turn.
type RoundRobin struct {
	timeQuantum int
}

// NewRoundRobin rejects a non-positive quantum.
func NewRoundRobin(timeQuantum int) (*RoundRobin, error) {
	if timeQuantum <= 0 {
		return nil, core.InvalidParameter("time_quantum", fmt.Sprintf("must be positive, got %d", timeQuantum))
	}
	return &RoundRobin{timeQuantum: timeQuantum}, nil
}

func (r *RoundRobin) Name() string {
	return fmt.Sprintf("Round-robin (q=%d)", r.timeQuantum)
}

func (r *RoundRobin) About() string {
	return "Preemptive. Arrived processes wait in a FIFO queue; the head runs for at most one time quantum " +
		"and, if unfinished, rejoins the tail behind anything that arrived meanwhile."
}

func (r *RoundRobin) Schedule(reg *core.Registry) core.Timeline {
	s := newRunState(reg, false)
	for !s.done() {
		s.admit(s.clock)
		if len(s.ready) == 0 {
			s.idle()
			continue
		}

		t := s.popFront()
		s.run(t, min(r.timeQuantum, t.remaining))

		// arrivals up to and including the new clock queue ahead of t
		s.admit(s.clock)
		if t.remaining > 0 {
			s.ready = append(s.ready, t)
		}
	}
	return s.timeline()
}
