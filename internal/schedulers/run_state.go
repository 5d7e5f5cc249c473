package schedulers

import (
	"sort"

	"cpusim/internal/core"
)

// task is the mutable per-run view of a process.
type task struct {
	core.Process
	remaining int
}

// runState is the scheduling state of a single Schedule call.
type runState struct {
	pending   []*task // not yet arrived, by arrival then pid
	ready     []*task
	clock     int
	completed int
	total     int
	cpu       *core.CPU
}

func newRunState(reg *core.Registry, coalesce bool) *runState {
	procs := reg.Processes()
	pending := make([]*task, len(procs))
	for i, p := range procs {
		pending[i] = &task{Process: p, remaining: p.BurstTime}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		if pending[i].ArrivalTime != pending[j].ArrivalTime {
			return pending[i].ArrivalTime < pending[j].ArrivalTime
		}
		return pending[i].PID < pending[j].PID
	})

	return &runState{
		pending: pending,
		ready:   make([]*task, 0, len(procs)),
		total:   len(procs),
		cpu:     core.NewCPU(coalesce),
	}
}

// admit moves every pending task that has arrived by now to the tail of the
// ready queue.
func (s *runState) admit(now int) {
	for len(s.pending) > 0 && s.pending[0].ArrivalTime <= now {
		s.ready = append(s.ready, s.pending[0])
		s.pending = s.pending[1:]
	}
}

// drain empties the ready queue and returns its contents in order.
func (s *runState) drain() []*task {
	out := s.ready
	s.ready = make([]*task, 0, s.total)
	return out
}

func (s *runState) done() bool {
	return s.completed == s.total
}

// idle fast-forwards the clock to the next arrival. No slice is emitted for
// the idle span.
func (s *runState) idle() {
	if len(s.pending) == 0 {
		core.Violatef("cpu idle at %d with %d of %d processes incomplete and none pending", s.clock, s.total-s.completed, s.total)
	}
	if next := s.pending[0].ArrivalTime; next > s.clock {
		s.clock = next
	}
}

// take removes and returns the ready task ordered first by less.
func (s *runState) take(less func(a, b *task) bool) *task {
	best := 0
	for i := 1; i < len(s.ready); i++ {
		if less(s.ready[i], s.ready[best]) {
			best = i
		}
	}
	t := s.ready[best]
	s.ready = append(s.ready[:best], s.ready[best+1:]...)
	return t
}

// popFront removes and returns the head of the ready queue.
func (s *runState) popFront() *task {
	t := s.ready[0]
	s.ready = s.ready[1:]
	return t
}

// run executes t for d units starting at the current clock.
func (s *runState) run(t *task, d int) {
	if t.ArrivalTime > s.clock {
		core.Violatef("pid %d scheduled at %d before its arrival at %d", t.PID, s.clock, t.ArrivalTime)
	}
	if d > t.remaining {
		core.Violatef("pid %d asked to run %d units with only %d remaining", t.PID, d, t.remaining)
	}
	s.cpu.Run(t.PID, s.clock, s.clock+d)
	s.clock += d
	t.remaining -= d
	if t.remaining == 0 {
		s.completed++
	}
}

func (s *runState) timeline() core.Timeline {
	return s.cpu.Timeline()
}

// runToCompletion is the non-preemptive selection loop: pick the best arrived
// task by less and run it to completion as a single slice.
func runToCompletion(reg *core.Registry, less func(a, b *task) bool) core.Timeline {
	s := newRunState(reg, false)
	for !s.done() {
		s.admit(s.clock)
		if len(s.ready) == 0 {
			s.idle()
			continue
		}
		t := s.take(less)
		s.run(t, t.remaining)
	}
	return s.timeline()
}

type step int

const (
	stepSelectNext step = iota
	stepExecuteUnit
	stepCheckCompletion
	stepIdle
)

// runUnitSteps is the preemptive selection loop shared by SRTF and
// preemptive priority. Selection is re-evaluated at every unit boundary and
// consecutive units of the same process coalesce into one slice.
func runUnitSteps(reg *core.Registry, less func(a, b *task) bool) core.Timeline {
	s := newRunState(reg, true)
	var current *task
	state := stepSelectNext
	for !s.done() {
		switch state {
		case stepSelectNext:
			s.admit(s.clock)
			if len(s.ready) == 0 {
				state = stepIdle
				continue
			}
			current = s.take(less)
			state = stepExecuteUnit
		case stepIdle:
			s.idle()
			state = stepSelectNext
		case stepExecuteUnit:
			// zero-burst processes complete without consuming a unit
			s.run(current, min(1, current.remaining))
			state = stepCheckCompletion
		case stepCheckCompletion:
			if current.remaining > 0 {
				s.ready = append(s.ready, current)
			}
			current = nil
			state = stepSelectNext
		}
	}
	return s.timeline()
}

func byBurst(a, b *task) bool {
	if a.BurstTime != b.BurstTime {
		return a.BurstTime < b.BurstTime
	}
	return a.PID < b.PID
}

func byRemaining(a, b *task) bool {
	if a.remaining != b.remaining {
		return a.remaining < b.remaining
	}
	return a.PID < b.PID
}

func byPriority(a, b *task) bool {
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	return a.PID < b.PID
}
