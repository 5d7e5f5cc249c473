package core

// Process is an immutable simulation input. Remaining work is tracked by the
// schedulers, never on the Process itself.
type Process struct {
	PID         int `json:"pid" yaml:"pid"`
	ArrivalTime int `json:"arrival_time" yaml:"arrival_time"`
	BurstTime   int `json:"burst_time" yaml:"burst_time"`
	// Priority is only consulted by priority scheduling; lower is more urgent.
	Priority int `json:"priority" yaml:"priority"`
}

// TimeSlice is one uninterrupted span of CPU ownership. Start == End marks a
// zero-burst process completing instantly.
type TimeSlice struct {
	PID   int `json:"pid" yaml:"pid"`
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Duration returns End - Start.
func (s TimeSlice) Duration() int {
	return s.End - s.Start
}

// Timeline is a sequence of non-overlapping slices ordered by Start.
type Timeline []TimeSlice

// Makespan returns the end of the last slice, or 0 for an empty timeline.
func (t Timeline) Makespan() int {
	if len(t) == 0 {
		return 0
	}
	return t[len(t)-1].End
}

// BusyTime sums the durations of all slices.
func (t Timeline) BusyTime() int {
	busy := 0
	for _, s := range t {
		busy += s.Duration()
	}
	return busy
}

// ForPID returns the slices owned by pid, in order.
func (t Timeline) ForPID(pid int) []TimeSlice {
	var out []TimeSlice
	for _, s := range t {
		if s.PID == pid {
			out = append(out, s)
		}
	}
	return out
}

// At returns the slice covering the unit [cursor, cursor+1), if any.
func (t Timeline) At(cursor int) (TimeSlice, bool) {
	for _, s := range t {
		if s.Start <= cursor && cursor < s.End {
			return s, true
		}
	}
	return TimeSlice{}, false
}
