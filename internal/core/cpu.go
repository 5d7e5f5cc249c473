package core

// CPU records which process owns the single simulated core and builds the
// resulting Timeline. A CPU belongs to exactly one scheduling run.
type CPU struct {
	coalesce bool
	slices   []TimeSlice
}

// NewCPU returns an idle CPU. With coalesce set, a slice that continues the
// previous slice of the same process extends it instead of starting a new one.
func NewCPU(coalesce bool) *CPU {
	return &CPU{coalesce: coalesce}
}

// Run gives the CPU to pid over [start, end).
func (c *CPU) Run(pid, start, end int) {
	if end < start {
		Violatef("slice for pid %d ends at %d before it starts at %d", pid, end, start)
	}
	if n := len(c.slices); n > 0 {
		last := &c.slices[n-1]
		if start < last.End {
			Violatef("slice for pid %d at %d overlaps pid %d running until %d", pid, start, last.PID, last.End)
		}
		if c.coalesce && last.PID == pid && last.End == start && last.End > last.Start && end > start {
			last.End = end
			return
		}
	}
	c.slices = append(c.slices, TimeSlice{PID: pid, Start: start, End: end})
}

// Timeline returns a copy of the slices recorded so far.
func (c *CPU) Timeline() Timeline {
	return append(Timeline(nil), c.slices...)
}
