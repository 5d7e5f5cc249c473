package core

// Registry holds a validated, immutable process list.
type Registry struct {
	processes []Process
}

// NewRegistry validates processes and copies them. Every problem found is
// reported in a single *ValidationError.
func NewRegistry(processes []Process) (*Registry, error) {
	if len(processes) == 0 {
		return nil, NewValidationError("invalid process list", FieldError{Index: -1, Field: "processes", Message: "at least one process is required"})
	}

	var details []FieldError
	seen := make(map[int]bool, len(processes))
	for i, p := range processes {
		if seen[p.PID] {
			details = append(details, FieldError{Index: i, PID: p.PID, Field: "pid", Message: "is duplicated"})
		}
		seen[p.PID] = true
		if p.ArrivalTime < 0 {
			details = append(details, FieldError{Index: i, PID: p.PID, Field: "arrival_time", Message: "must not be negative"})
		}
		if p.BurstTime < 0 {
			details = append(details, FieldError{Index: i, PID: p.PID, Field: "burst_time", Message: "must not be negative"})
		}
		if p.Priority < 0 {
			details = append(details, FieldError{Index: i, PID: p.PID, Field: "priority", Message: "must not be negative"})
		}
	}
	if len(details) > 0 {
		return nil, NewValidationError("invalid process list", details...)
	}

	return &Registry{processes: append([]Process(nil), processes...)}, nil
}

// Processes returns a copy of the processes in input order.
func (r *Registry) Processes() []Process {
	return append([]Process(nil), r.processes...)
}

// Len returns the number of registered processes.
func (r *Registry) Len() int {
	return len(r.processes)
}
