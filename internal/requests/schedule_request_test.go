package requests

import (
	"encoding/json"
	"errors"
	"testing"

	"cpusim/internal/core"
	"cpusim/internal/schedulers"

	"github.com/google/go-cmp/cmp"
)

func TestScheduleRequestDecode(t *testing.T) {
	body := `{"preemptive": true, "processes": [
		{"pid": 1, "arrival_time": 0, "burst_time": 4, "priority": 2},
		{"pid": 2, "arrival_time": 1, "burst_time": 3}
	]}`
	var req ScheduleRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatal(err)
	}

	want := []core.Process{
		{PID: 1, ArrivalTime: 0, BurstTime: 4, Priority: 2},
		{PID: 2, ArrivalTime: 1, BurstTime: 3},
	}
	if diff := cmp.Diff(want, req.Processes()); diff != "" {
		t.Errorf("Processes() (-want +got):\n%s", diff)
	}
}

func TestScheduleRequestConfigDefaults(t *testing.T) {
	req := ScheduleRequest{Preemptive: true}
	got := req.Config(schedulers.AlgorithmRoundRobin, 3, []int{2, 4})
	want := schedulers.Config{Algorithm: "rr", Preemptive: true, TimeQuantum: 3, LevelsTimeQuantum: []int{2, 4}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Config() (-want +got):\n%s", diff)
	}

	quantum := 5
	req = ScheduleRequest{TimeQuantum: &quantum, LevelsTimeQuantum: []int{1}}
	got = req.Config(schedulers.AlgorithmMLFQ, 3, []int{2, 4})
	if got.TimeQuantum != 5 || !cmp.Equal(got.LevelsTimeQuantum, []int{1}) {
		t.Errorf("explicit settings overridden: %+v", got)
	}
}

func TestScheduleRequestExplicitZeroIsRejected(t *testing.T) {
	tests := []struct {
		name      string
		algorithm string
		body      string
		field     string
	}{
		{"zero quantum", schedulers.AlgorithmRoundRobin, `{"time_quantum": 0, "processes": []}`, "time_quantum"},
		{"empty levels", schedulers.AlgorithmMLFQ, `{"levels_time_quantum": [], "processes": []}`, "levels_time_quantum"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req ScheduleRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatal(err)
			}
			cfg := req.Config(tt.algorithm, 2, []int{2, 4})
			_, err := schedulers.New(cfg)
			if !errors.Is(err, core.ErrValidation) {
				t.Fatalf("expected validation error for %+v, got %v", cfg, err)
			}
			var verr *core.ValidationError
			if !errors.As(err, &verr) || len(verr.Details) != 1 || verr.Details[0].Field != tt.field {
				t.Errorf("details = %+v, want one %s entry", verr, tt.field)
			}
		})
	}
}
