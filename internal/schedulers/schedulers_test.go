package schedulers

import (
	"errors"
	"math/rand"
	"sync"
	"testing"

	"cpusim/internal/core"

	"github.com/google/go-cmp/cmp"
)

// classic is the five-process workload used throughout the tests.
var classic = []core.Process{
	{PID: 1, ArrivalTime: 0, BurstTime: 4, Priority: 2},
	{PID: 2, ArrivalTime: 1, BurstTime: 3, Priority: 1},
	{PID: 3, ArrivalTime: 2, BurstTime: 1, Priority: 3},
	{PID: 4, ArrivalTime: 3, BurstTime: 5, Priority: 0},
	{PID: 5, ArrivalTime: 4, BurstTime: 2, Priority: 1},
}

func mustRoundRobin(t *testing.T, q int) *RoundRobin {
	t.Helper()
	rr, err := NewRoundRobin(q)
	if err != nil {
		t.Fatalf("NewRoundRobin(%d): %v", q, err)
	}
	return rr
}

func mustMLFQ(t *testing.T, quanta ...int) *MultilevelFeedbackQueue {
	t.Helper()
	m, err := NewMultilevelFeedbackQueue(quanta)
	if err != nil {
		t.Fatalf("NewMultilevelFeedbackQueue(%v): %v", quanta, err)
	}
	return m
}

func TestSchedule(t *testing.T) {
	tests := []struct {
		name      string
		scheduler Scheduler
		processes []core.Process
		want      core.Timeline
	}{
		{
			name:      "fcfs classic",
			scheduler: NewFirstComeFirstServe(),
			processes: classic,
			want:      core.Timeline{{1, 0, 4}, {2, 4, 7}, {3, 7, 8}, {4, 8, 13}, {5, 13, 15}},
		},
		{
			name:      "fcfs equal arrivals keep input order",
			scheduler: NewFirstComeFirstServe(),
			processes: []core.Process{{PID: 2, BurstTime: 1}, {PID: 1, BurstTime: 1}},
			want:      core.Timeline{{2, 0, 1}, {1, 1, 2}},
		},
		{
			name:      "fcfs idles until next arrival",
			scheduler: NewFirstComeFirstServe(),
			processes: []core.Process{{PID: 1, ArrivalTime: 0, BurstTime: 2}, {PID: 2, ArrivalTime: 6, BurstTime: 1}},
			want:      core.Timeline{{1, 0, 2}, {2, 6, 7}},
		},
		{
			name:      "sjf classic",
			scheduler: NewShortestJobFirst(false),
			processes: classic,
			want:      core.Timeline{{1, 0, 4}, {3, 4, 5}, {5, 5, 7}, {2, 7, 10}, {4, 10, 15}},
		},
		{
			name:      "sjf ties go to smallest pid",
			scheduler: NewShortestJobFirst(false),
			processes: []core.Process{{PID: 7, BurstTime: 3}, {PID: 3, BurstTime: 3}, {PID: 5, BurstTime: 3}},
			want:      core.Timeline{{3, 0, 3}, {5, 3, 6}, {7, 6, 9}},
		},
		{
			name:      "srtf classic",
			scheduler: NewShortestJobFirst(true),
			processes: classic,
			want:      core.Timeline{{1, 0, 2}, {3, 2, 3}, {1, 3, 5}, {5, 5, 7}, {2, 7, 10}, {4, 10, 15}},
		},
		{
			name:      "srtf preempts after first unit",
			scheduler: NewShortestJobFirst(true),
			processes: []core.Process{{PID: 1, ArrivalTime: 0, BurstTime: 8}, {PID: 2, ArrivalTime: 1, BurstTime: 4}},
			want:      core.Timeline{{1, 0, 1}, {2, 1, 5}, {1, 5, 12}},
		},
		{
			name:      "srtf zero burst completes instantly",
			scheduler: NewShortestJobFirst(true),
			processes: []core.Process{{PID: 1, ArrivalTime: 0, BurstTime: 3}, {PID: 2, ArrivalTime: 1, BurstTime: 0}},
			want:      core.Timeline{{1, 0, 1}, {2, 1, 1}, {1, 1, 3}},
		},
		{
			name:      "preemptive priority zero burst waits for its turn",
			scheduler: NewPriorityScheduling(true),
			processes: []core.Process{{PID: 1, ArrivalTime: 0, BurstTime: 5}, {PID: 2, ArrivalTime: 1, BurstTime: 0, Priority: 3}},
			want:      core.Timeline{{1, 0, 5}, {2, 5, 5}},
		},
		{
			name:      "rr single process is split by quantum",
			scheduler: mustRoundRobin(t, 2),
			processes: []core.Process{{PID: 1, ArrivalTime: 0, BurstTime: 5}},
			want:      core.Timeline{{1, 0, 2}, {1, 2, 4}, {1, 4, 5}},
		},
		{
			name:      "rr classic",
			scheduler: mustRoundRobin(t, 2),
			processes: classic,
			want: core.Timeline{
				{1, 0, 2}, {2, 2, 4}, {3, 4, 5}, {1, 5, 7}, {4, 7, 9},
				{5, 9, 11}, {2, 11, 12}, {4, 12, 14}, {4, 14, 15},
			},
		},
		{
			name:      "rr idle gap",
			scheduler: mustRoundRobin(t, 3),
			processes: []core.Process{{PID: 1, ArrivalTime: 2, BurstTime: 2}, {PID: 2, ArrivalTime: 10, BurstTime: 4}},
			want:      core.Timeline{{1, 2, 4}, {2, 10, 13}, {2, 13, 14}},
		},
		{
			name:      "priority classic",
			scheduler: NewPriorityScheduling(false),
			processes: classic,
			want:      core.Timeline{{1, 0, 4}, {4, 4, 9}, {2, 9, 12}, {5, 12, 14}, {3, 14, 15}},
		},
		{
			name:      "preemptive priority classic",
			scheduler: NewPriorityScheduling(true),
			processes: classic,
			want:      core.Timeline{{1, 0, 1}, {2, 1, 3}, {4, 3, 8}, {2, 8, 9}, {5, 9, 11}, {1, 11, 14}, {3, 14, 15}},
		},
		{
			name:      "preemptive priority idle gap",
			scheduler: NewPriorityScheduling(true),
			processes: []core.Process{{PID: 1, ArrivalTime: 0, BurstTime: 2, Priority: 1}, {PID: 2, ArrivalTime: 5, BurstTime: 3, Priority: 0}},
			want:      core.Timeline{{1, 0, 2}, {2, 5, 8}},
		},
		{
			name:      "priority idle gap",
			scheduler: NewPriorityScheduling(false),
			processes: []core.Process{{PID: 1, ArrivalTime: 1, BurstTime: 2, Priority: 4}, {PID: 2, ArrivalTime: 9, BurstTime: 1, Priority: 0}},
			want:      core.Timeline{{1, 1, 3}, {2, 9, 10}},
		},
		{
			name:      "priority ties go to smallest pid",
			scheduler: NewPriorityScheduling(false),
			processes: []core.Process{{PID: 9, BurstTime: 1, Priority: 2}, {PID: 4, BurstTime: 1, Priority: 2}},
			want:      core.Timeline{{4, 0, 1}, {9, 1, 2}},
		},
		{
			name:      "mlfq classic",
			scheduler: mustMLFQ(t, 2, 4),
			processes: classic,
			want:      core.Timeline{{1, 0, 2}, {2, 2, 4}, {3, 4, 5}, {4, 5, 7}, {5, 7, 9}, {1, 9, 11}, {2, 11, 12}, {4, 12, 15}},
		},
		{
			name:      "mlfq last level runs to completion",
			scheduler: mustMLFQ(t, 1),
			processes: []core.Process{{PID: 1, BurstTime: 3}},
			want:      core.Timeline{{1, 0, 1}, {1, 1, 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(tt.scheduler, tt.processes)
			if err != nil {
				t.Fatalf("Compute: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("timeline mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func allSchedulers(t *testing.T) []Scheduler {
	return []Scheduler{
		NewFirstComeFirstServe(),
		NewShortestJobFirst(false),
		NewShortestJobFirst(true),
		mustRoundRobin(t, 1),
		mustRoundRobin(t, 3),
		NewPriorityScheduling(false),
		NewPriorityScheduling(true),
		mustMLFQ(t, 2, 4),
	}
}

func randomWorkload(r *rand.Rand) []core.Process {
	n := 1 + r.Intn(12)
	procs := make([]core.Process, n)
	for i := range procs {
		procs[i] = core.Process{
			PID:         n*3 - i*2, // unique, not sorted
			ArrivalTime: r.Intn(20),
			BurstTime:   r.Intn(8),
			Priority:    r.Intn(4),
		}
	}
	return procs
}

func TestScheduleInvariants(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for round := 0; round < 200; round++ {
		procs := randomWorkload(r)
		for _, s := range allSchedulers(t) {
			tl, err := Compute(s, procs)
			if err != nil {
				t.Fatalf("%s: %v", s.Name(), err)
			}
			checkInvariants(t, s.Name(), procs, tl)
		}
	}
}

func checkInvariants(t *testing.T, name string, procs []core.Process, tl core.Timeline) {
	t.Helper()
	arrival := make(map[int]int, len(procs))
	work := make(map[int]int, len(procs))
	seen := make(map[int]bool, len(procs))
	for _, p := range procs {
		arrival[p.PID] = p.ArrivalTime
	}
	for i, s := range tl {
		if s.End < s.Start {
			t.Fatalf("%s: slice %d %+v ends before it starts", name, i, s)
		}
		if s.Start < arrival[s.PID] {
			t.Fatalf("%s: slice %d %+v starts before arrival %d", name, i, s, arrival[s.PID])
		}
		if i > 0 && tl[i-1].End > s.Start {
			t.Fatalf("%s: slice %d %+v overlaps %+v", name, i, s, tl[i-1])
		}
		work[s.PID] += s.Duration()
		seen[s.PID] = true
	}
	for _, p := range procs {
		if work[p.PID] != p.BurstTime {
			t.Fatalf("%s: pid %d scheduled for %d units, burst is %d (%v)", name, p.PID, work[p.PID], p.BurstTime, tl)
		}
		if !seen[p.PID] {
			t.Fatalf("%s: pid %d missing from timeline", name, p.PID)
		}
	}
}

func TestRoundRobinQuantumCap(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for q := 1; q <= 4; q++ {
		rr := mustRoundRobin(t, q)
		for round := 0; round < 50; round++ {
			tl, err := Compute(rr, randomWorkload(r))
			if err != nil {
				t.Fatal(err)
			}
			for _, s := range tl {
				if s.Duration() > q {
					t.Fatalf("q=%d: slice %+v exceeds quantum", q, s)
				}
			}
		}
	}
}

func TestScheduleIsIdempotent(t *testing.T) {
	for _, s := range allSchedulers(t) {
		reg, err := core.NewRegistry(classic)
		if err != nil {
			t.Fatal(err)
		}
		first := s.Schedule(reg)
		second := s.Schedule(reg)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("%s: second run differs (-first +second):\n%s", s.Name(), diff)
		}
		if diff := cmp.Diff(classic, reg.Processes()); diff != "" {
			t.Errorf("%s: registry mutated (-want +got):\n%s", s.Name(), diff)
		}
	}
}

func TestScheduleConcurrentUse(t *testing.T) {
	s := NewShortestJobFirst(true)
	want, err := Compute(s, classic)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	results := make([]core.Timeline, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Compute(s, classic)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("goroutine %d (-want +got):\n%s", i, diff)
		}
	}
}

func TestComputeRejectsInvalidInput(t *testing.T) {
	_, err := Compute(NewFirstComeFirstServe(), []core.Process{{PID: 1, ArrivalTime: -1, BurstTime: 2}})
	if !errors.Is(err, core.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		cfg     Config
		name    string
		wantErr bool
	}{
		{cfg: Config{Algorithm: AlgorithmFCFS}, name: "First-come, first-serve"},
		{cfg: Config{Algorithm: AlgorithmSJF, Preemptive: true}, name: "Shortest-remaining-time-first"},
		{cfg: Config{Algorithm: AlgorithmRoundRobin, TimeQuantum: 3}, name: "Round-robin (q=3)"},
		{cfg: Config{Algorithm: AlgorithmPriority}, name: "Priority"},
		{cfg: Config{Algorithm: AlgorithmMLFQ, LevelsTimeQuantum: []int{2, 4}}, name: "Multilevel feedback queue (2, 4, fcfs)"},
		{cfg: Config{Algorithm: AlgorithmRoundRobin}, wantErr: true},
		{cfg: Config{Algorithm: AlgorithmMLFQ}, wantErr: true},
		{cfg: Config{Algorithm: AlgorithmMLFQ, LevelsTimeQuantum: []int{2, 0}}, wantErr: true},
		{cfg: Config{Algorithm: "lottery"}, wantErr: true},
	}
	for _, tt := range tests {
		s, err := New(tt.cfg)
		if tt.wantErr {
			if !errors.Is(err, core.ErrValidation) {
				t.Errorf("New(%+v): expected validation error, got %v", tt.cfg, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("New(%+v): %v", tt.cfg, err)
			continue
		}
		if s.Name() != tt.name {
			t.Errorf("New(%+v).Name() = %q, want %q", tt.cfg, s.Name(), tt.name)
		}
		if s.About() == "" {
			t.Errorf("New(%+v).About() is empty", tt.cfg)
		}
	}
}

func TestAlgorithms(t *testing.T) {
	want := []string{"fcfs", "mlfq", "priority", "rr", "sjf"}
	if diff := cmp.Diff(want, Algorithms()); diff != "" {
		t.Errorf("Algorithms() (-want +got):\n%s", diff)
	}
}
