package schedulers

import (
	"sort"

	"cpusim/internal/core"
)

// FirstComeFirstServe runs processes to completion in arrival order. Equal
// arrivals keep their input order.
type FirstComeFirstServe struct{}

func NewFirstComeFirstServe() *FirstComeFirstServe {
	return &FirstComeFirstServe{}
}

func (*FirstComeFirstServe) Name() string {
	return "First-come, first-serve"
}

func (*FirstComeFirstServe) About() string {
	return "Non-preemptive. Processes receive the CPU in the order they arrive and keep it until they finish. " +
		"Simple and fair, but short jobs queued behind a long one wait for all of it (convoy effect)."
}

func (*FirstComeFirstServe) Schedule(reg *core.Registry) core.Timeline {
	// sort jobs by arrival time
	jobs := reg.Processes()
	sort.SliceStable(jobs, func(i, j int) bool {
		return jobs[i].ArrivalTime < jobs[j].ArrivalTime
	})

	cpu := core.NewCPU(false)
	currentTime := 0
	for _, job := range jobs {
		if currentTime < job.ArrivalTime {
			currentTime = job.ArrivalTime
		}
		cpu.Run(job.PID, currentTime, currentTime+job.BurstTime)
		currentTime += job.BurstTime
	}
	return cpu.Timeline()
}
