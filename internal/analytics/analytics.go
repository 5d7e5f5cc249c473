// Package analytics derives per-process timing metrics and aggregate CPU
// statistics from a computed timeline.
package analytics

import (
	"cpusim/internal/core"
	"cpusim/internal/responses"
	"cpusim/internal/util"
)

// GenerateProcessDetails computes completion, response, turnaround and
// waiting time for every process, in input order. Completion is the end of a
// process's last slice.
func GenerateProcessDetails(processes []core.Process, timeline core.Timeline) []responses.ProcessResponse {
	details := make([]responses.ProcessResponse, 0, len(processes))
	for _, p := range processes {
		slices := timeline.ForPID(p.PID)
		if len(slices) == 0 {
			core.Violatef("pid %d missing from timeline", p.PID)
		}
		completion := slices[len(slices)-1].End
		turnAround := completion - p.ArrivalTime
		details = append(details, responses.ProcessResponse{
			ProcessId:      p.PID,
			ArrivalTime:    p.ArrivalTime,
			BurstTime:      p.BurstTime,
			Priority:       p.Priority,
			CompletionTime: completion,
			ResponseTime:   slices[0].Start - p.ArrivalTime,
			TurnAroundTime: turnAround,
			WaitingTime:    turnAround - p.BurstTime,
		})
	}
	return details
}

// GenerateResponse assembles the full response for one scheduling run.
func GenerateResponse(algorithm, name string, processes []core.Process, timeline core.Timeline) responses.ScheduleResponse {
	details := GenerateProcessDetails(processes, timeline)
	averageWaitingTime, averageResponseTime, averageTurnAroundTime := util.CalculateAverage(details)

	totalTime := timeline.Makespan()
	busyTime := timeline.BusyTime()
	var utilization, throughput float64
	if totalTime > 0 {
		utilization = float64(busyTime) / float64(totalTime)
		throughput = float64(len(processes)) / float64(totalTime)
	}

	return responses.ScheduleResponse{
		Algorithm:             algorithm,
		Name:                  name,
		Timeline:              timeline,
		TotalTime:             totalTime,
		BusyTime:              busyTime,
		IdleTime:              totalTime - busyTime,
		AverageWaitingTime:    averageWaitingTime,
		AverageResponseTime:   averageResponseTime,
		AverageTurnAroundTime: averageTurnAroundTime,
		CpuUtilization:        utilization,
		CpuThroughput:         throughput,
		Details:               details,
	}
}
