// Package render writes timelines and metrics as terminal text.
package render

import (
	"fmt"
	"io"
	"strings"

	"cpusim/internal/core"
	"cpusim/internal/display"
	"cpusim/internal/responses"

	"github.com/olekukonko/tablewriter"
)

const cellWidth = 8

// Title writes a framed heading.
func Title(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
	_, _ = fmt.Fprintln(w, strings.Repeat(" ", len(title)/2), title)
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
}

// Gantt writes a one-line Gantt strip followed by the slice boundaries.
// Idle spans between slices are shown as "idle".
func Gantt(w io.Writer, timeline core.Timeline) {
	type cell struct {
		label      string
		start, end int
	}
	cells := make([]cell, 0, len(timeline))
	cursor := 0
	for _, s := range timeline {
		if s.Start > cursor {
			cells = append(cells, cell{label: "idle", start: cursor, end: s.Start})
		}
		cells = append(cells, cell{label: fmt.Sprintf("P%d", s.PID), start: s.Start, end: s.End})
		cursor = s.End
	}

	_, _ = fmt.Fprintln(w, "Gantt schedule")
	_, _ = fmt.Fprint(w, "|")
	for _, c := range cells {
		_, _ = fmt.Fprint(w, center(c.label, cellWidth), "|")
	}
	_, _ = fmt.Fprintln(w)
	for i, c := range cells {
		_, _ = fmt.Fprint(w, pad(fmt.Sprint(c.start), cellWidth+1))
		if i == len(cells)-1 {
			_, _ = fmt.Fprint(w, c.end)
		}
	}
	_, _ = fmt.Fprintf(w, "\n\n")
}

// Schedule writes the per-process table with averages in the footer.
func Schedule(w io.Writer, resp responses.ScheduleResponse) {
	_, _ = fmt.Fprintln(w, "Schedule table")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Priority", "Burst", "Arrival", "Wait", "Turnaround", "Exit"})
	for _, d := range resp.Details {
		table.Append([]string{
			fmt.Sprint(d.ProcessId),
			fmt.Sprint(d.Priority),
			fmt.Sprint(d.BurstTime),
			fmt.Sprint(d.ArrivalTime),
			fmt.Sprint(d.WaitingTime),
			fmt.Sprint(d.TurnAroundTime),
			fmt.Sprint(d.CompletionTime),
		})
	}
	table.SetFooter([]string{"", "", "", "",
		fmt.Sprintf("Average\n%.2f", resp.AverageWaitingTime),
		fmt.Sprintf("Average\n%.2f", resp.AverageTurnAroundTime),
		fmt.Sprintf("Throughput\n%.2f/t", resp.CpuThroughput)})
	table.Render()
	_, _ = fmt.Fprintf(w, "CPU utilization %.1f%% (busy %d, idle %d, total %d)\n\n",
		resp.CpuUtilization*100, resp.BusyTime, resp.IdleTime, resp.TotalTime)
}

// Report writes title, Gantt strip and schedule table for one run.
func Report(w io.Writer, resp responses.ScheduleResponse) {
	Title(w, resp.Name)
	Gantt(w, resp.Timeline)
	Schedule(w, resp)
}

// Frame writes one replay frame. Completion, turnaround and waiting columns
// stay blank until the process has finished at the frame's cursor.
func Frame(w io.Writer, processes []core.Process, snap display.Snapshot) {
	running := "idle"
	if !snap.Idle {
		running = fmt.Sprintf("P%d", snap.Running)
	}
	ready := make([]string, len(snap.Ready))
	for i, pid := range snap.Ready {
		ready[i] = fmt.Sprintf("P%d", pid)
	}
	_, _ = fmt.Fprintf(w, "t=%d  cpu: %s  ready: [%s]\n", snap.Cursor, running, strings.Join(ready, " "))

	done := make(map[int]int, len(snap.Completed))
	for _, c := range snap.Completed {
		done[c.PID] = c.CompletionTime
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"PID", "AT", "BT", "CT", "TAT", "WT"})
	for _, p := range processes {
		row := []string{fmt.Sprintf("P%d", p.PID), fmt.Sprint(p.ArrivalTime), fmt.Sprint(p.BurstTime), "-", "-", "-"}
		if ct, ok := done[p.PID]; ok {
			tat := ct - p.ArrivalTime
			row[3], row[4], row[5] = fmt.Sprint(ct), fmt.Sprint(tat), fmt.Sprint(tat-p.BurstTime)
		}
		table.Append(row)
	}
	table.Render()
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(s)-left)
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-len(s))
}
