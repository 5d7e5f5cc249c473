package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"cpusim/internal/analytics"
	"cpusim/internal/core"
	"cpusim/internal/display"
	"cpusim/internal/loader"
	"cpusim/internal/render"
	"cpusim/internal/schedulers"
	"cpusim/internal/store"

	"github.com/spf13/cobra"
)

// clearScreen moves the cursor home and clears the terminal.
const clearScreen = "\033[H\033[2J"

func newSimulateCmd(e *env) *cobra.Command {
	var (
		algorithm  string
		preemptive bool
		quantum    int
		levels     []int
		animate    bool
		interval   time.Duration
		save       bool
		about      bool
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "simulate <process-file>",
		Short: "Schedule the processes in a CSV, YAML or JSON file",
		Long: `Computes the timeline for the processes in <process-file> and prints a Gantt
chart and schedule table. CSV rows are pid,arrival,burst[,priority]; YAML/JSON
files may also set algorithm, preemptive, time_quantum and levels_time_quantum.
Flags override values from the file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := loader.LoadFile(args[0])
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("algorithm") || request.Algorithm == "" {
				request.Algorithm = algorithm
			}
			if flags.Changed("preemptive") {
				request.Preemptive = preemptive
			}
			if flags.Changed("quantum") {
				request.TimeQuantum = &quantum
			}
			if flags.Changed("levels") {
				request.LevelsTimeQuantum = levels
			}
			if !flags.Changed("interval") {
				interval = e.config.DisplayInterval
			}

			cfg := request.Config(request.Algorithm, e.config.RoundRobinTimeQuantum, e.config.MultilevelFeedbackQueueLevelsTimeQuantum)
			scheduler, err := schedulers.New(cfg)
			if err != nil {
				return err
			}
			processes := request.Processes()
			timeline, err := schedulers.Compute(scheduler, processes)
			if err != nil {
				return err
			}
			e.logger.Debug("schedule computed", "algorithm", cfg.Algorithm, "processes", len(processes), "slices", len(timeline))

			response := analytics.GenerateResponse(cfg.Algorithm, scheduler.Name(), processes, timeline)
			if save {
				id, err := saveRun(cmd.Context(), e, cfg, scheduler.Name(), processes, timeline)
				if err != nil {
					return err
				}
				response.RunID = id
			}

			out := cmd.OutOrStdout()
			if animate {
				if err := replay(cmd.Context(), out, processes, timeline, interval); err != nil {
					return err
				}
			}
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(response)
			}
			if about {
				fmt.Fprintf(out, "%s\n\n", scheduler.About())
			}
			render.Report(out, response)
			if response.RunID != "" {
				fmt.Fprintf(out, "saved as %s\n", response.RunID)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", schedulers.AlgorithmFCFS, "Algorithm: fcfs, sjf, rr, priority, mlfq")
	cmd.Flags().BoolVarP(&preemptive, "preemptive", "p", false, "Preemptive variant (sjf, priority)")
	cmd.Flags().IntVarP(&quantum, "quantum", "q", 0, "Round-robin time quantum (default from config)")
	cmd.Flags().IntSliceVar(&levels, "levels", nil, "MLFQ per-level time quanta (default from config)")
	cmd.Flags().BoolVar(&animate, "animate", false, "Replay the timeline in the terminal before the report")
	cmd.Flags().DurationVar(&interval, "interval", 100*time.Millisecond, "Replay frame interval (default from config)")
	cmd.Flags().BoolVar(&save, "save", false, "Record the run in the history database")
	cmd.Flags().BoolVar(&about, "about", false, "Describe the algorithm before the report")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")

	return cmd
}

// replay animates a finished timeline. Ctrl-C stops the animation, not the command.
func replay(ctx context.Context, w io.Writer, processes []core.Process, timeline core.Timeline, interval time.Duration) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := display.Replay(ctx, processes, timeline, interval, func(snap display.Snapshot) {
		fmt.Fprint(w, clearScreen)
		render.Frame(w, processes, snap)
	})
	if err != nil && ctx.Err() == nil {
		return err
	}
	fmt.Fprintln(w)
	return nil
}

func saveRun(ctx context.Context, e *env, cfg schedulers.Config, name string, processes []core.Process, timeline core.Timeline) (string, error) {
	st, err := openStore(ctx, e)
	if err != nil {
		return "", err
	}
	defer st.Close()

	run := &store.Run{
		Algorithm:  cfg.Algorithm,
		Name:       name,
		Preemptive: cfg.Preemptive,
		Processes:  processes,
		Timeline:   timeline,
	}
	switch cfg.Algorithm {
	case schedulers.AlgorithmRoundRobin:
		run.TimeQuantum = cfg.TimeQuantum
	case schedulers.AlgorithmMLFQ:
		run.LevelsTimeQuantum = cfg.LevelsTimeQuantum
	}
	if err := st.CreateRun(ctx, run); err != nil {
		return "", err
	}
	e.logger.Info("run saved", "id", run.ID, "db", e.config.DBPath)
	return run.ID, nil
}
