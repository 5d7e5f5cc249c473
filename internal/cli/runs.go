package cli

import (
	"fmt"

	"cpusim/internal/analytics"
	"cpusim/internal/render"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newRunsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect recorded runs",
	}
	cmd.AddCommand(newRunsListCmd(e), newRunsShowCmd(e))
	return cmd
}

func newRunsListCmd(e *env) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd.Context(), e)
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"ID", "Algorithm", "Processes", "Makespan", "Created"})
			for _, r := range runs {
				table.Append([]string{
					r.ID,
					r.Name,
					fmt.Sprint(len(r.Processes)),
					fmt.Sprint(r.Timeline.Makespan()),
					r.CreatedAt.Format("2006-01-02 15:04:05"),
				})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs (0 for all)")
	return cmd
}

func newRunsShowCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print the report for a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd.Context(), e)
			if err != nil {
				return err
			}
			defer st.Close()

			run, err := st.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			response := analytics.GenerateResponse(run.Algorithm, run.Name, run.Processes, run.Timeline)
			response.RunID = run.ID
			render.Report(cmd.OutOrStdout(), response)
			return nil
		},
	}
}
