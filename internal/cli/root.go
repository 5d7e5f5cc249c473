package cli

import (
	"log/slog"

	"cpusim/config"
	"cpusim/internal/logging"

	"github.com/spf13/cobra"
)

// env is the state shared by every subcommand once flags are parsed.
type env struct {
	configPath string
	debug      bool
	logLevel   string
	logFormat  string

	config *config.SchedulerConfig
	logger *slog.Logger
}

// NewRootCmd creates the root cobra command for the cpusim CLI.
func NewRootCmd() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:   "cpusim",
		Short: "CPU scheduling simulator",
		Long: "cpusim computes single-CPU execution timelines for FCFS, SJF/SRTF, round-robin, " +
			"priority and multilevel feedback queue scheduling, and serves them over HTTP.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(e.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = e.logLevel
			}
			if cmd.Flags().Changed("log-format") {
				cfg.LogFormat = e.logFormat
			}
			if e.debug {
				cfg.LogLevel = "debug"
			}
			e.config = cfg
			e.logger = logging.NewLoggerWithWriter(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat, cmd.ErrOrStderr())
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&e.configPath, "config", "", "Config file (default ./config.yaml if present)")
	root.PersistentFlags().BoolVar(&e.debug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&e.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&e.logFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newSimulateCmd(e),
		newServeCmd(e),
		newRunsCmd(e),
	)

	return root
}

// loadConfig reads the --config file, or the process-wide ./config.yaml when
// none is given. The result is a private copy that flags may modify.
func loadConfig(path string) (*config.SchedulerConfig, error) {
	if path != "" {
		return config.Load(path)
	}
	shared, err := config.GetSchedulerConfig()
	if err != nil {
		return nil, err
	}
	cfg := *shared
	return &cfg, nil
}
