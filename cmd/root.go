package cmd

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/artgrid/internal/config"
	"github.com/lehigh-university-libraries/artgrid/internal/logging"
)

// runtime carries what the root command prepares for its subcommands
type runtime struct {
	configPath string
	logLevel   string

	cfg         *config.Config
	logger      *slog.Logger
	closeLogger func() error
}

func NewRootCmd() *cobra.Command {
	rt := &runtime{}

	cmd := &cobra.Command{
		Use:   "artgrid",
		Short: "Paginated, sortable table of artworks from a public collection API",
		Long: `artgrid browses artwork records from the Art Institute of Chicago API
(or any API with the same artworks contract).

It serves a web table with URL-driven pagination and row selection, and can
fetch pages or snapshot them to Parquet/JSONL from the command line.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			cfg, err := config.Load(rt.configPath)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if rt.logLevel != "" {
				cfg.Log.Level = rt.logLevel
			}

			logger, closeLogger, err := logging.Setup(cmd.ErrOrStderr(), cfg.Log, cfg.FluentBit)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)

			rt.cfg = cfg
			rt.logger = logger
			rt.closeLogger = closeLogger
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if rt.closeLogger != nil {
				return rt.closeLogger()
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&rt.configPath, "config", "", "Path to a YAML config file")
	cmd.PersistentFlags().StringVar(&rt.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	// Add subcommands
	cmd.AddCommand(newServeCmd(rt))
	cmd.AddCommand(newFetchCmd(rt))
	cmd.AddCommand(newSnapshotCmd(rt))

	return cmd
}
