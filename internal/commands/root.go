package commands

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/spendtrack/spendtrack/internal/app"
	"github.com/spendtrack/spendtrack/internal/buildinfo"
	"github.com/spendtrack/spendtrack/internal/config"
	"github.com/spendtrack/spendtrack/internal/logging"
)

type globalFlags struct {
	configPath string
	logLevel   string
	logFile    string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var flags globalFlags

	rootCmd := &cobra.Command{
		Use:     "spendtrack",
		Short:   "Record expenses by category, chart them and export a report",
		Version: buildinfo.String(),
		Args:    cobra.NoArgs,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForm(flags)
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "optional YAML config file")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "append logs to this file")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newShellCommand(&flags))

	return rootCmd
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// newApp wires config and logging into an App. fallback receives logs when
// no log file is configured.
func newApp(flags globalFlags, fallback io.Writer) (*app.App, io.Closer, error) {
	cfg, err := loadConfig(flags.configPath)
	if err != nil {
		return nil, nil, err
	}

	var logger *log.Logger
	closer := io.Closer(io.NopCloser(nil))
	if flags.logFile != "" {
		logger, closer, err = logging.Open(flags.logFile, flags.logLevel)
	} else {
		logger, err = logging.New(fallback, flags.logLevel)
	}
	if err != nil {
		return nil, nil, err
	}

	logger.Debug("config loaded", "categories", len(cfg.Categories), "report", cfg.Report.Path)
	return app.New(cfg, logger), closer, nil
}

func runForm(flags globalFlags) error {
	// The form owns the terminal; unfiled logs would corrupt the screen.
	a, closer, err := newApp(flags, io.Discard)
	if err != nil {
		return err
	}
	defer closer.Close()

	if err := newForm(a).Run(); err != nil {
		return fmt.Errorf("running form: %w", err)
	}
	return nil
}
