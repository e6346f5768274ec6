// Package cli wires the persistence core to the command line. This is the
// collaborator boundary: typed core errors are translated to user-facing
// messages and exit codes here, and a failed command never takes the process
// down ungracefully.
package cli

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mizushima/gdforge/internal/config"
	"github.com/mizushima/gdforge/internal/project"
	"github.com/mizushima/gdforge/internal/store"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Project  string
	Config   string
	LogLevel string
	JSON     bool
}

// NewRootCommand creates the gdforge root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "gdforge",
		Short:         "Safe editing of game project data files",
		Long:          "gdforge edits a game project's JSON data documents with atomic, backed-up writes,\nshape-validated reads and a reload counter that keeps an external editor in sync.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.Config)
			if err != nil {
				return err
			}
			if opts.Project == "" {
				opts.Project = cfg.Project
			}
			if opts.LogLevel == "" {
				opts.LogLevel = cfg.LogLevel
			}
			slog.SetDefault(initLogger(opts.LogLevel))
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.Project, "project", "p", "", "project root directory")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", config.DefaultFile, "configuration file")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&opts.JSON, "json", false, "machine-readable JSON output")

	cmd.AddCommand(newInfoCommand(opts))
	cmd.AddCommand(newValidateCommand(opts))
	cmd.AddCommand(newResourcesCommand(opts))
	cmd.AddCommand(newListCommand(opts))
	cmd.AddCommand(newGetCommand(opts))
	cmd.AddCommand(newCreateCommand(opts))
	cmd.AddCommand(newUpdateCommand(opts))
	cmd.AddCommand(newDeleteCommand(opts))
	cmd.AddCommand(newSearchCommand(opts))
	cmd.AddCommand(newMapsCommand(opts))
	cmd.AddCommand(newDeleteMapCommand(opts))
	cmd.AddCommand(newBumpCommand(opts))
	cmd.AddCommand(newWatchCommand(opts))

	return cmd
}

// openProject loads the project named by flags or config.
func (o *RootOptions) openProject() (*project.Project, error) {
	return project.Open(o.Project, store.New())
}

// initLogger initializes a structured logger with the given level.
func initLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:   logLevel,
		NoColor: !isatty.IsTerminal(os.Stderr.Fd()),
	})
	return slog.New(handler)
}
