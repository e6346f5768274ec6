package cli

import (
	"fmt"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/mizushima/gdforge/internal/project"
	"github.com/mizushima/gdforge/internal/store"
	"github.com/mizushima/gdforge/internal/watch"
)

func newInfoCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show project statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.openProject()
			if err != nil {
				return err
			}
			info, err := p.Info()
			if err != nil {
				return err
			}
			if opts.JSON {
				return printJSON(cmd.OutOrStdout(), info)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Project:  %s\n", info.Name)
			fmt.Fprintf(out, "Path:     %s\n", info.Path)
			fmt.Fprintf(out, "Maps:     %d\n", info.MapCount)
			fmt.Fprintf(out, "Actors:   %d\n", info.ActorCount)
			fmt.Fprintf(out, "Items:    %d\n", info.ItemCount)
			fmt.Fprintf(out, "Version:  %d\n", info.Version)
			fmt.Fprintf(out, "Files:    %s\n", strings.Join(info.DataFiles, ", "))
			return nil
		},
	}
}

func newValidateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the project directory layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report := project.Validate(store.New(), opts.Project)
			if opts.JSON {
				if err := printJSON(cmd.OutOrStdout(), report); err != nil {
					return err
				}
			} else if report.Valid {
				fmt.Fprintln(cmd.OutOrStdout(), "project layout is valid")
			} else {
				for _, msg := range report.Errors {
					fmt.Fprintln(cmd.OutOrStdout(), msg)
				}
			}
			if !report.Valid {
				return fmt.Errorf("project layout has %d problem(s)", len(report.Errors))
			}
			return nil
		},
	}
}

func newResourcesCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resources [filter]",
		Short: "List resource files by category",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.openProject()
			if err != nil {
				return err
			}
			filter := ""
			if len(args) == 1 {
				filter = args[0]
			}
			resources, err := p.Resources(filter)
			if err != nil {
				return err
			}
			if opts.JSON {
				return printJSON(cmd.OutOrStdout(), resources)
			}
			for dir, names := range resources {
				for _, name := range names {
					fmt.Fprintf(cmd.OutOrStdout(), "%s/%s\n", dir, name)
				}
			}
			return nil
		},
	}
}

func newMapsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "maps",
		Short: "List per-map documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.openProject()
			if err != nil {
				return err
			}
			maps, err := p.ListMaps()
			if err != nil {
				return err
			}
			if opts.JSON {
				return printJSON(cmd.OutOrStdout(), maps)
			}
			for _, name := range maps {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newDeleteMapCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-map <n>",
		Short: "Delete one map document outright",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.openProject()
			if err != nil {
				return err
			}
			n, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := p.DeleteMap(n); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted map %03d\n", n)
			return nil
		},
	}
}

func newBumpCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "bump",
		Short: "Increment the reload counter by hand",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.openProject()
			if err != nil {
				return err
			}
			v, err := p.Ledger().Bump()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", v)
			return nil
		},
	}
}

func newWatchCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the data directory for out-of-process edits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.openProject()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			slog.Info("watching data directory", "dir", p.DataDir())
			return watch.Run(ctx, p.DataDir(), func(e fsnotify.Event) {
				version, err := p.Ledger().Current()
				if err != nil {
					version = 0
				}
				slog.Info("data changed", "op", e.Op.String(), "file", e.Name, "version", version)
			})
		},
	}
}
