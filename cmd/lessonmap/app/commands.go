package app

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/lessonmap/cmd/lessonmap/cmd/audit"
	"github.com/agentstation/lessonmap/cmd/lessonmap/cmd/completion"
	"github.com/agentstation/lessonmap/cmd/lessonmap/cmd/device"
	"github.com/agentstation/lessonmap/cmd/lessonmap/cmd/kiosk"
	"github.com/agentstation/lessonmap/cmd/lessonmap/cmd/lesson"
	"github.com/agentstation/lessonmap/cmd/lessonmap/cmd/list"
	"github.com/agentstation/lessonmap/internal/cmd/notify"
)

// Command groups shown in help.
const (
	GroupCatalog = "catalog"
	GroupAdmin   = "admin"
	GroupDevice  = "device"
)

// KioskCommandName is the command that takes over the terminal.
const KioskCommandName = "kiosk"

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Catalog commands
	rootCmd.AddCommand(a.CreateInitCommand())
	rootCmd.AddCommand(list.NewCommand(a))
	rootCmd.AddCommand(list.NewTreeCommand(a))
	rootCmd.AddCommand(list.NewShowCommand(a))
	rootCmd.AddCommand(list.NewSubjectsCommand(a))
	rootCmd.AddCommand(list.NewYearsCommand(a, time.Now))

	// Administration commands
	rootCmd.AddCommand(lesson.NewAddCommand(a, time.Now))
	rootCmd.AddCommand(lesson.NewEditCommand(a))
	rootCmd.AddCommand(lesson.NewDeleteCommand(a))
	rootCmd.AddCommand(audit.NewCommand(a))

	// Device commands
	rootCmd.AddCommand(device.NewDownloadCommand(a))
	rootCmd.AddCommand(device.NewExportCommand(a))
	rootCmd.AddCommand(device.NewDevicesCommand(a))

	// Kiosk and utility commands
	rootCmd.AddCommand(kiosk.NewCommand(a, a.config.PollInterval))
	rootCmd.AddCommand(a.CreateVersionCommand())
	rootCmd.AddCommand(completion.NewCommand())
}

// CreateInitCommand creates the init command.
func (a *App) CreateInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "init",
		GroupID: GroupCatalog,
		Short:   "Create the storage root and an empty catalog",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lm, err := a.Lessonmap()
			if err != nil {
				return err
			}
			all, err := lm.Lessons(cmd.Context())
			if err != nil {
				return err
			}
			n := notify.New(cmd, a.OutputFormat(), a.config.Quiet)
			return n.Success("Storage ready", lm.Store().Root(), pluralize(len(all), "lesson"))
		},
	}
}

// CreateVersionCommand creates the version command.
func (a *App) CreateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "lessonmap %s\n", a.version)
			if a.config.Verbose {
				fmt.Fprintf(w, "  commit:   %s\n", a.commit)
				fmt.Fprintf(w, "  built:    %s\n", a.date)
				fmt.Fprintf(w, "  built by: %s\n", a.builtBy)
			}
		},
	}
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
