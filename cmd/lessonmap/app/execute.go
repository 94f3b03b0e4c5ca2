package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/lessonmap/internal/cmd/alerts"
	"github.com/agentstation/lessonmap/internal/cmd/output"
	"github.com/agentstation/lessonmap/pkg/errors"
	"github.com/agentstation/lessonmap/pkg/logging"
)

// rootFlags holds the persistent flags. They are copied into Config only
// when set, see Config.UpdateFromFlags.
type rootFlags struct {
	configFile string
	root       string
	verbose    bool
	quiet      bool
	noColor    bool
	format     string
	logLevel   string
}

// Execute runs the lessonmap CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "lessonmap",
		Short:   "Audio lesson catalog",
		Version: a.version,
		Long: `Lessonmap manages a catalog of audio lessons with optional PDF
companions, organised by subject, sub-subject and year.

Administrators add, edit and delete lessons and export whole folders to a
removable device. Students browse the catalog in the kiosk and download
single lessons to their own device.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(
		&cobra.Group{ID: GroupCatalog, Title: "Catalog Commands:"},
		&cobra.Group{ID: GroupAdmin, Title: "Administration Commands:"},
		&cobra.Group{ID: GroupDevice, Title: "Device Commands:"},
	)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.flags.configFile, "config", "", "config file (default is $HOME/.lessonmap.yaml)")
	flags.StringVar(&a.flags.root, "root", "", "storage root holding lessons_metadata.json (default ./LessonsData)")
	flags.BoolVarP(&a.flags.verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolVarP(&a.flags.quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.BoolVar(&a.flags.noColor, "no-color", false, "disable colored output")
	flags.StringVarP(&a.flags.format, "format", "o", "", "output format: table, wide, json, yaml")
	flags.StringVar(&a.flags.logLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("lessonmap {{.Version}}\n")
	if a.stdout != nil {
		rootCmd.SetOut(a.stdout)
	}
	if a.stderr != nil {
		rootCmd.SetErr(a.stderr)
	}

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if a.flags.configFile != "" {
		config, err := LoadConfig(a.flags.configFile)
		if err != nil {
			return err
		}
		a.config = config
	}

	a.config.UpdateFromFlags(cmd.Flags())

	if _, err := output.ParseFormat(a.config.Format); err != nil {
		return err
	}

	// The kiosk owns the terminal; console logs would tear its screen.
	if cmd.Name() == KioskCommandName && a.config.LogOutput == "stderr" {
		a.config.LogOutput = "discard"
	}

	logger := NewLogger(a.config)
	a.logger = &logger
	cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))

	return nil
}

// ExitOnError prints a user-facing alert for err and exits with status 1.
// This is meant to be used in main.go for top-level error handling. The
// administrator sees the underlying cause of I/O and unclassified failures.
func ExitOnError(err error) {
	if err == nil {
		return
	}
	kind := errors.KindOf(err)
	w := alerts.NewFormatWriter(os.Stderr, output.FormatTable).WithConfig(alerts.WriterConfig{
		ShowDetails: true,
		ShowError:   kind == errors.KindIO || kind == errors.KindUnknown,
	})
	_ = w.WriteAlert(alerts.FromError(err))
	os.Exit(1)
}
