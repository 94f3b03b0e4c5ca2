// Package completion provides the shell completion command.
package completion

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/lessonmap/internal/cmd/completion"
)

type generator struct {
	shell string
	usage string
	gen   func(root *cobra.Command, w io.Writer) error
}

var generators = []generator{
	{
		shell: completion.ShellBash,
		usage: "source <(lessonmap completion bash)",
		gen:   func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	},
	{
		shell: completion.ShellZsh,
		usage: `lessonmap completion zsh > "${fpath[1]}/_lessonmap"`,
		gen:   func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	},
	{
		shell: completion.ShellFish,
		usage: "lessonmap completion fish | source",
		gen:   func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	},
	{
		shell: completion.ShellPowerShell,
		usage: "lessonmap completion powershell | Out-String | Invoke-Expression",
		gen:   func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
	},
}

// NewCommand creates the completion command with one subcommand per shell.
// It replaces the command cobra would generate.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate shell completion scripts",
		Long: `Generate the autocompletion script for your shell. Lesson ids and
folder paths complete from the configured catalog.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	for _, g := range generators {
		cmd.AddCommand(&cobra.Command{
			Use:                   g.shell,
			Short:                 "Generate " + g.shell + " completion script",
			Long:                  "To load completions in your current shell session:\n\n  " + g.usage,
			Args:                  cobra.NoArgs,
			DisableFlagsInUseLine: true,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return g.gen(cmd.Root(), cmd.OutOrStdout())
			},
		})
	}

	return cmd
}
