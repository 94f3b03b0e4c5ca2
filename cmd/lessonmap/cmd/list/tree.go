package list

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/lessonmap/cmd/application"
	"github.com/agentstation/lessonmap/internal/cmd/output"
)

// NewTreeCommand creates the tree command.
func NewTreeCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "tree",
		GroupID: "catalog",
		Short:   "Show the whole catalog grouped by subject and sub-subject",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lm, err := app.Lessonmap()
			if err != nil {
				return err
			}
			grouped, err := lm.Grouped(cmd.Context())
			if err != nil {
				return err
			}

			format := output.Format(app.OutputFormat())
			if format.Structured() {
				return output.NewFormatter(format).Format(cmd.OutOrStdout(), grouped)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), output.Tree(grouped))
			return err
		},
	}
}
