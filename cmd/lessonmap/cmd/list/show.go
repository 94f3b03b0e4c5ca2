package list

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/lessonmap/cmd/application"
	"github.com/agentstation/lessonmap/internal/cmd/completion"
	"github.com/agentstation/lessonmap/internal/cmd/output"
)

// NewShowCommand creates the show command.
func NewShowCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "show <id>",
		GroupID: "catalog",
		Short:   "Show one lesson",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lm, err := app.Lessonmap()
			if err != nil {
				return err
			}
			l, err := lm.Lesson(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			format := output.Format(app.OutputFormat())
			return output.Render(cmd.OutOrStdout(), format, output.LessonToData(l), l)
		},
	}
	cmd.ValidArgsFunction = completion.LessonIDs(app)

	return cmd
}
