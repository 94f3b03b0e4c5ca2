package list

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/lessonmap/cmd/application"
	"github.com/agentstation/lessonmap/internal/cmd/output"
	"github.com/agentstation/lessonmap/pkg/lessons"
)

// NewSubjectsCommand creates the subjects command. With a subject argument
// it lists that subject's sub-subjects.
func NewSubjectsCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "subjects [subject]",
		GroupID: "catalog",
		Short:   "List subjects, or the sub-subjects of one subject",
		Long: `Subjects lists the distinct subjects in the catalog. While the catalog
is empty the default subjects are offered instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lm, err := app.Lessonmap()
			if err != nil {
				return err
			}

			header := "Subject"
			var values []string
			if len(args) == 1 {
				header = "Sub-Subject"
				values, err = lm.SubSubjects(cmd.Context(), args[0])
			} else {
				values, err = lm.Subjects(cmd.Context())
			}
			if err != nil {
				return err
			}

			format := output.Format(app.OutputFormat())
			return output.Render(cmd.OutOrStdout(), format, output.ValuesToData(header, values), values)
		},
	}
}

// NewYearsCommand creates the years command.
func NewYearsCommand(app application.Application, now func() time.Time) *cobra.Command {
	if now == nil {
		now = time.Now
	}
	return &cobra.Command{
		Use:     "years",
		GroupID: "catalog",
		Short:   "List the years a lesson may be filed under",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			years := lessons.YearChoices(now())
			format := output.Format(app.OutputFormat())
			return output.Render(cmd.OutOrStdout(), format, output.ValuesToData("Year", years), years)
		},
	}
}
