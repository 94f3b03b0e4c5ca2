// Package list provides the read-only catalog commands: folder listing,
// tree, single lesson details, subjects and years.
package list

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/lessonmap/cmd/application"
	"github.com/agentstation/lessonmap/internal/cmd/completion"
	"github.com/agentstation/lessonmap/internal/cmd/output"
	"github.com/agentstation/lessonmap/pkg/navigator"
)

// NewCommand creates the list command.
func NewCommand(app application.Application) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:     "list [path]",
		GroupID: "catalog",
		Short:   "List one folder of the catalog",
		Long: `List shows the direct children of a folder, folders first.

The root holds the subjects, a subject holds its sub-subjects and a
sub-subject holds its lessons. Inside a folder the first entry is ".."
pointing at the parent.`,
		Example: `  lessonmap list                    # subjects
  lessonmap list Talmud             # sub-subjects of Talmud
  lessonmap list Talmud/Shabbat     # lessons of Shabbat
  lessonmap list --filter shab      # folders with a match below them`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lm, err := app.Lessonmap()
			if err != nil {
				return err
			}
			items, err := lm.Items(cmd.Context())
			if err != nil {
				return err
			}

			nav := navigator.New(items)
			if len(args) == 1 {
				if err := nav.NavigateToPath(strings.Trim(args[0], "/")); err != nil {
					return err
				}
			}
			if filter != "" {
				nav.SetFilter(filter)
			}

			visible := nav.Visible()
			app.Logger().Debug().Str("folder", nav.Title()).Int("items", len(visible)).Msg("Listing folder")

			format := output.Format(app.OutputFormat())
			return output.Render(cmd.OutOrStdout(), format, output.ItemsToData(visible), visible)
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "case-insensitive substring filter")
	cmd.ValidArgsFunction = completion.FolderPaths(app)

	return cmd
}
