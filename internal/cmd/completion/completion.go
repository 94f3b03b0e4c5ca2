// Package completion provides dynamic shell completion for lesson ids and
// catalog folder paths.
package completion

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/lessonmap/cmd/application"
	"github.com/agentstation/lessonmap/pkg/navigator"
)

// Shells that have a completion script generator.
const (
	ShellBash       = "bash"
	ShellZsh        = "zsh"
	ShellFish       = "fish"
	ShellPowerShell = "powershell"
)

// Func is the cobra ValidArgsFunction signature.
type Func func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective)

// LessonIDs completes the first argument with lesson ids, described by the
// lesson label.
func LessonIDs(app application.Application) Func {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		lm, err := app.Lessonmap()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		all, err := lm.Lessons(cmd.Context())
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		var out []string
		for _, l := range all {
			if strings.HasPrefix(l.ID, toComplete) {
				out = append(out, l.ID+"\t"+l.Label())
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}

// FolderPaths completes the first argument with subject and sub-subject
// paths such as "Talmud/Shabbat".
func FolderPaths(app application.Application) Func {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		lm, err := app.Lessonmap()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		items, err := lm.Items(cmd.Context())
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return Folders(items, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

// Folders returns the folder paths of items starting with prefix.
func Folders(items []navigator.Item, prefix string) []string {
	var out []string
	for _, item := range items {
		if item.Folder && !item.IsBack() && strings.HasPrefix(item.Path, prefix) {
			out = append(out, item.Path)
		}
	}
	return out
}
