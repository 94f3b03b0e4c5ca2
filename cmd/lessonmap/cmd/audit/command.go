// Package audit provides the storage consistency check.
package audit

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/lessonmap/cmd/application"
	"github.com/agentstation/lessonmap/internal/cmd/admin"
	"github.com/agentstation/lessonmap/internal/cmd/notify"
	"github.com/agentstation/lessonmap/internal/cmd/output"
)

// NewCommand creates the audit command.
func NewCommand(app application.Application) *cobra.Command {
	var prune bool

	cmd := &cobra.Command{
		Use:     "audit",
		GroupID: "admin",
		Short:   "Compare the catalog document with managed storage",
		Long: `Audit lists lessons whose managed audio or PDF file is missing and
managed files that no lesson references. An interrupted add or update can
leave either behind.

With --prune the unreferenced files are deleted. Missing files are only
reported; restore them or delete the lesson.`,
		Args: cobra.NoArgs,
	}
	cmd.Flags().BoolVar(&prune, "prune", false, "delete managed files no lesson references (admin)")
	creds := admin.AddFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		if prune {
			if err := creds.Require(app); err != nil {
				return err
			}
		}
		lm, err := app.Lessonmap()
		if err != nil {
			return err
		}

		report, err := lm.Audit(cmd.Context())
		if err != nil {
			return err
		}

		format := output.Format(app.OutputFormat())
		n := notify.New(cmd, string(format), false)

		if format.Structured() {
			if err := output.NewFormatter(format).Format(cmd.OutOrStdout(), report); err != nil {
				return err
			}
		} else if report.Clean() {
			if err := n.Success(fmt.Sprintf("Storage is consistent (%d lessons)", report.Lessons)); err != nil {
				return err
			}
		} else {
			if err := output.NewFormatter(format).Format(cmd.OutOrStdout(), output.AuditToData(report)); err != nil {
				return err
			}
		}

		if !prune || len(report.Orphans) == 0 {
			return nil
		}
		removed, err := lm.Prune(cmd.Context(), report)
		if err != nil {
			return err
		}
		return n.Success(fmt.Sprintf("Removed %d unreferenced files", removed))
	}

	return cmd
}
