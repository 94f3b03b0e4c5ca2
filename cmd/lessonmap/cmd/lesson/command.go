// Package lesson provides the administrator commands that change the
// catalog: add, edit and delete.
package lesson

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/lessonmap"
	"github.com/agentstation/lessonmap/cmd/application"
	"github.com/agentstation/lessonmap/internal/cmd/admin"
	"github.com/agentstation/lessonmap/internal/cmd/completion"
	"github.com/agentstation/lessonmap/internal/cmd/notify"
	"github.com/agentstation/lessonmap/internal/cmd/output"
	"github.com/agentstation/lessonmap/pkg/lessons"
)

// draftFlags are the lesson fields shared by add and edit.
type draftFlags struct {
	title      string
	subject    string
	subSubject string
	year       string
	audio      string
	pdf        string
	clearPdf   bool
}

func addDraftFlags(cmd *cobra.Command, f *draftFlags, defaultYear string) {
	cmd.Flags().StringVar(&f.title, "title", "", "lesson title (at least 3 characters)")
	cmd.Flags().StringVar(&f.subject, "subject", "", "subject folder")
	cmd.Flags().StringVar(&f.subSubject, "sub-subject", "", "sub-subject folder")
	cmd.Flags().StringVar(&f.year, "year", defaultYear, "lesson year")
	cmd.Flags().StringVar(&f.audio, "audio", "", "audio file to copy into storage")
	cmd.Flags().StringVar(&f.pdf, "pdf", "", "optional PDF file to copy into storage")
}

// overlay copies the flags that were set onto d.
func (f *draftFlags) overlay(cmd *cobra.Command, d lessons.Draft) lessons.Draft {
	fs := cmd.Flags()
	if fs.Changed("title") {
		d.Title = f.title
	}
	if fs.Changed("subject") {
		d.Subject = f.subject
	}
	if fs.Changed("sub-subject") {
		d.SubSubject = f.subSubject
	}
	if fs.Changed("year") {
		d.Year = f.year
	}
	if fs.Changed("audio") {
		d.AudioSource = f.audio
	}
	if fs.Changed("pdf") {
		d.PdfSource = f.pdf
	}
	d.ClearPdf = f.clearPdf
	return d
}

// NewAddCommand creates the add command.
func NewAddCommand(app application.Application, now func() time.Time) *cobra.Command {
	if now == nil {
		now = time.Now
	}
	f := &draftFlags{}

	cmd := &cobra.Command{
		Use:     "add",
		GroupID: "admin",
		Short:   "Add a lesson and copy its media into storage",
		Example: `  lessonmap add --password admin123 \
    --title "Lesson A" --subject Talmud --sub-subject Shabbat \
    --year 2024 --audio ~/lesson-a.mp3 --pdf ~/lesson-a.pdf`,
		Args: cobra.NoArgs,
	}
	addDraftFlags(cmd, f, lessons.DefaultYear(now()))
	creds := admin.AddFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		if err := creds.Require(app); err != nil {
			return err
		}
		lm, err := app.Lessonmap()
		if err != nil {
			return err
		}

		d := lessons.Draft{Year: f.year}
		d = f.overlay(cmd, d)

		n := notify.New(cmd, app.OutputFormat(), false)
		for _, w := range lessons.Warnings(d) {
			_ = n.Warning(w)
		}

		l, err := lm.Add(cmd.Context(), d)
		if err != nil {
			return err
		}
		return report(cmd, app, n, "Lesson added", l)
	}

	return cmd
}

// NewEditCommand creates the edit command.
func NewEditCommand(app application.Application) *cobra.Command {
	f := &draftFlags{}

	cmd := &cobra.Command{
		Use:     "edit <id>",
		GroupID: "admin",
		Short:   "Edit a lesson",
		Long: `Edit changes only the fields given as flags. A new --audio or --pdf
replaces the stored file; --clear-pdf removes the PDF.`,
		Example: `  lessonmap edit 3f2b9c1e-8d4a-4e7b-9a61-5c0d2e7f4b18 --password admin123 --title "Lesson A, part 2"
  lessonmap edit 3f2b9c1e-8d4a-4e7b-9a61-5c0d2e7f4b18 --password admin123 --clear-pdf`,
		Args: cobra.ExactArgs(1),
	}
	addDraftFlags(cmd, f, "")
	cmd.Flags().BoolVar(&f.clearPdf, "clear-pdf", false, "remove the lesson's PDF")
	cmd.MarkFlagsMutuallyExclusive("pdf", "clear-pdf")
	cmd.ValidArgsFunction = completion.LessonIDs(app)
	creds := admin.AddFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if err := creds.Require(app); err != nil {
			return err
		}
		lm, err := app.Lessonmap()
		if err != nil {
			return err
		}

		current, err := lm.Lesson(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		d := f.overlay(cmd, lessonmap.EditDraft(current))

		n := notify.New(cmd, app.OutputFormat(), false)
		for _, w := range lessons.Warnings(d) {
			_ = n.Warning(w)
		}

		l, err := lm.Update(cmd.Context(), current.ID, d)
		if err != nil {
			return err
		}
		return report(cmd, app, n, "Lesson updated", l)
	}

	return cmd
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		GroupID: "admin",
		Short:   "Delete a lesson and its managed files",
		Args:    cobra.ExactArgs(1),
	}
	cmd.ValidArgsFunction = completion.LessonIDs(app)
	creds := admin.AddFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if err := creds.Require(app); err != nil {
			return err
		}
		lm, err := app.Lessonmap()
		if err != nil {
			return err
		}

		l, err := lm.Lesson(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if err := lm.Delete(cmd.Context(), l.ID); err != nil {
			return err
		}

		n := notify.New(cmd, app.OutputFormat(), false)
		return n.Success("Lesson deleted", l.Label())
	}

	return cmd
}

// report prints the stored lesson for structured formats and a short
// alert otherwise.
func report(cmd *cobra.Command, app application.Application, n *notify.Notifier, message string, l lessons.Lesson) error {
	format := output.Format(app.OutputFormat())
	if format.Structured() {
		return output.NewFormatter(format).Format(cmd.OutOrStdout(), l)
	}
	return n.Success(message, l.Label(), l.ID)
}
