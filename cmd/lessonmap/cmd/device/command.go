// Package device provides the commands that copy lessons to a removable
// device and list the devices that are connected.
package device

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/lessonmap/cmd/application"
	"github.com/agentstation/lessonmap/internal/cmd/admin"
	"github.com/agentstation/lessonmap/internal/cmd/completion"
	"github.com/agentstation/lessonmap/internal/cmd/notify"
	"github.com/agentstation/lessonmap/internal/cmd/output"
	"github.com/agentstation/lessonmap/pkg/devices"
	"github.com/agentstation/lessonmap/pkg/errors"
	"github.com/agentstation/lessonmap/pkg/logging"
	"github.com/agentstation/lessonmap/pkg/transfer"
)

// destination resolves --device, or the first connected device.
func destination(ctx context.Context, app application.Application, override string) (devices.Device, error) {
	var p devices.Provider = app.Devices()
	if override != "" {
		p = devices.Static{Path: override}
	}
	d, err := devices.First(ctx, p)
	if err != nil {
		return devices.Device{}, errors.WrapResource("find", "device", override, err)
	}
	return d, nil
}

// NewDownloadCommand creates the download command.
func NewDownloadCommand(app application.Application) *cobra.Command {
	var device string

	cmd := &cobra.Command{
		Use:     "download <id>",
		GroupID: "device",
		Short:   "Copy one lesson to a removable device",
		Long: `Download copies the lesson audio, and its PDF when present, to the root
of the device as <subject>_<sub-subject>_<title>.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lm, err := app.Lessonmap()
			if err != nil {
				return err
			}
			dev, err := destination(cmd.Context(), app, device)
			if err != nil {
				return err
			}

			ctx := logging.WithDevice(logging.WithLesson(cmd.Context(), args[0]), dev.Path)
			result, err := lm.Download(ctx, args[0], dev.Path)
			if err != nil {
				return err
			}
			return report(cmd, app, "Lesson downloaded to "+dev.Name, result)
		},
	}

	cmd.Flags().StringVar(&device, "device", "", "destination directory instead of the first removable device")
	cmd.ValidArgsFunction = completion.LessonIDs(app)

	return cmd
}

// NewExportCommand creates the export command.
func NewExportCommand(app application.Application) *cobra.Command {
	var device string

	cmd := &cobra.Command{
		Use:     "export <folder-path>",
		GroupID: "device",
		Short:   "Copy every lesson below a folder to a removable device",
		Long: `Export copies a subject or sub-subject folder to the device. A subject
becomes <subject>/<sub-subject>/<title>_<year> files; a sub-subject becomes
<sub-subject>/<title>_<year> files. Lessons whose audio is missing are
skipped and listed.`,
		Example: `  lessonmap export Talmud --password admin123
  lessonmap export Talmud/Shabbat --device /media/usb --password admin123`,
		Args: cobra.ExactArgs(1),
	}
	cmd.Flags().StringVar(&device, "device", "", "destination directory instead of the first removable device")
	cmd.ValidArgsFunction = completion.FolderPaths(app)
	creds := admin.AddFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if err := creds.Require(app); err != nil {
			return err
		}
		lm, err := app.Lessonmap()
		if err != nil {
			return err
		}
		dev, err := destination(cmd.Context(), app, device)
		if err != nil {
			return err
		}

		path := strings.Trim(args[0], "/")
		ctx := logging.WithDevice(logging.WithOperation(cmd.Context(), "export"), dev.Path)
		result, err := lm.Export(ctx, path, dev.Path)
		if err != nil {
			return err
		}
		return report(cmd, app, "Folder exported to "+dev.Name, result)
	}

	return cmd
}

// NewDevicesCommand creates the devices command.
func NewDevicesCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "devices",
		GroupID: "device",
		Short:   "List connected removable devices",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			found, err := app.Devices().Removable(cmd.Context())
			if err != nil {
				return err
			}

			format := output.Format(app.OutputFormat())
			if len(found) == 0 && !format.Structured() {
				return notify.New(cmd, string(format), false).Info("No removable device connected")
			}
			if found == nil {
				found = []devices.Device{}
			}
			return output.Render(cmd.OutOrStdout(), format, output.DevicesToData(found), found)
		},
	}
}

func report(cmd *cobra.Command, app application.Application, message string, result transfer.Result) error {
	format := output.Format(app.OutputFormat())
	if format.Structured() {
		return output.NewFormatter(format).Format(cmd.OutOrStdout(), result)
	}

	n := notify.New(cmd, string(format), false)
	if err := output.NewFormatter(format).Format(cmd.OutOrStdout(), output.ResultToData(result)); err != nil {
		return err
	}
	if len(result.Skipped) > 0 {
		_ = n.Warning("Some lessons were skipped because their audio file is missing", result.Skipped...)
	}
	return n.Success(message, output.FormatBytes(result.Bytes))
}
