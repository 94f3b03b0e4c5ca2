package lessonmap

import (
	"context"

	"github.com/agentstation/lessonmap/pkg/errors"
	"github.com/agentstation/lessonmap/pkg/navigator"
	"github.com/agentstation/lessonmap/pkg/transfer"
)

// Download copies one lesson to destDir.
func (c *client) Download(ctx context.Context, id, destDir string) (transfer.Result, error) {
	ctx = c.context(ctx)
	l, err := c.store.GetByID(ctx, id)
	if err != nil {
		return transfer.Result{}, err
	}
	return transfer.DownloadLesson(ctx, l, destDir)
}

// Export copies every lesson below the folder at path to destDir.
func (c *client) Export(ctx context.Context, path, destDir string) (transfer.Result, error) {
	ctx = c.context(ctx)
	items, err := c.Items(ctx)
	if err != nil {
		return transfer.Result{}, err
	}
	folder, ok := navigator.Find(items, path)
	if !ok {
		return transfer.Result{}, errors.NewNotFoundError("folder", path)
	}
	return transfer.ExportFolder(ctx, items, folder, destDir)
}
