package admin

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/openlumify/openlumify-admin/pkg/transport"
)

// WorkspaceImportField is the multipart field the import route reads the
// workspace archive from.
const WorkspaceImportField = "workspace"

// WorkspaceShare shares a workspace with the given user.
func (c *Client) WorkspaceShare(ctx context.Context, workspaceID, userName string) (Object, error) {
	return c.sendObject(ctx, "POST", "/workspace/shareWithMe", transport.Params{
		"user-name":   userName,
		"workspaceId": workspaceID,
	})
}

// WorkspaceImport uploads a previously exported workspace. The archive is
// read from r and sent under the "workspace" form field with the given file
// name.
func (c *Client) WorkspaceImport(ctx context.Context, filename string, r io.Reader) (string, error) {
	form := transport.NewFormData().AddFile(WorkspaceImportField, filename, r)
	return c.sendText(ctx, "POST->HTML", "/admin/workspace/import", form)
}

// WorkspaceImportFile opens path on fs and imports it with WorkspaceImport.
func (c *Client) WorkspaceImportFile(ctx context.Context, fs afero.Fs, path string) (string, error) {
	f, err := fs.Open(path)
	if err != nil {
		return "", fmt.Errorf("error opening workspace file: %w", err)
	}
	defer f.Close()

	return c.WorkspaceImport(ctx, filepath.Base(path), f)
}
