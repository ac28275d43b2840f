package admin

import (
	"context"

	"github.com/openlumify/openlumify-admin/pkg/transport"
)

// VertexDelete deletes a vertex from the graph in the given workspace. The
// server answers with an HTML/text body, which is returned as is.
func (c *Client) VertexDelete(ctx context.Context, vertexID, workspaceID string) (string, error) {
	return c.sendText(ctx, "POST->HTML", "/admin/deleteVertex", transport.Params{
		"graphVertexId": vertexID,
		"workspaceId":   workspaceID,
	})
}

// EdgeDelete deletes an edge from the graph in the given workspace.
func (c *Client) EdgeDelete(ctx context.Context, edgeID, workspaceID string) (string, error) {
	return c.sendText(ctx, "POST->HTML", "/admin/deleteEdge", transport.Params{
		"edgeId":      edgeID,
		"workspaceId": workspaceID,
	})
}
