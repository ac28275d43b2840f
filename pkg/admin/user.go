package admin

import (
	"context"

	"github.com/openlumify/openlumify-admin/pkg/transport"
)

// UserDelete deletes the user with the given user name.
func (c *Client) UserDelete(ctx context.Context, userName string) (Object, error) {
	return c.sendObject(ctx, "POST", "/user/delete", transport.Params{
		"user-name": userName,
	})
}
