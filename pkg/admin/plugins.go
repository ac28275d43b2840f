package admin

import (
	"context"
	"sort"
)

// Plugins lists the plugins loaded by the server, grouped by plugin kind.
func (c *Client) Plugins(ctx context.Context) (Object, error) {
	return c.sendObject(ctx, "GET", "/admin/plugins", nil)
}

// Keys returns the object's keys in sorted order.
func (o Object) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
