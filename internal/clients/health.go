package clients

import (
	"context"
	"net/http"
)

// Health reports whether the backend answers its health probe.
func (c *Client) Health(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/health", "", nil, nil)
}
