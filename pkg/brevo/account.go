package brevo

import (
	"context"
	"net/http"
)

// GetAccount returns plan and company details of the account owning the API key
func (c *Client) GetAccount(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.do(ctx, http.MethodGet, "/account", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
