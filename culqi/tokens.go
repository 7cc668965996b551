package culqi

import "context"

// GetToken retrieves a tokenized payment credential by id.
func (c *Client) GetToken(ctx context.Context, tokenID string) (*Source, *APIError) {
	return dispatch[Source](ctx, c, apiCall{
		op:     OpGetToken,
		method: "GET",
		path:   "/tokens/" + tokenID,
	})
}
