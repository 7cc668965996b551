package culqi

import "context"

// ListRefunds lists refunds matching the given filters.
func (c *Client) ListRefunds(ctx context.Context, req RefundsListRequest) (*RefundsListResponse, *APIError) {
	return dispatch[RefundsListResponse](ctx, c, apiCall{
		op:     OpListRefunds,
		method: "GET",
		path:   "/refunds",
		query:  req.queryObject(),
	})
}

// GetRefund retrieves a refund by id.
func (c *Client) GetRefund(ctx context.Context, refundID string) (*Refund, *APIError) {
	return dispatch[Refund](ctx, c, apiCall{
		op:     OpGetRefund,
		method: "GET",
		path:   "/refunds/" + refundID,
	})
}

// CreateRefund creates a refund for a charge.
func (c *Client) CreateRefund(ctx context.Context, payload RefundCreatePayload) (*Refund, *APIError) {
	return dispatch[Refund](ctx, c, apiCall{
		op:     OpCreateRefund,
		method: "POST",
		path:   "/refunds",
		body:   payload,
	})
}

// UpdateRefund updates the metadata of a refund.
func (c *Client) UpdateRefund(ctx context.Context, refundID string, update RefundUpdatePayload) (*Refund, *APIError) {
	return dispatch[Refund](ctx, c, apiCall{
		op:     OpUpdateRefund,
		method: "PATCH",
		path:   "/refunds/" + refundID,
		body:   update,
	})
}
