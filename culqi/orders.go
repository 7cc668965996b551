package culqi

import "context"

// ListOrders lists orders matching the given filters.
func (c *Client) ListOrders(ctx context.Context, req OrdersListRequest) (*OrdersListResponse, *APIError) {
	return dispatch[OrdersListResponse](ctx, c, apiCall{
		op:     OpListOrders,
		method: "GET",
		path:   "/orders",
		query:  req.queryObject(),
	})
}

// GetOrder retrieves an order by id.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*Order, *APIError) {
	return dispatch[Order](ctx, c, apiCall{
		op:     OpGetOrder,
		method: "GET",
		path:   "/orders/" + orderID,
	})
}

// CreateOrder creates an order. The same sandbox developer-email rewrite
// used for charges applies to the order's client details.
func (c *Client) CreateOrder(ctx context.Context, payload OrderCreatePayload) (*Order, *APIError) {
	if c.isTestEnv && c.devEmail != "" {
		originalEmail := payload.ClientDetails.Email
		payload.ClientDetails.Email = c.devEmail

		metadata := make(map[string]any, len(payload.Metadata)+2)
		for k, v := range payload.Metadata {
			metadata[k] = v
		}
		metadata[metadataOriginalEmail] = originalEmail
		if c.appEnv != "" {
			metadata[metadataEnv] = c.appEnv
		}
		payload.Metadata = metadata
	}

	return dispatch[Order](ctx, c, apiCall{
		op:     OpCreateOrder,
		method: "POST",
		path:   "/orders",
		body:   payload,
	})
}

// ConfirmOrder confirms a pending order.
func (c *Client) ConfirmOrder(ctx context.Context, orderID string) (*Order, *APIError) {
	return dispatch[Order](ctx, c, apiCall{
		op:     OpConfirmOrder,
		method: "POST",
		path:   "/orders/" + orderID + "/confirm",
	})
}

// UpdateOrder updates an order.
func (c *Client) UpdateOrder(ctx context.Context, orderID string, update OrderUpdatePayload) (*Order, *APIError) {
	return dispatch[Order](ctx, c, apiCall{
		op:     OpUpdateOrder,
		method: "PATCH",
		path:   "/orders/" + orderID,
		body:   update,
	})
}

// DeleteOrder removes an order.
func (c *Client) DeleteOrder(ctx context.Context, orderID string) (bool, *APIError) {
	_, apiErr := dispatch[Order](ctx, c, apiCall{
		op:     OpDeleteOrder,
		method: "DELETE",
		path:   "/orders/" + orderID,
	})
	if apiErr != nil {
		return false, apiErr
	}
	return true, nil
}
