package culqi

import "context"

// ListCards lists vaulted cards matching the given filters.
func (c *Client) ListCards(ctx context.Context, req CardsListRequest) (*CardsListResponse, *APIError) {
	return dispatch[CardsListResponse](ctx, c, apiCall{
		op:     OpListCards,
		method: "GET",
		path:   "/cards",
		query:  req.queryObject(),
	})
}

// GetCardsByCustomer returns the cards attached to a customer, read off
// the customer resource.
func (c *Client) GetCardsByCustomer(ctx context.Context, customerID string) ([]Card, *APIError) {
	customer, apiErr := c.GetCustomer(ctx, customerID)
	if apiErr != nil {
		return nil, apiErr
	}
	if customer == nil {
		return []Card{}, nil
	}
	return customer.Cards, nil
}

// GetCard retrieves a vaulted card by id.
func (c *Client) GetCard(ctx context.Context, cardID string) (*Card, *APIError) {
	return dispatch[Card](ctx, c, apiCall{
		op:     OpGetCard,
		method: "GET",
		path:   "/cards/" + cardID,
	})
}

// CreateCard vaults a token as a customer card.
func (c *Client) CreateCard(ctx context.Context, payload CardCreatePayload) (*Card, *APIError) {
	return dispatch[Card](ctx, c, apiCall{
		op:     OpCreateCard,
		method: "POST",
		path:   "/cards",
		body:   payload,
	})
}

// DeleteCard removes a vaulted card.
func (c *Client) DeleteCard(ctx context.Context, cardID string) (bool, *APIError) {
	_, apiErr := dispatch[Card](ctx, c, apiCall{
		op:     OpDeleteCard,
		method: "DELETE",
		path:   "/cards/" + cardID,
	})
	if apiErr != nil {
		return false, apiErr
	}
	return true, nil
}

// UpdateCard updates a vaulted card.
func (c *Client) UpdateCard(ctx context.Context, cardID string, update CardUpdatePayload) (*Card, *APIError) {
	return dispatch[Card](ctx, c, apiCall{
		op:     OpUpdateCard,
		method: "PATCH",
		path:   "/cards/" + cardID,
		body:   update,
	})
}
