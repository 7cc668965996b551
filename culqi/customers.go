package culqi

import "context"

// GetCustomer retrieves a customer by id.
func (c *Client) GetCustomer(ctx context.Context, customerID string) (*Customer, *APIError) {
	return dispatch[Customer](ctx, c, apiCall{
		op:     OpGetCustomer,
		method: "GET",
		path:   "/customers/" + customerID,
	})
}

// ListCustomers lists customers matching the given filters.
func (c *Client) ListCustomers(ctx context.Context, req CustomersListRequest) (*CustomersListResponse, *APIError) {
	return dispatch[CustomersListResponse](ctx, c, apiCall{
		op:     OpListCustomers,
		method: "GET",
		path:   "/customers",
		query:  req.queryObject(),
	})
}

// CreateCustomer creates a customer, normalizing field lengths first. In
// sandbox mode with a configured environment tag the email local part is
// rewritten to keep test traffic separated. When the upstream rejects the
// email as a duplicate, the existing customer is looked up by email and
// returned with alreadyExists set. Any other error propagates unchanged.
func (c *Client) CreateCustomer(ctx context.Context, payload CustomerCreatePayload) (customer *Customer, alreadyExists bool, err *APIError) {
	payload.FirstName = truncate(payload.FirstName, maxNameLen)
	payload.LastName = truncate(payload.LastName, maxNameLen)
	if payload.PhoneNumber != "" {
		payload.PhoneNumber = sanitizePhone(payload.PhoneNumber)
	}
	payload.Address = truncate(payload.Address, maxAddressLen)
	payload.AddressCity = truncate(payload.AddressCity, maxCityLen)

	if c.isTestEnv && c.appEnv != "" {
		payload.Email = taggedEmail(payload.Email, c.appEnv)
	}

	customer, apiErr := dispatch[Customer](ctx, c, apiCall{
		op:     OpCreateCustomer,
		method: "POST",
		path:   "/customers",
		body:   payload,
	})
	if apiErr != nil {
		if isDuplicateEmailError(apiErr) {
			listed, listErr := c.ListCustomers(ctx, CustomersListRequest{Email: payload.Email})
			if listErr != nil {
				return nil, false, listErr
			}
			if len(listed.Data) == 0 {
				return nil, false, apiErr
			}
			return &listed.Data[0], true, nil
		}
		return nil, false, apiErr
	}

	return customer, false, nil
}

// UpdateCustomer partially updates a customer.
func (c *Client) UpdateCustomer(ctx context.Context, customerID string, update CustomerUpdatePayload) (*Customer, *APIError) {
	return dispatch[Customer](ctx, c, apiCall{
		op:     OpUpdateCustomer,
		method: "PATCH",
		path:   "/customers/" + customerID,
		body:   update,
	})
}

// DeleteCustomer removes a customer.
//
// The upstream accepts this as a GET rather than a DELETE; the observed
// wire behavior is preserved on purpose until the contract is confirmed.
func (c *Client) DeleteCustomer(ctx context.Context, customerID string) (bool, *APIError) {
	_, apiErr := dispatch[Customer](ctx, c, apiCall{
		op:     OpDeleteCustomer,
		method: "GET",
		path:   "/customers/" + customerID,
	})
	if apiErr != nil {
		return false, apiErr
	}
	return true, nil
}
