package culqi

import "context"

// Metadata keys written by the sandbox email rewrite.
const (
	metadataOriginalEmail = "originalEmail"
	metadataEnv           = "env"
)

// ListCharges lists charges matching the given filters.
func (c *Client) ListCharges(ctx context.Context, req ChargesListRequest) (*ChargesListResponse, *APIError) {
	return dispatch[ChargesListResponse](ctx, c, apiCall{
		op:     OpListCharges,
		method: "GET",
		path:   "/charges",
		query:  req.queryObject(),
	})
}

// GetCharge retrieves a charge by id.
func (c *Client) GetCharge(ctx context.Context, chargeID string) (*Charge, *APIError) {
	return dispatch[Charge](ctx, c, apiCall{
		op:     OpGetCharge,
		method: "GET",
		path:   "/charges/" + chargeID,
	})
}

// CreateCharge creates a charge. Antifraud fields are normalized to the
// upstream length limits. In sandbox mode with a configured developer
// email the outbound email is replaced so test transactions route to a
// controlled inbox; the original email and environment tag are preserved
// in the charge metadata.
func (c *Client) CreateCharge(ctx context.Context, payload ChargeCreatePayload) (*Charge, *APIError) {
	payload.AntifraudDetails = sanitizeAntifraud(payload.AntifraudDetails)

	if c.isTestEnv && c.devEmail != "" {
		originalEmail := payload.Email
		payload.Email = c.devEmail

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

	return dispatch[Charge](ctx, c, apiCall{
		op:     OpCreateCharge,
		method: "POST",
		path:   "/charges",
		body:   payload,
	})
}

// CaptureCharge captures a previously authorized charge.
func (c *Client) CaptureCharge(ctx context.Context, chargeID string) (*Charge, *APIError) {
	return dispatch[Charge](ctx, c, apiCall{
		op:     OpCaptureCharge,
		method: "POST",
		path:   "/charges/" + chargeID + "/capture",
	})
}

// UpdateCharge updates the metadata of a charge.
func (c *Client) UpdateCharge(ctx context.Context, chargeID string, update ChargeUpdatePayload) (*Charge, *APIError) {
	return dispatch[Charge](ctx, c, apiCall{
		op:     OpUpdateCharge,
		method: "PATCH",
		path:   "/charges/" + chargeID,
		body:   update,
	})
}

// sanitizeAntifraud applies the customer field-length rules to the
// antifraud block of a charge.
func sanitizeAntifraud(d AntifraudDetails) AntifraudDetails {
	d.FirstName = truncate(d.FirstName, maxNameLen)
	d.LastName = truncate(d.LastName, maxNameLen)
	if d.PhoneNumber != "" {
		d.PhoneNumber = sanitizePhone(d.PhoneNumber)
	}
	d.Address = truncate(d.Address, maxAddressLen)
	d.AddressCity = truncate(d.AddressCity, maxCityLen)
	return d
}
