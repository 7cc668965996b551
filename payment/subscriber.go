package payment

import (
	"context"

	"github.com/andeslabs/culqi-gateway/culqi"
	"github.com/andeslabs/culqi-gateway/infra/logger"
)

// CustomerSubscriber mirrors platform customer lifecycle events onto the
// gateway so the two customer records stay in sync outside of checkout.
type CustomerSubscriber struct {
	client *culqi.Client
}

// NewCustomerSubscriber creates the customer event subscriber.
func NewCustomerSubscriber(client *culqi.Client) *CustomerSubscriber {
	return &CustomerSubscriber{client: client}
}

// HandleCustomerCreated resolves a gateway customer for a new platform
// customer and returns the metadata update linking the two. Customers
// without an email are skipped; nothing on the gateway side can key them.
func (s *CustomerSubscriber) HandleCustomerCreated(ctx context.Context, customer *Customer) (map[string]any, error) {
	if customer == nil || customer.Email == "" {
		return nil, nil
	}
	if customer.GatewayCustomerID() != "" {
		return nil, nil
	}

	customerID, created, apiErr := GetOrCreateCustomer(ctx, s.client, ResolveCustomerOptions{
		Customer: customer,
		Email:    customer.Email,
	})
	if apiErr != nil {
		return nil, NewFault(FaultUnexpectedState, apiErr.MerchantMessage)
	}

	logger.Info("payment: gateway customer linked", logger.LogContext{
		Operation: "customer.created",
		Fields: map[string]any{
			"customer_id":         customer.ID,
			"gateway_customer_id": customerID,
			"created":             created,
		},
	})

	return map[string]any{MetaGatewayCustomerID: customerID}, nil
}

// HandleCustomerUpdated pushes changed identity fields to the linked
// gateway customer. Unlinked customers are ignored.
func (s *CustomerSubscriber) HandleCustomerUpdated(ctx context.Context, customer *Customer) error {
	if customer == nil {
		return nil
	}
	gatewayID := customer.GatewayCustomerID()
	if gatewayID == "" {
		return nil
	}

	update := culqi.CustomerUpdatePayload{
		FirstName:   CleanName(customer.FirstName),
		LastName:    CleanName(customer.LastName),
		PhoneNumber: customer.Phone,
	}
	if update.IsZero() {
		return nil
	}

	if _, apiErr := s.client.UpdateCustomer(ctx, gatewayID, update); apiErr != nil {
		return NewFault(FaultUnexpectedState, apiErr.MerchantMessage)
	}
	return nil
}

// HandleCustomerDeleted removes the linked gateway customer. A missing
// gateway record is not an error; the link may already be stale.
func (s *CustomerSubscriber) HandleCustomerDeleted(ctx context.Context, customer *Customer) error {
	if customer == nil {
		return nil
	}
	gatewayID := customer.GatewayCustomerID()
	if gatewayID == "" {
		return nil
	}

	if _, apiErr := s.client.DeleteCustomer(ctx, gatewayID); apiErr != nil {
		if apiErr.IsParameterError() {
			logger.Warn("payment: gateway customer already gone", logger.LogContext{
				Operation: "customer.deleted",
				Fields:    map[string]any{"gateway_customer_id": gatewayID},
			})
			return nil
		}
		return NewFault(FaultUnexpectedState, apiErr.MerchantMessage)
	}
	return nil
}
