package payment

import (
	"context"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/andeslabs/culqi-gateway/culqi"
	"github.com/andeslabs/culqi-gateway/infra/logger"
)

// CustomerStore is the platform collaborator that persists customer
// metadata (gateway customer ids, last used card ids).
type CustomerStore interface {
	UpdateMetadata(ctx context.Context, customerID string, metadata map[string]any) error
}

// InitiateRequest starts a payment session.
type InitiateRequest struct {
	Email            string `validate:"required,email"`
	CurrencyCode     string `validate:"required,len=3"`
	Amount           int64  `validate:"required,gt=0"`
	Customer         *Customer
	ShippingAddress  *Address
	IsRecurringOrder bool
}

// SessionResponse is the result of initiating a session: the session
// state plus metadata updates the platform should apply to its customer.
type SessionResponse struct {
	SessionData      SessionData
	CustomerMetadata map[string]any
}

// UpdateData is the session-data update sent while the buyer picks a
// payment method.
type UpdateData struct {
	SameAsShippingAddress bool
	BillingAddress        *Address
	CardID                string
	CardToken             string
	SaveCard              bool
}

// CardPaymentService adapts the platform's payment-provider contract to
// the gateway client. It raises *Fault errors at the boundary; gateway
// Result errors never escape unclassified.
type CardPaymentService struct {
	client    *culqi.Client
	customers CustomerStore
	validate  *validator.Validate
	capture   bool
}

// NewCardPaymentService creates the card payment adapter. capture selects
// immediate capture on charge creation.
func NewCardPaymentService(client *culqi.Client, customers CustomerStore, validate *validator.Validate, capture bool) *CardPaymentService {
	return &CardPaymentService{
		client:    client,
		customers: customers,
		validate:  validate,
		capture:   capture,
	}
}

// InitiatePayment resolves the gateway customer and builds the initial
// session state presented to the buyer.
func (s *CardPaymentService) InitiatePayment(ctx context.Context, req InitiateRequest) (*SessionResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, invalidData(err.Error())
	}

	data := SessionData{
		CurrencyCode:    req.CurrencyCode,
		Amount:          req.Amount,
		Email:           req.Email,
		Customer:        req.Customer,
		ShippingAddress: req.ShippingAddress,
		AntifraudDetails: ChargeAntifraudDetails(AntifraudInput{
			Address:               req.ShippingAddress,
			Customer:              req.Customer,
			CustomerTakesPriority: true,
		}),
		IsRecurringOrder: req.IsRecurringOrder,
	}

	customerID, _, apiErr := GetOrCreateCustomer(ctx, s.client, ResolveCustomerOptions{
		Customer: req.Customer,
		Email:    req.Email,
		Address:  req.ShippingAddress,
	})
	if apiErr != nil {
		return nil, NewFault(FaultUnexpectedState, apiErr.MerchantMessage)
	}
	data.CustomerID = customerID

	customerMetadata := map[string]any{}
	if req.Customer.GatewayCustomerID() == "" {
		customerMetadata[MetaGatewayCustomerID] = customerID
	}

	return &SessionResponse{
		SessionData:      data,
		CustomerMetadata: customerMetadata,
	}, nil
}

// UpdateSessionData applies a buyer-driven update: card selection, card
// vaulting, billing address changes. Domain validation failures are
// raised before any network call. The gateway-customer update and the
// platform metadata update run concurrently and are joined with an
// all-complete join: a failure in one branch never cancels or masks the
// other, and both are non-fatal.
func (s *CardPaymentService) UpdateSessionData(ctx context.Context, session SessionData, data UpdateData) (SessionData, error) {
	if data.CardID == "" && data.CardToken == "" {
		return session, invalidData("Card id or card token is required")
	}
	if !data.SameAsShippingAddress && data.BillingAddress == nil {
		return session, invalidData("Billing address is required")
	}
	if session.IsRecurringOrder && data.CardID == "" && !data.SaveCard {
		return session, invalidData("Saving a card is required for recurring orders")
	}

	billingAddress := data.BillingAddress
	if data.SameAsShippingAddress {
		billingAddress = session.ShippingAddress
	}

	updated := session
	var branches []joinBranch

	// Met only when the billing address differs from the shipping
	// address, or was just switched back to it.
	if !data.SameAsShippingAddress || session.AntifraudFromBilling {
		updated.AntifraudDetails = ChargeAntifraudDetails(AntifraudInput{Address: billingAddress})
		updated.AntifraudFromBilling = !data.SameAsShippingAddress

		// Guest checkouts have no account to pull identity from later, so
		// the gateway customer is refreshed from the billing address now.
		if !session.Customer.hasAccount() {
			customerID := session.CustomerID
			update := culqi.CustomerUpdatePayload{
				FirstName:   billingAddress.FirstName,
				LastName:    billingAddress.LastName,
				Address:     billingAddress.Address1,
				AddressCity: billingAddress.City,
				CountryCode: billingAddress.CountryCode,
				PhoneNumber: billingAddress.Phone,
			}
			branches = append(branches, joinBranch{
				name: "update gateway customer",
				run: func(ctx context.Context) error {
					if _, apiErr := s.client.UpdateCustomer(ctx, customerID, update); apiErr != nil {
						return apiErr
					}
					return nil
				},
			})
		}
	}

	var lastUsedCardID string
	switch {
	case data.CardID != "":
		updated.SourceID = data.CardID
		lastUsedCardID = data.CardID
	case data.SaveCard:
		cardID, err := CreateCard(ctx, s.client, session.CustomerID, data.CardToken, *billingAddress)
		if err != nil {
			return session, err
		}
		updated.SourceID = cardID
		lastUsedCardID = cardID
	default:
		updated.SourceID = data.CardToken
	}

	if lastUsedCardID != "" && session.Customer != nil {
		customer := session.Customer
		branches = append(branches, joinBranch{
			name: "update last used card",
			run: func(ctx context.Context) error {
				metadata := map[string]any{}
				for k, v := range customer.Metadata {
					metadata[k] = v
				}
				metadata[MetaLastUsedCardID] = lastUsedCardID
				return s.customers.UpdateMetadata(ctx, customer.ID, metadata)
			},
		})
	}

	joinAll(ctx, branches)

	return updated, nil
}

// UpdateContext is the refreshed cart state pushed by the platform while
// a session is open.
type UpdateContext struct {
	Email            string
	CurrencyCode     string
	Amount           int64
	Customer         *Customer
	ShippingAddress  *Address
	IsRecurringOrder bool
}

// UpdateSession refreshes session state from the cart. When the email or
// the customer changed, the gateway customer is re-resolved and a gateway
// customer created for a previous guest session is deleted.
func (s *CardPaymentService) UpdateSession(ctx context.Context, session SessionData, cx UpdateContext) (SessionData, error) {
	oldEmail := session.Email
	oldCustomer := session.Customer

	updated := session
	updated.CurrencyCode = cx.CurrencyCode
	updated.Amount = cx.Amount
	updated.Email = cx.Email
	updated.Customer = cx.Customer
	updated.ShippingAddress = cx.ShippingAddress
	updated.AntifraudDetails = ChargeAntifraudDetails(AntifraudInput{
		Address:               cx.ShippingAddress,
		Customer:              cx.Customer,
		CustomerTakesPriority: true,
	})
	updated.AntifraudFromBilling = false
	updated.IsRecurringOrder = cx.IsRecurringOrder

	if oldEmail != cx.Email || oldCustomer.id() != cx.Customer.id() {
		customerID, _, apiErr := GetOrCreateCustomer(ctx, s.client, ResolveCustomerOptions{
			Customer: cx.Customer,
			Email:    cx.Email,
			Address:  cx.ShippingAddress,
		})
		if apiErr != nil {
			return session, NewFault(FaultUnexpectedState, apiErr.MerchantMessage)
		}

		updated.CustomerID = customerID

		if cx.Customer != nil {
			customer := *cx.Customer
			metadata := map[string]any{}
			for k, v := range customer.Metadata {
				metadata[k] = v
			}
			metadata[MetaGatewayCustomerID] = customerID
			customer.Metadata = metadata
			updated.Customer = &customer
		}

		// A guest customer from the previous session leaves an orphaned
		// gateway record behind; best-effort cleanup.
		if oldCustomer != nil && !oldCustomer.HasAccount {
			if oldID := oldCustomer.GatewayCustomerID(); oldID != "" {
				if _, apiErr := s.client.DeleteCustomer(ctx, oldID); apiErr != nil {
					logger.Warn("payment: stale gateway customer not deleted", logger.LogContext{
						Fields: map[string]any{"customer_id": oldID, "error": apiErr.Error()},
					})
				}
			}
		}
	}

	return updated, nil
}

// AuthorizeResult is the outcome of an authorization attempt.
type AuthorizeResult struct {
	Data   SessionData
	Status SessionStatus
}

// Authorize creates the charge for a completed cart. Gateway errors do
// not raise; they surface as an errored session per the platform's
// session contract.
func (s *CardPaymentService) Authorize(ctx context.Context, session SessionData, cartID string, items []LineItem) AuthorizeResult {
	lineItems := make([]map[string]any, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, map[string]any{
			"id":       item.ID,
			"name":     item.Name,
			"quantity": item.Quantity,
			"price":    item.Price,
		})
	}

	capture := s.capture
	payload := culqi.ChargeCreatePayload{
		Amount:           session.Amount,
		CurrencyCode:     strings.ToUpper(session.CurrencyCode),
		Capture:          &capture,
		Description:      "Order for cart " + cartID,
		Email:            session.Email,
		AntifraudDetails: session.AntifraudDetails,
		SourceID:         session.SourceID,
		Metadata:         map[string]any{"lineItems": lineItems},
	}

	updated := session
	charge, apiErr := s.client.CreateCharge(ctx, payload)
	if apiErr != nil {
		if session.IsRecurringOrder {
			updated.RecurringPaymentFailed = true
		}
		updated.OutcomeType = "error"
		return AuthorizeResult{Data: updated, Status: StatusError}
	}

	updated.ChargeID = charge.ID
	updated.OutcomeType = charge.Outcome.Type
	updated.ReferenceCode = charge.ReferenceCode

	status := StatusPending
	if charge.Outcome.Type == culqi.OutcomeTypeSale {
		updated.AuthorizationCode = charge.AuthorizationCode
		updated.AuthorizationResult = charge.Outcome.MerchantMessage
		if charge.Capture {
			updated.CaptureResult = charge.Outcome.MerchantMessage
		}
		status = StatusAuthorized
	}

	return AuthorizeResult{Data: updated, Status: status}
}

// GetPaymentData projects the session state onto the payment record.
func (s *CardPaymentService) GetPaymentData(session SessionData) PaymentData {
	return PaymentData{
		ChargeID:            session.ChargeID,
		OutcomeType:         session.OutcomeType,
		ReferenceCode:       session.ReferenceCode,
		AuthorizationCode:   session.AuthorizationCode,
		AuthorizationResult: session.AuthorizationResult,
		CaptureResult:       session.CaptureResult,
	}
}

// Capture captures the authorized charge of a payment.
func (s *CardPaymentService) Capture(ctx context.Context, data PaymentData) (PaymentData, error) {
	charge, apiErr := s.client.CaptureCharge(ctx, data.ChargeID)
	if apiErr != nil {
		return data, chargeFault(apiErr, "capturing", data.ChargeID)
	}

	if charge.Outcome.Type == culqi.OutcomeTypeSale {
		data.CaptureResult = charge.Outcome.MerchantMessage
	}
	return data, nil
}

// Refund refunds part or all of a payment's charge.
func (s *CardPaymentService) Refund(ctx context.Context, data PaymentData, amount int64) (PaymentData, error) {
	_, apiErr := s.client.CreateRefund(ctx, culqi.RefundCreatePayload{
		Amount:   amount,
		ChargeID: data.ChargeID,
		Reason:   culqi.RefundReasonRequestedByCustomer,
	})
	if apiErr != nil {
		return data, refundFault(apiErr, data.ChargeID)
	}
	return data, nil
}

// Retrieve fetches the charge backing a payment.
func (s *CardPaymentService) Retrieve(ctx context.Context, data PaymentData) (*culqi.Charge, error) {
	charge, apiErr := s.client.GetCharge(ctx, data.ChargeID)
	if apiErr != nil {
		return nil, chargeFault(apiErr, "retrieving", data.ChargeID)
	}
	return charge, nil
}

// Cancel releases a session; the gateway holds nothing to undo before
// capture, so this only echoes the payment data back.
func (s *CardPaymentService) Cancel(_ context.Context, data PaymentData) (PaymentData, error) {
	return data, nil
}

// Status maps the recorded outcome onto the platform's session status.
func (s *CardPaymentService) Status(data PaymentData) SessionStatus {
	switch data.OutcomeType {
	case "error":
		return StatusError
	case culqi.OutcomeTypeSale:
		return StatusAuthorized
	default:
		return StatusPending
	}
}

func (c *Customer) id() string {
	if c == nil {
		return ""
	}
	return c.ID
}

func (c *Customer) hasAccount() bool {
	return c != nil && c.HasAccount
}

// joinBranch is one concurrent side effect fired during a session update.
type joinBranch struct {
	name string
	run  func(ctx context.Context) error
}

// joinAll runs every branch and waits for all of them to finish, whether
// they fail or not. Branch failures are logged and otherwise ignored; the
// payment flow continues.
func joinAll(ctx context.Context, branches []joinBranch) {
	if len(branches) == 0 {
		return
	}

	var wg sync.WaitGroup
	errs := make([]error, len(branches))
	for i, branch := range branches {
		wg.Add(1)
		go func(i int, branch joinBranch) {
			defer wg.Done()
			errs[i] = branch.run(ctx)
		}(i, branch)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			logger.Warn("payment: session side effect failed", logger.LogContext{
				Fields: map[string]any{"branch": branches[i].name, "error": err.Error()},
			})
		}
	}
}
