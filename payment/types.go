package payment

import "github.com/andeslabs/culqi-gateway/culqi"

// Address is the platform-side address shape handed to the adapter.
type Address struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Phone       string `json:"phone"`
	Address1    string `json:"address_1"`
	Address2    string `json:"address_2"`
	City        string `json:"city"`
	Province    string `json:"province"`
	CountryCode string `json:"country_code"`
	PostalCode  string `json:"postal_code"`
}

// Customer is the platform-side customer shape. Metadata is owned by the
// platform; the adapter reads and writes a small set of well-known keys.
type Customer struct {
	ID         string         `json:"id"`
	Email      string         `json:"email"`
	FirstName  string         `json:"first_name"`
	LastName   string         `json:"last_name"`
	Phone      string         `json:"phone"`
	HasAccount bool           `json:"has_account"`
	Metadata   map[string]any `json:"metadata"`
}

// Metadata keys the adapter maintains on platform customers.
const (
	MetaGatewayCustomerID = "culqi_customer_id"
	MetaLastUsedCardID    = "last_used_culqi_card_id"

	metaExternalUserID = "costos_user_id"
	metaIsCompany      = "is_company"
	metaRUC            = "ruc"
)

// GatewayCustomerID returns the stored gateway customer id, if any.
func (c *Customer) GatewayCustomerID() string {
	if c == nil {
		return ""
	}
	id, _ := c.Metadata[MetaGatewayCustomerID].(string)
	return id
}

func (c *Customer) metaString(key string) string {
	if c == nil {
		return ""
	}
	v, _ := c.Metadata[key].(string)
	return v
}

func (c *Customer) metaBool(key string) bool {
	if c == nil {
		return false
	}
	v, _ := c.Metadata[key].(bool)
	return v
}

// LineItem is one cart line recorded in charge metadata.
type LineItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// SessionStatus is the platform's payment-session status contract.
type SessionStatus string

const (
	StatusPending    SessionStatus = "pending"
	StatusAuthorized SessionStatus = "authorized"
	StatusError      SessionStatus = "error"
)

// SessionData is the state the adapter keeps on a payment session between
// platform calls.
type SessionData struct {
	CurrencyCode           string
	Amount                 int64
	Email                  string
	Customer               *Customer
	ShippingAddress        *Address
	CustomerID             string
	SourceID               string
	AntifraudDetails       culqi.AntifraudDetails
	AntifraudFromBilling   bool
	IsRecurringOrder       bool
	ChargeID               string
	OutcomeType            string
	ReferenceCode          string
	AuthorizationCode      string
	AuthorizationResult    string
	CaptureResult          string
	RecurringPaymentFailed bool
}

// PaymentData is the subset of session state the platform persists on the
// payment record after authorization.
type PaymentData struct {
	ChargeID            string `json:"charge_id"`
	OutcomeType         string `json:"outcome_type"`
	ReferenceCode       string `json:"reference_code"`
	AuthorizationCode   string `json:"authorization_code"`
	AuthorizationResult string `json:"authorization_result"`
	CaptureResult       string `json:"capture_result"`
}
