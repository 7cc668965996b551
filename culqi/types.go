package culqi

// Cursors holds pagination cursors of a list response.
type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// Paging describes the pagination block of a list response. The API
// returns remaining_items as a number.
type Paging struct {
	Previous       string  `json:"previous"`
	Next           string  `json:"next"`
	Cursors        Cursors `json:"cursors"`
	RemainingItems int64   `json:"remaining_items"`
}

// ListRequest carries the pagination filters shared by all list operations.
type ListRequest struct {
	Limit  string
	Before string
	After  string
}

func (r ListRequest) pagingObject() Object {
	o := Object{}
	if r.Limit != "" {
		o = o.add("limit", r.Limit)
	}
	if r.Before != "" {
		o = o.add("before", r.Before)
	}
	if r.After != "" {
		o = o.add("after", r.After)
	}
	return o
}

// AntifraudDetails are the identity fields submitted with a charge or
// customer for fraud scoring.
type AntifraudDetails struct {
	Object      string `json:"object,omitempty"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Address     string `json:"address,omitempty"`
	AddressCity string `json:"address_city,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// CustomerMetadata is the merchant-defined metadata stored on a customer.
type CustomerMetadata struct {
	ExternalUserID any    `json:"external_user_id,omitempty"`
	CompanyName    string `json:"company_name,omitempty"`
	WebUserID      any    `json:"IdentificadorWebId,omitempty"`
	Name           string `json:"Nombre,omitempty"`
}

// Customer is a gateway customer resource.
type Customer struct {
	Object           string           `json:"object"`
	ID               string           `json:"id"`
	CreationDate     int64            `json:"creation_date"`
	Email            string           `json:"email"`
	AntifraudDetails AntifraudDetails `json:"antifraud_details"`
	Cards            []Card           `json:"cards"`
	Metadata         CustomerMetadata `json:"metadata"`
}

// CustomersListRequest filters a customer listing.
type CustomersListRequest struct {
	ListRequest
	FirstName   string
	LastName    string
	Email       string
	Address     string
	AddressCity string
	CountryCode string
	PhoneNumber string
}

func (r CustomersListRequest) queryObject() Object {
	o := Object{}
	o = o.addString("first_name", r.FirstName)
	o = o.addString("last_name", r.LastName)
	o = o.addString("email", r.Email)
	o = o.addString("address", r.Address)
	o = o.addString("address_city", r.AddressCity)
	o = o.addString("country_code", r.CountryCode)
	o = o.addString("phone_number", r.PhoneNumber)
	return append(o, r.pagingObject()...)
}

// CustomersListResponse is a page of customers.
type CustomersListResponse struct {
	Data   []Customer `json:"data"`
	Paging Paging     `json:"paging"`
}

// CustomerCreatePayload creates a customer.
type CustomerCreatePayload struct {
	FirstName   string            `json:"first_name"`
	LastName    string            `json:"last_name"`
	Email       string            `json:"email"`
	Address     string            `json:"address"`
	AddressCity string            `json:"address_city"`
	CountryCode string            `json:"country_code"`
	PhoneNumber string            `json:"phone_number"`
	Metadata    *CustomerMetadata `json:"metadata,omitempty"`
}

// CustomerUpdatePayload partially updates a customer.
type CustomerUpdatePayload struct {
	FirstName   string            `json:"first_name,omitempty"`
	LastName    string            `json:"last_name,omitempty"`
	Address     string            `json:"address,omitempty"`
	AddressCity string            `json:"address_city,omitempty"`
	CountryCode string            `json:"country_code,omitempty"`
	PhoneNumber string            `json:"phone_number,omitempty"`
	Metadata    *CustomerMetadata `json:"metadata,omitempty"`
}

// IsZero reports whether the update carries no fields at all.
func (p CustomerUpdatePayload) IsZero() bool {
	return p == CustomerUpdatePayload{}
}

// Issuer describes the bank that issued a card.
type Issuer struct {
	Name        string `json:"name"`
	Country     string `json:"country"`
	CountryCode string `json:"country_code"`
	Website     string `json:"website"`
	PhoneNumber string `json:"phone_number"`
}

// IIN is the issuer identification block of a tokenized card.
type IIN struct {
	Object              string `json:"object"`
	BIN                 string `json:"bin"`
	CardBrand           string `json:"card_brand"`
	CardType            string `json:"card_type"`
	CardCategory        string `json:"card_category"`
	Issuer              Issuer `json:"issuer"`
	InstallmentsAllowed []int  `json:"installments_allowed"`
}

// ClientInfo captures the device context a token was created from.
type ClientInfo struct {
	IP                string `json:"ip"`
	IPCountry         string `json:"ip_country"`
	IPCountryCode     string `json:"ip_country_code"`
	Browser           string `json:"browser"`
	DeviceFingerprint string `json:"device_fingerprint"`
	DeviceType        string `json:"device_type"`
}

// SourceMetadata is the request context stored on a token.
type SourceMetadata struct {
	Method   string `json:"method"`
	ClientIP string `json:"client_ip"`
	Secure   string `json:"secure"`
	URL      string `json:"url"`
}

// Source is a tokenized payment credential accepted by the gateway.
type Source struct {
	Object       string         `json:"object"`
	ID           string         `json:"id"`
	Type         string         `json:"type"`
	CreationDate int64          `json:"creation_date"`
	Email        string         `json:"email"`
	CardNumber   string         `json:"card_number"`
	LastFour     string         `json:"last_four"`
	Active       bool           `json:"active"`
	IIN          IIN            `json:"iin"`
	Client       ClientInfo     `json:"client"`
	Metadata     SourceMetadata `json:"metadata"`
}

// CardMetadata stores the billing details attached to a vaulted card.
type CardMetadata struct {
	CardHolderName    string `json:"cardHolderName"`
	BillingAddress1   string `json:"billingAddress1"`
	BillingAddress2   string `json:"billingAddress2"`
	BillingCity       string `json:"billingCity"`
	BillingState      string `json:"billingState"`
	BillingCountry    string `json:"billingCountry"`
	BillingPostalCode string `json:"billingPostalCode,omitempty"`
}

// Card is a vaulted card attached to a customer.
type Card struct {
	Object       string       `json:"object"`
	ID           string       `json:"id"`
	Active       bool         `json:"active"`
	CreationDate int64        `json:"creation_date"`
	CustomerID   string       `json:"customer_id"`
	Source       Source       `json:"source"`
	Metadata     CardMetadata `json:"metadata"`
}

// CardsListRequest filters a card listing.
type CardsListRequest struct {
	ListRequest
	CreationDate     int64
	CreationDateFrom int64
	CreationDateTo   int64
	CardBrand        string
	CardType         string
	DeviceType       string
	BIN              int64
	CountryCode      string
}

func (r CardsListRequest) queryObject() Object {
	o := Object{}
	o = o.addInt("creation_date", r.CreationDate)
	o = o.addInt("creation_date_from", r.CreationDateFrom)
	o = o.addInt("creation_date_to", r.CreationDateTo)
	o = o.addString("card_brand", r.CardBrand)
	o = o.addString("card_type", r.CardType)
	o = o.addString("device_type", r.DeviceType)
	o = o.addInt("bin", r.BIN)
	o = o.addString("country_code", r.CountryCode)
	return append(o, r.pagingObject()...)
}

// CardsListResponse is a page of cards.
type CardsListResponse struct {
	Data   []Card `json:"data"`
	Paging Paging `json:"paging"`
}

// CardCreatePayload vaults a token as a customer card.
type CardCreatePayload struct {
	CustomerID string        `json:"customer_id"`
	TokenID    string        `json:"token_id"`
	Validate   *bool         `json:"validate,omitempty"`
	Metadata   *CardMetadata `json:"metadata,omitempty"`
}

// CardUpdatePayload updates a vaulted card.
type CardUpdatePayload struct {
	TokenID  string        `json:"token_id,omitempty"`
	Metadata *CardMetadata `json:"metadata,omitempty"`
}

// Outcome is the gateway's decision block on a charge.
type Outcome struct {
	Type            string `json:"type"`
	Code            string `json:"code"`
	MerchantMessage string `json:"merchant_message"`
	UserMessage     string `json:"user_message"`
}

// OutcomeTypeSale is the outcome type of a successful sale.
const OutcomeTypeSale = "venta_exitosa"

// FixedFee is the flat component of the gateway commission.
type FixedFee struct {
	Amount                   float64 `json:"amount"`
	CurrencyCode             string  `json:"currency_code"`
	ExchangeRate             float64 `json:"exchange_rate"`
	ExchangeRateCurrencyCode string  `json:"exchange_rate_currency_code"`
	Total                    float64 `json:"total"`
}

// VariableFee is the percentage component of the gateway commission.
type VariableFee struct {
	CurrencyCode string  `json:"currency_code"`
	Commission   float64 `json:"commision"`
	Total        float64 `json:"total"`
}

// FeeDetails breaks down the commission charged by the gateway.
type FeeDetails struct {
	FixedFee    FixedFee    `json:"fixed_fee"`
	VariableFee VariableFee `json:"variable_fee"`
}

// ChargeOperation is one ledger movement recorded on a charge.
type ChargeOperation struct {
	Type         string  `json:"type"`
	ID           string  `json:"id"`
	CreationDate int64   `json:"creation_date"`
	Amount       float64 `json:"amount"`
	OperationID  int64   `json:"operation_id"`
}

// Charge is a payment capture or authorization attempt.
type Charge struct {
	Duplicated          bool              `json:"duplicated,omitempty"`
	Object              string            `json:"object"`
	ID                  string            `json:"id"`
	CreationDate        int64             `json:"creation_date"`
	Amount              int64             `json:"amount"`
	AmountRefunded      int64             `json:"amount_refunded"`
	CurrentAmount       int64             `json:"current_amount"`
	Installments        int               `json:"installments"`
	InstallmentsAmount  int64             `json:"installments_amount,omitempty"`
	CurrencyCode        string            `json:"currency_code"`
	Email               string            `json:"email"`
	Description         string            `json:"description"`
	Source              Source            `json:"source"`
	Outcome             Outcome           `json:"outcome"`
	FraudScore          float64           `json:"fraud_score,omitempty"`
	AntifraudDetails    AntifraudDetails  `json:"antifraud_details"`
	Dispute             bool              `json:"dispute"`
	Capture             bool              `json:"capture,omitempty"`
	ReferenceCode       string            `json:"reference_code"`
	AuthorizationCode   string            `json:"authorization_code"`
	Metadata            map[string]any    `json:"metadata"`
	TotalFee            int64             `json:"total_fee,omitempty"`
	FeeDetails          FeeDetails        `json:"fee_details"`
	TotalFeeTaxes       int64             `json:"total_fee_taxes,omitempty"`
	TransferAmount      int64             `json:"transfer_amount,omitempty"`
	Paid                bool              `json:"paid"`
	StatementDescriptor string            `json:"statement_descriptor"`
	TransferID          string            `json:"transfer_id"`
	Operations          []ChargeOperation `json:"operations"`
	CaptureDate         int64             `json:"capture_date,omitempty"`
}

// ChargesListRequest filters a charge listing.
type ChargesListRequest struct {
	ListRequest
	Amount           int64
	MinAmount        int64
	MaxAmount        int64
	Installments     int64
	MinInstallments  int64
	MaxInstallments  int64
	CurrencyCode     string
	Code             string
	DeclineCode      string
	FraudScore       int64
	MinFraudScore    int64
	MaxFraudScore    int64
	FirstName        string
	LastName         string
	Email            string
	Address          string
	AddressCity      string
	CountryCode      string
	PhoneNumber      string
	Dispute          *bool
	Captured         *bool
	Duplicated       *bool
	Paid             *bool
	CustomerID       string
	Reference        string
	CreationDate     int64
	CreationDateFrom int64
	CreationDateTo   int64
	Fee              int64
	MinFee           int64
	MaxFee           int64
	CardBrand        string
	CardType         string
	DeviceType       string
	BIN              int64
}

func (r ChargesListRequest) queryObject() Object {
	o := Object{}
	o = o.addInt("amount", r.Amount)
	o = o.addInt("min_amount", r.MinAmount)
	o = o.addInt("max_amount", r.MaxAmount)
	o = o.addInt("installments", r.Installments)
	o = o.addInt("min_installments", r.MinInstallments)
	o = o.addInt("max_installments", r.MaxInstallments)
	o = o.addString("currency_code", r.CurrencyCode)
	o = o.addString("code", r.Code)
	o = o.addString("decline_code", r.DeclineCode)
	o = o.addInt("fraud_score", r.FraudScore)
	o = o.addInt("min_fraud_score", r.MinFraudScore)
	o = o.addInt("max_fraud_score", r.MaxFraudScore)
	o = o.addString("first_name", r.FirstName)
	o = o.addString("last_name", r.LastName)
	o = o.addString("email", r.Email)
	o = o.addString("address", r.Address)
	o = o.addString("address_city", r.AddressCity)
	o = o.addString("country_code", r.CountryCode)
	o = o.addString("phone_number", r.PhoneNumber)
	o = o.addBool("dispute", r.Dispute)
	o = o.addBool("captured", r.Captured)
	o = o.addBool("duplicated", r.Duplicated)
	o = o.addBool("paid", r.Paid)
	o = o.addString("customer_id", r.CustomerID)
	o = o.addString("reference", r.Reference)
	o = o.addInt("creation_date", r.CreationDate)
	o = o.addInt("creation_date_from", r.CreationDateFrom)
	o = o.addInt("creation_date_to", r.CreationDateTo)
	o = o.addInt("fee", r.Fee)
	o = o.addInt("min_fee", r.MinFee)
	o = o.addInt("max_fee", r.MaxFee)
	o = o.addString("card_brand", r.CardBrand)
	o = o.addString("card_type", r.CardType)
	o = o.addString("device_type", r.DeviceType)
	o = o.addInt("bin", r.BIN)
	return append(o, r.pagingObject()...)
}

// ChargesListResponse is a page of charges.
type ChargesListResponse struct {
	Data   []Charge `json:"data"`
	Paging Paging   `json:"paging"`
}

// ChargeCreatePayload creates a charge against a source.
type ChargeCreatePayload struct {
	Amount           int64            `json:"amount"`
	CurrencyCode     string           `json:"currency_code"`
	Email            string           `json:"email"`
	SourceID         string           `json:"source_id"`
	Capture          *bool            `json:"capture,omitempty"`
	Description      string           `json:"description"`
	Installments     int              `json:"installments,omitempty"`
	Metadata         map[string]any   `json:"metadata"`
	AntifraudDetails AntifraudDetails `json:"antifraud_details"`
}

// ChargeUpdatePayload updates the metadata of a charge.
type ChargeUpdatePayload struct {
	Metadata map[string]any `json:"metadata"`
}

// ClientDetails identifies the buyer on an order.
type ClientDetails struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

// Order is a payment order payable out of band (e.g. cash networks).
type Order struct {
	Object         string         `json:"object"`
	ID             string         `json:"id"`
	Amount         int64          `json:"amount"`
	PaymentCode    string         `json:"payment_code"`
	CurrencyCode   string         `json:"currency_code"`
	Description    string         `json:"description"`
	OrderNumber    string         `json:"order_number"`
	State          string         `json:"state"`
	TotalFee       int64          `json:"total_fee,omitempty"`
	NetAmount      int64          `json:"net_amount,omitempty"`
	FeeDetails     FeeDetails     `json:"fee_details"`
	CreationDate   int64          `json:"creation_date"`
	ExpirationDate int64          `json:"expiration_date"`
	UpdatedAt      int64          `json:"updated_at,omitempty"`
	PaidAt         int64          `json:"paid_at,omitempty"`
	AvailableOn    int64          `json:"available_on,omitempty"`
	Metadata       map[string]any `json:"metadata"`
}

// OrdersListRequest filters an order listing.
type OrdersListRequest struct {
	ListRequest
	Amount           int64
	MinAmount        int64
	MaxAmount        int64
	CreationDate     int64
	CreationDateFrom int64
	CreationDateTo   int64
	State            string
}

func (r OrdersListRequest) queryObject() Object {
	o := Object{}
	o = o.addInt("amount", r.Amount)
	o = o.addInt("min_amount", r.MinAmount)
	o = o.addInt("max_amount", r.MaxAmount)
	o = o.addInt("creation_date", r.CreationDate)
	o = o.addInt("creation_date_from", r.CreationDateFrom)
	o = o.addInt("creation_date_to", r.CreationDateTo)
	o = o.addString("state", r.State)
	return append(o, r.pagingObject()...)
}

// OrdersListResponse is a page of orders.
type OrdersListResponse struct {
	Data   []Order `json:"data"`
	Paging Paging  `json:"paging"`
}

// OrderCreatePayload creates an order.
type OrderCreatePayload struct {
	Amount         int64          `json:"amount"`
	CurrencyCode   string         `json:"currency_code"`
	Description    string         `json:"description"`
	OrderNumber    string         `json:"order_number"`
	ExpirationDate int64          `json:"expiration_date"`
	ClientDetails  ClientDetails  `json:"client_details"`
	Confirm        *bool          `json:"confirm,omitempty"`
	Metadata       map[string]any `json:"metadata"`
}

// OrderUpdatePayload updates an order.
type OrderUpdatePayload struct {
	ExpirationDate int64          `json:"expiration_date"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

// RefundReason is the closed set of refund reasons the gateway accepts.
type RefundReason string

const (
	RefundReasonDuplicate           RefundReason = "duplicado"
	RefundReasonFraudulent          RefundReason = "fraudulento"
	RefundReasonRequestedByCustomer RefundReason = "solicitud_comprador"
)

// Refund is a partial or total reversal of a charge.
type Refund struct {
	Object       string         `json:"object"`
	ID           string         `json:"id"`
	ChargeID     string         `json:"charge_id"`
	CreationDate int64          `json:"creation_date"`
	Amount       int64          `json:"amount"`
	Reason       string         `json:"reason"`
	Metadata     map[string]any `json:"metadata"`
}

// RefundsListRequest filters a refund listing.
type RefundsListRequest struct {
	ListRequest
	CreationDate     int64
	CreationDateFrom int64
	CreationDateTo   int64
	Reason           RefundReason
}

func (r RefundsListRequest) queryObject() Object {
	o := Object{}
	o = o.addInt("creation_date", r.CreationDate)
	o = o.addInt("creation_date_from", r.CreationDateFrom)
	o = o.addInt("creation_date_to", r.CreationDateTo)
	o = o.addString("reason", string(r.Reason))
	return append(o, r.pagingObject()...)
}

// RefundsListResponse is a page of refunds.
type RefundsListResponse struct {
	Data   []Refund `json:"data"`
	Paging Paging   `json:"paging"`
}

// RefundCreatePayload creates a refund for a charge.
type RefundCreatePayload struct {
	Amount   int64        `json:"amount"`
	ChargeID string       `json:"charge_id"`
	Reason   RefundReason `json:"reason"`
}

// RefundUpdatePayload updates the metadata of a refund.
type RefundUpdatePayload struct {
	Metadata map[string]any `json:"metadata"`
}
