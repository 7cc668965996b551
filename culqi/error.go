package culqi

// APIError is the error envelope returned by the Culqi API. Errors built
// locally (transport failures, non-JSON bodies) carry only MerchantMessage
// and, for upstream outages, a fixed UserMessage.
type APIError struct {
	Object          string `json:"object,omitempty"`
	Type            string `json:"type,omitempty"`
	ChargeID        string `json:"charge_id,omitempty"`
	Code            string `json:"code,omitempty"`
	DeclineCode     string `json:"decline_code,omitempty"`
	MerchantMessage string `json:"merchant_message,omitempty"`
	UserMessage     string `json:"user_message,omitempty"`
	Param           string `json:"param,omitempty"`
}

// Error type discriminants used by callers to classify failures.
const (
	ErrorTypeParameter      = "parameter_error"
	ErrorTypeAuthentication = "authentication_error"
)

func (e *APIError) Error() string {
	if e.MerchantMessage != "" {
		return "culqi: " + e.MerchantMessage
	}
	if e.Code != "" {
		return "culqi: " + e.Code
	}
	return "culqi: request failed"
}

// IsParameterError reports whether the upstream rejected a request parameter.
func (e *APIError) IsParameterError() bool {
	return e != nil && e.Type == ErrorTypeParameter
}

// IsAuthenticationError reports whether the credential was rejected.
func (e *APIError) IsAuthenticationError() bool {
	return e != nil && e.Type == ErrorTypeAuthentication
}

// duplicateEmailMessage is the literal message Culqi returns when a customer
// already exists for an email. Customer dedup depends on matching it exactly.
const duplicateEmailMessage = "Un cliente esta registrado actualmente con este email."

// isDuplicateEmailError matches the upstream duplicate-customer rejection.
// The literal lives only here so tests and callers never repeat it.
func isDuplicateEmailError(e *APIError) bool {
	return e != nil && e.MerchantMessage == duplicateEmailMessage
}

// transportError builds the synthesized error for failures with no
// interpretable response. Only MerchantMessage is populated.
func transportError(err error) *APIError {
	return &APIError{MerchantMessage: err.Error()}
}

// serverError wraps a raw non-JSON body returned during an upstream outage.
func serverError(body string) *APIError {
	return &APIError{
		MerchantMessage: body,
		UserMessage:     serverErrorUserMessage,
	}
}
