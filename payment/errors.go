package payment

import (
	"fmt"

	"github.com/andeslabs/culqi-gateway/culqi"
)

// FaultKind classifies adapter failures into the platform's error
// reporting categories.
type FaultKind string

const (
	FaultNotFound        FaultKind = "not_found"
	FaultUnauthorized    FaultKind = "unauthorized"
	FaultInvalidData     FaultKind = "invalid_data"
	FaultUnexpectedState FaultKind = "unexpected_state"
)

// Fault is the error the adapter raises at the platform boundary. Inside
// the adapter, gateway failures travel as *culqi.APIError values; they
// become Faults only where the platform contract requires a raised error.
type Fault struct {
	Kind    FaultKind
	Message string
	Code    string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// NewFault builds a fault of the given kind.
func NewFault(kind FaultKind, message string) *Fault {
	return &Fault{Kind: kind, Message: message}
}

func invalidData(message string) *Fault {
	return NewFault(FaultInvalidData, message)
}

// chargeFault classifies a gateway error from a charge operation. Unknown
// error types become an unexpected-state fault carrying the charge id.
func chargeFault(apiErr *culqi.APIError, action, chargeID string) *Fault {
	if apiErr.IsParameterError() {
		return NewFault(FaultNotFound, "Charge not found")
	}
	if apiErr.IsAuthenticationError() {
		return NewFault(FaultUnauthorized, "Invalid Culqi API Key")
	}
	return NewFault(FaultUnexpectedState, fmt.Sprintf("Error %s charge: %s", action, chargeID))
}

// refundFault classifies a gateway error from a refund creation, which
// distinguishes parameter errors by the offending param.
func refundFault(apiErr *culqi.APIError, chargeID string) *Fault {
	if apiErr.IsParameterError() {
		switch apiErr.Param {
		case "charge_id":
			return NewFault(FaultNotFound, "Charge not found")
		case "amount":
			return NewFault(FaultInvalidData, "Amount cannot be greater than the remaining amount")
		}
	}
	if apiErr.IsAuthenticationError() {
		return NewFault(FaultUnauthorized, "Invalid Culqi API Key")
	}
	return NewFault(FaultUnexpectedState, fmt.Sprintf("Error refunding charge: %s", chargeID))
}
