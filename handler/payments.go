package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/andeslabs/culqi-gateway/infra/response"
	"github.com/andeslabs/culqi-gateway/payment"
)

// PaymentsHandler exposes the card payment adapter to hosts that drive
// payment sessions over HTTP.
type PaymentsHandler struct {
	service *payment.CardPaymentService
}

// NewPaymentsHandler creates a new payments handler.
func NewPaymentsHandler(service *payment.CardPaymentService) *PaymentsHandler {
	return &PaymentsHandler{service: service}
}

// initiateSessionRequest is the wire shape of a session initiation.
type initiateSessionRequest struct {
	Email            string            `json:"email"`
	CurrencyCode     string            `json:"currency_code"`
	Amount           int64             `json:"amount"`
	Customer         *payment.Customer `json:"customer"`
	ShippingAddress  *payment.Address  `json:"shipping_address"`
	IsRecurringOrder bool              `json:"is_recurring_order"`
}

// InitiateSession resolves the gateway customer for a new payment
// session and returns the opening session state.
func (h *PaymentsHandler) InitiateSession(w http.ResponseWriter, r *http.Request) {
	var req initiateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	session, err := h.service.InitiatePayment(r.Context(), payment.InitiateRequest{
		Email:            req.Email,
		CurrencyCode:     req.CurrencyCode,
		Amount:           req.Amount,
		Customer:         req.Customer,
		ShippingAddress:  req.ShippingAddress,
		IsRecurringOrder: req.IsRecurringOrder,
	})
	if err != nil {
		writeFault(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Payment session initiated", map[string]any{
		"customer_id":       session.SessionData.CustomerID,
		"customer_metadata": session.CustomerMetadata,
	})
}

// CapturePayment captures a previously authorized charge.
func (h *PaymentsHandler) CapturePayment(w http.ResponseWriter, r *http.Request) {
	chargeID := chi.URLParam(r, "chargeId")

	data, err := h.service.Capture(r.Context(), payment.PaymentData{ChargeID: chargeID})
	if err != nil {
		writeFault(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Charge captured", data)
}

// refundRequest is the wire shape of a refund.
type refundRequest struct {
	Amount int64 `json:"amount"`
}

// RefundPayment refunds part or all of a captured charge.
func (h *PaymentsHandler) RefundPayment(w http.ResponseWriter, r *http.Request) {
	chargeID := chi.URLParam(r, "chargeId")

	var req refundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Amount <= 0 {
		response.Error(w, http.StatusBadRequest, "Amount must be greater than zero", nil)
		return
	}

	data, err := h.service.Refund(r.Context(), payment.PaymentData{ChargeID: chargeID}, req.Amount)
	if err != nil {
		writeFault(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Charge refunded", data)
}

// writeFault maps adapter faults onto HTTP status codes.
func writeFault(w http.ResponseWriter, err error) {
	var fault *payment.Fault
	if errors.As(err, &fault) {
		status := http.StatusBadGateway
		switch fault.Kind {
		case payment.FaultInvalidData:
			status = http.StatusBadRequest
		case payment.FaultNotFound:
			status = http.StatusNotFound
		case payment.FaultUnauthorized:
			status = http.StatusUnauthorized
		}
		response.Error(w, status, fault.Message, nil)
		return
	}
	response.Error(w, http.StatusInternalServerError, "Payment operation failed", err)
}
