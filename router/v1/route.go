package v1

import (
	"github.com/go-chi/chi/v5"

	"github.com/andeslabs/culqi-gateway/handler"
)

// Routes registers the v1 API routes.
func Routes(r chi.Router, logsHandler *handler.LogsHandler, paymentsHandler *handler.PaymentsHandler) {
	r.Route("/logs", func(r chi.Router) {
		r.Get("/", logsHandler.ListLogs)
		r.Get("/stats", logsHandler.GetStats)
		r.Get("/tracking/{trackingId}", logsHandler.SearchByTrackingID)
		r.Get("/{id}", logsHandler.GetLog)
	})

	r.Route("/payments", func(r chi.Router) {
		r.Post("/sessions", paymentsHandler.InitiateSession)
		r.Post("/charges/{chargeId}/capture", paymentsHandler.CapturePayment)
		r.Post("/charges/{chargeId}/refund", paymentsHandler.RefundPayment)
	})
}
