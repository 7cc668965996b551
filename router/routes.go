package router

import (
	"github.com/go-chi/chi/v5"

	"github.com/andeslabs/culqi-gateway/handler"
	v1 "github.com/andeslabs/culqi-gateway/router/v1"
)

// Routes mounts the versioned API surface.
func Routes(r chi.Router, logsHandler *handler.LogsHandler, paymentsHandler *handler.PaymentsHandler) {
	r.Route("/v1", func(r chi.Router) {
		v1.Routes(r, logsHandler, paymentsHandler)
	})
}
