package routes

import (
	"gestor/gestor/controllers"

	"github.com/go-chi/chi/v5"
)

// HealthRoutes registers GET / and GET /health on r.
func HealthRoutes(r chi.Router, ctrl *controllers.HealthController) {
	r.Get("/", ctrl.Root)
	r.Get("/health", ctrl.HealthCheck)
}
