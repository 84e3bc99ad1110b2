package routes

import (
	"net/http"
	"time"

	"gestor/gestor/controllers"
	"gestor/gestor/middlewares"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter assembles the public API. timeout bounds a whole request,
// agent run included.
func NewRouter(chatCtrl *controllers.ChatController, healthCtrl *controllers.HealthController, timeout time.Duration) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewares.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CORS())
	r.Use(middleware.Timeout(timeout))

	HealthRoutes(r, healthCtrl)
	r.Mount("/chat", ChatRoutes(chatCtrl))
	return r
}
