package middlewares

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS lets any origin call the API. The web client is hosted on a separate domain.
// The request Origin is echoed back, browsers refuse "*" on credentialed requests.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowOriginFunc:  func(*http.Request, string) bool { return true },
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           600,
	})
}
