package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

var (
	corsMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH", "HEAD"}
	corsHeaders = []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin", "Cache-Control", "Pragma", "X-API-Key"}
)

// CORS answers preflight requests for the allowed origins. An allow-list
// containing "*" accepts any origin. Credentials are never allowed.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   corsMethods,
		AllowedHeaders:   corsHeaders,
		AllowCredentials: false,
		MaxAge:           600,
	})
}
