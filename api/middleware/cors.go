package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

var defaultCORSOrigins = []string{
	"http://localhost:3000", // local dev
	"https://app.transportly.dev",
}

// CORS returns middleware that applies the API's allowed origin policy.
// Configured origins replace the defaults when provided.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = defaultCORSOrigins
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-TL-Token", "X-Requested-With"},
		ExposedHeaders:   []string{"X-TL-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
