package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows the browser client origin to make credentialed requests. The
// session cookie only travels when AllowCredentials is set and the origin is
// listed explicitly.
func CORS(clientURL string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{clientURL},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})
	return c.Handler
}
