package middleware

import (
	"net/http"

	"shipvoid-backend/internal/config"
	"shipvoid-backend/internal/logging"

	"github.com/rs/cors"
)

// exposedHeaders lets browser clients read the export file name
var exposedHeaders = []string{"Content-Disposition"}

// NewCORS wraps the router for dashboards served from another origin
func NewCORS(cfg *config.Config) func(http.Handler) http.Handler {
	opts := corsOptions(cfg)
	logging.Component("CORS").Infof("Allowed origins: %v (credentials: %t)", opts.AllowedOrigins, opts.AllowCredentials)
	return cors.New(opts).Handler
}

// corsOptions only allows credentials for an explicit origin list. With a
// wildcard the bearer token has to be sent as a plain header.
func corsOptions(cfg *config.Config) cors.Options {
	origins := cfg.Server.CorsAllowedOrigins
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   cfg.Server.CorsAllowedMethods,
		AllowedHeaders:   cfg.Server.CorsAllowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: !allowsAnyOrigin(origins),
		MaxAge:           300,
	}
}

func allowsAnyOrigin(origins []string) bool {
	if len(origins) == 0 {
		return true
	}
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
