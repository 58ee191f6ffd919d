package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/cors"
)

// withMiddleware wraps the router with the standard middleware stack:
// panic recovery outermost, then CORS, then request logging.
func (s *Server) withMiddleware(next http.Handler) http.Handler {
	return s.recoverPanic(s.corsMiddleware(s.logRequests(next)))
}

// corsMiddleware allows the dashboard dev server to call the API cross-origin.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	})(next)
}

// logRequests logs one line per request at debug level. Websocket upgrades
// are skipped; they are long-lived and logged by the handler instead.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ws" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		next.ServeHTTP(w, r)

		s.app.Logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("elapsed", time.Since(start).Round(time.Microsecond).String()).
			Msg("Request handled")
	})
}

// recoverPanic converts handler panics into 500 responses.
func (s *Server) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.app.Logger.Error().
					Str("path", r.URL.Path).
					Str("panic", fmt.Sprintf("%v", rec)).
					Msg("Handler panicked")
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
