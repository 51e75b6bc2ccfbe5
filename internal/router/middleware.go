package router

import (
	"log/slog"
	"net/http"
)

// Recovery converts handler panics into a JSON 500 response.
func Recovery(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered",
						"error", err,
						"path", r.URL.Path,
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte(`{"error":{"code":"internal","message":"An internal error occurred. Please try again later."}}`)) //nolint:errcheck
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
