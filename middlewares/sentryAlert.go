package middlewares

import (
	"net/http"

	"github.com/getsentry/sentry-go"
)

// SentryTagMiddleware tags the request's Sentry scope with the route so
// swallowed tracking errors group by endpoint.
func SentryTagMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub := sentry.GetHubFromContext(r.Context())
		if hub != nil {
			hub.Scope().SetTag("endpoint", r.URL.Path)
		}
		next.ServeHTTP(w, r)
	})
}
