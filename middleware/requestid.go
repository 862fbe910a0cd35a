package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// NewRandomID generates request IDs. It is a variable so tests can simulate
// entropy failures.
var NewRandomID = uuid.NewRandom

// RequestID ensures each request has a stable correlation ID.
// If the request already has X-Request-ID, it is preserved.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			if u, err := NewRandomID(); err == nil {
				id = u.String()
			} else {
				id = fmt.Sprintf("fallback-id-%d", time.Now().UnixNano())
			}
			r.Header.Set("X-Request-ID", id)
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}
