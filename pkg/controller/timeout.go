package controller

import (
	"net/http"
	"shortener/pkg/logger"
	"time"

	"go.uber.org/zap"
)

// TimeoutBody is the response body sent when a request exceeds its timeout.
const TimeoutBody = `{"error":"request timed out"}`

// WithTimeout bounds the handling time of every request to d. A zero d
// disables the limit.
func WithTimeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}

		return http.TimeoutHandler(next, d, TimeoutBody)
	}
}

// WithRecover turns a panic in next into a 500 response and an error log.
// http.ErrAbortHandler is re-raised so the server aborts the response.
func WithRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			if p == http.ErrAbortHandler { //nolint: errorlint,err113
				panic(p)
			}

			logger.Error(r.Context(), "captured panic in handler", zap.Any("panic", p), zap.Stack("stack"))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"internal error"}`))
		}()

		next.ServeHTTP(w, r)
	})
}
