// Package linkhandler serves the JSON link API: shortening, redirects, stats
// and health.
package linkhandler

import (
	"context"
	"errors"
	"net/http"
	"shortener/internal/links"
	"shortener/pkg/logger"
	"shortener/pkg/serrors"

	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

// MsgInternal is reported to clients instead of the message of unexpected errors.
const MsgInternal = "internal error"

// Deps holds dependencies used by the link API handlers.
type Deps struct {
	// Links is the link service handling all operations.
	Links links.Service
}

// Handler implements the link API routes.
type Handler struct {
	links links.Service
	sec   *SecHandler
}

// New returns a Handler. A nil sec disables bearer authentication.
func New(deps Deps, sec *SecHandler) *Handler {
	return &Handler{links: deps.Links, sec: sec}
}

// Register mounts the routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.Handle("POST /shorten", h.sec.Require(http.HandlerFunc(h.Shorten)))
	mux.HandleFunc("GET /stats/{code}", h.Stats)
	mux.HandleFunc("GET /ping", h.Ping)
	mux.HandleFunc("GET /{code}", h.Redirect)
}

// StatusForKind maps a semantic error kind to an HTTP status.
func StatusForKind(k serrors.Kind) int {
	switch k {
	case serrors.ErrBadRequest:
		return http.StatusBadRequest
	case serrors.ErrUnauthorized:
		return http.StatusUnauthorized
	case serrors.ErrForbidden:
		return http.StatusForbidden
	case serrors.ErrNotFound:
		return http.StatusNotFound
	case serrors.ErrConflict:
		return http.StatusConflict
	case serrors.ErrRateLimited:
		return http.StatusTooManyRequests
	case serrors.ErrTimeout:
		return http.StatusGatewayTimeout
	case serrors.ErrUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, e *jx.Encoder) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("error", func(e *jx.Encoder) {
			e.Str(msg)
		})
	})
	writeJSON(w, status, &e)
}

// writeError renders err as {"error": msg}. Errors without a client facing
// kind are logged and reported as MsgInternal.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := StatusForKind(serrors.KindOf(err))
	msg := serrors.MessageOf(err)
	if status == http.StatusInternalServerError || msg == "" {
		if errors.Is(err, context.DeadlineExceeded) {
			status, msg = http.StatusGatewayTimeout, "request timed out"
		} else if status == http.StatusInternalServerError {
			msg = MsgInternal
		} else {
			msg = http.StatusText(status)
		}
	}
	if status >= http.StatusInternalServerError {
		logger.Error(ctx, "request failed", zap.Int("status", status), zap.Error(err))
	} else {
		logger.Debug(ctx, "request rejected", zap.Int("status", status), zap.Error(err))
	}

	writeErrorMessage(w, status, msg)
}
