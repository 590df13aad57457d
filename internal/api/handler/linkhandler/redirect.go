package linkhandler

import (
	"net/http"
	"shortener/pkg/domain"
	"shortener/pkg/logger"
	"time"

	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

// Redirect handles GET /{code} with a 302 to the original URL.
func (h *Handler) Redirect(w http.ResponseWriter, r *http.Request) {
	link, err := h.links.Resolve(r.Context(), domain.ShortCode(r.PathValue("code")))
	if err != nil {
		writeError(r.Context(), w, err)

		return
	}

	http.Redirect(w, r, link.URL, http.StatusFound)
}

// Stats handles GET /stats/{code}.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	link, err := h.links.Stats(r.Context(), domain.ShortCode(r.PathValue("code")))
	if err != nil {
		writeError(r.Context(), w, err)

		return
	}

	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("code", func(e *jx.Encoder) { e.Str(link.Code.String()) })
		e.Field("url", func(e *jx.Encoder) { e.Str(link.URL) })
		e.Field("short_url", func(e *jx.Encoder) { e.Str(h.links.ShortURL(link.Code)) })
		e.Field("clicks", func(e *jx.Encoder) { e.Int64(link.Clicks) })
		e.Field("created_at", func(e *jx.Encoder) { e.Str(link.CreatedAt.UTC().Format(time.RFC3339)) })
	})
	writeJSON(w, http.StatusOK, &e)
}

// Ping handles GET /ping: 200 when the storage answers, 500 otherwise.
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	if err := h.links.Ping(r.Context()); err != nil {
		logger.Error(r.Context(), "ping failed", zap.Error(err))
		writeErrorMessage(w, http.StatusInternalServerError, "storage is not reachable")

		return
	}

	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("status", func(e *jx.Encoder) { e.Str("ok") })
	})
	writeJSON(w, http.StatusOK, &e)
}
