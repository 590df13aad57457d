// Package uihandler serves the browser form: a URL input, a submit button and
// a result element rendered on the server.
package uihandler

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"shortener/internal/shortener"
	"shortener/pkg/logger"

	"go.uber.org/zap"
)

// ResultElementID is the id of the element the outcome is rendered into.
const ResultElementID = "result"

//go:embed templates/index.html
var templatesFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html")) //nolint: gochecknoglobals

// Deps holds dependencies used by the form handler.
type Deps struct {
	// Shortener sends the submitted URL to the shorten endpoint.
	Shortener *shortener.Handler
}

// Handler renders the form page.
type Handler struct {
	shortener *shortener.Handler
}

// New returns a Handler.
func New(deps Deps) *Handler {
	return &Handler{shortener: deps.Shortener}
}

// Register mounts the page on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("POST /{$}", h.Submit)
}

type page struct {
	Input  string
	Result *shortener.Element
}

// Index renders an empty form.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, page{Result: shortener.NewElement(ResultElementID)})
}

// Submit treats the posted url field as one trigger and renders its outcome.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)

		return
	}

	p := page{
		Input:  r.PostForm.Get("url"),
		Result: shortener.NewElement(ResultElementID),
	}
	h.shortener.Handle(r.Context(), p.Input, p.Result)

	h.render(w, r, p)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, p page) {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, p); err != nil {
		logger.Error(r.Context(), "could not render page", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
