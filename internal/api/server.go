// Package api configures and exposes the HTTP server, routes,
// metrics, docs and related middleware for the URL shortener service.
package api

import (
	_ "embed"
	"fmt"
	"net/http"
	"shortener/internal/api/handler/linkhandler"
	"shortener/internal/api/handler/uihandler"
	"shortener/internal/config"
	"shortener/pkg/controller"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggest/swgui/v5emb"
)

// v1Spec contains the embedded OpenAPI specification of the link API.
//
//go:embed specs/v1.yaml
var v1Spec []byte

// Options holds configuration for the HTTP server and its dependencies.
// It is typically created from a config.Config via NewOptions.
type Options struct {
	// SecHandlerOptions configures bearer authentication of POST /shorten.
	SecHandlerOptions *linkhandler.SecHandlerOptions
	// CORSOptions configures the allowed origins.
	CORSOptions controller.CORSOptions

	// Addr is the TCP address the server listens on, e.g. ":8080".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// RequestTimeout bounds the handling of a single request. Zero disables it.
	RequestTimeout time.Duration
	// MaxHeaderBytes controls the maximum number of bytes the server
	// will read parsing the request header's keys and values, including the request line.
	MaxHeaderBytes int
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
}

// NewOptions constructs an Options value from the provided application configuration.
func NewOptions(cfg *config.Config) Options {
	return Options{
		SecHandlerOptions: linkhandler.NewSecHandlerOptions(cfg),
		CORSOptions:       controller.CORSOptions{AllowedOrigins: cfg.HTTP.AllowedOrigins},

		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,
	}
}

// Deps are the handlers' collaborators.
type Deps struct {
	linkhandler.Deps
	UI uihandler.Deps
}

// NewServer wires up and returns a configured *http.Server using the provided Options.
// It sets up:
// - Prometheus metrics endpoint (MetricsPath)
// - Embedded OpenAPI spec and Swagger UI
// - link API routes and the form page
// - pprof endpoints for profiling
// API routes are bounded by the request timeout; pprof is not. Everything is
// wrapped with panic recovery, CORS and the access log.
func NewServer(deps Deps, opts Options) (*http.Server, error) {
	mux := http.NewServeMux()

	// prometheus metrics server
	mux.Handle("GET "+opts.MetricsPath, promhttp.Handler())

	// specs file
	mux.HandleFunc("GET /specs/v1.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(v1Spec)
	})
	// swagger playground
	mux.Handle("/docs/", v5emb.New(
		"URL Shortener",
		"/specs/v1.yaml",
		"/docs/",
	))

	// link api
	secHandler, err := linkhandler.NewSecHandler(opts.SecHandlerOptions)
	if err != nil {
		return nil, fmt.Errorf("could not create sec handler: %w", err)
	}
	linkhandler.New(deps.Deps, secHandler).Register(mux)

	// form page
	if deps.UI.Shortener != nil {
		uihandler.New(deps.UI).Register(mux)
	}

	// pprof is served outside the request timeout
	root := http.NewServeMux()
	root.Handle("/debug/pprof/", controller.PprofMux())
	root.Handle("/", controller.WithTimeout(opts.RequestTimeout)(mux))

	var handler http.Handler = root
	handler = controller.WithRecover(handler)
	handler = controller.WithCORS(opts.CORSOptions)(handler)
	handler = controller.WithLogger(handler)

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
	}, nil
}
