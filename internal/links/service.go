// Package links implements the link service behind the HTTP API: it derives
// short codes, stores and caches links, resolves codes and schedules click
// recording.
package links

import (
	"context"
	"fmt"
	"shortener/internal/config"
	"shortener/pkg/cache"
	"shortener/pkg/domain"
	"shortener/pkg/logger"
	"shortener/pkg/metrics"
	"shortener/pkg/serrors"
	"shortener/pkg/storage"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
)

// Messages returned to API clients.
const (
	MsgMissingURL = "Missing URL"
	MsgInvalidURL = "invalid url"
	MsgNotFound   = "Not found"
	MsgURLTooLong = "url is too long"
)

// MaxURLLength is the longest URL, in bytes, that can be shortened. It keeps
// original_url within the size limit of its unique index.
const MaxURLLength = 2048

// Options configure how links are built.
type Options struct {
	// PublicURL is the base of generated short URLs, e.g. http://localhost:8080.
	PublicURL string
	// NormalizeURLs makes equivalent spellings of a URL share one code. When
	// false the code is derived from the URL exactly as submitted.
	NormalizeURLs bool
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		PublicURL:     cfg.Links.PublicURL,
		NormalizeURLs: cfg.Links.NormalizeURLs,
	}
}

// Deps are the collaborators of the service.
type Deps struct {
	// Storage persists links and enqueues click jobs.
	Storage storage.Storage
	// Cache is consulted before Storage when resolving. Defaults to cache.Noop.
	Cache cache.LinkCache
	// Instruments records metrics. Defaults to no-op instruments.
	Instruments *metrics.Instruments
}

// service is the concrete implementation of the Service interface.
type service struct {
	options   Options
	storage   storage.Storage
	cache     cache.LinkCache
	ins       *metrics.Instruments
	publicURL string
}

// New creates a Service backed by deps and configured with options.
func New(deps Deps, options Options) (Service, error) {
	if deps.Storage == nil {
		return nil, fmt.Errorf("links: storage is required")
	}
	if deps.Cache == nil {
		deps.Cache = cache.Noop{}
	}
	if deps.Instruments == nil {
		ins, err := metrics.NewInstruments(noop.NewMeterProvider())
		if err != nil {
			return nil, fmt.Errorf("could not create instruments: %w", err)
		}
		deps.Instruments = ins
	}

	return &service{
		options:   options,
		storage:   deps.Storage,
		cache:     deps.Cache,
		ins:       deps.Instruments,
		publicURL: strings.TrimRight(options.PublicURL, "/"),
	}, nil
}

// Shorten validates URL, derives its code and stores the link. Storing the
// same URL again returns the existing link.
func (s *service) Shorten(ctx context.Context, URL string) (*domain.Link, error) {
	if URL == "" {
		return nil, serrors.With(serrors.ErrBadRequest, MsgMissingURL)
	}
	if len(URL) > MaxURLLength {
		return nil, serrors.With(serrors.ErrBadRequest, MsgURLTooLong)
	}
	if err := ValidateURL(URL); err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, MsgInvalidURL)
	}
	if s.options.NormalizeURLs {
		normalized, err := NormalizeURL(URL)
		if err != nil {
			return nil, serrors.Wrap(serrors.ErrBadRequest, err, MsgInvalidURL)
		}
		if len(normalized) > MaxURLLength {
			return nil, serrors.With(serrors.ErrBadRequest, MsgURLTooLong)
		}
		URL = normalized
	}

	link, err := s.storage.StoreLink(ctx, domain.Link{Code: Code(URL), URL: URL})
	if err != nil {
		return nil, fmt.Errorf("could not store link: %w", err)
	}

	s.cache.Set(ctx, *link)
	s.ins.LinksShortened.Add(ctx, 1)
	logger.Debug(ctx, "link shortened", zap.String("code", link.Code.String()), zap.String("url", link.URL))

	return link, nil
}

// Resolve looks code up in the cache, then in storage, and enqueues a click
// job. Failing to enqueue does not fail the redirect.
func (s *service) Resolve(ctx context.Context, code domain.ShortCode) (*domain.Link, error) {
	start := time.Now()

	link := s.cache.Get(ctx, code)
	cached := link != nil
	if !cached {
		var err error
		link, err = s.storage.LinkByCode(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("could not get link: %w", err)
		}
		if link == nil {
			return nil, serrors.With(serrors.ErrNotFound, MsgNotFound)
		}
		s.cache.Set(ctx, *link)
	}

	if _, err := s.storage.AddJob(ctx, ClickArgs{Code: code}, nil); err != nil {
		logger.Warn(ctx, "could not enqueue click job", zap.String("code", code.String()), zap.Error(err))
	}

	s.ins.Redirects.Add(ctx, 1, metric.WithAttributes(attribute.Bool("cached", cached)))
	s.ins.ResolveDuration.Record(ctx, time.Since(start).Seconds())

	return link, nil
}

// Stats returns the stored link for code. It bypasses the cache so the click
// count is current.
func (s *service) Stats(ctx context.Context, code domain.ShortCode) (*domain.Link, error) {
	link, err := s.storage.LinkByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("could not get link stats: %w", err)
	}
	if link == nil {
		return nil, serrors.With(serrors.ErrNotFound, MsgNotFound)
	}

	return link, nil
}

// ShortURL renders <PublicURL>/<code>.
func (s *service) ShortURL(code domain.ShortCode) string {
	return s.publicURL + "/" + code.String()
}

// Ping reports whether the storage answers.
func (s *service) Ping(ctx context.Context) error {
	if err := s.storage.Ping(ctx); err != nil {
		return serrors.Wrap(serrors.ErrUnavailable, err, "storage is not reachable")
	}

	return nil
}
