package links

import (
	"context"
	"shortener/pkg/domain"
)

// Service shortens URLs and resolves short codes back to them.
//
//go:generate mockgen -package mocklinks -source=interface.go -destination=mock/mocklinks.go *
type Service interface {
	// Shorten validates URL and returns its link, creating it on first use.
	Shorten(ctx context.Context, URL string) (*domain.Link, error)
	// Resolve returns the link for code and records a click in the background.
	Resolve(ctx context.Context, code domain.ShortCode) (*domain.Link, error)
	// Stats returns the stored link for code including its click count.
	Stats(ctx context.Context, code domain.ShortCode) (*domain.Link, error)
	// ShortURL renders the public short URL of code.
	ShortURL(code domain.ShortCode) string
	// Ping reports whether the storage answers.
	Ping(ctx context.Context) error
}
