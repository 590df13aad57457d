package storage

import (
	"context"
	"shortener/pkg/domain"
)

// LinkStorage persists links and their click counters.
type LinkStorage interface {
	// StoreLink inserts link unless a link for the same URL already exists, in
	// which case the existing row is returned unchanged. A different URL already
	// stored under link.Code yields an error of kind serrors.ErrConflict.
	StoreLink(ctx context.Context, link domain.Link) (*domain.Link, error)
	// LinkByCode fetches a link by its code. Returns nil when not found.
	LinkByCode(ctx context.Context, code domain.ShortCode) (*domain.Link, error)
	// IncrementClicks adds n to the click counter of code. It reports whether a
	// link with that code exists.
	IncrementClicks(ctx context.Context, code domain.ShortCode, n int64) (bool, error)
}
