// Package storage defines the persistence interfaces the link service relies
// on, so that backends such as PostgreSQL can be swapped or mocked.
//
//go:generate mockgen -package mockstorage -source=interface.go -destination=mock/mockstorage.go *
package storage

import "context"

// AllStorage is a composite interface that includes all domain-specific storage
// capabilities required by the application.
type AllStorage interface {
	LinkStorage
	JobStorage
}

// Storage is a storage handle with lifecycle management on top of the domain
// capabilities.
type Storage interface {
	AllStorage

	// Ping checks that the backend answers.
	Ping(ctx context.Context) error
	// Close releases any resources held by the storage implementation (e.g. the
	// underlying connection pool). After Close, the instance should not be used.
	Close() error
}
