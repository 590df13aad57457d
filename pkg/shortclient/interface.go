// Package shortclient defines the client side of the shorten API: the
// interface the Shorten-Request handler calls and the error types that let
// it tell a server-reported message apart from a transport or decoding
// failure.
package shortclient

import (
	"context"
	"fmt"
	"net/http"
	"shortener/pkg/serrors"
)

// ErrMalformedResponse is the kind of errors returned when the server answered
// but the body carries neither a usable short_url nor an error message.
var ErrMalformedResponse = serrors.NewKind("MALFORMED_RESPONSE")

// ServerError is a logical error reported by the shorten endpoint through the
// "error" field of its response body.
type ServerError struct {
	StatusCode int    // StatusCode is the HTTP status of the response.
	Message    string // Message is the server provided text, shown to the user verbatim.
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (status %d): %s", e.StatusCode, e.Message)
}

// KindForStatus maps an HTTP status of an error response to a semantic kind.
func KindForStatus(status int) serrors.Kind {
	switch {
	case status == http.StatusUnauthorized:
		return serrors.ErrUnauthorized
	case status == http.StatusForbidden:
		return serrors.ErrForbidden
	case status == http.StatusNotFound:
		return serrors.ErrNotFound
	case status == http.StatusConflict:
		return serrors.ErrConflict
	case status == http.StatusTooManyRequests:
		return serrors.ErrRateLimited
	case status >= http.StatusInternalServerError:
		return serrors.ErrInternal
	default:
		return serrors.ErrBadRequest
	}
}

// Client shortens URLs through a remote shorten endpoint.
//
//go:generate mockgen -package mockshortclient -source=interface.go -destination=mock/mockshortclient.go *
type Client interface {
	// Shorten sends URL, unvalidated, to the endpoint and returns the short URL.
	// Server-reported failures are returned as *ServerError, a response without
	// usable fields as ErrMalformedResponse and transport failures as
	// serrors.ErrUnavailable.
	Shorten(ctx context.Context, URL string) (string, error)
}
