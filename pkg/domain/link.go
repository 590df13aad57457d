package domain

import "time"

// ShortCode is the public identifier of a shortened link, the path segment
// of its short URL.
type ShortCode string

// String returns the code as a plain string.
func (c ShortCode) String() string { return string(c) }

// Link maps a short code to the URL it redirects to.
type Link struct {
	// Code is the short code, unique across links.
	Code ShortCode `json:"code"`
	// URL is the original URL the code resolves to. It is unique as well:
	// shortening the same URL twice yields the same link.
	URL string `json:"url"`
	// Clicks counts how many times the link was resolved.
	Clicks int64 `json:"clicks"`
	// CreatedAt is when the link was first stored.
	CreatedAt time.Time `json:"createdAt"`
}
