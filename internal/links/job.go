package links

import (
	"shortener/pkg/domain"

	"github.com/riverqueue/river"
)

// ClickArgs is the river job recording one resolution of a short code.
type ClickArgs struct {
	// Code is the resolved short code.
	Code domain.ShortCode `json:"code"`
}

// Kind returns the River job kind used to register and dispatch the click worker.
func (ClickArgs) Kind() string { return "RecordClickJob" }

// InsertOpts keeps click jobs on their own queue so a redirect burst does not
// delay other work, and retries them a few times before giving up.
func (ClickArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		Queue:       ClickQueue,
		MaxAttempts: 5,
	}
}

// ClickQueue is the river queue click jobs are inserted into.
const ClickQueue = "clicks"
