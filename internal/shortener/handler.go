// Package shortener turns one trigger of a URL input into one request to the
// shorten endpoint and renders the outcome into a display element.
package shortener

import (
	"context"
	"errors"
	"shortener/pkg/logger"
	"shortener/pkg/shortclient"

	"go.uber.org/zap"
)

// FallbackMessage is displayed when no message could be obtained from the
// server: the request failed or the response was unusable.
const FallbackMessage = "Error: Could not shorten URL"

// State is the lifecycle state of a single trigger.
type State int

const (
	// Idle means nothing was triggered yet.
	Idle State = iota
	// Requesting means the request is in flight.
	Requesting
	// Rendered means a short URL or a server-reported error message is displayed.
	Rendered
	// RenderedError means the fallback message is displayed.
	RenderedError
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Requesting:
		return "requesting"
	case Rendered:
		return "rendered"
	case RenderedError:
		return "rendered_error"
	default:
		return "unknown"
	}
}

// Outcome describes what a trigger ended up displaying.
type Outcome struct {
	// State is Rendered or RenderedError.
	State State
	// Text is what was written to the display.
	Text string
	// Err is the error behind a server-reported message or the fallback. It is
	// nil when a short URL was displayed.
	Err error
}

// Handler wires an input value to a shortclient.Client and a Display. It holds
// no per-request state so one Handler serves any number of concurrent
// triggers.
type Handler struct {
	client shortclient.Client
}

// New returns a Handler sending requests through client.
func New(client shortclient.Client) *Handler {
	return &Handler{client: client}
}

func report(display Display, state State) {
	if o, ok := display.(StateObserver); ok {
		o.SetState(state)
	}
}

// Handle sends input as is, waits for the response and renders it. The input
// is not validated; the server decides what is acceptable.
func (h *Handler) Handle(ctx context.Context, input string, display Display) Outcome {
	report(display, Requesting)

	out := h.shorten(ctx, input)
	display.SetText(out.Text)
	report(display, out.State)

	return out
}

// Trigger runs Handle on its own goroutine and returns immediately. Overlapping
// triggers on the same display each issue their own request.
func (h *Handler) Trigger(ctx context.Context, input string, display Display) {
	go h.Handle(ctx, input, display)
}

func (h *Handler) shorten(ctx context.Context, input string) Outcome {
	short, err := h.client.Shorten(ctx, input)
	if err == nil {
		return Outcome{State: Rendered, Text: short}
	}

	var serverErr *shortclient.ServerError
	if errors.As(err, &serverErr) {
		logger.Debug(ctx, "server rejected URL",
			zap.Int("status", serverErr.StatusCode),
			zap.String("message", serverErr.Message))

		return Outcome{State: Rendered, Text: serverErr.Message, Err: err}
	}

	logger.Error(ctx, "could not shorten URL", zap.String("input", input), zap.Error(err))

	return Outcome{State: RenderedError, Text: FallbackMessage, Err: err}
}
