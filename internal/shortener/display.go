package shortener

import (
	"fmt"
	"io"
	"sync"
)

// Display is the element a handler renders its outcome into. SetText replaces
// whatever the element showed before.
type Display interface {
	SetText(text string)
}

// StateObserver is implemented by displays that also track the handler state
// for the trigger currently rendering into them.
type StateObserver interface {
	SetState(state State)
}

// Element is an in-memory text node. It backs the result element of the HTML
// page and is safe for concurrent use: overlapping triggers race on it and the
// last write wins.
type Element struct {
	// ID is the identifier the element is rendered under, e.g. "result".
	ID string

	mu    sync.RWMutex
	text  string
	state State
}

// NewElement returns an empty element in the Idle state.
func NewElement(id string) *Element {
	return &Element{ID: id}
}

// SetText implements Display.
func (e *Element) SetText(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.text = text
}

// SetState implements StateObserver.
func (e *Element) SetState(state State) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = state
}

// Text returns the current text of the element.
func (e *Element) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.text
}

// State returns the state last reported for the element.
func (e *Element) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.state
}

// WriterDisplay renders each outcome as one line on an io.Writer, e.g. the
// terminal.
type WriterDisplay struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterDisplay returns a display writing to w.
func NewWriterDisplay(w io.Writer) *WriterDisplay {
	return &WriterDisplay{w: w}
}

// SetText implements Display.
func (d *WriterDisplay) SetText(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, _ = fmt.Fprintln(d.w, text)
}

var (
	_ Display       = (*Element)(nil)
	_ StateObserver = (*Element)(nil)
	_ Display       = (*WriterDisplay)(nil)
)
