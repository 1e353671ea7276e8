// Package speech wraps an external speech-to-text engine behind a minimal
// capability surface. Engines push transcript fragments tagged final or
// interim; only final fragments are committed to the answer buffer.
package speech

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	// ErrNotSupported means no speech engine is available; the caller should
	// fall back to typed input.
	ErrNotSupported = errors.New("speech recognition is not supported")
	// ErrPermissionDenied means microphone access was refused.
	ErrPermissionDenied = errors.New("microphone permission denied")
	// ErrNoSpeech means the engine gave up without hearing anything.
	ErrNoSpeech = errors.New("no speech detected")
)

// DefaultListenTimeout bounds how long a single listening session may run
// before it is stopped automatically.
const DefaultListenTimeout = 30 * time.Second

// Fragment is one piece of transcribed speech. Interim fragments are shown
// to the user but never committed.
type Fragment struct {
	Text  string
	Final bool
}

// Event is either a fragment or an engine error, never both.
type Event struct {
	Fragment Fragment
	Err      error
}

// Engine is the external recognition capability. Start returns a stream of
// events; the stream is closed when recognition stops, whether by Stop, by
// the engine itself, or by an error.
type Engine interface {
	Supported() bool
	Start(ctx context.Context) (<-chan Event, error)
	Stop()
}

// Capture mediates between an Engine and the session's answer buffer.
// At most one listening session is active at a time.
type Capture struct {
	engine    Engine
	timeout   time.Duration
	onFinal   func(string)
	onInterim func(string)
	onError   func(error)

	mu        sync.Mutex
	listening bool
	deadline  *time.Timer
	wg        sync.WaitGroup
}

// Option configures a Capture.
type Option func(*Capture)

// WithTimeout overrides the hard listening timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Capture) { c.timeout = d }
}

// WithInterim registers a display callback for interim fragments.
func WithInterim(fn func(string)) Option {
	return func(c *Capture) { c.onInterim = fn }
}

// WithErrorHandler registers a callback for engine errors.
func WithErrorHandler(fn func(error)) Option {
	return func(c *Capture) { c.onError = fn }
}

// NewCapture builds a capture adapter. onFinal receives every final fragment
// and is the only path into the answer buffer, so engine errors and interim
// results can never dirty it.
func NewCapture(engine Engine, onFinal func(string), opts ...Option) *Capture {
	c := &Capture{
		engine:  engine,
		timeout: DefaultListenTimeout,
		onFinal: onFinal,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Supported reports whether a usable engine is present.
func (c *Capture) Supported() bool {
	return c.engine != nil && c.engine.Supported()
}

// Listening reports whether a listening session is active.
func (c *Capture) Listening() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listening
}

// StartListening begins a listening session. Calling it while already
// listening is a no-op. The session stops when the user stops it, the engine
// closes the stream, or the hard timeout elapses.
func (c *Capture) StartListening(ctx context.Context) error {
	if !c.Supported() {
		return ErrNotSupported
	}

	c.mu.Lock()
	if c.listening {
		c.mu.Unlock()
		return nil
	}
	c.listening = true
	c.mu.Unlock()

	events, err := c.engine.Start(ctx)
	if err != nil {
		c.mu.Lock()
		c.listening = false
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	c.deadline = time.AfterFunc(c.timeout, c.StopListening)
	c.mu.Unlock()

	c.wg.Add(1)
	go c.consume(events)
	return nil
}

// StopListening ends the current listening session. Safe no-op when idle.
func (c *Capture) StopListening() {
	c.mu.Lock()
	if !c.listening {
		c.mu.Unlock()
		return
	}
	c.listening = false
	if c.deadline != nil {
		c.deadline.Stop()
		c.deadline = nil
	}
	c.mu.Unlock()

	c.engine.Stop()
}

// Wait blocks until the consume loop for the last session has drained.
func (c *Capture) Wait() {
	c.wg.Wait()
}

func (c *Capture) consume(events <-chan Event) {
	defer c.wg.Done()
	for ev := range events {
		if ev.Err != nil {
			if c.onError != nil {
				c.onError(ev.Err)
			}
			continue
		}
		if ev.Fragment.Final {
			c.onFinal(ev.Fragment.Text)
		} else if c.onInterim != nil {
			c.onInterim(ev.Fragment.Text)
		}
	}
	// Engine closed the stream; make sure our state agrees.
	c.StopListening()
}
