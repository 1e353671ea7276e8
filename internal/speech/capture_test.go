package speech

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedEngine replays a fixed sequence of events.
type scriptedEngine struct {
	supported bool
	script    []Event
	startErr  error

	mu      sync.Mutex
	events  chan Event
	started int
	stopped int
}

func (e *scriptedEngine) Supported() bool { return e.supported }

func (e *scriptedEngine) Start(ctx context.Context) (<-chan Event, error) {
	if e.startErr != nil {
		return nil, e.startErr
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.started++
	e.events = make(chan Event, len(e.script)+1)
	for _, ev := range e.script {
		e.events <- ev
	}
	return e.events, nil
}

func (e *scriptedEngine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopped++
	if e.events != nil {
		close(e.events)
		e.events = nil
	}
}

type recorder struct {
	mu       sync.Mutex
	finals   []string
	interims []string
	errs     []error
}

func (r *recorder) final(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finals = append(r.finals, s)
}

func (r *recorder) interim(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.interims = append(r.interims, s)
}

func (r *recorder) err(e error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, e)
}

func TestOnlyFinalFragmentsAreCommitted(t *testing.T) {
	engine := &scriptedEngine{
		supported: true,
		script: []Event{
			{Fragment: Fragment{Text: "I would", Final: false}},
			{Fragment: Fragment{Text: "I would use", Final: false}},
			{Fragment: Fragment{Text: "I would use a queue", Final: true}},
		},
	}
	rec := &recorder{}
	c := NewCapture(engine, rec.final, WithInterim(rec.interim))

	require.NoError(t, c.StartListening(context.Background()))
	c.StopListening()
	c.Wait()

	assert.Equal(t, []string{"I would use a queue"}, rec.finals)
	assert.Equal(t, []string{"I would", "I would use"}, rec.interims)
}

func TestStartWhileListeningIsNoop(t *testing.T) {
	engine := &scriptedEngine{supported: true}
	c := NewCapture(engine, func(string) {})

	require.NoError(t, c.StartListening(context.Background()))
	require.NoError(t, c.StartListening(context.Background()))
	assert.Equal(t, 1, engine.started)

	c.StopListening()
	c.Wait()
}

func TestStopWhenNotListeningIsNoop(t *testing.T) {
	engine := &scriptedEngine{supported: true}
	c := NewCapture(engine, func(string) {})

	c.StopListening()
	c.StopListening()
	assert.Equal(t, 0, engine.stopped)
	assert.False(t, c.Listening())
}

func TestUnsupportedEngine(t *testing.T) {
	c := NewCapture(&scriptedEngine{supported: false}, func(string) {})
	assert.ErrorIs(t, c.StartListening(context.Background()), ErrNotSupported)

	nilEngine := NewCapture(nil, func(string) {})
	assert.ErrorIs(t, nilEngine.StartListening(context.Background()), ErrNotSupported)
}

func TestEngineErrorsLeaveBufferUntouched(t *testing.T) {
	engine := &scriptedEngine{
		supported: true,
		script: []Event{
			{Err: ErrPermissionDenied},
			{Err: ErrNoSpeech},
		},
	}
	rec := &recorder{}
	c := NewCapture(engine, rec.final, WithErrorHandler(rec.err))

	require.NoError(t, c.StartListening(context.Background()))
	c.StopListening()
	c.Wait()

	assert.Empty(t, rec.finals)
	require.Len(t, rec.errs, 2)
	assert.ErrorIs(t, rec.errs[0], ErrPermissionDenied)
	assert.ErrorIs(t, rec.errs[1], ErrNoSpeech)
}

func TestHardTimeoutStopsListening(t *testing.T) {
	engine := &scriptedEngine{supported: true}
	c := NewCapture(engine, func(string) {}, WithTimeout(5*time.Millisecond))

	require.NoError(t, c.StartListening(context.Background()))

	deadline := time.After(time.Second)
	for c.Listening() {
		select {
		case <-deadline:
			t.Fatal("timeout did not stop the listening session")
		case <-time.After(time.Millisecond):
		}
	}
	c.Wait()
	assert.Equal(t, 1, engine.stopped)
}

func TestEngineClosingStreamEndsSession(t *testing.T) {
	engine := &scriptedEngine{
		supported: true,
		script:    []Event{{Fragment: Fragment{Text: "done", Final: true}}},
	}
	rec := &recorder{}
	c := NewCapture(engine, rec.final)

	require.NoError(t, c.StartListening(context.Background()))
	// The engine decides it is finished on its own.
	engine.Stop()
	c.Wait()

	assert.False(t, c.Listening())
	assert.Equal(t, []string{"done"}, rec.finals)
}
