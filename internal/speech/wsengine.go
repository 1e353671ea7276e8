package speech

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"
)

// wsMessage is the wire format a recognizer endpoint pushes over the socket.
type wsMessage struct {
	Text  string `json:"text"`
	Final bool   `json:"final"`
	Error string `json:"error,omitempty"`
}

// Recognizer error codes carried in wsMessage.Error.
const (
	wsErrPermissionDenied = "permission-denied"
	wsErrNoSpeech         = "no-speech"
)

// WSEngine streams transcript fragments from a websocket recognizer
// endpoint (a browser bridge or a local speech-to-text daemon).
type WSEngine struct {
	url    string
	dialer *websocket.Dialer

	mu   sync.Mutex
	conn *websocket.Conn
}

// NewWSEngine returns an engine that dials the given recognizer URL.
// An empty URL yields an unsupported engine.
func NewWSEngine(url string) *WSEngine {
	return &WSEngine{url: url, dialer: websocket.DefaultDialer}
}

func (e *WSEngine) Supported() bool { return e.url != "" }

// Start dials the recognizer and streams its messages as events until the
// connection closes. The returned channel is closed on any terminal
// condition, including Stop.
func (e *WSEngine) Start(ctx context.Context) (<-chan Event, error) {
	if !e.Supported() {
		return nil, ErrNotSupported
	}

	conn, _, err := e.dialer.DialContext(ctx, e.url, nil)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.conn = conn
	e.mu.Unlock()

	events := make(chan Event)
	go func() {
		defer close(events)
		defer conn.Close()
		for {
			var msg wsMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			if msg.Error != "" {
				events <- Event{Err: recognizerError(msg.Error)}
				continue
			}
			events <- Event{Fragment: Fragment{Text: msg.Text, Final: msg.Final}}
		}
	}()
	return events, nil
}

// Stop closes the recognizer connection, which terminates the event stream.
func (e *WSEngine) Stop() {
	e.mu.Lock()
	conn := e.conn
	e.conn = nil
	e.mu.Unlock()
	if conn != nil {
		conn.Close()
	}
}

func recognizerError(code string) error {
	switch code {
	case wsErrPermissionDenied:
		return ErrPermissionDenied
	case wsErrNoSpeech:
		return ErrNoSpeech
	default:
		return &EngineError{Code: code}
	}
}

// EngineError is a recognizer failure that is neither a permission nor a
// silence condition, typically a transport problem.
type EngineError struct {
	Code string
}

func (e *EngineError) Error() string {
	return "speech engine error: " + e.Code
}
