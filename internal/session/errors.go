package session

import (
	"errors"
	"fmt"
)

// ErrEmptyAnswer blocks submission of blank answers; no state changes.
var ErrEmptyAnswer = errors.New("answer is empty")

// ErrSessionNotActive is returned for operations that require an active session.
var ErrSessionNotActive = errors.New("session is not active")

// ErrAlreadyStarted is returned when Start is called twice on one controller.
var ErrAlreadyStarted = errors.New("session already started")

// ValidationError reports a bad or missing configuration field. The session
// cannot start until the user corrects the input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "invalid config: " + e.Field + ": " + e.Message
}

// QuestionFetchError wraps a backend failure while requesting a question.
// Recoverable: the session stays active and the caller may retry manually.
type QuestionFetchError struct {
	Err error
}

func (e *QuestionFetchError) Error() string {
	return fmt.Sprintf("failed to fetch question: %v", e.Err)
}

func (e *QuestionFetchError) Unwrap() error { return e.Err }

// AnswerSubmitError wraps a backend failure while recording an answer.
// The conversation log is left unchanged so the user may retry.
type AnswerSubmitError struct {
	Err error
}

func (e *AnswerSubmitError) Error() string {
	return fmt.Sprintf("failed to submit answer: %v", e.Err)
}

func (e *AnswerSubmitError) Unwrap() error { return e.Err }

// SessionEndError wraps a backend failure while ending the session. The
// local session is still Ended and the record has been built; only the
// backend notification failed.
type SessionEndError struct {
	Err error
}

func (e *SessionEndError) Error() string {
	return fmt.Sprintf("failed to end session: %v", e.Err)
}

func (e *SessionEndError) Unwrap() error { return e.Err }
