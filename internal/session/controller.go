// Package session implements the interview session state machine: question
// sequencing, answer submission, the countdown timer and the conversation
// transcript that feeds the feedback stage.
package session

import (
	"context"
	"strings"
	"sync"
	"time"
)

// DefaultTotalQuestions is the fixed number of questions per session. The
// count does not scale with duration or difficulty.
const DefaultTotalQuestions = 8

// Status is the lifecycle state of a session. Ended is terminal.
type Status string

const (
	StatusNotStarted Status = "not-started"
	StatusActive     Status = "active"
	StatusEnded      Status = "ended"
)

// Question is an AI-generated interview question, read-only to the controller.
type Question struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Type string `json:"type"`
}

// Backend is the slice of the API gateway the controller depends on.
type Backend interface {
	CreateInterview(ctx context.Context, cfg Config) (string, error)
	NextQuestion(ctx context.Context, interviewID, transcript string) (*Question, error)
	RecordAnswer(ctx context.Context, interviewID, questionID, answer string) error
	EndInterview(ctx context.Context, interviewID string) error
}

// Record is the immutable snapshot of a completed session, the input to
// feedback generation. It reproduces the conversation log exactly.
type Record struct {
	InterviewID       string    `json:"interviewId"`
	Config            Config    `json:"config"`
	Entries           []Entry   `json:"conversation"`
	CompletedAt       time.Time `json:"completedAt"`
	QuestionsAnswered int       `json:"questionsAnswered"`
	TotalQuestions    int       `json:"totalQuestions"`
}

// Controller drives one interview session from configuration through the
// question/answer exchange to termination. States move NotStarted -> Active
// -> Ended with no way back. All methods are safe for use from the timer
// goroutine and the input loop; callbacks run to completion under the lock,
// so at most one event mutates the session at a time.
type Controller struct {
	backend Backend
	now     func() time.Time

	mu              sync.Mutex
	cfg             Config
	interviewID     string
	status          Status
	questionIndex   int
	totalQuestions  int
	timeRemaining   int
	log             *Log
	current         *Question
	pending         string
	awaitingFetch   bool
	record          *Record
	done            chan struct{}
}

// NewController returns a controller in the NotStarted state.
func NewController(backend Backend) *Controller {
	return &Controller{
		backend:        backend,
		now:            time.Now,
		status:         StatusNotStarted,
		totalQuestions: DefaultTotalQuestions,
		log:            NewLog(),
		done:           make(chan struct{}),
	}
}

// Start validates the configuration, registers the interview with the
// backend, pulls the first question and transitions to Active.
func (c *Controller) Start(ctx context.Context, cfg Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != StatusNotStarted {
		return ErrAlreadyStarted
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	id, err := c.backend.CreateInterview(ctx, cfg)
	if err != nil {
		return &QuestionFetchError{Err: err}
	}

	c.cfg = cfg
	c.interviewID = id
	c.timeRemaining = cfg.Duration * 60

	if err := c.fetchQuestion(ctx); err != nil {
		return err
	}
	c.status = StatusActive
	return nil
}

// fetchQuestion requests the next question and appends it to the log.
// The question entry and questionIndex advance together so the log always
// holds questionIndex+1 question entries. Caller holds the lock.
func (c *Controller) fetchQuestion(ctx context.Context) error {
	q, err := c.backend.NextQuestion(ctx, c.interviewID, c.log.Context())
	if err != nil {
		return &QuestionFetchError{Err: err}
	}
	if c.status == StatusEnded {
		// Session ended while the request was in flight; discard.
		return nil
	}
	if c.awaitingFetch {
		c.questionIndex++
		c.awaitingFetch = false
	}
	c.current = q
	c.log.append(EntryQuestion, q.Text, c.now())
	return nil
}

// SubmitAnswer records the pending answer and advances the session: one
// question, one answer, strictly alternating. After the final answer the
// session ends instead of requesting another question.
func (c *Controller) SubmitAnswer(ctx context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != StatusActive {
		return ErrSessionNotActive
	}
	if c.awaitingFetch {
		// An answer is already recorded; the next question fetch failed and
		// must be retried before another answer is accepted.
		return &QuestionFetchError{Err: ErrSessionNotActive}
	}
	answer := strings.TrimSpace(text)
	if answer == "" {
		return ErrEmptyAnswer
	}

	if err := c.backend.RecordAnswer(ctx, c.interviewID, c.current.ID, answer); err != nil {
		return &AnswerSubmitError{Err: err}
	}

	c.log.append(EntryAnswer, answer, c.now())
	c.pending = ""

	if c.questionIndex+1 < c.totalQuestions {
		c.awaitingFetch = true
		return c.fetchQuestion(ctx)
	}
	return c.end(ctx)
}

// RetryQuestion re-attempts a failed next-question fetch without recording
// the answer again. Valid only after SubmitAnswer returned QuestionFetchError.
func (c *Controller) RetryQuestion(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != StatusActive {
		return ErrSessionNotActive
	}
	if !c.awaitingFetch {
		return nil
	}
	return c.fetchQuestion(ctx)
}

// Tick consumes one elapsed second. When the clock reaches zero the session
// ends; an unsubmitted in-progress answer is discarded without warning.
// Calling Tick after the session ended is a no-op.
func (c *Controller) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != StatusActive {
		return
	}
	if c.timeRemaining > 0 {
		c.timeRemaining--
	}
	if c.timeRemaining == 0 {
		c.pending = ""
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = c.end(ctx)
	}
}

// End terminates the session. Idempotent: ending an already-ended session is
// a no-op. The record is built exactly once, before the backend is notified,
// so a SessionEndError never loses the transcript.
func (c *Controller) End(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status == StatusEnded {
		return nil
	}
	if c.status != StatusActive {
		return ErrSessionNotActive
	}
	return c.end(ctx)
}

// end performs the Active -> Ended transition. Caller holds the lock.
func (c *Controller) end(ctx context.Context) error {
	c.record = &Record{
		InterviewID:       c.interviewID,
		Config:            c.cfg,
		Entries:           c.log.Entries(),
		CompletedAt:       c.now(),
		QuestionsAnswered: c.log.AnswerCount(),
		TotalQuestions:    c.totalQuestions,
	}
	c.status = StatusEnded
	close(c.done)

	if err := c.backend.EndInterview(ctx, c.interviewID); err != nil {
		return &SessionEndError{Err: err}
	}
	return nil
}

// Done is closed when the session ends, whether by the final answer, the
// timer expiring, or an explicit End.
func (c *Controller) Done() <-chan struct{} { return c.done }

// Status returns the current lifecycle state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// InterviewID returns the backend id assigned at Start.
func (c *Controller) InterviewID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interviewID
}

// CurrentQuestion returns the question awaiting an answer, or nil.
func (c *Controller) CurrentQuestion() *Question {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// QuestionNumber returns the 1-based number of the current question.
func (c *Controller) QuestionNumber() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.questionIndex + 1
}

// TotalQuestions returns the fixed question count for this session.
func (c *Controller) TotalQuestions() int { return c.totalQuestions }

// TimeRemaining returns the seconds left on the session clock.
func (c *Controller) TimeRemaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timeRemaining
}

// Transcript returns a copy of the conversation log.
func (c *Controller) Transcript() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.log.Entries()
}

// Record returns the immutable snapshot built when the session ended, or nil
// while the session is still running.
func (c *Controller) Record() *Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.record
}

// SetPending replaces the in-progress answer buffer (typed input).
func (c *Controller) SetPending(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != StatusActive {
		return
	}
	c.pending = text
}

// AppendFinalTranscript appends a committed speech fragment to the
// in-progress answer buffer. Interim fragments never reach this path.
func (c *Controller) AppendFinalTranscript(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != StatusActive {
		return
	}
	if c.pending != "" && !strings.HasSuffix(c.pending, " ") {
		c.pending += " "
	}
	c.pending += text
}

// Pending returns the current in-progress answer buffer.
func (c *Controller) Pending() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}
