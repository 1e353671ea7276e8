// Package gateway is the thin client for the MockMate backend REST API.
// It translates session-controller intents into HTTP calls and normalizes
// every result into a value or an error, never both.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/polishettivamshi/mockmate-interview-simulator/internal/session"
)

// APIError is a backend rejection surfaced verbatim to the caller.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
}

// FeedbackReport is the scored evaluation of a completed interview.
type FeedbackReport struct {
	InterviewID        string             `json:"interviewId"`
	OverallScore       float64            `json:"overallScore"`
	TechnicalScore     float64            `json:"technicalScore"`
	CommunicationScore float64            `json:"communicationScore"`
	ConfidenceScore    float64            `json:"confidenceScore"`
	Strengths          []string           `json:"strengths"`
	Improvements       []string           `json:"improvements"`
	DetailedFeedback   string             `json:"detailedFeedback"`
	Suggestions        string             `json:"suggestions"`
	QuestionAnalysis   []QuestionAnalysis `json:"questionAnalysis"`
	GeneratedAt        time.Time          `json:"generatedAt"`
}

// QuestionAnalysis is the per-question breakdown inside a feedback report.
type QuestionAnalysis struct {
	QuestionID string  `json:"questionId"`
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	Score      float64 `json:"score"`
	Feedback   string  `json:"feedback"`
}

// Client talks to the backend. It is stateless apart from the bearer token:
// once obtained via Login the token rides on every subsequent request.
// A missing token is not an error at this layer; the backend rejects
// unauthenticated calls itself.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// NewClient builds a gateway client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken installs the bearer token used on subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the current bearer token, empty when not logged in.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode, Code: "unknown"}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	body := map[string]string{"username": username, "email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/api/v1/auth/register", body, nil)
}

// Login authenticates and installs the returned token on the client.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{"username": username, "password": password}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", body, &resp); err != nil {
		return "", err
	}
	c.SetToken(resp.Token)
	return resp.Token, nil
}

// CreateInterview registers a new interview session and returns its id.
func (c *Client) CreateInterview(ctx context.Context, cfg session.Config) (string, error) {
	var resp struct {
		ID        string `json:"id"`
		SessionID string `json:"sessionId"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/interviews", cfg, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// NextQuestion asks the backend to generate the next question given the
// conversation so far.
func (c *Client) NextQuestion(ctx context.Context, interviewID, transcript string) (*session.Question, error) {
	body := map[string]string{"context": transcript}
	var q session.Question
	path := fmt.Sprintf("/api/v1/interviews/%s/question", interviewID)
	if err := c.do(ctx, http.MethodPost, path, body, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// RecordAnswer submits an answer to the current question.
func (c *Client) RecordAnswer(ctx context.Context, interviewID, questionID, answer string) error {
	body := map[string]string{"questionId": questionID, "answer": answer}
	path := fmt.Sprintf("/api/v1/interviews/%s/answer", interviewID)
	return c.do(ctx, http.MethodPost, path, body, nil)
}

// EndInterview marks the interview completed.
func (c *Client) EndInterview(ctx context.Context, interviewID string) error {
	path := fmt.Sprintf("/api/v1/interviews/%s/end", interviewID)
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

// InterviewSummary is one row of the user's interview history.
type InterviewSummary struct {
	ID            string     `json:"id"`
	Role          string     `json:"role"`
	InterviewType string     `json:"interviewType"`
	Difficulty    int        `json:"difficulty"`
	Duration      int        `json:"duration"`
	Status        string     `json:"status"`
	StartedAt     time.Time  `json:"startedAt"`
	CompletedAt   *time.Time `json:"completedAt"`
}

// History lists the user's past interviews, newest first. A limit of zero
// returns everything.
func (c *Client) History(ctx context.Context, limit int) ([]InterviewSummary, error) {
	path := "/api/v1/interviews"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var interviews []InterviewSummary
	if err := c.do(ctx, http.MethodGet, path, nil, &interviews); err != nil {
		return nil, err
	}
	return interviews, nil
}

// Feedback fetches (and if necessary triggers generation of) the scored
// feedback report for a completed interview.
func (c *Client) Feedback(ctx context.Context, interviewID string) (*FeedbackReport, error) {
	var report FeedbackReport
	if err := c.do(ctx, http.MethodGet, "/api/v1/feedback/"+interviewID, nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
