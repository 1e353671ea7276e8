package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polishettivamshi/mockmate-interview-simulator/internal/feedback"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/handlers"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/llm/mock"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/models"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/prompts"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/repositories"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/routers"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/testhelpers"
)

const jwtSecret = "test-secret"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db := testhelpers.SetupTestDB(t)
	pm, err := prompts.NewManager()
	require.NoError(t, err)

	provider := mock.New()
	users := &repositories.UserRepository{DB: db}
	interviews := &repositories.InterviewRepository{DB: db}
	feedbacks := &repositories.FeedbackRepository{DB: db}
	generator := feedback.NewGenerator(provider, pm, interviews, feedbacks, nil)

	router := chi.NewRouter()
	routers.AuthRoutes(router, handlers.NewAuthHandler(users, jwtSecret), jwtSecret)
	routers.InterviewRoutes(router, handlers.NewInterviewHandler(interviews, provider, pm, nil), jwtSecret)
	routers.FeedbackRoutes(router, handlers.NewFeedbackHandler(interviews, feedbacks, generator), jwtSecret)
	routers.HealthRoutes(router, handlers.NewHealthHandler(db, provider, pm, nil))

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

type client struct {
	t      *testing.T
	base   string
	token  string
	status int
}

func (c *client) do(method, path string, body any, out any) {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, c.base+path, &buf)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	c.status = resp.StatusCode
	if out != nil {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
}

func registeredClient(t *testing.T, server *httptest.Server) *client {
	t.Helper()
	c := &client{t: t, base: server.URL}

	c.do(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "password123",
	}, nil)
	require.Equal(t, http.StatusCreated, c.status)

	var login struct {
		Token string `json:"token"`
	}
	c.do(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": "alice", "password": "password123",
	}, &login)
	require.Equal(t, http.StatusOK, c.status)
	require.NotEmpty(t, login.Token)

	c.token = login.Token
	return c
}

func createInterview(t *testing.T, c *client) string {
	t.Helper()
	var created models.CreateInterviewResponse
	c.do(http.MethodPost, "/api/v1/interviews", map[string]any{
		"role": "Backend Engineer", "interviewType": "technical",
		"difficulty": 2, "duration": 30, "inputMethod": "text",
	}, &created)
	require.Equal(t, http.StatusCreated, c.status)
	require.NotEmpty(t, created.ID)
	return created.ID
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	server := newTestServer(t)
	c := registeredClient(t, server)

	c.do(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"username": "alice", "email": "other@example.com", "password": "password123",
	}, nil)
	assert.Equal(t, http.StatusConflict, c.status)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	server := newTestServer(t)
	c := registeredClient(t, server)
	c.token = ""

	c.do(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": "alice", "password": "wrong-password",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, c.status)
}

func TestMeReturnsProfile(t *testing.T) {
	server := newTestServer(t)
	c := registeredClient(t, server)

	var me struct {
		Username string `json:"username"`
	}
	c.do(http.MethodGet, "/api/v1/auth/me", nil, &me)
	assert.Equal(t, http.StatusOK, c.status)
	assert.Equal(t, "alice", me.Username)
}

func TestInterviewEndpointsRequireAuth(t *testing.T) {
	server := newTestServer(t)
	c := &client{t: t, base: server.URL}

	c.do(http.MethodGet, "/api/v1/interviews", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, c.status)
}

func TestCreateInterviewValidation(t *testing.T) {
	server := newTestServer(t)
	c := registeredClient(t, server)

	var errResp models.ErrorResponse
	c.do(http.MethodPost, "/api/v1/interviews", map[string]any{
		"interviewType": "technical", "difficulty": 2, "duration": 30,
	}, &errResp)
	assert.Equal(t, http.StatusBadRequest, c.status)
	assert.Equal(t, "missing_role", errResp.Code)

	c.do(http.MethodPost, "/api/v1/interviews", map[string]any{
		"role": "Engineer", "interviewType": "technical", "difficulty": 9, "duration": 30,
	}, &errResp)
	assert.Equal(t, http.StatusBadRequest, c.status)
	assert.Equal(t, "invalid_difficulty", errResp.Code)
}

func TestFullInterviewFlow(t *testing.T) {
	server := newTestServer(t)
	c := registeredClient(t, server)
	id := createInterview(t, c)

	// Ask a question, answer it, repeat once more.
	transcript := ""
	for i := 1; i <= 2; i++ {
		var q models.QuestionResponse
		c.do(http.MethodPost, fmt.Sprintf("/api/v1/interviews/%s/question", id),
			map[string]string{"context": transcript}, &q)
		require.Equal(t, http.StatusOK, c.status)
		assert.Equal(t, i, q.Order)
		assert.NotEmpty(t, q.Text)

		var ack models.AckResponse
		c.do(http.MethodPost, fmt.Sprintf("/api/v1/interviews/%s/answer", id),
			map[string]any{"questionId": q.ID, "answer": "A considered answer."}, &ack)
		require.Equal(t, http.StatusOK, c.status)
		assert.True(t, ack.Success)

		transcript += fmt.Sprintf("Q: %s\nA: A considered answer.\n", q.Text)
	}

	// Transcript endpoint reflects both questions.
	var questions []models.Question
	c.do(http.MethodGet, fmt.Sprintf("/api/v1/interviews/%s/questions", id), nil, &questions)
	require.Equal(t, http.StatusOK, c.status)
	require.Len(t, questions, 2)
	assert.True(t, questions[0].IsAnswered())

	// End the interview.
	var ack models.AckResponse
	c.do(http.MethodPost, fmt.Sprintf("/api/v1/interviews/%s/end", id), nil, &ack)
	require.Equal(t, http.StatusOK, c.status)

	// A second end is rejected.
	c.do(http.MethodPost, fmt.Sprintf("/api/v1/interviews/%s/end", id), nil, nil)
	assert.Equal(t, http.StatusBadRequest, c.status)

	// Questions after the end are rejected too.
	c.do(http.MethodPost, fmt.Sprintf("/api/v1/interviews/%s/question", id),
		map[string]string{"context": transcript}, nil)
	assert.Equal(t, http.StatusBadRequest, c.status)

	// Feedback is generated on first access.
	var report models.FeedbackResponse
	c.do(http.MethodGet, "/api/v1/feedback/"+id, nil, &report)
	require.Equal(t, http.StatusOK, c.status)
	assert.Greater(t, report.OverallScore, 0.0)
	assert.Len(t, report.QuestionAnalysis, 2)

	// Summary now reports availability.
	var summary models.FeedbackSummaryResponse
	c.do(http.MethodGet, fmt.Sprintf("/api/v1/feedback/%s/summary", id), nil, &summary)
	require.Equal(t, http.StatusOK, c.status)
	assert.True(t, summary.FeedbackAvailable)
	assert.NotEmpty(t, summary.Grade)

	// Stats include the session.
	var stats models.UserStatsResponse
	c.do(http.MethodGet, "/api/v1/feedback/user/stats", nil, &stats)
	require.Equal(t, http.StatusOK, c.status)
	assert.Equal(t, 1, stats.TotalInterviews)
	assert.Greater(t, stats.AverageScore, 0.0)
}

func TestAnswerRejectsBlank(t *testing.T) {
	server := newTestServer(t)
	c := registeredClient(t, server)
	id := createInterview(t, c)

	var q models.QuestionResponse
	c.do(http.MethodPost, fmt.Sprintf("/api/v1/interviews/%s/question", id),
		map[string]string{"context": ""}, &q)
	require.Equal(t, http.StatusOK, c.status)

	var errResp models.ErrorResponse
	c.do(http.MethodPost, fmt.Sprintf("/api/v1/interviews/%s/answer", id),
		map[string]any{"questionId": q.ID, "answer": "   "}, &errResp)
	assert.Equal(t, http.StatusBadRequest, c.status)
	assert.Equal(t, "empty_answer", errResp.Code)
}

func TestOwnershipEnforced(t *testing.T) {
	server := newTestServer(t)
	owner := registeredClient(t, server)
	id := createInterview(t, owner)

	other := &client{t: t, base: server.URL}
	other.do(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"username": "mallory", "email": "mallory@example.com", "password": "password123",
	}, nil)
	var login struct {
		Token string `json:"token"`
	}
	other.do(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": "mallory", "password": "password123",
	}, &login)
	other.token = login.Token

	other.do(http.MethodGet, "/api/v1/interviews/"+id, nil, nil)
	assert.Equal(t, http.StatusNotFound, other.status)

	other.do(http.MethodGet, "/api/v1/feedback/"+id, nil, nil)
	assert.Equal(t, http.StatusNotFound, other.status)
}

func TestFeedbackGenerateRequiresCompletion(t *testing.T) {
	server := newTestServer(t)
	c := registeredClient(t, server)
	id := createInterview(t, c)

	var errResp models.ErrorResponse
	c.do(http.MethodPost, fmt.Sprintf("/api/v1/feedback/%s/generate", id), nil, &errResp)
	assert.Equal(t, http.StatusBadRequest, c.status)
	assert.Equal(t, "interview_not_completed", errResp.Code)
}

func TestHealthEndpoints(t *testing.T) {
	server := newTestServer(t)
	c := &client{t: t, base: server.URL}

	var health map[string]string
	c.do(http.MethodGet, "/healthz", nil, &health)
	assert.Equal(t, http.StatusOK, c.status)
	assert.Equal(t, "ok", health["status"])

	var ready handlers.ReadinessResponse
	c.do(http.MethodGet, "/readyz", nil, &ready)
	assert.Equal(t, http.StatusOK, c.status)
	assert.Equal(t, "ready", ready.Status)
}
