package feedback

import (
	"context"
	"errors"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polishettivamshi/mockmate-interview-simulator/internal/handoff"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/llm"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/llm/mock"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/models"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/prompts"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/repositories"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/testhelpers"
)

type failingProvider struct{}

func (failingProvider) GetProviderName() string { return "failing" }
func (failingProvider) Complete(ctx context.Context, prompt, requestID string) (*llm.Completion, error) {
	return nil, errors.New("provider down")
}

func setupGenerator(t *testing.T, provider llm.Provider) (*Generator, *repositories.InterviewRepository) {
	t.Helper()
	db := testhelpers.SetupTestDB(t)
	pm, err := prompts.NewManager()
	require.NoError(t, err)

	interviews := &repositories.InterviewRepository{DB: db}
	feedbacks := &repositories.FeedbackRepository{DB: db}
	return NewGenerator(provider, pm, interviews, feedbacks, nil), interviews
}

func seedAnsweredInterview(t *testing.T, repo *repositories.InterviewRepository, answers int) *models.Interview {
	t.Helper()
	interview := &models.Interview{
		UserID:        1,
		Role:          "Backend Engineer",
		InterviewType: "technical",
		Difficulty:    2,
		Duration:      30,
		InputMethod:   "text",
		Status:        models.InterviewCompleted,
	}
	require.NoError(t, repo.CreateInterview(interview))

	for i := 1; i <= answers; i++ {
		q := &models.Question{
			InterviewID: interview.ID,
			Text:        "Question text",
			Answer:      "Answer text",
			Type:        "technical",
			Order:       i,
		}
		require.NoError(t, repo.AddQuestion(q))
	}
	return interview
}

func TestGenerateScoresQuestionsAndPersists(t *testing.T) {
	gen, interviews := setupGenerator(t, mock.New())
	interview := seedAnsweredInterview(t, interviews, 3)

	fb, err := gen.Generate(context.Background(), interview)
	require.NoError(t, err)

	assert.Greater(t, fb.OverallScore, 0.0)
	assert.Len(t, fb.QuestionAnalysis, 3)
	assert.NotEmpty(t, fb.Strengths)
	assert.NotEmpty(t, fb.DetailedFeedback)

	questions, err := interviews.GetQuestions(interview.ID)
	require.NoError(t, err)
	for _, q := range questions {
		require.NotNil(t, q.Score, "every answered question gets a score")
		assert.NotEmpty(t, q.AIFeedback)
	}

	// The report was persisted.
	saved, err := gen.feedbacks.GetFeedbackByInterviewID(interview.ID)
	require.NoError(t, err)
	assert.Equal(t, fb.OverallScore, saved.OverallScore)
}

func TestGenerateFallsBackWhenProviderDown(t *testing.T) {
	gen, interviews := setupGenerator(t, failingProvider{})
	interview := seedAnsweredInterview(t, interviews, 2)

	fb, err := gen.Generate(context.Background(), interview)
	require.NoError(t, err)

	// Per-question fallback scores every answer 70, so the derived report
	// follows the fixed offsets.
	assert.InDelta(t, 70.0, fb.OverallScore, 0.001)
	assert.InDelta(t, 75.0, fb.TechnicalScore, 0.001)
	assert.InDelta(t, 67.0, fb.CommunicationScore, 0.001)
	assert.InDelta(t, 72.0, fb.ConfidenceScore, 0.001)
	assert.NotEmpty(t, fb.Strengths)
	assert.NotEmpty(t, fb.Improvements)
}

func TestGenerateUsesHandoffSnapshot(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	store := handoff.NewStoreWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = store.Close() })

	db := testhelpers.SetupTestDB(t)
	pm, err := prompts.NewManager()
	require.NoError(t, err)
	interviews := &repositories.InterviewRepository{DB: db}
	feedbacks := &repositories.FeedbackRepository{DB: db}
	gen := NewGenerator(mock.New(), pm, interviews, feedbacks, store)

	interview := seedAnsweredInterview(t, interviews, 1)

	score := 90.0
	require.NoError(t, store.Put(context.Background(), &handoff.Snapshot{
		InterviewID: interview.ID,
		Questions: []models.Question{
			{ID: "snap-q", InterviewID: interview.ID, Text: "From snapshot", Answer: "Yes", Order: 1, Score: &score, AIFeedback: "great"},
		},
	}))

	fb, err := gen.Generate(context.Background(), interview)
	require.NoError(t, err)

	require.Len(t, fb.QuestionAnalysis, 1)
	assert.Equal(t, "From snapshot", fb.QuestionAnalysis[0].Question)

	// The snapshot is consumed; regeneration falls back to the database.
	fb2, err := gen.Generate(context.Background(), interview)
	require.NoError(t, err)
	assert.Equal(t, "Question text", fb2.QuestionAnalysis[0].Question)
}

func TestStripFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFence(`{"a":1}`))
}
