package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionsAdvanceWithConversation(t *testing.T) {
	p := New()
	ctx := context.Background()

	prompt := "You are an experienced interviewer conducting a technical interview\nConversation so far:\n"
	first, err := p.Complete(ctx, prompt, "req-1")
	require.NoError(t, err)

	prompt += fmt.Sprintf("Q: %s\nA: an answer\n", first.Content)
	second, err := p.Complete(ctx, prompt, "req-2")
	require.NoError(t, err)

	assert.NotEqual(t, first.Content, second.Content)
}

func TestBehavioralPromptUsesBehavioralBank(t *testing.T) {
	p := New()
	out, err := p.Complete(context.Background(), "conducting a behavioral interview", "req-1")
	require.NoError(t, err)
	assert.Equal(t, behavioralQuestions[0], out.Content)
}

func TestEvaluationReturnsParsableJSON(t *testing.T) {
	p := New()
	out, err := p.Complete(context.Background(), "Evaluate the candidate's answer", "req-1")
	require.NoError(t, err)

	var parsed struct {
		Score    int    `json:"score"`
		Feedback string `json:"feedback"`
	}
	require.NoError(t, json.Unmarshal([]byte(out.Content), &parsed))
	assert.Greater(t, parsed.Score, 0)
	assert.NotEmpty(t, parsed.Feedback)
}

func TestFeedbackReturnsParsableJSON(t *testing.T) {
	p := New()
	out, err := p.Complete(context.Background(), "writing comprehensive feedback for a candidate", "req-1")
	require.NoError(t, err)

	var parsed struct {
		OverallScore int      `json:"overall_score"`
		Strengths    []string `json:"strengths"`
		Improvements []string `json:"improvements"`
	}
	require.NoError(t, json.Unmarshal([]byte(out.Content), &parsed))
	assert.Greater(t, parsed.OverallScore, 0)
	assert.NotEmpty(t, parsed.Strengths)
	assert.NotEmpty(t, parsed.Improvements)
}

func TestCancelledContext(t *testing.T) {
	p := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Complete(ctx, "anything", "req-1")
	assert.Error(t, err)
}
