package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManagerLoadsEmbeddedTemplates(t *testing.T) {
	m, err := NewManager()
	require.NoError(t, err)

	names := m.Names()
	assert.Contains(t, names, "question")
	assert.Contains(t, names, "evaluate")
	assert.Contains(t, names, "feedback")
}

func TestRenderSubstitutesPlaceholders(t *testing.T) {
	m, err := NewManager()
	require.NoError(t, err)

	out, err := m.Render("question", map[string]string{
		"role":           "Backend Engineer",
		"interview_type": "technical",
		"difficulty":     "3",
		"context":        "Q: Tell me about yourself.\nA: I build services in Go.\n",
	})
	require.NoError(t, err)

	assert.Contains(t, out, "Backend Engineer")
	assert.Contains(t, out, "technical interview")
	assert.Contains(t, out, "I build services in Go.")
	assert.NotContains(t, out, "{role}")
	assert.NotContains(t, out, "{context}")
}

func TestRenderMissingPlaceholderFails(t *testing.T) {
	m, err := NewManager()
	require.NoError(t, err)

	_, err = m.Render("evaluate", map[string]string{
		"role":           "Backend Engineer",
		"interview_type": "technical",
		"question":       "What is a goroutine?",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "answer")
}

func TestRenderUnknownTemplate(t *testing.T) {
	m, err := NewManager()
	require.NoError(t, err)

	_, err = m.Render("nope", nil)
	assert.Error(t, err)
}
