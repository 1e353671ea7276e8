// Package mock provides a deterministic, offline llm.Provider. It is used
// when no API key is configured and in tests, and returns canned questions
// and well-formed JSON evaluations so the rest of the pipeline behaves
// exactly as it would against a real model.
package mock

import (
	"context"
	"strings"

	"github.com/polishettivamshi/mockmate-interview-simulator/internal/llm"
)

const providerName = "mock"

var technicalQuestions = []string{
	"Can you walk me through a recent project you worked on and the technical decisions you made?",
	"How do you approach debugging a problem you have never seen before?",
	"Explain the difference between concurrency and parallelism, with an example.",
	"How would you design a rate limiter for a public API?",
	"What trade-offs do you consider when choosing between SQL and NoSQL storage?",
	"Describe how you would profile and fix a slow endpoint in production.",
	"How do you keep a long-lived service resilient to downstream failures?",
	"What does good test coverage look like to you, and where do you draw the line?",
}

var behavioralQuestions = []string{
	"Tell me about yourself and what draws you to this role.",
	"Describe a time you disagreed with a teammate. How did you resolve it?",
	"Tell me about a project that did not go as planned. What did you learn?",
	"How do you prioritize when everything feels urgent?",
	"Describe a time you had to learn something new under a tight deadline.",
	"Tell me about a piece of feedback that changed how you work.",
	"How do you handle working with ambiguous requirements?",
	"Where do you want to grow in the next couple of years?",
}

type Provider struct{}

func New() *Provider { return &Provider{} }

func (p *Provider) GetProviderName() string { return providerName }

// Complete inspects the prompt to decide which kind of response is being
// asked for. Question prompts get the next canned question based on how many
// have already been asked; evaluation and feedback prompts get fixed JSON.
func (p *Provider) Complete(ctx context.Context, prompt, requestID string) (*llm.Completion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var content string
	switch {
	case strings.Contains(prompt, "Evaluate the candidate's answer"):
		content = `{"score": 78, "feedback": "Solid answer that addresses the question directly; adding a concrete example would make it stronger."}`
	case strings.Contains(prompt, "comprehensive feedback"):
		content = `{
  "overall_score": 76,
  "technical_score": 78,
  "communication_score": 74,
  "confidence_score": 77,
  "strengths": ["Clear and structured answers", "Good grasp of fundamentals", "Stayed engaged throughout the session"],
  "improvements": ["Back up claims with concrete examples", "Quantify impact where possible"],
  "detailed_feedback": "You handled the session well, giving direct answers and keeping a steady pace. Your fundamentals came through clearly. To score higher, ground your answers in specific situations and outcomes, and do not be afraid to pause and structure your response before speaking."
}`
	default:
		content = nextQuestion(prompt)
	}

	return &llm.Completion{
		Content:    content,
		Model:      "mock",
		TokensUsed: len(content) / 4,
	}, nil
}

func nextQuestion(prompt string) string {
	asked := strings.Count(prompt, "Q: ")

	bank := technicalQuestions
	switch {
	case strings.Contains(prompt, "behavioral interview"):
		bank = behavioralQuestions
	case strings.Contains(prompt, "mixed interview"):
		// Alternate between banks so a mixed session feels like one.
		if asked%2 == 1 {
			bank = behavioralQuestions
		}
	}
	return bank[asked%len(bank)]
}
