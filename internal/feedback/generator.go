// Package feedback turns a finished interview into a scored report. Each
// answer is evaluated individually, then a comprehensive report is produced
// from the full transcript. Every model call has a deterministic fallback so
// feedback generation never fails outright.
package feedback

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/polishettivamshi/mockmate-interview-simulator/internal/handoff"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/llm"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/models"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/prompts"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/repositories"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/utils"
)

type Generator struct {
	provider   llm.Provider
	prompts    *prompts.Manager
	interviews *repositories.InterviewRepository
	feedbacks  *repositories.FeedbackRepository
	handoff    *handoff.Store
}

// NewGenerator wires the generator. The handoff store may be nil, in which
// case questions are always loaded from the database.
func NewGenerator(provider llm.Provider, pm *prompts.Manager, interviews *repositories.InterviewRepository, feedbacks *repositories.FeedbackRepository, hs *handoff.Store) *Generator {
	return &Generator{
		provider:   provider,
		prompts:    pm,
		interviews: interviews,
		feedbacks:  feedbacks,
		handoff:    hs,
	}
}

type evaluation struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

type comprehensive struct {
	OverallScore       float64  `json:"overall_score"`
	TechnicalScore     float64  `json:"technical_score"`
	CommunicationScore float64  `json:"communication_score"`
	ConfidenceScore    float64  `json:"confidence_score"`
	Strengths          []string `json:"strengths"`
	Improvements       []string `json:"improvements"`
	DetailedFeedback   string   `json:"detailed_feedback"`
	Suggestions        string   `json:"suggestions"`
}

// Generate builds and persists the feedback report for a completed
// interview. The transcript handoff snapshot is consumed if one exists;
// otherwise questions come from the database.
func (g *Generator) Generate(ctx context.Context, interview *models.Interview) (*models.Feedback, error) {
	logger := utils.GetLogger()

	questions, err := g.loadQuestions(ctx, interview.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}

	// Score each answered question that has not been evaluated yet.
	for i := range questions {
		q := &questions[i]
		if !q.IsAnswered() || q.Score != nil {
			continue
		}
		eval := g.evaluateAnswer(ctx, interview, q)
		q.Score = &eval.Score
		q.AIFeedback = eval.Feedback
		if err := g.interviews.UpdateQuestion(q); err != nil {
			logger.Warn("failed to persist question evaluation")
		}
	}

	report := g.comprehensiveFeedback(ctx, interview, questions)

	fb := &models.Feedback{
		InterviewID:        interview.ID,
		OverallScore:       report.OverallScore,
		TechnicalScore:     report.TechnicalScore,
		CommunicationScore: report.CommunicationScore,
		ConfidenceScore:    report.ConfidenceScore,
		Strengths:          report.Strengths,
		Improvements:       report.Improvements,
		DetailedFeedback:   report.DetailedFeedback,
		Suggestions:        report.Suggestions,
		QuestionAnalysis:   buildAnalysis(questions),
	}

	if err := g.feedbacks.SaveFeedback(fb); err != nil {
		return nil, fmt.Errorf("failed to save feedback: %w", err)
	}
	return fb, nil
}

func (g *Generator) loadQuestions(ctx context.Context, interviewID string) ([]models.Question, error) {
	if g.handoff != nil {
		snap, err := g.handoff.Take(ctx, interviewID)
		if err == nil && len(snap.Questions) > 0 {
			return snap.Questions, nil
		}
	}
	return g.interviews.GetQuestions(interviewID)
}

func (g *Generator) evaluateAnswer(ctx context.Context, interview *models.Interview, q *models.Question) evaluation {
	prompt, err := g.prompts.Render("evaluate", map[string]string{
		"role":           interview.Role,
		"interview_type": interview.InterviewType,
		"question":       q.Text,
		"answer":         q.Answer,
	})
	if err != nil {
		return fallbackEvaluation()
	}

	out, err := g.provider.Complete(ctx, prompt, q.ID)
	if err != nil {
		return fallbackEvaluation()
	}

	var eval evaluation
	if err := json.Unmarshal([]byte(stripFence(out.Content)), &eval); err != nil {
		// Unparsable output still carries content; keep it as prose feedback.
		return evaluation{Score: 75, Feedback: strings.TrimSpace(out.Content)}
	}
	if eval.Feedback == "" {
		eval.Feedback = "Good response overall."
	}
	return eval
}

func fallbackEvaluation() evaluation {
	return evaluation{
		Score:    70,
		Feedback: "Your answer shows understanding of the topic. Consider providing more specific examples and details to strengthen your response.",
	}
}

func (g *Generator) comprehensiveFeedback(ctx context.Context, interview *models.Interview, questions []models.Question) comprehensive {
	answered := answeredQuestions(questions)

	prompt, err := g.prompts.Render("feedback", map[string]string{
		"role":               interview.Role,
		"interview_type":     interview.InterviewType,
		"questions_answered": strconv.Itoa(len(answered)),
		"total_questions":    strconv.Itoa(len(questions)),
		"transcript":         buildTranscript(answered),
	})
	if err != nil {
		return fallbackComprehensive(answered)
	}

	out, err := g.provider.Complete(ctx, prompt, interview.ID)
	if err != nil {
		return fallbackComprehensive(answered)
	}

	var report comprehensive
	if err := json.Unmarshal([]byte(stripFence(out.Content)), &report); err != nil {
		return fallbackComprehensive(answered)
	}
	if len(report.Strengths) == 0 {
		report.Strengths = []string{"Good overall performance"}
	}
	if len(report.Improvements) == 0 {
		report.Improvements = []string{"Continue practicing"}
	}
	return report
}

// fallbackComprehensive derives scores from the per-question averages when
// the model is unavailable or returns garbage.
func fallbackComprehensive(answered []models.Question) comprehensive {
	var sum float64
	var scored int
	for _, q := range answered {
		if q.Score != nil {
			sum += *q.Score
			scored++
		}
	}
	avg := 75.0
	if scored > 0 {
		avg = sum / float64(scored)
	}

	return comprehensive{
		OverallScore:       avg,
		TechnicalScore:     clamp(avg+5, 0, 100),
		CommunicationScore: clamp(avg-3, 0, 100),
		ConfidenceScore:    clamp(avg+2, 0, 100),
		Strengths: []string{
			"Completed the interview session",
			"Provided thoughtful responses",
			"Demonstrated engagement",
			"Showed professional attitude",
		},
		Improvements: []string{
			"Provide more specific examples",
			"Elaborate on technical details",
			"Practice articulating thoughts clearly",
			"Ask clarifying questions when needed",
		},
		DetailedFeedback: fmt.Sprintf("You completed %d questions in this interview session. Your responses demonstrate good understanding and engagement. To improve further, focus on providing more detailed examples and practicing clear articulation of your thoughts.", len(answered)),
		Suggestions:      "Continue practicing mock interviews, prepare specific examples from your experience, and work on clearly explaining your thought process during technical discussions.",
	}
}

func answeredQuestions(questions []models.Question) []models.Question {
	answered := make([]models.Question, 0, len(questions))
	for _, q := range questions {
		if q.IsAnswered() {
			answered = append(answered, q)
		}
	}
	return answered
}

func buildTranscript(questions []models.Question) string {
	var b strings.Builder
	for _, q := range questions {
		fmt.Fprintf(&b, "Q: %s\nA: %s\n", q.Text, q.Answer)
	}
	return b.String()
}

func buildAnalysis(questions []models.Question) []models.QuestionAnalysis {
	analysis := make([]models.QuestionAnalysis, 0, len(questions))
	for _, q := range questions {
		if !q.IsAnswered() {
			continue
		}
		score := 0.0
		if q.Score != nil {
			score = *q.Score
		}
		analysis = append(analysis, models.QuestionAnalysis{
			QuestionID: q.ID,
			Question:   q.Text,
			Answer:     q.Answer,
			Score:      score,
			Feedback:   q.AIFeedback,
		})
	}
	return analysis
}

// stripFence removes a markdown code fence some models wrap JSON in.
func stripFence(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}
	return strings.TrimSpace(content)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
