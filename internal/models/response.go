package models

import "time"

// ErrorResponse is the uniform error body returned by every endpoint.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ErrorResponse) Error() string {
	return e.Code + ": " + e.Message
}

// AckResponse acknowledges a state-changing call.
type AckResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// CreateInterviewResponse is returned when a session is created. SessionID
// mirrors ID for clients that key their hand-off storage by session.
type CreateInterviewResponse struct {
	ID        string `json:"id"`
	SessionID string `json:"sessionId"`
}

// QuestionResponse is the generated question returned to the session
// controller.
type QuestionResponse struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Type  string `json:"type"`
	Order int    `json:"order"`
}

// FeedbackResponse is the full scored report for a completed interview.
type FeedbackResponse struct {
	ID                 string             `json:"id"`
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

// FeedbackSummaryResponse is the condensed view used by dashboards.
type FeedbackSummaryResponse struct {
	InterviewID       string    `json:"interviewId"`
	FeedbackAvailable bool      `json:"feedbackAvailable"`
	OverallScore      float64   `json:"overallScore,omitempty"`
	Grade             string    `json:"grade,omitempty"`
	PerformanceLevel  string    `json:"performanceLevel,omitempty"`
	GeneratedAt       time.Time `json:"generatedAt,omitempty"`
}

// UserStatsResponse aggregates a user's feedback history.
type UserStatsResponse struct {
	TotalInterviews      int                `json:"totalInterviews"`
	AverageScore         float64            `json:"averageScore"`
	AverageTechnical     float64            `json:"averageTechnical"`
	AverageCommunication float64            `json:"averageCommunication"`
	ImprovementTrend     float64            `json:"improvementTrend"`
	BestScore            float64            `json:"bestScore"`
	RecentPerformance    []RecentPerformance `json:"recentPerformance"`
}

// RecentPerformance is one point in the recent-score series.
type RecentPerformance struct {
	InterviewID string     `json:"interviewId"`
	Score       float64    `json:"score"`
	Role        string     `json:"role"`
	Date        *time.Time `json:"date"`
}
