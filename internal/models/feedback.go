package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Feedback is the scored evaluation of a completed interview.
type Feedback struct {
	ID                 string             `gorm:"primaryKey" json:"id"`
	InterviewID        string             `gorm:"not null;uniqueIndex" json:"interviewId"`
	OverallScore       float64            `gorm:"not null" json:"overallScore"`
	TechnicalScore     float64            `gorm:"not null" json:"technicalScore"`
	CommunicationScore float64            `gorm:"not null" json:"communicationScore"`
	ConfidenceScore    float64            `gorm:"not null" json:"confidenceScore"`
	Strengths          []string           `gorm:"serializer:json" json:"strengths"`
	Improvements       []string           `gorm:"serializer:json" json:"improvements"`
	DetailedFeedback   string             `gorm:"type:text" json:"detailedFeedback"`
	Suggestions        string             `gorm:"type:text" json:"suggestions"`
	QuestionAnalysis   []QuestionAnalysis `gorm:"serializer:json" json:"questionAnalysis"`
	GeneratedAt        time.Time          `json:"generatedAt"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

// QuestionAnalysis is the per-question breakdown inside a feedback report.
type QuestionAnalysis struct {
	QuestionID string  `json:"questionId"`
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	Score      float64 `json:"score"`
	Feedback   string  `json:"feedback"`
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	if f.GeneratedAt.IsZero() {
		f.GeneratedAt = time.Now()
	}
	return nil
}

// Grade maps the overall score to a letter grade.
func (f *Feedback) Grade() string {
	switch {
	case f.OverallScore >= 90:
		return "A"
	case f.OverallScore >= 80:
		return "B"
	case f.OverallScore >= 70:
		return "C"
	case f.OverallScore >= 60:
		return "D"
	default:
		return "F"
	}
}

// PerformanceLevel maps the overall score to a human-readable level.
func (f *Feedback) PerformanceLevel() string {
	switch {
	case f.OverallScore >= 90:
		return "Excellent"
	case f.OverallScore >= 80:
		return "Good"
	case f.OverallScore >= 70:
		return "Average"
	case f.OverallScore >= 60:
		return "Below Average"
	default:
		return "Needs Improvement"
	}
}
