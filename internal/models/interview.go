package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Interview lifecycle statuses.
const (
	InterviewInProgress = "in-progress"
	InterviewCompleted  = "completed"
	InterviewAbandoned  = "abandoned"
)

// Interview is one interview session owned by a user.
type Interview struct {
	ID                   string     `gorm:"primaryKey" json:"id"`
	UserID               uint       `gorm:"not null;index" json:"userId"`
	Role                 string     `gorm:"size:100" json:"role"`
	CustomJobDescription string     `gorm:"type:text" json:"customJobDescription"`
	InterviewType        string     `gorm:"size:50;not null" json:"interviewType"`
	Difficulty           int        `gorm:"not null" json:"difficulty"`
	Duration             int        `gorm:"not null" json:"duration"`
	InputMethod          string     `gorm:"size:20;not null" json:"inputMethod"`
	Status               string     `gorm:"size:20;default:in-progress;index" json:"status"`
	StartedAt            time.Time  `json:"startedAt"`
	CompletedAt          *time.Time `json:"completedAt"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`

	Questions []Question `gorm:"constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

func (i *Interview) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	if i.StartedAt.IsZero() {
		i.StartedAt = time.Now()
	}
	return nil
}

// IsActive reports whether the interview is still in progress.
func (i *Interview) IsActive() bool {
	return i.Status == InterviewInProgress
}

// Question is one question asked during an interview, together with the
// answer and its evaluation once available.
type Question struct {
	ID               string     `gorm:"primaryKey" json:"id"`
	InterviewID      string     `gorm:"not null;index" json:"interviewId"`
	Text             string     `gorm:"type:text;not null" json:"text"`
	Answer           string     `gorm:"type:text" json:"answer"`
	Type             string     `gorm:"size:20;not null" json:"type"`
	Order            int        `gorm:"column:question_order;not null" json:"order"`
	Score            *float64   `json:"score"`
	AIFeedback       string     `gorm:"type:text" json:"aiFeedback"`
	TimeTakenSeconds *int       `json:"timeTakenSeconds"`
	AskedAt          time.Time  `json:"askedAt"`
	AnsweredAt       *time.Time `json:"answeredAt"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	if q.AskedAt.IsZero() {
		q.AskedAt = time.Now()
	}
	return nil
}

// IsAnswered reports whether a non-blank answer has been recorded.
func (q *Question) IsAnswered() bool {
	return strings.TrimSpace(q.Answer) != ""
}

// CalculateTimeTaken derives the answer latency from the ask/answer
// timestamps when the client did not supply one.
func (q *Question) CalculateTimeTaken() {
	if q.AnsweredAt == nil || q.AskedAt.IsZero() {
		return
	}
	secs := int(q.AnsweredAt.Sub(q.AskedAt).Seconds())
	q.TimeTakenSeconds = &secs
}
