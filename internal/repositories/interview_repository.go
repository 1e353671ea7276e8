package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/polishettivamshi/mockmate-interview-simulator/internal/models"
)

var (
	ErrInterviewNotFound = errors.New("interview not found")
	ErrQuestionNotFound  = errors.New("question not found")
)

type InterviewRepository struct {
	DB *gorm.DB
}

func (r *InterviewRepository) CreateInterview(interview *models.Interview) error {
	return r.DB.Create(interview).Error
}

// GetInterviewByID loads an interview with its questions ordered as asked.
func (r *InterviewRepository) GetInterviewByID(id string) (*models.Interview, error) {
	var interview models.Interview
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("question_order ASC")
	}).First(&interview, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInterviewNotFound
	}
	return &interview, err
}

// GetInterviewForUser loads an interview only if it belongs to the user.
func (r *InterviewRepository) GetInterviewForUser(id string, userID uint) (*models.Interview, error) {
	interview, err := r.GetInterviewByID(id)
	if err != nil {
		return nil, err
	}
	if interview.UserID != userID {
		return nil, ErrInterviewNotFound
	}
	return interview, nil
}

func (r *InterviewRepository) ListInterviewsByUser(userID uint) ([]models.Interview, error) {
	var interviews []models.Interview
	err := r.DB.Where("user_id = ?", userID).Order("started_at DESC").Find(&interviews).Error
	return interviews, err
}

// CompleteInterview marks the interview with the given terminal status and
// stamps the completion time.
func (r *InterviewRepository) CompleteInterview(id, status string) error {
	now := time.Now()
	result := r.DB.Model(&models.Interview{}).
		Where("id = ? AND status = ?", id, models.InterviewInProgress).
		Updates(map[string]any{"status": status, "completed_at": &now})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInterviewNotFound
	}
	return nil
}

func (r *InterviewRepository) AddQuestion(question *models.Question) error {
	return r.DB.Create(question).Error
}

// NextQuestionOrder returns the order index for the next question to ask.
func (r *InterviewRepository) NextQuestionOrder(interviewID string) (int, error) {
	var count int64
	err := r.DB.Model(&models.Question{}).Where("interview_id = ?", interviewID).Count(&count).Error
	return int(count) + 1, err
}

// LatestUnanswered returns the most recently asked question that has no
// answer yet.
func (r *InterviewRepository) LatestUnanswered(interviewID string) (*models.Question, error) {
	var question models.Question
	err := r.DB.Where("interview_id = ? AND (answer IS NULL OR answer = '')", interviewID).
		Order("question_order DESC").First(&question).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrQuestionNotFound
	}
	return &question, err
}

func (r *InterviewRepository) UpdateQuestion(question *models.Question) error {
	return r.DB.Save(question).Error
}

func (r *InterviewRepository) GetQuestions(interviewID string) ([]models.Question, error) {
	var questions []models.Question
	err := r.DB.Where("interview_id = ?", interviewID).Order("question_order ASC").Find(&questions).Error
	return questions, err
}

func (r *InterviewRepository) CountAnswered(interviewID string) (int, error) {
	var count int64
	err := r.DB.Model(&models.Question{}).
		Where("interview_id = ? AND answer IS NOT NULL AND answer != ''", interviewID).
		Count(&count).Error
	return int(count), err
}

// FindStale returns in-progress interviews whose planned duration plus the
// grace period elapsed before the cutoff.
func (r *InterviewRepository) FindStale(cutoff time.Time, graceMinutes int) ([]models.Interview, error) {
	var interviews []models.Interview
	deadline := cutoff.Add(-time.Duration(graceMinutes) * time.Minute)
	err := r.DB.Where("status = ?", models.InterviewInProgress).Find(&interviews).Error
	if err != nil {
		return nil, err
	}
	stale := interviews[:0]
	for _, iv := range interviews {
		expiry := iv.StartedAt.Add(time.Duration(iv.Duration) * time.Minute)
		if expiry.Before(deadline) {
			stale = append(stale, iv)
		}
	}
	return stale, nil
}
