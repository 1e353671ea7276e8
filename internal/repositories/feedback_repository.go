package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/polishettivamshi/mockmate-interview-simulator/internal/models"
)

var ErrFeedbackNotFound = errors.New("feedback not found")

type FeedbackRepository struct {
	DB *gorm.DB
}

// SaveFeedback inserts the feedback, replacing any earlier report for the
// same interview so regeneration is idempotent.
func (r *FeedbackRepository) SaveFeedback(feedback *models.Feedback) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("interview_id = ?", feedback.InterviewID).Delete(&models.Feedback{}).Error; err != nil {
			return err
		}
		return tx.Create(feedback).Error
	})
}

func (r *FeedbackRepository) GetFeedbackByInterviewID(interviewID string) (*models.Feedback, error) {
	var feedback models.Feedback
	err := r.DB.First(&feedback, "interview_id = ?", interviewID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFeedbackNotFound
	}
	return &feedback, err
}

// ListFeedbackForUser returns all feedback for a user's interviews, newest
// first.
func (r *FeedbackRepository) ListFeedbackForUser(userID uint) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	err := r.DB.
		Joins("JOIN interviews ON interviews.id = feedbacks.interview_id").
		Where("interviews.user_id = ?", userID).
		Order("feedbacks.generated_at DESC").
		Find(&feedbacks).Error
	return feedbacks, err
}
