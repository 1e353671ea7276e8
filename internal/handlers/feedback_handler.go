package handlers

import (
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/polishettivamshi/mockmate-interview-simulator/internal/feedback"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/metrics"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/middleware"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/models"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/repositories"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/utils"
)

// FeedbackHandler serves feedback reports and user statistics.
type FeedbackHandler struct {
	Interviews *repositories.InterviewRepository
	Feedbacks  *repositories.FeedbackRepository
	Generator  *feedback.Generator
}

func NewFeedbackHandler(interviews *repositories.InterviewRepository, feedbacks *repositories.FeedbackRepository, generator *feedback.Generator) *FeedbackHandler {
	return &FeedbackHandler{Interviews: interviews, Feedbacks: feedbacks, Generator: generator}
}

func (h *FeedbackHandler) loadOwned(w http.ResponseWriter, r *http.Request) *models.Interview {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.JSON(w, http.StatusUnauthorized, models.ErrorResponse{Code: "unauthorized", Message: "Missing or invalid credentials"})
		return nil
	}

	interview, err := h.Interviews.GetInterviewForUser(chi.URLParam(r, "interviewId"), userID)
	if err != nil {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{Code: "interview_not_found", Message: "Interview not found"})
		return nil
	}
	return interview
}

// GetHandler returns the feedback report, generating it on first access.
func (h *FeedbackHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	interview := h.loadOwned(w, r)
	if interview == nil {
		return
	}

	fb, err := h.Feedbacks.GetFeedbackByInterviewID(interview.ID)
	if err == repositories.ErrFeedbackNotFound {
		fb, err = h.Generator.Generate(r.Context(), interview)
		if err == nil {
			metrics.FeedbackGenerated()
		}
	}
	if err != nil {
		utils.GetLogger().Error("feedback retrieval failed",
			zap.String("interview_id", interview.ID), zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{Code: "internal_error", Message: "Failed to retrieve feedback"})
		return
	}

	utils.JSON(w, http.StatusOK, models.FeedbackResponse{
		ID:                 fb.ID,
		InterviewID:        fb.InterviewID,
		OverallScore:       fb.OverallScore,
		TechnicalScore:     fb.TechnicalScore,
		CommunicationScore: fb.CommunicationScore,
		ConfidenceScore:    fb.ConfidenceScore,
		Strengths:          fb.Strengths,
		Improvements:       fb.Improvements,
		DetailedFeedback:   fb.DetailedFeedback,
		Suggestions:        fb.Suggestions,
		QuestionAnalysis:   fb.QuestionAnalysis,
		GeneratedAt:        fb.GeneratedAt,
	})
}

// GenerateHandler (re)builds the report for a completed interview.
func (h *FeedbackHandler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	interview := h.loadOwned(w, r)
	if interview == nil {
		return
	}
	if interview.Status != models.InterviewCompleted {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{Code: "interview_not_completed", Message: "Interview must be completed before generating feedback"})
		return
	}

	fb, err := h.Generator.Generate(r.Context(), interview)
	if err != nil {
		utils.GetLogger().Error("feedback generation failed",
			zap.String("interview_id", interview.ID), zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{Code: "internal_error", Message: "Failed to generate feedback"})
		return
	}
	metrics.FeedbackGenerated()

	utils.JSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"message":    "Feedback generated successfully",
		"feedbackId": fb.ID,
	})
}

// SummaryHandler returns the condensed dashboard view.
func (h *FeedbackHandler) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	interview := h.loadOwned(w, r)
	if interview == nil {
		return
	}

	fb, err := h.Feedbacks.GetFeedbackByInterviewID(interview.ID)
	if err == repositories.ErrFeedbackNotFound {
		utils.JSON(w, http.StatusOK, models.FeedbackSummaryResponse{InterviewID: interview.ID, FeedbackAvailable: false})
		return
	}
	if err != nil {
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{Code: "internal_error", Message: "Failed to retrieve feedback summary"})
		return
	}

	utils.JSON(w, http.StatusOK, models.FeedbackSummaryResponse{
		InterviewID:       interview.ID,
		FeedbackAvailable: true,
		OverallScore:      fb.OverallScore,
		Grade:             fb.Grade(),
		PerformanceLevel:  fb.PerformanceLevel(),
		GeneratedAt:       fb.GeneratedAt,
	})
}

// UserStatsHandler aggregates the caller's feedback history.
func (h *FeedbackHandler) UserStatsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.JSON(w, http.StatusUnauthorized, models.ErrorResponse{Code: "unauthorized", Message: "Missing or invalid credentials"})
		return
	}

	feedbacks, err := h.Feedbacks.ListFeedbackForUser(userID)
	if err != nil {
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{Code: "internal_error", Message: "Failed to retrieve feedback statistics"})
		return
	}
	if len(feedbacks) == 0 {
		utils.JSON(w, http.StatusOK, models.UserStatsResponse{RecentPerformance: []models.RecentPerformance{}})
		return
	}

	// ListFeedbackForUser returns newest first; stats read oldest to newest.
	ordered := make([]models.Feedback, len(feedbacks))
	for i, fb := range feedbacks {
		ordered[len(feedbacks)-1-i] = fb
	}

	var sumOverall, sumTech, sumComm, best float64
	for _, fb := range ordered {
		sumOverall += fb.OverallScore
		sumTech += fb.TechnicalScore
		sumComm += fb.CommunicationScore
		if fb.OverallScore > best {
			best = fb.OverallScore
		}
	}
	n := float64(len(ordered))

	// Improvement trend compares the last five reports with the five before.
	trend := 0.0
	if len(ordered) >= 10 {
		recent := ordered[len(ordered)-5:]
		previous := ordered[len(ordered)-10 : len(ordered)-5]
		trend = average(recent) - average(previous)
	}

	recent := ordered
	if len(recent) > 5 {
		recent = recent[len(recent)-5:]
	}
	performance := make([]models.RecentPerformance, 0, len(recent))
	for _, fb := range recent {
		entry := models.RecentPerformance{InterviewID: fb.InterviewID, Score: fb.OverallScore}
		if interview, err := h.Interviews.GetInterviewByID(fb.InterviewID); err == nil {
			entry.Role = interview.Role
			entry.Date = interview.CompletedAt
		}
		performance = append(performance, entry)
	}

	utils.JSON(w, http.StatusOK, models.UserStatsResponse{
		TotalInterviews:      len(ordered),
		AverageScore:         round1(sumOverall / n),
		AverageTechnical:     round1(sumTech / n),
		AverageCommunication: round1(sumComm / n),
		ImprovementTrend:     round1(trend),
		BestScore:            best,
		RecentPerformance:    performance,
	})
}

func average(feedbacks []models.Feedback) float64 {
	if len(feedbacks) == 0 {
		return 0
	}
	var sum float64
	for _, fb := range feedbacks {
		sum += fb.OverallScore
	}
	return sum / float64(len(feedbacks))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
