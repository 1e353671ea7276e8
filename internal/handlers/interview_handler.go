package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/polishettivamshi/mockmate-interview-simulator/internal/handoff"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/llm"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/metrics"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/middleware"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/models"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/prompts"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/repositories"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/utils"
)

// InterviewHandler manages the interview session endpoints.
type InterviewHandler struct {
	Interviews *repositories.InterviewRepository
	Provider   llm.Provider
	Prompts    *prompts.Manager
	Handoff    *handoff.Store
}

func NewInterviewHandler(interviews *repositories.InterviewRepository, provider llm.Provider, pm *prompts.Manager, hs *handoff.Store) *InterviewHandler {
	return &InterviewHandler{Interviews: interviews, Provider: provider, Prompts: pm, Handoff: hs}
}

// loadOwned resolves the interview in the URL and enforces ownership,
// writing the error response itself when the lookup fails.
func (h *InterviewHandler) loadOwned(w http.ResponseWriter, r *http.Request) *models.Interview {
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

func (h *InterviewHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.JSON(w, http.StatusUnauthorized, models.ErrorResponse{Code: "unauthorized", Message: "Missing or invalid credentials"})
		return
	}
	req := middleware.GetValidatedRequest[*models.CreateInterviewRequest](r)

	interview := &models.Interview{
		UserID:               userID,
		Role:                 strings.TrimSpace(req.Role),
		CustomJobDescription: strings.TrimSpace(req.CustomJobDescription),
		InterviewType:        req.InterviewType,
		Difficulty:           req.Difficulty,
		Duration:             req.Duration,
		InputMethod:          req.InputMethod,
		Status:               models.InterviewInProgress,
	}
	if err := h.Interviews.CreateInterview(interview); err != nil {
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{Code: "internal_error", Message: "Failed to create interview"})
		return
	}

	metrics.InterviewStarted()
	utils.GetLogger().Info("interview created",
		zap.String("interview_id", interview.ID),
		zap.Uint("user_id", userID),
		zap.String("type", interview.InterviewType))

	utils.JSON(w, http.StatusCreated, models.CreateInterviewResponse{ID: interview.ID, SessionID: interview.ID})
}

func (h *InterviewHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	interview := h.loadOwned(w, r)
	if interview == nil {
		return
	}
	utils.JSON(w, http.StatusOK, interview)
}

func (h *InterviewHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.JSON(w, http.StatusUnauthorized, models.ErrorResponse{Code: "unauthorized", Message: "Missing or invalid credentials"})
		return
	}

	interviews, err := h.Interviews.ListInterviewsByUser(userID)
	if err != nil {
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{Code: "internal_error", Message: "Failed to list interviews"})
		return
	}

	limit := len(interviews)
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 && n < limit {
			limit = n
		}
	}
	utils.JSON(w, http.StatusOK, interviews[:limit])
}

func (h *InterviewHandler) QuestionHandler(w http.ResponseWriter, r *http.Request) {
	interview := h.loadOwned(w, r)
	if interview == nil {
		return
	}
	if !interview.IsActive() {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{Code: "interview_not_active", Message: "Interview is not active"})
		return
	}
	req := middleware.GetValidatedRequest[*models.QuestionRequest](r)

	order, err := h.Interviews.NextQuestionOrder(interview.ID)
	if err != nil {
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{Code: "internal_error", Message: "Failed to generate question"})
		return
	}

	prompt, err := h.Prompts.Render("question", map[string]string{
		"role":           roleOrDescription(interview),
		"interview_type": interview.InterviewType,
		"difficulty":     strconv.Itoa(interview.Difficulty),
		"context":        req.Context,
	})
	if err != nil {
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{Code: "internal_error", Message: "Failed to generate question"})
		return
	}

	out, err := h.Provider.Complete(r.Context(), prompt, interview.ID)
	if err != nil {
		utils.GetLogger().Error("question generation failed",
			zap.String("interview_id", interview.ID), zap.Error(err))
		utils.JSON(w, http.StatusBadGateway, models.ErrorResponse{Code: "generation_failed", Message: "Failed to generate question"})
		return
	}

	question := &models.Question{
		InterviewID: interview.ID,
		Text:        strings.TrimSpace(out.Content),
		Type:        questionType(interview.InterviewType, order),
		Order:       order,
	}
	if err := h.Interviews.AddQuestion(question); err != nil {
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{Code: "internal_error", Message: "Failed to store question"})
		return
	}

	utils.JSON(w, http.StatusOK, models.QuestionResponse{
		ID:    question.ID,
		Text:  question.Text,
		Type:  question.Type,
		Order: question.Order,
	})
}

func (h *InterviewHandler) AnswerHandler(w http.ResponseWriter, r *http.Request) {
	interview := h.loadOwned(w, r)
	if interview == nil {
		return
	}
	req := middleware.GetValidatedRequest[*models.AnswerRequest](r)

	var question *models.Question
	for i := range interview.Questions {
		if interview.Questions[i].ID == req.QuestionID {
			question = &interview.Questions[i]
			break
		}
	}
	if question == nil {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{Code: "question_not_found", Message: "Question not found"})
		return
	}

	now := time.Now()
	question.Answer = req.Answer
	question.AnsweredAt = &now
	question.TimeTakenSeconds = req.TimeTakenSeconds
	if question.TimeTakenSeconds == nil {
		question.CalculateTimeTaken()
	}

	if err := h.Interviews.UpdateQuestion(question); err != nil {
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{Code: "internal_error", Message: "Failed to submit answer"})
		return
	}
	utils.JSON(w, http.StatusOK, models.AckResponse{Success: true, Message: "Answer submitted successfully"})
}

func (h *InterviewHandler) EndHandler(w http.ResponseWriter, r *http.Request) {
	interview := h.loadOwned(w, r)
	if interview == nil {
		return
	}
	if !interview.IsActive() {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{Code: "interview_not_active", Message: "Interview is not active"})
		return
	}

	if err := h.Interviews.CompleteInterview(interview.ID, models.InterviewCompleted); err != nil {
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{Code: "internal_error", Message: "Failed to end interview"})
		return
	}
	metrics.InterviewFinished(models.InterviewCompleted)

	// Hand the transcript to feedback generation. Best effort: the database
	// keeps the authoritative copy.
	if h.Handoff != nil {
		answered := 0
		for _, q := range interview.Questions {
			if q.IsAnswered() {
				answered++
			}
		}
		snap := &handoff.Snapshot{
			InterviewID:       interview.ID,
			Role:              roleOrDescription(interview),
			InterviewType:     interview.InterviewType,
			QuestionsAnswered: answered,
			TotalQuestions:    len(interview.Questions),
			Questions:         interview.Questions,
			EndedAt:           time.Now().UTC(),
		}
		if err := h.Handoff.Put(r.Context(), snap); err != nil {
			utils.GetLogger().Warn("failed to write handoff snapshot",
				zap.String("interview_id", interview.ID), zap.Error(err))
		}
	}

	utils.GetLogger().Info("interview ended", zap.String("interview_id", interview.ID))
	utils.JSON(w, http.StatusOK, models.AckResponse{Success: true, Message: "Interview ended successfully"})
}

func (h *InterviewHandler) QuestionsHandler(w http.ResponseWriter, r *http.Request) {
	interview := h.loadOwned(w, r)
	if interview == nil {
		return
	}

	questions, err := h.Interviews.GetQuestions(interview.ID)
	if err != nil {
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{Code: "internal_error", Message: "Failed to load questions"})
		return
	}
	utils.JSON(w, http.StatusOK, questions)
}

func roleOrDescription(interview *models.Interview) string {
	if interview.Role != "" {
		return interview.Role
	}
	return interview.CustomJobDescription
}

// questionType picks the flavor of the next question. Mixed sessions
// alternate, starting technical.
func questionType(interviewType string, order int) string {
	switch interviewType {
	case "mixed":
		if order%2 == 1 {
			return "technical"
		}
		return "behavioral"
	default:
		return interviewType
	}
}
