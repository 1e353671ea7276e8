package routers

import (
	"github.com/go-chi/chi/v5"

	"github.com/polishettivamshi/mockmate-interview-simulator/internal/handlers"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/metrics"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/middleware"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/models"
)

// AuthRoutes registers the public auth endpoints plus the token-protected
// profile endpoint.
func AuthRoutes(router *chi.Mux, authHandler *handlers.AuthHandler, jwtSecret string) {
	router.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.ValidateRequest[*handlers.RegisterRequest]()).Post("/register", authHandler.RegisterHandler)
		r.With(middleware.ValidateRequest[*handlers.LoginRequest]()).Post("/login", authHandler.LoginHandler)
		r.With(middleware.RequireAuth(jwtSecret)).Get("/me", authHandler.MeHandler)
	})
}

// InterviewRoutes registers the interview session endpoints; every route is
// token protected.
func InterviewRoutes(router *chi.Mux, interviewHandler *handlers.InterviewHandler, jwtSecret string) {
	router.Route("/api/v1/interviews", func(r chi.Router) {
		r.Use(middleware.RequireAuth(jwtSecret))
		r.With(middleware.ValidateRequest[*models.CreateInterviewRequest]()).Post("/", interviewHandler.CreateHandler)
		r.Get("/", interviewHandler.ListHandler)
		r.Get("/{interviewId}", interviewHandler.GetHandler)
		r.With(middleware.ValidateRequest[*models.QuestionRequest]()).Post("/{interviewId}/question", interviewHandler.QuestionHandler)
		r.With(middleware.ValidateRequest[*models.AnswerRequest]()).Post("/{interviewId}/answer", interviewHandler.AnswerHandler)
		r.Post("/{interviewId}/end", interviewHandler.EndHandler)
		r.Get("/{interviewId}/questions", interviewHandler.QuestionsHandler)
	})
}

// FeedbackRoutes registers the feedback endpoints; every route is token
// protected.
func FeedbackRoutes(router *chi.Mux, feedbackHandler *handlers.FeedbackHandler, jwtSecret string) {
	router.Route("/api/v1/feedback", func(r chi.Router) {
		r.Use(middleware.RequireAuth(jwtSecret))
		r.Get("/user/stats", feedbackHandler.UserStatsHandler)
		r.Get("/{interviewId}", feedbackHandler.GetHandler)
		r.Post("/{interviewId}/generate", feedbackHandler.GenerateHandler)
		r.Get("/{interviewId}/summary", feedbackHandler.SummaryHandler)
	})
}

// HealthRoutes registers liveness, readiness, and metrics endpoints.
func HealthRoutes(router *chi.Mux, healthHandler *handlers.HealthHandler) {
	router.Get("/healthz", healthHandler.HealthzHandler)
	router.Get("/readyz", healthHandler.ReadyzHandler)
	router.Method("GET", "/metrics", metrics.Handler())
}
