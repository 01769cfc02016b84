package routers

import (
	"mockmate/interview/internal/handlers"
	"mockmate/interview/internal/middleware"
	"mockmate/interview/internal/models"

	"github.com/go-chi/chi/v5"
)

func InterviewRoutes(router *chi.Mux, jwtSecret string, sessionHandler *handlers.SessionHandler, voiceHandler *handlers.VoiceHandler) {
	router.Route("/api/v1/interviews", func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))

		r.With(middleware.ValidateRequest[*models.StartInterviewRequest]()).Post("/", sessionHandler.StartHandler)

		r.Route("/{interviewId}", func(r chi.Router) {
			r.Get("/", sessionHandler.SnapshotHandler)
			r.With(middleware.ValidateRequest[*models.SaveAnswerRequest]()).Post("/answer", sessionHandler.SaveAnswerHandler)
			r.With(middleware.ValidateRequest[*models.NavigateRequest]()).Post("/navigate", sessionHandler.NavigateHandler)
			r.Post("/finish", sessionHandler.FinishHandler)
			r.Get("/transcript", voiceHandler.TranscriptHandler)
		})
	})

	router.Route("/api/v1/code", func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))
		r.With(middleware.ValidateRequest[*models.RunCodeRequest]()).Post("/run", sessionHandler.RunCodeHandler)
	})
}
