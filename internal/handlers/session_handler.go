package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"mockmate/interview/internal/llm"
	"mockmate/interview/internal/metrics"
	"mockmate/interview/internal/middleware"
	"mockmate/interview/internal/models"
	"mockmate/interview/internal/sandbox"
	"mockmate/interview/internal/session"
	"mockmate/interview/internal/store"
	"mockmate/interview/internal/utils"
)

// InterviewCreator is the slice of the interview store the start
// endpoint needs beyond what sessions use themselves.
type InterviewCreator interface {
	Create(ctx context.Context, interview *models.Interview) error
}

// SandboxRunner relays code to the execution sandbox.
type SandboxRunner interface {
	Run(ctx context.Context, code, language string) (*sandbox.Result, error)
}

type SessionHandler struct {
	registry   *session.Registry
	sessionCfg session.Config
	creator    InterviewCreator
	sandbox    SandboxRunner
	logger     *zap.Logger
}

func NewSessionHandler(registry *session.Registry, sessionCfg session.Config, creator InterviewCreator, sandboxRunner SandboxRunner, logger *zap.Logger) *SessionHandler {
	if logger == nil {
		logger = utils.GetLogger()
	}
	return &SessionHandler{
		registry:   registry,
		sessionCfg: sessionCfg,
		creator:    creator,
		sandbox:    sandboxRunner,
		logger:     logger,
	}
}

// StartHandler creates an interview record and brings up its session,
// generating the question set.
func (h *SessionHandler) StartHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.StartInterviewRequest](r)
	userID := middleware.GetUserID(r)

	interview := &models.Interview{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      req.Type,
		Status:    models.StatusInProgress,
		StartedAt: time.Now(),
	}
	if err := h.creator.Create(r.Context(), interview); err != nil {
		h.logger.Error("Failed to create interview", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "store_error",
			Message: "Failed to create interview",
		})
		return
	}

	sess := session.New(interview.ID, h.sessionCfg, session.StartOptions{
		Difficulty: req.Difficulty,
		Language:   req.Language,
		ResumeText: req.ResumeText,
		Skills:     req.Skills,
	})
	if err := sess.Initialize(r.Context()); err != nil {
		h.writeSessionError(w, err)
		return
	}

	h.registry.Put(interview.ID, sess)
	metrics.SetActiveSessions(h.registry.Size())

	h.logger.Info("Interview session started",
		zap.String("interview_id", interview.ID),
		zap.String("type", interview.Type))

	utils.JSON(w, http.StatusCreated, models.StartInterviewResponse{
		InterviewID: interview.ID,
		Snapshot:    sess.Snapshot(),
	})
}

// SnapshotHandler returns the session's read view, resuming the
// session from the store if it is not resident.
func (h *SessionHandler) SnapshotHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.resolveSession(w, r)
	if !ok {
		return
	}
	utils.JSON(w, http.StatusOK, sess.Snapshot())
}

// SaveAnswerHandler is the explicit manual save for the current
// question.
func (h *SessionHandler) SaveAnswerHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.SaveAnswerRequest](r)
	sess, ok := h.resolveSession(w, r)
	if !ok {
		return
	}

	if err := sess.SetBuffer(req.Answer); err != nil {
		h.writeSessionError(w, err)
		return
	}
	if err := sess.SaveCurrent(r.Context()); err != nil {
		h.writeSessionError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, sess.Snapshot())
}

// NavigateHandler flushes the caller's buffer and moves the current
// index. The save settles before the index changes.
func (h *SessionHandler) NavigateHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.NavigateRequest](r)
	sess, ok := h.resolveSession(w, r)
	if !ok {
		return
	}

	if err := sess.SetBuffer(req.Answer); err != nil {
		h.writeSessionError(w, err)
		return
	}

	var err error
	switch req.Action {
	case models.NavNext:
		err = sess.Next(r.Context())
	case models.NavPrev:
		err = sess.Prev(r.Context())
	case models.NavGoTo:
		err = sess.GoTo(r.Context(), *req.Index)
	}
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, sess.Snapshot())
}

// FinishHandler drives the submit/evaluate/finalize sequence.
func (h *SessionHandler) FinishHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.resolveSession(w, r)
	if !ok {
		return
	}

	result, err := sess.Finish(r.Context())
	if errors.Is(err, session.ErrNoQuestions) {
		metrics.RecordFinish("no_questions")
		utils.JSON(w, http.StatusUnprocessableEntity, models.ErrorResponse{
			Code:    "no_questions",
			Message: "The evaluator found nothing gradable. Restart the interview rather than retrying.",
		})
		return
	}
	if err != nil {
		metrics.RecordFinish("error")
		h.writeSessionError(w, err)
		return
	}

	metrics.RecordFinish("completed")
	utils.JSON(w, http.StatusOK, result)
}

// RunCodeHandler relays code to the execution sandbox.
func (h *SessionHandler) RunCodeHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.RunCodeRequest](r)

	result, err := h.sandbox.Run(r.Context(), req.Code, req.Language)
	if err != nil {
		h.logger.Error("Sandbox execution failed", zap.Error(err))
		utils.JSON(w, http.StatusBadGateway, models.ErrorResponse{
			Code:    "sandbox_error",
			Message: "Code execution service is unavailable",
		})
		return
	}
	utils.JSON(w, http.StatusOK, models.RunCodeResponse{
		Output:   result.Output,
		ExitCode: result.ExitCode,
	})
}

// resolveSession finds the resident session for the interview in the
// URL, resuming it from the store when absent, and enforces ownership.
func (h *SessionHandler) resolveSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	interviewID := chi.URLParam(r, "interviewId")
	if interviewID == "" {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "missing_interview_id",
			Message: "interviewId is required",
		})
		return nil, false
	}

	sess, ok := h.registry.Get(interviewID)
	if !ok {
		sess = session.New(interviewID, h.sessionCfg, session.StartOptions{})
		if err := sess.Initialize(r.Context()); err != nil {
			h.writeSessionError(w, err)
			return nil, false
		}
		h.registry.Put(interviewID, sess)
		metrics.SetActiveSessions(h.registry.Size())
		h.logger.Info("Interview session resumed", zap.String("interview_id", interviewID))
	}

	// Row-level access: interviews are only visible to their owner.
	if owner := sess.Owner(); owner != "" && owner != middleware.GetUserID(r) {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "not_found",
			Message: "Interview not found",
		})
		return nil, false
	}
	return sess, true
}

func (h *SessionHandler) writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "not_found",
			Message: "Interview not found",
		})
	case errors.Is(err, session.ErrInvalidState):
		utils.JSON(w, http.StatusConflict, models.ErrorResponse{
			Code:    "invalid_state",
			Message: "The session does not permit this operation right now",
		})
	default:
		var provErr *llm.ProviderError
		if errors.As(err, &provErr) {
			status := http.StatusBadGateway
			if provErr.Code == llm.ErrCodeRateLimit {
				status = http.StatusTooManyRequests
			}
			h.logger.Error("AI provider error", zap.String("code", provErr.Code), zap.Error(err))
			utils.JSON(w, status, models.ErrorResponse{
				Code:    "ai_error",
				Message: "The AI service is unavailable. Your answers are safe; please retry.",
			})
			return
		}
		h.logger.Error("Session operation failed", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Something went wrong. Your answers are safe; please retry.",
		})
	}
}
