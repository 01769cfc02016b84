package llm

import (
	"context"
	"errors"

	"mockmate/interview/internal/models"
)

// Provider is the gateway to the language model backing question
// generation, answer evaluation and resume skill extraction.
type Provider interface {
	GenerateQuestions(ctx context.Context, req *models.GenerateQuestionsRequest) ([]models.GeneratedQuestion, error)
	Evaluate(ctx context.Context, req *models.EvaluateRequest) (*models.EvaluationResult, error)
	ExtractSkills(ctx context.Context, resumeText string) ([]models.Skill, error)
	GetProviderName() string
}

// ErrNoQuestions is the evaluator's recognized "nothing gradable"
// outcome. Callers handle it distinctly from transport errors: the
// interview stays in progress and the user is told to restart.
var ErrNoQuestions = errors.New("evaluator found no gradable questions")

// represents an error from an LLM provider
type ProviderError struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return e.Provider + " error: " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Provider + " error: " + e.Message
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Common error codes
// For current and future use across different providers
const (
	ErrCodeAPIKey          = "invalid_api_key"
	ErrCodeRateLimit       = "rate_limit_exceeded"
	ErrCodeServiceDown     = "service_unavailable"
	ErrCodeInvalidInput    = "invalid_input"
	ErrCodeInvalidResponse = "invalid_response"
	ErrCodeTimeout         = "timeout"
)
