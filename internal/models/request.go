package models

import (
	"strings"
)

// Skill is one extracted resume skill with a proficiency level.
type Skill struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

type StartInterviewRequest struct {
	Type       string  `json:"type"`
	Difficulty string  `json:"difficulty"`
	Language   string  `json:"language,omitempty"`
	ResumeText string  `json:"resume_text,omitempty"`
	Skills     []Skill `json:"skills,omitempty"`
}

// implements the Validator interface
func (r *StartInterviewRequest) Validate() error {
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	if r.Type == "" {
		return &ErrorResponse{
			Code:    "missing_type",
			Message: "Interview type is required",
		}
	}
	if !ValidInterviewTypes[r.Type] {
		return &ErrorResponse{
			Code:    "invalid_type",
			Message: "Interview type must be one of: " + strings.Join(ValidInterviewTypesList(), ", "),
		}
	}

	r.Difficulty = strings.ToLower(strings.TrimSpace(r.Difficulty))
	if r.Difficulty == "" {
		r.Difficulty = DifficultyMedium
	}
	if !ValidDifficulties[r.Difficulty] {
		return &ErrorResponse{
			Code:    "invalid_difficulty",
			Message: "Difficulty must be one of: " + strings.Join(ValidDifficultiesList(), ", "),
		}
	}

	r.Language = strings.ToLower(strings.TrimSpace(r.Language))
	if r.Language != "" && !SupportedLanguages[r.Language] {
		return &ErrorResponse{
			Code:    "unsupported_language",
			Message: "Language not supported. Supported languages: " + strings.Join(SupportedLanguagesList(), ", "),
		}
	}

	return nil
}

type SaveAnswerRequest struct {
	Answer string `json:"answer"`
}

// An empty answer is a legal save (clearing a previous edit), so there
// is nothing to reject here.
func (r *SaveAnswerRequest) Validate() error {
	return nil
}

// navigation actions
const (
	NavNext = "next"
	NavPrev = "prev"
	NavGoTo = "goto"
)

type NavigateRequest struct {
	Action string `json:"action"`
	Index  *int   `json:"index,omitempty"`
	Answer string `json:"answer"`
}

func (r *NavigateRequest) Validate() error {
	r.Action = strings.ToLower(strings.TrimSpace(r.Action))
	switch r.Action {
	case NavNext, NavPrev:
		return nil
	case NavGoTo:
		if r.Index == nil {
			return &ErrorResponse{
				Code:    "missing_index",
				Message: "Index is required for goto navigation",
			}
		}
		return nil
	default:
		return &ErrorResponse{
			Code:    "invalid_action",
			Message: "Action must be one of: next, prev, goto",
		}
	}
}

type RunCodeRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

func (r *RunCodeRequest) Validate() error {
	if r.Code == "" {
		return &ErrorResponse{
			Code:    "missing_code",
			Message: "Code field is required",
		}
	}
	r.Language = strings.ToLower(strings.TrimSpace(r.Language))
	if r.Language == "" {
		return &ErrorResponse{
			Code:    "missing_language",
			Message: "Language field is required",
		}
	}
	if !SupportedLanguages[r.Language] {
		return &ErrorResponse{
			Code:    "unsupported_language",
			Message: "Language not supported. Supported languages: " + strings.Join(SupportedLanguagesList(), ", "),
		}
	}
	return nil
}

// TranscriptMessage is one websocket frame from the speech capture
// channel. Only final increments mutate the session; interim frames
// exist so the client can render live text.
type TranscriptMessage struct {
	Text  string `json:"text"`
	Final bool   `json:"final"`
}
