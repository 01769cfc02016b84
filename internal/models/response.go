package models

// uniform error responses
type ErrorResponse struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Details []ValidationErrorDetail `json:"details,omitempty"`
}

// single field validation error
type ValidationErrorDetail struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ErrorResponse) Error() string {
	return e.Code + ": " + e.Message
}

// QuestionView is the client-facing projection of a question. The
// expected answer never leaves the server before evaluation.
type QuestionView struct {
	ID           string   `json:"id"`
	Position     int      `json:"position"`
	QuestionType string   `json:"question_type"`
	SkillName    string   `json:"skill_name,omitempty"`
	Difficulty   string   `json:"difficulty"`
	QuestionText string   `json:"question_text"`
	Options      []string `json:"options,omitempty"`
	UserAnswer   string   `json:"user_answer"`
	UserCode     string   `json:"user_code"`
	Persisted    bool     `json:"persisted"`
}

// SessionSnapshot is the read view served by the session state
// endpoint and returned after every mutating call.
type SessionSnapshot struct {
	InterviewID     string         `json:"interview_id"`
	State           string         `json:"state"`
	VoiceSupported  bool           `json:"voice_supported"`
	CurrentIndex    int            `json:"current_index"`
	QuestionCount   int            `json:"question_count"`
	Buffer          string         `json:"buffer"`
	TotalSeconds    int            `json:"total_seconds"`
	QuestionSeconds int            `json:"question_seconds"`
	Clock           string         `json:"clock"`
	PerQuestionTime map[int]int    `json:"per_question_time,omitempty"`
	Questions       []QuestionView `json:"questions"`
}

type StartInterviewResponse struct {
	InterviewID string          `json:"interview_id"`
	Snapshot    SessionSnapshot `json:"snapshot"`
}

type FinishResponse struct {
	TotalScore int    `json:"total_score"`
	MaxScore   int    `json:"max_score"`
	Feedback   string `json:"feedback"`
}

type RunCodeResponse struct {
	Output   string `json:"output"`
	ExitCode int    `json:"exit_code"`
}
