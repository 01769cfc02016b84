package models

// JSON contracts for the external question generator and evaluator.

type GenerateQuestionsRequest struct {
	InterviewType string  `json:"interviewType"`
	Skills        []Skill `json:"skills,omitempty"`
	InterviewID   string  `json:"interviewId"`
	Difficulty    string  `json:"difficulty"`
	Language      string  `json:"language,omitempty"`
	ResumeText    string  `json:"resumeText,omitempty"`
}

// GeneratedQuestion is one question record as produced by the
// generator, before normalization.
type GeneratedQuestion struct {
	QuestionType   string   `json:"question_type"`
	SkillName      string   `json:"skill_name,omitempty"`
	Difficulty     string   `json:"difficulty"`
	QuestionText   string   `json:"question_text"`
	ExpectedAnswer string   `json:"expected_answer,omitempty"`
	Options        []string `json:"options,omitempty"`
}

// QuestionPayload is the fallback evaluation record built from the
// finalized in-memory view, supplied whenever persisted rows cannot be
// trusted to exist.
type QuestionPayload struct {
	QuestionType   string `json:"question_type"`
	Difficulty     string `json:"difficulty"`
	QuestionText   string `json:"question_text"`
	ExpectedAnswer string `json:"expected_answer"`
	UserAnswer     string `json:"user_answer"`
	UserCode       string `json:"user_code"`
}

type EvaluateRequest struct {
	InterviewID   string            `json:"interviewId"`
	QuestionsData []QuestionPayload `json:"questionsData,omitempty"`
}

// QuestionEvaluation is the evaluator's verdict on one question, in
// the same order as the submitted payload.
type QuestionEvaluation struct {
	IsCorrect bool   `json:"is_correct"`
	Score     int    `json:"score"`
	Feedback  string `json:"feedback"`
}

type EvaluationResult struct {
	TotalScore  int                  `json:"totalScore"`
	MaxScore    int                  `json:"maxScore"`
	Feedback    string               `json:"feedback"`
	PerQuestion []QuestionEvaluation `json:"perQuestion,omitempty"`
}
