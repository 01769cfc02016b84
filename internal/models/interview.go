package models

import (
	"time"

	"gorm.io/datatypes"
)

// Interview represents one practice session.
type Interview struct {
	ID          string     `gorm:"primaryKey" json:"id"`
	UserID      string     `gorm:"not null;index" json:"user_id"`
	Type        string     `gorm:"not null" json:"type"`
	Status      string     `gorm:"not null;default:in_progress" json:"status"`
	TotalScore  int        `gorm:"not null;default:0" json:"total_score"`
	MaxScore    int        `gorm:"not null;default:0" json:"max_score"`
	Feedback    string     `gorm:"type:text" json:"feedback"`
	StartedAt   time.Time  `gorm:"not null" json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Interview) TableName() string { return "interviews" }

// Question is one question within an interview. ID is either a
// server-assigned UUID or a local placeholder when the insert failed
// (see store.PlaceholderID).
type Question struct {
	ID             string                      `gorm:"primaryKey" json:"id"`
	InterviewID    string                      `gorm:"not null;index" json:"interview_id"`
	Position       int                         `gorm:"not null" json:"position"`
	QuestionType   string                      `gorm:"not null" json:"question_type"`
	SkillName      string                      `json:"skill_name,omitempty"`
	Difficulty     string                      `gorm:"not null" json:"difficulty"`
	QuestionText   string                      `gorm:"type:text;not null" json:"question_text"`
	ExpectedAnswer string                      `gorm:"type:text" json:"expected_answer,omitempty"`
	Options        datatypes.JSONSlice[string] `json:"options,omitempty"`
	UserAnswer     string                      `gorm:"type:text" json:"user_answer"`
	UserCode       string                      `gorm:"type:text" json:"user_code"`
	IsCorrect      *bool                       `json:"is_correct,omitempty"`
	Score          *int                        `json:"score,omitempty"`
	AIFeedback     string                      `gorm:"type:text" json:"ai_feedback,omitempty"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}

func (Question) TableName() string { return "interview_questions" }

// AnswerKind is the closed set of answer channels a question can have.
// Exactly one of UserAnswer/UserCode is "the" answer for a question,
// and Kind decides which.
type AnswerKind int

const (
	KindFreeText AnswerKind = iota
	KindMultipleChoice
	KindCoding
)

func (q *Question) Kind() AnswerKind {
	switch q.QuestionType {
	case QuestionTypeCoding:
		return KindCoding
	case QuestionTypeHR:
		return KindFreeText
	default:
		return KindMultipleChoice
	}
}

// Answer returns the answer field selected by Kind.
func (q *Question) Answer() string {
	if q.Kind() == KindCoding {
		return q.UserCode
	}
	return q.UserAnswer
}

// SetAnswer writes the answer field selected by Kind.
func (q *Question) SetAnswer(value string) {
	if q.Kind() == KindCoding {
		q.UserCode = value
	} else {
		q.UserAnswer = value
	}
}

// MaxPoints returns the per-question ceiling for the question's
// difficulty. Unknown difficulties score as medium.
func (q *Question) MaxPoints() int {
	if pts, ok := DifficultyPoints[q.Difficulty]; ok {
		return pts
	}
	return DifficultyPoints[DifficultyMedium]
}
