package models

// Interview types
const (
	InterviewTypeCoding   = "coding"
	InterviewTypeAptitude = "aptitude"
	InterviewTypeCombined = "combined"
	InterviewTypeHR       = "hr"
)

// Interview statuses. Transitions only in_progress -> completed.
const (
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Question types
const (
	QuestionTypeCoding   = "coding"
	QuestionTypeAptitude = "aptitude"
	QuestionTypeLogical  = "logical"
	QuestionTypeVerbal   = "verbal"
	QuestionTypeHR       = "hr"
)

// Difficulties
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// contains all valid interview types (in lowercase)
var ValidInterviewTypes = map[string]bool{
	InterviewTypeCoding:   true,
	InterviewTypeAptitude: true,
	InterviewTypeCombined: true,
	InterviewTypeHR:       true,
}

// contains all valid question types (in lowercase)
var ValidQuestionTypes = map[string]bool{
	QuestionTypeCoding:   true,
	QuestionTypeAptitude: true,
	QuestionTypeLogical:  true,
	QuestionTypeVerbal:   true,
	QuestionTypeHR:       true,
}

// contains all valid difficulties (in lowercase)
var ValidDifficulties = map[string]bool{
	DifficultyEasy:   true,
	DifficultyMedium: true,
	DifficultyHard:   true,
}

// contains all supported sandbox languages (in lowercase)
var SupportedLanguages = map[string]bool{
	"python":     true,
	"java":       true,
	"cpp":        true,
	"javascript": true,
}

// DifficultyPoints is the per-question scoring ceiling. The evaluator
// owns the policy; this service only validates against it.
var DifficultyPoints = map[string]int{
	DifficultyEasy:   10,
	DifficultyMedium: 20,
	DifficultyHard:   30,
}

// OptionCount is the required number of choices on a multiple-choice
// question. Generator responses that violate it are patched with
// GenericOptions rather than rejected.
const OptionCount = 4

var GenericOptions = []string{"Option A", "Option B", "Option C", "Option D"}

func ValidInterviewTypesList() []string {
	return []string{InterviewTypeCoding, InterviewTypeAptitude, InterviewTypeCombined, InterviewTypeHR}
}

func ValidDifficultiesList() []string {
	return []string{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

func SupportedLanguagesList() []string {
	return []string{"python", "java", "cpp", "javascript"}
}
