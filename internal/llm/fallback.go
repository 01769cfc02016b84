package llm

import (
	"mockmate/interview/internal/models"
)

// DefaultQuestions is the built-in question set used when the
// generator returns unparseable content. A degraded session with
// generic questions beats an aborted one.
func DefaultQuestions(req *models.GenerateQuestionsRequest) []models.GeneratedQuestion {
	difficulty := req.Difficulty
	if !models.ValidDifficulties[difficulty] {
		difficulty = models.DifficultyMedium
	}

	switch req.InterviewType {
	case models.InterviewTypeCoding:
		return []models.GeneratedQuestion{
			{
				QuestionType:   models.QuestionTypeCoding,
				Difficulty:     difficulty,
				QuestionText:   "Write a function that returns the first non-repeating character in a string, or an empty string if every character repeats.",
				ExpectedAnswer: "Count character occurrences in one pass, then scan the string again returning the first character with count 1.",
			},
			{
				QuestionType:   models.QuestionTypeCoding,
				Difficulty:     difficulty,
				QuestionText:   "Given a sorted array and a target value, write a function that returns the index of the target or -1 if absent. Aim for logarithmic time.",
				ExpectedAnswer: "Binary search over the array bounds.",
			},
		}
	case models.InterviewTypeHR:
		return []models.GeneratedQuestion{
			{
				QuestionType:   models.QuestionTypeHR,
				Difficulty:     difficulty,
				QuestionText:   "Tell me about a project you are proud of. What was your role and what would you do differently today?",
				ExpectedAnswer: "Looks for ownership, concrete impact, and honest reflection.",
			},
			{
				QuestionType:   models.QuestionTypeHR,
				Difficulty:     difficulty,
				QuestionText:   "Describe a time you disagreed with a teammate on a technical decision. How was it resolved?",
				ExpectedAnswer: "Looks for collaboration, evidence-based argument, and willingness to commit.",
			},
		}
	case models.InterviewTypeCombined:
		return append(DefaultQuestions(&models.GenerateQuestionsRequest{
			InterviewType: models.InterviewTypeAptitude,
			Difficulty:    difficulty,
		}), DefaultQuestions(&models.GenerateQuestionsRequest{
			InterviewType: models.InterviewTypeCoding,
			Difficulty:    difficulty,
		})...)
	default: // aptitude
		return []models.GeneratedQuestion{
			{
				QuestionType:   models.QuestionTypeAptitude,
				Difficulty:     difficulty,
				QuestionText:   "A train travels 120 km in 90 minutes. What is its average speed?",
				ExpectedAnswer: "80 km/h",
				Options:        []string{"60 km/h", "75 km/h", "80 km/h", "90 km/h"},
			},
			{
				QuestionType:   models.QuestionTypeLogical,
				Difficulty:     difficulty,
				QuestionText:   "Which number continues the sequence 2, 6, 12, 20, 30, ...?",
				ExpectedAnswer: "42",
				Options:        []string{"36", "40", "42", "44"},
			},
			{
				QuestionType:   models.QuestionTypeVerbal,
				Difficulty:     difficulty,
				QuestionText:   "Choose the word most nearly opposite in meaning to 'candid'.",
				ExpectedAnswer: "Evasive",
				Options:        []string{"Frank", "Evasive", "Sincere", "Blunt"},
			},
		}
	}
}

// DefaultFeedback is the narrative substituted when the evaluator's
// per-question verdicts parse but its summary text does not.
const DefaultFeedback = "Evaluation completed. Detailed narrative feedback was unavailable for this session; per-question scores are shown below."
