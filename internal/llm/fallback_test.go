package llm

import (
	"testing"

	"mockmate/interview/internal/models"
)

func TestDefaultQuestionsPerType(t *testing.T) {
	cases := []struct {
		interviewType string
		wantType      string
	}{
		{models.InterviewTypeCoding, models.QuestionTypeCoding},
		{models.InterviewTypeHR, models.QuestionTypeHR},
	}
	for _, c := range cases {
		t.Run(c.interviewType, func(t *testing.T) {
			questions := DefaultQuestions(&models.GenerateQuestionsRequest{
				InterviewType: c.interviewType,
				Difficulty:    models.DifficultyEasy,
			})
			if len(questions) == 0 {
				t.Fatal("expected a non-empty default set")
			}
			for _, q := range questions {
				if q.QuestionType != c.wantType {
					t.Fatalf("expected %s questions, got %s", c.wantType, q.QuestionType)
				}
				if q.Difficulty != models.DifficultyEasy {
					t.Fatalf("expected requested difficulty, got %s", q.Difficulty)
				}
				if q.QuestionText == "" {
					t.Fatal("default question missing text")
				}
			}
		})
	}
}

func TestDefaultQuestionsCombined(t *testing.T) {
	questions := DefaultQuestions(&models.GenerateQuestionsRequest{
		InterviewType: models.InterviewTypeCombined,
		Difficulty:    models.DifficultyMedium,
	})

	var sawAptitude, sawCoding bool
	for _, q := range questions {
		switch q.QuestionType {
		case models.QuestionTypeAptitude:
			sawAptitude = true
		case models.QuestionTypeCoding:
			sawCoding = true
		}
	}
	if !sawAptitude || !sawCoding {
		t.Fatalf("combined set should mix aptitude and coding, got %+v", questions)
	}
}

func TestDefaultQuestionsOptionContract(t *testing.T) {
	questions := DefaultQuestions(&models.GenerateQuestionsRequest{
		InterviewType: models.InterviewTypeAptitude,
		Difficulty:    "nonsense",
	})
	for _, q := range questions {
		if q.Difficulty != models.DifficultyMedium {
			t.Fatalf("unknown difficulty should fall back to medium, got %s", q.Difficulty)
		}
		if len(q.Options) != models.OptionCount {
			t.Fatalf("aptitude defaults must carry %d options, got %d", models.OptionCount, len(q.Options))
		}
	}
}
