package models

import (
	"errors"
	"testing"
)

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if code == "" {
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		return
	}
	var resp *ErrorResponse
	if !errors.As(err, &resp) {
		t.Fatalf("expected ErrorResponse with code %s, got %v", code, err)
	}
	if resp.Code != code {
		t.Fatalf("expected code %s, got %s", code, resp.Code)
	}
}

func TestStartInterviewRequestValidate(t *testing.T) {
	cases := []struct {
		name string
		req  StartInterviewRequest
		code string
	}{
		{"valid coding", StartInterviewRequest{Type: "coding", Difficulty: "easy", Language: "python"}, ""},
		{"normalizes case", StartInterviewRequest{Type: "  HR  ", Difficulty: "MEDIUM"}, ""},
		{"missing type", StartInterviewRequest{}, "missing_type"},
		{"unknown type", StartInterviewRequest{Type: "trivia"}, "invalid_type"},
		{"unknown difficulty", StartInterviewRequest{Type: "coding", Difficulty: "brutal"}, "invalid_difficulty"},
		{"unknown language", StartInterviewRequest{Type: "coding", Language: "cobol"}, "unsupported_language"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assertCode(t, c.req.Validate(), c.code)
		})
	}
}

func TestStartInterviewRequestDefaultsDifficulty(t *testing.T) {
	req := StartInterviewRequest{Type: "aptitude"}
	if err := req.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if req.Difficulty != DifficultyMedium {
		t.Fatalf("expected default medium, got %s", req.Difficulty)
	}
}

func TestNavigateRequestValidate(t *testing.T) {
	three := 3
	cases := []struct {
		name string
		req  NavigateRequest
		code string
	}{
		{"next", NavigateRequest{Action: "next"}, ""},
		{"prev", NavigateRequest{Action: "Prev"}, ""},
		{"goto with index", NavigateRequest{Action: "goto", Index: &three}, ""},
		{"goto without index", NavigateRequest{Action: "goto"}, "missing_index"},
		{"unknown action", NavigateRequest{Action: "teleport"}, "invalid_action"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assertCode(t, c.req.Validate(), c.code)
		})
	}
}

func TestSaveAnswerRequestAllowsEmpty(t *testing.T) {
	req := SaveAnswerRequest{}
	if err := req.Validate(); err != nil {
		t.Fatalf("clearing an answer must be a legal save, got %v", err)
	}
}

func TestRunCodeRequestValidate(t *testing.T) {
	cases := []struct {
		name string
		req  RunCodeRequest
		code string
	}{
		{"valid", RunCodeRequest{Code: "print(1)", Language: "Python"}, ""},
		{"missing code", RunCodeRequest{Language: "python"}, "missing_code"},
		{"missing language", RunCodeRequest{Code: "x"}, "missing_language"},
		{"unsupported language", RunCodeRequest{Code: "x", Language: "cobol"}, "unsupported_language"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assertCode(t, c.req.Validate(), c.code)
		})
	}
}

func TestQuestionAnswerAccessors(t *testing.T) {
	coding := Question{QuestionType: QuestionTypeCoding}
	coding.SetAnswer("func main() {}")
	if coding.UserCode != "func main() {}" || coding.UserAnswer != "" {
		t.Fatalf("coding answers belong in UserCode: %+v", coding)
	}
	if coding.Kind() != KindCoding {
		t.Fatalf("expected KindCoding, got %v", coding.Kind())
	}

	hr := Question{QuestionType: QuestionTypeHR}
	hr.SetAnswer("I led a team of five")
	if hr.UserAnswer != "I led a team of five" || hr.UserCode != "" {
		t.Fatalf("free text answers belong in UserAnswer: %+v", hr)
	}
	if hr.Kind() != KindFreeText {
		t.Fatalf("expected KindFreeText, got %v", hr.Kind())
	}

	mcq := Question{QuestionType: QuestionTypeAptitude}
	if mcq.Kind() != KindMultipleChoice {
		t.Fatalf("expected KindMultipleChoice, got %v", mcq.Kind())
	}
	if mcq.Answer() != "" {
		t.Fatalf("expected empty answer, got %q", mcq.Answer())
	}
}

func TestMaxPoints(t *testing.T) {
	if got := (&Question{Difficulty: DifficultyEasy}).MaxPoints(); got != 10 {
		t.Fatalf("easy should score up to 10, got %d", got)
	}
	if got := (&Question{Difficulty: DifficultyHard}).MaxPoints(); got != 30 {
		t.Fatalf("hard should score up to 30, got %d", got)
	}
	if got := (&Question{Difficulty: "weird"}).MaxPoints(); got != 20 {
		t.Fatalf("unknown difficulties score as medium, got %d", got)
	}
}
