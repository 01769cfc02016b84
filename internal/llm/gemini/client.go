package gemini

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
	"google.golang.org/genai"

	"mockmate/interview/internal/llm"
	"mockmate/interview/internal/models"
	"mockmate/interview/internal/prompts"
	"mockmate/interview/internal/utils"
)

// Client implements llm.Provider on top of the Gemini API.
type Client struct {
	client  *genai.Client
	config  *Config
	prompts prompts.PromptProvider
}

func NewClient(config *Config) (*Client, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeAPIKey,
			Message:  "Failed to create Gemini client",
			Err:      err,
		}
	}

	promptManager, err := prompts.NewPromptManager()
	if err != nil {
		return nil, err
	}

	return &Client{
		client:  client,
		config:  config,
		prompts: promptManager,
	}, nil
}

func (c *Client) GetProviderName() string {
	return "gemini"
}

// generate performs one model call and returns the raw response text
// with any markdown fences stripped.
func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	result, err := c.client.Models.GenerateContent(
		ctx,
		c.config.Model,
		genai.Text(prompt),
		nil,
	)
	if err != nil {
		return "", &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeServiceDown,
			Message:  "Failed to generate content",
			Err:      err,
		}
	}
	if result == nil {
		return "", &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidResponse,
			Message:  "No response generated",
		}
	}

	text, err := result.Text()
	if err != nil {
		return "", &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidResponse,
			Message:  "Failed to extract response text",
			Err:      err,
		}
	}
	if text == "" {
		return "", &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidResponse,
			Message:  "Empty response generated",
		}
	}
	return utils.StripFences(text), nil
}

// GenerateQuestions asks the model for an ordered question set. When
// the model answers with unparseable content the built-in default set
// is substituted instead of failing the session.
func (c *Client) GenerateQuestions(ctx context.Context, req *models.GenerateQuestionsRequest) ([]models.GeneratedQuestion, error) {
	skills := make([]string, 0, len(req.Skills))
	for _, s := range req.Skills {
		if s.Level != "" {
			skills = append(skills, s.Name+" ("+utils.NormalizeLevel(s.Level)+")")
		} else {
			skills = append(skills, s.Name)
		}
	}

	data := map[string]string{
		"Difficulty": req.Difficulty,
		"Skills":     strings.Join(skills, ", "),
		"ResumeText": req.ResumeText,
		"Language":   req.Language,
	}
	prompt, err := c.prompts.BuildPrompt("generate", req.InterviewType, data)
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Failed to build generation prompt",
			Err:      err,
		}
	}

	text, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	parsed := gjson.Get(text, "questions")
	if !parsed.IsArray() {
		return llm.DefaultQuestions(req), nil
	}

	var questions []models.GeneratedQuestion
	parsed.ForEach(func(_, item gjson.Result) bool {
		q := models.GeneratedQuestion{
			QuestionType:   strings.ToLower(item.Get("question_type").String()),
			SkillName:      item.Get("skill_name").String(),
			Difficulty:     utils.NormalizeDifficulty(item.Get("difficulty").String()),
			QuestionText:   strings.TrimSpace(item.Get("question_text").String()),
			ExpectedAnswer: item.Get("expected_answer").String(),
		}
		for _, opt := range item.Get("options").Array() {
			q.Options = append(q.Options, opt.String())
		}
		if !models.ValidQuestionTypes[q.QuestionType] || q.QuestionText == "" {
			return true
		}
		if !models.ValidDifficulties[q.Difficulty] {
			q.Difficulty = req.Difficulty
		}
		questions = append(questions, q)
		return true
	})

	if len(questions) == 0 {
		return llm.DefaultQuestions(req), nil
	}
	return questions, nil
}

// Evaluate grades the finalized question set. The "no_questions"
// response is surfaced as llm.ErrNoQuestions so callers can treat it
// distinctly from transport errors.
func (c *Client) Evaluate(ctx context.Context, req *models.EvaluateRequest) (*models.EvaluationResult, error) {
	payload, err := json.Marshal(req.QuestionsData)
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Failed to encode evaluation payload",
			Err:      err,
		}
	}

	prompt, err := c.prompts.BuildPrompt("evaluate", "default", map[string]string{
		"QuestionsData": string(payload),
	})
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Failed to build evaluation prompt",
			Err:      err,
		}
	}

	text, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	if gjson.Get(text, "error").String() == "no_questions" {
		return nil, llm.ErrNoQuestions
	}

	total := gjson.Get(text, "totalScore")
	max := gjson.Get(text, "maxScore")
	if !total.Exists() || !max.Exists() {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidResponse,
			Message:  "Evaluator response missing score totals",
		}
	}

	result := &models.EvaluationResult{
		TotalScore: int(total.Int()),
		MaxScore:   int(max.Int()),
		Feedback:   gjson.Get(text, "feedback").String(),
	}
	if result.Feedback == "" {
		result.Feedback = llm.DefaultFeedback
	}

	gjson.Get(text, "perQuestion").ForEach(func(_, item gjson.Result) bool {
		result.PerQuestion = append(result.PerQuestion, models.QuestionEvaluation{
			IsCorrect: item.Get("is_correct").Bool(),
			Score:     int(item.Get("score").Int()),
			Feedback:  item.Get("feedback").String(),
		})
		return true
	})

	return result, nil
}

// ExtractSkills pulls {name, level} skills out of resume text. A
// malformed response degrades to no skills rather than blocking
// session start.
func (c *Client) ExtractSkills(ctx context.Context, resumeText string) ([]models.Skill, error) {
	prompt, err := c.prompts.BuildPrompt("skills", "default", map[string]string{
		"ResumeText": resumeText,
	})
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Failed to build skills prompt",
			Err:      err,
		}
	}

	text, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var skills []models.Skill
	gjson.Get(text, "skills").ForEach(func(_, item gjson.Result) bool {
		name := strings.TrimSpace(item.Get("name").String())
		if name == "" {
			return true
		}
		skills = append(skills, models.Skill{
			Name:  name,
			Level: utils.NormalizeLevel(item.Get("level").String()),
		})
		return true
	})
	return skills, nil
}
