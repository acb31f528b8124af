package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/Axolotls/config"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// CodeEvaluation is the AI judge's verdict on a coding-type submission.
type CodeEvaluation struct {
	IsPassing   bool     `json:"is_passing"`
	Score       float64  `json:"score"`
	Feedback    string   `json:"feedback"`
	Suggestions []string `json:"suggestions"`
}

// ExerciseFeedback is the generated hint payload for an incorrect closed-form
// answer. Hints are progressively specific and must not reveal the answer.
type ExerciseFeedback struct {
	Feedback        string   `json:"feedback"`
	Hints           []string `json:"hints"`
	RelatedConcepts []string `json:"related_concepts"`
}

// GeminiLLMService is the AI collaborator behind answer judging and feedback
// generation. Callers must treat failures as degradable: a broken judge call
// never aborts a submission.
type GeminiLLMService interface {
	EvaluateCode(question, code string, attemptNumber int, skillLevel, criteria string) (*CodeEvaluation, error)
	GenerateFeedback(question, exerciseType, userAnswer, correctAnswer string, attemptNumber int, skillLevel string) (*ExerciseFeedback, error)
}

type geminiLLMService struct {
	client *genai.GenerativeModel
	cfg    *config.Config
}

func NewGeminiLLMService(cfg *config.Config) (GeminiLLMService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. GeminiLLMService will be non-functional.")
		return &geminiLLMService{cfg: cfg, client: nil}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	model := client.GenerativeModel(cfg.GeminiModel)
	return &geminiLLMService{client: model, cfg: cfg}, nil
}

// extractJSONBlock strips an optional markdown code fence and returns the
// first top-level JSON object in the response.
func extractJSONBlock(raw string) (string, error) {
	cleaned := strings.TrimSpace(raw)
	if start := strings.Index(cleaned, "```"); start != -1 {
		cleaned = cleaned[start+3:]
		cleaned = strings.TrimPrefix(cleaned, "json")
		if end := strings.Index(cleaned, "```"); end != -1 {
			cleaned = cleaned[:end]
		}
		cleaned = strings.TrimSpace(cleaned)
	}
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("response does not contain a JSON object. Raw: %s", raw)
	}
	return cleaned[start : end+1], nil
}

func (s *geminiLLMService) generate(prompt string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("gemini client not initialized")
	}

	ctx := context.Background()
	resp, err := s.client.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no content")
	}

	fullResponseText := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			fullResponseText += string(txt)
		}
	}
	if fullResponseText == "" {
		return "", fmt.Errorf("gemini returned no text content")
	}
	return fullResponseText, nil
}

// EvaluateCode asks the judge to grade a free-form coding answer against the
// exercise's evaluation criteria. The returned score is clamped to 0-100.
func (s *geminiLLMService) EvaluateCode(question, code string, attemptNumber int, skillLevel, criteria string) (*CodeEvaluation, error) {
	var b strings.Builder
	b.WriteString("You are an expert JavaScript tutor grading a student's code submission.\n")
	fmt.Fprintf(&b, "The student is at %s level and this is attempt number %d of 3.\n\n", skillLevel, attemptNumber)
	b.WriteString("Exercise:\n---\n")
	b.WriteString(question)
	b.WriteString("\n---\n\n")
	if criteria != "" {
		b.WriteString("Evaluation criteria:\n---\n")
		b.WriteString(criteria)
		b.WriteString("\n---\n\n")
	}
	b.WriteString("Student's code:\n---\n")
	b.WriteString(code)
	b.WriteString("\n---\n\n")
	b.WriteString("Judge whether the code satisfies the exercise and the criteria. Be stricter with intermediate students than with beginners.\n")
	b.WriteString("Respond with ONLY a JSON object in exactly this shape, no prose around it:\n")
	b.WriteString(`{"is_passing": true/false, "score": 0-100, "feedback": "specific, encouraging feedback on the code", "suggestions": ["2-3 concrete improvement suggestions"]}`)
	b.WriteString("\n")

	raw, err := s.generate(b.String())
	if err != nil {
		log.Error().Err(err).Int("attemptNumber", attemptNumber).Msg("Gemini code evaluation failed")
		return nil, err
	}

	jsonBlock, err := extractJSONBlock(raw)
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", raw).Msg("Failed to locate JSON in code evaluation response")
		return nil, err
	}

	var eval CodeEvaluation
	if err := json.Unmarshal([]byte(jsonBlock), &eval); err != nil {
		log.Warn().Err(err).Str("jsonBlock", jsonBlock).Msg("Failed to parse code evaluation JSON")
		return nil, fmt.Errorf("could not parse code evaluation from AI response: %w", err)
	}

	if eval.Score > 100 {
		eval.Score = 100
	}
	if eval.Score < 0 {
		eval.Score = 0
	}
	return &eval, nil
}

// GenerateFeedback produces hint text for a wrong closed-form answer. Called
// only while the student still has attempts left; the last failed attempt
// reveals the correct answer instead, so no hints are needed there.
func (s *geminiLLMService) GenerateFeedback(question, exerciseType, userAnswer, correctAnswer string, attemptNumber int, skillLevel string) (*ExerciseFeedback, error) {
	var b strings.Builder
	b.WriteString("You are a patient JavaScript tutor helping a student who answered an exercise incorrectly.\n")
	fmt.Fprintf(&b, "The student is at %s level. This was attempt number %d of 3, so they will try again.\n\n", skillLevel, attemptNumber)
	fmt.Fprintf(&b, "Exercise type: %s\n", exerciseType)
	b.WriteString("Question:\n---\n")
	b.WriteString(question)
	b.WriteString("\n---\n\n")
	b.WriteString("Student's answer:\n---\n")
	b.WriteString(userAnswer)
	b.WriteString("\n---\n\n")
	b.WriteString("Correct answer (NEVER reveal this to the student, not even partially):\n---\n")
	b.WriteString(correctAnswer)
	b.WriteString("\n---\n\n")
	b.WriteString("Explain what went wrong conceptually and give 2-3 progressively more specific hints that guide the student toward the answer without giving it away.\n")
	b.WriteString("Respond with ONLY a JSON object in exactly this shape, no prose around it:\n")
	b.WriteString(`{"feedback": "short explanation of the mistake", "hints": ["vague hint", "more specific hint", "most specific hint"], "related_concepts": ["concept names to review"]}`)
	b.WriteString("\n")

	raw, err := s.generate(b.String())
	if err != nil {
		log.Error().Err(err).Int("attemptNumber", attemptNumber).Msg("Gemini feedback generation failed")
		return nil, err
	}

	jsonBlock, err := extractJSONBlock(raw)
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", raw).Msg("Failed to locate JSON in feedback response")
		return nil, err
	}

	var feedback ExerciseFeedback
	if err := json.Unmarshal([]byte(jsonBlock), &feedback); err != nil {
		log.Warn().Err(err).Str("jsonBlock", jsonBlock).Msg("Failed to parse feedback JSON")
		return nil, fmt.Errorf("could not parse feedback from AI response: %w", err)
	}
	return &feedback, nil
}
