package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/ndkhang/hirestage/config"
	"github.com/ndkhang/hirestage/internal/apperror"
	"github.com/ndkhang/hirestage/internal/dto"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

type QuestionGeneratorService interface {
	DraftQuestions(req dto.DraftQuestionsRequest) ([]dto.DraftQuestionDTO, error)
}

type questionGeneratorService struct {
	client *genai.GenerativeModel
	cfg    *config.Config
}

func NewQuestionGeneratorService(cfg *config.Config) (QuestionGeneratorService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. QuestionGeneratorService will be non-functional.")
		return &questionGeneratorService{cfg: cfg, client: nil}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	model := client.GenerativeModel("gemini-1.5-flash")
	return &questionGeneratorService{client: model, cfg: cfg}, nil
}

func (s *questionGeneratorService) DraftQuestions(req dto.DraftQuestionsRequest) ([]dto.DraftQuestionDTO, error) {
	if s.client == nil {
		return nil, fmt.Errorf("gemini client not initialized")
	}

	ctx := context.Background()
	prompt := fmt.Sprintf(`You are an experienced technical recruiter preparing a screening test.
Write %d multiple-choice questions for a %s position at the %s difficulty level.

Each question must have exactly four answer options and exactly one correct answer.
The correct answer text must match one of the options verbatim.

Respond with ONLY a JSON array, no prose and no markdown fences, in this shape:
[
  {"text": "...", "options": ["...", "...", "...", "..."], "correct_answer": "..."}
]
`, req.Count, req.Category, req.Level)

	resp, err := s.client.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Str("category", req.Category).Msg("Gemini API error while drafting questions")
		return nil, fmt.Errorf("gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		log.Warn().Msg("Gemini returned no candidates or parts in response.")
		return nil, fmt.Errorf("gemini returned no content")
	}

	raw := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			raw += string(txt)
		}
	}

	drafts, err := parseDraftedQuestions(raw)
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", raw).Msg("Failed to parse drafted questions from Gemini response")
		return nil, err
	}
	return drafts, nil
}

// parseDraftedQuestions tolerates markdown fences around the JSON payload and
// rejects drafts whose shape would not survive question set validation.
func parseDraftedQuestions(raw string) ([]dto.DraftQuestionDTO, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var drafts []dto.DraftQuestionDTO
	if err := json.Unmarshal([]byte(cleaned), &drafts); err != nil {
		return nil, fmt.Errorf("could not parse AI response as question list: %w", err)
	}
	for i, d := range drafts {
		if len(d.Options) != 4 {
			return nil, apperror.NewValidation("options", fmt.Sprintf("drafted question %d does not have four options", i+1))
		}
		if !contains(d.Options, d.CorrectAnswer) {
			return nil, apperror.NewValidation("correct_answer", fmt.Sprintf("drafted question %d has a correct answer outside its options", i+1))
		}
	}
	return drafts, nil
}
