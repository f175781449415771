package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"practice-quest/internal/config"
	"practice-quest/internal/domain"
	"practice-quest/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

// textModel is the slice of the langchaingo client the generator needs.
type textModel interface {
	Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error)
}

// OllamaFeedbackGenerator implements domain.FeedbackGenerator with a local Ollama model.
type OllamaFeedbackGenerator struct {
	llm      textModel
	template string
	timeout  time.Duration
}

// NewOllamaFeedbackGenerator creates the langchaingo Ollama client described by cfg.
func NewOllamaFeedbackGenerator(cfg config.FeedbackConfig) (*OllamaFeedbackGenerator, error) {
	if cfg.OllamaServerURL == "" {
		return nil, fmt.Errorf("ollama server URL cannot be empty")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("ollama model name cannot be empty")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	llm, err := ollama.New(
		ollama.WithServerURL(cfg.OllamaServerURL),
		ollama.WithModel(cfg.Model),
		ollama.WithHTTPClient(&http.Client{Timeout: timeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama LLM client: %w", err)
	}
	return newGenerator(llm, cfg.PromptTemplate, timeout), nil
}

func newGenerator(llm textModel, template string, timeout time.Duration) *OllamaFeedbackGenerator {
	return &OllamaFeedbackGenerator{llm: llm, template: template, timeout: timeout}
}

// GenerateFeedback implements domain.FeedbackGenerator
func (g *OllamaFeedbackGenerator) GenerateFeedback(ctx context.Context, req domain.FeedbackRequest) (*domain.PracticeFeedback, error) {
	l := logger.Get()
	prompt := g.renderPrompt(req)

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	raw, err := g.llm.Call(callCtx, prompt, llms.WithTemperature(0.4))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			l.Error("LLM feedback request timed out", zap.Error(err))
		} else {
			l.Error("Failed to get feedback from LLM", zap.Error(err))
		}
		return nil, domain.NewLLMServiceError(err)
	}
	l.Debug("Raw LLM feedback received", zap.String("raw_response", raw))

	fb, err := parseFeedback(raw)
	if err != nil {
		l.Error("Could not parse LLM feedback", zap.Error(err), zap.String("raw_response", raw))
		return nil, domain.NewLLMServiceError(err)
	}
	return fb, nil
}

func (g *OllamaFeedbackGenerator) renderPrompt(req domain.FeedbackRequest) string {
	sentiment := "not given"
	if req.SentimentScore != nil {
		sentiment = strconv.Itoa(*req.SentimentScore)
	}
	notes := req.Notes
	if notes == "" {
		notes = "none"
	}
	return strings.NewReplacer(
		"{{item}}", req.ItemName,
		"{{minutes}}", strconv.Itoa(req.DurationMinutes),
		"{{sentiment}}", sentiment,
		"{{notes}}", notes,
		"{{improved}}", strconv.FormatBool(req.ImprovementDetected),
		"{{streak}}", strconv.Itoa(req.CurrentStreak),
	).Replace(g.template)
}

// parseFeedback strips reasoning blocks and extracts the first JSON object.
func parseFeedback(raw string) (*domain.PracticeFeedback, error) {
	cleaned := strings.TrimSpace(raw)
	if start := strings.Index(cleaned, "<think>"); start != -1 {
		if end := strings.Index(cleaned, "</think>"); end > start {
			cleaned = strings.TrimSpace(cleaned[:start] + cleaned[end+len("</think>"):])
		}
	}

	jsonStart := strings.Index(cleaned, "{")
	jsonEnd := strings.LastIndex(cleaned, "}")
	if jsonStart == -1 || jsonEnd <= jsonStart {
		return nil, fmt.Errorf("no JSON object found in LLM response")
	}

	var resp struct {
		Summary       string `json:"summary"`
		Encouragement string `json:"encouragement"`
		NextFocus     string `json:"next_focus"`
	}
	if err := json.Unmarshal([]byte(cleaned[jsonStart:jsonEnd+1]), &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON from LLM: %w", err)
	}
	if resp.Summary == "" {
		return nil, fmt.Errorf("LLM response is missing a summary")
	}
	return &domain.PracticeFeedback{
		Summary:       resp.Summary,
		Encouragement: resp.Encouragement,
		NextFocus:     resp.NextFocus,
	}, nil
}
