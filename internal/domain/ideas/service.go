package ideas

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/anyidea/anyidea-api/internal/infra/llm/openrouter"
	"github.com/anyidea/anyidea-api/pkg/metrics"
)

// Generator produces activity suggestions from the completion provider.
// Generate never fails: any provider fault yields the fixed fallback result.
type Generator interface {
	Generate(ctx context.Context, in Input) Result
	Configured() bool
}

// ChatClient is the completion-provider contract the generator depends on.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openrouter.ChatCompletionRequest) (openrouter.ChatCompletionResponse, error)
	Configured() bool
}

type service struct {
	cfg    Config
	client ChatClient
	logger *slog.Logger
}

// NewGenerator wires up the completion generator domain.
func NewGenerator(cfg Config, client ChatClient, logger *slog.Logger) Generator {
	return &service{cfg: cfg, client: client, logger: logger.With("component", "ideas.generator")}
}

func (s *service) Configured() bool {
	return s.client.Configured()
}

func (s *service) Generate(ctx context.Context, in Input) Result {
	prompt := buildPrompt(in)

	resp, err := s.client.CreateChatCompletion(ctx, openrouter.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Messages:    []openrouter.Message{{Role: "user", Content: prompt}},
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		s.logger.Error("completion request failed", "error", err)
		return fallbackResult()
	}
	if len(resp.Choices) == 0 {
		s.logger.Error("completion returned no choices")
		return fallbackResult()
	}

	content := resp.Choices[0].Message.Content
	s.logger.Debug("completion content received", "length", len(content))

	payload, err := extractPayload(content)
	if err != nil {
		s.logger.Warn("could not extract JSON from completion", "error", err)
		return fallbackResult()
	}

	modelUsed := resp.Model
	if modelUsed == "" {
		modelUsed = s.cfg.Model
	}
	reasoning := payload.Reasoning
	if reasoning == "" {
		reasoning = "AI-generated suggestions"
	}

	return Result{
		Suggestions:    payload.Suggestions,
		ModelUsed:      modelUsed,
		Reasoning:      reasoning,
		ProcessingTime: 0.5,
		Usage: metrics.TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
		Success: true,
	}
}

// buildPrompt assembles the user prompt from present fields only, in a fixed
// order the provider has been tuned against.
func buildPrompt(in Input) string {
	parts := []string{
		fmt.Sprintf("I have $%s budget and %d minutes available.", formatBudget(in.Budget), in.TimeAvailable),
		"I need 2-3 specific, actionable activity suggestions.",
	}

	if in.Preferences.Location != "" {
		parts = append(parts, fmt.Sprintf("I prefer %s activities.", in.Preferences.Location))
	}
	if in.Preferences.EnergyLevel != "" {
		parts = append(parts, fmt.Sprintf("My energy level is %s.", in.Preferences.EnergyLevel))
	}
	if len(in.Preferences.ActivityTypes) > 0 {
		parts = append(parts, fmt.Sprintf("I'm interested in: %s.", strings.Join(in.Preferences.ActivityTypes, ", ")))
	}
	if in.Preferences.Mood != "" {
		parts = append(parts, fmt.Sprintf("My current mood/goal: %s.", in.Preferences.Mood))
	}
	if len(in.CustomCategories) > 0 {
		parts = append(parts, fmt.Sprintf("I'm also interested in these custom activity types: %s.", strings.Join(in.CustomCategories, ", ")))
		parts = append(parts, "Please consider these custom categories when making suggestions.")
	}
	if in.WeatherCurrent != "" {
		parts = append(parts, fmt.Sprintf("Current weather: %s.", in.WeatherCurrent))
	}
	if in.Location != nil && in.Location.AllowLocationAccess {
		parts = append(parts, "I'm open to location-based suggestions.")
	}

	parts = append(parts,
		"",
		"Please respond with ONLY a JSON object in this exact format:",
		"{",
		`  "suggestions": [`,
		`    {`,
		`      "title": "Activity Title",`,
		`      "description": "Brief description",`,
		`      "time_required": 30,`,
		`      "cost": 5.0,`,
		`      "difficulty": "easy",`,
		`      "instructions": ["Step 1", "Step 2", "Step 3"],`,
		`      "materials_needed": ["item1", "item2"]`,
		`    }`,
		`  ],`,
		`  "reasoning": "Why these suggestions fit the user's needs"`,
		"}",
	)

	return strings.Join(parts, "\n")
}

func formatBudget(budget float64) string {
	return strconv.FormatFloat(budget, 'f', -1, 64)
}

type completionPayload struct {
	Suggestions []RawSuggestion `json:"suggestions"`
	Reasoning   string          `json:"reasoning"`
}

// extractPayload treats the span from the first '{' to the last '}' as the
// JSON payload. Providers routinely wrap the object in prose on both sides.
func extractPayload(content string) (completionPayload, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return completionPayload{}, fmt.Errorf("no JSON object markers in completion")
	}

	var payload completionPayload
	if err := json.Unmarshal([]byte(content[start:end+1]), &payload); err != nil {
		return completionPayload{}, fmt.Errorf("parse completion payload: %w", err)
	}
	return payload, nil
}

func fallbackResult() Result {
	return Result{
		Suggestions: []RawSuggestion{
			{
				Title:        "Take a mindful break",
				Description:  "Step away from screens and take a few deep breaths",
				TimeRequired: 10,
				Cost:         0.0,
				Difficulty:   "easy",
				Instructions: []string{
					"Find a quiet spot",
					"Sit comfortably",
					"Take 10 deep breaths",
					"Focus on the present moment",
				},
				MaterialsNeeded: []string{},
			},
		},
		ModelUsed:      "fallback",
		Reasoning:      "AI service unavailable, providing fallback suggestion",
		ProcessingTime: 0.0,
		Success:        false,
	}
}
