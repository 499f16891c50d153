package ideas

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anyidea/anyidea-api/internal/infra/llm/openrouter"
)

func TestGenerateSuccess(t *testing.T) {
	stub := &stubChatClient{
		resp: openrouter.ChatCompletionResponse{
			Model: "moonshotai/kimi-k2:free",
			Choices: choices(`Here you go! {"suggestions":[{"title":"Sketch the view","description":"Draw what you see","time_required":25,"cost":0,"difficulty":"easy","instructions":["Grab paper","Sketch"],"materials_needed":["pencil"]}],"reasoning":"cheap and quick"} enjoy`),
			Usage: openrouter.Usage{PromptTokens: 120, CompletionTokens: 80, TotalTokens: 200},
		},
	}
	gen := NewGenerator(Config{Model: "moonshotai/kimi-k2:free", MaxTokens: 1000}, stub, discardLogger())

	res := gen.Generate(context.Background(), Input{Budget: 10, TimeAvailable: 30})
	require.True(t, res.Success)
	require.Equal(t, "moonshotai/kimi-k2:free", res.ModelUsed)
	require.Equal(t, "cheap and quick", res.Reasoning)
	require.Equal(t, 0.5, res.ProcessingTime)
	require.Equal(t, 200, res.Usage.TotalTokens)
	require.Len(t, res.Suggestions, 1)
	require.Equal(t, "Sketch the view", res.Suggestions[0].Title)
}

func TestGenerateFallbackOnTransportError(t *testing.T) {
	gen := NewGenerator(Config{}, &stubChatClient{err: errors.New("timeout")}, discardLogger())

	res := gen.Generate(context.Background(), Input{Budget: 10, TimeAvailable: 30})
	requireFallback(t, res)
}

func TestGenerateFallbackOnMissingJSON(t *testing.T) {
	stub := &stubChatClient{resp: openrouter.ChatCompletionResponse{Choices: choices("sorry, I cannot help with that")}}
	gen := NewGenerator(Config{}, stub, discardLogger())

	res := gen.Generate(context.Background(), Input{Budget: 10, TimeAvailable: 30})
	requireFallback(t, res)
}

func TestGenerateFallbackOnMalformedJSON(t *testing.T) {
	stub := &stubChatClient{resp: openrouter.ChatCompletionResponse{Choices: choices(`{"suggestions": [}`)}}
	gen := NewGenerator(Config{}, stub, discardLogger())

	res := gen.Generate(context.Background(), Input{Budget: 10, TimeAvailable: 30})
	requireFallback(t, res)
}

func TestExtractPayloadSpansFirstToLastBrace(t *testing.T) {
	payload, err := extractPayload(`noise {"suggestions":[],"reasoning":"x"} trailing`)
	require.NoError(t, err)
	require.Equal(t, "x", payload.Reasoning)
	require.Empty(t, payload.Suggestions)
}

func TestBuildPromptOrderAndOmissions(t *testing.T) {
	in := Input{
		Budget:        15,
		TimeAvailable: 45,
		Location:      &Location{Latitude: 1, Longitude: 2, AllowLocationAccess: true},
		WeatherCurrent: "Sunny, 72°F",
		Preferences: Preferences{
			Location:      "outdoor",
			EnergyLevel:   "high",
			ActivityTypes: []string{"exercise", "outdoor"},
			Mood:          "adventurous",
		},
		CustomCategories: []string{"urban foraging"},
	}

	prompt := buildPrompt(in)
	lines := strings.Split(prompt, "\n")
	require.Equal(t, "I have $15 budget and 45 minutes available.", lines[0])
	require.Equal(t, "I need 2-3 specific, actionable activity suggestions.", lines[1])
	require.Equal(t, "I prefer outdoor activities.", lines[2])
	require.Equal(t, "My energy level is high.", lines[3])
	require.Equal(t, "I'm interested in: exercise, outdoor.", lines[4])
	require.Equal(t, "My current mood/goal: adventurous.", lines[5])
	require.Equal(t, "I'm also interested in these custom activity types: urban foraging.", lines[6])
	require.Equal(t, "Please consider these custom categories when making suggestions.", lines[7])
	require.Equal(t, "Current weather: Sunny, 72°F.", lines[8])
	require.Equal(t, "I'm open to location-based suggestions.", lines[9])
	require.Contains(t, prompt, `"materials_needed": ["item1", "item2"]`)
}

func TestBuildPromptSkipsAbsentFields(t *testing.T) {
	prompt := buildPrompt(Input{Budget: 0, TimeAvailable: 30})
	require.NotContains(t, prompt, "I prefer")
	require.NotContains(t, prompt, "energy level")
	require.NotContains(t, prompt, "Current weather")
	require.NotContains(t, prompt, "location-based")
	require.True(t, strings.HasPrefix(prompt, "I have $0 budget and 30 minutes available."))
}

func requireFallback(t *testing.T, res Result) {
	t.Helper()
	require.False(t, res.Success)
	require.Equal(t, "fallback", res.ModelUsed)
	require.Equal(t, 0.0, res.ProcessingTime)
	require.Len(t, res.Suggestions, 1)
	require.Equal(t, "Take a mindful break", res.Suggestions[0].Title)
	require.Equal(t, 0.0, res.Suggestions[0].Cost)
	require.Empty(t, res.Suggestions[0].MaterialsNeeded)
}

type stubChatClient struct {
	resp  openrouter.ChatCompletionResponse
	err   error
	calls int
}

func (s *stubChatClient) CreateChatCompletion(_ context.Context, _ openrouter.ChatCompletionRequest) (openrouter.ChatCompletionResponse, error) {
	s.calls++
	if s.err != nil {
		return openrouter.ChatCompletionResponse{}, s.err
	}
	return s.resp, nil
}

func (s *stubChatClient) Configured() bool { return true }

func choices(content string) []struct {
	Message openrouter.Message `json:"message"`
} {
	return []struct {
		Message openrouter.Message `json:"message"`
	}{
		{Message: openrouter.Message{Role: "assistant", Content: content}},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
