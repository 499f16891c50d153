package suggest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/anyidea/anyidea-api/internal/domain/ideas"
	"github.com/anyidea/anyidea-api/internal/domain/venues"
	"github.com/anyidea/anyidea-api/internal/domain/weather"
	apperrors "github.com/anyidea/anyidea-api/pkg/errors"
)

func TestSuggestValidation(t *testing.T) {
	svc := newTestService(&stubAdvisor{}, &stubGenerator{}, &stubRanker{}, nil)

	_, err := svc.Suggest(context.Background(), "s1", Request{Budget: -1, TimeAvailable: 30})
	require.True(t, apperrors.IsCode(err, "invalid_input"))

	_, err = svc.Suggest(context.Background(), "s1", Request{Budget: 0, TimeAvailable: 0})
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestSuggestWithoutLocation(t *testing.T) {
	gen := &stubGenerator{result: successResult(2)}
	ranker := &stubRanker{}
	advisor := &stubAdvisor{}
	svc := newTestService(advisor, gen, ranker, nil)

	resp, err := svc.Suggest(context.Background(), "s1", Request{Budget: 0, TimeAvailable: 30})
	require.NoError(t, err)
	require.Nil(t, resp.Weather)
	require.Equal(t, 2, resp.TotalSuggestions)
	for _, s := range resp.Suggestions {
		require.Equal(t, SourceAIGenerated, s.Type)
	}
	require.Zero(t, advisor.calls)
	require.Zero(t, ranker.calls())
	require.NotEmpty(t, resp.RequestID)
	require.Contains(t, resp.RequestID, "req_")
}

func TestSuggestMergeOrderAndProvenance(t *testing.T) {
	gen := &stubGenerator{result: successResult(2)}
	ranker := &stubRanker{
		byCategory: map[string][]venues.Venue{
			"food":          {{PlaceID: "f1", Name: "Cafe One", Rating: 4.2}, {PlaceID: "f2", Name: "Cafe Two"}},
			"entertainment": {{PlaceID: "e1", Name: "Cinema"}},
		},
	}
	svc := newTestService(&stubAdvisor{snap: sunnySnapshot()}, gen, ranker, nil)

	resp, err := svc.Suggest(context.Background(), "s1", Request{
		Budget:        25,
		TimeAvailable: 60,
		Location:      &Location{Latitude: 45.5, Longitude: -122.6, AllowLocationAccess: true},
	})
	require.NoError(t, err)
	require.Equal(t, 5, resp.TotalSuggestions)
	require.Equal(t, SourceAIGenerated, resp.Suggestions[0].Type)
	require.Equal(t, SourceAIGenerated, resp.Suggestions[1].Type)
	// Venue suggestions follow in per-category then per-venue order.
	require.Equal(t, "Visit Cafe One", resp.Suggestions[2].Title)
	require.Equal(t, "Visit Cafe Two", resp.Suggestions[3].Title)
	require.Equal(t, "Visit Cinema", resp.Suggestions[4].Title)
	for _, s := range resp.Suggestions[2:] {
		require.Equal(t, SourceLocationBased, s.Type)
	}
	require.NotNil(t, resp.Weather)
	require.Equal(t, "Sunny, 72°F", resp.Weather.Current)
}

func TestSuggestFallbackTag(t *testing.T) {
	gen := &stubGenerator{result: fallbackResultForTest()}
	svc := newTestService(&stubAdvisor{}, gen, &stubRanker{}, nil)

	resp, err := svc.Suggest(context.Background(), "s1", Request{Budget: 5, TimeAvailable: 30})
	require.NoError(t, err)
	require.Len(t, resp.Suggestions, 1)
	require.Equal(t, SourceFallback, resp.Suggestions[0].Type)
	require.Equal(t, "fallback", resp.AIMetadata.ModelUsed)
}

func TestSuggestVenueFailureDoesNotAbortOthers(t *testing.T) {
	gen := &stubGenerator{result: successResult(1)}
	ranker := &stubRanker{
		byCategory: map[string][]venues.Venue{
			"food": {{PlaceID: "f1", Name: "Cafe"}},
			// entertainment returns nothing, as it would after provider errors
		},
	}
	svc := newTestService(&stubAdvisor{snap: sunnySnapshot()}, gen, ranker, nil)

	resp, err := svc.Suggest(context.Background(), "s1", Request{
		Budget:        10,
		TimeAvailable: 30,
		Location:      &Location{Latitude: 1, Longitude: 2, AllowLocationAccess: true},
	})
	require.NoError(t, err)
	require.Equal(t, 2, resp.TotalSuggestions)
	require.Equal(t, "Visit Cafe", resp.Suggestions[1].Title)
}

func TestSuggestCapsVenuesPerCategory(t *testing.T) {
	many := make([]venues.Venue, 5)
	for i := range many {
		many[i] = venues.Venue{PlaceID: string(rune('a' + i)), Name: "V"}
	}
	ranker := &stubRanker{byCategory: map[string][]venues.Venue{"food": many, "entertainment": nil}}
	svc := newTestService(&stubAdvisor{snap: sunnySnapshot()}, &stubGenerator{result: successResult(1)}, ranker, nil)

	resp, err := svc.Suggest(context.Background(), "s1", Request{
		Budget:        10,
		TimeAvailable: 30,
		Location:      &Location{Latitude: 1, Longitude: 2, AllowLocationAccess: true},
	})
	require.NoError(t, err)
	require.Equal(t, 1+venuesPerCategory, resp.TotalSuggestions)
}

func TestSuggestWeatherFoldedIntoPrompt(t *testing.T) {
	gen := &stubGenerator{result: successResult(1)}
	svc := newTestService(&stubAdvisor{snap: sunnySnapshot()}, gen, &stubRanker{}, nil)

	_, err := svc.Suggest(context.Background(), "s1", Request{
		Budget:        10,
		TimeAvailable: 30,
		Location:      &Location{Latitude: 1, Longitude: 2, AllowLocationAccess: true},
	})
	require.NoError(t, err)
	require.Equal(t, "Sunny, 72°F", gen.lastInput.WeatherCurrent)
}

func TestSuggestVenueCostAndWeatherFlag(t *testing.T) {
	two := 2
	ranker := &stubRanker{byCategory: map[string][]venues.Venue{
		"outdoor": {{PlaceID: "p1", Name: "Forest Park", PriceLevel: &two, Rating: 4.8, Vicinity: "NW Portland"}},
	}}
	snap := sunnySnapshot()
	snap.SuitableForOutdoor = false
	svc := newTestService(&stubAdvisor{snap: snap}, &stubGenerator{result: successResult(0)}, ranker, nil)

	resp, err := svc.Suggest(context.Background(), "s1", Request{
		Budget:              50,
		TimeAvailable:       90,
		Location:            &Location{Latitude: 1, Longitude: 2, AllowLocationAccess: true},
		ActivityPreferences: Preferences{ActivityTypes: []string{"outdoor"}},
	})
	require.NoError(t, err)
	require.Len(t, resp.Suggestions, 1)
	got := resp.Suggestions[0]
	require.Equal(t, 30.0, got.Cost)
	require.Equal(t, 90, got.TimeRequired)
	require.Equal(t, "NW Portland", got.Address)
	require.NotNil(t, got.WeatherAppropriate)
	require.False(t, *got.WeatherAppropriate)
	require.NotNil(t, got.Rating)
	require.Equal(t, 4.8, *got.Rating)
	require.Empty(t, got.Distance)
	require.Len(t, got.Instructions, 2)
}

func TestSuggestLogStoreFailureIsSwallowed(t *testing.T) {
	logs := &stubLogStore{err: errors.New("db down")}
	svc := newTestService(&stubAdvisor{}, &stubGenerator{result: successResult(1)}, &stubRanker{}, logs)

	resp, err := svc.Suggest(context.Background(), "session-9", Request{Budget: 5, TimeAvailable: 30})
	require.NoError(t, err)
	require.Equal(t, 1, resp.TotalSuggestions)

	rec := logs.wait(t)
	require.Equal(t, "session-9", rec.SessionID)
	require.Equal(t, resp.RequestID, rec.RequestID)
}

func TestDeriveCategories(t *testing.T) {
	require.Equal(t, []string{"food", "entertainment"}, deriveCategories(nil))
	require.Equal(t, []string{"exercise", "food"}, deriveCategories([]string{"exercise", "food", "culture"}))
	require.Equal(t, []string{"food"}, deriveCategories([]string{"food", "food"}))
}

func TestBudgetLevelFor(t *testing.T) {
	require.Equal(t, venues.BudgetFree, budgetLevelFor(0))
	require.Equal(t, venues.BudgetLow, budgetLevelFor(20))
	require.Equal(t, venues.BudgetModerate, budgetLevelFor(100))
	require.Equal(t, venues.BudgetHigh, budgetLevelFor(100.01))
}

func newTestService(advisor weather.Advisor, gen ideas.Generator, ranker venues.Ranker, logs LogStore) Service {
	return &service{
		advisor:   advisor,
		generator: gen,
		ranker:    ranker,
		logs:      logs,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:       func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func successResult(n int) ideas.Result {
	out := ideas.Result{
		ModelUsed:      "moonshotai/kimi-k2:free",
		Reasoning:      "fits budget and time",
		ProcessingTime: 0.5,
		Success:        true,
	}
	for i := 0; i < n; i++ {
		out.Suggestions = append(out.Suggestions, ideas.RawSuggestion{
			Title:        "Idea",
			Description:  "Something to do",
			TimeRequired: 20,
			Difficulty:   "easy",
		})
	}
	return out
}

func fallbackResultForTest() ideas.Result {
	return ideas.Result{
		Suggestions: []ideas.RawSuggestion{{Title: "Take a mindful break", TimeRequired: 10, Difficulty: "easy"}},
		ModelUsed:   "fallback",
		Reasoning:   "AI service unavailable, providing fallback suggestion",
		Success:     false,
	}
}

func sunnySnapshot() weather.Snapshot {
	return weather.Snapshot{
		Current:            "Sunny, 72°F",
		Condition:          "Sunny",
		SuitableForOutdoor: true,
		TemperatureF:       72,
		Humidity:           40,
		WindMPH:            5,
	}
}

type stubAdvisor struct {
	snap  weather.Snapshot
	calls int
}

func (s *stubAdvisor) Snapshot(_ context.Context, _, _ float64) weather.Snapshot {
	s.calls++
	return s.snap
}

func (s *stubAdvisor) SnapshotByCity(_ context.Context, _ string) weather.Snapshot {
	s.calls++
	return s.snap
}

func (s *stubAdvisor) Configured() bool { return true }

type stubGenerator struct {
	result    ideas.Result
	lastInput ideas.Input
}

func (s *stubGenerator) Generate(_ context.Context, in ideas.Input) ideas.Result {
	s.lastInput = in
	return s.result
}

func (s *stubGenerator) Configured() bool { return true }

type stubRanker struct {
	mu         sync.Mutex
	byCategory map[string][]venues.Venue
	seen       []string
}

func (s *stubRanker) Rank(_ context.Context, _, _ float64, category string, _ venues.BudgetLevel, _ int) []venues.Venue {
	s.mu.Lock()
	s.seen = append(s.seen, category)
	s.mu.Unlock()
	return s.byCategory[category]
}

func (s *stubRanker) Configured() bool { return s.byCategory != nil }

func (s *stubRanker) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}

type stubLogStore struct {
	err  error
	once sync.Once
	ch   chan LogRecord
}

func (s *stubLogStore) SaveSuggestionLog(_ context.Context, rec LogRecord) error {
	s.once.Do(func() { s.ch = make(chan LogRecord, 1) })
	s.ch <- rec
	return s.err
}

func (s *stubLogStore) wait(t *testing.T) LogRecord {
	t.Helper()
	s.once.Do(func() { s.ch = make(chan LogRecord, 1) })
	select {
	case rec := <-s.ch:
		return rec
	case <-time.After(2 * time.Second):
		t.Fatal("log record never written")
		return LogRecord{}
	}
}
