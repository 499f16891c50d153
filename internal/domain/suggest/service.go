package suggest

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/anyidea/anyidea-api/internal/domain/ideas"
	"github.com/anyidea/anyidea-api/internal/domain/venues"
	"github.com/anyidea/anyidea-api/internal/domain/weather"
	apperrors "github.com/anyidea/anyidea-api/pkg/errors"
	"github.com/anyidea/anyidea-api/pkg/util"
)

const (
	maxVenueCategories = 2
	venuesPerCategory  = 3
	costPerPriceTier   = 15.0
	logStoreTimeout    = 5 * time.Second
)

// Default venue categories when the caller picked no activity types.
var defaultCategories = []string{"food", "entertainment"}

// Service aggregates the three suggestion sources into one ordered response.
type Service interface {
	Suggest(ctx context.Context, sessionID string, req Request) (Response, error)
}

// LogStore persists one request-plus-response record per run. Failures are
// logged and never surface to the caller.
type LogStore interface {
	SaveSuggestionLog(ctx context.Context, rec LogRecord) error
}

type service struct {
	advisor   weather.Advisor
	generator ideas.Generator
	ranker    venues.Ranker
	logs      LogStore
	logger    *slog.Logger
	now       func() time.Time
}

// NewService wires up the aggregation orchestrator.
func NewService(advisor weather.Advisor, generator ideas.Generator, ranker venues.Ranker, logs LogStore, logger *slog.Logger) Service {
	return &service{
		advisor:   advisor,
		generator: generator,
		ranker:    ranker,
		logs:      logs,
		logger:    logger.With("component", "suggest.orchestrator"),
		now:       util.NowUTC,
	}
}

func (s *service) Suggest(ctx context.Context, sessionID string, req Request) (Response, error) {
	if req.Budget < 0 {
		return Response{}, apperrors.Wrap("invalid_input", "budget must be non-negative", nil)
	}
	if req.TimeAvailable <= 0 {
		return Response{}, apperrors.Wrap("invalid_input", "time_available must be positive", nil)
	}

	requestID := fmt.Sprintf("req_%s", s.now().Format("20060102_150405"))
	locationAllowed := req.Location != nil && req.Location.AllowLocationAccess

	// Venue sub-pipelines start first so a slow provider never delays the
	// weather or completion calls; results are joined after the generator.
	var (
		categories   []string
		venueResults [][]venues.Venue
		wg           sync.WaitGroup
	)
	if locationAllowed && s.ranker.Configured() {
		categories = deriveCategories(req.ActivityPreferences.ActivityTypes)
		venueResults = make([][]venues.Venue, len(categories))
		budget := budgetLevelFor(req.Budget)
		for i, category := range categories {
			wg.Add(1)
			go func(i int, category string) {
				defer wg.Done()
				venueResults[i] = s.ranker.Rank(ctx, req.Location.Latitude, req.Location.Longitude, category, budget, 0)
			}(i, category)
		}
	}

	// Weather comes before the generator because its condition text is an
	// optional line of the completion prompt.
	var snap *weather.Snapshot
	if locationAllowed {
		got := s.advisor.Snapshot(ctx, req.Location.Latitude, req.Location.Longitude)
		snap = &got
	}

	genResult := s.generator.Generate(ctx, generatorInput(req, snap))

	wg.Wait()

	resp := s.merge(req, requestID, genResult, snap, categories, venueResults)

	s.persistLog(sessionID, requestID, req, resp)
	s.logger.Info("suggestions aggregated", "request_id", requestID, "total", resp.TotalSuggestions, "ai_success", genResult.Success)
	return resp, nil
}

func (s *service) merge(req Request, requestID string, gen ideas.Result, snap *weather.Snapshot, categories []string, venueResults [][]venues.Venue) Response {
	sourceTag := SourceAIGenerated
	if !gen.Success {
		sourceTag = SourceFallback
	}

	suggestions := make([]Suggestion, 0, len(gen.Suggestions))
	for _, raw := range gen.Suggestions {
		suggestions = append(suggestions, suggestionFromRaw(raw, sourceTag, gen.Reasoning, req.TimeAvailable))
	}

	for i, category := range categories {
		list := venueResults[i]
		if len(list) > venuesPerCategory {
			list = list[:venuesPerCategory]
		}
		for _, v := range list {
			suggestions = append(suggestions, suggestionFromVenue(v, category, req.TimeAvailable, snap))
		}
	}

	resp := Response{
		Suggestions: suggestions,
		AIMetadata: &AIMetadata{
			ModelUsed:      gen.ModelUsed,
			Reasoning:      gen.Reasoning,
			ProcessingTime: gen.ProcessingTime,
			TokenUsage:     gen.Usage,
		},
		TotalSuggestions: len(suggestions),
		RequestID:        requestID,
	}
	if snap != nil {
		resp.Weather = &WeatherInfo{
			Current:            snap.Current,
			SuitableForOutdoor: snap.SuitableForOutdoor,
			Temperature:        snap.TemperatureF,
			Humidity:           snap.Humidity,
		}
	}
	return resp
}

func (s *service) persistLog(sessionID, requestID string, req Request, resp Response) {
	if s.logs == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), logStoreTimeout)
		defer cancel()
		rec := LogRecord{SessionID: sessionID, RequestID: requestID, Request: req, Response: resp}
		if err := s.logs.SaveSuggestionLog(ctx, rec); err != nil {
			s.logger.Warn("suggestion log write failed", "request_id", requestID, "error", err)
		}
	}()
}

func suggestionFromRaw(raw ideas.RawSuggestion, sourceTag, reasoning string, timeAvailable int) Suggestion {
	title := raw.Title
	if title == "" {
		title = "Activity"
	}
	timeRequired := raw.TimeRequired
	if timeRequired <= 0 {
		timeRequired = timeAvailable
	}
	difficulty := raw.Difficulty
	if difficulty == "" {
		difficulty = "easy"
	}
	instructions := raw.Instructions
	if instructions == nil {
		instructions = []string{}
	}
	materials := raw.MaterialsNeeded
	if materials == nil {
		materials = []string{}
	}
	return Suggestion{
		Type:            sourceTag,
		Title:           title,
		Description:     raw.Description,
		TimeRequired:    timeRequired,
		Cost:            raw.Cost,
		Difficulty:      difficulty,
		AIReasoning:     reasoning,
		Instructions:    instructions,
		MaterialsNeeded: materials,
	}
}

func suggestionFromVenue(v venues.Venue, category string, timeAvailable int, snap *weather.Snapshot) Suggestion {
	cost := 0.0
	if v.PriceLevel != nil {
		cost = float64(*v.PriceLevel) * costPerPriceTier
	}
	destination := v.Vicinity
	if destination == "" {
		destination = v.Name
	}
	out := Suggestion{
		Type:         SourceLocationBased,
		Title:        "Visit " + v.Name,
		Description:  fmt.Sprintf("A nearby %s spot", category),
		TimeRequired: timeAvailable,
		Cost:         cost,
		Difficulty:   "easy",
		Address:      v.Vicinity,
		Instructions: []string{
			"Head to " + destination,
			"Enjoy your visit",
		},
		MaterialsNeeded: []string{},
	}
	if v.Rating > 0 {
		rating := v.Rating
		out.Rating = &rating
	}
	if v.OpenNow != nil {
		if *v.OpenNow {
			out.Hours = "Open now"
		} else {
			out.Hours = "Closed now"
		}
	}
	if snap != nil && isOutdoorFacing(category) {
		suitable := snap.SuitableForOutdoor
		out.WeatherAppropriate = &suitable
	}
	return out
}

func isOutdoorFacing(category string) bool {
	return category == "outdoor" || category == "exercise"
}

func generatorInput(req Request, snap *weather.Snapshot) ideas.Input {
	in := ideas.Input{
		Budget:        req.Budget,
		TimeAvailable: req.TimeAvailable,
		Preferences: ideas.Preferences{
			Location:      req.ActivityPreferences.Location,
			EnergyLevel:   req.ActivityPreferences.EnergyLevel,
			SocialLevel:   req.ActivityPreferences.SocialLevel,
			ActivityTypes: req.ActivityPreferences.ActivityTypes,
			Mood:          req.ActivityPreferences.Mood,
		},
		CustomCategories: req.ActivityPreferences.CustomCategories,
	}
	if req.Location != nil {
		in.Location = &ideas.Location{
			Latitude:            req.Location.Latitude,
			Longitude:           req.Location.Longitude,
			AllowLocationAccess: req.Location.AllowLocationAccess,
		}
	}
	if snap != nil {
		in.WeatherCurrent = snap.Current
	}
	return in
}

// deriveCategories keeps the caller's activity types in order, dropping
// duplicates, capped at two. The ranker maps unknown names to a generic
// point-of-interest lookup, so no filtering happens here.
func deriveCategories(activityTypes []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, raw := range activityTypes {
		if raw == "" {
			continue
		}
		if _, ok := seen[raw]; ok {
			continue
		}
		seen[raw] = struct{}{}
		out = append(out, raw)
		if len(out) == maxVenueCategories {
			return out
		}
	}
	if len(out) == 0 {
		return append([]string(nil), defaultCategories...)
	}
	return out
}

func budgetLevelFor(budget float64) venues.BudgetLevel {
	switch {
	case budget == 0:
		return venues.BudgetFree
	case budget <= 20:
		return venues.BudgetLow
	case budget <= 100:
		return venues.BudgetModerate
	default:
		return venues.BudgetHigh
	}
}
