package venues

import (
	"context"
	"log/slog"
	"sort"
	"sync"
)

const (
	maxRadiusMeters   = 50000
	primaryMaxResults = 5
	keywordMaxResults = 3
	keywordQueryLimit = 2
	maxRankedVenues   = 8
)

// Ranker finds and orders nearby venues for an abstract activity category.
// Rank never fails: it returns an empty slice when the provider is
// unconfigured or every sub-query errors.
type Ranker interface {
	Rank(ctx context.Context, lat, lon float64, category string, budget BudgetLevel, radius int) []Venue
	Configured() bool
}

// PlacesClient is the venue-provider contract the ranker depends on.
type PlacesClient interface {
	NearbySearch(ctx context.Context, q Query) ([]Venue, error)
	Configured() bool
}

type categoryMapping struct {
	placeType string
	keywords  []string
}

// Fixed table mapping abstract categories to provider place types and
// keyword queries. Unknown categories fall through to a generic lookup.
var categoryMappings = map[string]categoryMapping{
	"food":          {placeType: "restaurant", keywords: []string{"restaurant", "cafe", "food"}},
	"entertainment": {placeType: "movie_theater", keywords: []string{"cinema", "theater", "entertainment"}},
	"exercise":      {placeType: "gym", keywords: []string{"gym", "fitness", "sports", "park"}},
	"shopping":      {placeType: "shopping_mall", keywords: []string{"shopping", "store", "mall"}},
	"culture":       {placeType: "museum", keywords: []string{"museum", "gallery", "cultural", "art"}},
	"outdoor":       {placeType: "park", keywords: []string{"park", "outdoor", "nature", "hiking"}},
	"learning":      {placeType: "library", keywords: []string{"library", "bookstore", "education", "learning"}},
}

// Allowed price tiers per budget level. A venue without a reported tier
// always passes; BudgetAny disables filtering entirely.
var budgetTiers = map[BudgetLevel][]int{
	BudgetFree:     {0},
	BudgetLow:      {0, 1},
	BudgetModerate: {0, 1, 2},
	BudgetHigh:     {0, 1, 2, 3, 4},
}

type service struct {
	cfg    Config
	client PlacesClient
	logger *slog.Logger
}

// NewRanker wires up the venue ranker domain.
func NewRanker(cfg Config, client PlacesClient, logger *slog.Logger) Ranker {
	return &service{cfg: cfg, client: client, logger: logger.With("component", "venues.ranker")}
}

func (s *service) Configured() bool {
	return s.client.Configured()
}

func (s *service) Rank(ctx context.Context, lat, lon float64, category string, budget BudgetLevel, radius int) []Venue {
	if !s.client.Configured() {
		s.logger.Warn("venue provider not configured")
		return []Venue{}
	}
	if radius <= 0 {
		radius = s.cfg.DefaultRadius
	}
	if radius > maxRadiusMeters {
		radius = maxRadiusMeters
	}

	mapping, ok := categoryMappings[category]
	if !ok {
		mapping = categoryMapping{placeType: "point_of_interest", keywords: []string{category}}
	}

	queries := []Query{{
		Latitude:   lat,
		Longitude:  lon,
		Radius:     radius,
		PlaceType:  mapping.placeType,
		MaxResults: primaryMaxResults,
	}}
	keywords := mapping.keywords
	if len(keywords) > keywordQueryLimit {
		keywords = keywords[:keywordQueryLimit]
	}
	for _, keyword := range keywords {
		queries = append(queries, Query{
			Latitude:   lat,
			Longitude:  lon,
			Radius:     radius,
			PlaceType:  "establishment",
			Keyword:    keyword,
			MaxResults: keywordMaxResults,
		})
	}

	// Sub-queries run concurrently but results keep query order so the
	// first-occurrence-wins dedup stays deterministic.
	results := make([][]Venue, len(queries))
	var wg sync.WaitGroup
	for i, q := range queries {
		wg.Add(1)
		go func(i int, q Query) {
			defer wg.Done()
			found, err := s.client.NearbySearch(ctx, q)
			if err != nil {
				s.logger.Warn("venue sub-query failed", "category", category, "type", q.PlaceType, "keyword", q.Keyword, "error", err)
				return
			}
			results[i] = found
		}(i, q)
	}
	wg.Wait()

	merged := dedupByPlaceID(results)
	filtered := filterByBudget(merged, budget)
	rankByScore(filtered)

	if len(filtered) > maxRankedVenues {
		filtered = filtered[:maxRankedVenues]
	}
	s.logger.Info("venues ranked", "category", category, "budget", string(budget), "count", len(filtered))
	return filtered
}

func dedupByPlaceID(batches [][]Venue) []Venue {
	seen := make(map[string]struct{})
	var merged []Venue
	for _, batch := range batches {
		for _, v := range batch {
			if v.PlaceID == "" {
				continue
			}
			if _, ok := seen[v.PlaceID]; ok {
				continue
			}
			seen[v.PlaceID] = struct{}{}
			merged = append(merged, v)
		}
	}
	return merged
}

func filterByBudget(list []Venue, budget BudgetLevel) []Venue {
	if budget == BudgetAny {
		return list
	}
	allowed, ok := budgetTiers[budget]
	if !ok {
		allowed = budgetTiers[BudgetHigh]
	}
	out := make([]Venue, 0, len(list))
	for _, v := range list {
		if v.PriceLevel == nil || containsTier(allowed, *v.PriceLevel) {
			out = append(out, v)
		}
	}
	return out
}

func containsTier(tiers []int, tier int) bool {
	for _, t := range tiers {
		if t == tier {
			return true
		}
	}
	return false
}

// compositeScore scales rating by a saturating function of review volume,
// so a venue with 100+ reviews counts double a venue with none.
func compositeScore(v Venue) float64 {
	volume := float64(v.UserRatingsTotal) / 100
	if volume > 1 {
		volume = 1
	}
	return v.Rating * (1 + volume)
}

func rankByScore(list []Venue) {
	sort.SliceStable(list, func(i, j int) bool {
		si, sj := compositeScore(list[i]), compositeScore(list[j])
		if si != sj {
			return si > sj
		}
		return !list[i].PermanentlyClosed && list[j].PermanentlyClosed
	})
}
