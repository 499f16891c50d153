package venues

// Venue is a deduplicated provider result. Identity is the provider PlaceID.
type Venue struct {
	PlaceID           string
	Name              string
	Rating            float64
	UserRatingsTotal  int
	PriceLevel        *int
	Types             []string
	Vicinity          string
	OpenNow           *bool
	PermanentlyClosed bool
}

// BudgetLevel is the coarse bucket used to filter venues by price tier.
type BudgetLevel string

const (
	BudgetFree     BudgetLevel = "free"
	BudgetLow      BudgetLevel = "low"
	BudgetModerate BudgetLevel = "moderate"
	BudgetHigh     BudgetLevel = "high"
	BudgetAny      BudgetLevel = "any"
)

// Query describes a single nearby-search call against the venue provider.
type Query struct {
	Latitude   float64
	Longitude  float64
	Radius     int
	PlaceType  string
	Keyword    string
	MaxResults int
}

// Config wires runtime settings for the ranker domain.
type Config struct {
	DefaultRadius int
}
