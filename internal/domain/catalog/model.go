package catalog

import "time"

// Category is a user-defined activity category, scoped to one session.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryRecord is the stored row behind a Category.
type CategoryRecord struct {
	RowID       string
	SessionID   string
	CategoryID  string
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
}

// Metadata enumerates the fixed request vocabulary exposed to clients.
type Metadata struct {
	ActivityTypes []string `json:"activity_types"`
	EnergyLevels  []string `json:"energy_levels"`
	SocialLevels  []string `json:"social_levels"`
	SkillLevels   []string `json:"skill_levels"`
	MealTypes     []string `json:"meal_types"`
	TimeUnits     []string `json:"time_units"`
}
