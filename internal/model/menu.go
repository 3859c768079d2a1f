package model

import "time"

// Meal types served during the conference days.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealTea       = "tea"
)

// ValidMealType reports whether m is a known meal type.
func ValidMealType(m string) bool {
	return m == MealBreakfast || m == MealLunch || m == MealTea
}

// ValidMenuDay reports whether d falls inside the three-day conference.
func ValidMenuDay(d uint8) bool {
	return d >= 1 && d <= 3
}

// Menu lists the items served for one meal on one conference day.  The
// (Day, MealType) pair is unique; day numbering runs 1..3.
type Menu struct {
	ID          uint64    `json:"id"`
	Day         uint8     `json:"day"`
	MealType    string    `json:"mealType"`
	Items       []string  `json:"items"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
