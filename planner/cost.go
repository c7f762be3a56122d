package planner

import (
	"math"
	"strings"
)

// Per-day base cost by budget tier, in currency units.
const (
	perDayBudget   = 50.0
	perDayModerate = 150.0
	perDayLuxury   = 400.0
)

// cityMultipliers adjusts the base cost for known destinations, keyed by
// lower-cased city name. Unknown cities use a multiplier of 1.0.
var cityMultipliers = map[string]float64{
	"paris":    1.5,
	"london":   1.4,
	"tokyo":    1.3,
	"new york": 1.6,
	"bangkok":  0.7,
	"mumbai":   0.5,
}

// EstimateCost computes the estimated total trip cost from the budget
// tier, duration in days, and destination city. It is pure and total:
// unknown tiers fall back to the moderate rate, unknown cities to a 1.0
// multiplier, and non-positive durations are treated as a single day
// (validation reports the violation but does not guard downstream steps).
// The result is rounded to 2 decimal places.
func EstimateCost(budget BudgetRange, duration int, city string) float64 {
	perDay := perDayModerate
	switch budget {
	case BudgetLow:
		perDay = perDayBudget
	case BudgetModerate:
		perDay = perDayModerate
	case BudgetLuxury:
		perDay = perDayLuxury
	}

	if duration < 1 {
		duration = 1
	}

	multiplier := 1.0
	if m, ok := cityMultipliers[strings.ToLower(strings.TrimSpace(city))]; ok {
		multiplier = m
	}

	return math.Round(perDay*float64(duration)*multiplier*100) / 100
}
