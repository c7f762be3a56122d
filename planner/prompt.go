package planner

import (
	"encoding/json"
	"fmt"
	"strings"

	ai "github.com/mstrand/itinera"
)

// BuildPrompt renders the trip state into the model request. The system
// turn pins the day-by-day structure the UI expects; the user turn carries
// the request itself.
func BuildPrompt(s TripState, estimatedCost float64) []ai.Message {
	duration := s.Duration
	if duration < 1 {
		duration = 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, `You are a helpful travel assistant. Create a detailed %d-day trip itinerary for %s, %s based on the user's interests: %s.

Trip type: %s. Budget range: %s (estimated total cost: %.2f).
`, duration, s.City, s.Country, strings.Join(s.Interests, ", "), s.TripType, s.BudgetRange, estimatedCost)

	if s.Weather != nil && s.Weather.Error == "" {
		if data, err := json.Marshal(s.Weather); err == nil {
			fmt.Fprintf(&b, "\nCurrent weather data: %s\n", data)
		}
	}
	if len(s.Events) > 0 {
		if data, err := json.Marshal(s.Events); err == nil {
			fmt.Fprintf(&b, "\nLocal events during the stay: %s\n", data)
		}
	}
	if len(s.Preferences) > 0 {
		if data, err := json.Marshal(s.Preferences); err == nil {
			fmt.Fprintf(&b, "\nTraveler preferences: %s\n", data)
		}
	}

	fmt.Fprintf(&b, `
Please structure your response in the following format:

# %d-Day Trip Itinerary for %s

## Overview
- A short summary of the trip and how it matches the interests

## Day 1
### Morning
- [Time] Activity — location, estimated cost

### Afternoon
- [Time] Activity — location, estimated cost

### Evening
- [Time] Activity — location, estimated cost

### Food & Dining
- [Time] Restaurant/Cafe recommendation

[Repeat the above structure for each day]

## Practical Information
- Getting around, opening hours, local customs

## Additional Tips
- Packing suggestions, etiquette, money-saving advice

## Budget Breakdown
- Approximate daily and total spend against the %.2f estimate

Make sure to:
1. Include specific locations, addresses, and estimated times for each activity
2. Consider travel time between locations and group activities by area
3. Include a mix of popular attractions and local experiences
4. Consider opening hours and the best times to visit each location
5. Include a variety of dining options that match the user's interests
6. Work the listed local events into the schedule where they fit
7. Suggest weather-appropriate activities given the forecast
`, duration, s.City, estimatedCost)

	return []ai.Message{
		{Role: ai.RoleSystem, Content: b.String()},
		{Role: ai.RoleUser, Content: "Create an itinerary for my trip."},
	}
}
