package planner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
)

// validate checks the required fields and applies defaults for the
// optional ones. Violations are recorded into the error log, never raised:
// validation is advisory and downstream steps run regardless.
func validate(ctx context.Context, s TripState) (Delta, error) {
	start := time.Now()

	var problems []string
	if strings.TrimSpace(s.City) == "" {
		problems = append(problems, "validation: city is required")
	}

	interests := lo.FilterMap(s.Interests, func(interest string, _ int) (string, bool) {
		trimmed := strings.TrimSpace(interest)
		return trimmed, trimmed != ""
	})
	if len(interests) == 0 {
		problems = append(problems, "validation: at least one interest is required")
	}

	if s.Duration < 1 {
		problems = append(problems, fmt.Sprintf("validation: duration must be at least 1 day, got %d", s.Duration))
	}

	d := Delta{
		Interests: interests,
		Metrics:   s.metricsWith(MetricValidation, time.Since(start).Seconds()),
	}

	if s.Country == "" {
		country := DefaultCountry
		d.Country = &country
	}
	if s.TripType == "" {
		tripType := TripLeisure
		d.TripType = &tripType
	}
	if s.BudgetRange == "" {
		budget := BudgetModerate
		d.BudgetRange = &budget
	}

	if len(problems) > 0 {
		d.ErrorLog = s.appendedLog(problems...)
	}

	return d, nil
}
