package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/mstrand/itinera/pipeline"
)

const (
	branchWeather = "weather_lookup"
	branchEvents  = "events_lookup"
)

// gatherStep fans out the two independent data lookups, waits for both,
// and merges whatever arrived. Each lookup is best-effort: a failure (or
// timeout) degrades only its own field and leaves an error log entry.
type gatherStep struct {
	group *pipeline.Group[TripState, Delta]
}

func newGatherStep(weather WeatherProvider, events EventsProvider, lookupTimeout time.Duration) *gatherStep {
	weatherBranch := pipeline.NewStep(branchWeather, func(ctx context.Context, s TripState) (Delta, error) {
		report, err := weather.Weather(ctx, s.City, s.Country)
		if err != nil {
			return Delta{}, err
		}
		return Delta{Weather: report}, nil
	})

	eventsBranch := pipeline.NewStep(branchEvents, func(ctx context.Context, s TripState) (Delta, error) {
		found, err := events.Events(ctx, s.City, s.Duration)
		if err != nil {
			return Delta{}, err
		}
		if found == nil {
			found = []LocalEvent{}
		}
		return Delta{Events: found}, nil
	})

	group := pipeline.NewGroup(StepGatherData,
		[]pipeline.Step[TripState, Delta]{weatherBranch, eventsBranch},
		mergeLookups,
		pipeline.WithBranchTimeout(lookupTimeout),
	)

	return &gatherStep{group: group}
}

// Name returns the step name.
func (g *gatherStep) Name() string { return StepGatherData }

// Run executes both lookups concurrently and records the gathering time.
func (g *gatherStep) Run(ctx context.Context, s TripState) (Delta, error) {
	start := time.Now()

	d, err := g.group.Run(ctx, s)
	if err != nil {
		return Delta{}, err
	}

	d.Metrics = s.metricsWith(MetricDataGathering, time.Since(start).Seconds())
	return d, nil
}

// mergeLookups folds the branch deltas into one, degrading each failed
// lookup to an error-flagged (weather) or empty (events) result.
func mergeLookups(state TripState, results map[string]Delta, errs map[string]error) (Delta, error) {
	var d Delta
	var failures []string

	if branch, ok := results[branchWeather]; ok {
		d.Weather = branch.Weather
	} else if err, ok := errs[branchWeather]; ok {
		d.Weather = &WeatherReport{Error: err.Error()}
		failures = append(failures, fmt.Sprintf("weather lookup failed: %v", err))
	}

	if branch, ok := results[branchEvents]; ok {
		d.Events = branch.Events
	} else if err, ok := errs[branchEvents]; ok {
		d.Events = []LocalEvent{}
		failures = append(failures, fmt.Sprintf("events lookup failed: %v", err))
	}

	if len(failures) > 0 {
		d.ErrorLog = state.appendedLog(failures...)
	}

	return d, nil
}
