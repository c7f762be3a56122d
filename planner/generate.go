package planner

import (
	"context"
	"fmt"
	"strings"
	"time"

	ai "github.com/mstrand/itinera"
)

// generateStep computes the cost estimate, renders the prompt, and makes
// the single model call. Its failures are data, not errors: an empty or
// failing response becomes the user-visible itinerary text plus an error
// log entry, so the step itself never reports an error to the chain.
type generateStep struct {
	chat     ai.ChatProvider
	chatOpts []ai.Option
}

// Name returns the step name.
func (g *generateStep) Name() string { return StepGenerate }

// Run invokes the generation service once and folds the outcome into a delta.
func (g *generateStep) Run(ctx context.Context, s TripState) (Delta, error) {
	start := time.Now()

	cost := EstimateCost(s.BudgetRange, s.Duration, s.City)
	prompt := BuildPrompt(s, cost)

	resp, err := g.chat.Chat(ctx, prompt, g.chatOpts...)
	if err != nil {
		return g.failure(s, start, fmt.Sprintf("Error generating itinerary: %v", err)), nil
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return g.failure(s, start, "Failed to generate itinerary: the model returned an empty response."), nil
	}

	metrics := s.metricsWith(MetricGeneration, time.Since(start).Seconds())
	metrics[MetricTotal] = sumStepTimes(metrics)

	itinerary := resp.Content
	return Delta{
		Conversation:  s.conversationWith(ai.AssistantMessage(resp.Content)),
		Itinerary:     &itinerary,
		EstimatedCost: &cost,
		Metrics:       metrics,
	}, nil
}

func (g *generateStep) failure(s TripState, start time.Time, msg string) Delta {
	metrics := s.metricsWith(MetricGeneration, time.Since(start).Seconds())
	metrics[MetricTotal] = sumStepTimes(metrics)

	itinerary := msg
	return Delta{
		Conversation: s.conversationWith(ai.AssistantMessage(msg)),
		Itinerary:    &itinerary,
		ErrorLog:     s.appendedLog(msg),
		Metrics:      metrics,
	}
}

// sumStepTimes totals the per-step timings, excluding the running total
// itself.
func sumStepTimes(metrics map[string]float64) float64 {
	var total float64
	for name, seconds := range metrics {
		if name == MetricTotal {
			continue
		}
		total += seconds
	}
	return total
}
