// Package itinera provides the core types for building LLM-backed trip
// itinerary planners.
//
// The library is organized around a small set of wire types: [Message] for
// conversation turns, [Response] for model output, [Options] for per-request
// configuration, and the [ChatProvider] interface that abstracts the
// text-completion service. Provider-specific implementations live in
// [github.com/mstrand/itinera/provider/openai],
// [github.com/mstrand/itinera/provider/anthropic], and
// [github.com/mstrand/itinera/provider/google]; the
// [github.com/mstrand/itinera/client] package wraps any of them with retry
// and environment-based configuration.
//
// The planning logic itself lives in
// [github.com/mstrand/itinera/planner], which threads a trip state record
// through a fixed-order pipeline (validate, gather data, generate) built on
// [github.com/mstrand/itinera/pipeline].
//
// # Basic Usage
//
//	c, err := client.FromEnv(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	p := planner.New(c)
//	final := p.Plan(ctx, planner.TripState{
//	    City:      "Tokyo",
//	    Interests: []string{"food", "temples"},
//	    Duration:  3,
//	})
//	fmt.Println(final.Itinerary)
//
// Plan never returns an error: failures are folded into the returned state's
// ErrorLog and Itinerary fields, so callers always receive a complete,
// displayable result.
package itinera
