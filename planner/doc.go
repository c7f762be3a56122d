// Package planner generates multi-day travel itineraries by threading a
// trip state record through a fixed-order pipeline: validate the request,
// gather weather and local event data, then render a prompt and invoke the
// language model once.
//
// The entry point is [Planner.Plan], which fills defaults, runs the
// pipeline, and always returns a complete state. Failures never surface as
// errors or panics: they are recorded into the state's ErrorLog, and a
// generation failure additionally becomes the user-visible Itinerary text.
//
//	p := planner.New(chatClient)
//	final := p.Plan(ctx, planner.TripState{
//	    City:      "Tokyo",
//	    Interests: []string{"food", "temples"},
//	    Duration:  3,
//	})
//
// Success and failure are distinguished only by inspecting the returned
// state: a non-empty Itinerary with an empty ErrorLog is a clean run.
package planner
