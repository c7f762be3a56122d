package planner

import (
	"context"
	"fmt"
	"strings"
	"time"

	ai "github.com/mstrand/itinera"
	"github.com/mstrand/itinera/pipeline"
)

// FallbackItinerary is returned when the pipeline completes without
// producing any itinerary text at all.
const FallbackItinerary = "Unable to generate itinerary. Please try again."

// DefaultLookupTimeout bounds each data provider call.
const DefaultLookupTimeout = 10 * time.Second

// Planner runs the trip-planning pipeline: validate, gather data, generate.
// Construct it once and reuse it; each Plan call owns its own state, so a
// Planner is safe for concurrent use as long as its providers are.
type Planner struct {
	chain *pipeline.Chain[TripState, Delta]
}

// Option configures a Planner.
type Option func(*config)

type config struct {
	weather       WeatherProvider
	events        EventsProvider
	lookupTimeout time.Duration
	chatOpts      []ai.Option
}

// WithWeatherProvider replaces the default simulated weather provider.
func WithWeatherProvider(p WeatherProvider) Option {
	return func(c *config) {
		c.weather = p
	}
}

// WithEventsProvider replaces the default simulated events provider.
func WithEventsProvider(p EventsProvider) Option {
	return func(c *config) {
		c.events = p
	}
}

// WithLookupTimeout bounds each provider lookup. A lookup exceeding the
// timeout is treated as a provider failure, degrading only its own field.
func WithLookupTimeout(d time.Duration) Option {
	return func(c *config) {
		c.lookupTimeout = d
	}
}

// WithChatOptions passes request options to the generation call.
func WithChatOptions(opts ...ai.Option) Option {
	return func(c *config) {
		c.chatOpts = append(c.chatOpts, opts...)
	}
}

// WithModel sets the model identifier for the generation call.
func WithModel(model string) Option {
	return WithChatOptions(ai.WithModel(model))
}

// WithTemperature sets the sampling temperature for the generation call.
func WithTemperature(t float64) Option {
	return WithChatOptions(ai.WithTemperature(t))
}

// New creates a Planner backed by the given generation service.
func New(chat ai.ChatProvider, opts ...Option) *Planner {
	cfg := &config{
		weather:       StaticWeather{},
		events:        StaticEvents{},
		lookupTimeout: DefaultLookupTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	chain := pipeline.NewChain("trip_planner", Merge,
		pipeline.NewStep(StepValidate, validate),
		newGatherStep(cfg.weather, cfg.events, cfg.lookupTimeout),
		&generateStep{chat: chat, chatOpts: cfg.chatOpts},
	)

	return &Planner{chain: chain}
}

// Plan fills defaults over the caller-supplied initial state, runs the
// pipeline, and returns the final state. It never returns an error and
// never panics: every failure is folded into the state, and the returned
// Itinerary is always non-empty (a failure message when generation did not
// succeed).
func (p *Planner) Plan(ctx context.Context, initial TripState) (final TripState) {
	state := withDefaults(initial)

	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf("An unexpected error occurred while planning: %v", r)
			state.ErrorLog = append(state.ErrorLog, msg)
			state.Itinerary = msg
			final = state
		}
	}()

	state, err := p.chain.Run(ctx, state,
		pipeline.WithErrorHandler(recordStepFailure),
	)
	if err != nil {
		// With the error handler installed, only context cancellation
		// reaches here.
		state.ErrorLog = append(state.ErrorLog, fmt.Sprintf("planning aborted: %v", err))
	}

	if strings.TrimSpace(state.Itinerary) == "" {
		state.Itinerary = FallbackItinerary
		state.Conversation = append(state.Conversation, ai.AssistantMessage(FallbackItinerary))
	}

	return state
}

// recordStepFailure is the chain's error handler: the failing step's delta
// is discarded and the failure is recorded as data, so later steps still
// run on the state as it was.
func recordStepFailure(ctx context.Context, s TripState, stepName string, err error) TripState {
	s.ErrorLog = s.appendedLog(fmt.Sprintf("step %s failed: %v", stepName, err))
	return s
}

// withDefaults completes a caller-supplied state so every field is present,
// and seeds the conversation with the request turns.
func withDefaults(s TripState) TripState {
	if s.Preferences == nil {
		s.Preferences = map[string]string{}
	}
	if s.ErrorLog == nil {
		s.ErrorLog = []string{}
	}
	if s.Metrics == nil {
		s.Metrics = map[string]float64{}
	}
	if s.Events == nil {
		s.Events = []LocalEvent{}
	}

	turns := []ai.Message{
		ai.UserMessage(fmt.Sprintf("I want to visit %s", s.City)),
	}
	if len(s.Interests) > 0 {
		turns = append(turns, ai.UserMessage(fmt.Sprintf("My interests are: %s", strings.Join(s.Interests, ", "))))
	}
	s.Conversation = s.conversationWith(turns...)

	return s
}
