package planner

import (
	"fmt"

	ai "github.com/mstrand/itinera"
)

// TripType classifies the overall character of a trip.
type TripType string

const (
	TripLeisure   TripType = "leisure"
	TripBusiness  TripType = "business"
	TripAdventure TripType = "adventure"
	TripCultural  TripType = "cultural"
)

// ParseTripType converts an external string into a TripType.
// Unknown values are reported rather than silently defaulted.
func ParseTripType(s string) (TripType, error) {
	switch TripType(s) {
	case TripLeisure, TripBusiness, TripAdventure, TripCultural:
		return TripType(s), nil
	default:
		return "", fmt.Errorf("unknown trip type %q", s)
	}
}

// BudgetRange classifies the spending tier of a trip.
type BudgetRange string

const (
	BudgetLow      BudgetRange = "budget"
	BudgetModerate BudgetRange = "moderate"
	BudgetLuxury   BudgetRange = "luxury"
)

// ParseBudgetRange converts an external string into a BudgetRange.
// Unknown values are reported rather than silently defaulted.
func ParseBudgetRange(s string) (BudgetRange, error) {
	switch BudgetRange(s) {
	case BudgetLow, BudgetModerate, BudgetLuxury:
		return BudgetRange(s), nil
	default:
		return "", fmt.Errorf("unknown budget range %q", s)
	}
}

// WeatherReport is the shape returned by a weather provider.
// Error is set instead of the data fields when the lookup degraded.
type WeatherReport struct {
	Temperature     string   `json:"temperature,omitempty"`
	Condition       string   `json:"condition,omitempty"`
	Forecast        []string `json:"forecast,omitempty"`
	BestTimeToVisit string   `json:"bestTimeToVisit,omitempty"`
	Error           string   `json:"error,omitempty"`
}

// LocalEvent is a single event returned by an events provider.
type LocalEvent struct {
	Name     string  `json:"name"`
	Date     string  `json:"date"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

// Step and metric identifiers recorded during a run.
const (
	StepValidate   = "validate"
	StepGatherData = "gather_data"
	StepGenerate   = "generate_itinerary"

	MetricValidation    = "validation_time"
	MetricDataGathering = "data_gathering_time"
	MetricGeneration    = "itinerary_generation_time"
	MetricTotal         = "total_processing_time"
)

// DefaultCountry is used when the caller leaves Country empty.
const DefaultCountry = "Unknown"

// TripState is the trip-planning context threaded through every pipeline
// step. It is constructed fresh per invocation, mutated only via step
// deltas merged by the pipeline, and discarded once the caller has
// consumed Itinerary and ErrorLog.
type TripState struct {
	// Conversation is the ordered, append-only list of role-tagged turns.
	Conversation []ai.Message `json:"conversation"`

	City      string   `json:"city"`
	Country   string   `json:"country"`
	Interests []string `json:"interests"`

	// Duration is the trip length in days, minimum 1.
	Duration int `json:"duration"`

	TripType    TripType    `json:"tripType"`
	BudgetRange BudgetRange `json:"budgetRange"`

	// Preferences carries free-form caller preferences (transportation,
	// dietary restrictions). Passed through unopinionated.
	Preferences map[string]string `json:"preferences,omitempty"`

	Weather *WeatherReport `json:"weatherInfo,omitempty"`
	Events  []LocalEvent   `json:"localEvents"`

	EstimatedCost float64 `json:"estimatedCost"`

	// ErrorLog accumulates human-readable failure descriptions across
	// steps. It only grows within a run.
	ErrorLog []string `json:"errorLog"`

	// Metrics maps step names to elapsed seconds, accumulated across steps.
	Metrics map[string]float64 `json:"performanceMetrics"`

	// Itinerary is the single externally-visible result. On generation
	// failure it contains the error message shown to the user.
	Itinerary string `json:"itinerary"`
}

// Delta is the subset of TripState fields a step intends to change.
// Nil fields are absent and leave the running state untouched; set fields
// overwrite their counterparts wholesale (shallow merge, last write wins).
// Steps that extend a collection (ErrorLog, Conversation, Metrics) carry
// the full extended value in their delta.
type Delta struct {
	Conversation  []ai.Message
	City          *string
	Country       *string
	Interests     []string
	Duration      *int
	TripType      *TripType
	BudgetRange   *BudgetRange
	Preferences   map[string]string
	Weather       *WeatherReport
	Events        []LocalEvent
	EstimatedCost *float64
	ErrorLog      []string
	Metrics       map[string]float64
	Itinerary     *string
}

// Merge folds a delta into a state, field by field. An empty delta returns
// the state unchanged.
func Merge(s TripState, d Delta) TripState {
	if d.Conversation != nil {
		s.Conversation = d.Conversation
	}
	if d.City != nil {
		s.City = *d.City
	}
	if d.Country != nil {
		s.Country = *d.Country
	}
	if d.Interests != nil {
		s.Interests = d.Interests
	}
	if d.Duration != nil {
		s.Duration = *d.Duration
	}
	if d.TripType != nil {
		s.TripType = *d.TripType
	}
	if d.BudgetRange != nil {
		s.BudgetRange = *d.BudgetRange
	}
	if d.Preferences != nil {
		s.Preferences = d.Preferences
	}
	if d.Weather != nil {
		s.Weather = d.Weather
	}
	if d.Events != nil {
		s.Events = d.Events
	}
	if d.EstimatedCost != nil {
		s.EstimatedCost = *d.EstimatedCost
	}
	if d.ErrorLog != nil {
		s.ErrorLog = d.ErrorLog
	}
	if d.Metrics != nil {
		s.Metrics = d.Metrics
	}
	if d.Itinerary != nil {
		s.Itinerary = *d.Itinerary
	}
	return s
}

// appendedLog returns a copy of the error log with entries appended.
// Steps use this so their delta carries the grown log without mutating
// the state they were given.
func (s TripState) appendedLog(entries ...string) []string {
	log := make([]string, 0, len(s.ErrorLog)+len(entries))
	log = append(log, s.ErrorLog...)
	log = append(log, entries...)
	return log
}

// metricsWith returns a copy of the metrics map with one timing recorded.
func (s TripState) metricsWith(name string, seconds float64) map[string]float64 {
	metrics := make(map[string]float64, len(s.Metrics)+1)
	for k, v := range s.Metrics {
		metrics[k] = v
	}
	metrics[name] = seconds
	return metrics
}

// conversationWith returns a copy of the conversation with turns appended.
func (s TripState) conversationWith(msgs ...ai.Message) []ai.Message {
	conv := make([]ai.Message, 0, len(s.Conversation)+len(msgs))
	conv = append(conv, s.Conversation...)
	conv = append(conv, msgs...)
	return conv
}
