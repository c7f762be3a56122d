// Command itinera generates a travel itinerary from the command line.
//
// Provider credentials are read from the environment (or a .env file):
// set one of OPENAI_API_KEY, ANTHROPIC_API_KEY, or GOOGLE_API_KEY.
//
// Usage:
//
//	itinera --city Tokyo --country Japan --interests food,culture --duration 3
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mstrand/itinera/client"
	"github.com/mstrand/itinera/planner"
)

var (
	city        string
	country     string
	interests   []string
	duration    int
	tripType    string
	budgetRange string
	model       string
	temperature float64
	outFile     string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "itinera",
	Short: "Generate a day-by-day travel itinerary",
	Long: `Itinera plans a trip for you: it validates your request, gathers
weather and local event data, estimates the cost, and asks a language
model for a day-by-day itinerary.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&city, "city", "", "destination city (required)")
	rootCmd.Flags().StringVar(&country, "country", "", "destination country")
	rootCmd.Flags().StringSliceVar(&interests, "interests", nil, "comma-separated traveler interests (required)")
	rootCmd.Flags().IntVar(&duration, "duration", 1, "trip length in days")
	rootCmd.Flags().StringVar(&tripType, "trip-type", "", "trip type: leisure, business, adventure, cultural")
	rootCmd.Flags().StringVar(&budgetRange, "budget", "", "budget range: budget, moderate, luxury")
	rootCmd.Flags().StringVar(&model, "model", "", "model identifier override")
	rootCmd.Flags().Float64Var(&temperature, "temperature", 0, "sampling temperature override")
	rootCmd.Flags().StringVar(&outFile, "out", "", "write the itinerary to a file instead of stdout")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log step timings")
}

func main() {
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	initial := planner.TripState{
		City:      city,
		Country:   country,
		Interests: interests,
		Duration:  duration,
	}
	if tripType != "" {
		parsed, err := planner.ParseTripType(tripType)
		if err != nil {
			return err
		}
		initial.TripType = parsed
	}
	if budgetRange != "" {
		parsed, err := planner.ParseBudgetRange(budgetRange)
		if err != nil {
			return err
		}
		initial.BudgetRange = parsed
	}

	events := make(chan client.Event, 16)
	go logUsage(events)

	c, err := client.FromEnv(ctx, client.WithEvents(events))
	if err != nil {
		return err
	}
	log.Debug().Str("provider", string(c.Provider())).Msg("client ready")

	var opts []planner.Option
	if model != "" {
		opts = append(opts, planner.WithModel(model))
	}
	if cmd.Flags().Changed("temperature") {
		opts = append(opts, planner.WithTemperature(temperature))
	}

	p := planner.New(c, opts...)
	final := p.Plan(ctx, initial)

	for _, entry := range final.ErrorLog {
		log.Warn().Msg(entry)
	}
	for name, seconds := range final.Metrics {
		log.Debug().Float64("seconds", seconds).Msg(name)
	}
	log.Info().
		Float64("estimated_cost", final.EstimatedCost).
		Float64("total_seconds", final.Metrics[planner.MetricTotal]).
		Msg("planning finished")

	if outFile != "" {
		if err := os.WriteFile(outFile, []byte(final.Itinerary+"\n"), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outFile, err)
		}
		log.Info().Str("path", outFile).Msg("itinerary written")
	} else {
		fmt.Println(final.Itinerary)
	}

	if isFailureItinerary(final.Itinerary) {
		return fmt.Errorf("itinerary generation failed")
	}
	return nil
}

// logUsage reports token usage from completed requests.
func logUsage(events <-chan client.Event) {
	for ev := range events {
		if ev.Type == client.EventRequestComplete && ev.Usage != nil {
			log.Info().
				Int("input_tokens", ev.Usage.InputTokens).
				Int("output_tokens", ev.Usage.OutputTokens).
				Dur("duration", ev.Duration).
				Msg("model request complete")
		}
	}
}

// isFailureItinerary reports whether the itinerary text is one of the
// planner's failure messages rather than generated content.
func isFailureItinerary(itinerary string) bool {
	if itinerary == planner.FallbackItinerary {
		return true
	}
	for _, prefix := range []string{
		"Error generating itinerary:",
		"Failed to generate itinerary:",
		"An unexpected error occurred while planning:",
	} {
		if strings.HasPrefix(itinerary, prefix) {
			return true
		}
	}
	return false
}
