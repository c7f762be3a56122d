// Package mcp exposes the trip planner as an MCP (Model Context Protocol)
// server, so MCP clients can call it as a tool.
//
//	p := planner.New(chatClient)
//	if err := mcp.ServeStdio(p); err != nil {
//	    log.Fatal(err)
//	}
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mstrand/itinera/planner"
)

// PlanTripToolName is the tool name registered with MCP clients.
const PlanTripToolName = "plan_trip"

// planTripSchema describes the plan_trip arguments to MCP clients.
var planTripSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "city": {"type": "string", "description": "Destination city"},
    "country": {"type": "string", "description": "Destination country"},
    "interests": {"type": "array", "items": {"type": "string"}, "description": "Traveler interests, at least one"},
    "duration": {"type": "integer", "description": "Trip length in days, minimum 1"},
    "tripType": {"type": "string", "enum": ["leisure", "business", "adventure", "cultural"]},
    "budgetRange": {"type": "string", "enum": ["budget", "moderate", "luxury"]},
    "preferences": {"type": "object", "additionalProperties": {"type": "string"}}
  },
  "required": ["city", "interests", "duration"]
}`)

// planTripArgs is the wire shape of a plan_trip call.
type planTripArgs struct {
	City        string            `json:"city"`
	Country     string            `json:"country"`
	Interests   []string          `json:"interests"`
	Duration    int               `json:"duration"`
	TripType    string            `json:"tripType"`
	BudgetRange string            `json:"budgetRange"`
	Preferences map[string]string `json:"preferences"`
}

// planTripResult is the wire shape of a plan_trip response.
type planTripResult struct {
	Itinerary     string                 `json:"itinerary"`
	EstimatedCost float64                `json:"estimatedCost"`
	Weather       *planner.WeatherReport `json:"weatherInfo,omitempty"`
	Events        []planner.LocalEvent   `json:"localEvents,omitempty"`
	ErrorLog      []string               `json:"errorLog,omitempty"`
}

// ServerOption configures a Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	name    string
	version string
}

// WithName sets the server name reported to MCP clients.
func WithName(name string) ServerOption {
	return func(c *serverConfig) {
		c.name = name
	}
}

// WithVersion sets the server version reported to MCP clients.
func WithVersion(version string) ServerOption {
	return func(c *serverConfig) {
		c.version = version
	}
}

// NewServer creates an MCP server exposing the planner as a plan_trip tool.
func NewServer(p *planner.Planner, opts ...ServerOption) *server.MCPServer {
	cfg := &serverConfig{
		name:    "itinera-mcp-server",
		version: "1.0.0",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	s := server.NewMCPServer(
		cfg.name,
		cfg.version,
		server.WithToolCapabilities(true),
	)

	tool := mcp.NewToolWithRawSchema(PlanTripToolName,
		"Generate a day-by-day travel itinerary for a destination, including weather, local events, and a cost estimate.",
		planTripSchema,
	)
	s.AddTool(tool, planTripHandler(p))

	return s
}

// ServeStdio starts an MCP server that communicates over stdin/stdout.
// This is the standard transport for MCP servers invoked as subprocesses.
func ServeStdio(p *planner.Planner, opts ...ServerOption) error {
	return server.ServeStdio(NewServer(p, opts...))
}

func planTripHandler(p *planner.Planner) func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		state, err := decodeArgs(req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		final := p.Plan(ctx, state)

		payload, err := json.Marshal(planTripResult{
			Itinerary:     final.Itinerary,
			EstimatedCost: final.EstimatedCost,
			Weather:       final.Weather,
			Events:        final.Events,
			ErrorLog:      final.ErrorLog,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
		}

		return mcp.NewToolResultText(string(payload)), nil
	}
}

// decodeArgs converts MCP call arguments into an initial trip state.
// Unknown enum values are reported back to the caller rather than defaulted.
func decodeArgs(req mcp.CallToolRequest) (planner.TripState, error) {
	var args planTripArgs

	data, err := json.Marshal(req.Params.Arguments)
	if err != nil {
		return planner.TripState{}, fmt.Errorf("failed to read arguments: %w", err)
	}
	if err := json.Unmarshal(data, &args); err != nil {
		return planner.TripState{}, fmt.Errorf("invalid arguments: %w", err)
	}

	state := planner.TripState{
		City:        args.City,
		Country:     args.Country,
		Interests:   args.Interests,
		Duration:    args.Duration,
		Preferences: args.Preferences,
	}

	if args.TripType != "" {
		tripType, err := planner.ParseTripType(args.TripType)
		if err != nil {
			return planner.TripState{}, err
		}
		state.TripType = tripType
	}
	if args.BudgetRange != "" {
		budget, err := planner.ParseBudgetRange(args.BudgetRange)
		if err != nil {
			return planner.TripState{}, err
		}
		state.BudgetRange = budget
	}

	return state, nil
}
