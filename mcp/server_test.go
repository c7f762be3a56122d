package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/mstrand/itinera"
	"github.com/mstrand/itinera/planner"
)

type stubChat struct {
	content string
}

func (s stubChat) Chat(ctx context.Context, msgs []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	return &ai.Response{Content: s.content}, nil
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      PlanTripToolName,
			Arguments: args,
		},
	}
}

func TestDecodeArgs(t *testing.T) {
	state, err := decodeArgs(callRequest(map[string]any{
		"city":        "Tokyo",
		"country":     "Japan",
		"interests":   []string{"food", "culture"},
		"duration":    3,
		"tripType":    "cultural",
		"budgetRange": "moderate",
		"preferences": map[string]string{"transportation": "public"},
	}))
	require.NoError(t, err)

	assert.Equal(t, "Tokyo", state.City)
	assert.Equal(t, "Japan", state.Country)
	assert.Equal(t, []string{"food", "culture"}, state.Interests)
	assert.Equal(t, 3, state.Duration)
	assert.Equal(t, planner.TripCultural, state.TripType)
	assert.Equal(t, planner.BudgetModerate, state.BudgetRange)
	assert.Equal(t, "public", state.Preferences["transportation"])
}

func TestDecodeArgsRejectsUnknownTripType(t *testing.T) {
	_, err := decodeArgs(callRequest(map[string]any{
		"city":     "Tokyo",
		"duration": 3,
		"tripType": "vacation",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vacation")
}

func TestDecodeArgsRejectsUnknownBudget(t *testing.T) {
	_, err := decodeArgs(callRequest(map[string]any{
		"city":        "Tokyo",
		"duration":    3,
		"budgetRange": "free",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "free")
}

func TestPlanTripHandler(t *testing.T) {
	p := planner.New(stubChat{content: "a fine itinerary"})
	handler := planTripHandler(p)

	result, err := handler(context.Background(), callRequest(map[string]any{
		"city":        "Tokyo",
		"country":     "Japan",
		"interests":   []string{"food"},
		"duration":    3,
		"budgetRange": "moderate",
	}))
	require.NoError(t, err)
	require.NotNil(t, result)
	require.False(t, result.IsError)

	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)

	var payload planTripResult
	require.NoError(t, json.Unmarshal([]byte(text.Text), &payload))
	assert.Equal(t, "a fine itinerary", payload.Itinerary)
	assert.Equal(t, 585.0, payload.EstimatedCost)
	assert.Empty(t, payload.ErrorLog)
	assert.Len(t, payload.Events, 3)
}

func TestPlanTripHandlerBadArgs(t *testing.T) {
	p := planner.New(stubChat{content: "unused"})
	handler := planTripHandler(p)

	result, err := handler(context.Background(), callRequest(map[string]any{
		"city":     "Tokyo",
		"duration": 3,
		"tripType": "nope",
	}))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
