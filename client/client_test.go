package client

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/mstrand/itinera"
	"github.com/mstrand/itinera/retry"
)

type fakeBackend struct {
	calls     int
	failUntil int
	err       error
}

func (f *fakeBackend) Chat(ctx context.Context, msgs []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	f.calls++
	if f.calls <= f.failUntil {
		return nil, f.err
	}
	return &ai.Response{Content: "ok"}, nil
}

func fastRetry() retry.Config {
	cfg := retry.DefaultConfig()
	cfg.InitialDelay = time.Millisecond
	cfg.MaxDelay = time.Millisecond
	return cfg
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(context.Background(), Config{Provider: ProviderOpenAI})
	require.Error(t, err)

	var missing *ErrMissingAPIKey
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, ProviderOpenAI, missing.Provider)
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	_, err := New(context.Background(), Config{Provider: "mystery", APIKey: "k"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mystery")
}

func TestFromEnvNoKeys(t *testing.T) {
	t.Setenv(EnvOpenAIKey, "")
	t.Setenv(EnvAnthropicKey, "")
	t.Setenv(EnvGoogleKey, "")
	t.Setenv(EnvProvider, "")

	_, err := FromEnv(context.Background())
	var noProvider *ErrNoProvider
	assert.ErrorAs(t, err, &noProvider)
}

func TestFromEnvPicksFirstConfiguredKey(t *testing.T) {
	t.Setenv(EnvOpenAIKey, "")
	t.Setenv(EnvAnthropicKey, "test-key")
	t.Setenv(EnvGoogleKey, "")
	t.Setenv(EnvProvider, "")

	c, err := FromEnv(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ProviderAnthropic, c.Provider())
}

func TestFromEnvRespectsExplicitProvider(t *testing.T) {
	t.Setenv(EnvOpenAIKey, "openai-key")
	t.Setenv(EnvAnthropicKey, "anthropic-key")
	t.Setenv(EnvProvider, "anthropic")

	c, err := FromEnv(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ProviderAnthropic, c.Provider())
}

func TestFromEnvExplicitProviderMissingKey(t *testing.T) {
	t.Setenv(EnvOpenAIKey, "openai-key")
	t.Setenv(EnvGoogleKey, "")
	t.Setenv(EnvProvider, "google")

	_, err := FromEnv(context.Background())
	var missing *ErrMissingAPIKey
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, ProviderGoogle, missing.Provider)
}

func TestChatRetriesTransientErrors(t *testing.T) {
	backend := &fakeBackend{
		failUntil: 2,
		err:       ai.NewTransientError("rate limited", 429, nil),
	}
	c := &Client{
		provider:    ProviderOpenAI,
		backend:     backend,
		retryConfig: fastRetry(),
	}

	resp, err := c.Chat(context.Background(), []ai.Message{ai.UserMessage("hi")})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Content)
	assert.Equal(t, 3, backend.calls)
}

func TestChatDoesNotRetryPermanentErrors(t *testing.T) {
	backend := &fakeBackend{
		failUntil: 10,
		err:       ai.NewPermanentError("bad key", 401, nil),
	}
	c := &Client{
		provider:    ProviderOpenAI,
		backend:     backend,
		retryConfig: fastRetry(),
	}

	_, err := c.Chat(context.Background(), []ai.Message{ai.UserMessage("hi")})
	require.Error(t, err)
	assert.Equal(t, 1, backend.calls)
}

func TestChatEmitsEvents(t *testing.T) {
	events := make(chan Event, 4)
	c := &Client{
		provider:    ProviderOpenAI,
		backend:     &fakeBackend{},
		retryConfig: fastRetry(),
		events:      events,
	}

	_, err := c.Chat(context.Background(), []ai.Message{ai.UserMessage("hi")})
	require.NoError(t, err)

	first := <-events
	assert.Equal(t, EventRequestStart, first.Type)
	assert.False(t, first.Timestamp.IsZero())

	second := <-events
	assert.Equal(t, EventRequestComplete, second.Type)
	require.NotNil(t, second.Usage)
}

func TestWithEventsOption(t *testing.T) {
	t.Setenv(EnvAnthropicKey, "test-key")
	t.Setenv(EnvOpenAIKey, "")
	t.Setenv(EnvGoogleKey, "")
	t.Setenv(EnvProvider, "")

	events := make(chan Event, 1)
	c, err := FromEnv(context.Background(), WithEvents(events))
	require.NoError(t, err)
	assert.NotNil(t, c.events)
}

func TestEmitDoesNotBlockWhenFull(t *testing.T) {
	full := make(chan Event, 1)
	full <- Event{Type: EventRequestStart}

	done := make(chan struct{})
	go func() {
		emit(full, Event{Type: EventRequestComplete})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("emit blocked on a full channel")
	}
}
