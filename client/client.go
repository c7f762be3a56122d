package client

import (
	"context"
	"fmt"
	"os"
	"time"

	ai "github.com/mstrand/itinera"
	"github.com/mstrand/itinera/provider/anthropic"
	"github.com/mstrand/itinera/provider/google"
	"github.com/mstrand/itinera/provider/openai"
	"github.com/mstrand/itinera/retry"
)

// ProviderName identifies a chat backend.
type ProviderName string

const (
	ProviderOpenAI    ProviderName = "openai"
	ProviderAnthropic ProviderName = "anthropic"
	ProviderGoogle    ProviderName = "google"
)

// Environment variables consulted by FromEnv.
const (
	EnvOpenAIKey    = "OPENAI_API_KEY"
	EnvAnthropicKey = "ANTHROPIC_API_KEY"
	EnvGoogleKey    = "GOOGLE_API_KEY"
	EnvProvider     = "ITINERA_PROVIDER"
	EnvModel        = "ITINERA_MODEL"
)

// ErrMissingAPIKey is returned when the selected provider has no key
// configured.
type ErrMissingAPIKey struct {
	Provider ProviderName
}

func (e *ErrMissingAPIKey) Error() string {
	return fmt.Sprintf("no API key configured for %s", e.Provider)
}

// ErrNoProvider is returned by FromEnv when no provider key is set at all.
type ErrNoProvider struct{}

func (e *ErrNoProvider) Error() string {
	return fmt.Sprintf("no provider configured: set one of %s, %s, %s",
		EnvOpenAIKey, EnvAnthropicKey, EnvGoogleKey)
}

// Config holds configuration for creating a client.
type Config struct {
	// Provider selects the chat backend.
	Provider ProviderName

	// APIKey authenticates against the selected provider.
	APIKey string

	// Model overrides the provider's default model. Optional.
	Model string

	// RetryConfig configures retry behavior for transient errors.
	// If nil, the default configuration is used.
	RetryConfig *retry.Config

	// Events is an optional channel for receiving operation events.
	// Events are sent non-blocking; if the channel is full they are dropped.
	Events chan<- Event
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithDefaultTemperature sets the default temperature for chat requests.
// Per-request options override this default.
func WithDefaultTemperature(t float64) ClientOption {
	return func(c *Client) {
		c.defaultOpts = append(c.defaultOpts, ai.WithTemperature(t))
	}
}

// WithDefaultMaxTokens sets the default max tokens for chat requests.
// Per-request options override this default.
func WithDefaultMaxTokens(n int) ClientOption {
	return func(c *Client) {
		c.defaultOpts = append(c.defaultOpts, ai.WithMaxTokens(n))
	}
}

// WithDefaultChatOptions sets default options for all chat requests.
// Per-request options override these defaults.
func WithDefaultChatOptions(opts ...ai.Option) ClientOption {
	return func(c *Client) {
		c.defaultOpts = append(c.defaultOpts, opts...)
	}
}

// WithEvents sets the channel receiving operation events. Events are sent
// non-blocking; if the channel is full they are dropped.
func WithEvents(ch chan<- Event) ClientOption {
	return func(c *Client) {
		c.events = ch
	}
}

// Client wraps a provider with retry handling and operation events.
// It is safe for concurrent use.
type Client struct {
	provider    ProviderName
	backend     ai.ChatProvider
	retryConfig retry.Config
	events      chan<- Event
	defaultOpts []ai.Option
}

// New creates a client with the given configuration.
func New(ctx context.Context, cfg Config, opts ...ClientOption) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, &ErrMissingAPIKey{Provider: cfg.Provider}
	}

	backend, err := newBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	retryConfig := retry.DefaultConfig()
	if cfg.RetryConfig != nil {
		retryConfig = *cfg.RetryConfig
	}

	c := &Client{
		provider:    cfg.Provider,
		backend:     backend,
		retryConfig: retryConfig,
		events:      cfg.Events,
	}
	if cfg.Model != "" {
		c.defaultOpts = append(c.defaultOpts, ai.WithModel(cfg.Model))
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FromEnv creates a client from environment variables. ITINERA_PROVIDER
// selects the backend explicitly; otherwise the first configured key wins,
// checked in order: OpenAI, Anthropic, Google. ITINERA_MODEL, when set,
// overrides the provider's default model.
func FromEnv(ctx context.Context, opts ...ClientOption) (*Client, error) {
	cfg := Config{Model: os.Getenv(EnvModel)}

	if name := ProviderName(os.Getenv(EnvProvider)); name != "" {
		cfg.Provider = name
		cfg.APIKey = os.Getenv(keyEnvFor(name))
		return New(ctx, cfg, opts...)
	}

	for _, name := range []ProviderName{ProviderOpenAI, ProviderAnthropic, ProviderGoogle} {
		if key := os.Getenv(keyEnvFor(name)); key != "" {
			cfg.Provider = name
			cfg.APIKey = key
			return New(ctx, cfg, opts...)
		}
	}

	return nil, &ErrNoProvider{}
}

// Provider returns the backend this client was built for.
func (c *Client) Provider() ProviderName { return c.provider }

// Chat sends a conversation and returns a complete response, retrying
// transient failures according to the client's retry configuration.
func (c *Client) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	// Prepend defaults so per-request options override them.
	opts = append(c.defaultOpts, opts...)

	start := time.Now()
	emit(c.events, Event{
		Type:      EventRequestStart,
		Operation: "chat",
		Provider:  c.provider,
	})

	resp, err := retry.Do(ctx, c.retryConfig, func() (*ai.Response, error) {
		return c.backend.Chat(ctx, messages, opts...)
	})
	if err != nil {
		emit(c.events, Event{
			Type:      EventRequestError,
			Operation: "chat",
			Provider:  c.provider,
			Duration:  time.Since(start),
			Error:     err,
		})
		return nil, err
	}

	var usage *ai.Usage
	if resp != nil {
		usage = &resp.Usage
	}
	emit(c.events, Event{
		Type:      EventRequestComplete,
		Operation: "chat",
		Provider:  c.provider,
		Duration:  time.Since(start),
		Usage:     usage,
	})
	return resp, nil
}

func newBackend(ctx context.Context, cfg Config) (ai.ChatProvider, error) {
	switch cfg.Provider {
	case ProviderOpenAI:
		return openai.New(cfg.APIKey), nil
	case ProviderAnthropic:
		return anthropic.New(cfg.APIKey), nil
	case ProviderGoogle:
		return google.New(ctx, cfg.APIKey)
	default:
		return nil, fmt.Errorf("unsupported provider: %q", cfg.Provider)
	}
}

func keyEnvFor(name ProviderName) string {
	switch name {
	case ProviderAnthropic:
		return EnvAnthropicKey
	case ProviderGoogle:
		return EnvGoogleKey
	default:
		return EnvOpenAIKey
	}
}

var _ ai.ChatProvider = (*Client)(nil)
