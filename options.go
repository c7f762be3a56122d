package itinera

// Options collects the per-request generation settings a caller can
// override. Zero values mean "provider default": each provider resolves
// unset fields against its own configuration via ModelOr / MaxTokensOr.
type Options struct {
	Model       string
	MaxTokens   int
	Temperature *float64
}

// ModelOr returns the requested model identifier, or fallback when the
// request did not name one.
func (o *Options) ModelOr(fallback string) string {
	if o.Model != "" {
		return o.Model
	}
	return fallback
}

// MaxTokensOr returns the requested token limit, or fallback when the
// request did not set one.
func (o *Options) MaxTokensOr(fallback int) int {
	if o.MaxTokens > 0 {
		return o.MaxTokens
	}
	return fallback
}

// Option is a functional option for configuring chat requests.
type Option func(*Options)

// WithModel sets the model identifier to use for the request.
func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// WithMaxTokens sets the maximum number of tokens to generate.
func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// WithTemperature sets the sampling temperature (0.0 to 2.0).
func WithTemperature(t float64) Option {
	return func(o *Options) {
		o.Temperature = &t
	}
}

// ApplyOptions resolves functional options into an Options value.
// Later options win over earlier ones.
func ApplyOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
