package planner

import (
	"context"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// WeatherProvider looks up current conditions and a short forecast for a
// destination.
type WeatherProvider interface {
	Weather(ctx context.Context, city, country string) (*WeatherReport, error)
}

// EventsProvider looks up local events for a destination over the trip
// duration.
type EventsProvider interface {
	Events(ctx context.Context, city string, duration int) ([]LocalEvent, error)
}

// StaticWeather is a simulated weather provider returning a fixed synthetic
// payload. It preserves the response shape a real backing implementation
// must produce.
type StaticWeather struct{}

// Weather returns the synthetic report.
func (StaticWeather) Weather(ctx context.Context, city, country string) (*WeatherReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &WeatherReport{
		Temperature:     "22°C",
		Condition:       "partly cloudy",
		Forecast:        []string{"sunny", "partly cloudy", "clear"},
		BestTimeToVisit: "morning and early evening",
	}, nil
}

// StaticEvents is a simulated events provider returning a fixed synthetic
// event list, one event per trip day up to three.
type StaticEvents struct{}

// Events returns the synthetic event list.
func (StaticEvents) Events(ctx context.Context, city string, duration int) ([]LocalEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	catalog := []LocalEvent{
		{Name: "Local Food Market", Category: "food", Price: 0},
		{Name: "Old Town Walking Tour", Category: "culture", Price: 15},
		{Name: "Evening Concert Series", Category: "music", Price: 35},
	}

	if duration < 1 {
		duration = 1
	}
	n := duration
	if n > len(catalog) {
		n = len(catalog)
	}

	events := make([]LocalEvent, n)
	for i := 0; i < n; i++ {
		events[i] = catalog[i]
		events[i].Date = fmt.Sprintf("Day %d", i+1)
	}
	return events, nil
}

// CachedWeather wraps a WeatherProvider with an in-memory TTL cache keyed
// by city and country. Cached reports are treated as immutable.
type CachedWeather struct {
	inner WeatherProvider
	cache *gocache.Cache
}

// NewCachedWeather creates a caching decorator around a weather provider.
func NewCachedWeather(inner WeatherProvider, ttl time.Duration) *CachedWeather {
	return &CachedWeather{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Weather returns a cached report when present, otherwise delegates.
// Lookup failures are not cached.
func (c *CachedWeather) Weather(ctx context.Context, city, country string) (*WeatherReport, error) {
	key := strings.ToLower(city) + "|" + strings.ToLower(country)
	if cached, ok := c.cache.Get(key); ok {
		return cached.(*WeatherReport), nil
	}

	report, err := c.inner.Weather(ctx, city, country)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, report)
	return report, nil
}

// CachedEvents wraps an EventsProvider with an in-memory TTL cache keyed
// by city and duration.
type CachedEvents struct {
	inner EventsProvider
	cache *gocache.Cache
}

// NewCachedEvents creates a caching decorator around an events provider.
func NewCachedEvents(inner EventsProvider, ttl time.Duration) *CachedEvents {
	return &CachedEvents{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Events returns cached events when present, otherwise delegates.
// Lookup failures are not cached.
func (c *CachedEvents) Events(ctx context.Context, city string, duration int) ([]LocalEvent, error) {
	key := fmt.Sprintf("%s|%d", strings.ToLower(city), duration)
	if cached, ok := c.cache.Get(key); ok {
		return cached.([]LocalEvent), nil
	}

	events, err := c.inner.Events(ctx, city, duration)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, events)
	return events, nil
}
