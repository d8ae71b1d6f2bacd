// Package app wires user lookups to the weather client, the forecast
// bucketizer, the presentation layer and the recent-search store.
package app

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/awaistahir/skycast/internal/forecast"
	"github.com/awaistahir/skycast/internal/present"
	"github.com/awaistahir/skycast/internal/recent"
	"github.com/awaistahir/skycast/internal/store"
	"github.com/awaistahir/skycast/internal/weather"
	"go.uber.org/zap"
)

// WeatherClient is the provider API used by lookups
type WeatherClient interface {
	CurrentByCity(ctx context.Context, city string) (*weather.Current, error)
	CurrentByCoords(ctx context.Context, lat, lon float64) (*weather.Current, error)
	ForecastByCity(ctx context.Context, city string) (*weather.Forecast, error)
	ForecastByCoords(ctx context.Context, lat, lon float64) (*weather.Forecast, error)
	IconURL(code string) string
}

// HistoryRecorder keeps an audit trail of lookups
type HistoryRecorder interface {
	RecordLookup(ctx context.Context, l store.Lookup) error
}

// App owns the application state: the client, the recent searches and
// where they are persisted
type App struct {
	client  WeatherClient
	persist recent.Persister
	history HistoryRecorder
	logger  *zap.Logger
	loc     *time.Location

	mu     sync.Mutex
	recent *recent.List
}

// Option configures an App
type Option func(*App)

// WithHistory records every lookup outcome to h
func WithHistory(h HistoryRecorder) Option {
	return func(a *App) { a.history = h }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(a *App) { a.logger = l }
}

// WithLocation sets the default zone used for day grouping and dates
func WithLocation(loc *time.Location) Option {
	return func(a *App) { a.loc = loc }
}

// New creates an App. persist may be nil to keep recent searches in memory.
func New(client WeatherClient, persist recent.Persister, opts ...Option) *App {
	a := &App{
		client:  client,
		persist: persist,
		logger:  zap.NewNop(),
		recent:  recent.NewList(nil),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Load reads the persisted recent searches. It is called once at startup;
// on error the list stays empty.
func (a *App) Load(ctx context.Context) error {
	if a.persist == nil {
		return nil
	}

	items, err := a.persist.LoadRecent(ctx)
	if err != nil {
		return fmt.Errorf("loading recent searches: %w", err)
	}

	a.mu.Lock()
	a.recent = recent.NewList(items)
	a.mu.Unlock()

	a.logger.Debug("loaded recent searches", zap.Int("count", len(items)))
	return nil
}

// Close releases the persistence store when it holds resources
func (a *App) Close() error {
	if c, ok := a.persist.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Recent returns the recent searches, most recent first
func (a *App) Recent() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.recent.Items()
}

// Suggestions returns the recent searches matching the search input
func (a *App) Suggestions(input string) []string {
	return present.FilterSuggestions(a.Recent(), input)
}

// IconURL exposes the client's icon URL builder
func (a *App) IconURL(code string) string {
	return a.client.IconURL(code)
}

// remember moves city to the front of the recent searches and saves them
func (a *App) remember(ctx context.Context, city string) {
	a.mu.Lock()
	a.recent.Add(city)
	items := a.recent.Items()
	a.mu.Unlock()

	if a.persist == nil {
		return
	}
	if err := a.persist.SaveRecent(ctx, items); err != nil {
		a.logger.Warn("saving recent searches", zap.Error(err))
	}
}

func (a *App) record(ctx context.Context, l store.Lookup) {
	if a.history == nil {
		return
	}
	l.CreatedAt = time.Now()
	if err := a.history.RecordLookup(ctx, l); err != nil {
		a.logger.Warn("recording lookup", zap.Error(err))
	}
}

// Result is a successful lookup
type Result struct {
	Current  *weather.Current
	Forecast *weather.Forecast
	Daily    []forecast.Sample
	View     present.CurrentView
	Cards    []present.Card
}
