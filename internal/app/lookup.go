package app

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/awaistahir/skycast/internal/forecast"
	"github.com/awaistahir/skycast/internal/geo"
	"github.com/awaistahir/skycast/internal/present"
	"github.com/awaistahir/skycast/internal/store"
	"github.com/awaistahir/skycast/internal/weather"
	"go.uber.org/zap"
)

// Lookup kinds recorded in the history
const (
	KindCity   = "city"
	KindCoords = "coords"
	KindHere   = "here"
)

// LookupCity fetches current conditions and the forecast for a city name
func (a *App) LookupCity(ctx context.Context, view present.View, city string) (*Result, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		view.ShowError(MsgBlankCity)
		return nil, &LookupError{
			Message: MsgBlankCity,
			Err:     &ValidationError{Input: city, Err: ErrBlankCity},
		}
	}

	view.HideError()
	view.ShowLoading()
	defer view.HideLoading()

	res, err := a.fetch(ctx, view,
		func(ctx context.Context) (*weather.Current, error) { return a.client.CurrentByCity(ctx, city) },
		func(ctx context.Context) (*weather.Forecast, error) { return a.client.ForecastByCity(ctx, city) },
	)
	if err != nil {
		return nil, a.fail(ctx, view, KindCity, city, CityNotFoundMessage(city), err)
	}

	a.remember(ctx, city)
	a.record(ctx, store.Lookup{Kind: KindCity, Query: city, Resolved: res.Current.Name, Success: true})
	return res, nil
}

// LookupCoords fetches current conditions and the forecast for a position.
// The provider's name for the place goes into the recent searches.
func (a *App) LookupCoords(ctx context.Context, view present.View, lat, lon float64) (*Result, error) {
	return a.lookupCoords(ctx, view, KindCoords, lat, lon, false)
}

// lookupCoords enters loading unless the caller already has
func (a *App) lookupCoords(ctx context.Context, view present.View, kind string, lat, lon float64, loading bool) (*Result, error) {
	query := coordsQuery(lat, lon)

	if !loading {
		view.HideError()
		view.ShowLoading()
	}
	defer view.HideLoading()

	res, err := a.fetch(ctx, view,
		func(ctx context.Context) (*weather.Current, error) { return a.client.CurrentByCoords(ctx, lat, lon) },
		func(ctx context.Context) (*weather.Forecast, error) { return a.client.ForecastByCoords(ctx, lat, lon) },
	)
	if err != nil {
		return nil, a.fail(ctx, view, kind, query, MsgLocationFailed, err)
	}

	a.remember(ctx, res.Current.Name)
	a.record(ctx, store.Lookup{Kind: kind, Query: query, Resolved: res.Current.Name, Success: true})
	return res, nil
}

// LookupHere asks locator for the current position and looks it up. A nil
// locator means geolocation is unsupported; that is reported straight away.
func (a *App) LookupHere(ctx context.Context, view present.View, locator geo.Locator) (*Result, error) {
	if locator == nil {
		return nil, a.GeolocationFailed(view, geo.ErrUnsupported)
	}

	view.HideError()
	view.ShowLoading()

	pos, err := geo.Await(ctx, locator)
	if err != nil {
		a.record(ctx, store.Lookup{Kind: KindHere, Message: err.Error()})
		return nil, a.GeolocationFailed(view, err)
	}

	a.logger.Debug("position acquired",
		zap.Float64("lat", pos.Latitude),
		zap.Float64("lon", pos.Longitude),
	)
	return a.lookupCoords(ctx, view, KindHere, pos.Latitude, pos.Longitude, true)
}

// GeolocationFailed shows the banner for a position failure. It is also
// used when the position was requested outside the process, by a browser.
func (a *App) GeolocationFailed(view present.View, err error) error {
	msg := GeolocationMessage(err)
	if !errors.Is(err, geo.ErrUnsupported) {
		view.HideLoading()
	}
	view.ShowError(msg)

	a.logger.Info("geolocation failed", zap.Error(err))
	return &LookupError{Message: msg, Err: err}
}

// fetch gets current conditions, then the forecast, and renders both
func (a *App) fetch(
	ctx context.Context,
	view present.View,
	current func(context.Context) (*weather.Current, error),
	fc func(context.Context) (*weather.Forecast, error),
) (*Result, error) {
	cur, err := current(ctx)
	if err != nil {
		return nil, err
	}

	f, err := fc(ctx)
	if err != nil {
		return nil, err
	}

	p := present.NewPresenter(a.client, a.zone(view))
	daily := forecast.Bucketize(f.Samples, p.Location())

	res := &Result{
		Current:  cur,
		Forecast: f,
		Daily:    daily,
		View:     p.Current(cur),
		Cards:    p.Cards(daily),
	}
	view.Render(res.View, res.Cards)
	return res, nil
}

func (a *App) fail(ctx context.Context, view present.View, kind, query, msg string, err error) error {
	view.ShowError(msg)
	a.logger.Warn("lookup failed",
		zap.String("kind", kind),
		zap.String("query", query),
		zap.Error(err),
	)
	a.record(ctx, store.Lookup{Kind: kind, Query: query, Message: err.Error()})
	return &LookupError{Message: msg, Err: err}
}

// zone picks the viewer's zone when the view knows it
func (a *App) zone(view present.View) *time.Location {
	if z, ok := view.(present.Zoned); ok {
		if loc := z.Location(); loc != nil {
			return loc
		}
	}
	return a.loc
}

func coordsQuery(lat, lon float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lon, 'f', -1, 64)
}
