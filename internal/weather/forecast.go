package weather

import (
	"context"
	"time"

	"github.com/awaistahir/skycast/internal/forecast"
)

// Forecast is the provider's 3-hourly series for a location
type Forecast struct {
	City    string
	Country string
	Samples []forecast.Sample
}

// forecastResponse represents the /forecast response
type forecastResponse struct {
	Cnt  int `json:"cnt"`
	List []struct {
		Dt      int64       `json:"dt"`
		Main    mainBlock   `json:"main"`
		Weather []condition `json:"weather"`
		Wind    windBlock   `json:"wind"`
		DtTxt   string      `json:"dt_txt"`
	} `json:"list"`
	City struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"city"`
}

// ForecastByCity fetches the 5 day / 3 hour forecast for a city name
func (c *Client) ForecastByCity(ctx context.Context, city string) (*Forecast, error) {
	return c.forecast(ctx, map[string]string{"q": city})
}

// ForecastByCoords fetches the 5 day / 3 hour forecast for a latitude/longitude
func (c *Client) ForecastByCoords(ctx context.Context, lat, lon float64) (*Forecast, error) {
	return c.forecast(ctx, coordParams(lat, lon))
}

func (c *Client) forecast(ctx context.Context, params map[string]string) (*Forecast, error) {
	params["units"] = "metric"

	var resp forecastResponse
	if err := c.get(ctx, "forecast", "/forecast", params, &resp); err != nil {
		return nil, err
	}

	samples := make([]forecast.Sample, 0, len(resp.List))
	for _, item := range resp.List {
		samples = append(samples, toSample(item.Dt, item.Main, item.Wind, item.Weather))
	}

	return &Forecast{
		City:    resp.City.Name,
		Country: resp.City.Country,
		Samples: samples,
	}, nil
}

// toSample flattens one provider reading; only the first condition is kept
func toSample(dt int64, m mainBlock, w windBlock, conds []condition) forecast.Sample {
	s := forecast.Sample{
		Time:        time.Unix(dt, 0),
		TempC:       m.Temp,
		FeelsLikeC:  m.FeelsLike,
		Humidity:    m.Humidity,
		PressureHPa: m.Pressure,
		WindMps:     w.Speed,
	}

	if len(conds) > 0 {
		s.ConditionID = conds[0].ID
		s.Description = conds[0].Description
		s.Icon = conds[0].Icon
	}

	return s
}
