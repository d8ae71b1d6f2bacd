package weather

import (
	"context"

	"github.com/awaistahir/skycast/internal/forecast"
)

// kelvinOffset converts standard-unit temperatures to Celsius
const kelvinOffset = 273.15

// Current is a snapshot of the conditions at a location
type Current struct {
	forecast.Sample
	Name      string
	Country   string
	Latitude  float64
	Longitude float64
}

// condition is the shape of one entry of the provider's weather array
type condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// mainBlock is the provider's main measurements block
type mainBlock struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Pressure  int     `json:"pressure"`
	Humidity  int     `json:"humidity"`
}

type windBlock struct {
	Speed float64 `json:"speed"`
	Deg   int     `json:"deg"`
}

// currentResponse represents the /weather response
type currentResponse struct {
	Coord struct {
		Lon float64 `json:"lon"`
		Lat float64 `json:"lat"`
	} `json:"coord"`
	Weather []condition `json:"weather"`
	Main    mainBlock   `json:"main"`
	Wind    windBlock   `json:"wind"`
	Dt      int64       `json:"dt"`
	Sys     struct {
		Country string `json:"country"`
	} `json:"sys"`
	Name string `json:"name"`
}

// CurrentByCity fetches current conditions for a city name
func (c *Client) CurrentByCity(ctx context.Context, city string) (*Current, error) {
	return c.current(ctx, map[string]string{"q": city})
}

// CurrentByCoords fetches current conditions for a latitude/longitude
func (c *Client) CurrentByCoords(ctx context.Context, lat, lon float64) (*Current, error) {
	return c.current(ctx, coordParams(lat, lon))
}

// current requests standard units, so temperatures arrive in Kelvin
func (c *Client) current(ctx context.Context, params map[string]string) (*Current, error) {
	var resp currentResponse
	if err := c.get(ctx, "weather", "/weather", params, &resp); err != nil {
		return nil, err
	}

	sample := toSample(resp.Dt, resp.Main, resp.Wind, resp.Weather)
	sample.TempC -= kelvinOffset
	sample.FeelsLikeC -= kelvinOffset

	return &Current{
		Sample:    sample,
		Name:      resp.Name,
		Country:   resp.Sys.Country,
		Latitude:  resp.Coord.Lat,
		Longitude: resp.Coord.Lon,
	}, nil
}
