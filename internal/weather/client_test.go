package weather

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

const currentJSON = `{
	"coord": {"lon": 2.35, "lat": 48.85},
	"weather": [{"id": 500, "main": "Rain", "description": "light rain", "icon": "10d"}],
	"main": {"temp": 288.15, "feels_like": 287.15, "pressure": 1012, "humidity": 81},
	"wind": {"speed": 5.0, "deg": 200},
	"dt": 1733054400,
	"sys": {"country": "FR"},
	"name": "Paris"
}`

const forecastJSON = `{
	"cnt": 2,
	"list": [
		{"dt": 1733054400, "main": {"temp": 11.2, "feels_like": 10.1, "pressure": 1012, "humidity": 80},
		 "weather": [{"id": 800, "description": "clear sky", "icon": "01d"}], "wind": {"speed": 3.1}},
		{"dt": 1733065200, "main": {"temp": 9.8, "feels_like": 8.0, "pressure": 1013, "humidity": 85},
		 "weather": [], "wind": {"speed": 2.0}}
	],
	"city": {"name": "Paris", "country": "FR"}
}`

// recorder captures the requests seen by a test server
type recorder struct {
	mu      sync.Mutex
	queries []url.Values
	paths   []string
}

func (r *recorder) record(req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, req.URL.Path)
	r.queries = append(r.queries, req.URL.Query())
}

func newTestServer(t *testing.T, rec *recorder, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCurrentByCity(t *testing.T) {
	rec := &recorder{}
	srv := newTestServer(t, rec, http.StatusOK, currentJSON)
	client := NewClient(Config{APIKey: "secret", BaseURL: srv.URL}, nil)

	cur, err := client.CurrentByCity(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.paths[0] != "/weather" {
		t.Errorf("path = %s, want /weather", rec.paths[0])
	}
	q := rec.queries[0]
	if q.Get("q") != "Paris" || q.Get("appid") != "secret" {
		t.Errorf("query = %v", q)
	}
	if q.Has("units") {
		t.Errorf("current weather request must not set units, got %q", q.Get("units"))
	}

	if cur.Name != "Paris" || cur.Country != "FR" {
		t.Errorf("location = %s, %s", cur.Name, cur.Country)
	}
	if math.Abs(cur.TempC-15.0) > 1e-9 {
		t.Errorf("TempC = %v, want 15", cur.TempC)
	}
	if math.Abs(cur.FeelsLikeC-14.0) > 1e-9 {
		t.Errorf("FeelsLikeC = %v, want 14", cur.FeelsLikeC)
	}
	if cur.Humidity != 81 || cur.PressureHPa != 1012 || cur.WindMps != 5.0 {
		t.Errorf("measurements = %+v", cur.Sample)
	}
	if cur.Description != "light rain" || cur.Icon != "10d" || cur.ConditionID != 500 {
		t.Errorf("condition = %q %q %d", cur.Description, cur.Icon, cur.ConditionID)
	}
	if cur.Time.Unix() != 1733054400 {
		t.Errorf("Time = %v", cur.Time)
	}
}

func TestCurrentByCoords(t *testing.T) {
	rec := &recorder{}
	srv := newTestServer(t, rec, http.StatusOK, currentJSON)
	client := NewClient(Config{APIKey: "secret", BaseURL: srv.URL}, nil)

	if _, err := client.CurrentByCoords(context.Background(), 48.85, 2.35); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q := rec.queries[0]
	if q.Get("lat") != "48.85" || q.Get("lon") != "2.35" {
		t.Errorf("query = %v", q)
	}
}

func TestForecast(t *testing.T) {
	tests := []struct {
		name  string
		fetch func(*Client) (*Forecast, error)
		want  url.Values
	}{
		{
			name: "by city",
			fetch: func(c *Client) (*Forecast, error) {
				return c.ForecastByCity(context.Background(), "São Paulo")
			},
			want: url.Values{"q": {"São Paulo"}, "units": {"metric"}, "appid": {"secret"}},
		},
		{
			name: "by coordinates",
			fetch: func(c *Client) (*Forecast, error) {
				return c.ForecastByCoords(context.Background(), -23.55, -46.63)
			},
			want: url.Values{"lat": {"-23.55"}, "lon": {"-46.63"}, "units": {"metric"}, "appid": {"secret"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			srv := newTestServer(t, rec, http.StatusOK, forecastJSON)
			client := NewClient(Config{APIKey: "secret", BaseURL: srv.URL}, nil)

			fc, err := tt.fetch(client)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if rec.paths[0] != "/forecast" {
				t.Errorf("path = %s, want /forecast", rec.paths[0])
			}
			for k := range tt.want {
				if rec.queries[0].Get(k) != tt.want.Get(k) {
					t.Errorf("query %s = %q, want %q", k, rec.queries[0].Get(k), tt.want.Get(k))
				}
			}

			if len(fc.Samples) != 2 {
				t.Fatalf("got %d samples, want 2", len(fc.Samples))
			}
			if fc.Samples[0].TempC != 11.2 || fc.Samples[0].Icon != "01d" {
				t.Errorf("sample 0 = %+v", fc.Samples[0])
			}
			// missing condition array leaves the fields empty
			if fc.Samples[1].Description != "" || fc.Samples[1].Icon != "" {
				t.Errorf("sample 1 = %+v", fc.Samples[1])
			}
			if fc.City != "Paris" || fc.Country != "FR" {
				t.Errorf("city = %s, %s", fc.City, fc.Country)
			}
		})
	}
}

func TestFetchError(t *testing.T) {
	rec := &recorder{}
	srv := newTestServer(t, rec, http.StatusNotFound, `{"cod":"404","message":"city not found"}`)
	client := NewClient(Config{APIKey: "secret", BaseURL: srv.URL}, nil)

	_, err := client.ForecastByCity(context.Background(), "Atlantis")

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FetchError, got %T: %v", err, err)
	}
	if fe.StatusCode != http.StatusNotFound || fe.Status != "Not Found" {
		t.Errorf("FetchError = %+v", fe)
	}
	if fe.Error() != "unable to fetch forecast data: Not Found" {
		t.Errorf("message = %q", fe.Error())
	}
}

func TestDecodeError(t *testing.T) {
	rec := &recorder{}
	srv := newTestServer(t, rec, http.StatusOK, `{"main": {"temp": "warm"}}`)
	client := NewClient(Config{APIKey: "secret", BaseURL: srv.URL}, nil)

	_, err := client.CurrentByCity(context.Background(), "Paris")

	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected DecodeError, got %T: %v", err, err)
	}
	if de.Op != "weather" {
		t.Errorf("Op = %q", de.Op)
	}
}

func TestIconURL(t *testing.T) {
	client := NewClient(Config{}, nil)
	if got := client.IconURL("10d"); got != "https://openweathermap.org/img/wn/10d@2x.png" {
		t.Errorf("IconURL = %q", got)
	}
}

func TestRateLimitHonorsContext(t *testing.T) {
	rec := &recorder{}
	srv := newTestServer(t, rec, http.StatusOK, currentJSON)
	client := NewClient(Config{BaseURL: srv.URL, RateLimit: 0.001, RateBurst: 1}, nil)

	if _, err := client.CurrentByCity(context.Background(), "Paris"); err != nil {
		t.Fatalf("first request: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.CurrentByCity(ctx, "Paris"); err == nil {
		t.Fatal("expected rate limit wait to fail on canceled context")
	}
	if len(rec.paths) != 1 {
		t.Errorf("server saw %d requests, want 1", len(rec.paths))
	}
}
