package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"
	DefaultIconURL = "https://openweathermap.org/img/wn/%s@2x.png"
)

// Config holds the settings of a weather Client
type Config struct {
	APIKey  string
	BaseURL string
	IconURL string        // fmt template with one %s for the icon code
	Timeout time.Duration // 0 leaves the transport default
	// RateLimit is the number of requests per second; 0 disables limiting
	RateLimit float64
	RateBurst int
}

// Client fetches current conditions and forecasts from OpenWeatherMap
type Client struct {
	http    *resty.Client
	apiKey  string
	iconURL string
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewClient creates a new OpenWeatherMap client
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.IconURL == "" {
		cfg.IconURL = DefaultIconURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.Timeout)

	httpClient.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		logger.Debug("weather api response",
			zap.String("path", resp.Request.RawRequest.URL.Path),
			zap.Int("status", resp.StatusCode()),
			zap.Duration("took", resp.Time()),
			zap.Int("bytes", len(resp.Body())))
		return nil
	})

	c := &Client{
		http:    httpClient,
		apiKey:  cfg.APIKey,
		iconURL: cfg.IconURL,
		logger:  logger,
	}

	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return c
}

// IconURL maps a provider icon code to the image URL
func (c *Client) IconURL(code string) string {
	return fmt.Sprintf(c.iconURL, code)
}

// get issues one GET against the provider and decodes the JSON body into out
func (c *Client) get(ctx context.Context, op, path string, params map[string]string, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%s: rate limit wait canceled: %w", op, err)
		}
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetQueryParam("appid", c.apiKey).
		Get(path)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if !resp.IsSuccess() {
		return &FetchError{
			Op:         op,
			StatusCode: resp.StatusCode(),
			Status:     statusText(resp.Status(), resp.StatusCode()),
		}
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return &DecodeError{Op: op, Err: err}
	}

	return nil
}

// statusText strips the numeric code from a status line ("404 Not Found")
func statusText(status string, code int) string {
	text := strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(code)))
	if text == "" {
		return strconv.Itoa(code)
	}
	return text
}

func coordParams(lat, lon float64) map[string]string {
	return map[string]string{
		"lat": strconv.FormatFloat(lat, 'f', -1, 64),
		"lon": strconv.FormatFloat(lon, 'f', -1, 64),
	}
}
