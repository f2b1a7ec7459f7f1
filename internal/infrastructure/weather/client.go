package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/internal/config"
	"github.com/fastygo/taskboard/usecase"
)

// StatusError reports a non-200 answer from the provider.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("weather provider returned status %d", e.StatusCode)
}

// Client talks to an OpenWeatherMap-compatible current weather endpoint.
type Client struct {
	http    *fasthttp.Client
	url     string
	apiKey  string
	timeout time.Duration
	now     func() time.Time
}

// NewClient builds a Client. A nil httpClient gets a default fasthttp.Client.
func NewClient(cfg config.WeatherConfig, httpClient *fasthttp.Client) *Client {
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:         "taskboard",
			ReadTimeout:  cfg.Timeout,
			WriteTimeout: cfg.Timeout,
		}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		http:    httpClient,
		url:     cfg.URL,
		apiKey:  cfg.APIKey,
		timeout: timeout,
		now:     time.Now,
	}
}

type response struct {
	Main *struct {
		Temp     *float64 `json:"temp"`
		Humidity *float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description *string `json:"description"`
	} `json:"weather"`
	Wind *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
}

// Fetch performs a single GET for location in metric units.
func (c *Client) Fetch(ctx context.Context, location string) (domain.WeatherInfo, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.url)
	req.Header.SetMethod(fasthttp.MethodGet)
	args := req.URI().QueryArgs()
	args.Set("q", location)
	args.Set("appid", c.apiKey)
	args.Set("units", "metric")

	if err := c.http.DoDeadline(req, resp, c.deadline(ctx)); err != nil {
		return domain.WeatherInfo{}, fmt.Errorf("weather request: %w", err)
	}

	if status := resp.StatusCode(); status != fasthttp.StatusOK {
		return domain.WeatherInfo{}, domain.WrapError(domain.ErrCodeUnavailable, "weather lookup failed", &StatusError{StatusCode: status})
	}

	return c.decode(resp.Body())
}

func (c *Client) deadline(ctx context.Context) time.Time {
	deadline := c.now().Add(c.timeout)
	if ctx != nil {
		if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
			deadline = d
		}
	}
	return deadline
}

func (c *Client) decode(body []byte) (domain.WeatherInfo, error) {
	var payload response
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.WeatherInfo{}, fmt.Errorf("decode weather response: %w", err)
	}

	switch {
	case payload.Main == nil || payload.Main.Temp == nil:
		return domain.WeatherInfo{}, errMissing("main.temp")
	case payload.Main.Humidity == nil:
		return domain.WeatherInfo{}, errMissing("main.humidity")
	case len(payload.Weather) == 0 || payload.Weather[0].Description == nil:
		return domain.WeatherInfo{}, errMissing("weather[0].description")
	case payload.Wind == nil || payload.Wind.Speed == nil:
		return domain.WeatherInfo{}, errMissing("wind.speed")
	}

	return domain.WeatherInfo{
		Temperature: *payload.Main.Temp,
		Description: *payload.Weather[0].Description,
		Humidity:    int(*payload.Main.Humidity),
		WindSpeed:   *payload.Wind.Speed,
		FetchedAt:   c.now().UTC(),
	}, nil
}

var errMissingField = errors.New("weather response missing field")

func errMissing(field string) error {
	return fmt.Errorf("%w: %s", errMissingField, field)
}

var _ usecase.WeatherProvider = (*Client)(nil)
