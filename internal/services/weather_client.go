package services

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"wanderquest/internal/config"
	"wanderquest/internal/metrics"
	"wanderquest/internal/models/response_models"
	"wanderquest/pkg/utils"
)

const (
	weatherProvider = "openweathermap"
	maxUpstreamBody = 8 << 20
)

type WeatherProvider interface {
	// Forecast returns the provider's 5 day / 3 hour payload unchanged.
	Forecast(ctx context.Context, location string) ([]byte, error)
	// DailyForecast reduces the series to one entry per local day.
	DailyForecast(ctx context.Context, location string, days int) ([]response_models.ForecastDay, error)
}

type OpenWeatherClient struct {
	HTTP    *http.Client
	BaseURL string
	APIKey  string
	Units   string
}

func NewOpenWeatherClient(cfg config.WeatherConfig) *OpenWeatherClient {
	return &OpenWeatherClient{
		HTTP:    &http.Client{Timeout: cfg.Timeout},
		BaseURL: strings.TrimRight(cfg.BaseURL, "/"),
		APIKey:  cfg.APIKey,
		Units:   cfg.Units,
	}
}

type forecastPayload struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
	} `json:"list"`
	City struct {
		Timezone int `json:"timezone"`
	} `json:"city"`
}

func (c *OpenWeatherClient) Forecast(ctx context.Context, location string) ([]byte, error) {
	start := time.Now()
	body, err := c.fetch(ctx, location)
	metrics.RecordUpstreamCall(weatherProvider, "forecast", time.Since(start), err)
	return body, err
}

func (c *OpenWeatherClient) DailyForecast(ctx context.Context, location string, days int) ([]response_models.ForecastDay, error) {
	body, err := c.Forecast(ctx, location)
	if err != nil {
		return nil, err
	}

	var payload forecastPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: openweather decode: %v", utils.ErrUpstream, err)
	}
	return pickDailySlots(payload, days), nil
}

func (c *OpenWeatherClient) fetch(ctx context.Context, location string) ([]byte, error) {
	u, err := url.Parse(c.BaseURL + "/forecast")
	if err != nil {
		return nil, fmt.Errorf("%w: openweather url: %v", utils.ErrUpstream, err)
	}
	q := url.Values{}
	q.Set("q", location)
	q.Set("appid", c.APIKey)
	q.Set("units", c.Units)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: openweather request: %v", utils.ErrUpstream, err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: openweather http error: %v", utils.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %q", utils.ErrLocationNotFound, location)
	}
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("%w: openweather bad status: %s", utils.ErrUpstream, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
	if err != nil {
		return nil, fmt.Errorf("%w: openweather read: %v", utils.ErrUpstream, err)
	}
	return body, nil
}

// pickDailySlots keeps, for each calendar day in the city's timezone, the
// slot closest to local noon. Days keep the order of the series.
func pickDailySlots(p forecastPayload, days int) []response_models.ForecastDay {
	zone := time.FixedZone("city", p.City.Timezone)

	type best struct {
		day  response_models.ForecastDay
		dist float64
	}
	var order []string
	picked := map[string]*best{}

	for _, slot := range p.List {
		local := time.Unix(slot.Dt, 0).In(zone)
		key := local.Format(utils.DateLayout)
		noon := time.Date(local.Year(), local.Month(), local.Day(), 12, 0, 0, 0, zone)
		dist := math.Abs(local.Sub(noon).Minutes())

		fd := response_models.ForecastDay{
			Date:        key,
			Temperature: slot.Main.Temp,
		}
		if len(slot.Weather) > 0 {
			fd.Description = slot.Weather[0].Description
			fd.Icon = slot.Weather[0].Icon
		}

		cur, ok := picked[key]
		if !ok {
			if days > 0 && len(order) == days {
				break
			}
			order = append(order, key)
			picked[key] = &best{day: fd, dist: dist}
			continue
		}
		if dist < cur.dist {
			cur.day, cur.dist = fd, dist
		}
	}

	out := make([]response_models.ForecastDay, 0, len(order))
	for _, key := range order {
		out = append(out, picked[key].day)
	}
	return out
}
