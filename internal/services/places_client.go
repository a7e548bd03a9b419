package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"wanderquest/internal/config"
	"wanderquest/internal/metrics"
	"wanderquest/internal/models/response_models"
	"wanderquest/pkg/utils"
)

const placesProvider = "google_places"

type PlacesProvider interface {
	// Search, Nearby, Category and Details return the provider payload unchanged.
	Search(ctx context.Context, location, preferences string) ([]byte, error)
	Nearby(ctx context.Context, location, placeType string, radius int) ([]byte, error)
	Category(ctx context.Context, location, category string) ([]byte, error)
	Details(ctx context.Context, placeID string) ([]byte, error)
	Photo(ctx context.Context, reference string) (*PlacePhotoData, error)
	// FindPlaces runs a text search for query in location and keeps at most
	// limit results, each with at most one photo.
	FindPlaces(ctx context.Context, location, query string, limit int) ([]response_models.PlaceSummary, error)
}

type PlacePhotoData struct {
	ContentType string
	Body        []byte
}

type GooglePlacesClient struct {
	HTTP           *http.Client
	BaseURL        string
	APIKey         string
	PhotoMaxWidth  int
	PhotoURLPrefix string
	PlaceholderURL string
}

func NewGooglePlacesClient(cfg config.PlacesConfig) *GooglePlacesClient {
	return &GooglePlacesClient{
		HTTP:           &http.Client{Timeout: cfg.Timeout},
		BaseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		APIKey:         cfg.APIKey,
		PhotoMaxWidth:  cfg.PhotoMaxWidth,
		PhotoURLPrefix: cfg.PhotoURLPrefix,
		PlaceholderURL: cfg.PlaceholderURL,
	}
}

// envelope is the status part every Places JSON response carries.
type envelope struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}

type textSearchPayload struct {
	envelope
	Results []struct {
		Name             string  `json:"name"`
		FormattedAddress string  `json:"formatted_address"`
		Rating           float64 `json:"rating"`
		Photos           []struct {
			PhotoReference string `json:"photo_reference"`
		} `json:"photos"`
	} `json:"results"`
}

func (c *GooglePlacesClient) Search(ctx context.Context, location, preferences string) ([]byte, error) {
	q := url.Values{}
	q.Set("query", searchQuery(preferences, location))
	return c.getJSON(ctx, "textsearch", q)
}

func (c *GooglePlacesClient) Nearby(ctx context.Context, location, placeType string, radius int) ([]byte, error) {
	q := url.Values{}
	q.Set("location", location)
	if placeType != "" {
		q.Set("type", placeType)
	}
	if radius > 0 {
		q.Set("radius", strconv.Itoa(radius))
	}
	return c.getJSON(ctx, "nearbysearch", q)
}

func (c *GooglePlacesClient) Category(ctx context.Context, location, category string) ([]byte, error) {
	q := url.Values{}
	q.Set("query", category)
	q.Set("location", location)
	q.Set("type", category)
	return c.getJSON(ctx, "textsearch", q)
}

func (c *GooglePlacesClient) Details(ctx context.Context, placeID string) ([]byte, error) {
	q := url.Values{}
	q.Set("place_id", placeID)
	return c.getJSON(ctx, "details", q)
}

func (c *GooglePlacesClient) Photo(ctx context.Context, reference string) (*PlacePhotoData, error) {
	q := url.Values{}
	q.Set("photoreference", reference)
	q.Set("maxwidth", strconv.Itoa(c.PhotoMaxWidth))

	start := time.Now()
	resp, err := c.do(ctx, "photo", q)
	if err == nil {
		defer resp.Body.Close()
		err = checkStatus(resp)
	}
	var body []byte
	if err == nil {
		body, err = io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
		if err != nil {
			err = fmt.Errorf("%w: places photo read: %v", utils.ErrUpstream, err)
		}
	}
	metrics.RecordUpstreamCall(placesProvider, "photo", time.Since(start), err)
	if err != nil {
		return nil, err
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		contentType = "image/jpeg"
	}
	return &PlacePhotoData{ContentType: contentType, Body: body}, nil
}

func (c *GooglePlacesClient) FindPlaces(ctx context.Context, location, query string, limit int) ([]response_models.PlaceSummary, error) {
	body, err := c.Search(ctx, location, query)
	if err != nil {
		return nil, err
	}

	var payload textSearchPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: places decode: %v", utils.ErrUpstream, err)
	}

	n := len(payload.Results)
	if limit >= 0 && n > limit {
		n = limit
	}
	places := make([]response_models.PlaceSummary, 0, n)
	for _, r := range payload.Results[:n] {
		photos := make([]response_models.PlacePhoto, 0, 1)
		// URL is the authenticated photo proxy; FallbackURL needs no token.
		if len(r.Photos) > 0 && r.Photos[0].PhotoReference != "" {
			photos = append(photos, response_models.PlacePhoto{
				URL:         c.PhotoURLPrefix + url.PathEscape(r.Photos[0].PhotoReference),
				FallbackURL: c.placeholder(r.Name),
			})
		}
		places = append(places, response_models.PlaceSummary{
			Name:             r.Name,
			FormattedAddress: r.FormattedAddress,
			Rating:           r.Rating,
			Photos:           photos,
		})
	}
	return places, nil
}

func (c *GooglePlacesClient) placeholder(name string) string {
	return c.PlaceholderURL + "?text=" + url.QueryEscape(name)
}

// getJSON calls a JSON endpoint and rejects any payload whose status is not
// OK or ZERO_RESULTS.
func (c *GooglePlacesClient) getJSON(ctx context.Context, endpoint string, q url.Values) ([]byte, error) {
	start := time.Now()
	body, err := c.readJSON(ctx, endpoint, q)
	metrics.RecordUpstreamCall(placesProvider, endpoint, time.Since(start), err)
	return body, err
}

func (c *GooglePlacesClient) readJSON(ctx context.Context, endpoint string, q url.Values) ([]byte, error) {
	resp, err := c.do(ctx, endpoint+"/json", q)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
	if err != nil {
		return nil, fmt.Errorf("%w: places read: %v", utils.ErrUpstream, err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: places decode: %v", utils.ErrUpstream, err)
	}
	switch env.Status {
	case "OK", "ZERO_RESULTS":
		return body, nil
	case "NOT_FOUND":
		return nil, fmt.Errorf("%w: places %s", utils.ErrLocationNotFound, endpoint)
	default:
		return nil, fmt.Errorf("%w: places status %s: %s", utils.ErrUpstream, env.Status, env.ErrorMessage)
	}
}

func (c *GooglePlacesClient) do(ctx context.Context, path string, q url.Values) (*http.Response, error) {
	q.Set("key", c.APIKey)
	u := c.BaseURL + "/" + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: places request: %v", utils.ErrUpstream, err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: places http error: %v", utils.ErrUpstream, err)
	}
	return resp, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("%w: places bad status: %s", utils.ErrUpstream, resp.Status)
	}
	return nil
}

func searchQuery(query, location string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return location
	}
	return query + " in " + location
}
