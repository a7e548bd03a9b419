// Package client is a typed HTTP client for the WanderQuest API together
// with the session state a front end keeps between runs.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"wanderquest/pkg/utils"
	"wanderquest/pkg/validation"
)

// TokenProvider supplies the bearer token at the moment a request is sent.
type TokenProvider interface {
	Token() string
}

type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// APIError is a non-2xx response. Message is the server's error text.
type APIError struct {
	StatusCode int
	Message    string
	Fields     []utils.FieldError
	TraceID    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenProvider
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New builds a client for baseURL, e.g. "http://localhost:5000/api".
// tokens may be nil for unauthenticated use.
func New(baseURL string, tokens TokenProvider, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Register(ctx context.Context, email, password string) (string, error) {
	if verr := validation.Credentials(email, password, true); verr != nil {
		return "", verr
	}
	var out struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/auth/register", nil, map[string]string{"email": email, "password": password}, &out)
	return out.Token, err
}

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	if verr := validation.Credentials(email, password, false); verr != nil {
		return "", verr
	}
	var out struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, map[string]string{"email": email, "password": password}, &out)
	return out.Token, err
}

func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var out Profile
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePreferences(ctx context.Context, prefs map[string]interface{}) (*Profile, error) {
	var out Profile
	if err := c.do(ctx, http.MethodPut, "/auth/profile", nil, map[string]interface{}{"preferences": prefs}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	if !validation.ValidPassword(next) {
		return utils.NewValidationError("newPassword", validation.PasswordRequirements)
	}
	body := map[string]string{"currentPassword": current, "newPassword": next}
	return c.do(ctx, http.MethodPut, "/auth/password", nil, body, nil)
}

func (c *Client) ListItineraries(ctx context.Context, opts ListOptions) ([]Itinerary, error) {
	q := url.Values{}
	if opts.Sort != "" {
		q.Set("sort", opts.Sort)
	}
	if opts.Order != "" {
		q.Set("order", opts.Order)
	}
	var out []Itinerary
	err := c.do(ctx, http.MethodGet, "/itineraries", q, nil, &out)
	return out, err
}

func (c *Client) SearchItineraries(ctx context.Context, query string) ([]Itinerary, error) {
	var out []Itinerary
	err := c.do(ctx, http.MethodGet, "/itineraries/search", url.Values{"q": {query}}, nil, &out)
	return out, err
}

func (c *Client) UpcomingItineraries(ctx context.Context) ([]Itinerary, error) {
	var out []Itinerary
	err := c.do(ctx, http.MethodGet, "/itineraries/upcoming", nil, nil, &out)
	return out, err
}

func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var out Stats
	if err := c.do(ctx, http.MethodGet, "/itineraries/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetItinerary(ctx context.Context, id string) (*Itinerary, error) {
	var out Itinerary
	if err := c.do(ctx, http.MethodGet, "/itineraries/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateItinerary checks the draft locally, including end date on or after
// start date, before sending it.
func (c *Client) CreateItinerary(ctx context.Context, in ItineraryInput) (*Itinerary, error) {
	if verr := checkInput(in); verr != nil {
		return nil, verr
	}
	var out Itinerary
	if err := c.do(ctx, http.MethodPost, "/itineraries", nil, withActivities(in), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateItinerary(ctx context.Context, id string, in ItineraryInput) (*Itinerary, error) {
	if verr := checkInput(in); verr != nil {
		return nil, verr
	}
	var out Itinerary
	if err := c.do(ctx, http.MethodPut, "/itineraries/"+url.PathEscape(id), nil, withActivities(in), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteItinerary(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/itineraries/"+url.PathEscape(id), nil, nil, nil)
}

// Weather returns the raw forecast payload.
func (c *Client) Weather(ctx context.Context, location string) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.do(ctx, http.MethodGet, "/weather", url.Values{"location": {location}}, nil, &out)
	return out, err
}

// Places returns the raw text search payload.
func (c *Client) Places(ctx context.Context, location, preferences string) (json.RawMessage, error) {
	var out json.RawMessage
	q := url.Values{"location": {location}}
	if preferences != "" {
		q.Set("preferences", preferences)
	}
	err := c.do(ctx, http.MethodGet, "/places", q, nil, &out)
	return out, err
}

func checkInput(in ItineraryInput) *utils.ValidationError {
	return validation.CheckDraft(validation.Draft{
		Title:     in.Title,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Budget:    in.Budget,
		Location:  in.Location,
	})
}

func withActivities(in ItineraryInput) ItineraryInput {
	if in.Activities == nil {
		in.Activities = []Activity{}
	}
	return in
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode/100 != 2 {
		return decodeError(resp.StatusCode, raw)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(status int, raw []byte) error {
	var body utils.APIError
	apiErr := &APIError{StatusCode: status}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
		apiErr.Fields = body.Errors
		apiErr.TraceID = body.TraceID
	} else {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}
