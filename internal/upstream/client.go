package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public City/Weather API.
const DefaultBaseURL = "https://api-ugi2pflmha-ew.a.run.app"

const defaultTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when the upstream answers 404 for a city.
	ErrNotFound = errors.New("upstream: not found")

	// ErrMalformed is returned when an upstream payload decodes but does not
	// have the expected shape.
	ErrMalformed = errors.New("upstream: malformed payload")
)

// Call outcomes reported to a Recorder.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Recorder observes every upstream call.
type Recorder interface {
	UpstreamCall(endpoint, outcome string, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) UpstreamCall(string, string, time.Duration) {}

// Client talks to the City Directory and Weather Forecast endpoints.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	rec     Recorder
}

// NewClient constructs a Client. A zero timeout falls back to 10 seconds and
// a nil Recorder disables call observation.
func NewClient(baseURL, apiKey string, timeout time.Duration, rec Recorder) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		rec:     rec,
	}
}

func (c *Client) newRequest(ctx context.Context, rawURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", rawURL, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	return req, nil
}

// doGet performs a GET request and decodes the JSON response into dst.
func (c *Client) doGet(ctx context.Context, endpoint, rawURL string, dst any) (err error) {
	start := time.Now()
	defer func() {
		outcome := OutcomeOK
		switch {
		case errors.Is(err, ErrNotFound):
			outcome = OutcomeNotFound
		case err != nil:
			outcome = OutcomeError
		}
		c.rec.UpstreamCall(endpoint, outcome, time.Since(start))
	}()

	req, err := c.newRequest(ctx, rawURL)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("GET %s: %w", rawURL, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s returned status %d", rawURL, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding response from %s: %w", rawURL, err)
	}

	return nil
}

// cityPayload and forecastPayload mirror the wire format. Pointer fields
// distinguish a missing value from a zero one.
type cityPayload struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	Population int      `json:"population"`
	KnownFor   []string `json:"knownFor"`
}

type predictionPayload struct {
	When string   `json:"when"`
	Min  *float64 `json:"min"`
	Max  *float64 `json:"max"`
}

type forecastPayload struct {
	CityID      string              `json:"cityId"`
	Predictions []predictionPayload `json:"predictions"`
}

// GetCity looks up a city by id. It returns an error wrapping ErrNotFound
// when the directory does not know the city, and ErrMalformed when the
// record lacks an id or coordinates.
func (c *Client) GetCity(ctx context.Context, cityID string) (*City, error) {
	endpoint := c.baseURL + "/cities/" + url.PathEscape(cityID)

	var raw *cityPayload
	if err := c.doGet(ctx, "city", endpoint, &raw); err != nil {
		return nil, fmt.Errorf("city lookup for %s: %w", cityID, err)
	}
	city, err := raw.toCity()
	if err != nil {
		return nil, fmt.Errorf("city lookup for %s: %w", cityID, err)
	}

	return city, nil
}

func (p *cityPayload) toCity() (*City, error) {
	switch {
	case p == nil:
		return nil, fmt.Errorf("%w: empty city record", ErrMalformed)
	case p.ID == "":
		return nil, fmt.Errorf("%w: city record has no id", ErrMalformed)
	case p.Latitude == nil || p.Longitude == nil:
		return nil, fmt.Errorf("%w: city %s has no coordinates", ErrMalformed, p.ID)
	}

	knownFor := p.KnownFor
	if knownFor == nil {
		knownFor = []string{}
	}

	return &City{
		ID:         p.ID,
		Name:       p.Name,
		Latitude:   *p.Latitude,
		Longitude:  *p.Longitude,
		Population: p.Population,
		KnownFor:   knownFor,
	}, nil
}

// GetForecast fetches the two-day forecast for a city.
func (c *Client) GetForecast(ctx context.Context, cityID string) (*Forecast, error) {
	endpoint := c.baseURL + "/weather/" + url.PathEscape(cityID)

	var raw *forecastPayload
	if err := c.doGet(ctx, "weather", endpoint, &raw); err != nil {
		return nil, fmt.Errorf("weather lookup for %s: %w", cityID, err)
	}
	forecast, err := raw.toForecast()
	if err != nil {
		return nil, fmt.Errorf("weather lookup for %s: %w", cityID, err)
	}

	return forecast, nil
}

var forecastLabels = [...]string{"today", "tomorrow"}

func (p *forecastPayload) toForecast() (*Forecast, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: empty forecast", ErrMalformed)
	}
	if len(p.Predictions) != len(forecastLabels) {
		return nil, fmt.Errorf("%w: want %d predictions, got %d", ErrMalformed, len(forecastLabels), len(p.Predictions))
	}

	out := &Forecast{CityID: p.CityID, Predictions: make([]Prediction, 0, len(p.Predictions))}
	for i, pred := range p.Predictions {
		if pred.When != forecastLabels[i] {
			return nil, fmt.Errorf("%w: prediction %d is %q, want %q", ErrMalformed, i, pred.When, forecastLabels[i])
		}
		if pred.Min == nil || pred.Max == nil {
			return nil, fmt.Errorf("%w: prediction %q has no min or max", ErrMalformed, pred.When)
		}
		out.Predictions = append(out.Predictions, Prediction{When: pred.When, Min: *pred.Min, Max: *pred.Max})
	}
	return out, nil
}

// Ping reports whether the upstream API answers at all. Any response below
// 500 counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, c.baseURL+"/")
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("pinging upstream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("pinging upstream: status %d", resp.StatusCode)
	}
	return nil
}
