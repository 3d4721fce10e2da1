package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/Lucasteisouza/shopper-ride/internal/domain"
	"github.com/Lucasteisouza/shopper-ride/internal/observability"
)

// Error is a terminal routing-provider failure. NotRetryable marks
// rejections of the request itself (bad API key, unroutable addresses),
// where retrying cannot help.
type Error struct {
	Message      string
	NotRetryable bool
}

func (e *Error) Error() string { return e.Message }

// Client performs route lookups against the Google Directions HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	attempts   int
	backoff    time.Duration
	logger     *zap.Logger
}

// NewClient creates a Directions client. attempts is the total number of
// tries for transient failures; backoff is the fixed delay between them.
func NewClient(baseURL, apiKey string, attempts int, backoff time.Duration, logger *zap.Logger) *Client {
	if attempts < 1 {
		attempts = 1
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		attempts:   attempts,
		backoff:    backoff,
		logger:     logger,
	}
}

// directionsResponse is the subset of the Directions payload we consume.
type directionsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		Legs []struct {
			Distance struct {
				Value int `json:"value"` // meters
			} `json:"distance"`
			Duration struct {
				Text string `json:"text"`
			} `json:"duration"`
			StartAddress  string `json:"start_address"`
			EndAddress    string `json:"end_address"`
			StartLocation struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"start_location"`
			EndLocation struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"end_location"`
		} `json:"legs"`
	} `json:"routes"`
}

// CalculateRoute resolves distance, duration and coordinates for an address
// pair. Transient failures are retried a fixed number of times with a fixed
// delay; configuration errors from the provider surface immediately.
func (c *Client) CalculateRoute(ctx context.Context, origin, destination string) (*domain.Route, error) {
	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		route, err := c.calculateOnce(ctx, origin, destination)
		if err == nil {
			return route, nil
		}

		var provErr *Error
		if ok := asProviderError(err, &provErr); ok && provErr.NotRetryable {
			return nil, err
		}

		lastErr = err
		if attempt < c.attempts {
			c.logger.Warn("route lookup failed, retrying",
				zap.Int("attempt", attempt),
				zap.Int("remaining", c.attempts-attempt),
				zap.Error(err),
			)
			select {
			case <-time.After(c.backoff):
			case <-ctx.Done():
				return nil, &Error{Message: "route lookup cancelled: " + ctx.Err().Error()}
			}
		}
	}
	return nil, &Error{Message: "failed to calculate route: " + lastErr.Error()}
}

func (c *Client) calculateOnce(ctx context.Context, origin, destination string) (*domain.Route, error) {
	start := time.Now()
	route, err := c.doRequest(ctx, origin, destination)
	observability.ProviderLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		observability.ProviderRequestsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	observability.ProviderRequestsTotal.WithLabelValues("ok").Inc()
	return route, nil
}

func (c *Client) doRequest(ctx context.Context, origin, destination string) (*domain.Route, error) {
	query := url.Values{}
	query.Set("origin", origin)
	query.Set("destination", destination)
	query.Set("mode", "driving")
	query.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/maps/api/directions/json?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode directions response: %w", err)
	}

	switch out.Status {
	case "OK":
	case "REQUEST_DENIED":
		msg := out.ErrorMessage
		if msg == "" {
			msg = "unknown error"
		}
		return nil, &Error{
			Message:      "the routing API key is not properly configured or the Directions API is not enabled: " + msg,
			NotRetryable: true,
		}
	case "ZERO_RESULTS":
		return nil, &Error{Message: "no route found between the specified locations", NotRetryable: true}
	default:
		if out.ErrorMessage != "" {
			return nil, fmt.Errorf("directions status %s: %s", out.Status, out.ErrorMessage)
		}
		return nil, fmt.Errorf("directions status %s", out.Status)
	}

	if len(out.Routes) == 0 {
		return nil, &Error{Message: "no route found between the specified locations", NotRetryable: true}
	}
	legs := out.Routes[0].Legs
	if len(legs) == 0 {
		return nil, &Error{Message: "invalid route data received", NotRetryable: true}
	}
	leg := legs[0]

	return &domain.Route{
		DistanceKm: int(math.Ceil(float64(leg.Distance.Value) / 1000)),
		Duration:   leg.Duration.Text,
		Origin: domain.Waypoint{
			Address: leg.StartAddress,
			Lat:     leg.StartLocation.Lat,
			Lng:     leg.StartLocation.Lng,
		},
		Destination: domain.Waypoint{
			Address: leg.EndAddress,
			Lat:     leg.EndLocation.Lat,
			Lng:     leg.EndLocation.Lng,
		},
	}, nil
}

// asProviderError is a thin errors.As wrapper kept separate so the retry
// loop reads linearly.
func asProviderError(err error, target **Error) bool {
	e, ok := err.(*Error)
	if !ok {
		return false
	}
	*target = e
	return true
}
