package maps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const directionsOK = `{
	"status": "OK",
	"routes": [{
		"legs": [{
			"distance": {"value": %d},
			"duration": {"text": "25 mins"},
			"start_address": "Av. Paulista, 1000 - Sao Paulo",
			"end_address": "Rua Augusta, 500 - Sao Paulo",
			"start_location": {"lat": -23.5614, "lng": -46.6559},
			"end_location": {"lat": -23.5505, "lng": -46.6489}
		}]
	}]
}`

func newTestClient(baseURL string, attempts int) *Client {
	return NewClient(baseURL, "test-key", attempts, time.Millisecond, zap.NewNop())
}

func TestCalculateRoute_Success(t *testing.T) {
	var gotQuery atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.Query())
		fmt.Fprintf(w, directionsOK, 9400)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3)
	route, err := client.CalculateRoute(context.Background(), "Av. Paulista, 1000", "Rua Augusta, 500")
	require.NoError(t, err)

	// Distance in meters rounds up to whole kilometers.
	assert.Equal(t, 10, route.DistanceKm)
	assert.Equal(t, "25 mins", route.Duration)
	assert.Equal(t, "Av. Paulista, 1000 - Sao Paulo", route.Origin.Address)
	assert.Equal(t, -23.5614, route.Origin.Lat)
	assert.Equal(t, -46.6489, route.Destination.Lng)

	query := gotQuery.Load().(url.Values)
	assert.Equal(t, "Av. Paulista, 1000", query.Get("origin"))
	assert.Equal(t, "Rua Augusta, 500", query.Get("destination"))
	assert.Equal(t, "driving", query.Get("mode"))
	assert.Equal(t, "test-key", query.Get("key"))
}

func TestCalculateRoute_ExactKilometerIsNotRoundedUp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, directionsOK, 10000)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 1)
	route, err := client.CalculateRoute(context.Background(), "A", "B")
	require.NoError(t, err)
	assert.Equal(t, 10, route.DistanceKm)
}

func TestCalculateRoute_RequestDeniedNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, `{"status": "REQUEST_DENIED", "error_message": "The provided API key is invalid."}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3)
	_, err := client.CalculateRoute(context.Background(), "A", "B")
	require.Error(t, err)

	var provErr *Error
	require.ErrorAs(t, err, &provErr)
	assert.True(t, provErr.NotRetryable)
	assert.Contains(t, provErr.Message, "The provided API key is invalid.")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "denied requests must not be retried")
}

func TestCalculateRoute_ZeroResultsNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, `{"status": "ZERO_RESULTS"}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3)
	_, err := client.CalculateRoute(context.Background(), "A", "B")
	require.Error(t, err)

	var provErr *Error
	require.ErrorAs(t, err, &provErr)
	assert.True(t, provErr.NotRetryable)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCalculateRoute_TransientFailureRetriedThenFails(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, `{"status": "UNKNOWN_ERROR"}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3)
	_, err := client.CalculateRoute(context.Background(), "A", "B")
	require.Error(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls), "transient failures are retried up to the attempt budget")
}

func TestCalculateRoute_TransientFailureThenSuccess(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			fmt.Fprint(w, `{"status": "UNKNOWN_ERROR"}`)
			return
		}
		fmt.Fprintf(w, directionsOK, 5200)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3)
	route, err := client.CalculateRoute(context.Background(), "A", "B")
	require.NoError(t, err)
	assert.Equal(t, 6, route.DistanceKm)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestCalculateRoute_EmptyRoutesNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, `{"status": "OK", "routes": []}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3)
	_, err := client.CalculateRoute(context.Background(), "A", "B")
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCalculateRoute_ContextCancelledDuringBackoff(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": "UNKNOWN_ERROR"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 3, time.Minute, zap.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := client.CalculateRoute(ctx, "A", "B")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second, "cancellation must interrupt the backoff sleep")
}
