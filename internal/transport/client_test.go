package transport_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entityscope/orbite/internal/transport"
	"github.com/entityscope/orbite/pkg/errors"
)

func TestGetJSONDecodes(t *testing.T) {
	var gotUA, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"label": "Orange", "id": "Q1431486"}`))
	}))
	defer srv.Close()

	var out struct {
		Label string `json:"label"`
		ID    string `json:"id"`
	}

	c := transport.New()
	err := c.GetJSON(context.Background(), "wikidata", "fetch", srv.URL, &out)
	require.NoError(t, err)

	assert.Equal(t, "Orange", out.Label)
	assert.Equal(t, "Q1431486", out.ID)
	assert.Contains(t, gotUA, "orbite")
	assert.Equal(t, "application/json", gotAccept)
}

func TestGetJSONStatusClassification(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		reason    errors.FetchReason
		retryable bool
	}{
		{"rate limited", http.StatusTooManyRequests, errors.ReasonRateLimit, true},
		{"server error", http.StatusBadGateway, errors.ReasonTransient, true},
		{"client error", http.StatusBadRequest, errors.ReasonClient, false},
		{"not found", http.StatusNotFound, errors.ReasonClient, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "upstream says no", tt.status)
			}))
			defer srv.Close()

			c := transport.New()
			err := c.GetJSON(context.Background(), "insee", "search", srv.URL, &struct{}{})
			require.Error(t, err)

			var fe *errors.FetchError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.reason, fe.Reason)
			assert.Equal(t, tt.status, fe.StatusCode)
			assert.Equal(t, tt.retryable, errors.IsRetryable(err))
		})
	}
}

func TestGetJSONParseFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	c := transport.New()
	err := c.GetJSON(context.Background(), "wikidata", "search", srv.URL, &struct{}{})
	require.Error(t, err)

	var fe *errors.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, errors.ReasonParse, fe.Reason)
	assert.False(t, errors.IsRetryable(err))
}

func TestGetJSONConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	srv.Close()

	c := transport.New()
	err := c.GetJSON(context.Background(), "wikidata", "fetch", srv.URL, &struct{}{})
	require.Error(t, err)

	var fe *errors.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, errors.ReasonTransient, fe.Reason)
	assert.True(t, errors.IsRetryable(err))
}

func TestGetJSONTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := transport.New(transport.WithTimeout(20 * time.Millisecond))
	err := c.GetJSON(context.Background(), "insee", "fetch", srv.URL, &struct{}{})
	require.Error(t, err)
	assert.True(t, errors.IsRetryable(err), "timeouts classify as transient")
}

func TestGetJSONCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	c := transport.New()
	err := c.GetJSON(ctx, "wikidata", "fetch", srv.URL, &struct{}{})
	require.Error(t, err)
	assert.True(t, errors.IsCanceled(err))
	assert.False(t, errors.IsRetryable(err))
}

func TestGetJSONErrorMessageSnippet(t *testing.T) {
	long := make([]byte, 1000)
	for i := range long {
		long[i] = 'x'
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write(long)
	}))
	defer srv.Close()

	c := transport.New()
	err := c.GetJSON(context.Background(), "insee", "search", srv.URL, &struct{}{})

	var fe *errors.FetchError
	require.ErrorAs(t, err, &fe)
	assert.LessOrEqual(t, len(fe.Message), 203, "bodies are trimmed for logging")
}
