package crmclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/graphql-crm/internal/config"
	"github.com/tuanvumaihuynh/graphql-crm/internal/crmclient"
	"github.com/tuanvumaihuynh/graphql-crm/pkg/correlationid"
)

func newClient(url string) *crmclient.Client {
	return crmclient.New(config.Cron{
		GraphQLURL:     url,
		RequestTimeout: time.Second,
		MaxRetries:     2,
	}, slog.New(slog.DiscardHandler))
}

func TestClient_Query(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "corr-1", r.Header.Get(correlationid.Header))

		var req struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "{ hello }", req.Query)
		assert.Equal(t, "x", req.Variables["v"])

		//nolint:errcheck
		w.Write([]byte(`{"data":{"hello":"Hello, GraphQL!"}}`))
	}))
	defer srv.Close()

	var out struct {
		Hello string `json:"hello"`
	}
	ctx := correlationid.NewContext(context.Background(), "corr-1")
	err := newClient(srv.URL).Query(ctx, "{ hello }", map[string]any{"v": "x"}, &out)

	require.NoError(t, err)
	assert.Equal(t, "Hello, GraphQL!", out.Hello)
}

func TestClient_Query_GraphQLErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		//nolint:errcheck
		w.Write([]byte(`{"data":null,"errors":[{"message":"cannot order by \"bogus\""},"plain"]}`))
	}))
	defer srv.Close()

	err := newClient(srv.URL).Query(context.Background(), "{ x }", nil, nil)

	var respErr *crmclient.ResponseError
	require.True(t, errors.As(err, &respErr))
	assert.Equal(t, []string{`cannot order by "bogus"`, "plain"}, respErr.Messages)
}

func TestClient_Query_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		//nolint:errcheck
		w.Write([]byte(`{"data":{"hello":"ok"}}`))
	}))
	defer srv.Close()

	err := newClient(srv.URL).Query(context.Background(), "{ hello }", nil, nil)

	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_Query_GivesUp(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	err := newClient(srv.URL).Query(context.Background(), "{ hello }", nil, nil)

	assert.ErrorContains(t, err, "unexpected status 503")
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_Query_NoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	err := newClient(srv.URL).Query(context.Background(), "{ hello }", nil, nil)

	assert.ErrorContains(t, err, "unexpected status 400")
	assert.Equal(t, int32(1), calls.Load())
}
