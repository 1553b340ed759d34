// Package crmclient talks to the CRM GraphQL endpoint on behalf of the
// scheduled jobs.
package crmclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/tuanvumaihuynh/graphql-crm/internal/config"
	"github.com/tuanvumaihuynh/graphql-crm/pkg/correlationid"
)

const retryBaseDelay = 200 * time.Millisecond

// Querier executes a GraphQL document and decodes its data into out.
type Querier interface {
	Query(ctx context.Context, query string, variables map[string]any, out any) error
}

var _ Querier = (*Client)(nil)

type Client struct {
	url        string
	httpClient *http.Client
	maxRetries uint64
	logger     *slog.Logger
}

func New(cfg config.Cron, logger *slog.Logger) *Client {
	return &Client{
		url:        cfg.GraphQLURL,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		maxRetries: cfg.MaxRetries,
		logger:     logger.With(slog.String("component", "crmclient")),
	}
}

// ResponseError holds the messages of a GraphQL "errors" list.
type ResponseError struct {
	Messages []string
}

func (e *ResponseError) Error() string {
	return "graphql: " + strings.Join(e.Messages, "; ")
}

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type response struct {
	Data   json.RawMessage   `json:"data"`
	Errors []json.RawMessage `json:"errors"`
}

// Query posts the document and decodes "data" into out. Transport failures
// and 5xx responses are retried; GraphQL errors are not.
func (c *Client) Query(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(request{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("marshal graphql request: %w", err)
	}

	var res response
	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(retryBaseDelay))
	if err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		res, err = c.post(ctx, body)
		var statusErr *statusError
		switch {
		case err == nil:
			return nil
		case errors.As(err, &statusErr) && statusErr.code < http.StatusInternalServerError:
			return err
		default:
			c.logger.WarnContext(ctx, "graphql request failed, retrying", slog.Any("error", err))
			return retry.RetryableError(err)
		}
	}); err != nil {
		return err
	}

	if len(res.Errors) > 0 {
		return &ResponseError{Messages: errorMessages(res.Errors)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(res.Data, out); err != nil {
		return fmt.Errorf("decode graphql data: %w", err)
	}

	return nil
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.code, e.body)
}

func (c *Client) post(ctx context.Context, body []byte) (response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return response{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if id, ok := correlationid.FromContext(ctx); ok {
		req.Header.Set(correlationid.Header, id)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return response{}, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return response{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return response{}, &statusError{code: resp.StatusCode, body: strings.TrimSpace(string(raw))}
	}

	var res response
	if err := json.Unmarshal(raw, &res); err != nil {
		return response{}, fmt.Errorf("decode response: %w", err)
	}

	return res, nil
}

// errorMessages accepts both {"message": "..."} objects and bare strings.
func errorMessages(raw []json.RawMessage) []string {
	msgs := make([]string, 0, len(raw))
	for _, r := range raw {
		var obj struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(r, &obj); err == nil && obj.Message != "" {
			msgs = append(msgs, obj.Message)
			continue
		}

		var s string
		if err := json.Unmarshal(r, &s); err == nil {
			msgs = append(msgs, s)
			continue
		}

		msgs = append(msgs, string(r))
	}
	return msgs
}
