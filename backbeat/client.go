// Package backbeat implements a client for the cross region replication control API exposed by Backbeat.
package backbeat

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"github.com/couchbase/replverify/log"
	"github.com/couchbase/replverify/metrics"
	"github.com/couchbase/replverify/retry"
)

// crrPath is the path under which the replication control endpoints live.
const crrPath = "/_/backbeat/api/crr"

// Operation is a replication control operation.
type Operation string

const (
	// OperationPause stops replication to one or all locations.
	OperationPause Operation = "pause"

	// OperationResume restarts replication to one or all locations.
	OperationResume Operation = "resume"

	// OperationStatus reports whether replication is enabled for each location.
	OperationStatus Operation = "status"
)

// Client dispatches replication control requests to Backbeat, retrying transport errors and server side failures.
type Client struct {
	endpoint string
	client   *http.Client
	retryer  retry.Retryer[*http.Response]
	logger   *slog.Logger
}

// NewClient returns a new Backbeat client for the given options.
func NewClient(options Options) (*Client, error) {
	options.defaults()

	if options.Endpoint == "" {
		return nil, ErrNoEndpoint
	}

	parsed, err := url.Parse(options.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to parse endpoint: %w", err)
	}

	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid endpoint '%s', expected a scheme and host", options.Endpoint)
	}

	client := &Client{
		endpoint: parsed.String(),
		client:   options.HTTPClient,
		logger:   options.Logger,
	}

	client.retryer = retry.NewRetryer(retry.RetryerOptions[*http.Response]{
		Algorithm:    options.Algorithm,
		MaxRetries:   options.Retries,
		ShouldRetry:  shouldRetry,
		Log:          client.logRetry,
		Cleanup:      cleanup,
		TimeProvider: options.TimeProvider,
	})

	return client, nil
}

// Pause stops replication to the given location, or to every location when none is provided.
func (c *Client) Pause(ctx context.Context, location string) error {
	_, err := c.execute(ctx, http.MethodPost, OperationPause, location)
	if err != nil {
		return fmt.Errorf("failed to pause replication: %w", err)
	}

	return nil
}

// Resume restarts replication to the given location, or to every location when none is provided.
func (c *Client) Resume(ctx context.Context, location string) error {
	_, err := c.execute(ctx, http.MethodPost, OperationResume, location)
	if err != nil {
		return fmt.Errorf("failed to resume replication: %w", err)
	}

	return nil
}

// Status returns the replication state of each location, e.g. "enabled" or "disabled".
func (c *Client) Status(ctx context.Context) (map[string]string, error) {
	body, err := c.execute(ctx, http.MethodGet, OperationStatus, "")
	if err != nil {
		return nil, fmt.Errorf("failed to get replication status: %w", err)
	}

	var status map[string]string

	err = jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(body, &status)
	if err != nil {
		return nil, fmt.Errorf("failed to decode replication status: %w", err)
	}

	return status, nil
}

// url returns the endpoint for the given operation, scoped to a location when one is provided.
func (c *Client) url(op Operation, location string) string {
	endpoint := c.endpoint + crrPath + "/" + string(op)
	if location != "" {
		endpoint += "/" + url.PathEscape(location)
	}

	return endpoint
}

// execute dispatches the request, returning the body of a successful response.
func (c *Client) execute(ctx context.Context, method string, op Operation, location string) ([]byte, error) {
	endpoint := c.url(op, location)

	c.logger.Debug("dispatching replication control request", "method", method, "endpoint", endpoint,
		log.UserData("location", location))

	resp, err := c.retryer.DoWithContext(ctx, func(ctx *retry.Context) (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
		if err != nil {
			return nil, retry.NewAbortRetriesError(fmt.Errorf("failed to create request: %w", err))
		}

		resp, err := c.client.Do(req)

		metrics.BackbeatRequestsTotal.WithLabelValues(string(op), statusLabel(resp, err)).Inc()

		return resp, err
	})
	// NOTE: Exhausting retries on a server side failure still yields the final response, which is reported below
	if resp == nil {
		return nil, fmt.Errorf("failed to execute '%s' request to '%s': %w", method, endpoint, err)
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &UnexpectedStatusCodeError{Status: resp.StatusCode, Method: method, Endpoint: endpoint, Body: body}
	}

	return body, nil
}

func (c *Client) logRetry(ctx *retry.Context, resp *http.Response, err error) {
	if err == nil && resp != nil {
		err = fmt.Errorf("status code %d", resp.StatusCode)
	}

	c.logger.Warn("retrying replication control request", "attempt", ctx.Attempt(), "error", err)
}

// shouldRetry retries transport errors and server side failures.
func shouldRetry(_ *retry.Context, resp *http.Response, err error) bool {
	if err != nil {
		return true
	}

	return resp.StatusCode >= http.StatusInternalServerError
}

func cleanup(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

func statusLabel(resp *http.Response, err error) string {
	if err != nil || resp == nil {
		return "error"
	}

	return strconv.Itoa(resp.StatusCode)
}
