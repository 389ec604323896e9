package hoyolab

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	maxGetAttempts = 3
	dialTimeout    = 5 * time.Second
	requestTimeout = 15 * time.Second
	previewLimit   = 200
)

// Client talks to the portal API. GETs are retried with backoff on
// transport failures and retryable 5xx statuses; POSTs are issued
// exactly once, because a claim is not idempotent at this layer.
type Client struct {
	http *http.Client
	log  *zap.Logger

	// swapped out in tests to avoid real backoff sleeps
	sleep func(time.Duration)
}

func NewClient(log *zap.Logger) *Client {
	return &Client{
		http: &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: dialTimeout}).DialContext,
			},
		},
		log:   log,
		sleep: time.Sleep,
	}
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// getJSON issues a GET with up to three attempts total. Backoff grows
// 500ms, 1s between attempts.
func (c *Client) getJSON(ctx context.Context, url string, header http.Header, out interface{}) error {
	var lastErr error
	for attempt := 0; attempt < maxGetAttempts; attempt++ {
		if attempt > 0 {
			c.sleep(500 * time.Millisecond << (attempt - 1))
		}
		err := c.do(ctx, http.MethodGet, url, header, nil, out)
		if err == nil {
			return nil
		}
		lastErr = err

		var reqErr *APIRequestError
		if errors.As(err, &reqErr) && (reqErr.StatusCode == 0 || retryableStatus(reqErr.StatusCode)) {
			c.log.Warn("retrying portal GET",
				zap.String("url", url),
				zap.Int("attempt", attempt+1),
				zap.Error(err))
			continue
		}
		return err
	}
	return lastErr
}

// postJSON issues a single POST attempt, JSON payload in, JSON out.
func (c *Client) postJSON(ctx context.Context, url string, header http.Header, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &APIRequestError{URL: url, Err: errors.Wrap(err, "encode request body")}
	}
	return c.do(ctx, http.MethodPost, url, header, body, out)
}

func (c *Client) do(ctx context.Context, method, url string, header http.Header, body []byte, out interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return &APIRequestError{URL: url, Err: errors.Wrap(err, "build request")}
	}
	req.Header = header.Clone()
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIRequestError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIRequestError{URL: url, StatusCode: resp.StatusCode, Err: errors.Wrap(err, "read response body")}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIRequestError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Preview:    preview(raw),
			Err:        errors.Errorf("http status %d", resp.StatusCode),
		}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIRequestError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Preview:    preview(raw),
			Err:        errors.Wrap(err, "decode json response"),
		}
	}
	return nil
}

func preview(raw []byte) string {
	if len(raw) > previewLimit {
		return string(raw[:previewLimit])
	}
	return string(raw)
}
