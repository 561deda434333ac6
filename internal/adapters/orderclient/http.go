package orderclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 4 << 20

// RetryPolicy controls how transient order-server failures are retried.
// Backoff is the first delay; it doubles after every failed attempt.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 4, Backoff: 200 * time.Millisecond}
}

func (p RetryPolicy) validate() error {
	if p.MaxAttempts < 1 {
		return fmt.Errorf("retry policy: max attempts %d must be at least 1", p.MaxAttempts)
	}
	if p.Backoff < 0 {
		return fmt.Errorf("retry policy: negative backoff %s", p.Backoff)
	}
	return nil
}

// envelope is the wrapper the order server puts around every response.
type envelope struct {
	Status  int             `json:"status"`
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// ServerError is a failure reported by the order server, either through an
// error status or through an envelope with success=false. Message is the
// server's own message when the body carries one.
type ServerError struct {
	Code    int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("order server: status %d: %s", e.Code, e.Message)
}

func (e *ServerError) retryable() bool {
	switch e.Code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// post sends body as JSON to path and decodes the envelope's data into out.
// Network errors and 429/5xx answers are retried per the client's policy.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	endpoint := c.baseURL + path
	backoff := c.retry.Backoff

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		data, err := c.send(ctx, endpoint, payload)
		if err == nil {
			if err := json.Unmarshal(data, out); err != nil {
				return fmt.Errorf("decode data: %w", err)
			}
			return nil
		}

		if !shouldRetry(err) || attempt >= c.retry.MaxAttempts {
			return err
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		backoff *= 2
	}
}

// send performs one POST and unwraps the envelope.
func (c *Client) send(ctx context.Context, endpoint string, payload []byte) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return unwrap(resp.StatusCode, raw)
}

func unwrap(code int, raw []byte) (json.RawMessage, error) {
	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if code >= http.StatusBadRequest {
		msg := strings.TrimSpace(env.Message)
		if decodeErr != nil || msg == "" {
			msg = strings.TrimSpace(string(raw))
		}
		return nil, &ServerError{Code: code, Message: msg}
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("decode response: %w", decodeErr)
	}
	if env.Success != nil && !*env.Success {
		status := env.Status
		if status == 0 {
			status = code
		}
		return nil, &ServerError{Code: status, Message: env.Message}
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, errors.New("response has no data")
	}

	return env.Data, nil
}

func shouldRetry(err error) bool {
	var se *ServerError
	if errors.As(err, &se) {
		return se.retryable()
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
