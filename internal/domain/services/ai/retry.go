package ai

import (
	"context"
	"net/http"
	"time"
)

const (
	maxRetries     = 3
	initialBackoff = time.Second
)

// doWithBackoff executes an HTTP request with up to maxRetries retries.
// Transport errors and 429 responses are retried after a delay that
// doubles each attempt; any other status is returned to the caller.
func doWithBackoff(ctx context.Context, client *http.Client, build func() (*http.Request, error)) (*http.Response, error) {
	delay := initialBackoff

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		req, err := build()
		if err != nil {
			return nil, err
		}

		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			lastErr = &rateLimitError{}
			continue
		}
		return resp, nil
	}
	return nil, lastErr
}

type rateLimitError struct{}

func (e *rateLimitError) Error() string { return "rate limited (429)" }
