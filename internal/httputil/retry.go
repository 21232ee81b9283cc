// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the bounded retry policy shared by remote
// provider clients. See docs/ARCHITECTURE § Completion Gateway.
package httputil

import (
	"context"
	"io"
	"net/http"
	"time"
)

// RetryBaseDelay is the backoff before the second attempt; it doubles per
// attempt after that. Tests override this to avoid real sleeps.
var RetryBaseDelay = 1 * time.Second

// MaxRetryDelay caps the backoff between attempts.
const MaxRetryDelay = 10 * time.Second

// DefaultAttempts is the total number of attempts when the caller passes 0.
const DefaultAttempts = 3

// retryable reports whether a response status warrants another attempt:
// rate limiting and server-side failures. Client errors are terminal.
func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// DoWithRetry executes req up to attempts times, backing off exponentially
// between tries (RetryBaseDelay, doubling, capped at MaxRetryDelay). It
// retries transport errors and retryable statuses; any other status returns
// immediately. The retry wraps only the network call: the caller builds the
// request once and decodes the final response.
//
// Requests with a body must carry GetBody (http.NewRequest sets it for
// bytes.Reader bodies) so the body can be replayed. After the last attempt
// the final response or transport error is returned as-is for the caller
// to inspect.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, attempts int) (*http.Response, error) {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := RetryBaseDelay << (attempt - 1)
			if delay > MaxRetryDelay {
				delay = MaxRetryDelay
			}
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		clone := req.Clone(ctx)
		if attempt > 0 && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, err
			}
			clone.Body = body
		}

		resp, err := client.Do(clone)
		if err != nil {
			lastErr = err
			continue
		}

		if !retryable(resp.StatusCode) || attempt == attempts-1 {
			return resp, nil
		}

		// Drain and close the body before retrying.
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}

	return nil, lastErr
}
