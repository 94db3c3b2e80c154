package catalog

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"SmartCart-Backend/domain"
)

type (
	// Adapter is the contract both external catalogs implement. Lookup
	// returns domain.ErrProductNotFound for unknown codes; transport
	// errors surface immediately, without retrying.
	Adapter interface {
		Lookup(ctx context.Context, code string) (*domain.ProductInfo, error)
		Name() string
	}

	// callPolicy is the shared resilience policy: one timeout per attempt,
	// retries only on rate-limit responses, exponential backoff between
	// attempts (base, 2x base, 4x base, ...).
	callPolicy struct {
		timeout     time.Duration
		maxRetries  int
		baseBackoff time.Duration
	}
)

func (p callPolicy) client() *http.Client {
	return &http.Client{Timeout: p.timeout}
}

// do executes the request, retrying on HTTP 429 up to the retry ceiling.
// Any other status is returned to the caller on the first attempt.
func (p callPolicy) do(ctx context.Context, client *http.Client, newRequest func() (*http.Request, error)) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := p.baseBackoff << (attempt - 1)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := newRequest()
		if err != nil {
			return nil, err
		}

		// transport failures are not retried, only rate limiting is
		resp, err := client.Do(req.WithContext(ctx))
		if err != nil {
			return nil, err
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			lastErr = domain.ErrCatalogRateLimited
			continue
		}

		return resp, nil
	}

	if lastErr == nil {
		lastErr = domain.ErrCatalogUnavailable
	}
	return nil, lastErr
}

// IsNotFound reports whether an adapter error means "unknown product" as
// opposed to a transport failure.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrProductNotFound)
}
