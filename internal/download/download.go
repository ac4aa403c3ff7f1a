package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
)

// userAgent identifies this service to api.met.no, which rejects
// anonymous clients.
const userAgent = "GribAPI/1.0 (https://github.com/evenoes/grib-api)"

// BackoffConfig controls exponential backoff behaviour.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

var (
	errRateLimited  = errors.New("rate limited")
	errServerError  = errors.New("server error")
	errUnexpected   = errors.New("unexpected status code")
	errCircuitOpen  = errors.New("circuit breaker open")
	errNoHTTPClient = errors.New("http client not configured")
)

// Downloader fetches GRIB files to local temp files with retries,
// exponential backoff, and a circuit breaker in front of the upstream.
type Downloader struct {
	client  *http.Client
	backoff BackoffConfig
	circuit *gobreaker.CircuitBreaker
	dir     string
}

// NewDownloader creates a Downloader writing into dir (the OS temp dir
// when empty).
func NewDownloader(client *http.Client, dir string) *Downloader {
	if dir == "" {
		dir = os.TempDir()
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "gribfiles",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Downloader{
		client: client,
		backoff: BackoffConfig{
			MaxRetries:      3,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		},
		circuit: cb,
		dir:     dir,
	}
}

// Download fetches sourceURL into a fresh temp file and returns its
// path. The caller owns the file.
func (d *Downloader) Download(ctx context.Context, sourceURL string) (string, error) {
	body, err := d.get(ctx, sourceURL)
	if err != nil {
		return "", err
	}
	defer body.Close()

	path := filepath.Join(d.dir, fmt.Sprintf("grib-%s.grb", uuid.NewString()))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	n, err := io.Copy(f, body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("writing %s: %w", path, err)
	}

	if n == 0 {
		os.Remove(path)
		return "", fmt.Errorf("empty response from %s", sourceURL)
	}
	return path, nil
}

// get executes the request with retries, exponential backoff, and the
// circuit breaker, returning the response body on success.
func (d *Downloader) get(ctx context.Context, sourceURL string) (io.ReadCloser, error) {
	if d.client == nil {
		return nil, errNoHTTPClient
	}

	var attempt int
	var lastErr error

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)

		result, err := d.circuit.Execute(func() (interface{}, error) {
			resp, execErr := d.client.Do(req)
			if execErr != nil {
				return nil, execErr
			}

			if resp.StatusCode == http.StatusTooManyRequests {
				resp.Body.Close()
				return nil, errRateLimited
			}
			if resp.StatusCode >= 500 {
				resp.Body.Close()
				return nil, errServerError
			}
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				resp.Body.Close()
				return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
			}
			return resp, nil
		})

		if err == nil {
			resp, ok := result.(*http.Response)
			if !ok {
				return nil, fmt.Errorf("unexpected result type from circuit breaker")
			}
			return resp.Body, nil
		}

		// An open circuit means the upstream is known-bad; fail fast.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}

		lastErr = err
		if attempt >= d.backoff.MaxRetries {
			return nil, lastErr
		}

		delay := d.backoff.InitialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if d.backoff.MaxInterval > 0 && delay > d.backoff.MaxInterval {
			delay = d.backoff.MaxInterval
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		attempt++
	}
}
