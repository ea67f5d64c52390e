// Package fetch provides the HTTP retrieval layer shared by article
// sources and the PubMed/DOI resolvers: one client with retry, backoff,
// and an optional disk cache.
package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Fetcher retrieves the body of a URL as a string.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// ErrFetchFailed reports that a fetch exhausted its retry budget (or hit a
// non-retryable failure). Callers that fetch per-table sub-documents treat
// it as "skip this table", never "fail the article".
var ErrFetchFailed = errors.New("neurotab: fetch failed")

// HTTPFetcher is the default Fetcher: a net/http client with bounded
// exponential backoff on 5xx/timeout, an optional on-disk cache, and a
// per-request correlation id for log lines.
type HTTPFetcher struct {
	Client     *http.Client
	MaxRetries int
	BaseDelay  time.Duration
	CacheDir   string // empty disables the disk cache
	Logger     zerolog.Logger
}

// NewHTTPFetcher returns an HTTPFetcher with sane defaults: a 30s client
// timeout, 3 retries, 500ms base backoff delay, no cache.
func NewHTTPFetcher(logger zerolog.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		Client:     &http.Client{Timeout: 30 * time.Second},
		MaxRetries: 3,
		BaseDelay:  500 * time.Millisecond,
		Logger:     logger,
	}
}

// Fetch retrieves url, retrying transient failures with jittered
// exponential backoff, and serving/populating the disk cache when
// CacheDir is set.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	reqID := uuid.New().String()
	log := f.Logger.With().Str("request_id", reqID).Str("url", url).Logger()

	if f.CacheDir != "" {
		if body, ok := f.readCache(url); ok {
			log.Debug().Msg("fetch cache hit")
			return body, nil
		}
	}

	var lastErr error
	for attempt := 0; attempt <= f.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := f.backoff(attempt)
			log.Debug().Int("attempt", attempt).Dur("delay", delay).Msg("retrying fetch")
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
		}

		body, retryable, err := f.do(ctx, url)
		if err == nil {
			if f.CacheDir != "" {
				f.writeCache(url, body)
			}
			return body, nil
		}
		lastErr = err
		log.Warn().Err(err).Int("attempt", attempt).Msg("fetch attempt failed")
		if !retryable {
			break
		}
	}
	return "", fmt.Errorf("%w: %s: %w", ErrFetchFailed, url, lastErr)
}

func (f *HTTPFetcher) do(ctx context.Context, url string) (body string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", false, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return "", true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return "", true, fmt.Errorf("server error: %s", resp.Status)
	}
	if resp.StatusCode >= 400 {
		return "", false, fmt.Errorf("client error: %s", resp.Status)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, err
	}
	return string(b), false, nil
}

func (f *HTTPFetcher) backoff(attempt int) time.Duration {
	base := float64(f.BaseDelay) * math.Pow(2, float64(attempt-1))
	jitter := 1 + (rand.Float64()-0.5)*0.5 //nolint:gosec // jitter timing, not cryptographic
	return time.Duration(base * jitter)
}

func (f *HTTPFetcher) cachePath(url string) string {
	sum := sha256.Sum256([]byte(url))
	return filepath.Join(f.CacheDir, hex.EncodeToString(sum[:])+".html")
}

func (f *HTTPFetcher) readCache(url string) (string, bool) {
	b, err := os.ReadFile(f.cachePath(url))
	if err != nil {
		return "", false
	}
	return string(b), true
}

func (f *HTTPFetcher) writeCache(url, body string) {
	if err := os.MkdirAll(f.CacheDir, 0o755); err != nil {
		return
	}
	_ = os.WriteFile(f.cachePath(url), []byte(body), 0o644)
}
