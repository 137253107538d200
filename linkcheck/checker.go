// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package linkcheck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/aegis/core"
)

const (
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 10 * time.Second
	// DefaultMaxRetries is how often a failed request is retried.
	DefaultMaxRetries = 2
	// DefaultRetryDelay is the delay before the first retry.
	DefaultRetryDelay = 500 * time.Millisecond

	userAgent = "aegis-linkcheck/1.0"
)

// ProgressFunc is called after each URL is checked with the number of URLs
// finished so far. It may be called from several goroutines at once.
type ProgressFunc func(done, total int, result Result)

// Checker checks URLs concurrently on a worker pool.
type Checker struct {
	client     *http.Client
	pool       *ants.Pool
	poolSize   int
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
	progress   ProgressFunc
	logger     *slog.Logger
}

// Option configures a Checker.
type Option func(*Checker) error

// WithPoolSize sets how many URLs are checked at once.
// Default is runtime.NumCPU() * 2.
func WithPoolSize(size int) Option {
	return func(c *Checker) error {
		if size < 1 {
			size = 1
		}
		c.poolSize = size
		return nil
	}
}

// WithTimeout bounds each request. Default is DefaultTimeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Checker) error {
		if timeout <= 0 {
			return ErrInvalidTimeout
		}
		c.timeout = timeout
		return nil
	}
}

// WithHTTPClient sets the client used for requests.
// Default is a client that follows redirects.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Checker) error {
		if client == nil {
			client = &http.Client{}
		}
		c.client = client
		return nil
	}
}

// WithMaxRetries sets how often a failed request is retried.
// Default is DefaultMaxRetries.
func WithMaxRetries(retries int) Option {
	return func(c *Checker) error {
		if retries < 0 {
			return ErrInvalidRetries
		}
		c.maxRetries = retries
		return nil
	}
}

// WithRetryDelay sets the delay before the first retry; it doubles after
// each further failure. Default is DefaultRetryDelay.
func WithRetryDelay(delay time.Duration) Option {
	return func(c *Checker) error {
		c.retryDelay = delay
		return nil
	}
}

// WithProgress registers a callback invoked after each URL is checked.
func WithProgress(fn ProgressFunc) Option {
	return func(c *Checker) error {
		c.progress = fn
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewChecker creates a Checker. Callers must Release it when done.
func NewChecker(opts ...Option) (*Checker, error) {
	c := &Checker{
		client:     &http.Client{},
		poolSize:   runtime.NumCPU() * 2,
		timeout:    DefaultTimeout,
		maxRetries: DefaultMaxRetries,
		retryDelay: DefaultRetryDelay,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	pool, err := ants.NewPool(c.poolSize)
	if err != nil {
		return nil, err
	}
	c.pool = pool

	return c, nil
}

// Release releases the worker pool.
// The checker should not be used after calling Release.
func (c *Checker) Release() {
	if c.pool != nil {
		c.pool.Release()
	}
}

// CheckResources checks every unique URL referenced by resources.
func (c *Checker) CheckResources(ctx context.Context, resources []core.Resource) (*Report, error) {
	return c.Check(ctx, CollectURLs(resources))
}

// Check checks urls and returns a report in the same order. It returns the
// context's error if ctx is done before every URL was checked.
func (c *Checker) Check(ctx context.Context, urls []string) (*Report, error) {
	c.logger.Info("checking links", "count", len(urls), "workers", c.poolSize)

	results := make([]Result, len(urls))
	var (
		wg   sync.WaitGroup
		done atomic.Int64
	)
	finish := func(i int, result Result) {
		results[i] = result
		n := done.Add(1)
		if c.progress != nil {
			c.progress(int(n), len(urls), result)
		}
	}

	for i, raw := range urls {
		wg.Add(1)
		err := c.pool.Submit(func() {
			defer wg.Done()
			finish(i, c.checkURL(ctx, raw))
		})
		if err != nil {
			wg.Done()
			finish(i, Result{URL: raw, Status: StatusError, Error: fmt.Sprintf("submitting check: %v", err)})
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := newReport(results)
	c.logger.Info("link check complete",
		"total", report.Total, "valid", report.Valid, "invalid", report.Invalid, "errors", report.Errors)
	return report, nil
}

func (c *Checker) checkURL(ctx context.Context, raw string) Result {
	result := Result{URL: raw}

	parsed, err := url.Parse(raw)
	if err != nil {
		result.Status = StatusInvalid
		result.Error = fmt.Sprintf("malformed URL: %v", err)
		return result
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		result.Status = StatusInvalid
		result.Error = fmt.Sprintf("unsupported protocol: %q", parsed.Scheme)
		return result
	}
	if parsed.Host == "" {
		result.Status = StatusInvalid
		result.Error = "malformed URL: missing host"
		return result
	}

	attempts, err := retryWithBackoff(ctx, c.logger.With("url", raw), c.maxRetries+1, c.retryDelay, func() error {
		code, err := c.head(ctx, raw)
		result.StatusCode = code
		return err
	})
	result.Attempts = attempts

	switch {
	case err != nil && errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil:
		result.Status = StatusError
		result.Error = "request timeout"
	case err != nil:
		result.Status = StatusError
		result.Error = err.Error()
	case result.StatusCode >= 200 && result.StatusCode < 400:
		result.Status = StatusValid
	default:
		result.Status = StatusInvalid
		result.Error = fmt.Sprintf("HTTP %d", result.StatusCode)
	}

	if result.Status != StatusValid {
		c.logger.Debug("link failed", "url", raw, "status", result.Status, "err", result.Error)
	}
	return result
}

// head issues a single HEAD request bounded by the checker's timeout.
func (c *Checker) head(ctx context.Context, raw string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, raw, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

// CollectURLs returns the unique URLs referenced by resources in first-seen
// order: each resource's url, alternative_urls and api_docs.
func CollectURLs(resources []core.Resource) []string {
	seen := make(map[string]bool)
	urls := make([]string, 0, len(resources))
	for _, resource := range resources {
		for _, u := range resource.URLs() {
			if !seen[u] {
				seen[u] = true
				urls = append(urls, u)
			}
		}
	}
	return urls
}
