// Package fetch gets pages from the target site and hands back parsed
// document trees. Transient failures are retried with a pluggable backoff;
// permanent ones escalate immediately.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// DefaultHeaders is the fixed identifying header set sent on every request.
// The site serves a degraded page to clients without a browser-like UA.
var DefaultHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.5",
	"Connection":      "keep-alive",
}

type Config struct {
	Timeout        time.Duration // per-request timeout
	MaxRetries     int           // retries after the first attempt
	RetryDelay     time.Duration // fixed delay between transient retries
	RateLimitDelay time.Duration // delay after a 429 before resuming
	RequestDelay   time.Duration // minimum spacing between requests per host
	Headers        map[string]string
	// Backoff overrides the fixed RetryDelay strategy when set.
	Backoff Backoff
}

type Client struct {
	http    *resty.Client
	policy  RetryPolicy
	limiter *HostLimiter
}

func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	if cfg.RateLimitDelay <= 0 {
		cfg.RateLimitDelay = 30 * time.Second
	}
	headers := cfg.Headers
	if headers == nil {
		headers = DefaultHeaders
	}
	backoff := cfg.Backoff
	if backoff == nil {
		backoff = FixedBackoff(cfg.RetryDelay)
	}

	hc := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeaders(headers).
		SetRetryCount(0) // retries are ours, not resty's

	reqPerSec := 1000.0
	if cfg.RequestDelay > 0 {
		reqPerSec = float64(time.Second) / float64(cfg.RequestDelay)
	}

	return &Client{
		http: hc,
		policy: RetryPolicy{
			MaxRetries:     cfg.MaxRetries,
			Backoff:        backoff,
			RateLimitDelay: cfg.RateLimitDelay,
		},
		limiter: NewHostLimiter(reqPerSec, 1),
	}
}

// Fetch retrieves url and parses it. The body is fully buffered before
// parsing, so a success is never a partially-read document. On failure the
// returned error is always a *Error carrying the failure kind.
func (c *Client) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	var doc *goquery.Document

	ferr := c.policy.Run(ctx, func(ctx context.Context) *Error {
		if err := c.limiter.WaitURL(ctx, url); err != nil {
			return &Error{Kind: Permanent, URL: url, Err: err}
		}

		res, err := c.http.R().SetContext(ctx).Get(url)
		if err != nil {
			return &Error{Kind: classifyTransport(ctx, err), URL: url, Err: err}
		}
		if kind, bad := classifyStatus(res.StatusCode()); bad {
			return &Error{Kind: kind, URL: url, Status: res.StatusCode()}
		}

		parsed, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
		if err != nil {
			return &Error{Kind: Permanent, URL: url, Status: res.StatusCode(), Err: err}
		}
		doc = parsed
		return nil
	})
	if ferr != nil {
		return nil, ferr
	}
	return doc, nil
}

func classifyTransport(ctx context.Context, err error) ErrorKind {
	// A dead caller context means shutdown, not a flaky network; don't
	// retry into it. Per-request timeouts still report Transient because
	// the caller context is alive.
	if ctx.Err() != nil {
		return Permanent
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return Transient
	}
	// Connection resets, refused connections, DNS blips.
	return Transient
}

func classifyStatus(status int) (ErrorKind, bool) {
	switch {
	case status == http.StatusTooManyRequests:
		return RateLimited, true
	case status >= 500:
		return Transient, true
	case status >= 400:
		return Permanent, true
	}
	return 0, false
}
