// Package fetch is the HTTP layer under the PokeAPI client. Every failure it
// returns is an *Error classified by ErrorType.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/tildaslashalef/pokenest/internal/config"
	"github.com/tildaslashalef/pokenest/internal/loggy"
	"golang.org/x/time/rate"
)

// Requester issues a GET request and hands back the raw response
type Requester interface {
	FetchRaw(ctx context.Context, url string) (*http.Response, error)
}

// Fetcher issues rate-limited GET requests
type Fetcher struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
}

// NewFetcher creates a Fetcher with a transport tuned from cfg
func NewFetcher(cfg config.PokeAPIConfig) *Fetcher {
	httpClient := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        cfg.MaxIdleConns,
			MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
			IdleConnTimeout:     cfg.IdleConnTimeout,
		},
	}

	return &Fetcher{
		httpClient: httpClient,
		limiter:    newLimiter(cfg.RequestsPerMinute, cfg.BurstLimit),
		userAgent:  cfg.UserAgent,
	}
}

// newLimiter creates a rate limiter from RPM and burst; rpm <= 0 disables it
func newLimiter(rpm, burst int) *rate.Limiter {
	if rpm <= 0 {
		return rate.NewLimiter(rate.Inf, burst)
	}
	b := burst
	if b <= 0 {
		b = 1
	}
	return rate.NewLimiter(rate.Limit(float64(rpm)/60.0), b)
}

func canceled(ctx context.Context) bool {
	return errors.Is(ctx.Err(), context.Canceled)
}

// FetchRaw performs a GET request. The caller owns the response body.
func (f *Fetcher) FetchRaw(ctx context.Context, url string) (*http.Response, error) {
	if canceled(ctx) {
		return nil, Aborted(url)
	}

	if err := f.limiter.Wait(ctx); err != nil {
		if canceled(ctx) {
			return nil, Aborted(url)
		}
		return nil, networkFailure(url, fmt.Errorf("rate limiter: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{
			Type:    UnknownError,
			Message: fmt.Sprintf("creating request: %v", err),
			Context: ErrorContext{URL: url},
			cause:   err,
		}
	}
	req.Header.Set("Accept", "application/json")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		if canceled(ctx) {
			return nil, Aborted(url)
		}
		loggy.Debug("PokeAPI request failed", "url", url, "error", err)
		return nil, networkFailure(url, err)
	}

	return resp, nil
}

// ParseResponse reads the body of resp exactly once and decodes it into T.
// The body is always closed.
func ParseResponse[T any](resp *http.Response, url string) (T, error) {
	var zero T
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if resp.Request != nil && canceled(resp.Request.Context()) {
			return zero, Aborted(url)
		}
		return zero, bodyReadFailure(url, resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return zero, httpFailure(url, resp.StatusCode, string(body))
	}

	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return zero, ParseFailure(url, string(body), err)
	}

	return out, nil
}

// GetJSON fetches url and decodes the JSON body into T
func GetJSON[T any](ctx context.Context, f Requester, url string) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			result = zero
			err = &Error{
				Type:    UnknownError,
				Message: fmt.Sprintf("panic while fetching: %v", r),
				Context: ErrorContext{URL: url},
			}
		}
	}()

	resp, err := f.FetchRaw(ctx, url)
	if err != nil {
		var zero T
		return zero, err
	}

	return ParseResponse[T](resp, url)
}
