// Package dashboard is the HTTP client for a Meraki-compatible
// dashboard API. It owns everything the reporting pipeline treats as a
// collaborator's problem: bearer auth, Link-header pagination, rate
// limit retries, and caching of repeated network lookups.
package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff"
	"go.uber.org/zap"
)

// APIError is a non-2xx dashboard response that was not retried away.
type APIError struct {
	Status int
	Path   string
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("dashboard: %s returned %d: %s", e.Path, e.Status, e.Body)
}

// Client talks to the dashboard API. It is safe for reuse across calls;
// network names resolve at most once per id per client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	timeout    time.Duration
	maxRetries int
	log        *zap.SugaredLogger

	mu       sync.Mutex
	networks map[string]string
}

// Option customizes Client construction.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithMaxRetries sets how many times a failed request is retried after
// the initial attempt.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.maxRetries = n
		}
	}
}

// WithLogger directs retry and request logging to the given logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New builds a dashboard client for the API at baseURL, authenticating
// every request with apiKey.
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
		timeout:    30 * time.Second,
		maxRetries: 3,
		log:        zap.NewNop().Sugar(),
		networks:   make(map[string]string),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Organizations lists every organization the credential can see.
func (c *Client) Organizations(ctx context.Context) ([]Organization, error) {
	var orgs []Organization
	err := c.getPaged(ctx, c.url("/organizations"), func(page []byte) error {
		var batch []Organization
		if err := json.Unmarshal(page, &batch); err != nil {
			return fmt.Errorf("dashboard: decode organizations: %w", err)
		}
		orgs = append(orgs, batch...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orgs, nil
}

// LicenseOverview fetches an organization's coterminous licensing state.
func (c *Client) LicenseOverview(ctx context.Context, orgID string) (LicenseOverview, error) {
	body, _, err := c.get(ctx, c.url("/organizations/"+orgID+"/licenses/overview"))
	if err != nil {
		return LicenseOverview{}, err
	}
	var overview LicenseOverview
	if err := json.Unmarshal(body, &overview); err != nil {
		return LicenseOverview{}, fmt.Errorf("dashboard: decode license overview: %w", err)
	}
	return overview, nil
}

// Licenses fetches an organization's complete per-device license list,
// following pagination until every page is consumed.
func (c *Client) Licenses(ctx context.Context, orgID string) ([]License, error) {
	var licenses []License
	err := c.getPaged(ctx, c.url("/organizations/"+orgID+"/licenses"), func(page []byte) error {
		var batch []License
		if err := json.Unmarshal(page, &batch); err != nil {
			return fmt.Errorf("dashboard: decode licenses: %w", err)
		}
		licenses = append(licenses, batch...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return licenses, nil
}

// NetworkName resolves a network id to its display name. Repeated
// lookups of the same id cost one request per client.
func (c *Client) NetworkName(ctx context.Context, networkID string) (string, error) {
	c.mu.Lock()
	name, ok := c.networks[networkID]
	c.mu.Unlock()
	if ok {
		return name, nil
	}
	body, _, err := c.get(ctx, c.url("/networks/"+networkID))
	if err != nil {
		return "", err
	}
	var network Network
	if err := json.Unmarshal(body, &network); err != nil {
		return "", fmt.Errorf("dashboard: decode network %s: %w", networkID, err)
	}
	c.mu.Lock()
	c.networks[networkID] = network.Name
	c.mu.Unlock()
	return network.Name, nil
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}

// getPaged follows Link rel=next headers until the listing is
// exhausted, handing each page body to decode in order.
func (c *Client) getPaged(ctx context.Context, url string, decode func(page []byte) error) error {
	for url != "" {
		body, header, err := c.get(ctx, url)
		if err != nil {
			return err
		}
		if err := decode(body); err != nil {
			return err
		}
		url = nextLink(header.Get("Link"))
	}
	return nil
}

// get performs one authenticated GET, retrying rate limits and server
// errors with exponential backoff until the retry budget runs out.
func (c *Client) get(ctx context.Context, url string) ([]byte, http.Header, error) {
	var (
		body   []byte
		header http.Header
	)
	attempt := func() error {
		reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()
		req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("dashboard: build request: %w", err))
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Accept", "application/json")
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			if err := waitRetryAfter(ctx, resp.Header.Get("Retry-After")); err != nil {
				return backoff.Permanent(err)
			}
			return fmt.Errorf("rate limited (429)")
		case resp.StatusCode >= http.StatusInternalServerError:
			return fmt.Errorf("server error (%d)", resp.StatusCode)
		case resp.StatusCode >= http.StatusMultipleChoices:
			return backoff.Permanent(&APIError{
				Status: resp.StatusCode,
				Path:   req.URL.Path,
				Body:   strings.TrimSpace(string(data)),
			})
		}
		body = data
		header = resp.Header
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 250 * time.Millisecond
	bo.MaxInterval = 30 * time.Second
	bo.MaxElapsedTime = 0
	// WithMaxRetries treats 0 as no cap at all, so a zero budget needs
	// StopBackOff to mean a single attempt.
	var tries backoff.BackOff = backoff.WithMaxRetries(bo, uint64(c.maxRetries))
	if c.maxRetries == 0 {
		tries = &backoff.StopBackOff{}
	}
	policy := backoff.WithContext(tries, ctx)

	err := backoff.RetryNotify(attempt, policy, func(err error, wait time.Duration) {
		c.log.Debugw("retrying dashboard request", "url", url, "wait", wait, "error", err)
	})
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return nil, nil, apiErr
		}
		return nil, nil, fmt.Errorf("dashboard: GET %s: %w", url, err)
	}
	return body, header, nil
}

// waitRetryAfter blocks for the server-requested delay, if any, before
// the next attempt.
func waitRetryAfter(ctx context.Context, header string) error {
	seconds, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || seconds <= 0 {
		return nil
	}
	select {
	case <-time.After(time.Duration(seconds) * time.Second):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// nextLink extracts the rel=next target from an RFC 5988 Link header,
// or an empty string when there is no further page.
func nextLink(header string) string {
	for _, part := range strings.Split(header, ",") {
		segments := strings.Split(part, ";")
		if len(segments) < 2 {
			continue
		}
		target := strings.TrimSpace(segments[0])
		if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
			continue
		}
		for _, param := range segments[1:] {
			param = strings.TrimSpace(param)
			if !strings.HasPrefix(strings.ToLower(param), "rel=") {
				continue
			}
			rel := strings.Trim(param[len("rel="):], `"`)
			if strings.EqualFold(rel, "next") {
				return strings.Trim(target, "<>")
			}
		}
	}
	return ""
}
