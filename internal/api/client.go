// Package api is the REST client for the vendor backend.
//
// Every request carries the session's bearer token and an X-Request-ID.
// Requests are never retried: a failed load or mutation is reported to
// the caller, which decides what to show.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const (
	// RequestIDHeader carries a per-request UUID.
	RequestIDHeader = "X-Request-ID"

	userAgent = "vendorctl"
)

// TokenSource supplies the bearer token for each request.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed TokenSource.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// Options configures a Client.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64 // requests per second, 0 for none
	Tokens    TokenSource
	Logger    *charmlog.Logger
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Client talks to the vendor API. It is safe for concurrent use.
type Client struct {
	http    *resty.Client
	tokens  TokenSource
	limiter *rate.Limiter
	log     *charmlog.Logger

	Products   *ProductService
	Categories *CategoryService
	Customers  *CustomerService
	Vendors    *VendorService
	Orders     *OrderService
	Profile    *ProfileService
	Sales      *SalesService
	Banks      *BankService
	Auth       *AuthService
	Reviews    *ReviewService
	Support    *SupportService
}

// New returns a Client for opts.BaseURL.
func New(opts Options) (*Client, error) {
	u, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("base URL must be absolute, got: %s", opts.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base URL scheme must be http or https, got: %s", u.Scheme)
	}
	if opts.Tokens == nil {
		opts.Tokens = StaticToken("")
	}
	if opts.Logger == nil {
		opts.Logger = charmlog.NewWithOptions(io.Discard, charmlog.Options{Level: charmlog.FatalLevel})
	}

	hc := resty.New()
	if opts.HTTPClient != nil {
		hc = resty.NewWithClient(opts.HTTPClient)
	}
	hc.SetBaseURL(opts.BaseURL).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", userAgent).
		SetRetryCount(0)
	if opts.Timeout > 0 {
		hc.SetTimeout(opts.Timeout)
	}

	c := &Client{
		http:   hc,
		tokens: opts.Tokens,
		log:    opts.Logger,
	}
	if opts.RateLimit > 0 {
		burst := int(opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	hc.OnBeforeRequest(c.beforeRequest)
	hc.OnAfterResponse(c.afterResponse)

	c.Products = &ProductService{c: c}
	c.Categories = &CategoryService{c: c}
	c.Customers = &CustomerService{c: c}
	c.Vendors = &VendorService{c: c}
	c.Orders = &OrderService{c: c}
	c.Profile = &ProfileService{c: c}
	c.Sales = &SalesService{c: c}
	c.Banks = &BankService{c: c}
	c.Auth = &AuthService{c: c}
	c.Reviews = &ReviewService{c: c}
	c.Support = &SupportService{c: c}
	return c, nil
}

// beforeRequest attaches the bearer token and request id, and waits for
// the rate limiter.
func (c *Client) beforeRequest(_ *resty.Client, r *resty.Request) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(r.Context()); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}
	}
	if tok := c.tokens.Token(); tok != "" {
		r.SetAuthToken(tok)
	}
	r.SetHeader(RequestIDHeader, uuid.NewString())
	return nil
}

func (c *Client) afterResponse(_ *resty.Client, resp *resty.Response) error {
	c.log.Debug("api request",
		"method", resp.Request.Method,
		"url", resp.Request.URL,
		"status", resp.StatusCode(),
		"request_id", resp.Request.Header.Get(RequestIDHeader),
		"duration", resp.Time(),
	)
	return nil
}

// send performs one request and returns the raw body of a 2xx response.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	req := c.http.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, transportError(method, path, err)
	}
	if resp.IsError() {
		return nil, newAPIError(method, path, resp.StatusCode(), resp.Body())
	}
	return resp.Body(), nil
}

// list fetches a collection. Both bare arrays and {"results": [...]} or
// {"data": [...]} envelopes are accepted.
func list[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	body, err := c.send(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[T](body)
}

// one performs a request answered by a single record.
func one[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	raw, err := c.send(ctx, method, path, nil, body)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeOne[T](method, path, raw)
}

// decodeList parses a collection. An empty or null body is an empty list.
func decodeList[T any](body []byte) ([]T, error) {
	if len(body) == 0 {
		return []T{}, nil
	}
	raw := gjson.ParseBytes(body)
	if raw.Type == gjson.Null {
		return []T{}, nil
	}
	if !raw.IsArray() {
		switch {
		case raw.Get("results").Exists() && raw.Get("results").Type == gjson.Null,
			raw.Get("data").Exists() && raw.Get("data").Type == gjson.Null:
			return []T{}, nil
		case raw.Get("results").IsArray():
			raw = raw.Get("results")
		case raw.Get("data").IsArray():
			raw = raw.Get("data")
		default:
			return nil, fmt.Errorf("decode response: expected a list, got %s", describe(raw))
		}
	}
	out := []T{}
	if err := json.Unmarshal([]byte(raw.Raw), &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return out, nil
}

// decodeOne parses a single record. A singleton endpoint answering with an
// array of one is unwrapped; an empty body is ErrNoContent.
func decodeOne[T any](method, path string, body []byte) (T, error) {
	var zero T
	if len(body) == 0 {
		return zero, fmt.Errorf("%s %s: %w", method, path, ErrNoContent)
	}
	raw := gjson.ParseBytes(body)
	if raw.IsArray() {
		items := raw.Array()
		if len(items) == 0 {
			return zero, fmt.Errorf("%s %s: %w", method, path, ErrNoContent)
		}
		raw = items[0]
	} else if d := raw.Get("data"); d.IsObject() {
		raw = d
	}
	var out T
	if err := json.Unmarshal([]byte(raw.Raw), &out); err != nil {
		return zero, fmt.Errorf("decode response: %w", err)
	}
	return out, nil
}

func describe(r gjson.Result) string {
	switch r.Type {
	case gjson.JSON:
		return "an object"
	case gjson.String:
		return "a string"
	case gjson.Number:
		return "a number"
	case gjson.Null:
		return "null"
	default:
		return r.Type.String()
	}
}
