// Package userapi is a typed client for the user-management REST API.
//
// A Client holds an immutable configuration and a single transport. Two
// endpoint groups are reachable through Client.Users: the JPA backend under
// /users and the MyBatis backend under /mybatis/users.
package userapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/oklog/ulid/v2"
)

const (
	// DefaultBaseURL points at a backend on the local machine.
	DefaultBaseURL = "http://localhost:8080/api"
	// DefaultTimeout bounds every request end to end.
	DefaultTimeout = 10 * time.Second
	// DialTimeout is the connection timeout.
	DialTimeout = 5 * time.Second

	contentTypeJSON = "application/json"
)

// Config holds the client settings. It is copied at construction.
type Config struct {
	// BaseURL is the absolute URL every request path is appended to.
	BaseURL string
	Timeout time.Duration
	// Headers are sent on every request in addition to
	// Content-Type: application/json, which cannot be overridden.
	Headers map[string]string
	// Transport replaces the default round tripper, mainly for tests.
	Transport http.RoundTripper
	// Observer receives call events. Nil means no observation.
	Observer Observer
	// Logger receives the transport's own warnings. Nil means slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns the standard client configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// Client issues requests against the user API. It is safe for concurrent use.
type Client struct {
	http     *resty.Client
	baseURL  string
	observer Observer
}

// Response is a raw successful response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// New creates a Client from cfg.
func New(cfg Config) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if !base.IsAbs() || base.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: must be absolute", cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Observer == nil {
		cfg.Observer = NopObserver{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")

	rc := resty.NewWithClient(newHTTPClient(cfg.Transport)).
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal).
		SetLogger(restyLogger{logger: cfg.Logger.With("component", "userapi.transport")})
	for k, v := range cfg.Headers {
		rc.SetHeader(k, v)
	}
	rc.SetHeader("Content-Type", contentTypeJSON)

	return &Client{
		http:     rc,
		baseURL:  baseURL,
		observer: cfg.Observer,
	}, nil
}

// newHTTPClient creates the underlying HTTP client. The overall timeout is
// applied by resty.
func newHTTPClient(transport http.RoundTripper) *http.Client {
	if transport == nil {
		transport = &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   DialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout: 5 * time.Second,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		}
	}
	return &http.Client{Transport: transport}
}

// Users returns the operation set for backend.
func (c *Client) Users(backend Backend) *Users {
	return &Users{client: c, backend: backend}
}

// Do sends one request and returns the raw response. path is relative to
// the base URL; query and body may be nil. Non-2xx responses are returned
// as *APIError; transport errors are returned unchanged.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any) (*Response, error) {
	return c.send(ctx, request{
		operation: "do",
		method:    method,
		path:      path,
		query:     query,
		body:      body,
	}, nil)
}

type request struct {
	backend   string
	operation string
	method    string
	path      string
	query     url.Values
	body      any
}

// send runs one call through the observers. When out is non-nil a 2xx body
// is decoded into it before the call is reported as complete.
func (c *Client) send(ctx context.Context, req request, out any) (*Response, error) {
	call := Call{
		ID:        ulid.Make().String(),
		Backend:   req.backend,
		Operation: req.operation,
		Method:    req.method,
		URL:       c.resolve(req.path, req.query),
	}
	guard(func() { c.observer.OnRequest(ctx, call) })

	r := c.http.R().SetContext(ctx)
	if len(req.query) > 0 {
		r.SetQueryParamsFromValues(req.query)
	}
	if req.body != nil {
		r.SetBody(req.body)
	}

	start := time.Now()
	resp, err := r.Execute(req.method, req.path)
	elapsed := time.Since(start)

	if err != nil {
		c.fail(ctx, call, Failure{Payload: err.Error(), Err: err, Elapsed: elapsed})
		return nil, err
	}

	res := &Response{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Body:       resp.Body(),
	}

	if !resp.IsSuccess() {
		apiErr := newAPIError(req.method, call.URL, res.StatusCode, res.Body)
		c.fail(ctx, call, Failure{
			StatusCode: res.StatusCode,
			Payload:    apiErr.Payload(),
			Err:        apiErr,
			Elapsed:    elapsed,
		})
		return nil, apiErr
	}

	if out != nil && len(res.Body) > 0 {
		if err := res.Decode(out); err != nil {
			c.fail(ctx, call, Failure{
				StatusCode: res.StatusCode,
				Payload:    err.Error(),
				Err:        err,
				Elapsed:    elapsed,
			})
			return nil, err
		}
	}

	guard(func() {
		c.observer.OnResponse(ctx, call, Outcome{StatusCode: res.StatusCode, Elapsed: elapsed})
	})
	return res, nil
}

func (c *Client) fail(ctx context.Context, call Call, f Failure) {
	guard(func() { c.observer.OnError(ctx, call, f) })
}

// resolve mirrors how the transport joins the base URL, path and query.
func (c *Client) resolve(path string, query url.Values) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// IsTimeout reports whether err is a transport timeout.
func IsTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
