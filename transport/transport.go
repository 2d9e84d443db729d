package transport

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// Header names injected on every outbound call.
const (
	APIKeyHeader       = "x-goog-api-key"
	QuotaProjectHeader = "x-goog-user-project"
)

// Sentinel errors for transport construction. Callers should use errors.Is.
var (
	ErrMissingAPIKey   = errors.New("transport: API key is required")
	ErrInvalidEndpoint = errors.New("transport: endpoint must be an absolute http(s) URL")
)

// Interceptor wraps the outbound round-tripper. Interceptors see every request before rate limiting
// and credential injection.
type Interceptor func(next http.RoundTripper) http.RoundTripper

// Builder collects transport settings. The zero value plus an APIKey targets the public Gemini API.
type Builder struct {
	// Endpoint overrides the service base URL (e.g. a regional endpoint or a test server).
	Endpoint string
	APIKey   string
	// QuotaProject bills requests to a project other than the one owning the key.
	QuotaProject string
	// APIVersion selects the REST version (e.g. "v1beta"); empty uses the SDK default.
	APIVersion string
	// Timeout bounds each whole call, including reading a stream. Zero means no client-side timeout.
	Timeout      time.Duration
	Interceptors []Interceptor
	Limiter      *rate.Limiter
	// HTTPClient is copied, not mutated; its Transport (or http.DefaultTransport) is the innermost hop.
	HTTPClient *http.Client
}

// Handle is an immutable GenerateContent transport.
type Handle struct {
	client *genai.Client
}

// Build validates the settings and creates the handle.
func (b Builder) Build(ctx context.Context) (*Handle, error) {
	if strings.TrimSpace(b.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if b.Endpoint != "" {
		u, err := url.Parse(b.Endpoint)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidEndpoint, b.Endpoint)
		}
	}
	cfg := &genai.ClientConfig{
		APIKey:     b.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: b.httpClient(),
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    b.Endpoint,
			APIVersion: b.APIVersion,
		},
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("transport: create client: %w", err)
	}
	return &Handle{client: client}, nil
}

func (b Builder) httpClient() *http.Client {
	c := &http.Client{}
	if b.HTTPClient != nil {
		*c = *b.HTTPClient
	}
	if b.Timeout > 0 {
		c.Timeout = b.Timeout
	}
	c.Transport = b.roundTripper(c.Transport)
	return c
}

// roundTripper assembles interceptors -> limiter -> headers -> base.
func (b Builder) roundTripper(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	headers := http.Header{}
	headers.Set(APIKeyHeader, b.APIKey)
	if b.QuotaProject != "" {
		headers.Set(QuotaProjectHeader, b.QuotaProject)
	}
	var rt http.RoundTripper = &headerTransport{next: base, headers: headers}
	if b.Limiter != nil {
		rt = &limitTransport{next: rt, limiter: b.Limiter}
	}
	for i := len(b.Interceptors) - 1; i >= 0; i-- {
		if b.Interceptors[i] != nil {
			rt = b.Interceptors[i](rt)
		}
	}
	return rt
}

// Client returns the underlying genai client.
func (h *Handle) Client() *genai.Client { return h.client }

// GenerateContent performs a unary call.
func (h *Handle) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return h.client.Models.GenerateContent(ctx, model, contents, config)
}

// GenerateContentStream performs a server-streaming call. The request is sent when the sequence is ranged.
func (h *Handle) GenerateContentStream(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error] {
	return h.client.Models.GenerateContentStream(ctx, model, contents, config)
}

// NewLimiter returns a limiter allowing rps requests per second with the given burst, or nil when
// rps is not positive. A burst below 1 is raised to 1.
func NewLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(rps), max(burst, 1))
}

type headerTransport struct {
	next    http.RoundTripper
	headers http.Header
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, vs := range t.headers {
		req.Header[k] = append([]string(nil), vs...)
	}
	return t.next.RoundTrip(req)
}

type limitTransport struct {
	next    http.RoundTripper
	limiter *rate.Limiter
}

func (t *limitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		if req.Body != nil {
			_ = req.Body.Close()
		}
		return nil, fmt.Errorf("transport: rate limiter wait: %w", err)
	}
	return t.next.RoundTrip(req)
}
