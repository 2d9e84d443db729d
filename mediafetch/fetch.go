// Package mediafetch inlines remote media for providers that only accept inline bytes.
// Its middleware replaces aichat.URIContent parts with aichat.DataContent before the request
// reaches the wrapped client.
package mediafetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/skosovsky/aichat"
)

// DefaultMaxBodySize is the default download limit (10 MiB).
const DefaultMaxBodySize = 10 << 20

var (
	// ErrUnsafeScheme is returned when the URL scheme is not https.
	ErrUnsafeScheme = errors.New("mediafetch: only https scheme is allowed")
	// ErrBodyTooLarge is returned when the response exceeds the size limit.
	ErrBodyTooLarge = errors.New("mediafetch: response body exceeds size limit")
	// ErrUnsupportedType is returned when the media type matches none of the allowed prefixes.
	ErrUnsupportedType = errors.New("mediafetch: unsupported content type")
)

// DefaultAllowedPrefixes are the media type prefixes accepted by a zero Fetcher.
var DefaultAllowedPrefixes = []string{"image/", "audio/", "video/", "application/pdf", "text/"}

// Fetcher downloads media over https. The zero value uses http.DefaultClient,
// DefaultMaxBodySize and DefaultAllowedPrefixes.
type Fetcher struct {
	Client          *http.Client
	MaxBytes        int64
	AllowedPrefixes []string
}

// Fetch downloads c.URI and returns its bytes. c.MediaType wins over the response Content-Type.
func (f *Fetcher) Fetch(ctx context.Context, c aichat.URIContent) (aichat.DataContent, error) {
	u, err := url.Parse(c.URI)
	if err != nil {
		return aichat.DataContent{}, fmt.Errorf("mediafetch: parse URL: %w", err)
	}
	if u.Scheme != "https" {
		return aichat.DataContent{}, fmt.Errorf("%w: %q", ErrUnsafeScheme, u.Scheme)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URI, nil)
	if err != nil {
		return aichat.DataContent{}, fmt.Errorf("mediafetch: new request: %w", err)
	}
	resp, err := f.client().Do(req)
	if err != nil {
		return aichat.DataContent{}, fmt.Errorf("mediafetch: do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return aichat.DataContent{}, fmt.Errorf("mediafetch: %s: status %s", c.URI, resp.Status)
	}

	mediaType := c.MediaType
	if mediaType == "" {
		mediaType = resp.Header.Get("Content-Type")
		if idx := strings.Index(mediaType, ";"); idx >= 0 {
			mediaType = strings.TrimSpace(mediaType[:idx])
		}
	}
	if !f.allowed(mediaType) {
		return aichat.DataContent{}, fmt.Errorf("%w: %q", ErrUnsupportedType, mediaType)
	}

	limit := f.maxBytes()
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return aichat.DataContent{}, fmt.Errorf("mediafetch: read body: %w", err)
	}
	if int64(len(data)) > limit {
		return aichat.DataContent{}, ErrBodyTooLarge
	}
	return aichat.DataContent{Data: data, MediaType: mediaType}, nil
}

// Inline returns a copy of messages with every URIContent replaced by the downloaded DataContent.
// Messages without URI parts share their Contents slice with the input.
func (f *Fetcher) Inline(ctx context.Context, messages []aichat.Message) ([]aichat.Message, error) {
	out := slices.Clone(messages)
	for i, m := range out {
		if !slices.ContainsFunc(m.Contents, isURI) {
			continue
		}
		contents := slices.Clone(m.Contents)
		for j, c := range contents {
			uc, ok := c.(aichat.URIContent)
			if !ok {
				continue
			}
			dc, err := f.Fetch(ctx, uc)
			if err != nil {
				return nil, fmt.Errorf("message %d part %d: %w", i, j, err)
			}
			contents[j] = dc
		}
		out[i].Contents = contents
	}
	return out, nil
}

// Middleware returns an aichat.Middleware that inlines URI parts before each call.
func (f *Fetcher) Middleware() aichat.Middleware {
	return func(next aichat.ChatClient) aichat.ChatClient {
		return aichat.Funcs{
			Response: func(ctx context.Context, messages []aichat.Message, opts *aichat.Options) (*aichat.Response, error) {
				inlined, err := f.Inline(ctx, messages)
				if err != nil {
					return nil, err
				}
				return next.GetResponse(ctx, inlined, opts)
			},
			Streaming: func(ctx context.Context, messages []aichat.Message, opts *aichat.Options) iter.Seq2[*aichat.ResponseUpdate, error] {
				return func(yield func(*aichat.ResponseUpdate, error) bool) {
					inlined, err := f.Inline(ctx, messages)
					if err != nil {
						yield(nil, err)
						return
					}
					for u, err := range next.GetStreamingResponse(ctx, inlined, opts) {
						if !yield(u, err) {
							return
						}
					}
				}
			},
		}
	}
}

func (f *Fetcher) client() *http.Client {
	if f.Client != nil {
		return f.Client
	}
	return http.DefaultClient
}

func (f *Fetcher) maxBytes() int64 {
	if f.MaxBytes > 0 {
		return f.MaxBytes
	}
	return DefaultMaxBodySize
}

func (f *Fetcher) allowed(mediaType string) bool {
	prefixes := f.AllowedPrefixes
	if prefixes == nil {
		prefixes = DefaultAllowedPrefixes
	}
	for _, p := range prefixes {
		if strings.HasPrefix(mediaType, p) {
			return true
		}
	}
	return false
}

func isURI(c aichat.Content) bool {
	_, ok := c.(aichat.URIContent)
	return ok
}
