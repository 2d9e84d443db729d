package gemini

import (
	"context"
	"iter"
	"log/slog"

	"github.com/skosovsky/aichat"

	"github.com/google/uuid"
	"google.golang.org/genai"
)

// Generator issues GenerateContent calls. It is satisfied by *genai.Models and *transport.Handle.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	GenerateContentStream(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error]
}

// Client implements aichat.ChatClient over a Generator. It holds only immutable configuration and is
// safe for concurrent use.
type Client struct {
	gen     Generator
	adapter *Adapter
	logger  *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithLogger sets the logger used for decoded transport failures (debug level).
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

// NewClient returns a Client sending requests built by a through gen. A nil a uses New().
func NewClient(gen Generator, a *Adapter, opts ...ClientOption) (*Client, error) {
	if gen == nil {
		return nil, aichat.ErrNilClient
	}
	if a == nil {
		a = New()
	}
	c := &Client{gen: gen, adapter: a, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c, nil
}

// Generator returns the underlying transport.
func (c *Client) Generator() Generator { return c.gen }

// Adapter returns the request/response adapter.
func (c *Client) Adapter() *Adapter { return c.adapter }

// GetResponse builds one request, performs one unary call and converts the result.
func (c *Client) GetResponse(ctx context.Context, messages []aichat.Message, opts *aichat.Options) (*aichat.Response, error) {
	req, err := c.adapter.BuildRequest(messages, opts)
	if err != nil {
		return nil, err
	}
	resp, err := c.gen.GenerateContent(ctx, req.Model, req.Contents, req.Config)
	if err != nil {
		return nil, c.transportError(ctx, req.Model, err)
	}
	out, err := c.adapter.ConvertResponse(resp)
	if err != nil {
		return nil, err
	}
	if out.ModelID == "" {
		out.ModelID = req.Model
	}
	return out, nil
}

// GetStreamingResponse builds one request and returns a lazy sequence converting one chunk per pull.
// Nothing is sent until the sequence is ranged over. All updates of one call share a MessageID.
func (c *Client) GetStreamingResponse(ctx context.Context, messages []aichat.Message, opts *aichat.Options) iter.Seq2[*aichat.ResponseUpdate, error] {
	return func(yield func(*aichat.ResponseUpdate, error) bool) {
		req, err := c.adapter.BuildRequest(messages, opts)
		if err != nil {
			yield(nil, err)
			return
		}
		messageID := uuid.NewString()
		for chunk, err := range c.gen.GenerateContentStream(ctx, req.Model, req.Contents, req.Config) {
			if err != nil {
				yield(nil, c.transportError(ctx, req.Model, err))
				return
			}
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			u, err := c.adapter.ConvertStreamChunk(chunk)
			if err != nil {
				yield(nil, err)
				return
			}
			u.MessageID = messageID
			if u.ModelID == "" {
				u.ModelID = req.Model
			}
			if !yield(u, nil) {
				return
			}
		}
	}
}

func (c *Client) transportError(ctx context.Context, model string, err error) error {
	decoded := DecodeTransportError(err)
	if te, ok := decoded.(*TransportError); ok {
		c.logger.LogAttrs(ctx, slog.LevelDebug, "gemini transport error",
			slog.String("model", model),
			slog.String("code", te.Code.String()),
			slog.String("reason", te.Info.GetReason()),
			slog.String("domain", te.Info.GetDomain()),
		)
	}
	return decoded
}

var _ aichat.ChatClient = (*Client)(nil)
