package aichat

import (
	"context"
	"iter"
)

// ChatClient is the vendor-neutral chat contract implemented by provider clients.
// Implementations must be safe for concurrent use.
type ChatClient interface {
	// GetResponse sends messages and returns the complete response. opts may be nil.
	GetResponse(ctx context.Context, messages []Message, opts *Options) (*Response, error)
	// GetStreamingResponse returns a lazy, single-pass sequence of updates. The sequence stops after
	// the first non-nil error; ctx cancellation is reported as an error.
	GetStreamingResponse(ctx context.Context, messages []Message, opts *Options) iter.Seq2[*ResponseUpdate, error]
}

// Middleware wraps a ChatClient to add cross-cutting behavior.
type Middleware func(ChatClient) ChatClient

// Chain wraps client with middlewares. Chain(c, a, b) produces a(b(c)): the first middleware is the
// outermost wrapper. A nil client yields a client that fails every call with ErrNilClient.
func Chain(client ChatClient, middlewares ...Middleware) ChatClient {
	if client == nil {
		client = nilClient{}
	}
	for i := len(middlewares) - 1; i >= 0; i-- {
		client = middlewares[i](client)
	}
	return client
}

// Funcs adapts plain functions to ChatClient. A nil function fails with ErrNilClient.
type Funcs struct {
	Response  func(ctx context.Context, messages []Message, opts *Options) (*Response, error)
	Streaming func(ctx context.Context, messages []Message, opts *Options) iter.Seq2[*ResponseUpdate, error]
}

// GetResponse implements ChatClient.
func (f Funcs) GetResponse(ctx context.Context, messages []Message, opts *Options) (*Response, error) {
	if f.Response == nil {
		return nil, ErrNilClient
	}
	return f.Response(ctx, messages, opts)
}

// GetStreamingResponse implements ChatClient.
func (f Funcs) GetStreamingResponse(ctx context.Context, messages []Message, opts *Options) iter.Seq2[*ResponseUpdate, error] {
	if f.Streaming == nil {
		return ErrorSeq(ErrNilClient)
	}
	return f.Streaming(ctx, messages, opts)
}

// ErrorSeq returns a sequence that yields err once.
func ErrorSeq(err error) iter.Seq2[*ResponseUpdate, error] {
	return func(yield func(*ResponseUpdate, error) bool) {
		yield(nil, err)
	}
}

type nilClient struct{}

func (nilClient) GetResponse(context.Context, []Message, *Options) (*Response, error) {
	return nil, ErrNilClient
}

func (nilClient) GetStreamingResponse(context.Context, []Message, *Options) iter.Seq2[*ResponseUpdate, error] {
	return ErrorSeq(ErrNilClient)
}

var (
	_ ChatClient = Funcs{}
	_ ChatClient = nilClient{}
)
