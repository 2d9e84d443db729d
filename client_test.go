package aichat

import (
	"bytes"
	"context"
	"errors"
	"iter"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func streamOf(updates ...*ResponseUpdate) iter.Seq2[*ResponseUpdate, error] {
	return func(yield func(*ResponseUpdate, error) bool) {
		for _, u := range updates {
			if !yield(u, nil) {
				return
			}
		}
	}
}

func TestChain_Order(t *testing.T) {
	t.Parallel()
	var trace []string
	tag := func(name string) Middleware {
		return func(next ChatClient) ChatClient {
			return Funcs{Response: func(ctx context.Context, msgs []Message, opts *Options) (*Response, error) {
				trace = append(trace, name)
				return next.GetResponse(ctx, msgs, opts)
			}}
		}
	}
	base := Funcs{Response: func(context.Context, []Message, *Options) (*Response, error) {
		trace = append(trace, "base")
		return &Response{}, nil
	}}
	_, err := Chain(base, tag("a"), tag("b")).GetResponse(t.Context(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "base"}, trace)
}

func TestChain_NilClient(t *testing.T) {
	t.Parallel()
	c := Chain(nil)
	_, err := c.GetResponse(t.Context(), nil, nil)
	require.ErrorIs(t, err, ErrNilClient)
	for _, err := range c.GetStreamingResponse(t.Context(), nil, nil) {
		require.ErrorIs(t, err, ErrNilClient)
	}
}

func TestFuncs_Unset(t *testing.T) {
	t.Parallel()
	_, err := Funcs{}.GetResponse(t.Context(), nil, nil)
	require.ErrorIs(t, err, ErrNilClient)
	n := 0
	for _, err := range (Funcs{}).GetStreamingResponse(t.Context(), nil, nil) {
		n++
		require.ErrorIs(t, err, ErrNilClient)
	}
	assert.Equal(t, 1, n)
}

func TestLogging_Unary(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	stop := FinishReasonStop
	base := Funcs{Response: func(context.Context, []Message, *Options) (*Response, error) {
		return &Response{FinishReason: &stop}, nil
	}}
	c := Chain(base, Logging(logger))
	_, err := c.GetResponse(t.Context(), []Message{UserMessage("hi")}, NewOptions(WithModel("m1")))
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, `"msg":"chat request completed"`)
	assert.Contains(t, out, `"model":"m1"`)
	assert.Contains(t, out, `"finish_reason":"stop"`)
	assert.Contains(t, out, `"stream":false`)
}

func TestLogging_ProviderModelWhenUnset(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	c := Chain(Funcs{
		Response: func(context.Context, []Message, *Options) (*Response, error) {
			return &Response{ModelID: "gemini-default"}, nil
		},
		Streaming: func(context.Context, []Message, *Options) iter.Seq2[*ResponseUpdate, error] {
			return streamOf(&ResponseUpdate{}, &ResponseUpdate{ModelID: "gemini-stream"})
		},
	}, Logging(logger))

	_, err := c.GetResponse(t.Context(), nil, nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"model":"gemini-default"`)

	buf.Reset()
	for _, err := range c.GetStreamingResponse(t.Context(), nil, &Options{}) {
		require.NoError(t, err)
	}
	assert.Contains(t, buf.String(), `"model":"gemini-stream"`)
}

func TestLogging_UnaryError(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	boom := errors.New("boom")
	c := Chain(Funcs{Response: func(context.Context, []Message, *Options) (*Response, error) {
		return nil, boom
	}}, Logging(logger))
	_, err := c.GetResponse(t.Context(), nil, nil)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, buf.String(), `"level":"ERROR"`)
	assert.Contains(t, buf.String(), `"error":"boom"`)
}

func TestLogging_Streaming(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	length := FinishReasonLength
	c := Chain(Funcs{Streaming: func(context.Context, []Message, *Options) iter.Seq2[*ResponseUpdate, error] {
		return streamOf(
			&ResponseUpdate{Contents: []Content{TextContent{Text: "a"}}},
			&ResponseUpdate{Contents: []Content{TextContent{Text: "b"}}, FinishReason: &length},
		)
	}}, Logging(logger))

	var text string
	for u, err := range c.GetStreamingResponse(t.Context(), nil, nil) {
		require.NoError(t, err)
		text += u.Text()
	}
	assert.Equal(t, "ab", text)
	out := buf.String()
	assert.Contains(t, out, `"chunks":2`)
	assert.Contains(t, out, `"finish_reason":"length"`)
	assert.Contains(t, out, `"stream":true`)
}

func TestLogging_StreamingEarlyBreak(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	c := Chain(Funcs{Streaming: func(context.Context, []Message, *Options) iter.Seq2[*ResponseUpdate, error] {
		return streamOf(&ResponseUpdate{}, &ResponseUpdate{}, &ResponseUpdate{})
	}}, Logging(nil), Logging(logger))
	for range c.GetStreamingResponse(t.Context(), nil, nil) {
		break
	}
	assert.Contains(t, buf.String(), `"chunks":1`)
}
