// Package otelchat adds OpenTelemetry tracing to an aichat.ChatClient.
package otelchat

import (
	"context"
	"iter"

	"github.com/skosovsky/aichat"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span and attribute names.
const (
	TracerName = "github.com/skosovsky/aichat/ext/otelchat"

	SpanChat       = "chat"
	SpanChatStream = "chat.stream"

	AttrRequestModel  = "gen_ai.request.model"
	AttrResponseModel = "gen_ai.response.model"
	AttrResponseID    = "gen_ai.response.id"
	AttrFinishReason  = "gen_ai.response.finish_reason"
	AttrInputTokens   = "gen_ai.usage.input_tokens"
	AttrOutputTokens  = "gen_ai.usage.output_tokens"
	AttrMessages      = "aichat.request.messages"
	AttrChunks        = "aichat.stream.chunks"
)

// Middleware returns an aichat.Middleware that records one span per call.
// A nil tracer uses the global provider.
func Middleware(tracer trace.Tracer) aichat.Middleware {
	if tracer == nil {
		tracer = otel.Tracer(TracerName)
	}
	return func(next aichat.ChatClient) aichat.ChatClient {
		return aichat.Funcs{
			Response: func(ctx context.Context, messages []aichat.Message, opts *aichat.Options) (*aichat.Response, error) {
				ctx, span := tracer.Start(ctx, SpanChat, trace.WithSpanKind(trace.SpanKindClient),
					trace.WithAttributes(requestAttrs(messages, opts)...))
				defer span.End()

				resp, err := next.GetResponse(ctx, messages, opts)
				if err != nil {
					fail(span, err)
					return nil, err
				}
				if resp != nil {
					span.SetAttributes(responseAttrs(resp.ResponseID, resp.ModelID, resp.FinishReason, resp.Usage)...)
				}
				return resp, nil
			},
			Streaming: func(ctx context.Context, messages []aichat.Message, opts *aichat.Options) iter.Seq2[*aichat.ResponseUpdate, error] {
				return func(yield func(*aichat.ResponseUpdate, error) bool) {
					ctx, span := tracer.Start(ctx, SpanChatStream, trace.WithSpanKind(trace.SpanKindClient),
						trace.WithAttributes(requestAttrs(messages, opts)...))
					defer span.End()

					var (
						chunks    int
						id, model string
						finish    *aichat.FinishReason
						usage     *aichat.Usage
					)
					for u, err := range next.GetStreamingResponse(ctx, messages, opts) {
						if err != nil {
							fail(span, err)
						} else if u != nil {
							chunks++
							if u.ResponseID != "" {
								id = u.ResponseID
							}
							if u.ModelID != "" {
								model = u.ModelID
							}
							if u.FinishReason != nil {
								finish = u.FinishReason
							}
							if u.Usage != nil {
								usage = u.Usage
							}
						}
						if !yield(u, err) {
							break
						}
					}
					span.SetAttributes(attribute.Int(AttrChunks, chunks))
					span.SetAttributes(responseAttrs(id, model, finish, usage)...)
				}
			},
		}
	}
}

func requestAttrs(messages []aichat.Message, opts *aichat.Options) []attribute.KeyValue {
	attrs := []attribute.KeyValue{attribute.Int(AttrMessages, len(messages))}
	if model := aichat.ModelOf(opts); model != "" {
		attrs = append(attrs, attribute.String(AttrRequestModel, model))
	}
	return attrs
}

func responseAttrs(id, model string, finish *aichat.FinishReason, usage *aichat.Usage) []attribute.KeyValue {
	var attrs []attribute.KeyValue
	if id != "" {
		attrs = append(attrs, attribute.String(AttrResponseID, id))
	}
	if model != "" {
		attrs = append(attrs, attribute.String(AttrResponseModel, model))
	}
	if finish != nil {
		attrs = append(attrs, attribute.String(AttrFinishReason, string(*finish)))
	}
	if usage != nil {
		attrs = append(attrs,
			attribute.Int64(AttrInputTokens, usage.InputTokens),
			attribute.Int64(AttrOutputTokens, usage.OutputTokens),
		)
	}
	return attrs
}

func fail(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
