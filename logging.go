package aichat

import (
	"context"
	"iter"
	"log/slog"
	"time"
)

// Logging returns middleware that emits one structured log entry per call. The model attribute is the
// requested model, or the one reported by the provider when the request left it unset.
// Streaming calls are logged when the sequence ends (exhausted, failed or abandoned by the caller).
func Logging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next ChatClient) ChatClient {
		return Funcs{
			Response: func(ctx context.Context, messages []Message, opts *Options) (*Response, error) {
				start := time.Now()
				resp, err := next.GetResponse(ctx, messages, opts)
				model := ModelOf(opts)
				if model == "" && resp != nil {
					model = resp.ModelID
				}
				attrs := []slog.Attr{
					slog.String("model", model),
					slog.Bool("stream", false),
					slog.Int("messages", len(messages)),
					slog.Duration("duration", time.Since(start)),
				}
				if resp != nil && resp.FinishReason != nil {
					attrs = append(attrs, slog.String("finish_reason", string(*resp.FinishReason)))
				}
				logResult(ctx, logger, err, attrs)
				return resp, err
			},
			Streaming: func(ctx context.Context, messages []Message, opts *Options) iter.Seq2[*ResponseUpdate, error] {
				return func(yield func(*ResponseUpdate, error) bool) {
					start := time.Now()
					model := ModelOf(opts)
					var (
						chunks int
						finish *FinishReason
						err    error
					)
					for u, e := range next.GetStreamingResponse(ctx, messages, opts) {
						if e != nil {
							err = e
						} else {
							chunks++
							if u != nil && u.FinishReason != nil {
								finish = u.FinishReason
							}
							if model == "" && u != nil {
								model = u.ModelID
							}
						}
						if !yield(u, e) {
							break
						}
					}
					attrs := []slog.Attr{
						slog.String("model", model),
						slog.Bool("stream", true),
						slog.Int("messages", len(messages)),
						slog.Int("chunks", chunks),
						slog.Duration("duration", time.Since(start)),
					}
					if finish != nil {
						attrs = append(attrs, slog.String("finish_reason", string(*finish)))
					}
					logResult(ctx, logger, err, attrs)
				}
			},
		}
	}
}

func logResult(ctx context.Context, logger *slog.Logger, err error, attrs []slog.Attr) {
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		logger.LogAttrs(ctx, slog.LevelError, "chat request failed", attrs...)
		return
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "chat request completed", attrs...)
}

// ModelOf returns the model id requested in opts, or "" when opts is nil or unset.
func ModelOf(opts *Options) string {
	if opts == nil {
		return ""
	}
	return opts.ModelID
}
