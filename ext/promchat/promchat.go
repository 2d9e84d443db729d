// Package promchat exports Prometheus metrics for an aichat.ChatClient.
package promchat

import (
	"context"
	"iter"
	"time"

	"github.com/skosovsky/aichat"

	"github.com/prometheus/client_golang/prometheus"
)

// Buckets covers LLM latencies from 100ms to 120s.
var Buckets = []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}

// Status label values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Metrics holds the collectors registered by New.
type Metrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	Chunks   *prometheus.CounterVec
	Tokens   *prometheus.CounterVec
}

// New creates the aichat collectors and registers them with reg (prometheus.DefaultRegisterer when nil).
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aichat_requests_total",
				Help: "Chat requests by model, mode and outcome",
			},
			[]string{"model", "stream", "status"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "aichat_request_duration_seconds",
				Help:    "Chat request duration",
				Buckets: Buckets,
			},
			[]string{"model", "stream"},
		),
		Chunks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aichat_stream_chunks_total",
				Help: "Streamed response updates",
			},
			[]string{"model"},
		),
		Tokens: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aichat_tokens_total",
				Help: "Token count by direction (input/output)",
			},
			[]string{"model", "direction"},
		),
	}
	for _, c := range []prometheus.Collector{m.Requests, m.Duration, m.Chunks, m.Tokens} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Middleware returns an aichat.Middleware recording m. The model label is the requested model,
// or the model reported by the provider when the request left it unset.
func (m *Metrics) Middleware() aichat.Middleware {
	return func(next aichat.ChatClient) aichat.ChatClient {
		return aichat.Funcs{
			Response: func(ctx context.Context, messages []aichat.Message, opts *aichat.Options) (*aichat.Response, error) {
				start := time.Now()
				resp, err := next.GetResponse(ctx, messages, opts)
				model := aichat.ModelOf(opts)
				var usage *aichat.Usage
				if resp != nil {
					model = orDefault(model, resp.ModelID)
					usage = resp.Usage
				}
				m.observe(model, "false", start, err, usage)
				return resp, err
			},
			Streaming: func(ctx context.Context, messages []aichat.Message, opts *aichat.Options) iter.Seq2[*aichat.ResponseUpdate, error] {
				return func(yield func(*aichat.ResponseUpdate, error) bool) {
					start := time.Now()
					model := aichat.ModelOf(opts)
					var (
						chunks  int
						usage   *aichat.Usage
						failure error
					)
					for u, err := range next.GetStreamingResponse(ctx, messages, opts) {
						if err != nil {
							failure = err
						} else if u != nil {
							chunks++
							model = orDefault(model, u.ModelID)
							if u.Usage != nil {
								usage = u.Usage
							}
						}
						if !yield(u, err) {
							break
						}
					}
					m.Chunks.WithLabelValues(model).Add(float64(chunks))
					m.observe(model, "true", start, failure, usage)
				}
			},
		}
	}
}

func (m *Metrics) observe(model, stream string, start time.Time, err error, usage *aichat.Usage) {
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	m.Requests.WithLabelValues(model, stream, status).Inc()
	m.Duration.WithLabelValues(model, stream).Observe(time.Since(start).Seconds())
	if usage != nil {
		m.Tokens.WithLabelValues(model, "input").Add(float64(usage.InputTokens))
		m.Tokens.WithLabelValues(model, "output").Add(float64(usage.OutputTokens))
	}
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
