package aichat

import (
	"encoding/json"
	"maps"
	"slices"
)

// Options configures a single chat request. Every field is optional: a nil pointer, nil slice
// or nil interface means "not set" and adapters leave the provider default untouched.
type Options struct {
	ModelID      string
	Instructions *string

	Temperature      *float32
	TopP             *float32
	TopK             *int32
	FrequencyPenalty *float32
	PresencePenalty  *float32
	Seed             *int64
	MaxOutputTokens  *int32
	StopSequences    []string

	ResponseFormat ResponseFormat
	Tools          []Tool
	ToolMode       ToolMode

	// Fields below exist in the generic model but are not supported by every provider;
	// adapters reject them explicitly instead of ignoring them.
	ConversationID           *string
	AllowMultipleToolCalls   *bool
	RawRepresentationFactory func(ChatClient) any
	AdditionalProperties     map[string]any
}

// Option mutates Options (functional options pattern).
type Option func(*Options)

// NewOptions applies opts to an empty Options value.
func NewOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithModel sets the model identifier.
func WithModel(id string) Option {
	return func(o *Options) { o.ModelID = id }
}

// WithInstructions sets the system prompt text.
func WithInstructions(text string) Option {
	return func(o *Options) { o.Instructions = &text }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float32) Option {
	return func(o *Options) { o.Temperature = &t }
}

// WithTopP sets nucleus sampling.
func WithTopP(p float32) Option {
	return func(o *Options) { o.TopP = &p }
}

// WithTopK sets top-k sampling.
func WithTopK(k int32) Option {
	return func(o *Options) { o.TopK = &k }
}

// WithFrequencyPenalty sets the frequency penalty.
func WithFrequencyPenalty(p float32) Option {
	return func(o *Options) { o.FrequencyPenalty = &p }
}

// WithPresencePenalty sets the presence penalty.
func WithPresencePenalty(p float32) Option {
	return func(o *Options) { o.PresencePenalty = &p }
}

// WithSeed sets the sampling seed.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = &seed }
}

// WithMaxOutputTokens limits the response length.
func WithMaxOutputTokens(n int32) Option {
	return func(o *Options) { o.MaxOutputTokens = &n }
}

// WithStopSequences sets the stop sequences (order preserved).
func WithStopSequences(stop ...string) Option {
	return func(o *Options) { o.StopSequences = slices.Clone(stop) }
}

// WithResponseFormat sets the desired response format.
func WithResponseFormat(f ResponseFormat) Option {
	return func(o *Options) { o.ResponseFormat = f }
}

// WithTools appends tool declarations.
func WithTools(tools ...Tool) Option {
	return func(o *Options) { o.Tools = append(o.Tools, tools...) }
}

// WithToolMode sets how the model may invoke tools.
func WithToolMode(m ToolMode) Option {
	return func(o *Options) { o.ToolMode = m }
}

// Clone returns a copy with cloned slices and maps so callers can reuse a base Options safely.
func (o *Options) Clone() *Options {
	if o == nil {
		return nil
	}
	out := *o
	out.StopSequences = slices.Clone(o.StopSequences)
	out.Tools = slices.Clone(o.Tools)
	if o.AdditionalProperties != nil {
		out.AdditionalProperties = maps.Clone(o.AdditionalProperties)
	}
	return &out
}

// ResponseFormat is a sealed interface: ResponseFormatText or ResponseFormatJSON.
type ResponseFormat interface {
	isResponseFormat()
}

// ResponseFormatText requests plain text output.
type ResponseFormatText struct{}

// ResponseFormatJSON requests JSON output, optionally constrained by a JSON Schema.
type ResponseFormatJSON struct {
	Schema json.RawMessage
}

func (ResponseFormatText) isResponseFormat() {}
func (ResponseFormatJSON) isResponseFormat() {}

// ToolMode is a sealed interface: AutoToolMode, NoneToolMode or RequiredToolMode.
type ToolMode interface {
	isToolMode()
}

// AutoToolMode lets the model decide whether to call tools.
type AutoToolMode struct{}

// NoneToolMode forbids tool calls.
type NoneToolMode struct{}

// RequiredToolMode forces a tool call. An empty FunctionName means any tool.
type RequiredToolMode struct {
	FunctionName string
}

func (AutoToolMode) isToolMode()     {}
func (NoneToolMode) isToolMode()     {}
func (RequiredToolMode) isToolMode() {}
