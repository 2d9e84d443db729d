package adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/skosovsky/aichat"
)

// ProviderAdapter maps aichat messages and options to a provider request type and parses provider
// responses back. Implementations are stateless and safe for concurrent use.
type ProviderAdapter interface {
	// Translate converts messages and options into the provider request payload.
	// Callers must type-assert the result to the provider-specific type. opts may be nil.
	Translate(ctx context.Context, messages []aichat.Message, opts *aichat.Options) (any, error)
	// ParseResponse converts a raw provider (unary) response into a chat response.
	ParseResponse(ctx context.Context, raw any) (*aichat.Response, error)
	// ParseStreamChunk converts a single raw stream chunk into a chat response update.
	ParseStreamChunk(ctx context.Context, rawChunk any) (*aichat.ResponseUpdate, error)
}

// Sentinel errors for adapter implementations. Callers should use errors.Is.
// Errors returned by adapters wrap one of these and name the offending value.
var (
	// Configuration.
	ErrModelNotConfigured = errors.New("adapter: no model id in options and no default model configured")

	// Unsupported features (request build time).
	ErrNotImplemented         = errors.New("adapter: not implemented")
	ErrUnsupportedRole        = errors.New("adapter: unsupported message role for this provider")
	ErrUnsupportedContentType = errors.New("adapter: unsupported content type for this provider")
	ErrUnsupportedTool        = errors.New("adapter: unsupported tool type for this provider")
	ErrSeedOutOfRange         = errors.New("adapter: seed does not fit the provider seed type")
	ErrInvalidSchema          = errors.New("adapter: invalid JSON schema")
	ErrInvalidValue           = errors.New("adapter: value cannot be converted to a protocol value")

	// Protocol shape (response conversion time).
	ErrInvalidResponse = errors.New("adapter: raw response has unexpected type")
	ErrCandidateCount  = errors.New("adapter: response must contain exactly one candidate")
	ErrFinishReason    = errors.New("adapter: finish reason is not representable")
	ErrUnexpectedRole  = errors.New("adapter: unexpected role in response")
	ErrUnexpectedPart  = errors.New("adapter: unexpected part in response")
)

// ConfigurationError reports a request that cannot be sent because adapter configuration is missing.
// It is returned before any transport call. Use errors.Is(err, ErrModelNotConfigured).
type ConfigurationError struct {
	Setting string
	Err     error
}

// Error implements error.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("adapter: configuration %q: %v", e.Setting, e.Err)
}

// Unwrap returns the wrapped error for errors.Is/errors.As.
func (e *ConfigurationError) Unwrap() error { return e.Err }

// Compile-time check that ConfigurationError implements error.
var _ error = (*ConfigurationError)(nil)

// NotImplemented returns an ErrNotImplemented error naming feature.
func NotImplemented(feature string) error {
	return fmt.Errorf("%w: %s", ErrNotImplemented, feature)
}

// ResolveModel returns the model from opts when set, otherwise def. When neither is set it returns a
// *ConfigurationError wrapping ErrModelNotConfigured.
func ResolveModel(opts *aichat.Options, def string) (string, error) {
	if m := aichat.ModelOf(opts); m != "" {
		return m, nil
	}
	if def != "" {
		return def, nil
	}
	return "", &ConfigurationError{Setting: "model", Err: ErrModelNotConfigured}
}

// CheckUnsupportedOptions fails with ErrNotImplemented for generic option fields a stateless adapter
// cannot honor: conversation ids, multiple tool calls, raw representation factories and additional
// properties.
func CheckUnsupportedOptions(opts *aichat.Options) error {
	if opts == nil {
		return nil
	}
	if opts.ConversationID != nil {
		return NotImplemented("Options.ConversationID (stateful conversations)")
	}
	if opts.AllowMultipleToolCalls != nil {
		return NotImplemented("Options.AllowMultipleToolCalls")
	}
	if opts.RawRepresentationFactory != nil {
		return NotImplemented("Options.RawRepresentationFactory")
	}
	if opts.AdditionalProperties != nil {
		return NotImplemented("Options.AdditionalProperties")
	}
	return nil
}
