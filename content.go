package aichat

// Content is a sealed interface for message parts. Only package types implement it via isContent().
// Kind returns a stable name used in error messages.
type Content interface {
	Kind() string
	isContent()
}

// TextContent holds plain text.
type TextContent struct {
	Text string
}

// DataContent holds raw bytes with a media type (e.g. "image/png").
// Adapters pass Data through without copying; callers must not mutate it while a request is in flight.
type DataContent struct {
	Data      []byte
	MediaType string
}

// URIContent references remote media by URI.
type URIContent struct {
	URI       string
	MediaType string
}

// FunctionCallContent is a model request to call a function.
// Arguments may be nil when the call has no arguments.
type FunctionCallContent struct {
	CallID    string
	Name      string
	Arguments map[string]any
}

// FunctionResultContent is the result of a function call, matched by CallID.
// Result can be any JSON-marshalable value (object, scalar, slice, json.RawMessage).
type FunctionResultContent struct {
	CallID string
	Result any
}

func (TextContent) Kind() string           { return "text" }
func (DataContent) Kind() string           { return "data" }
func (URIContent) Kind() string            { return "uri" }
func (FunctionCallContent) Kind() string   { return "function_call" }
func (FunctionResultContent) Kind() string { return "function_result" }

func (TextContent) isContent()           {}
func (DataContent) isContent()           {}
func (URIContent) isContent()            {}
func (FunctionCallContent) isContent()   {}
func (FunctionResultContent) isContent() {}
