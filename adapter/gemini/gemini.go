package gemini

import (
	"context"
	"fmt"
	"slices"

	"github.com/skosovsky/aichat"
	"github.com/skosovsky/aichat/adapter"
	"github.com/skosovsky/aichat/internal/cast"

	"google.golang.org/genai"
)

// Request is a GenerateContent call: target model, turns and configuration.
type Request struct {
	Model    string
	Contents []*genai.Content
	Config   *genai.GenerateContentConfig
}

// Adapter implements adapter.ProviderAdapter for the Gemini GenerateContent API.
// Translate returns *gemini.Request; ParseResponse and ParseStreamChunk expect *genai.GenerateContentResponse.
// An Adapter is immutable after New and safe for concurrent use.
type Adapter struct {
	defaultModel string
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithDefaultModel sets the model used when request options do not name one.
func WithDefaultModel(model string) Option {
	return func(a *Adapter) { a.defaultModel = model }
}

// New returns an Adapter.
func New(opts ...Option) *Adapter {
	a := &Adapter{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// DefaultModel returns the configured default model ("" when unset).
func (a *Adapter) DefaultModel() string { return a.defaultModel }

// Translate converts messages and options into *Request.
func (a *Adapter) Translate(_ context.Context, messages []aichat.Message, opts *aichat.Options) (any, error) {
	return a.BuildRequest(messages, opts)
}

// ParseResponse converts *genai.GenerateContentResponse into *aichat.Response.
func (a *Adapter) ParseResponse(_ context.Context, raw any) (*aichat.Response, error) {
	resp, ok := raw.(*genai.GenerateContentResponse)
	if !ok {
		return nil, fmt.Errorf("%w: %T", adapter.ErrInvalidResponse, raw)
	}
	return a.ConvertResponse(resp)
}

// ParseStreamChunk converts one streamed *genai.GenerateContentResponse into *aichat.ResponseUpdate.
func (a *Adapter) ParseStreamChunk(_ context.Context, rawChunk any) (*aichat.ResponseUpdate, error) {
	chunk, ok := rawChunk.(*genai.GenerateContentResponse)
	if !ok {
		return nil, fmt.Errorf("%w: %T", adapter.ErrInvalidResponse, rawChunk)
	}
	return a.ConvertStreamChunk(chunk)
}

// BuildRequest converts messages and options into a single GenerateContent request. It fails instead
// of dropping anything it cannot represent. opts may be nil.
func (a *Adapter) BuildRequest(messages []aichat.Message, opts *aichat.Options) (*Request, error) {
	req := &Request{Config: &genai.GenerateContentConfig{}}
	system := &genai.Content{}

	model, err := adapter.ResolveModel(opts, a.defaultModel)
	if err != nil {
		return nil, err
	}
	req.Model = model

	if opts != nil {
		if err := adapter.CheckUnsupportedOptions(opts); err != nil {
			return nil, err
		}
		if opts.Instructions != nil {
			system.Parts = append(system.Parts, genai.NewPartFromText(*opts.Instructions))
		}
		if err := applyGeneration(req.Config, opts); err != nil {
			return nil, err
		}
		if err := applyTools(req.Config, opts); err != nil {
			return nil, err
		}
	}

	names := callNames(messages)
	for i, msg := range messages {
		parts, err := convertParts(msg.Contents, names)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		switch msg.Role {
		case aichat.RoleSystem:
			system.Parts = append(system.Parts, parts...)
		case aichat.RoleUser, aichat.RoleTool:
			req.Contents = append(req.Contents, &genai.Content{Role: string(genai.RoleUser), Parts: parts})
		case aichat.RoleAssistant:
			req.Contents = append(req.Contents, &genai.Content{Role: string(genai.RoleModel), Parts: parts})
		default:
			return nil, fmt.Errorf("%w: %q", adapter.ErrUnsupportedRole, msg.Role)
		}
	}
	if len(system.Parts) > 0 {
		req.Config.SystemInstruction = system
	}
	return req, nil
}

func applyGeneration(cfg *genai.GenerateContentConfig, opts *aichat.Options) error {
	cfg.Temperature = opts.Temperature
	cfg.TopP = opts.TopP
	if opts.TopK != nil {
		k := float32(*opts.TopK)
		cfg.TopK = &k
	}
	cfg.FrequencyPenalty = opts.FrequencyPenalty
	cfg.PresencePenalty = opts.PresencePenalty
	if opts.Seed != nil {
		seed, ok := cast.ToInt32(*opts.Seed)
		if !ok {
			return fmt.Errorf("%w: %d", adapter.ErrSeedOutOfRange, *opts.Seed)
		}
		cfg.Seed = &seed
	}
	if opts.MaxOutputTokens != nil {
		// The SDK field is a plain int32 with omitempty: 0 would be dropped from the wire.
		if *opts.MaxOutputTokens <= 0 {
			return fmt.Errorf("%w: max output tokens must be positive, got %d", adapter.ErrInvalidValue, *opts.MaxOutputTokens)
		}
		cfg.MaxOutputTokens = *opts.MaxOutputTokens
	}
	if opts.StopSequences != nil {
		cfg.StopSequences = slices.Clone(opts.StopSequences)
	}
	switch f := opts.ResponseFormat.(type) {
	case nil:
	case aichat.ResponseFormatText:
		cfg.ResponseMIMEType = "text/plain"
	case aichat.ResponseFormatJSON:
		cfg.ResponseMIMEType = "application/json"
		if len(f.Schema) > 0 {
			schema, err := convertSchema(f.Schema, "response format")
			if err != nil {
				return err
			}
			cfg.ResponseJsonSchema = schema
		}
	default:
		return adapter.NotImplemented(fmt.Sprintf("response format %T", f))
	}
	return nil
}

func applyTools(cfg *genai.GenerateContentConfig, opts *aichat.Options) error {
	switch m := opts.ToolMode.(type) {
	case nil:
	case aichat.AutoToolMode:
		cfg.ToolConfig = functionCalling(genai.FunctionCallingConfigModeAuto)
	case aichat.NoneToolMode:
		cfg.ToolConfig = functionCalling(genai.FunctionCallingConfigModeNone)
	case aichat.RequiredToolMode:
		cfg.ToolConfig = functionCalling(genai.FunctionCallingConfigModeAny)
		if m.FunctionName != "" {
			cfg.ToolConfig.FunctionCallingConfig.AllowedFunctionNames = []string{m.FunctionName}
		}
	default:
		return adapter.NotImplemented(fmt.Sprintf("tool mode %T", m))
	}

	for _, t := range opts.Tools {
		decls, err := declarations(t)
		if err != nil {
			return err
		}
		if len(decls) > 0 {
			cfg.Tools = append(cfg.Tools, &genai.Tool{FunctionDeclarations: decls})
		}
	}
	return nil
}

func functionCalling(mode genai.FunctionCallingConfigMode) *genai.ToolConfig {
	return &genai.ToolConfig{FunctionCallingConfig: &genai.FunctionCallingConfig{Mode: mode}}
}

func declarations(t aichat.Tool) ([]*genai.FunctionDeclaration, error) {
	switch x := t.(type) {
	case aichat.FunctionTool:
		if len(x.AdditionalProperties) > 0 {
			return nil, adapter.NotImplemented(fmt.Sprintf("FunctionTool.AdditionalProperties (tool %q)", x.Name))
		}
		decl := &genai.FunctionDeclaration{Name: x.Name, Description: x.Description}
		params, err := parametersSchema(x.Parameters, x.Name)
		if err != nil {
			return nil, err
		}
		if params != nil {
			decl.ParametersJsonSchema = params
		}
		if len(x.ReturnSchema) > 0 {
			ret, err := returnSchema(x.ReturnSchema, x.Name)
			if err != nil {
				return nil, err
			}
			decl.ResponseJsonSchema = ret
		}
		return []*genai.FunctionDeclaration{decl}, nil
	case aichat.WebSearchTool, aichat.CodeInterpreterTool:
		return nil, fmt.Errorf("%w: %w: %s", adapter.ErrNotImplemented, adapter.ErrUnsupportedTool, x.ToolName())
	default:
		return nil, fmt.Errorf("%w: %w: %T", adapter.ErrNotImplemented, adapter.ErrUnsupportedTool, t)
	}
}

// callNames maps call ids to function names for calls whose id differs from the name, so that
// results can be answered under the function name the model used.
func callNames(messages []aichat.Message) map[string]string {
	var names map[string]string
	for _, msg := range messages {
		for _, c := range msg.Contents {
			fc, ok := c.(aichat.FunctionCallContent)
			if !ok || fc.CallID == "" || fc.CallID == fc.Name {
				continue
			}
			if names == nil {
				names = make(map[string]string)
			}
			names[fc.CallID] = fc.Name
		}
	}
	return names
}

func convertParts(contents []aichat.Content, names map[string]string) ([]*genai.Part, error) {
	parts := make([]*genai.Part, 0, len(contents))
	for _, c := range contents {
		p, err := convertPart(c, names)
		if err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	return parts, nil
}

// convertPart maps one content part. A function result is named after its call id, except when
// names maps that id to a different function name: then the response carries the function name
// and the call id goes into FunctionResponse.ID, so the model can pair it with its own call.
func convertPart(c aichat.Content, names map[string]string) (*genai.Part, error) {
	switch x := c.(type) {
	case aichat.TextContent:
		return &genai.Part{Text: x.Text}, nil
	case aichat.DataContent:
		return &genai.Part{InlineData: &genai.Blob{Data: x.Data, MIMEType: x.MediaType}}, nil
	case aichat.FunctionCallContent:
		args, err := convertArguments(x.Arguments, x.Name)
		if err != nil {
			return nil, err
		}
		call := &genai.FunctionCall{Name: x.Name, Args: args}
		if x.CallID != x.Name {
			call.ID = x.CallID
		}
		return &genai.Part{FunctionCall: call}, nil
	case aichat.FunctionResultContent:
		fields, err := resultFields(x.Result, x.CallID)
		if err != nil {
			return nil, err
		}
		resp := &genai.FunctionResponse{Name: x.CallID, Response: fields}
		if name, ok := names[x.CallID]; ok {
			resp.Name = name
			resp.ID = x.CallID
		}
		return &genai.Part{FunctionResponse: resp}, nil
	case nil:
		return nil, fmt.Errorf("%w: nil content", adapter.ErrUnsupportedContentType)
	default:
		return nil, fmt.Errorf("%w: %s", adapter.ErrUnsupportedContentType, c.Kind())
	}
}

var _ adapter.ProviderAdapter = (*Adapter)(nil)
