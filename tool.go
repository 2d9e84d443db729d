package aichat

import (
	"encoding/json"
	"fmt"
)

// Tool is a sealed interface for tool declarations passed in Options.Tools.
type Tool interface {
	ToolName() string
	isTool()
}

// FunctionTool is a callable function the model may request.
// Parameters and ReturnSchema are JSON Schema documents; empty means "not declared".
type FunctionTool struct {
	Name                 string
	Description          string
	Parameters           json.RawMessage
	ReturnSchema         json.RawMessage
	AdditionalProperties map[string]any
}

// WebSearchTool is a provider-hosted web search (grounding) tool.
type WebSearchTool struct{}

// CodeInterpreterTool is a provider-hosted code execution tool.
type CodeInterpreterTool struct{}

func (t FunctionTool) ToolName() string      { return t.Name }
func (WebSearchTool) ToolName() string       { return "web_search" }
func (CodeInterpreterTool) ToolName() string { return "code_interpreter" }

func (FunctionTool) isTool()        {}
func (WebSearchTool) isTool()       {}
func (CodeInterpreterTool) isTool() {}

// NewFunctionTool builds a FunctionTool from Go values for the parameter and return schemas.
// A nil schema leaves the corresponding field empty.
func NewFunctionTool(name, description string, params, returns any) (FunctionTool, error) {
	t := FunctionTool{Name: name, Description: description}
	var err error
	if t.Parameters, err = marshalSchema(params); err != nil {
		return FunctionTool{}, fmt.Errorf("aichat: tool %q parameters: %w", name, err)
	}
	if t.ReturnSchema, err = marshalSchema(returns); err != nil {
		return FunctionTool{}, fmt.Errorf("aichat: tool %q return schema: %w", name, err)
	}
	return t, nil
}

func marshalSchema(v any) (json.RawMessage, error) {
	switch s := v.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return s, nil
	case []byte:
		return json.RawMessage(s), nil
	case string:
		return json.RawMessage(s), nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return b, nil
}
