package gemini

import (
	"encoding/json"
	"fmt"

	"github.com/skosovsky/aichat/adapter"
	"github.com/skosovsky/aichat/internal/protovalue"

	"google.golang.org/protobuf/types/known/structpb"
)

// ResultKey is the property that boxes non-object return schemas and function results:
// function responses must be JSON objects.
const ResultKey = "result"

// convertSchema parses a JSON Schema document into the plain Go form the SDK serializes.
func convertSchema(raw json.RawMessage, what string) (any, error) {
	v, err := protovalue.FromJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", adapter.ErrInvalidSchema, what, err)
	}
	return protovalue.ToObject(v), nil
}

// parametersSchema returns the parameters schema, or nil when raw is empty or an empty object.
func parametersSchema(raw json.RawMessage, tool string) (any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	v, err := protovalue.FromJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: tool %q parameters: %w", adapter.ErrInvalidSchema, tool, err)
	}
	if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
		return nil, nil
	}
	if !protovalue.IsObject(v) {
		return nil, fmt.Errorf("%w: tool %q parameters must be a JSON object", adapter.ErrInvalidSchema, tool)
	}
	m := protovalue.ToMap(v)
	if len(m) == 0 {
		return nil, nil
	}
	return m, nil
}

// returnSchema converts a declared return schema. A schema whose top-level type is not "object"
// is boxed as {"type":"object","properties":{"result":<schema>},"required":["result"]}.
func returnSchema(raw json.RawMessage, tool string) (any, error) {
	v, err := protovalue.FromJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: tool %q return schema: %w", adapter.ErrInvalidSchema, tool, err)
	}
	if protovalue.TypeOf(v) == "object" {
		return protovalue.ToObject(v), nil
	}
	return boxSchema(protovalue.ToObject(v)), nil
}

func boxSchema(schema any) map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{ResultKey: schema},
		"required":   []any{ResultKey},
	}
}

// resultFields converts a function result to response fields: objects are used directly,
// anything else (numbers, strings, arrays, null) is boxed under ResultKey.
func resultFields(result any, callID string) (map[string]any, error) {
	v, err := protovalue.FromObject(result)
	if err != nil {
		return nil, fmt.Errorf("%w: function result %q: %w", adapter.ErrInvalidValue, callID, err)
	}
	if m := protovalue.ToMap(v); m != nil {
		return m, nil
	}
	return map[string]any{ResultKey: protovalue.ToObject(v)}, nil
}

// convertArguments converts each call argument through the protocol value form.
func convertArguments(args map[string]any, name string) (map[string]any, error) {
	if args == nil {
		return nil, nil
	}
	out := make(map[string]any, len(args))
	for k, a := range args {
		v, err := protovalue.FromObject(a)
		if err != nil {
			return nil, fmt.Errorf("%w: function call %q argument %q: %w", adapter.ErrInvalidValue, name, k, err)
		}
		out[k] = protovalue.ToObject(v)
	}
	return out, nil
}
