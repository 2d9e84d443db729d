// Package protovalue converts JSON documents and Go values to protocol values (google.protobuf.Value)
// and back. The provider SDK accepts plain Go maps, so conversions end in ToObject.
package protovalue

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/skosovsky/aichat/internal/cast"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// ErrEmptyJSON is returned by FromJSON for an empty document.
var ErrEmptyJSON = errors.New("protovalue: empty JSON document")

// FromJSON parses a JSON document into a protocol value.
func FromJSON(raw json.RawMessage) (*structpb.Value, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyJSON
	}
	v := &structpb.Value{}
	if err := protojson.Unmarshal(raw, v); err != nil {
		return nil, fmt.Errorf("protovalue: parse JSON: %w", err)
	}
	return v, nil
}

// FromObject converts an arbitrary Go value. Plain JSON-shaped values (maps, []any, scalars) are
// converted directly; anything else (structs, typed slices, json.RawMessage) goes through encoding/json.
func FromObject(v any) (*structpb.Value, error) {
	if raw, ok := v.(json.RawMessage); ok {
		return FromJSON(raw)
	}
	if f, ok := cast.ToFloat64(v); ok {
		return structpb.NewNumberValue(f), nil
	}
	if pv, err := structpb.NewValue(v); err == nil {
		return pv, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("protovalue: marshal %T: %w", v, err)
	}
	return FromJSON(raw)
}

// ToObject converts a protocol value to its plain Go form: map[string]any, []any, string, float64,
// bool or nil.
func ToObject(v *structpb.Value) any {
	if v == nil {
		return nil
	}
	return v.AsInterface()
}

// ToMap returns the fields of an object value, or nil when v is not an object.
func ToMap(v *structpb.Value) map[string]any {
	s := v.GetStructValue()
	if s == nil {
		return nil
	}
	return s.AsMap()
}

// IsObject reports whether v holds an object.
func IsObject(v *structpb.Value) bool {
	return v.GetStructValue() != nil
}

// TypeOf returns the top-level "type" keyword of a JSON Schema value, or "" when absent or not a string.
func TypeOf(schema *structpb.Value) string {
	s := schema.GetStructValue()
	if s == nil {
		return ""
	}
	return s.GetFields()["type"].GetStringValue()
}
