package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/skosovsky/aichat"
	"github.com/skosovsky/aichat/adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"google.golang.org/genai"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// genai links opencensus, whose view worker starts in init and never exits.
		goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"),
	)
}

func ExampleAdapter_BuildRequest() {
	a := New(WithDefaultModel("m1"))
	req, _ := a.BuildRequest([]aichat.Message{
		aichat.SystemMessage("Be terse"),
		aichat.UserMessage("Say hi"),
	}, nil)
	fmt.Println(req.Model, req.Config.SystemInstruction.Parts[0].Text, req.Contents[0].Role, req.Contents[0].Parts[0].Text)
	// Output: m1 Be terse user Say hi
}

func TestBuildRequest_Scenario(t *testing.T) {
	t.Parallel()
	a := New(WithDefaultModel("m1"))
	req, err := a.BuildRequest([]aichat.Message{
		aichat.SystemMessage("Be terse"),
		aichat.UserMessage("Say hi"),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "m1", req.Model)
	require.NotNil(t, req.Config.SystemInstruction)
	require.Len(t, req.Config.SystemInstruction.Parts, 1)
	assert.Equal(t, "Be terse", req.Config.SystemInstruction.Parts[0].Text)
	require.Len(t, req.Contents, 1)
	assert.Equal(t, string(genai.RoleUser), req.Contents[0].Role)
	require.Len(t, req.Contents[0].Parts, 1)
	assert.Equal(t, "Say hi", req.Contents[0].Parts[0].Text)
}

func TestBuildRequest_SystemMessagesMergeInOrder(t *testing.T) {
	t.Parallel()
	a := New(WithDefaultModel("m1"))
	req, err := a.BuildRequest([]aichat.Message{
		aichat.NewMessage(aichat.RoleSystem, aichat.TextContent{Text: "s1"}, aichat.TextContent{Text: "s2"}),
		aichat.UserMessage("u"),
		aichat.SystemMessage("s3"),
	}, aichat.NewOptions(aichat.WithInstructions("instr")))
	require.NoError(t, err)
	require.Len(t, req.Contents, 1)
	var texts []string
	for _, p := range req.Config.SystemInstruction.Parts {
		texts = append(texts, p.Text)
	}
	assert.Equal(t, []string{"instr", "s1", "s2", "s3"}, texts)
	for _, c := range req.Contents {
		for _, p := range c.Parts {
			assert.NotContains(t, []string{"s1", "s2", "s3"}, p.Text)
		}
	}
}

func TestBuildRequest_NoSystemInstructionWhenEmpty(t *testing.T) {
	t.Parallel()
	req, err := New(WithDefaultModel("m1")).BuildRequest([]aichat.Message{aichat.UserMessage("hi")}, nil)
	require.NoError(t, err)
	assert.Nil(t, req.Config.SystemInstruction)
	assert.Nil(t, req.Config.ToolConfig)
	assert.Empty(t, req.Config.Tools)
}

func TestBuildRequest_PartOrderPreserved(t *testing.T) {
	t.Parallel()
	const n, k = 4, 5
	var msgs []aichat.Message
	for i := range n {
		role := aichat.RoleUser
		if i%2 == 1 {
			role = aichat.RoleAssistant
		}
		var contents []aichat.Content
		for j := range k {
			contents = append(contents, aichat.TextContent{Text: fmt.Sprintf("%d-%d", i, j)})
		}
		msgs = append(msgs, aichat.NewMessage(role, contents...))
	}
	req, err := New(WithDefaultModel("m")).BuildRequest(msgs, nil)
	require.NoError(t, err)
	require.Len(t, req.Contents, n)
	for i, c := range req.Contents {
		require.Len(t, c.Parts, k)
		for j, p := range c.Parts {
			assert.Equal(t, fmt.Sprintf("%d-%d", i, j), p.Text)
		}
	}
	assert.Equal(t, string(genai.RoleModel), req.Contents[1].Role)
}

func TestBuildRequest_Roles(t *testing.T) {
	t.Parallel()
	a := New(WithDefaultModel("m"))
	req, err := a.BuildRequest([]aichat.Message{
		aichat.UserMessage("q"),
		aichat.NewMessage(aichat.RoleAssistant, aichat.FunctionCallContent{CallID: "f", Name: "f"}),
		aichat.ToolMessage("f", "ok"),
	}, nil)
	require.NoError(t, err)
	require.Len(t, req.Contents, 3)
	assert.Equal(t, string(genai.RoleUser), req.Contents[0].Role)
	assert.Equal(t, string(genai.RoleModel), req.Contents[1].Role)
	assert.Equal(t, string(genai.RoleUser), req.Contents[2].Role)

	_, err = a.BuildRequest([]aichat.Message{{Role: "developer"}}, nil)
	require.ErrorIs(t, err, adapter.ErrUnsupportedRole)
	assert.Contains(t, err.Error(), "developer")
}

func TestBuildRequest_SamplingVerbatim(t *testing.T) {
	t.Parallel()
	opts := aichat.NewOptions(
		aichat.WithTemperature(1.7),
		aichat.WithTopP(0.33),
		aichat.WithTopK(12),
		aichat.WithFrequencyPenalty(-0.5),
		aichat.WithPresencePenalty(2.5),
		aichat.WithSeed(99),
		aichat.WithMaxOutputTokens(256),
		aichat.WithStopSequences("b", "a", "c"),
	)
	req, err := New(WithDefaultModel("m")).BuildRequest(nil, opts)
	require.NoError(t, err)
	cfg := req.Config
	require.NotNil(t, cfg.Temperature)
	assert.Equal(t, float32(1.7), *cfg.Temperature)
	assert.Equal(t, float32(0.33), *cfg.TopP)
	assert.Equal(t, float32(12), *cfg.TopK)
	assert.Equal(t, float32(-0.5), *cfg.FrequencyPenalty)
	assert.Equal(t, float32(2.5), *cfg.PresencePenalty)
	assert.Equal(t, int32(99), *cfg.Seed)
	assert.Equal(t, int32(256), cfg.MaxOutputTokens)
	assert.Equal(t, []string{"b", "a", "c"}, cfg.StopSequences)

	opts.StopSequences[0] = "mutated"
	assert.Equal(t, "b", cfg.StopSequences[0])
}

func TestBuildRequest_MaxOutputTokensMustBePositive(t *testing.T) {
	t.Parallel()
	a := New(WithDefaultModel("m"))
	for _, n := range []int32{0, -1} {
		_, err := a.BuildRequest(nil, aichat.NewOptions(aichat.WithMaxOutputTokens(n)))
		require.ErrorIs(t, err, adapter.ErrInvalidValue, n)
		assert.Contains(t, err.Error(), "max output tokens")
	}

	req, err := a.BuildRequest(nil, aichat.NewOptions(aichat.WithMaxOutputTokens(1)))
	require.NoError(t, err)
	assert.Equal(t, int32(1), req.Config.MaxOutputTokens)
}

func TestBuildRequest_UnsetSamplingAbsent(t *testing.T) {
	t.Parallel()
	req, err := New(WithDefaultModel("m")).BuildRequest(nil, &aichat.Options{})
	require.NoError(t, err)
	cfg := req.Config
	assert.Nil(t, cfg.Temperature)
	assert.Nil(t, cfg.TopP)
	assert.Nil(t, cfg.TopK)
	assert.Nil(t, cfg.FrequencyPenalty)
	assert.Nil(t, cfg.PresencePenalty)
	assert.Nil(t, cfg.Seed)
	assert.Zero(t, cfg.MaxOutputTokens)
	assert.Nil(t, cfg.StopSequences)
	assert.Empty(t, cfg.ResponseMIMEType)
	assert.Nil(t, cfg.ResponseJsonSchema)
}

func TestBuildRequest_SeedBoundaries(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		seed int64
		want int32
		ok   bool
	}{
		{"max int32", math.MaxInt32, math.MaxInt32, true},
		{"min int32", math.MinInt32, math.MinInt32, true},
		{"above max", math.MaxInt32 + 1, 0, false},
		{"below min", math.MinInt32 - 1, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req, err := New(WithDefaultModel("m")).BuildRequest(nil, aichat.NewOptions(aichat.WithSeed(tt.seed)))
			if !tt.ok {
				require.ErrorIs(t, err, adapter.ErrSeedOutOfRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, *req.Config.Seed)
		})
	}
}

func TestBuildRequest_ResponseFormat(t *testing.T) {
	t.Parallel()
	a := New(WithDefaultModel("m"))

	req, err := a.BuildRequest(nil, aichat.NewOptions(aichat.WithResponseFormat(aichat.ResponseFormatText{})))
	require.NoError(t, err)
	assert.Equal(t, "text/plain", req.Config.ResponseMIMEType)
	assert.Nil(t, req.Config.ResponseJsonSchema)

	req, err = a.BuildRequest(nil, aichat.NewOptions(aichat.WithResponseFormat(aichat.ResponseFormatJSON{})))
	require.NoError(t, err)
	assert.Equal(t, "application/json", req.Config.ResponseMIMEType)
	assert.Nil(t, req.Config.ResponseJsonSchema)

	schema := json.RawMessage(`{"type":"object","properties":{"n":{"type":"integer"}}}`)
	req, err = a.BuildRequest(nil, aichat.NewOptions(aichat.WithResponseFormat(aichat.ResponseFormatJSON{Schema: schema})))
	require.NoError(t, err)
	assert.Equal(t, "application/json", req.Config.ResponseMIMEType)
	assert.Equal(t, map[string]any{
		"type":       "object",
		"properties": map[string]any{"n": map[string]any{"type": "integer"}},
	}, req.Config.ResponseJsonSchema)

	_, err = a.BuildRequest(nil, aichat.NewOptions(aichat.WithResponseFormat(aichat.ResponseFormatJSON{Schema: json.RawMessage(`{`)})))
	require.ErrorIs(t, err, adapter.ErrInvalidSchema)
}

func TestBuildRequest_Model(t *testing.T) {
	t.Parallel()
	req, err := New(WithDefaultModel("m1")).BuildRequest(nil, aichat.NewOptions(aichat.WithModel("m2")))
	require.NoError(t, err)
	assert.Equal(t, "m2", req.Model)

	_, err = New().BuildRequest([]aichat.Message{aichat.UserMessage("hi")}, nil)
	require.ErrorIs(t, err, adapter.ErrModelNotConfigured)
	var cfgErr *adapter.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestBuildRequest_UnsupportedOptions(t *testing.T) {
	t.Parallel()
	id := "c1"
	allow := true
	tests := []struct {
		name string
		opts *aichat.Options
	}{
		{"conversation id", &aichat.Options{ConversationID: &id}},
		{"allow multiple tool calls", &aichat.Options{AllowMultipleToolCalls: &allow}},
		{"raw representation factory", &aichat.Options{RawRepresentationFactory: func(aichat.ChatClient) any { return nil }}},
		{"additional properties", &aichat.Options{AdditionalProperties: map[string]any{"x": 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(WithDefaultModel("m")).BuildRequest(nil, tt.opts)
			require.ErrorIs(t, err, adapter.ErrNotImplemented)
		})
	}
}

func TestBuildRequest_ToolMode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		mode    aichat.ToolMode
		want    genai.FunctionCallingConfigMode
		allowed []string
	}{
		{"auto", aichat.AutoToolMode{}, genai.FunctionCallingConfigModeAuto, nil},
		{"none", aichat.NoneToolMode{}, genai.FunctionCallingConfigModeNone, nil},
		{"required any", aichat.RequiredToolMode{}, genai.FunctionCallingConfigModeAny, nil},
		{"required specific", aichat.RequiredToolMode{FunctionName: "lookup"}, genai.FunctionCallingConfigModeAny, []string{"lookup"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req, err := New(WithDefaultModel("m")).BuildRequest(nil, aichat.NewOptions(aichat.WithToolMode(tt.mode)))
			require.NoError(t, err)
			require.NotNil(t, req.Config.ToolConfig)
			fc := req.Config.ToolConfig.FunctionCallingConfig
			require.NotNil(t, fc)
			assert.Equal(t, tt.want, fc.Mode)
			assert.Equal(t, tt.allowed, fc.AllowedFunctionNames)
		})
	}
}

func TestBuildRequest_FunctionTools(t *testing.T) {
	t.Parallel()
	opts := aichat.NewOptions(aichat.WithTools(
		aichat.FunctionTool{
			Name:        "weather",
			Description: "Get weather",
			Parameters:  json.RawMessage(`{"type":"object","properties":{"city":{"type":"string"}},"required":["city"]}`),
		},
		aichat.FunctionTool{Name: "now", Description: "Current time", Parameters: json.RawMessage(`{}`)},
		aichat.FunctionTool{Name: "bare"},
	))
	req, err := New(WithDefaultModel("m")).BuildRequest(nil, opts)
	require.NoError(t, err)
	require.Len(t, req.Config.Tools, 3)
	for _, tool := range req.Config.Tools {
		require.Len(t, tool.FunctionDeclarations, 1)
	}
	weather := req.Config.Tools[0].FunctionDeclarations[0]
	assert.Equal(t, "weather", weather.Name)
	assert.Equal(t, "Get weather", weather.Description)
	assert.Equal(t, map[string]any{
		"type":       "object",
		"properties": map[string]any{"city": map[string]any{"type": "string"}},
		"required":   []any{"city"},
	}, weather.ParametersJsonSchema)
	assert.Nil(t, weather.ResponseJsonSchema)

	assert.Nil(t, req.Config.Tools[1].FunctionDeclarations[0].ParametersJsonSchema)
	assert.Nil(t, req.Config.Tools[2].FunctionDeclarations[0].ParametersJsonSchema)
}

func TestBuildRequest_ReturnSchemaBoxing(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		schema string
		want   any
	}{
		{
			name:   "string is boxed",
			schema: `{"type":"string"}`,
			want: map[string]any{
				"type":       "object",
				"properties": map[string]any{"result": map[string]any{"type": "string"}},
				"required":   []any{"result"},
			},
		},
		{
			name:   "array is boxed",
			schema: `{"type":"array","items":{"type":"number"}}`,
			want: map[string]any{
				"type":       "object",
				"properties": map[string]any{"result": map[string]any{"type": "array", "items": map[string]any{"type": "number"}}},
				"required":   []any{"result"},
			},
		},
		{
			name:   "missing type is boxed",
			schema: `{"description":"anything"}`,
			want: map[string]any{
				"type":       "object",
				"properties": map[string]any{"result": map[string]any{"description": "anything"}},
				"required":   []any{"result"},
			},
		},
		{
			name:   "object is kept",
			schema: `{"type":"object","properties":{"ok":{"type":"boolean"}}}`,
			want: map[string]any{
				"type":       "object",
				"properties": map[string]any{"ok": map[string]any{"type": "boolean"}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			opts := aichat.NewOptions(aichat.WithTools(aichat.FunctionTool{Name: "f", ReturnSchema: json.RawMessage(tt.schema)}))
			req, err := New(WithDefaultModel("m")).BuildRequest(nil, opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.Config.Tools[0].FunctionDeclarations[0].ResponseJsonSchema)
		})
	}
}

func TestBuildRequest_UnsupportedTools(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		tool    aichat.Tool
		target  error
		mention string
	}{
		{"web search", aichat.WebSearchTool{}, adapter.ErrUnsupportedTool, "web_search"},
		{"code interpreter", aichat.CodeInterpreterTool{}, adapter.ErrUnsupportedTool, "code_interpreter"},
		{"nil tool", nil, adapter.ErrUnsupportedTool, "nil"},
		{"function additional properties", aichat.FunctionTool{Name: "f", AdditionalProperties: map[string]any{"strict": true}}, adapter.ErrNotImplemented, "AdditionalProperties"},
		{"non-object parameters", aichat.FunctionTool{Name: "f", Parameters: json.RawMessage(`"string"`)}, adapter.ErrInvalidSchema, `"f"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(WithDefaultModel("m")).BuildRequest(nil, &aichat.Options{Tools: []aichat.Tool{tt.tool}})
			require.ErrorIs(t, err, tt.target)
			assert.Contains(t, err.Error(), tt.mention)
		})
	}
}

func TestBuildRequest_DataContentZeroCopy(t *testing.T) {
	t.Parallel()
	data := []byte{0x89, 'P', 'N', 'G'}
	req, err := New(WithDefaultModel("m")).BuildRequest([]aichat.Message{
		aichat.NewMessage(aichat.RoleUser, aichat.TextContent{Text: "what is this"}, aichat.DataContent{Data: data, MediaType: "image/png"}),
	}, nil)
	require.NoError(t, err)
	blob := req.Contents[0].Parts[1].InlineData
	require.NotNil(t, blob)
	assert.Equal(t, "image/png", blob.MIMEType)
	assert.Same(t, &data[0], &blob.Data[0])
}

func TestBuildRequest_FunctionCall(t *testing.T) {
	t.Parallel()
	type unit struct {
		Name string `json:"name"`
	}
	req, err := New(WithDefaultModel("m")).BuildRequest([]aichat.Message{
		aichat.NewMessage(aichat.RoleAssistant,
			aichat.FunctionCallContent{CallID: "weather", Name: "weather", Arguments: map[string]any{
				"city": "Paris", "days": 3, "unit": unit{Name: "C"}, "tags": []string{"a"},
			}},
			aichat.FunctionCallContent{CallID: "call_7", Name: "now"},
		),
	}, nil)
	require.NoError(t, err)
	parts := req.Contents[0].Parts
	require.Len(t, parts, 2)
	fc := parts[0].FunctionCall
	require.NotNil(t, fc)
	assert.Equal(t, "weather", fc.Name)
	assert.Empty(t, fc.ID)
	assert.Equal(t, map[string]any{
		"city": "Paris", "days": float64(3), "unit": map[string]any{"name": "C"}, "tags": []any{"a"},
	}, fc.Args)

	assert.Equal(t, "now", parts[1].FunctionCall.Name)
	assert.Equal(t, "call_7", parts[1].FunctionCall.ID)
	assert.Nil(t, parts[1].FunctionCall.Args)
}

func TestBuildRequest_FunctionResult(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		result any
		want   map[string]any
	}{
		{"number is boxed", 42, map[string]any{"result": float64(42)}},
		{"string is boxed", "sunny", map[string]any{"result": "sunny"}},
		{"nil is boxed", nil, map[string]any{"result": nil}},
		{"slice is boxed", []int{1, 2}, map[string]any{"result": []any{float64(1), float64(2)}}},
		{"object used directly", map[string]any{"temp": 21.5}, map[string]any{"temp": 21.5}},
		{"raw object used directly", json.RawMessage(`{"ok":true}`), map[string]any{"ok": true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req, err := New(WithDefaultModel("m")).BuildRequest([]aichat.Message{aichat.ToolMessage("weather", tt.result)}, nil)
			require.NoError(t, err)
			fr := req.Contents[0].Parts[0].FunctionResponse
			require.NotNil(t, fr)
			assert.Equal(t, "weather", fr.Name)
			assert.Empty(t, fr.ID)
			assert.Equal(t, tt.want, fr.Response)
		})
	}
}

func TestBuildRequest_FunctionResultUsesCallName(t *testing.T) {
	t.Parallel()
	req, err := New(WithDefaultModel("m")).BuildRequest([]aichat.Message{
		aichat.NewMessage(aichat.RoleAssistant, aichat.FunctionCallContent{CallID: "call_1", Name: "lookup"}),
		aichat.ToolMessage("call_1", map[string]any{"hit": true}),
	}, nil)
	require.NoError(t, err)
	fr := req.Contents[1].Parts[0].FunctionResponse
	assert.Equal(t, "lookup", fr.Name)
	assert.Equal(t, "call_1", fr.ID)

	// Without a matching earlier call the call id is the name.
	req, err = New(WithDefaultModel("m")).BuildRequest([]aichat.Message{
		aichat.ToolMessage("call_1", 42),
	}, nil)
	require.NoError(t, err)
	fr = req.Contents[0].Parts[0].FunctionResponse
	assert.Equal(t, "call_1", fr.Name)
	assert.Empty(t, fr.ID)
	assert.Equal(t, map[string]any{ResultKey: float64(42)}, fr.Response)
}

func TestBuildRequest_UnsupportedContent(t *testing.T) {
	t.Parallel()
	a := New(WithDefaultModel("m"))
	_, err := a.BuildRequest([]aichat.Message{
		aichat.NewMessage(aichat.RoleUser, aichat.URIContent{URI: "gs://b/o", MediaType: "image/png"}),
	}, nil)
	require.ErrorIs(t, err, adapter.ErrUnsupportedContentType)
	assert.Contains(t, err.Error(), "uri")

	_, err = a.BuildRequest([]aichat.Message{aichat.NewMessage(aichat.RoleUser, nil)}, nil)
	require.ErrorIs(t, err, adapter.ErrUnsupportedContentType)

	_, err = a.BuildRequest([]aichat.Message{aichat.ToolMessage("f", make(chan int))}, nil)
	require.ErrorIs(t, err, adapter.ErrInvalidValue)
}

// Every content kind is either mapped or rejected by name; none is dropped.
func TestBuildRequest_AllContentKinds(t *testing.T) {
	t.Parallel()
	kinds := []aichat.Content{
		aichat.TextContent{Text: "t"},
		aichat.DataContent{Data: []byte{1}, MediaType: "application/octet-stream"},
		aichat.URIContent{URI: "https://x"},
		aichat.FunctionCallContent{CallID: "f", Name: "f"},
		aichat.FunctionResultContent{CallID: "f", Result: 1},
	}
	for _, c := range kinds {
		req, err := New(WithDefaultModel("m")).BuildRequest([]aichat.Message{aichat.NewMessage(aichat.RoleUser, c)}, nil)
		if err != nil {
			require.ErrorIs(t, err, adapter.ErrUnsupportedContentType)
			assert.Contains(t, err.Error(), c.Kind())
			continue
		}
		assert.Len(t, req.Contents[0].Parts, 1, c.Kind())
	}
}

func TestAdapter_ProviderAdapter(t *testing.T) {
	t.Parallel()
	var pa adapter.ProviderAdapter = New(WithDefaultModel("m"))
	ctx := context.Background()

	raw, err := pa.Translate(ctx, []aichat.Message{aichat.UserMessage("hi")}, nil)
	require.NoError(t, err)
	req, ok := raw.(*Request)
	require.True(t, ok)
	assert.Equal(t, "m", req.Model)

	_, err = pa.ParseResponse(ctx, "not a response")
	require.ErrorIs(t, err, adapter.ErrInvalidResponse)
	_, err = pa.ParseStreamChunk(ctx, 42)
	require.ErrorIs(t, err, adapter.ErrInvalidResponse)

	resp, err := pa.ParseResponse(ctx, textResponse("hello", genai.FinishReasonStop))
	require.NoError(t, err)
	assert.Equal(t, "hello", resp.Text())

	u, err := pa.ParseStreamChunk(ctx, textResponse("chunk", ""))
	require.NoError(t, err)
	assert.Equal(t, "chunk", u.Text())
	assert.Equal(t, "m", New(WithDefaultModel("m")).DefaultModel())
}

func textResponse(text string, finish genai.FinishReason) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Role: string(genai.RoleModel), Parts: []*genai.Part{{Text: text}}},
			FinishReason: finish,
		}},
	}
}
