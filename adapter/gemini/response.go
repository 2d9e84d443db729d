package gemini

import (
	"fmt"
	"maps"

	"github.com/skosovsky/aichat"
	"github.com/skosovsky/aichat/adapter"

	"google.golang.org/genai"
)

// ConvertResponse converts a unary response. The response must carry exactly one candidate.
func (a *Adapter) ConvertResponse(resp *genai.GenerateContentResponse) (*aichat.Response, error) {
	cand, err := soleCandidate(resp)
	if err != nil {
		return nil, err
	}
	finish, err := convertFinishReason(cand.FinishReason)
	if err != nil {
		return nil, err
	}
	role, contents, err := convertContent(cand.Content)
	if err != nil {
		return nil, err
	}
	return &aichat.Response{
		ResponseID:        resp.ResponseID,
		ModelID:           resp.ModelVersion,
		CreatedAt:         resp.CreateTime,
		Messages:          []aichat.Message{{Role: role, Contents: contents}},
		FinishReason:      finish,
		Usage:             convertUsage(resp.UsageMetadata),
		RawRepresentation: resp,
	}, nil
}

// ConvertStreamChunk converts one streamed response. FinishReason stays nil until the provider reports one.
func (a *Adapter) ConvertStreamChunk(chunk *genai.GenerateContentResponse) (*aichat.ResponseUpdate, error) {
	cand, err := soleCandidate(chunk)
	if err != nil {
		return nil, err
	}
	finish, err := convertFinishReason(cand.FinishReason)
	if err != nil {
		return nil, err
	}
	role, contents, err := convertContent(cand.Content)
	if err != nil {
		return nil, err
	}
	return &aichat.ResponseUpdate{
		ResponseID:        chunk.ResponseID,
		ModelID:           chunk.ModelVersion,
		CreatedAt:         chunk.CreateTime,
		Role:              role,
		Contents:          contents,
		FinishReason:      finish,
		Usage:             convertUsage(chunk.UsageMetadata),
		RawRepresentation: chunk,
	}, nil
}

func soleCandidate(resp *genai.GenerateContentResponse) (*genai.Candidate, error) {
	if resp == nil {
		return nil, fmt.Errorf("%w: got nil response", adapter.ErrCandidateCount)
	}
	if n := len(resp.Candidates); n != 1 {
		return nil, fmt.Errorf("%w: got %d", adapter.ErrCandidateCount, n)
	}
	if resp.Candidates[0] == nil {
		return nil, fmt.Errorf("%w: got nil candidate", adapter.ErrCandidateCount)
	}
	return resp.Candidates[0], nil
}

func convertFinishReason(r genai.FinishReason) (*aichat.FinishReason, error) {
	var out aichat.FinishReason
	switch r {
	case "", genai.FinishReasonUnspecified:
		return nil, nil
	case genai.FinishReasonStop:
		out = aichat.FinishReasonStop
	case genai.FinishReasonMaxTokens:
		out = aichat.FinishReasonLength
	case genai.FinishReasonSafety,
		genai.FinishReasonRecitation,
		genai.FinishReasonSPII,
		genai.FinishReasonLanguage,
		genai.FinishReasonBlocklist,
		genai.FinishReasonProhibitedContent,
		genai.FinishReasonImageSafety:
		out = aichat.FinishReasonContentFilter
	case genai.FinishReasonMalformedFunctionCall:
		return nil, fmt.Errorf("%w: malformed function call (%s)", adapter.ErrFinishReason, r)
	case genai.FinishReasonUnexpectedToolCall:
		return nil, fmt.Errorf("%w: unexpected tool call (%s)", adapter.ErrFinishReason, r)
	case genai.FinishReasonOther:
		return nil, fmt.Errorf("%w: other (%s)", adapter.ErrFinishReason, r)
	default:
		return nil, fmt.Errorf("%w: unknown finish reason %q", adapter.ErrFinishReason, r)
	}
	return &out, nil
}

// convertContent maps the candidate content. A candidate without content (e.g. blocked by a safety
// filter) yields an assistant turn with no parts.
func convertContent(c *genai.Content) (aichat.Role, []aichat.Content, error) {
	if c == nil {
		return aichat.RoleAssistant, nil, nil
	}
	var role aichat.Role
	switch c.Role {
	case string(genai.RoleUser):
		role = aichat.RoleUser
	case string(genai.RoleModel):
		role = aichat.RoleAssistant
	default:
		return "", nil, fmt.Errorf("%w: %q", adapter.ErrUnexpectedRole, c.Role)
	}
	contents := make([]aichat.Content, 0, len(c.Parts))
	for i, p := range c.Parts {
		content, err := convertResponsePart(p)
		if err != nil {
			return "", nil, fmt.Errorf("part %d: %w", i, err)
		}
		contents = append(contents, content)
	}
	return role, contents, nil
}

func convertResponsePart(p *genai.Part) (aichat.Content, error) {
	switch {
	case p == nil:
		return nil, fmt.Errorf("%w: nil part", adapter.ErrUnexpectedPart)
	case p.Thought:
		return nil, adapter.NotImplemented("response part kind: thought")
	case p.FunctionCall != nil:
		callID := p.FunctionCall.ID
		if callID == "" {
			callID = p.FunctionCall.Name
		}
		return aichat.FunctionCallContent{
			CallID:    callID,
			Name:      p.FunctionCall.Name,
			Arguments: maps.Clone(p.FunctionCall.Args),
		}, nil
	case p.InlineData != nil:
		return nil, adapter.NotImplemented("response part kind: inline data")
	case p.FileData != nil:
		return nil, adapter.NotImplemented("response part kind: file data")
	case p.FunctionResponse != nil:
		return nil, adapter.NotImplemented("response part kind: function response")
	case p.ExecutableCode != nil:
		return nil, adapter.NotImplemented("response part kind: executable code")
	case p.CodeExecutionResult != nil:
		return nil, adapter.NotImplemented("response part kind: code execution result")
	case p.VideoMetadata != nil:
		return nil, fmt.Errorf("%w: video metadata without data", adapter.ErrUnexpectedPart)
	default:
		// The REST encoding cannot tell an empty text part from an empty part.
		return aichat.TextContent{Text: p.Text}, nil
	}
}

func convertUsage(u *genai.GenerateContentResponseUsageMetadata) *aichat.Usage {
	if u == nil {
		return nil
	}
	return &aichat.Usage{
		InputTokens:  int64(u.PromptTokenCount),
		OutputTokens: int64(u.CandidatesTokenCount),
		TotalTokens:  int64(u.TotalTokenCount),
	}
}
