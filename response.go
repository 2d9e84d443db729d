package aichat

import (
	"strings"
	"time"
)

// FinishReason describes why the model stopped generating.
type FinishReason string

// Generic finish reasons.
const (
	FinishReasonStop          FinishReason = "stop"
	FinishReasonLength        FinishReason = "length"
	FinishReasonContentFilter FinishReason = "content_filter"
)

// Usage holds token accounting reported by the provider. Zero means "not reported".
type Usage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// Response is the result of a unary chat call.
// FinishReason is nil when the provider did not report one.
type Response struct {
	ResponseID        string
	ModelID           string
	CreatedAt         time.Time
	Messages          []Message
	FinishReason      *FinishReason
	Usage             *Usage
	RawRepresentation any
}

// Text concatenates the text of all response messages.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	var b strings.Builder
	for _, m := range r.Messages {
		b.WriteString(m.Text())
	}
	return b.String()
}

// ResponseUpdate is one chunk of a streaming chat call.
type ResponseUpdate struct {
	ResponseID        string
	MessageID         string
	ModelID           string
	CreatedAt         time.Time
	Role              Role
	Contents          []Content
	FinishReason      *FinishReason
	Usage             *Usage
	RawRepresentation any
}

// Text concatenates the text parts of the update.
func (u *ResponseUpdate) Text() string {
	if u == nil {
		return ""
	}
	return textOf(u.Contents)
}

// ToResponse coalesces streamed updates into a single Response.
// Updates sharing a MessageID (or an empty one) are merged into one message; adjacent text parts
// are joined. The last non-nil FinishReason and Usage win. Returns ErrNoUpdates for an empty slice.
func ToResponse(updates []*ResponseUpdate) (*Response, error) {
	if len(updates) == 0 {
		return nil, ErrNoUpdates
	}
	resp := &Response{}
	var cur *Message
	curID := ""
	for _, u := range updates {
		if u == nil {
			continue
		}
		if u.ResponseID != "" {
			resp.ResponseID = u.ResponseID
		}
		if u.ModelID != "" {
			resp.ModelID = u.ModelID
		}
		if resp.CreatedAt.IsZero() && !u.CreatedAt.IsZero() {
			resp.CreatedAt = u.CreatedAt
		}
		if u.FinishReason != nil {
			resp.FinishReason = u.FinishReason
		}
		if u.Usage != nil {
			resp.Usage = u.Usage
		}
		if cur == nil || (u.MessageID != "" && u.MessageID != curID) {
			resp.Messages = append(resp.Messages, Message{Role: u.Role})
			cur = &resp.Messages[len(resp.Messages)-1]
			curID = u.MessageID
		}
		if cur.Role == "" {
			cur.Role = u.Role
		}
		cur.Contents = appendCoalesced(cur.Contents, u.Contents)
	}
	return resp, nil
}

func appendCoalesced(dst, src []Content) []Content {
	for _, c := range src {
		if t, ok := c.(TextContent); ok && len(dst) > 0 {
			if prev, ok := dst[len(dst)-1].(TextContent); ok {
				dst[len(dst)-1] = TextContent{Text: prev.Text + t.Text}
				continue
			}
		}
		dst = append(dst, c)
	}
	return dst
}
