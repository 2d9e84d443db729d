package aichat

import "strings"

// Role is the message role in a chat (system, user, assistant, tool).
// Values outside the constants below are representable so adapters can reject them explicitly.
type Role string

// Chat message roles.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is a single chat message with an ordered list of content parts.
// Order of Contents is significant and is preserved by adapters.
type Message struct {
	Role       Role
	Contents   []Content
	AuthorName string
}

// NewMessage builds a message from a role and contents.
func NewMessage(role Role, contents ...Content) Message {
	return Message{Role: role, Contents: contents}
}

// SystemMessage returns a system message with a single text part.
func SystemMessage(text string) Message {
	return NewMessage(RoleSystem, TextContent{Text: text})
}

// UserMessage returns a user message with a single text part.
func UserMessage(text string) Message {
	return NewMessage(RoleUser, TextContent{Text: text})
}

// AssistantMessage returns an assistant message with a single text part.
func AssistantMessage(text string) Message {
	return NewMessage(RoleAssistant, TextContent{Text: text})
}

// ToolMessage returns a tool message carrying one function result.
func ToolMessage(callID string, result any) Message {
	return NewMessage(RoleTool, FunctionResultContent{CallID: callID, Result: result})
}

// Text concatenates all text parts of the message, ignoring other kinds.
func (m Message) Text() string {
	return textOf(m.Contents)
}

// FunctionCalls returns the function call parts of the message in order.
func (m Message) FunctionCalls() []FunctionCallContent {
	var out []FunctionCallContent
	for _, c := range m.Contents {
		if fc, ok := c.(FunctionCallContent); ok {
			out = append(out, fc)
		}
	}
	return out
}

func textOf(contents []Content) string {
	var b strings.Builder
	for _, c := range contents {
		if t, ok := c.(TextContent); ok {
			b.WriteString(t.Text)
		}
	}
	return b.String()
}
