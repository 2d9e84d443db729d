// Package gemini adapts the Gemini GenerateContent API (google.golang.org/genai) to aichat.
//
// Adapter.BuildRequest turns messages and options into a *Request; ConvertResponse and
// ConvertStreamChunk turn provider responses into aichat responses. Client combines an Adapter with a
// Generator (a *genai.Models or a *transport.Handle) into an aichat.ChatClient.
//
// System messages and Options.Instructions are merged into the system instruction. Non-object return
// schemas and function results are boxed under ResultKey. Responses must carry exactly one candidate.
// Options the provider cannot honor (conversation ids, built-in tools, additional properties) fail
// with adapter.ErrNotImplemented instead of being ignored. A seed outside the int32 range fails with
// adapter.ErrSeedOutOfRange.
package gemini
