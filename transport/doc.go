// Package transport builds the Gemini GenerateContent transport: a genai client whose HTTP stack
// injects credentials, applies outbound rate limiting and runs caller-supplied interceptors.
// A *Handle is immutable and safe for concurrent use; it satisfies gemini.Generator.
package transport
