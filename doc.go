// Package aichat provides a vendor-neutral chat client abstraction for LLM applications.
// It defines messages with multimodal content, tool declarations, request options and
// responses; provider-specific mapping lives in adapter subpackages (e.g. adapter/gemini).
package aichat
