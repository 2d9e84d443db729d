// Package adapter defines the ProviderAdapter contract for mapping aichat messages and options to a
// provider-specific request and provider responses back to aichat responses, together with the
// error taxonomy shared by provider subpackages (e.g. adapter/gemini).
package adapter
