// Package llm provides the chat completion client used for candidate ranking.
//
// The client sends system/user prompts to an OpenAI-compatible endpoint with a
// JSON-only response format and returns the raw payload. Each call is a single
// attempt by contract: a 429 or 402 from the provider is surfaced as a typed
// StatusError (see IsRateLimited, IsQuotaExhausted) so the caller can decide
// whether a user-initiated retry makes sense. DecodeJSON tolerates the common
// model quirks (code fences, leading prose) before strict parsing.
package llm
