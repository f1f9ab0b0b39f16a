// Package server exposes the identification pipeline over a JSON HTTP API:
// POST /api/identify, GET /api/status, GET/DELETE /api/history, and a
// Prometheus /metrics endpoint. Pipeline errors map onto status codes through
// the shared error markers; a no-match response still carries the model's
// best guess and reasoning.
package server
