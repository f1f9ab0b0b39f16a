package services

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrInput         = errors.New("input error")
	ErrConfiguration = errors.New("configuration error")
	ErrRanker        = errors.New("ranker error")
	ErrRateLimited   = errors.New("rate limited")
	ErrQuota         = errors.New("quota exhausted")
	ErrNoMatch       = errors.New("no catalog match")
	ErrTransient     = errors.New("transient failure")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// HTTPStatus maps a pipeline error to the HTTP status code the API layer
// should report. Only input and ranker failures are fatal; everything else in
// the pipeline degrades before reaching this point.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrQuota):
		return http.StatusPaymentRequired
	case errors.Is(err, ErrNoMatch):
		return http.StatusNotFound
	case errors.Is(err, ErrConfiguration):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
