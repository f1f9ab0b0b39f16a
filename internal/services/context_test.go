package services_test

import (
	"context"
	"testing"

	"reelid/internal/services"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := services.WithRequestID(context.Background(), "req-123")
	id, ok := services.RequestIDFromContext(ctx)
	if !ok || id != "req-123" {
		t.Fatalf("expected req-123, got %q (ok=%v)", id, ok)
	}
}

func TestRequestIDMissing(t *testing.T) {
	if _, ok := services.RequestIDFromContext(context.Background()); ok {
		t.Fatal("expected no request id on fresh context")
	}
}

func TestWithRequestIDEmptyIsNoop(t *testing.T) {
	ctx := services.WithRequestID(context.Background(), "")
	if _, ok := services.RequestIDFromContext(ctx); ok {
		t.Fatal("empty id should not annotate context")
	}
}

func TestComponentRoundTrip(t *testing.T) {
	ctx := services.WithComponent(context.Background(), "ranker")
	component, ok := services.ComponentFromContext(ctx)
	if !ok || component != "ranker" {
		t.Fatalf("expected ranker, got %q (ok=%v)", component, ok)
	}
}
