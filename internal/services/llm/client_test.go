package llm_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"reelid/internal/services/llm"
)

func newTestClient(serverURL string) *llm.Client {
	return llm.NewClient(llm.Config{
		APIKey:  "key",
		BaseURL: serverURL,
		Model:   "test-model",
	})
}

func TestCompleteJSONSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer key" {
			t.Fatalf("unexpected authorization header: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"ok\":true}"}}]}`))
	}))
	t.Cleanup(server.Close)

	content, err := newTestClient(server.URL).CompleteJSON(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("CompleteJSON returned error: %v", err)
	}
	if content != `{"ok":true}` {
		t.Fatalf("unexpected content: %q", content)
	}
}

func TestCompleteJSONSingleAttempt(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	if _, err := newTestClient(server.URL).CompleteJSON(context.Background(), "system", "user"); err == nil {
		t.Fatal("expected error for 500 response")
	}
	if calls != 1 {
		t.Fatalf("expected exactly one attempt, got %d", calls)
	}
}

func TestCompleteJSONRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"slow down"}}`))
	}))
	t.Cleanup(server.Close)

	_, err := newTestClient(server.URL).CompleteJSON(context.Background(), "system", "user")
	if !llm.IsRateLimited(err) {
		t.Fatalf("expected rate-limited error, got %v", err)
	}
	if llm.IsQuotaExhausted(err) {
		t.Fatal("429 should not classify as quota exhaustion")
	}
}

func TestCompleteJSONQuotaExhausted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	t.Cleanup(server.Close)

	_, err := newTestClient(server.URL).CompleteJSON(context.Background(), "system", "user")
	if !llm.IsQuotaExhausted(err) {
		t.Fatalf("expected quota error, got %v", err)
	}
}

func TestCompleteJSONRequiresPrompts(t *testing.T) {
	client := newTestClient("http://127.0.0.1:0")
	if _, err := client.CompleteJSON(context.Background(), "", "user"); err == nil {
		t.Fatal("expected error for missing system prompt")
	}
	if _, err := client.CompleteJSON(context.Background(), "system", ""); err == nil {
		t.Fatal("expected error for missing user prompt")
	}
}

func TestCompleteJSONEmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":""}}]}`))
	}))
	t.Cleanup(server.Close)

	if _, err := newTestClient(server.URL).CompleteJSON(context.Background(), "system", "user"); err == nil {
		t.Fatal("expected error for empty content")
	}
}

func TestDecodeJSONStripsCodeFence(t *testing.T) {
	var parsed struct {
		Title string `json:"title"`
	}
	payload := "```json\n{\"title\":\"Star Wars\"}\n```"
	if err := llm.DecodeJSON(payload, &parsed); err != nil {
		t.Fatalf("DecodeJSON returned error: %v", err)
	}
	if parsed.Title != "Star Wars" {
		t.Fatalf("unexpected title: %q", parsed.Title)
	}
}

func TestDecodeJSONExtractsEmbeddedObject(t *testing.T) {
	var parsed struct {
		OK bool `json:"ok"`
	}
	if err := llm.DecodeJSON("Here is the result: {\"ok\": true} hope it helps", &parsed); err != nil {
		t.Fatalf("DecodeJSON returned error: %v", err)
	}
	if !parsed.OK {
		t.Fatal("expected ok=true")
	}
}

func TestDecodeJSONRejectsGarbage(t *testing.T) {
	var parsed map[string]any
	if err := llm.DecodeJSON("definitely not json", &parsed); err == nil {
		t.Fatal("expected error for unparseable payload")
	}
}
