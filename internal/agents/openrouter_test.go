package agents

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenRouterAct(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "  [col 3]\n"}},
			},
		})
	}))
	defer ts.Close()

	a := NewOpenRouter("test-model", "sk-test").WithBaseURL(ts.URL)
	action, err := a.Act(context.Background(), "your move")
	if err != nil {
		t.Fatalf("Act failed: %v", err)
	}
	if action != "[col 3]" {
		t.Errorf("action = %q, want trimmed model reply", action)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("authorization header = %q", gotAuth)
	}
	if gotReq.Model != "test-model" || len(gotReq.Messages) != 2 {
		t.Errorf("request = %+v", gotReq)
	}
	if gotReq.Messages[1].Content != "your move" {
		t.Errorf("observation not forwarded: %+v", gotReq.Messages)
	}
}

func TestOpenRouterRetriesServerErrors(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "ok"}},
			},
		})
	}))
	defer ts.Close()

	a := NewOpenRouter("test-model", "sk-test").WithBaseURL(ts.URL)
	action, err := a.Act(context.Background(), "x")
	if err != nil {
		t.Fatalf("Act failed after retry: %v", err)
	}
	if action != "ok" || calls != 2 {
		t.Errorf("action = %q after %d calls", action, calls)
	}
}

func TestOpenRouterClientErrorNotRetried(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	a := NewOpenRouter("test-model", "bad-key").WithBaseURL(ts.URL)
	if _, err := a.Act(context.Background(), "x"); err == nil {
		t.Fatal("expected an error for a 401 response")
	}
	if calls != 1 {
		t.Errorf("client error retried %d times", calls)
	}
}
