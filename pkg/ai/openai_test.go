package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Mind-Measure/mind-measure-mobile-sub000/pkg/config"
)

func TestAnalyzeCheckIn_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected auth header %q", got)
		}

		var payload map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if payload["model"] != "test-model" {
			t.Fatalf("unexpected model %v", payload["model"])
		}
		msgs, _ := payload["messages"].([]interface{})
		if len(msgs) != 2 {
			t.Fatalf("expected system and user messages, got %d", len(msgs))
		}
		user, _ := msgs[1].(map[string]interface{})
		content, _ := user["content"].(string)
		if !strings.Contains(content, "Previous score: 62") || !strings.Contains(content, "exams") {
			t.Fatalf("context not forwarded: %q", content)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  "test-model",
			"choices": []map[string]interface{}{
				{
					"index":         0,
					"finish_reason": "stop",
					"message": map[string]string{
						"role":    "assistant",
						"content": `{"summary":"ok","text_score":64}`,
					},
				},
			},
		})
	}))
	defer ts.Close()

	client := NewOpenAITextClient(&config.LLMConfig{APIKey: "test-key", BaseURL: ts.URL, Model: "test-model"})

	prior := 62.0
	content, err := client.AnalyzeCheckIn(context.Background(), CheckInPrompt{
		Transcript:  "Worried about exams but sleeping better.",
		PriorThemes: []string{"exams"},
		PriorScore:  &prior,
	})
	if err != nil {
		t.Fatalf("AnalyzeCheckIn failed: %v", err)
	}
	if content != `{"summary":"ok","text_score":64}` {
		t.Fatalf("unexpected content %s", content)
	}
}

func TestAnalyzeCheckIn_ProviderError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":{"message":"overloaded","type":"server_error"}}`))
	}))
	defer ts.Close()

	client := NewOpenAITextClient(&config.LLMConfig{APIKey: "k", BaseURL: ts.URL})
	if _, err := client.AnalyzeCheckIn(context.Background(), CheckInPrompt{Transcript: "hello there friend"}); err == nil {
		t.Fatal("expected error from provider")
	}
}
