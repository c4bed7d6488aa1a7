package translate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func chatResponse(content string) string {
	body := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"content": content}},
		},
	}
	encoded, _ := json.Marshal(body)
	return string(encoded)
}

func TestParseTranslations(t *testing.T) {
	cases := []struct {
		name     string
		content  string
		expected int
		want     []string
		wantErr  bool
	}{
		{
			name:     "plain array",
			content:  `["uno", "dos"]`,
			expected: 2,
			want:     []string{"uno", "dos"},
		},
		{
			name:     "fenced array",
			content:  "```json\n[\"uno\", \"dos\"]\n```",
			expected: 2,
			want:     []string{"uno", "dos"},
		},
		{
			name:     "prose wrapped array",
			content:  `Here are the translations: ["uno"] I hope they help.`,
			expected: 1,
			want:     []string{"uno"},
		},
		{
			name:     "length mismatch",
			content:  `["uno"]`,
			expected: 2,
			wantErr:  true,
		},
		{
			name:     "not json",
			content:  "uno, dos",
			expected: 2,
			wantErr:  true,
		},
		{
			name:     "object instead of array",
			content:  `{"translations": "uno"}`,
			expected: 1,
			wantErr:  true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseTranslations(tc.content, tc.expected)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("parseTranslations() = %v, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseTranslations() error = %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("parseTranslations() = %v, want %v", got, tc.want)
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Fatalf("parseTranslations()[%d] = %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestLLMClientTranslateBatch(t *testing.T) {
	var gotAuth string
	var gotBody struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		_, _ = w.Write([]byte(chatResponse(`["[es] Assault", "[es] Morale"]`)))
	}))
	defer server.Close()

	client, err := NewLLMClient(LLMConfig{Endpoint: server.URL, APIKey: "secret", Model: "test-model"})
	if err != nil {
		t.Fatalf("NewLLMClient() error = %v", err)
	}

	got, err := client.TranslateBatch(context.Background(), []string{"Assault", "Morale"}, "es")
	if err != nil {
		t.Fatalf("TranslateBatch() error = %v", err)
	}
	if len(got) != 2 || got[0] != "[es] Assault" || got[1] != "[es] Morale" {
		t.Fatalf("TranslateBatch() = %v", got)
	}

	if gotAuth != "Bearer secret" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
	if gotBody.Model != "test-model" {
		t.Fatalf("model = %q", gotBody.Model)
	}
	if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != "system" {
		t.Fatalf("messages = %+v", gotBody.Messages)
	}
	if !strings.Contains(gotBody.Messages[0].Content, `"es"`) {
		t.Fatalf("system prompt missing target locale: %q", gotBody.Messages[0].Content)
	}
	if gotBody.Messages[1].Content != `["Assault","Morale"]` {
		t.Fatalf("user message = %q", gotBody.Messages[1].Content)
	}
}

func TestLLMClientRejectsPartialResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(chatResponse(`["only one"]`)))
	}))
	defer server.Close()

	client, err := NewLLMClient(LLMConfig{Endpoint: server.URL, Model: "test-model"})
	if err != nil {
		t.Fatalf("NewLLMClient() error = %v", err)
	}

	if _, err := client.TranslateBatch(context.Background(), []string{"a", "b"}, "es"); err == nil {
		t.Fatal("TranslateBatch() accepted a short response")
	}
}

func TestLLMClientReportsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client, err := NewLLMClient(LLMConfig{Endpoint: server.URL, Model: "test-model"})
	if err != nil {
		t.Fatalf("NewLLMClient() error = %v", err)
	}

	_, err = client.TranslateBatch(context.Background(), []string{"a"}, "es")
	if err == nil || !strings.Contains(err.Error(), "status 429") {
		t.Fatalf("TranslateBatch() error = %v, want status 429", err)
	}
}

func TestLLMClientValidatesInput(t *testing.T) {
	if _, err := NewLLMClient(LLMConfig{Model: "m"}); !errors.Is(err, ErrEndpointRequired) {
		t.Fatalf("NewLLMClient() error = %v, want ErrEndpointRequired", err)
	}
	if _, err := NewLLMClient(LLMConfig{Endpoint: "http://localhost"}); !errors.Is(err, ErrModelRequired) {
		t.Fatalf("NewLLMClient() error = %v, want ErrModelRequired", err)
	}

	client, err := NewLLMClient(LLMConfig{Endpoint: "http://localhost", Model: "m"})
	if err != nil {
		t.Fatalf("NewLLMClient() error = %v", err)
	}
	if _, err := client.TranslateBatch(context.Background(), nil, "es"); !errors.Is(err, ErrEmptyBatch) {
		t.Fatalf("TranslateBatch() error = %v, want ErrEmptyBatch", err)
	}
	if _, err := client.TranslateBatch(context.Background(), []string{"a"}, " "); err == nil {
		t.Fatal("TranslateBatch() accepted a blank locale")
	}
}

func TestStaticTranslator(t *testing.T) {
	translator := NewStaticTranslator()

	got, err := translator.TranslateBatch(context.Background(), []string{"Assault", "Morale"}, "fr")
	if err != nil {
		t.Fatalf("TranslateBatch() error = %v", err)
	}
	if got[0] != "[fr] Assault" || got[1] != "[fr] Morale" {
		t.Fatalf("TranslateBatch() = %v", got)
	}

	if _, err := translator.TranslateBatch(context.Background(), nil, "fr"); !errors.Is(err, ErrEmptyBatch) {
		t.Fatalf("TranslateBatch() error = %v, want ErrEmptyBatch", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := translator.TranslateBatch(ctx, []string{"a"}, "fr"); !errors.Is(err, context.Canceled) {
		t.Fatalf("TranslateBatch() error = %v, want context.Canceled", err)
	}
}
