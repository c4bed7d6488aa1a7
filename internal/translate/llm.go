package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/rulekeep/rulekeep/internal/logging"
	"github.com/rulekeep/rulekeep/pkg/interfaces"
)

// DefaultTimeout bounds one provider round trip. The runner treats the call
// as blocking I/O; the timeout lives here, not in the orchestrator.
const DefaultTimeout = 60 * time.Second

var (
	// ErrEndpointRequired reports an LLM client built without an endpoint.
	ErrEndpointRequired = errors.New("translate: llm endpoint is required")
	// ErrModelRequired reports an LLM client built without a model name.
	ErrModelRequired = errors.New("translate: llm model is required")
	// ErrEmptyBatch reports a translate call with no source texts.
	ErrEmptyBatch = errors.New("translate: batch must not be empty")
)

var markdownCodeBlock = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// LLMConfig configures the chat-completions translation client. Endpoint is
// the full chat completions URL of an OpenAI-compatible server.
type LLMConfig struct {
	Endpoint string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

// LLMClient translates batches through an OpenAI-compatible chat endpoint.
// The model is asked for a JSON array with one element per source text; any
// response that cannot be decoded into exactly that shape fails the call as
// a unit.
type LLMClient struct {
	config LLMConfig
	http   *http.Client
	logger interfaces.Logger
}

var _ interfaces.Translator = (*LLMClient)(nil)

// LLMOption customizes an LLMClient.
type LLMOption func(*LLMClient)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) LLMOption {
	return func(c *LLMClient) {
		if client != nil {
			c.http = client
		}
	}
}

// WithClientLogger sets the client logger.
func WithClientLogger(logger interfaces.Logger) LLMOption {
	return func(c *LLMClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewLLMClient constructs a chat-completions translation client.
func NewLLMClient(config LLMConfig, opts ...LLMOption) (*LLMClient, error) {
	if strings.TrimSpace(config.Endpoint) == "" {
		return nil, ErrEndpointRequired
	}
	if strings.TrimSpace(config.Model) == "" {
		return nil, ErrModelRequired
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	client := &LLMClient{
		config: config,
		http:   &http.Client{Timeout: config.Timeout},
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// TranslateBatch submits the source texts in order and returns one
// translation per text, in the same order. Partial, reordered, or malformed
// responses fail the whole call.
func (c *LLMClient) TranslateBatch(ctx context.Context, texts []string, targetLocale string) ([]string, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyBatch
	}
	if strings.TrimSpace(targetLocale) == "" {
		return nil, errors.New("translate: target locale is required")
	}

	payload, err := json.Marshal(texts)
	if err != nil {
		return nil, fmt.Errorf("translate: encoding source texts: %w", err)
	}

	body := map[string]any{
		"model": c.config.Model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt(targetLocale, len(texts))},
			{"role": "user", "content": string(payload)},
		},
		"temperature": 0.2,
	}

	respBody, err := c.doJSONRequest(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("translate: chat completion: %w", err)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("translate: decoding response: %w", err)
	}
	if len(result.Choices) == 0 {
		return nil, errors.New("translate: no choices returned")
	}

	translations, err := parseTranslations(result.Choices[0].Message.Content, len(texts))
	if err != nil {
		return nil, err
	}

	c.logger.Debug("batch translated", "texts", len(texts), "locale", targetLocale)
	return translations, nil
}

func (c *LLMClient) doJSONRequest(ctx context.Context, body any) ([]byte, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http call: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("api error (status %d): %s", resp.StatusCode, truncate(string(respBody), 300))
	}
	return respBody, nil
}

func systemPrompt(targetLocale string, count int) string {
	return fmt.Sprintf(
		"You are a professional translator for tabletop wargame rulebooks. "+
			"Translate each string in the user's JSON array into the language with code %q. "+
			"Preserve game terminology, numbers, and markup. "+
			"Respond with only a JSON array of exactly %d translated strings in the same order.",
		targetLocale, count,
	)
}

// parseTranslations decodes the model output into an ordered string slice.
// Models often wrap the array in markdown fences or prose, so the array is
// extracted before decoding. A length mismatch fails the call.
func parseTranslations(content string, expected int) ([]string, error) {
	content = strings.TrimSpace(content)

	if m := markdownCodeBlock.FindStringSubmatch(content); len(m) > 1 {
		content = m[1]
	}

	startIdx := strings.Index(content, "[")
	endIdx := strings.LastIndex(content, "]")
	if startIdx >= 0 && endIdx > startIdx {
		content = content[startIdx : endIdx+1]
	}

	var translations []string
	if err := json.Unmarshal([]byte(content), &translations); err != nil {
		return nil, fmt.Errorf("translate: response is not a JSON string array: %w", err)
	}
	if len(translations) != expected {
		return nil, fmt.Errorf("translate: got %d translations, expected %d", len(translations), expected)
	}
	return translations, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
