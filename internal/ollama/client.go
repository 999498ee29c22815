// Package ollama provides a client for the Ollama native chat API with tool calling.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ashutoshrp06/vragent/internal/types"
)

// Client handles communication with the Ollama API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	model      string
	options    *ChatOptions
}

// Config holds client configuration.
type Config struct {
	BaseURL     string        // e.g., "http://localhost:11434"
	Model       string        // e.g., "qwen3:8b"
	Timeout     time.Duration // Bounded wait for one chat call
	Temperature float64       // 0 leaves the model default
}

// DefaultConfig returns sensible defaults for local development.
func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:11434",
		Model:   "qwen3:8b",
		Timeout: 120 * time.Second,
	}
}

// NewClient creates a new Ollama client.
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
	if cfg.Temperature > 0 {
		c.options = &ChatOptions{Temperature: cfg.Temperature}
	}
	return c
}

// ChatOptions controls generation parameters.
type ChatOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
}

// Tool is a function definition in Ollama's tools format.
type Tool struct {
	Type     string       `json:"type"`
	Function ToolFunction `json:"function"`
}

// ToolFunction names and describes one callable action.
type ToolFunction struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  ParameterSchema `json:"parameters"`
}

// ParameterSchema maps directly to a JSON Schema object.
type ParameterSchema struct {
	Type       string                    `json:"type"`
	Properties map[string]PropertySchema `json:"properties"`
	Required   []string                  `json:"required"`
}

// PropertySchema defines a single parameter property.
type PropertySchema struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// ToolsFromDefinitions converts action definitions into Ollama tools, keeping order.
func ToolsFromDefinitions(defs []types.ActionDefinition) []Tool {
	tools := make([]Tool, 0, len(defs))
	for _, def := range defs {
		schema := ParameterSchema{
			Type:       "object",
			Properties: make(map[string]PropertySchema, len(def.Parameters)),
			Required:   make([]string, 0, len(def.Parameters)),
		}
		for _, p := range def.Parameters {
			schema.Properties[p.Name] = PropertySchema{Type: p.Type, Description: p.Description}
			if p.Required {
				schema.Required = append(schema.Required, p.Name)
			}
		}
		tools = append(tools, Tool{
			Type: "function",
			Function: ToolFunction{
				Name:        def.Name,
				Description: def.Description,
				Parameters:  schema,
			},
		})
	}
	return tools
}

// ChatRequest is the request body for the /api/chat endpoint.
type ChatRequest struct {
	Model    string          `json:"model"`
	Messages []types.Message `json:"messages"`
	Tools    []Tool          `json:"tools,omitempty"`
	Stream   bool            `json:"stream"`
	Options  *ChatOptions    `json:"options,omitempty"`
}

// ChatResponse is the response from /api/chat.
type ChatResponse struct {
	Model     string        `json:"model"`
	Message   types.Message `json:"message"`
	Done      bool          `json:"done"`
	CreatedAt string        `json:"created_at"`

	TotalDuration   int64 `json:"total_duration,omitempty"`
	PromptEvalCount int   `json:"prompt_eval_count,omitempty"`
	EvalCount       int   `json:"eval_count,omitempty"`
}

// wireResponse tolerates arguments sent as an object, a JSON string, or null.
type wireResponse struct {
	Model     string `json:"model"`
	CreatedAt string `json:"created_at"`
	Done      bool   `json:"done"`
	Message   *struct {
		Role      string `json:"role"`
		Content   string `json:"content"`
		ToolCalls []struct {
			Function struct {
				Name      string          `json:"name"`
				Arguments json.RawMessage `json:"arguments"`
			} `json:"function"`
		} `json:"tool_calls"`
	} `json:"message"`
	TotalDuration   int64 `json:"total_duration"`
	PromptEvalCount int   `json:"prompt_eval_count"`
	EvalCount       int   `json:"eval_count"`
}

// Chat sends the transcript and tool definitions and returns the model's
// single, non-streamed reply. Errors wrap ErrUnreachable, ErrTimeout or
// ErrMalformedResponse, or are a *StatusError.
func (c *Client) Chat(ctx context.Context, messages []types.Message, tools []Tool) (*ChatResponse, error) {
	req := ChatRequest{
		Model:    c.model,
		Messages: messages,
		Tools:    tools,
		Stream:   false,
		Options:  c.options,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(bodyBytes))}
	}

	var wire wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		if ctx.Err() != nil {
			return nil, classifyTransport(ctx.Err())
		}
		return nil, fmt.Errorf("%w: decode response: %w", ErrMalformedResponse, err)
	}

	return wire.toChatResponse()
}

func (w *wireResponse) toChatResponse() (*ChatResponse, error) {
	out := &ChatResponse{
		Model:           w.Model,
		Done:            w.Done,
		CreatedAt:       w.CreatedAt,
		TotalDuration:   w.TotalDuration,
		PromptEvalCount: w.PromptEvalCount,
		EvalCount:       w.EvalCount,
	}
	// A missing message is treated as an empty reply.
	if w.Message == nil {
		return out, nil
	}

	out.Message.Role = w.Message.Role
	out.Message.Content = w.Message.Content
	for i, tc := range w.Message.ToolCalls {
		fn := types.ToolCallFunction{Name: tc.Function.Name}
		args, err := decodeArguments(tc.Function.Arguments)
		if err != nil {
			// The call is kept with no arguments so its siblings survive.
			args = map[string]any{}
			fn.ArgumentsError = fmt.Sprintf("tool call %d: %v", i, err)
		}
		fn.Arguments = args
		out.Message.ToolCalls = append(out.Message.ToolCalls, types.ToolCall{Function: fn})
	}
	return out, nil
}

func decodeArguments(raw json.RawMessage) (map[string]any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return map[string]any{}, nil
	}

	// Some models return the arguments object encoded as a string.
	if trimmed[0] == '"' {
		var encoded string
		if err := json.Unmarshal(trimmed, &encoded); err != nil {
			return nil, err
		}
		if strings.TrimSpace(encoded) == "" {
			return map[string]any{}, nil
		}
		trimmed = []byte(encoded)
	}

	args := map[string]any{}
	if err := json.Unmarshal(trimmed, &args); err != nil {
		return nil, fmt.Errorf("arguments are not an object: %w", err)
	}
	return args, nil
}

// ListModels returns the installed model names.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(bodyBytes))}
	}

	var result struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrMalformedResponse, err)
	}

	names := make([]string, len(result.Models))
	for i, m := range result.Models {
		names[i] = m.Name
	}

	return names, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}
