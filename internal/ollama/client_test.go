package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ashutoshrp06/vragent/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, Model: "test-model", Timeout: 2 * time.Second})
}

func TestChat_RequestWireFormat(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"model":"test-model","message":{"role":"assistant","content":"ok"},"done":true}`))
	})

	messages := []types.Message{
		{Role: types.RoleSystem, Content: "rules"},
		{Role: types.RoleUser, Content: "context"},
		{Role: types.RoleAssistant, ToolCalls: []types.ToolCall{{Function: types.ToolCallFunction{Name: "say", Arguments: map[string]any{"text": "hi"}}}}},
	}
	tools := ToolsFromDefinitions([]types.ActionDefinition{{
		Name:        "say",
		Description: "Say something.",
		Parameters:  []types.ParameterDefinition{{Name: "text", Type: "string", Description: "Text", Required: true}},
	}})

	_, err := client.Chat(context.Background(), messages, tools)
	require.NoError(t, err)

	assert.Equal(t, "test-model", got["model"])
	assert.Equal(t, false, got["stream"])
	assert.NotContains(t, got, "options")

	msgs := got["messages"].([]any)
	require.Len(t, msgs, 3)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.NotContains(t, msgs[1].(map[string]any), "tool_calls")
	call := msgs[2].(map[string]any)["tool_calls"].([]any)[0].(map[string]any)["function"].(map[string]any)
	assert.Equal(t, "say", call["name"])
	assert.Equal(t, map[string]any{"text": "hi"}, call["arguments"])

	tool := got["tools"].([]any)[0].(map[string]any)
	assert.Equal(t, "function", tool["type"])
	fn := tool["function"].(map[string]any)
	assert.Equal(t, "say", fn["name"])
	params := fn["parameters"].(map[string]any)
	assert.Equal(t, "object", params["type"])
	assert.Equal(t, []any{"text"}, params["required"])
	assert.Equal(t, map[string]any{"type": "string", "description": "Text"}, params["properties"].(map[string]any)["text"])
}

func TestChat_TemperatureOption(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"message":{"role":"assistant"}}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Model: "m", Temperature: 0.2})
	_, err := client.Chat(context.Background(), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"temperature": 0.2}, got["options"])
}

func TestChat_ParsesToolCalls(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"model": "test-model",
			"message": {
				"role": "assistant",
				"content": "I see the lamp",
				"tool_calls": [
					{"function": {"name": "lookAt", "arguments": {"objectId": "lamp1"}}},
					{"function": {"name": "moveTo", "arguments": "{\"x\": 3, \"z\": 3}"}},
					{"function": {"name": "done", "arguments": null}}
				]
			},
			"done": true
		}`))
	})

	resp, err := client.Chat(context.Background(), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "assistant", resp.Message.Role)
	assert.Equal(t, "I see the lamp", resp.Message.Content)
	require.Len(t, resp.Message.ToolCalls, 3)
	assert.Equal(t, map[string]any{"objectId": "lamp1"}, resp.Message.ToolCalls[0].Function.Arguments)
	assert.Equal(t, map[string]any{"x": 3.0, "z": 3.0}, resp.Message.ToolCalls[1].Function.Arguments)
	assert.Equal(t, map[string]any{}, resp.Message.ToolCalls[2].Function.Arguments)
}

func TestChat_MissingMessageIsEmptyReply(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"model":"test-model","done":true}`))
	})

	resp, err := client.Chat(context.Background(), nil, nil)
	require.NoError(t, err)

	assert.Empty(t, resp.Message.Content)
	assert.Empty(t, resp.Message.ToolCalls)
}

func TestChat_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	_, err := client.Chat(context.Background(), nil, nil)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestChat_ArgumentsNotAnObject(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":{"role":"assistant","tool_calls":[` +
			`{"function":{"name":"say","arguments":[1,2]}},` +
			`{"function":{"name":"lookAt","arguments":{"objectId":"lamp1"}}}]}}`))
	})

	resp, err := client.Chat(context.Background(), nil, nil)
	require.NoError(t, err)

	require.Len(t, resp.Message.ToolCalls, 2)
	bad := resp.Message.ToolCalls[0].Function
	assert.Equal(t, "say", bad.Name)
	assert.Equal(t, map[string]any{}, bad.Arguments)
	assert.Contains(t, bad.ArgumentsError, "tool call 0")
	ok := resp.Message.ToolCalls[1].Function
	assert.Equal(t, map[string]any{"objectId": "lamp1"}, ok.Arguments)
	assert.Empty(t, ok.ArgumentsError)
}

func TestChat_StatusError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `model "test-model" not found`, http.StatusNotFound)
	})

	_, err := client.Chat(context.Background(), nil, nil)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, `model "test-model" not found`, statusErr.Body)
	assert.Contains(t, err.Error(), "404")
}

func TestChat_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(Config{BaseURL: url, Model: "m", Timeout: time.Second})
	_, err := client.Chat(context.Background(), nil, nil)

	assert.ErrorIs(t, err, ErrUnreachable)
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestChat_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := NewClient(Config{BaseURL: srv.URL, Model: "m", Timeout: 50 * time.Millisecond})
	_, err := client.Chat(context.Background(), nil, nil)

	assert.ErrorIs(t, err, ErrTimeout)
}

func TestChat_ContextDeadline(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := NewClient(Config{BaseURL: srv.URL, Model: "m", Timeout: 5 * time.Second})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Chat(ctx, nil, nil)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestListModels(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.Write([]byte(`{"models":[{"name":"qwen3:8b"},{"name":"llama3.1:8b"}]}`))
	})

	models, err := client.ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"qwen3:8b", "llama3.1:8b"}, models)
}

func TestListModels_StatusError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.ListModels(context.Background())
	var statusErr *StatusError
	assert.True(t, errors.As(err, &statusErr))
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://localhost:11434/", Model: "qwen3:8b"})

	assert.Equal(t, "http://localhost:11434", client.BaseURL())
	assert.Equal(t, "qwen3:8b", client.Model())
	assert.Equal(t, 120*time.Second, client.httpClient.Timeout)
}

func TestToolsFromDefinitions_NoParameters(t *testing.T) {
	tools := ToolsFromDefinitions([]types.ActionDefinition{{Name: "wave", Description: "Wave."}})

	require.Len(t, tools, 1)
	assert.NotNil(t, tools[0].Function.Parameters.Required)
	assert.Empty(t, tools[0].Function.Parameters.Properties)
}
