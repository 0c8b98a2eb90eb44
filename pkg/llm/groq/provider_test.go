package groq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tutorai-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatSendsCompletionRequest(t *testing.T) {
	var got chatRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		auth = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Hi there!"}}]}`))
	}))
	defer srv.Close()

	p := NewGroqProvider("secret", srv.URL, "", time.Second)
	answer, err := p.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleSystem, Content: "be nice"},
		{Role: llm.RoleUser, Content: "hello"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Hi there!", answer)
	assert.Equal(t, "Bearer secret", auth)
	assert.Equal(t, DefaultModel, got.Model)
	assert.Equal(t, 1000, got.MaxTokens)
	assert.InDelta(t, 0.7, got.Temperature, 1e-9)
	assert.Len(t, got.Messages, 2)
}

func TestChatOptionsOverrideDefaults(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	p := NewGroqProvider("", srv.URL, "llama-3.1-8b-instant", time.Second)
	_, err := p.Generate(context.Background(), "q", llm.WithModel("other"), llm.WithMaxTokens(50), llm.WithTemperature(0.1))

	require.NoError(t, err)
	assert.Equal(t, "other", got.Model)
	assert.Equal(t, 50, got.MaxTokens)
	assert.Equal(t, llm.RoleUser, got.Messages[0].Role)
}

func TestChatResponses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    string
		wantErr bool
	}{
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`, want: ""},
		{name: "api error", status: http.StatusUnauthorized, body: `{"error":{"message":"Invalid API Key"}}`, wantErr: true},
		{name: "plain error", status: http.StatusBadGateway, body: `bad gateway`, wantErr: true},
		{name: "broken json", status: http.StatusOK, body: `{`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			got, err := NewGroqProvider("k", srv.URL, "", time.Second).Generate(context.Background(), "q")

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
