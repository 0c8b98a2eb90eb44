package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tutorai-be/internal/bootstrap"
	"tutorai-be/internal/config"
	"tutorai-be/internal/dto"
	"tutorai-be/internal/pkg/logger"
	"tutorai-be/internal/pkg/serverutils"
	"tutorai-be/internal/server"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(groqURL string) *config.Config {
	return &config.Config{
		App:     config.AppConfig{Port: "0", Environment: "test", CorsAllowedOrigins: "*", JwtSecret: "integration-secret"},
		Storage: config.StorageConfig{Driver: "memory", QuotaBytes: 5 * 1024 * 1024},
		Keys:    config.APIKeys{Groq: "test-key"},
		Ai:      config.AIConfig{LLMProvider: "groq", LLMModel: "llama-3.1-8b-instant", GroqBaseURL: groqURL, TimeoutSecs: 5},
		Tutor:   config.TutorConfig{YouTubeBaseURL: "http://127.0.0.1:1", PdfContextMaxChars: 12000, MaxUploadBytes: 10 * 1024 * 1024},
	}
}

func TestTutorAPI(t *testing.T) {
	groq := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Force equals mass times acceleration."}}]}`))
	}))
	defer groq.Close()

	cfg := newTestConfig(groq.URL)
	container, err := bootstrap.NewContainer(context.Background(), cfg, logger.NewNop())
	require.NoError(t, err)
	defer container.Close()

	app := server.New(cfg, container).GetApp()

	t.Run("public ask", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/ask", bytes.NewBufferString(`{"question":"Newton's second law?"}`))
		req.Header.Set("Content-Type", "application/json")
		res, err := app.Test(req)
		require.NoError(t, err)
		defer res.Body.Close()

		var body dto.AskResponse
		require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "Force equals mass times acceleration.", body.Answer)
	})

	t.Run("workspace ask", func(t *testing.T) {
		token, err := serverutils.SignToken(cfg.App.JwtSecret, "student-it")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/workspace/ask", bytes.NewBufferString(`{"question":"Newton's second law?"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		res, err := app.Test(req)
		require.NoError(t, err)
		defer res.Body.Close()

		var env serverutils.Response[dto.WorkspaceAskResponse]
		require.NoError(t, json.NewDecoder(res.Body).Decode(&env))
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.True(t, env.Success)
		assert.Equal(t, "Force equals mass times acceleration.", env.Data.Reply.Content)
	})

	t.Run("videos fall back without key", func(t *testing.T) {
		token, err := serverutils.SignToken(cfg.App.JwtSecret, "student-it")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/videos?course=physics", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		res, err := app.Test(req)
		require.NoError(t, err)
		defer res.Body.Close()

		var env serverutils.Response[dto.VideoListResponse]
		require.NoError(t, json.NewDecoder(res.Body).Decode(&env))
		assert.True(t, env.Data.Fallback)
		assert.Len(t, env.Data.Videos, 3)
	})
}
