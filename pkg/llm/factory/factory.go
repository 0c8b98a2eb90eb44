package factory

import (
	"fmt"
	"time"

	"tutorai-be/internal/config"
	"tutorai-be/pkg/llm"
	"tutorai-be/pkg/llm/groq"
	"tutorai-be/pkg/llm/ollama"
)

func NewLLMProvider(cfg config.AIConfig, apiKey string) (llm.LLMProvider, error) {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second

	switch cfg.LLMProvider {
	case "groq", "":
		return groq.NewGroqProvider(apiKey, cfg.GroqBaseURL, cfg.LLMModel, timeout), nil
	case "ollama":
		return ollama.NewOllamaProvider(cfg.OllamaBaseURL, cfg.LLMModel, timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}
}
