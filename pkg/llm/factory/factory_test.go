package factory

import (
	"testing"

	"tutorai-be/internal/config"
	"tutorai-be/pkg/llm/groq"
	"tutorai-be/pkg/llm/ollama"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	p, err := NewLLMProvider(config.AIConfig{LLMProvider: "groq", TimeoutSecs: 30}, "key")
	require.NoError(t, err)
	assert.IsType(t, &groq.GroqProvider{}, p)

	p, err = NewLLMProvider(config.AIConfig{LLMProvider: "ollama", LLMModel: "llama3"}, "")
	require.NoError(t, err)
	assert.IsType(t, &ollama.OllamaProvider{}, p)

	_, err = NewLLMProvider(config.AIConfig{LLMProvider: "openai"}, "")
	assert.Error(t, err)
}
