package factory

import (
	"fmt"

	"ai-coursechat-be/pkg/llm"
	"ai-coursechat-be/pkg/llm/anthropic"
	"ai-coursechat-be/pkg/llm/ollama"
)

func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.ToolCallingProvider, error) {
	switch providerType {
	case "anthropic":
		return anthropic.NewAnthropicProvider(apiKey, modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
