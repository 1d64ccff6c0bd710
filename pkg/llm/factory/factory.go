package factory

import (
	"fmt"

	"github.com/sihanyu03/LawTriposChatbot/pkg/llm"
	"github.com/sihanyu03/LawTriposChatbot/pkg/llm/openaillm"
)

func NewLLMProvider(providerType, modelName, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "openai", "":
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is not set")
		}
		return openaillm.NewOpenAIProvider(apiKey, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
