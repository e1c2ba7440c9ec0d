package factory

import (
	"fmt"

	"invoice-processor-be/pkg/llm"
	"invoice-processor-be/pkg/llm/openai"
	"invoice-processor-be/pkg/llm/stub"
)

func NewLLMProvider(providerType, modelName, apiURL, apiKey string) (llm.Provider, error) {
	switch providerType {
	case "openai":
		if modelName == "" {
			modelName = "gpt-4o-mini"
		}
		return openai.NewOpenAIProvider(apiKey, apiURL, modelName), nil
	case "stub":
		return stub.NewStubProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
