package stub

import (
	"context"
	"strings"

	"invoice-processor-be/pkg/llm"
)

// StubProvider is a deterministic offline provider for development and
// tests. Prompts mentioning "invoice" get a canned invoice-extraction JSON
// answer; everything else gets a fixed reply.
type StubProvider struct{}

var _ llm.Provider = &StubProvider{}

func NewStubProvider() *StubProvider {
	return &StubProvider{}
}

func (s *StubProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	if len(history) == 0 {
		return "", nil
	}

	var sb strings.Builder
	for _, msg := range history {
		sb.WriteString(strings.ToLower(msg.Content))
		sb.WriteString("\n")
	}
	combined := sb.String()

	if strings.Contains(combined, "invoice") && strings.Contains(combined, "json") {
		return `{"classification":"INVOICE","invoice_number":"INV-STUB-0001","invoice_date":"2026-01-15","supplier_name":"Example Supplier Inc.","total_amount":1234.56,"currency":"EUR"}`, nil
	}
	if strings.Contains(combined, "json") {
		return `{"classification":"NOT_INVOICE"}`, nil
	}

	return "This is a stub reply. Configure a real LLM provider for live answers.", nil
}

func (s *StubProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}
