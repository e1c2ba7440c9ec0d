package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"invoice-processor-be/internal/entity"
	"invoice-processor-be/pkg/doctext"
	"invoice-processor-be/pkg/llm"

	"github.com/sony/gobreaker/v2"
)

const extractionPrompt = `You are an invoice data extractor.
Decide whether the document below is an invoice and, if so, extract its fields.
Answer with a single JSON object and nothing else:
{"classification":"INVOICE"|"NOT_INVOICE","invoice_number":string,"invoice_date":"YYYY-MM-DD","supplier_name":string,"total_amount":number,"currency":string}
For NOT_INVOICE omit all fields except classification.

Document (filename: %s):
%s`

type llmResult struct {
	Classification string  `json:"classification"`
	InvoiceNumber  string  `json:"invoice_number"`
	InvoiceDate    string  `json:"invoice_date"`
	SupplierName   string  `json:"supplier_name"`
	TotalAmount    float64 `json:"total_amount"`
	Currency       string  `json:"currency"`
}

// LLMExtractor asks the configured model to classify + extract in one shot.
// The model call goes through a circuit breaker so a failing provider
// degrades to fast ERROR results instead of piling up timeouts.
type LLMExtractor struct {
	provider llm.Provider
	breaker  *gobreaker.CircuitBreaker[string]
}

var _ InvoiceExtractor = &LLMExtractor{}

func NewLLMExtractor(provider llm.Provider) *LLMExtractor {
	breaker := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:    "llm-extractor",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &LLMExtractor{
		provider: provider,
		breaker:  breaker,
	}
}

func (e *LLMExtractor) Extract(ctx context.Context, doc *entity.Document, content []byte) (*Result, error) {
	text, err := doctext.Extract(doc.Type, doc.Filename, content)
	if err != nil {
		return nil, fmt.Errorf("load document text: %w", err)
	}
	text = doctext.Truncate(text)

	filename := ""
	if doc.Filename != nil {
		filename = *doc.Filename
	}
	prompt := fmt.Sprintf(extractionPrompt, filename, text)

	reply, err := e.breaker.Execute(func() (string, error) {
		return e.provider.Generate(ctx, prompt, llm.WithTemperature(0))
	})
	if err != nil {
		return nil, fmt.Errorf("llm extraction call: %w", err)
	}

	return parseResult(reply)
}

func parseResult(reply string) (*Result, error) {
	cleaned := strings.TrimSpace(reply)
	// Models occasionally wrap the JSON in a markdown fence.
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var raw llmResult
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, fmt.Errorf("parse extraction reply: %w", err)
	}

	result := &Result{
		InvoiceNumber: raw.InvoiceNumber,
		SupplierName:  raw.SupplierName,
		TotalAmount:   raw.TotalAmount,
		Currency:      raw.Currency,
	}

	switch strings.ToUpper(strings.TrimSpace(raw.Classification)) {
	case "INVOICE":
		result.Classification = entity.ClassificationInvoice
	case "NOT_INVOICE":
		result.Classification = entity.ClassificationNotInvoice
	default:
		return nil, fmt.Errorf("unknown classification %q in extraction reply", raw.Classification)
	}

	if raw.InvoiceDate != "" {
		date, err := time.Parse("2006-01-02", raw.InvoiceDate)
		if err != nil {
			return nil, fmt.Errorf("parse invoice date %q: %w", raw.InvoiceDate, err)
		}
		result.InvoiceDate = date
	}

	return result, nil
}
