package dto

import (
	"time"

	"github.com/google/uuid"
)

type ChatRequest struct {
	SessionId  string     `json:"session_id"`
	Message    string     `json:"message" validate:"required"`
	DocumentId *uuid.UUID `json:"document_id"`
}

type ChatMessageResponse struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	SentAt  time.Time `json:"sent_at"`
}

type ChatResponse struct {
	SessionId       string     `json:"session_id"`
	Reply           string     `json:"reply"`
	BoundDocumentId *uuid.UUID `json:"bound_document_id,omitempty"`
}

type ChatHistoryResponse struct {
	SessionId       string                `json:"session_id"`
	Messages        []ChatMessageResponse `json:"messages"`
	BoundDocumentId *uuid.UUID            `json:"bound_document_id,omitempty"`
}
