package store

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one role-tagged turn in a chat session.
type ChatMessage struct {
	Role    string // "user" or "assistant"
	Content string
	SentAt  time.Time
}

// ChatSession is process-local conversational state. Binding a document
// records a reference only; the document itself is never mutated through
// the session.
type ChatSession struct {
	ID              string
	Messages        []ChatMessage
	BoundDocumentId *uuid.UUID
	CreatedAt       time.Time
}

func NewChatSession() *ChatSession {
	return &ChatSession{
		ID:        uuid.NewString(),
		Messages:  make([]ChatMessage, 0),
		CreatedAt: time.Now(),
	}
}

func (s *ChatSession) Append(role, content string) {
	s.Messages = append(s.Messages, ChatMessage{
		Role:    role,
		Content: content,
		SentAt:  time.Now(),
	})
}

func (s *ChatSession) BindDocument(documentId uuid.UUID) {
	s.BoundDocumentId = &documentId
}
