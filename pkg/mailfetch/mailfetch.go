package mailfetch

import (
	"context"
	"time"

	"invoice-processor-be/internal/entity"
)

type EmailAttachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// EmailMessage is one inbound unit as fetched from a mail source.
type EmailMessage struct {
	UID         uint32
	MessageID   string
	From        string
	To          string
	Subject     string
	Body        string
	ReceivedAt  time.Time
	Attachments []EmailAttachment
}

// Fetcher pulls unread messages from a configured mail source. A failing
// source must return an error, never crash the batch.
type Fetcher interface {
	FetchUnread(ctx context.Context, settings *entity.EmailSourceSettings) ([]*EmailMessage, error)
	MarkRead(ctx context.Context, settings *entity.EmailSourceSettings, uid uint32) error
}
