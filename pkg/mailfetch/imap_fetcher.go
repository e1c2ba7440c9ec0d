package mailfetch

import (
	"context"
	"fmt"
	"io"
	"strings"

	"invoice-processor-be/internal/entity"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-message/mail"
)

// ImapFetcher connects per call, like the rest of the integration
// adapters: settings can change between imports without a restart.
type ImapFetcher struct{}

var _ Fetcher = &ImapFetcher{}

func NewImapFetcher() *ImapFetcher {
	return &ImapFetcher{}
}

func (f *ImapFetcher) connect(settings *entity.EmailSourceSettings) (*client.Client, error) {
	addr := fmt.Sprintf("%s:%d", settings.Host, settings.Port)

	var c *client.Client
	var err error
	if settings.UseSSL {
		c, err = client.DialTLS(addr, nil)
	} else {
		c, err = client.Dial(addr)
	}
	if err != nil {
		return nil, fmt.Errorf("dial imap %s: %w", addr, err)
	}

	if err := c.Login(settings.Username, settings.Password); err != nil {
		c.Logout()
		return nil, fmt.Errorf("imap login as %s: %w", settings.Username, err)
	}

	return c, nil
}

func (f *ImapFetcher) FetchUnread(ctx context.Context, settings *entity.EmailSourceSettings) ([]*EmailMessage, error) {
	c, err := f.connect(settings)
	if err != nil {
		return nil, err
	}
	defer c.Logout()

	if _, err := c.Select(settings.Folder, false); err != nil {
		return nil, fmt.Errorf("select folder %s: %w", settings.Folder, err)
	}

	criteria := imap.NewSearchCriteria()
	criteria.WithoutFlags = []string{imap.SeenFlag}
	uids, err := c.UidSearch(criteria)
	if err != nil {
		return nil, fmt.Errorf("search unread: %w", err)
	}
	if len(uids) == 0 {
		return nil, nil
	}

	seqset := new(imap.SeqSet)
	seqset.AddNum(uids...)

	section := &imap.BodySectionName{}
	items := []imap.FetchItem{imap.FetchUid, imap.FetchEnvelope, section.FetchItem()}

	ch := make(chan *imap.Message, 10)
	done := make(chan error, 1)
	go func() {
		done <- c.UidFetch(seqset, items, ch)
	}()

	var messages []*EmailMessage
	for msg := range ch {
		parsed, err := parseMessage(msg, section)
		if err != nil {
			// One unparsable message must not sink the rest of the fetch.
			continue
		}
		messages = append(messages, parsed)
	}

	select {
	case err := <-done:
		if err != nil {
			return nil, fmt.Errorf("fetch messages: %w", err)
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return messages, nil
}

func (f *ImapFetcher) MarkRead(ctx context.Context, settings *entity.EmailSourceSettings, uid uint32) error {
	c, err := f.connect(settings)
	if err != nil {
		return err
	}
	defer c.Logout()

	if _, err := c.Select(settings.Folder, false); err != nil {
		return fmt.Errorf("select folder %s: %w", settings.Folder, err)
	}

	seqset := new(imap.SeqSet)
	seqset.AddNum(uid)

	op := imap.FormatFlagsOp(imap.AddFlags, true)
	flags := []interface{}{imap.SeenFlag}
	if err := c.UidStore(seqset, op, flags, nil); err != nil {
		return fmt.Errorf("mark uid %d seen: %w", uid, err)
	}
	return nil
}

func parseMessage(msg *imap.Message, section *imap.BodySectionName) (*EmailMessage, error) {
	body := msg.GetBody(section)
	if body == nil {
		return nil, fmt.Errorf("message %d has no body section", msg.Uid)
	}

	mr, err := mail.CreateReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse message %d: %w", msg.Uid, err)
	}

	result := &EmailMessage{
		UID: msg.Uid,
	}

	header := mr.Header
	if subject, err := header.Subject(); err == nil {
		result.Subject = subject
	}
	if date, err := header.Date(); err == nil {
		result.ReceivedAt = date
	}
	if msgID, err := header.MessageID(); err == nil {
		result.MessageID = msgID
	}
	if from, err := header.AddressList("From"); err == nil && len(from) > 0 {
		result.From = from[0].Address
	}
	if to, err := header.AddressList("To"); err == nil && len(to) > 0 {
		result.To = to[0].Address
	}

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read part of message %d: %w", msg.Uid, err)
		}

		switch h := part.Header.(type) {
		case *mail.InlineHeader:
			contentType, _, _ := h.ContentType()
			if result.Body == "" && strings.HasPrefix(contentType, "text/") {
				content, err := io.ReadAll(part.Body)
				if err == nil {
					result.Body = string(content)
				}
			}
		case *mail.AttachmentHeader:
			filename, _ := h.Filename()
			contentType, _, _ := h.ContentType()
			content, err := io.ReadAll(part.Body)
			if err != nil {
				continue
			}
			result.Attachments = append(result.Attachments, EmailAttachment{
				Filename:    filename,
				ContentType: contentType,
				Content:     content,
			})
		}
	}

	return result, nil
}
