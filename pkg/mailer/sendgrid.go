package mailer

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

var (
	host     = "https://api.sendgrid.com"
	endpoint = "/v3/mail/send"
)

// Message is a single outbound email.
type Message struct {
	ToName      string
	ToEmail     string
	Subject     string
	TextContent string
	HTMLContent string
}

// Mailer delivers messages. Callers own retry policy.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SendgridMailer sends via the SendGrid v3 mail API.
type SendgridMailer struct {
	key    string
	from   *sgmail.Email
	logger *zap.Logger
}

// NewSendgridMailer builds a mailer with the given API key and sender identity.
func NewSendgridMailer(key, fromName, fromEmail string, logger *zap.Logger) *SendgridMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SendgridMailer{
		key:    key,
		from:   sgmail.NewEmail(fromName, fromEmail),
		logger: logger,
	}
}

// Send posts the message to SendGrid and fails on any non-2xx response.
func (m *SendgridMailer) Send(ctx context.Context, msg Message) error {
	if msg.ToEmail == "" {
		return fmt.Errorf("message has no recipient")
	}

	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	p.AddTos(sgmail.NewEmail(msg.ToName, msg.ToEmail))

	v3 := sgmail.NewV3Mail()
	v3.SetFrom(m.from)
	v3.AddPersonalizations(p)
	if msg.TextContent != "" {
		v3.AddContent(sgmail.NewContent("text/plain", msg.TextContent))
	}
	if msg.HTMLContent != "" {
		v3.AddContent(sgmail.NewContent("text/html", msg.HTMLContent))
	}

	req := sendgrid.GetRequest(m.key, endpoint, host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(v3)

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		m.logger.Warn("sendgrid rejected message",
			zap.Int("status", res.StatusCode),
			zap.String("body", res.Body),
		)
		return fmt.Errorf("send email: sendgrid status %d", res.StatusCode)
	}
	return nil
}
