package notify

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/aarogyahealth/triage-platform/pkg/logging"
)

// Result is the dispatcher's outcome contract. Transport failures are
// reported here, never raised past the Send boundary.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Attachment names a file on disk plus the filename to declare to the
// recipient. A missing path is skipped with a warning, not a hard failure.
type Attachment struct {
	Path     string
	Filename string
}

// EmailMessage represents an email to be sent.
type EmailMessage struct {
	To          string
	ToName      string
	Subject     string
	Body        string // Plain text body
	HTML        string // Optional HTML body
	Attachments []Attachment
}

// Mailer sends formatted messages to a single recipient address. One
// outbound connection per call; no pooling, no retry.
type Mailer interface {
	Send(ctx context.Context, msg EmailMessage) Result
}

// SendGridSender sends emails via the SendGrid API.
type SendGridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	logger    *logging.Logger
}

// SendGridConfig holds configuration for SendGrid.
type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// NewSendGridSender creates a new SendGrid email sender. Returns nil when no
// API key is configured so callers can fall back to the stub.
func NewSendGridSender(cfg SendGridConfig, logger *logging.Logger) *SendGridSender {
	if cfg.APIKey == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.FromName == "" {
		cfg.FromName = "Aarogya Health"
	}
	return &SendGridSender{
		client:    sendgrid.NewSendClient(cfg.APIKey),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		logger:    logger,
	}
}

// Send delivers one email. Every failure mode collapses into the Result so
// callers never see a panic or error from the transport.
func (s *SendGridSender) Send(ctx context.Context, msg EmailMessage) Result {
	if s == nil || s.client == nil {
		return Result{Success: false, Message: "email sender not configured"}
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(msg.ToName, msg.To)

	body := msg.Body
	if body == "" {
		body = msg.HTML
	}
	html := msg.HTML
	if html == "" {
		html = msg.Body
	}
	message := mail.NewSingleEmail(from, msg.Subject, to, body, html)

	for _, att := range loadAttachments(msg.Attachments, s.logger) {
		message.AddAttachment(att)
	}

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		s.logger.Error("sendgrid send failed", "error", err, "to", msg.To)
		return Result{Success: false, Message: fmt.Sprintf("failed to send email: %v", err)}
	}
	if response.StatusCode >= 400 {
		s.logger.Error("sendgrid returned error status", "status", response.StatusCode, "to", msg.To)
		return Result{Success: false, Message: fmt.Sprintf("email provider returned status %d", response.StatusCode)}
	}

	s.logger.Info("email sent", "to", msg.To, "subject", msg.Subject, "status", response.StatusCode)
	return Result{Success: true, Message: fmt.Sprintf("email sent to %s", msg.To)}
}

// loadAttachments reads each attachment from disk. Files that cannot be read
// are logged and skipped; the send proceeds with whatever loaded.
func loadAttachments(specs []Attachment, logger *logging.Logger) []*mail.Attachment {
	if len(specs) == 0 {
		return nil
	}
	out := make([]*mail.Attachment, 0, len(specs))
	for _, spec := range specs {
		data, err := os.ReadFile(spec.Path)
		if err != nil {
			logger.Warn("skipping attachment, file not readable", "path", spec.Path, "error", err)
			continue
		}
		filename := spec.Filename
		if filename == "" {
			filename = filepath.Base(spec.Path)
		}
		contentType := mime.TypeByExtension(filepath.Ext(filename))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		att := mail.NewAttachment()
		att.SetContent(base64.StdEncoding.EncodeToString(data))
		att.SetType(contentType)
		att.SetFilename(filename)
		att.SetDisposition("attachment")
		out = append(out, att)
	}
	return out
}

// StubMailer logs instead of sending. Used in tests and when email is
// disabled.
type StubMailer struct {
	logger *logging.Logger
}

// NewStubMailer creates a stub mailer.
func NewStubMailer(logger *logging.Logger) *StubMailer {
	if logger == nil {
		logger = logging.Default()
	}
	return &StubMailer{logger: logger}
}

// Send logs the email but doesn't actually send it.
func (s *StubMailer) Send(ctx context.Context, msg EmailMessage) Result {
	s.logger.Info("stub mailer: would send email", "to", msg.To, "subject", msg.Subject, "attachments", len(msg.Attachments))
	return Result{Success: true, Message: fmt.Sprintf("email sent to %s", msg.To)}
}
