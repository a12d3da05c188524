package notification

import (
	"encoding/json"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"campusbook/models"

	"github.com/hibiken/asynq"
)

// TypeEmailDeliver is the queue task type for outgoing notification emails.
const TypeEmailDeliver = "email:deliver"

// NewEmailTask packs an email payload into a queue task. Delivery retries a
// few times with the queue's default backoff before giving up.
func NewEmailTask(payload models.EmailTaskPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeEmailDeliver, b)
	opts := []asynq.Option{asynq.MaxRetry(3), asynq.Timeout(30 * time.Second)}

	return task, opts, nil
}

// EmailSender delivers a single plain-text email.
type EmailSender interface {
	Send(to, subject, body string) error
}

// SMTPSender sends email via unauthenticated SMTP, enough for a campus relay
// or a Mailpit instance in development.
type SMTPSender struct {
	addr string
	from string
}

func NewSMTPSender(host, port, from string) *SMTPSender {
	host = strings.TrimSpace(host)
	port = strings.TrimSpace(port)
	from = strings.TrimSpace(from)
	if from == "" {
		from = "no-reply@campusbook.local"
	}
	return &SMTPSender{
		addr: fmt.Sprintf("%s:%s", host, port),
		from: from,
	}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	msg := buildMessage(s.from, to, subject, body)
	return smtp.SendMail(s.addr, nil, s.from, []string{to}, []byte(msg))
}

func buildMessage(from, to, subject, body string) string {
	// Minimal RFC 5322 message.
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		from,
		to,
		subject,
		body,
	)
}
