package mail

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"tt-go/internal/tt"
)

// SMTPOptions configures an SMTPMailer.
type SMTPOptions struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer sends plain-text activation mail through a relay.
type SMTPMailer struct {
	opts SMTPOptions
	send sendFunc
	now  func() time.Time
}

var _ tt.Mailer = (*SMTPMailer)(nil)

func NewSMTPMailer(opts SMTPOptions) *SMTPMailer {
	if opts.Port == 0 {
		opts.Port = 587
	}
	return &SMTPMailer{opts: opts, send: smtp.SendMail, now: time.Now}
}

func (m *SMTPMailer) SendActivation(ctx context.Context, msg tt.ActivationMail) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.ContainsAny(msg.To, "\r\n") {
		return fmt.Errorf("invalid recipient %q", msg.To)
	}
	body, err := renderActivation(msg)
	if err != nil {
		return err
	}

	var auth smtp.Auth
	if m.opts.Username != "" {
		auth = smtp.PlainAuth("", m.opts.Username, m.opts.Password, m.opts.Host)
	}
	addr := net.JoinHostPort(m.opts.Host, strconv.Itoa(m.opts.Port))
	if err := m.send(addr, auth, m.opts.From, []string{msg.To}, m.compose(msg.To, body)); err != nil {
		return fmt.Errorf("sending mail to %s: %w", msg.To, err)
	}
	return nil
}

func (m *SMTPMailer) compose(to, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.opts.From)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", activationSubject)
	fmt.Fprintf(&b, "Date: %s\r\n", m.now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(b.String())
}
