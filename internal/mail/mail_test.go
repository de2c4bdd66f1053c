package mail

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"tt-go/internal/config"
	"tt-go/internal/tt"
)

type recordingLogger struct {
	tt.NopLogger
	lines []string
}

func (l *recordingLogger) Info(msg string, args ...any) {
	l.lines = append(l.lines, fmt.Sprint(append([]any{msg}, args...)...))
}

var testMail = tt.ActivationMail{
	To:        "ada@example.com",
	Name:      "Ada",
	Link:      "https://tt.example.com/activate/tok-1",
	ExpiresAt: time.Date(2024, 3, 3, 9, 0, 0, 0, time.UTC),
}

func TestLogMailer(t *testing.T) {
	logger := &recordingLogger{}
	if err := NewLogMailer(logger).SendActivation(context.Background(), testMail); err != nil {
		t.Fatalf("SendActivation() error = %v", err)
	}
	if len(logger.lines) != 1 || !strings.Contains(logger.lines[0], testMail.Link) {
		t.Errorf("logged %v, want one line containing the link", logger.lines)
	}
}

func TestSMTPMailer_SendActivation(t *testing.T) {
	var (
		gotAddr string
		gotFrom string
		gotTo   []string
		gotMsg  string
		gotAuth smtp.Auth
	)
	m := NewSMTPMailer(SMTPOptions{Host: "smtp.example.com", Username: "u", Password: "p", From: "tt@example.com"})
	m.now = func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotAuth, gotFrom, gotTo, gotMsg = addr, a, from, to, string(msg)
		return nil
	}

	if err := m.SendActivation(context.Background(), testMail); err != nil {
		t.Fatalf("SendActivation() error = %v", err)
	}

	if gotAddr != "smtp.example.com:587" {
		t.Errorf("addr = %q, want default port 587", gotAddr)
	}
	if gotAuth == nil {
		t.Error("auth = nil, want plain auth")
	}
	if gotFrom != "tt@example.com" || len(gotTo) != 1 || gotTo[0] != "ada@example.com" {
		t.Errorf("envelope = %q -> %v", gotFrom, gotTo)
	}
	for _, want := range []string{
		"Subject: " + activationSubject + "\r\n",
		"To: ada@example.com\r\n",
		"Hello Ada,",
		testMail.Link,
		"2024-03-03 09:00 UTC",
	} {
		if !strings.Contains(gotMsg, want) {
			t.Errorf("message missing %q:\n%s", want, gotMsg)
		}
	}
}

func TestSMTPMailer_Errors(t *testing.T) {
	m := NewSMTPMailer(SMTPOptions{Host: "smtp.example.com", From: "tt@example.com"})
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("relay down")
	}

	if err := m.SendActivation(context.Background(), testMail); err == nil || !strings.Contains(err.Error(), "relay down") {
		t.Errorf("SendActivation() error = %v, want relay error", err)
	}

	bad := testMail
	bad.To = "ada@example.com\r\nBcc: eve@example.com"
	if err := m.SendActivation(context.Background(), bad); err == nil {
		t.Error("SendActivation() with header injection expected error, got nil")
	}
}

func TestNewMailerFromConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.MailConfig
		want    string
		wantErr bool
	}{
		{name: "default", cfg: config.MailConfig{}, want: "*mail.LogMailer"},
		{name: "log", cfg: config.MailConfig{Type: "log"}, want: "*mail.LogMailer"},
		{name: "smtp", cfg: config.MailConfig{Type: "smtp", SMTPHost: "smtp.example.com"}, want: "*mail.SMTPMailer"},
		{name: "smtp without host", cfg: config.MailConfig{Type: "smtp"}, wantErr: true},
		{name: "unknown", cfg: config.MailConfig{Type: "pigeon"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewMailerFromConfig(tt.cfg, &recordingLogger{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewMailerFromConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && fmt.Sprintf("%T", got) != tt.want {
				t.Errorf("NewMailerFromConfig() = %T, want %s", got, tt.want)
			}
		})
	}
}
