package mail

import (
	"context"

	"tt-go/internal/tt"
)

// LogMailer writes activation links to the log instead of sending them.
type LogMailer struct {
	logger tt.Logger
}

var _ tt.Mailer = (*LogMailer)(nil)

func NewLogMailer(logger tt.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendActivation(ctx context.Context, msg tt.ActivationMail) error {
	m.logger.Info("activation mail", "to", msg.To, "link", msg.Link, "expires_at", msg.ExpiresAt.UTC())
	return nil
}
