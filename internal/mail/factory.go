package mail

import (
	"fmt"

	"tt-go/internal/config"
	"tt-go/internal/tt"
)

// NewMailerFromConfig creates the Mailer named by cfg.Type.
func NewMailerFromConfig(cfg config.MailConfig, logger tt.Logger) (tt.Mailer, error) {
	switch cfg.Type {
	case "", "log":
		return NewLogMailer(logger), nil
	case "smtp":
		if cfg.SMTPHost == "" {
			return nil, fmt.Errorf("smtp mail requires smtp_host to be set")
		}
		return NewSMTPMailer(SMTPOptions{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.From,
		}), nil
	default:
		return nil, fmt.Errorf("unknown mail type: %s", cfg.Type)
	}
}
