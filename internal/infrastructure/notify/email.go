package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/config"
	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/ports"
)

// EmailNotifier delivers the run summary over SMTP.
type EmailNotifier struct {
	cfg config.EmailConfig
}

var _ ports.Notifier = (*EmailNotifier)(nil)

// NewEmailNotifier wires SMTP relay settings.
func NewEmailNotifier(cfg config.EmailConfig) *EmailNotifier {
	return &EmailNotifier{cfg: cfg}
}

// SendRunSummary sends the plain-text report to the configured recipients.
func (n *EmailNotifier) SendRunSummary(_ context.Context, subject, body string) error {
	if n.cfg.Host == "" || len(n.cfg.To) == 0 {
		return fmt.Errorf("email notifier misconfigured")
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", n.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(n.cfg.To, ", "))
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)

	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, n.cfg.From, n.cfg.To, []byte(msg.String())); err != nil {
		return fmt.Errorf("send summary email: %w", err)
	}

	return nil
}
