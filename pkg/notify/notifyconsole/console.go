package notifyconsole

import (
	"context"

	"github.com/Abraxas-365/passgate/pkg/logx"
	"github.com/Abraxas-365/passgate/pkg/notify"
)

// ConsoleProvider logs outbound messages instead of sending them. Intended
// for development and tests. Message bodies are never printed: they carry
// one-time passcodes.
type ConsoleProvider struct{}

// NewConsoleProvider creates a new console provider.
func NewConsoleProvider() *ConsoleProvider {
	return &ConsoleProvider{}
}

// SendEmail logs email metadata.
func (p *ConsoleProvider) SendEmail(_ context.Context, msg notify.EmailMessage) error {
	logx.WithFields(logx.Fields{
		"channel": "email",
		"to":      msg.To,
		"subject": msg.Subject,
	}).Info("notify/console: message sent (dev mode)")
	return nil
}

// SendSMS logs SMS metadata.
func (p *ConsoleProvider) SendSMS(_ context.Context, msg notify.SMSMessage) error {
	logx.WithFields(logx.Fields{
		"channel":   "sms",
		"to":        msg.To,
		"body_size": len(msg.Body),
	}).Info("notify/console: message sent (dev mode)")
	return nil
}
