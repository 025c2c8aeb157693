package otpinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/Abraxas-365/passgate/pkg/kernel"
	"github.com/Abraxas-365/passgate/pkg/notify"
	"github.com/Abraxas-365/passgate/pkg/otp"
)

const codeEmailTemplate = `
<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto;">
  <h2>{{.AppName}}</h2>
  <p>Your verification code is:</p>
  <p style="font-size: 32px; letter-spacing: 6px; font-weight: bold;">{{.Code}}</p>
  <p>It expires in {{.ExpiresMinutes}} minutes. If you did not request it, ignore this message.</p>
</div>`

const codeEmailTemplateName = "otp_code"

// EmailNotifier delivers codes over email through the notify client.
type EmailNotifier struct {
	client  *notify.Client
	from    string
	subject string
	appName string
	ttl     time.Duration
}

// NewEmailNotifier creates an email notifier; registers the code template on
// the client.
func NewEmailNotifier(client *notify.Client, from, subject, appName string, ttl time.Duration) (*EmailNotifier, error) {
	if err := client.RegisterTemplate(codeEmailTemplateName, codeEmailTemplate); err != nil {
		return nil, err
	}
	return &EmailNotifier{client: client, from: from, subject: subject, appName: appName, ttl: ttl}, nil
}

// Send emails the code to the destination.
func (n *EmailNotifier) Send(ctx context.Context, destination kernel.Destination, code string) error {
	data := struct {
		AppName        string
		Code           string
		ExpiresMinutes int
	}{
		AppName:        n.appName,
		Code:           code,
		ExpiresMinutes: int(n.ttl / time.Minute),
	}

	return n.client.SendTemplatedEmail(ctx, codeEmailTemplateName, data, notify.EmailMessage{
		From:    n.from,
		To:      []string{destination.String()},
		Subject: n.subject,
	})
}

// SMSNotifier delivers codes over SMS through the notify client.
type SMSNotifier struct {
	client   *notify.Client
	senderID string
	ttl      time.Duration
}

// NewSMSNotifier creates an SMS notifier.
func NewSMSNotifier(client *notify.Client, senderID string, ttl time.Duration) *SMSNotifier {
	return &SMSNotifier{client: client, senderID: senderID, ttl: ttl}
}

// Send texts the code to the destination.
func (n *SMSNotifier) Send(ctx context.Context, destination kernel.Destination, code string) error {
	return n.client.SendSMS(ctx, notify.SMSMessage{
		To:       destination.String(),
		SenderID: n.senderID,
		Body: fmt.Sprintf("Your verification code is %s. It expires in %d minutes.",
			code, int(n.ttl/time.Minute)),
	})
}

// ChannelNotifier routes a send to the email or sms notifier based on the
// destination's syntax. This is what lets one service instance cover both
// channels with a single policy.
type ChannelNotifier struct {
	email otp.Notifier
	sms   otp.Notifier
}

// NewChannelNotifier creates the routing notifier.
func NewChannelNotifier(email, sms otp.Notifier) *ChannelNotifier {
	return &ChannelNotifier{email: email, sms: sms}
}

// Send dispatches to the notifier matching the destination's channel.
func (n *ChannelNotifier) Send(ctx context.Context, destination kernel.Destination, code string) error {
	channel, ok := destination.Channel()
	if !ok {
		return otp.ErrInvalidDestination()
	}
	switch channel {
	case kernel.ChannelSMS:
		return n.sms.Send(ctx, destination, code)
	default:
		return n.email.Send(ctx, destination, code)
	}
}
