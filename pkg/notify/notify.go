package notify

import (
	"context"
)

// EmailSender sends a single email.
type EmailSender interface {
	SendEmail(ctx context.Context, msg EmailMessage) error
}

// SMSSender sends a single text message.
type SMSSender interface {
	SendSMS(ctx context.Context, msg SMSMessage) error
}

// Client is the entry point for outbound notifications. Either provider may
// be nil; sending on a missing channel fails with ErrNoProvider.
type Client struct {
	email     EmailSender
	sms       SMSSender
	templates *TemplateRegistry
}

// NewClient creates a notification client over the given providers.
func NewClient(email EmailSender, sms SMSSender) *Client {
	return &Client{
		email:     email,
		sms:       sms,
		templates: NewTemplateRegistry(),
	}
}

// SendEmail validates and sends an email through the configured provider.
func (c *Client) SendEmail(ctx context.Context, msg EmailMessage) error {
	if c.email == nil {
		return notifyErrors.New(ErrNoProvider).WithDetail("channel", "email")
	}
	if len(msg.To) == 0 {
		return notifyErrors.New(ErrInvalidMessage).WithDetail("reason", "no recipients")
	}
	if msg.Subject == "" {
		return notifyErrors.New(ErrInvalidMessage).WithDetail("reason", "empty subject")
	}
	return c.email.SendEmail(ctx, msg)
}

// SendSMS validates and sends a text message through the configured provider.
func (c *Client) SendSMS(ctx context.Context, msg SMSMessage) error {
	if c.sms == nil {
		return notifyErrors.New(ErrNoProvider).WithDetail("channel", "sms")
	}
	if msg.To == "" {
		return notifyErrors.New(ErrInvalidMessage).WithDetail("reason", "no recipient")
	}
	if msg.Body == "" {
		return notifyErrors.New(ErrInvalidMessage).WithDetail("reason", "empty body")
	}
	return c.sms.SendSMS(ctx, msg)
}

// RegisterTemplate parses and stores a named template for later use.
func (c *Client) RegisterTemplate(name, tmpl string) error {
	return c.templates.Register(name, tmpl)
}

// SendTemplatedEmail renders a registered template into the HTML body and
// sends the resulting email.
func (c *Client) SendTemplatedEmail(ctx context.Context, templateName string, data interface{}, msg EmailMessage) error {
	body, err := c.templates.Render(templateName, data)
	if err != nil {
		return err
	}
	msg.HTMLBody = body
	return c.SendEmail(ctx, msg)
}
