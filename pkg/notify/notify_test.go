package notify_test

import (
	"context"
	"strings"
	"testing"

	"github.com/Abraxas-365/passgate/pkg/errx"
	"github.com/Abraxas-365/passgate/pkg/notify"
)

type fakeEmailSender struct {
	sent []notify.EmailMessage
}

func (f *fakeEmailSender) SendEmail(_ context.Context, msg notify.EmailMessage) error {
	f.sent = append(f.sent, msg)
	return nil
}

type fakeSMSSender struct {
	sent []notify.SMSMessage
}

func (f *fakeSMSSender) SendSMS(_ context.Context, msg notify.SMSMessage) error {
	f.sent = append(f.sent, msg)
	return nil
}

func TestClient_SendEmail_Validation(t *testing.T) {
	email := &fakeEmailSender{}
	client := notify.NewClient(email, nil)
	ctx := context.Background()

	err := client.SendEmail(ctx, notify.EmailMessage{Subject: "Hi"})
	if !errx.IsCode(err, notify.ErrInvalidMessage) {
		t.Fatalf("expected INVALID_MESSAGE for missing recipients, got %v", err)
	}

	err = client.SendEmail(ctx, notify.EmailMessage{To: []string{"a@b.com"}})
	if !errx.IsCode(err, notify.ErrInvalidMessage) {
		t.Fatalf("expected INVALID_MESSAGE for empty subject, got %v", err)
	}

	msg := notify.EmailMessage{To: []string{"a@b.com"}, Subject: "Hi", TextBody: "hello"}
	if err := client.SendEmail(ctx, msg); err != nil {
		t.Fatal(err)
	}
	if len(email.sent) != 1 {
		t.Fatalf("expected 1 email sent, got %d", len(email.sent))
	}
}

func TestClient_NoProvider(t *testing.T) {
	client := notify.NewClient(nil, nil)
	ctx := context.Background()

	err := client.SendEmail(ctx, notify.EmailMessage{To: []string{"a@b.com"}, Subject: "Hi"})
	if !errx.IsCode(err, notify.ErrNoProvider) {
		t.Fatalf("expected NO_PROVIDER for email, got %v", err)
	}

	err = client.SendSMS(ctx, notify.SMSMessage{To: "+51987654321", Body: "hi"})
	if !errx.IsCode(err, notify.ErrNoProvider) {
		t.Fatalf("expected NO_PROVIDER for sms, got %v", err)
	}
}

func TestClient_SendTemplatedEmail(t *testing.T) {
	email := &fakeEmailSender{}
	client := notify.NewClient(email, &fakeSMSSender{})

	if err := client.RegisterTemplate("greeting", "<p>Hello {{.Name}}</p>"); err != nil {
		t.Fatal(err)
	}

	msg := notify.EmailMessage{To: []string{"a@b.com"}, Subject: "Hi"}
	data := struct{ Name string }{Name: "Ada"}
	if err := client.SendTemplatedEmail(context.Background(), "greeting", data, msg); err != nil {
		t.Fatal(err)
	}

	if len(email.sent) != 1 {
		t.Fatalf("expected 1 email sent, got %d", len(email.sent))
	}
	if !strings.Contains(email.sent[0].HTMLBody, "Hello Ada") {
		t.Fatalf("template not rendered into body: %q", email.sent[0].HTMLBody)
	}

	err := client.SendTemplatedEmail(context.Background(), "missing", nil, msg)
	if !errx.IsCode(err, notify.ErrTemplateNotFound) {
		t.Fatalf("expected TEMPLATE_NOT_FOUND, got %v", err)
	}
}

func TestTemplateRegistry_ParseError(t *testing.T) {
	reg := notify.NewTemplateRegistry()
	err := reg.Register("bad", "{{.Unclosed")
	if !errx.IsCode(err, notify.ErrTemplateParse) {
		t.Fatalf("expected TEMPLATE_PARSE, got %v", err)
	}
}
