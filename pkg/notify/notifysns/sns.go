package notifysns

import (
	"context"

	"github.com/Abraxas-365/passgate/pkg/notify"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// SNSProvider implements notify.SMSSender using AWS SNS direct publish.
type SNSProvider struct {
	client          *sns.Client
	defaultSenderID string
}

// NewSNSProvider creates a new SNS SMS provider.
func NewSNSProvider(client *sns.Client, defaultSenderID string) *SNSProvider {
	return &SNSProvider{client: client, defaultSenderID: defaultSenderID}
}

// SendSMS publishes a transactional SMS to a single phone number.
func (p *SNSProvider) SendSMS(ctx context.Context, msg notify.SMSMessage) error {
	senderID := msg.SenderID
	if senderID == "" {
		senderID = p.defaultSenderID
	}

	attrs := map[string]types.MessageAttributeValue{
		// Transactional routing: delivery over cost optimization. These
		// messages carry credentials and must arrive promptly.
		"AWS.SNS.SMS.SMSType": {
			DataType:    aws.String("String"),
			StringValue: aws.String("Transactional"),
		},
	}
	if senderID != "" {
		attrs["AWS.SNS.SMS.SenderID"] = types.MessageAttributeValue{
			DataType:    aws.String("String"),
			StringValue: aws.String(senderID),
		}
	}

	input := &sns.PublishInput{
		PhoneNumber:       aws.String(msg.To),
		Message:           aws.String(msg.Body),
		MessageAttributes: attrs,
	}

	if _, err := p.client.Publish(ctx, input); err != nil {
		return snsErrors.NewWithCause(ErrSendFailed, err).WithDetail("to", msg.To)
	}
	return nil
}
