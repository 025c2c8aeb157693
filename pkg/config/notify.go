package config

// NotifyConfig configures outbound code delivery. Providers: "console" for
// development, "ses" (email) and "sns" (sms) for production.
type NotifyConfig struct {
	EmailProvider string
	SMSProvider   string
	FromAddress   string
	FromName      string
	EmailSubject  string
	SMSSenderID   string
	AWSRegion     string
}

func loadNotifyConfig() NotifyConfig {
	return NotifyConfig{
		EmailProvider: getEnv("NOTIFY_EMAIL_PROVIDER", "console"),
		SMSProvider:   getEnv("NOTIFY_SMS_PROVIDER", "console"),
		FromAddress:   getEnv("NOTIFY_FROM_ADDRESS", "noreply@passgate.dev"),
		FromName:      getEnv("NOTIFY_FROM_NAME", "Passgate"),
		EmailSubject:  getEnv("NOTIFY_EMAIL_SUBJECT", "Your verification code"),
		SMSSenderID:   getEnv("NOTIFY_SMS_SENDER_ID", "Passgate"),
		AWSRegion:     getEnv("NOTIFY_AWS_REGION", getEnv("AWS_REGION", "us-east-1")),
	}
}
