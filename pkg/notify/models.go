package notify

// EmailMessage represents an email to be sent.
type EmailMessage struct {
	From     string   `json:"from"`
	To       []string `json:"to"`
	ReplyTo  string   `json:"reply_to,omitempty"`
	Subject  string   `json:"subject"`
	TextBody string   `json:"text_body,omitempty"`
	HTMLBody string   `json:"html_body,omitempty"`
}

// SMSMessage represents a text message to be sent.
type SMSMessage struct {
	// To is an E.164 phone number.
	To string `json:"to"`
	// SenderID is an optional alphanumeric sender shown to the recipient,
	// where the carrier supports it.
	SenderID string `json:"sender_id,omitempty"`
	Body     string `json:"body"`
}
