package kernel

import (
	"net/mail"
	"regexp"
	"strings"
)

// Channel is the delivery channel implied by a destination's syntax.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

func (c Channel) String() string { return string(c) }

// e164 per ITU-T: leading +, country code 1-9, up to 15 digits total.
var e164Pattern = regexp.MustCompile(`^\+[1-9][0-9]{6,14}$`)

// Destination is the address a passcode is issued to: an email address or an
// E.164 phone number. It is the lookup key for the credential store.
type Destination string

// NewDestination trims surrounding whitespace and lowercases email addresses
// so that lookups are stable across requests.
func NewDestination(raw string) Destination {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "+") {
		s = strings.ToLower(s)
	}
	return Destination(s)
}

func (d Destination) String() string { return string(d) }

func (d Destination) IsEmpty() bool { return string(d) == "" }

// Channel classifies the destination. ok is false when the destination is
// neither a well-formed email address nor an E.164 number.
func (d Destination) Channel() (Channel, bool) {
	s := string(d)
	if s == "" {
		return "", false
	}
	if strings.HasPrefix(s, "+") {
		if e164Pattern.MatchString(s) {
			return ChannelSMS, true
		}
		return "", false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return "", false
	}
	return ChannelEmail, true
}

// Valid reports whether the destination is syntactically well formed.
func (d Destination) Valid() bool {
	_, ok := d.Channel()
	return ok
}
