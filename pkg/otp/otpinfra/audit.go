package otpinfra

import (
	"context"

	"github.com/Abraxas-365/passgate/pkg/kernel"
	"github.com/Abraxas-365/passgate/pkg/logx"
	"github.com/Abraxas-365/passgate/pkg/otp"
)

// LogxAuditService writes audit events to the structured log. The service
// never passes code values here, and this implementation adds nothing that
// could leak one.
type LogxAuditService struct{}

// NewLogxAuditService creates a log-backed audit trail.
func NewLogxAuditService() *LogxAuditService {
	return &LogxAuditService{}
}

// Record logs one audit event.
func (a *LogxAuditService) Record(_ context.Context, event otp.AuditEvent, destination kernel.Destination, details map[string]interface{}) {
	fields := logx.Fields{
		"audit":       true,
		"event":       string(event),
		"destination": destination.String(),
	}
	for k, v := range details {
		fields[k] = v
	}
	logx.WithFields(fields).Info("otp: audit event")
}
