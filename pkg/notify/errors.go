package notify

import "github.com/Abraxas-365/passgate/pkg/errx"

var notifyErrors = errx.NewRegistry("NOTIFY")

var (
	ErrSendFailed       = notifyErrors.Register("SEND_FAILED", errx.TypeExternal, 502, "Failed to send notification")
	ErrInvalidMessage   = notifyErrors.Register("INVALID_MESSAGE", errx.TypeValidation, 400, "Invalid notification message")
	ErrNoProvider       = notifyErrors.Register("NO_PROVIDER", errx.TypeInternal, 500, "No provider configured for channel")
	ErrTemplateNotFound = notifyErrors.Register("TEMPLATE_NOT_FOUND", errx.TypeNotFound, 404, "Notification template not found")
	ErrTemplateParse    = notifyErrors.Register("TEMPLATE_PARSE", errx.TypeValidation, 400, "Failed to parse notification template")
	ErrTemplateRender   = notifyErrors.Register("TEMPLATE_RENDER", errx.TypeInternal, 500, "Failed to render notification template")
)
