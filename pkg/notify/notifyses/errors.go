package notifyses

import "github.com/Abraxas-365/passgate/pkg/errx"

var sesErrors = errx.NewRegistry("NOTIFY_SES")

var (
	ErrSendFailed = sesErrors.Register("SEND_FAILED", errx.TypeExternal, 502, "SES send email failed")
)
