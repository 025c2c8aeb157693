package notifysns

import "github.com/Abraxas-365/passgate/pkg/errx"

var snsErrors = errx.NewRegistry("NOTIFY_SNS")

var (
	ErrSendFailed = snsErrors.Register("SEND_FAILED", errx.TypeExternal, 502, "SNS publish failed")
)
