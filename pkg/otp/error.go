package otp

import (
	"net/http"

	"github.com/Abraxas-365/passgate/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("OTP")

var (
	CodeInvalidDestination = ErrRegistry.Register("INVALID_DESTINATION", errx.TypeValidation, http.StatusBadRequest, "Destination must be a valid email address or E.164 phone number")
	CodeInvalidFormat      = ErrRegistry.Register("INVALID_FORMAT", errx.TypeValidation, http.StatusBadRequest, "Verification code has the wrong format")
	CodeRateLimited        = ErrRegistry.Register("RATE_LIMITED", errx.TypeBusiness, http.StatusTooManyRequests, "A code was sent recently, wait before requesting another")
	CodeDeliveryFailed     = ErrRegistry.Register("DELIVERY_FAILED", errx.TypeExternal, http.StatusBadGateway, "Could not deliver the verification code")
	CodeNotFound           = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "No active code for this destination, request a new one")
	CodeExpired            = ErrRegistry.Register("EXPIRED", errx.TypeValidation, http.StatusBadRequest, "Verification code has expired, request a new one")
	CodeTooManyAttempts    = ErrRegistry.Register("TOO_MANY_ATTEMPTS", errx.TypeBusiness, http.StatusTooManyRequests, "Too many failed attempts, request a new code")
	CodeInvalidCode        = ErrRegistry.Register("INVALID_CODE", errx.TypeValidation, http.StatusBadRequest, "Incorrect verification code")
	CodeGeneration         = ErrRegistry.Register("CODE_GENERATION", errx.TypeInternal, http.StatusInternalServerError, "Failed to generate verification code")
	CodeStoreFailure       = ErrRegistry.Register("STORE_FAILURE", errx.TypeInternal, http.StatusInternalServerError, "Credential store operation failed")
)

func ErrInvalidDestination() *errx.Error { return ErrRegistry.New(CodeInvalidDestination) }
func ErrInvalidFormat() *errx.Error      { return ErrRegistry.New(CodeInvalidFormat) }
func ErrRateLimited() *errx.Error        { return ErrRegistry.New(CodeRateLimited) }
func ErrDeliveryFailed() *errx.Error     { return ErrRegistry.New(CodeDeliveryFailed) }
func ErrNotFound() *errx.Error           { return ErrRegistry.New(CodeNotFound) }
func ErrExpired() *errx.Error            { return ErrRegistry.New(CodeExpired) }
func ErrTooManyAttempts() *errx.Error    { return ErrRegistry.New(CodeTooManyAttempts) }
func ErrInvalidCode() *errx.Error        { return ErrRegistry.New(CodeInvalidCode) }
func ErrCodeGeneration() *errx.Error     { return ErrRegistry.New(CodeGeneration) }

func ErrStoreFailure(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeStoreFailure, cause)
}
