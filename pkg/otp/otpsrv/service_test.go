package otpsrv_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Abraxas-365/passgate/pkg/errx"
	"github.com/Abraxas-365/passgate/pkg/kernel"
	"github.com/Abraxas-365/passgate/pkg/otp"
	"github.com/Abraxas-365/passgate/pkg/otp/otpinfra"
	"github.com/Abraxas-365/passgate/pkg/otp/otpsrv"
)

const emailDest = kernel.Destination("a@b.com")

// fakeClock is a manually advanced clock.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

// fakeNotifier records delivered codes and can be told to fail.
type fakeNotifier struct {
	calls int
	codes []string
	fail  bool
}

func (n *fakeNotifier) Send(_ context.Context, _ kernel.Destination, code string) error {
	n.calls++
	if n.fail {
		return errors.New("relay unreachable")
	}
	n.codes = append(n.codes, code)
	return nil
}

func (n *fakeNotifier) last() string {
	if len(n.codes) == 0 {
		return ""
	}
	return n.codes[len(n.codes)-1]
}

func newTestService(t *testing.T) (*otpsrv.Service, *otpinfra.MemoryStore, *fakeNotifier, *fakeClock) {
	t.Helper()
	store := otpinfra.NewMemoryStore()
	notifier := &fakeNotifier{}
	clock := &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	svc := otpsrv.NewService(store, notifier, otp.DefaultPolicy(), otpsrv.WithClock(clock))
	return svc, store, notifier, clock
}

func assertCode(t *testing.T, err error, code *errx.ErrorCode) *errx.Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %s, got nil", code.Code)
	}
	var e *errx.Error
	if !errx.As(err, &e) {
		t.Fatalf("expected *errx.Error, got %T: %v", err, err)
	}
	if e.Code != code.Code {
		t.Fatalf("expected error code %s, got %s", code.Code, e.Code)
	}
	return e
}

func TestRequestCode_ThenVerify(t *testing.T) {
	svc, store, notifier, _ := newTestService(t)
	ctx := context.Background()

	result, err := svc.RequestCode(ctx, emailDest)
	if err != nil {
		t.Fatal(err)
	}
	if result.ExpiresIn != 5*time.Minute {
		t.Fatalf("expected 5m expiry, got %v", result.ExpiresIn)
	}
	if notifier.calls != 1 {
		t.Fatalf("expected exactly 1 delivery, got %d", notifier.calls)
	}

	if err := svc.VerifyCode(ctx, emailDest, notifier.last()); err != nil {
		t.Fatalf("verify with delivered code failed: %v", err)
	}

	// Success consumed the record: same code cannot verify twice.
	err = svc.VerifyCode(ctx, emailDest, notifier.last())
	assertCode(t, err, otp.CodeNotFound)

	if store.Len() != 0 {
		t.Fatalf("expected empty store after success, got %d records", store.Len())
	}
}

func TestRequestCode_InvalidDestination(t *testing.T) {
	svc, _, notifier, _ := newTestService(t)

	_, err := svc.RequestCode(context.Background(), kernel.NewDestination("not-a-destination"))
	assertCode(t, err, otp.CodeInvalidDestination)

	if notifier.calls != 0 {
		t.Fatal("notifier must not be called for an invalid destination")
	}
}

func TestRequestCode_Cooldown(t *testing.T) {
	svc, _, notifier, clock := newTestService(t)
	ctx := context.Background()

	if _, err := svc.RequestCode(ctx, emailDest); err != nil {
		t.Fatal(err)
	}

	// Immediate resend is rejected with the full wait.
	_, err := svc.RequestCode(ctx, emailDest)
	e := assertCode(t, err, otp.CodeRateLimited)
	if got := e.Details["retry_after_seconds"]; got != 60 {
		t.Fatalf("expected retry_after_seconds=60, got %v", got)
	}
	if notifier.calls != 1 {
		t.Fatalf("rejected resend must not deliver, got %d calls", notifier.calls)
	}

	// Partway through the window the hint shrinks, rounded up.
	clock.advance(30*time.Second + 500*time.Millisecond)
	_, err = svc.RequestCode(ctx, emailDest)
	e = assertCode(t, err, otp.CodeRateLimited)
	if got := e.Details["retry_after_seconds"]; got != 30 {
		t.Fatalf("expected retry_after_seconds=30, got %v", got)
	}

	// After the cooldown a new code replaces the old one.
	clock.advance(31 * time.Second)
	oldCode := notifier.last()
	if _, err := svc.RequestCode(ctx, emailDest); err != nil {
		t.Fatal(err)
	}
	newCode := notifier.last()

	if oldCode == newCode {
		// 1-in-900000 collision would make this flake; regenerate once.
		t.Logf("old and new codes collided, re-requesting")
		clock.advance(61 * time.Second)
		if _, err := svc.RequestCode(ctx, emailDest); err != nil {
			t.Fatal(err)
		}
		newCode = notifier.last()
	}

	// The replaced code is just a wrong code now.
	err = svc.VerifyCode(ctx, emailDest, oldCode)
	e = assertCode(t, err, otp.CodeInvalidCode)
	if got := e.Details["attempts_remaining"]; got != 2 {
		t.Fatalf("expected attempts_remaining=2, got %v", got)
	}

	if err := svc.VerifyCode(ctx, emailDest, newCode); err != nil {
		t.Fatalf("verify with replacement code failed: %v", err)
	}
}

func TestRequestCode_DeliveryFailed(t *testing.T) {
	svc, store, notifier, clock := newTestService(t)
	ctx := context.Background()

	notifier.fail = true
	_, err := svc.RequestCode(ctx, emailDest)
	assertCode(t, err, otp.CodeDeliveryFailed)
	if store.Len() != 0 {
		t.Fatal("no record may be stored for an undelivered code")
	}

	// A failed resend must not clear the previous record.
	notifier.fail = false
	if _, err := svc.RequestCode(ctx, emailDest); err != nil {
		t.Fatal(err)
	}
	code := notifier.last()

	clock.advance(61 * time.Second)
	notifier.fail = true
	_, err = svc.RequestCode(ctx, emailDest)
	assertCode(t, err, otp.CodeDeliveryFailed)

	if err := svc.VerifyCode(ctx, emailDest, code); err != nil {
		t.Fatalf("old record should survive a failed resend: %v", err)
	}
}

func TestVerifyCode_NotFound(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	err := svc.VerifyCode(context.Background(), emailDest, "123456")
	assertCode(t, err, otp.CodeNotFound)
}

func TestVerifyCode_InvalidFormat(t *testing.T) {
	svc, _, notifier, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.RequestCode(ctx, emailDest); err != nil {
		t.Fatal(err)
	}

	for _, bad := range []string{"", "12345", "1234567", "12345a", "12 456"} {
		err := svc.VerifyCode(ctx, emailDest, bad)
		assertCode(t, err, otp.CodeInvalidFormat)
	}

	// Malformed submissions are rejected before the store: no budget burned.
	if err := svc.VerifyCode(ctx, emailDest, notifier.last()); err != nil {
		t.Fatalf("correct code should still verify after malformed submissions: %v", err)
	}
}

func TestVerifyCode_Expired(t *testing.T) {
	svc, store, notifier, clock := newTestService(t)
	ctx := context.Background()

	if _, err := svc.RequestCode(ctx, emailDest); err != nil {
		t.Fatal(err)
	}

	clock.advance(5*time.Minute + time.Second)

	err := svc.VerifyCode(ctx, emailDest, notifier.last())
	assertCode(t, err, otp.CodeExpired)

	// Expiry deleted the record.
	if store.Len() != 0 {
		t.Fatal("expired record must be deleted on detection")
	}
	err = svc.VerifyCode(ctx, emailDest, notifier.last())
	assertCode(t, err, otp.CodeNotFound)
}

func TestVerifyCode_AttemptBudget(t *testing.T) {
	svc, store, notifier, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.RequestCode(ctx, emailDest); err != nil {
		t.Fatal(err)
	}

	wrong := "000000"
	if wrong == notifier.last() {
		wrong = "000001"
	}

	e := assertCode(t, svc.VerifyCode(ctx, emailDest, wrong), otp.CodeInvalidCode)
	if got := e.Details["attempts_remaining"]; got != 2 {
		t.Fatalf("first failure: expected attempts_remaining=2, got %v", got)
	}

	e = assertCode(t, svc.VerifyCode(ctx, emailDest, wrong), otp.CodeInvalidCode)
	if got := e.Details["attempts_remaining"]; got != 1 {
		t.Fatalf("second failure: expected attempts_remaining=1, got %v", got)
	}

	// The third failure spends the whole budget: terminal.
	assertCode(t, svc.VerifyCode(ctx, emailDest, wrong), otp.CodeTooManyAttempts)
	if store.Len() != 0 {
		t.Fatal("record must be deleted once attempts are exhausted")
	}

	// Even the correct code is useless now.
	assertCode(t, svc.VerifyCode(ctx, emailDest, notifier.last()), otp.CodeNotFound)
}

func TestVerifyCode_SucceedsOnLastAttempt(t *testing.T) {
	svc, _, notifier, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.RequestCode(ctx, emailDest); err != nil {
		t.Fatal(err)
	}

	wrong := "000000"
	if wrong == notifier.last() {
		wrong = "000001"
	}

	assertCode(t, svc.VerifyCode(ctx, emailDest, wrong), otp.CodeInvalidCode)
	assertCode(t, svc.VerifyCode(ctx, emailDest, wrong), otp.CodeInvalidCode)

	if err := svc.VerifyCode(ctx, emailDest, notifier.last()); err != nil {
		t.Fatalf("correct code on the last attempt should verify: %v", err)
	}
}

func TestService_IndependentDestinations(t *testing.T) {
	svc, store, notifier, _ := newTestService(t)
	ctx := context.Background()

	other := kernel.Destination("+51987654321")

	if _, err := svc.RequestCode(ctx, emailDest); err != nil {
		t.Fatal(err)
	}
	firstCode := notifier.last()

	// A second destination is not affected by the first one's cooldown.
	if _, err := svc.RequestCode(ctx, other); err != nil {
		t.Fatalf("independent destination hit a cooldown: %v", err)
	}
	secondCode := notifier.last()

	if store.Len() != 2 {
		t.Fatalf("expected one record per destination, got %d", store.Len())
	}

	if err := svc.VerifyCode(ctx, other, secondCode); err != nil {
		t.Fatal(err)
	}
	if err := svc.VerifyCode(ctx, emailDest, firstCode); err != nil {
		t.Fatal(err)
	}
}
