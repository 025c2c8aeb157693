package errx_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Abraxas-365/passgate/pkg/errx"
)

var testRegistry = errx.NewRegistry("TEST")

var codeMissing = testRegistry.Register("MISSING", errx.TypeNotFound, 404, "Thing not found")

func TestRegistry_New(t *testing.T) {
	err := testRegistry.New(codeMissing)

	if err.Code != "TEST_MISSING" {
		t.Fatalf("expected prefixed code, got %q", err.Code)
	}
	if err.HTTPStatus != 404 || err.Type != errx.TypeNotFound {
		t.Fatalf("unexpected mapping: %+v", err)
	}
	if !errx.IsCode(err, codeMissing) {
		t.Fatal("IsCode should match the originating code")
	}
}

func TestWrap_PreservesCode(t *testing.T) {
	inner := testRegistry.New(codeMissing).WithDetail("id", "42")
	wrapped := errx.Wrap(fmt.Errorf("loading thing: %w", inner), "could not load", errx.TypeInternal)

	if !errx.IsCode(wrapped, codeMissing) {
		t.Fatalf("wrapping lost the code: %v", wrapped)
	}
	if wrapped.Details["id"] != "42" {
		t.Fatalf("wrapping lost the details: %v", wrapped.Details)
	}
	if wrapped.HTTPStatus != 404 {
		t.Fatalf("wrapping changed the HTTP status: %d", wrapped.HTTPStatus)
	}
}

func TestWrap_PlainError(t *testing.T) {
	wrapped := errx.Wrap(errors.New("boom"), "operation failed", errx.TypeExternal)

	if wrapped.HTTPStatus != 502 {
		t.Fatalf("expected 502 for external errors, got %d", wrapped.HTTPStatus)
	}
	if !errors.Is(wrapped, wrapped.Err) {
		t.Fatal("wrapped error should unwrap to its cause")
	}

	if errx.Wrap(nil, "nothing", errx.TypeInternal) != nil {
		t.Fatal("wrapping nil should stay nil")
	}
}

func TestIsCode_NonErrx(t *testing.T) {
	if errx.IsCode(errors.New("plain"), codeMissing) {
		t.Fatal("plain errors must not match any code")
	}
	if errx.IsCode(nil, codeMissing) {
		t.Fatal("nil must not match")
	}
}
