package otp_test

import (
	"strconv"
	"testing"
	"time"

	"github.com/Abraxas-365/passgate/pkg/otp"
)

func TestGenerateCode_Format(t *testing.T) {
	for i := 0; i < 500; i++ {
		code, err := otp.GenerateCode(6)
		if err != nil {
			t.Fatal(err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("non-numeric code %q", code)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("code %d outside [100000, 999999]", n)
		}
	}
}

func TestGenerateCode_OtherLengths(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := otp.GenerateCode(4)
		if err != nil {
			t.Fatal(err)
		}
		n, _ := strconv.Atoi(code)
		if n < 1000 || n > 9999 {
			t.Fatalf("4-digit code %q outside [1000, 9999]", code)
		}
	}

	if _, err := otp.GenerateCode(0); err == nil {
		t.Fatal("expected error for length 0")
	}
	if _, err := otp.GenerateCode(19); err == nil {
		t.Fatal("expected error for length 19")
	}
}

// Leading digits 1-9 should each appear about N/9 times. The tolerance is
// wide enough that a correct generator fails with negligible probability.
func TestGenerateCode_UniformLeadingDigit(t *testing.T) {
	const draws = 18000
	counts := make(map[byte]int)

	for i := 0; i < draws; i++ {
		code, err := otp.GenerateCode(6)
		if err != nil {
			t.Fatal(err)
		}
		counts[code[0]]++
	}

	if counts['0'] != 0 {
		t.Fatalf("got %d codes with leading zero", counts['0'])
	}

	expected := draws / 9
	for d := byte('1'); d <= '9'; d++ {
		got := counts[d]
		if got < expected*8/10 || got > expected*12/10 {
			t.Fatalf("leading digit %c: got %d draws, expected about %d", d, got, expected)
		}
	}
}

func TestValidCodeFormat(t *testing.T) {
	valid := []string{"123456", "000000", "999999"}
	for _, c := range valid {
		if !otp.ValidCodeFormat(c, 6) {
			t.Fatalf("expected %q to be valid", c)
		}
	}

	invalid := []string{"", "12345", "1234567", "12345a", "12 456", "12345\n", "１２３４５６"}
	for _, c := range invalid {
		if otp.ValidCodeFormat(c, 6) {
			t.Fatalf("expected %q to be invalid", c)
		}
	}
}

func TestRecord_ExpiredAndExhausted(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	r := otp.Record{ExpiresAt: now.Add(5 * time.Minute)}

	if r.Expired(now) {
		t.Fatal("fresh record should not be expired")
	}
	if r.Expired(now.Add(5 * time.Minute)) {
		t.Fatal("record at exactly ExpiresAt is still acceptable")
	}
	if !r.Expired(now.Add(5*time.Minute + time.Nanosecond)) {
		t.Fatal("record past ExpiresAt should be expired")
	}

	r.Attempts = 2
	if r.Exhausted(3) {
		t.Fatal("2 of 3 attempts is not exhausted")
	}
	r.Attempts = 3
	if !r.Exhausted(3) {
		t.Fatal("3 of 3 attempts is exhausted")
	}
}
