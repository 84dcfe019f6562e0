package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestValidateSerial(t *testing.T) {
	tests := []struct {
		name    string
		serial  string
		wantErr bool
		reason  string
	}{
		{name: "base serial", serial: "20250001"},
		{name: "full serial", serial: "20250001-0001"},
		{name: "full serial max counter", serial: "20250001-9999"},
		{name: "too short", serial: "2025001", wantErr: true, reason: "format"},
		{name: "too long", serial: "20250001-00001", wantErr: true, reason: "format"},
		{name: "twelve characters", serial: "20250001-001", wantErr: true, reason: "format"},
		{name: "empty", serial: "", wantErr: true, reason: "format"},
		{name: "dash not at index 8", serial: "2025000-10001", wantErr: true, reason: "format"},
		{name: "two dashes", serial: "20250001--001", wantErr: true, reason: "format"},
		{name: "letter in base", serial: "2025A001", wantErr: true, reason: "letters"},
		{name: "letter in counter", serial: "20250001-00B1", wantErr: true, reason: "letters"},
		{name: "space in base", serial: "2025 001", wantErr: true, reason: "spaces"},
		{name: "space in counter", serial: "20250001-0 01", wantErr: true, reason: "spaces"},
		{name: "punctuation in base", serial: "2025.001", wantErr: true, reason: "special characters"},
		{name: "dash in base", serial: "2025-001", wantErr: true, reason: "special characters"},
		{name: "punctuation in counter", serial: "20250001-00#1", wantErr: true, reason: "special characters"},
		{name: "non ascii digit", serial: "2025000٣", wantErr: true, reason: "format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSerial(tt.serial)

			if !tt.wantErr {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}

			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.reason)
			}
			if !errors.Is(err, ErrInvalidSerial) {
				t.Errorf("expected ErrInvalidSerial, got %v", err)
			}
			var serr *SerialError
			if !errors.As(err, &serr) {
				t.Fatalf("expected *SerialError, got %T", err)
			}
			if !strings.Contains(serr.Reason, tt.reason) {
				t.Errorf("expected reason containing %q, got %q", tt.reason, serr.Reason)
			}
		})
	}
}

func TestParseSerial(t *testing.T) {
	s, err := ParseSerial("20250042-0107")
	if err != nil {
		t.Fatalf("ParseSerial failed: %v", err)
	}
	if s.Base != "20250042" || s.Counter != 107 {
		t.Errorf("expected 20250042/107, got %s/%d", s.Base, s.Counter)
	}
	if s.String() != "20250042-0107" {
		t.Errorf("expected round trip, got %s", s.String())
	}

	base, err := ParseSerial("20250042")
	if err != nil {
		t.Fatalf("ParseSerial failed: %v", err)
	}
	if base.HasCounter() {
		t.Error("bare base should not have a counter")
	}
	if base.String() != "20250042" {
		t.Errorf("expected 20250042, got %s", base.String())
	}
}

func TestSerial_Compare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"20250001-0001", "20250001-0002", -1},
		{"20250001-0010", "20250001-0009", 1},
		{"20250002-0001", "20250001-9999", 1},
		{"20250001", "20250001-0001", -1},
		{"20250001-0003", "20250001-0003", 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s vs %s", tt.a, tt.b), func(t *testing.T) {
			a, _ := ParseSerial(tt.a)
			b, _ := ParseSerial(tt.b)
			if got := a.Compare(b); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestFormatBase(t *testing.T) {
	if got := FormatBase(2025, 101); got != "2025101" {
		t.Errorf("expected 2025101, got %s", got)
	}
	if got := FormatBase(2025, 1042); got != "20251042" {
		t.Errorf("expected 20251042, got %s", got)
	}
}

// fixedBase returns a newBase func that hands out bases in order and counts calls
func fixedBase(bases ...string) (func() (string, error), *int) {
	calls := 0
	return func() (string, error) {
		if calls >= len(bases) {
			return "", errors.New("no more bases")
		}
		b := bases[calls]
		calls++
		return b, nil
	}, &calls
}

func TestNextSerial(t *testing.T) {
	tests := []struct {
		name      string
		existing  string
		want      string
		wantCalls int
		wantErr   bool
	}{
		{name: "absent mints a base", existing: "", want: "20251043-0001", wantCalls: 1},
		{name: "base appends first counter", existing: "20250001", want: "20250001-0001"},
		{name: "counter increments", existing: "20250001-0001", want: "20250001-0002"},
		{name: "counter stays padded", existing: "20250001-0099", want: "20250001-0100"},
		{name: "counter below max", existing: "20250001-9998", want: "20250001-9999"},
		{name: "rollover mints a base", existing: "20250001-9999", want: "20251043-0001", wantCalls: 1},
		{name: "invalid input rejected", existing: "2025ABCD", wantErr: true},
		{name: "surrounding space rejected", existing: " 20250001", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newBase, calls := fixedBase("20251043")
			got, err := NextSerial(tt.existing, newBase)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %s", got)
				}
				if *calls != 0 {
					t.Error("counter must not be touched for invalid input")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
			if *calls != tt.wantCalls {
				t.Errorf("expected %d base mints, got %d", tt.wantCalls, *calls)
			}
		})
	}
}

func TestNextSerial_BaseProperty(t *testing.T) {
	never := func() (string, error) {
		t.Fatal("base should not be minted")
		return "", nil
	}

	for _, base := range []string{"20200000", "20251234", "99999999"} {
		got, err := NextSerial(base, never)
		if err != nil {
			t.Fatalf("NextSerial(%s) failed: %v", base, err)
		}
		if got != base+"-0001" {
			t.Errorf("expected %s-0001, got %s", base, got)
		}
	}

	for c := 1; c < MaxCounter; c += 997 {
		existing := fmt.Sprintf("20251234-%04d", c)
		got, err := NextSerial(existing, never)
		if err != nil {
			t.Fatalf("NextSerial(%s) failed: %v", existing, err)
		}
		want := fmt.Sprintf("20251234-%04d", c+1)
		if got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	}
}

func TestNextSerial_BaseError(t *testing.T) {
	failing := func() (string, error) { return "", errors.New("counter unreadable") }

	if _, err := NextSerial("", failing); err == nil {
		t.Error("expected error from base minting")
	}
	if _, err := NextSerial("20250001-9999", failing); err == nil {
		t.Error("expected error from rollover")
	}
}

func TestCheckBase(t *testing.T) {
	for _, base := range []string{"20251000", "20259999"} {
		if err := CheckBase(base); err != nil {
			t.Errorf("CheckBase(%s) unexpected error: %v", base, err)
		}
	}
	for _, base := range []string{"2025101", "202510000", ""} {
		err := CheckBase(base)
		if !errors.Is(err, ErrInvalidSerial) {
			t.Errorf("CheckBase(%q) expected ErrInvalidSerial, got %v", base, err)
		}
	}
}

func TestNextSerial_ShortBaseRejected(t *testing.T) {
	newBase, calls := fixedBase("2025101")

	for _, existing := range []string{"", "20250001-9999"} {
		if _, err := NextSerial(existing, newBase); !errors.Is(err, ErrInvalidSerial) {
			t.Errorf("NextSerial(%q) expected ErrInvalidSerial, got %v", existing, err)
		}
		*calls = 0
	}
}

func TestParseSerial_RejectsSurroundingSpace(t *testing.T) {
	if _, err := ParseSerial(" 20250001"); !errors.Is(err, ErrInvalidSerial) {
		t.Errorf("expected ErrInvalidSerial, got %v", err)
	}
}

func TestNextSerials(t *testing.T) {
	newBase, calls := fixedBase("20259000")

	got, err := NextSerials("20250001-0001", 3, newBase)
	if err != nil {
		t.Fatalf("NextSerials failed: %v", err)
	}

	want := []string{"20250001-0002", "20250001-0003", "20250001-0004"}
	if len(got) != len(want) {
		t.Fatalf("expected %d serials, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("serial %d: expected %s, got %s", i, want[i], got[i])
		}
	}
	if *calls != 0 {
		t.Errorf("expected no base mints, got %d", *calls)
	}

	rolled, err := NextSerials("20250001-9998", 2, newBase)
	if err != nil {
		t.Fatalf("NextSerials failed: %v", err)
	}
	if rolled[0] != "20250001-9999" || rolled[1] != "20259000-0001" {
		t.Errorf("unexpected rollover sequence: %v", rolled)
	}
}
