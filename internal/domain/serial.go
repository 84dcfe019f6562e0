package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

const (
	// BaseLength is the width of a base serial (YYYYNNNN)
	BaseLength = 8
	// FullLength is the width of a base serial with its counter (YYYYNNNN-CCCC)
	FullLength = 13
	// MaxCounter is the highest counter before a new base is minted
	MaxCounter = 9999
	// FirstCounter is the counter suffix of the first artifact in a project
	FirstCounter = "0001"

	punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

var (
	// ErrInvalidSerial is matched by every SerialError
	ErrInvalidSerial = errors.New("invalid serial")
	// ErrCounterCorrupt is returned when the counter file is missing or not a number
	ErrCounterCorrupt = errors.New("counter file corrupt")
)

// SerialError describes why a serial failed validation
type SerialError struct {
	Serial string
	Reason string
}

func (e *SerialError) Error() string {
	return fmt.Sprintf("invalid serial %q: %s", e.Serial, e.Reason)
}

func (e *SerialError) Is(target error) bool {
	return target == ErrInvalidSerial
}

// Serial is a parsed serial number. Counter is zero for a bare base.
type Serial struct {
	Base    string
	Counter int
}

// HasCounter reports whether the serial carries a -CCCC suffix
func (s Serial) HasCounter() bool {
	return s.Counter > 0
}

// String renders the serial as BASE or BASE-CCCC
func (s Serial) String() string {
	if !s.HasCounter() {
		return s.Base
	}
	return fmt.Sprintf("%s-%04d", s.Base, s.Counter)
}

// Compare orders serials numerically by base, then by counter
func (s Serial) Compare(other Serial) int {
	a, _ := strconv.Atoi(s.Base)
	b, _ := strconv.Atoi(other.Base)
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	case s.Counter < other.Counter:
		return -1
	case s.Counter > other.Counter:
		return 1
	default:
		return 0
	}
}

// ValidateSerial checks the lexical shape of a serial.
// Accepted forms are 00000000 and 00000000-0000.
func ValidateSerial(serial string) error {
	switch {
	case len(serial) == BaseLength:
		return checkNumeric(serial, serial)
	case len(serial) == FullLength && serial[BaseLength] == '-' && strings.Count(serial, "-") == 1:
		if err := checkNumeric(serial, serial[:BaseLength]); err != nil {
			return err
		}
		return checkNumeric(serial, serial[BaseLength+1:])
	default:
		return &SerialError{Serial: serial, Reason: "format is 00000000 or 00000000-0000"}
	}
}

func checkNumeric(serial, segment string) error {
	switch {
	case strings.IndexFunc(segment, unicode.IsLetter) >= 0:
		return &SerialError{Serial: serial, Reason: "must not contain letters"}
	case strings.IndexFunc(segment, unicode.IsSpace) >= 0:
		return &SerialError{Serial: serial, Reason: "cannot have spaces"}
	case strings.ContainsAny(segment, punctuation):
		return &SerialError{Serial: serial, Reason: "cannot have special characters"}
	case strings.IndexFunc(segment, func(r rune) bool { return r < '0' || r > '9' }) >= 0:
		return &SerialError{Serial: serial, Reason: "must be numeric"}
	}
	return nil
}

// ParseSerial validates and splits a serial into base and counter
func ParseSerial(serial string) (Serial, error) {
	if err := ValidateSerial(serial); err != nil {
		return Serial{}, err
	}

	parsed := Serial{Base: serial[:BaseLength]}
	if len(serial) == FullLength {
		n, err := strconv.Atoi(serial[BaseLength+1:])
		if err != nil {
			return Serial{}, &SerialError{Serial: serial, Reason: "counter is not a number"}
		}
		parsed.Counter = n
	}
	return parsed, nil
}

// FormatBase builds a base serial from a year and the incremented counter.
// The counter is not padded.
func FormatBase(year, counter int) string {
	return fmt.Sprintf("%d%d", year, counter)
}

// CheckBase rejects a base from the counter that is not BaseLength digits.
// FormatBase does not pad, so a counter outside 1000-9999 yields bases such
// as 2025101 that no later serial operation accepts.
func CheckBase(base string) error {
	if len(base) != BaseLength || ValidateSerial(base) != nil {
		return &SerialError{
			Serial: base,
			Reason: fmt.Sprintf("counter produced a base that is not %d digits (the incremented counter must be between 1000 and %d)", BaseLength, MaxCounter),
		}
	}
	return nil
}

// FirstSerial appends the first counter suffix to a base
func FirstSerial(base string) string {
	return base + "-" + FirstCounter
}

// NextSerial returns the serial that follows existing.
//
// An empty existing value asks newBase for a fresh base. A bare base gets the
// first counter. A full serial gets its counter incremented, and a counter
// past MaxCounter rolls over to a fresh base from newBase.
func NextSerial(existing string, newBase func() (string, error)) (string, error) {
	if existing == "" {
		return mintBase(newBase)
	}

	parsed, err := ParseSerial(existing)
	if err != nil {
		return "", err
	}

	if !parsed.HasCounter() && len(existing) == BaseLength {
		return FirstSerial(parsed.Base), nil
	}

	next := parsed.Counter + 1
	if next > MaxCounter {
		return mintBase(newBase)
	}

	return Serial{Base: parsed.Base, Counter: next}.String(), nil
}

func mintBase(newBase func() (string, error)) (string, error) {
	base, err := newBase()
	if err != nil {
		return "", err
	}
	if err := CheckBase(base); err != nil {
		return "", err
	}
	return FirstSerial(base), nil
}

// NextSerials mints n consecutive serials after seed
func NextSerials(seed string, n int, newBase func() (string, error)) ([]string, error) {
	serials := make([]string, 0, n)
	current := seed
	for range n {
		next, err := NextSerial(current, newBase)
		if err != nil {
			return nil, err
		}
		serials = append(serials, next)
		current = next
	}
	return serials, nil
}
