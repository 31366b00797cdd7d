// Package taxid provides the tax identification number value type and pure
// validation and construction functions.
// This package has NO dependencies on I/O or external packages.
package taxid

import (
	"errors"
	"fmt"
)

const (
	// Length is the number of digits in an identifier.
	Length = 11
	// BodyLength is the number of digits covered by the check digit.
	BodyLength = 10
)

// ID is a validated tax identification number (immutable value type).
// The zero value is not a valid identifier; obtain one through Validate,
// Parse or Random.
type ID struct {
	digits [Length]uint8
}

// Validate checks a candidate digit sequence and returns it as an ID.
// Checks run in a fixed order and only the first failure is reported:
// leading zero, digit range, distribution, checksum.
// This is a PURE function - no side effects, deterministic.
func Validate(digits [Length]uint8) (ID, error) {
	if digits[0] == 0 {
		return ID{}, &ValidationError{Reason: ReasonLeadingZero}
	}

	var body [BodyLength]uint8
	for i := 0; i < BodyLength; i++ {
		if digits[i] > 9 {
			return ID{}, &ValidationError{Reason: ReasonDigitOutOfRange, Position: i}
		}
		body[i] = digits[i]
	}

	if !Shape(body).Valid() {
		return ID{}, &ValidationError{Reason: ReasonInvalidDistribution}
	}

	if CheckDigit(body) != digits[BodyLength] {
		return ID{}, &ValidationError{Reason: ReasonInvalidChecksum}
	}

	return ID{digits: digits}, nil
}

// Parse reads an 11-character decimal string and validates it.
// A character that is not a decimal digit is reported as out of range at
// its position, with the same priority Validate gives to body digits.
func Parse(s string) (ID, error) {
	if len(s) != Length {
		return ID{}, fmt.Errorf("%w: got %d characters", ErrInvalidLength, len(s))
	}

	var digits [Length]uint8
	for i := 0; i < Length; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			digits[i] = nonDigit
			continue
		}
		digits[i] = c - '0'
	}

	id, err := Validate(digits)
	if err != nil && digits[BodyLength] == nonDigit {
		// Validate only range-checks the body; a bad check character
		// outranks the distribution and checksum findings.
		var verr *ValidationError
		if errors.As(err, &verr) && verr.Reason != ReasonLeadingZero && verr.Reason != ReasonDigitOutOfRange {
			return ID{}, &ValidationError{Reason: ReasonDigitOutOfRange, Position: BodyLength}
		}
	}
	return id, err
}

// nonDigit marks a character that is not a decimal digit.
const nonDigit = 0xFF

// MustParse is like Parse but panics on error. Intended for tests and
// package-level fixtures.
func MustParse(s string) ID {
	id, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("taxid: MustParse(%q): %v", s, err))
	}
	return id
}

// Digits returns a copy of all 11 digits.
func (id ID) Digits() [Length]uint8 {
	return id.digits
}

// Body returns the first 10 digits.
func (id ID) Body() [BodyLength]uint8 {
	var body [BodyLength]uint8
	copy(body[:], id.digits[:BodyLength])
	return body
}

// Leading returns the first digit.
func (id ID) Leading() uint8 {
	return id.digits[0]
}

// CheckDigit returns the last digit.
func (id ID) CheckDigit() uint8 {
	return id.digits[BodyLength]
}

// IsZero reports whether id is the zero value.
func (id ID) IsZero() bool {
	return id.digits[0] == 0
}

// String renders the identifier as 11 decimal digits without separators.
func (id ID) String() string {
	var buf [Length]byte
	for i, d := range id.digits {
		buf[i] = '0' + d
	}
	return string(buf[:])
}

// AppendText appends the decimal rendering of id to b.
func (id ID) AppendText(b []byte) ([]byte, error) {
	for _, d := range id.digits {
		b = append(b, '0'+d)
	}
	return b, nil
}
