package taxid

import (
	"errors"
	"fmt"
)

// Reasons for validation failure.
const (
	ReasonLeadingZero         = "leading_zero"
	ReasonDigitOutOfRange     = "digit_out_of_range"
	ReasonInvalidDistribution = "invalid_distribution"
	ReasonInvalidChecksum     = "invalid_checksum"
)

var (
	ErrLeadingZero         = errors.New("leading digit is zero")
	ErrDigitOutOfRange     = errors.New("digit out of range")
	ErrInvalidDistribution = errors.New("invalid digit distribution")
	ErrInvalidChecksum     = errors.New("check digit does not match")

	// ErrInvalidLength is returned by Parse for input that is not 11 characters.
	ErrInvalidLength = errors.New("identifier must have 11 digits")
)

// ValidationError reports the single most relevant reason a digit sequence
// is not a valid identifier.
type ValidationError struct {
	Reason   string
	Position int // index of the offending digit, only for ReasonDigitOutOfRange
}

func (e *ValidationError) Error() string {
	if e.Reason == ReasonDigitOutOfRange {
		return fmt.Sprintf("%v at position %d", e.sentinel(), e.Position)
	}
	return e.sentinel().Error()
}

// Is makes errors.Is match the sentinel for the reason.
func (e *ValidationError) Is(target error) bool {
	return target == e.sentinel()
}

func (e *ValidationError) sentinel() error {
	switch e.Reason {
	case ReasonLeadingZero:
		return ErrLeadingZero
	case ReasonDigitOutOfRange:
		return ErrDigitOutOfRange
	case ReasonInvalidDistribution:
		return ErrInvalidDistribution
	case ReasonInvalidChecksum:
		return ErrInvalidChecksum
	}
	return errors.New(e.Reason)
}
