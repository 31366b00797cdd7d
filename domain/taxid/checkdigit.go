package taxid

// CheckDigit computes the check digit for a 10-digit body.
// The running product is seeded with 10; each digit is added mod 10 (a zero
// sum counts as 10), doubled and reduced mod 11. Digit order matters.
// This is a PURE function.
func CheckDigit(body [BodyLength]uint8) uint8 {
	p := uint8(10)
	for _, d := range body {
		s := (d + p) % 10
		if s == 0 {
			s = 10
		}
		p = (s * 2) % 11
	}

	if c := 11 - p; c != 10 {
		return c
	}
	return 0
}
