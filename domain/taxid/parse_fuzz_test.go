package taxid_test

import (
	"errors"
	"testing"

	"github.com/artpar/taxid/domain/taxid"
)

// FuzzParse checks that Parse never panics and that accepted input
// round-trips through String and Validate.
func FuzzParse(f *testing.F) {
	f.Add("10374918258")
	f.Add("10374918257")
	f.Add("01374918257")
	f.Add("")
	f.Add("1037491825x")
	f.Add("99999999999")
	f.Add(string([]byte{0x00, 0x01, 0x02, 0xff, 0xfe, 0x30, 0x31, 0x32, 0x33, 0x34, 0x35}))

	f.Fuzz(func(t *testing.T, input string) {
		id, err := taxid.Parse(input)
		if err != nil {
			var verr *taxid.ValidationError
			if !errors.As(err, &verr) && !errors.Is(err, taxid.ErrInvalidLength) {
				t.Errorf("unexpected error type %T: %v", err, err)
			}
			if !id.IsZero() {
				t.Errorf("non-zero ID returned with error")
			}
			return
		}

		if id.String() != input {
			t.Errorf("String() = %q, want %q", id, input)
		}
		again, err := taxid.Validate(id.Digits())
		if err != nil || again != id {
			t.Errorf("Validate(Digits()) = %v, %v", again, err)
		}
	})
}
