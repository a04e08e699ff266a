package scheme

import "fmt"

// NameILPhone05xDash is the registry name of ILPhone05xDash.
const NameILPhone05xDash = "il_phone_05x_dash"

var ilPhonePrefixes = [...]string{"050", "051", "052", "053", "054", "055", "056", "057", "058", "059"}

const ilPhoneNumbersPerPrefix = 10_000_000

// ILPhone05xDash is the reference scheme: Israeli mobile numbers in the
// form "05X-XXXXXXX", bounds [0, 99_999_999] (spec section 4.1).
type ILPhone05xDash struct{}

// NewILPhone05xDash constructs the reference scheme.
func NewILPhone05xDash() *ILPhone05xDash { return &ILPhone05xDash{} }

// IndexToPassword implements Scheme.
func (s *ILPhone05xDash) IndexToPassword(index int64) (string, error) {
	lo, hi := s.Bounds()
	if index < lo || index > hi {
		return "", &ErrOutOfBounds{Index: index, Lo: lo, Hi: hi}
	}
	prefixIndex := index / ilPhoneNumbersPerPrefix
	local := index % ilPhoneNumbersPerPrefix
	return fmt.Sprintf("%s-%07d", ilPhonePrefixes[prefixIndex], local), nil
}

// Bounds implements Scheme.
func (s *ILPhone05xDash) Bounds() (lo, hi int64) {
	total := int64(len(ilPhonePrefixes)) * ilPhoneNumbersPerPrefix
	return 0, total - 1
}
