package entitlement

import "errors"

var (
	// ErrUnknownAccount is returned when no hosting account is linked to the
	// given identity id.
	ErrUnknownAccount = errors.New("invalid id")
	// ErrInvalidPackage is returned when a plan assignment names a package
	// that is not configured.
	ErrInvalidPackage = errors.New("invalid package")
	// ErrCoinsOutOfRange is returned when a coin balance would leave the
	// allowed [0, MaxResourceValue] range.
	ErrCoinsOutOfRange = errors.New("too small or big coins")
)

// RangeError names the extra field whose new value would leave the allowed
// [0, MaxResourceValue] range.
type RangeError struct {
	Field string
}

func (e *RangeError) Error() string {
	return "exceeded " + e.Field + " size"
}
