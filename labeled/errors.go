package labeled

import "errors"

var (
	// ErrInvalidAxis reports an axis with an empty name, no coordinates or
	// both numeric and categorical coordinates.
	ErrInvalidAxis = errors.New("labeled: invalid axis")
	// ErrUnknownAxis reports a lookup of an axis name that is not present.
	ErrUnknownAxis = errors.New("labeled: unknown axis")
	// ErrShapeMismatch reports data whose length or shape disagrees with the
	// axes describing it.
	ErrShapeMismatch = errors.New("labeled: shape mismatch")
)
