package application

import "errors"

// ErrForbidden signals the caller is not the cart owner.
var ErrForbidden = errors.New("access denied")
