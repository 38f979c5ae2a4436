package conv

import "errors"

// ErrNotConvertible reports a value that cannot be coerced into the destination type
var ErrNotConvertible = errors.New("not convertible")
