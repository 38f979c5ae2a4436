package time

import "errors"

var (
	// ErrImpossibleDate reports a structurally valid date with an out of range
	// component, e.g. 2/31/15.
	ErrImpossibleDate = errors.New("impossible date")
	// ErrUnparseable reports text that does not describe a date at all.
	ErrUnparseable = errors.New("unparseable date")
)
