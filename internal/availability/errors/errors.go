package errors

import "errors"

var (
	// ErrRecordNotFound is returned when no booking metadata exists for a
	// token, typically because the record expired.
	ErrRecordNotFound = errors.New("token record not found")
)
