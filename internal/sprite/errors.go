package sprite

import "fmt"

// DecodeError reports that an image could not be fetched or decoded from any
// attempted variant. The Loader returns it only after both the alternate and
// the original encoding have failed.
type DecodeError struct {
	// Locator is the original source locator the caller asked for.
	Locator string

	// Err is the failure from the last attempted variant.
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Locator, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports a failure to materialize a derived bitmap into an
// owned pixel buffer.
type EncodeError struct {
	// Op names the operation that failed (e.g., "remove background").
	Op string

	// Err is the underlying cause.
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
