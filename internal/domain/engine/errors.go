package engine

import "errors"

// Sentinel kinds for engine errors. These allow errors.Is/As from callers.
var (
	ErrUnsupportedInjury = errors.New("unsupported injury type")
	ErrMalformedTable    = errors.New("malformed threshold table")
)
